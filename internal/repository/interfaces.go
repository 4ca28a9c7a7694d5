package repository

import (
	"context"

	"nutrition-admin/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context, filter domain.UserFilter) ([]domain.NutritionUser, error)
	Recent(ctx context.Context, q domain.RecentQuery) ([]domain.NutritionUser, error)
	GetByChatID(ctx context.Context, chatID string) (domain.NutritionUserDetail, error)
}

type ChatRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}

type EventRepository interface {
	ListByChat(ctx context.Context, chatID, eventType string) ([]domain.UserEvent, error)
}

type StatsRepository interface {
	Totals(ctx context.Context) (domain.StatsTotals, error)
	GoalDistribution(ctx context.Context) ([]domain.GoalCount, error)
	FunnelDistribution(ctx context.Context) ([]domain.FunnelCount, error)
}
