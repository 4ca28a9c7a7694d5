package handler

import (
	"context"

	"nutrition-admin/internal/domain"
)

// The handlers depend on these narrow interfaces; the services package provides
// the implementations.

type UserService interface {
	List(ctx context.Context, filter domain.UserFilter) ([]domain.NutritionUser, error)
	Recent(ctx context.Context, q domain.RecentQuery) ([]domain.NutritionUser, error)
	Get(ctx context.Context, chatID string) (domain.NutritionUserDetail, error)
}

type ChatService interface {
	History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}

type EventService interface {
	List(ctx context.Context, chatID, eventType string) ([]domain.UserEvent, error)
}

type StatsService interface {
	Get(ctx context.Context) (domain.Stats, error)
}
