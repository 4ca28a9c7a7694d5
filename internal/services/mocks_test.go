package services

import (
	"context"

	"nutrition-admin/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.NutritionUser, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]domain.NutritionUser)
	return users, args.Error(1)
}

func (m *mockUserRepo) Recent(ctx context.Context, q domain.RecentQuery) ([]domain.NutritionUser, error) {
	args := m.Called(ctx, q)
	users, _ := args.Get(0).([]domain.NutritionUser)
	return users, args.Error(1)
}

func (m *mockUserRepo) GetByChatID(ctx context.Context, chatID string) (domain.NutritionUserDetail, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(domain.NutritionUserDetail), args.Error(1)
}

type mockUserCache struct {
	mock.Mock
}

func (m *mockUserCache) GetUser(ctx context.Context, chatID string) (*domain.NutritionUserDetail, error) {
	args := m.Called(ctx, chatID)
	u, _ := args.Get(0).(*domain.NutritionUserDetail)
	return u, args.Error(1)
}

func (m *mockUserCache) SetUser(ctx context.Context, chatID string, u domain.NutritionUserDetail) error {
	return m.Called(ctx, chatID, u).Error(0)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) Totals(ctx context.Context) (domain.StatsTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StatsTotals), args.Error(1)
}

func (m *mockStatsRepo) GoalDistribution(ctx context.Context) ([]domain.GoalCount, error) {
	args := m.Called(ctx)
	goals, _ := args.Get(0).([]domain.GoalCount)
	return goals, args.Error(1)
}

func (m *mockStatsRepo) FunnelDistribution(ctx context.Context) ([]domain.FunnelCount, error) {
	args := m.Called(ctx)
	funnel, _ := args.Get(0).([]domain.FunnelCount)
	return funnel, args.Error(1)
}

type mockStatsCache struct {
	mock.Mock
}

func (m *mockStatsCache) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.Stats)
	return s, args.Error(1)
}

func (m *mockStatsCache) SetStats(ctx context.Context, stats domain.Stats) error {
	return m.Called(ctx, stats).Error(0)
}

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	msgs, _ := args.Get(0).([]domain.ChatMessage)
	return msgs, args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) ListByChat(ctx context.Context, chatID, eventType string) ([]domain.UserEvent, error) {
	args := m.Called(ctx, chatID, eventType)
	events, _ := args.Get(0).([]domain.UserEvent)
	return events, args.Error(1)
}
