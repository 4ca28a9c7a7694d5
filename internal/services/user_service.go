package services

import (
	"context"
	"strconv"

	"nutrition-admin/internal/domain"
	"nutrition-admin/internal/metrics"
	"nutrition-admin/internal/repository"
	apperrors "nutrition-admin/pkg/errors"
	"nutrition-admin/pkg/logger"

	"go.uber.org/zap"
)

// UserCache is the subset of the Redis cache the user service needs.
type UserCache interface {
	GetUser(ctx context.Context, chatID string) (*domain.NutritionUserDetail, error)
	SetUser(ctx context.Context, chatID string, u domain.NutritionUserDetail) error
}

type UserService struct {
	repo   repository.UserRepository
	cache  UserCache
	logger *logger.Logger
}

// NewUserService builds the service. cache may be nil.
func NewUserService(repo repository.UserRepository, cache UserCache, l *logger.Logger) *UserService {
	if l == nil {
		l = logger.NewNop()
	}
	return &UserService{repo: repo, cache: cache, logger: l}
}

func (s *UserService) List(ctx context.Context, filter domain.UserFilter) ([]domain.NutritionUser, error) {
	return s.repo.List(ctx, filter)
}

func (s *UserService) Recent(ctx context.Context, q domain.RecentQuery) ([]domain.NutritionUser, error) {
	q.Days = clamp(q.Days, domain.MinRecentDays, domain.MaxRecentDays)
	q.Limit = clamp(q.Limit, domain.MinRecentLimit, domain.MaxRecentLimit)

	s.logger.InfoCtx(ctx, "fetching recent users", zap.Int("days", q.Days), zap.Int("limit", q.Limit))
	users, err := s.repo.Recent(ctx, q)
	if err != nil {
		return nil, err
	}
	s.logger.InfoCtx(ctx, "found recent users", zap.Int("count", len(users)))
	return users, nil
}

// Get returns one user's card. Chat ids are integers; anything else cannot
// match a row and is reported as not found without a query.
func (s *UserService) Get(ctx context.Context, chatID string) (domain.NutritionUserDetail, error) {
	if _, err := strconv.ParseInt(chatID, 10, 64); err != nil {
		return domain.NutritionUserDetail{}, apperrors.ErrNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, chatID)
		if err != nil {
			s.logger.WarnCtx(ctx, "user cache read failed", zap.Error(err))
		}
		metrics.ObserveCache("user", cached != nil)
		if cached != nil {
			return *cached, nil
		}
	}

	u, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return domain.NutritionUserDetail{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, chatID, u); err != nil {
			s.logger.WarnCtx(ctx, "user cache write failed", zap.Error(err))
		}
	}
	return u, nil
}
