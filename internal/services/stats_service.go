package services

import (
	"context"

	"nutrition-admin/internal/domain"
	"nutrition-admin/internal/metrics"
	"nutrition-admin/internal/repository"
	"nutrition-admin/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StatsCache is the subset of the Redis cache the stats service needs.
type StatsCache interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
	SetStats(ctx context.Context, stats domain.Stats) error
}

type StatsService struct {
	repo   repository.StatsRepository
	cache  StatsCache
	logger *logger.Logger
}

// NewStatsService builds the service. cache may be nil.
func NewStatsService(repo repository.StatsRepository, cache StatsCache, l *logger.Logger) *StatsService {
	if l == nil {
		l = logger.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, logger: l}
}

// Get runs the three aggregate queries concurrently. They are independent, so
// no ordering is imposed; the first failure cancels the others and fails the call.
func (s *StatsService) Get(ctx context.Context) (domain.Stats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetStats(ctx)
		if err != nil {
			s.logger.WarnCtx(ctx, "stats cache read failed", zap.Error(err))
		}
		metrics.ObserveCache("stats", cached != nil)
		if cached != nil {
			return *cached, nil
		}
	}

	var (
		totals domain.StatsTotals
		goals  []domain.GoalCount
		funnel []domain.FunnelCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.Totals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.repo.GoalDistribution(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		funnel, err = s.repo.FunnelDistribution(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Stats{}, err
	}

	if goals == nil {
		goals = []domain.GoalCount{}
	}
	if funnel == nil {
		funnel = []domain.FunnelCount{}
	}
	stats := domain.Stats{
		StatsTotals:        totals,
		GoalDistribution:   goals,
		FunnelDistribution: funnel,
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			s.logger.WarnCtx(ctx, "stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}
