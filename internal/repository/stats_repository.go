package repository

import (
	"context"
	"database/sql"
	"time"

	"nutrition-admin/internal/domain"
)

type PostgresStatsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) StatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Totals(ctx context.Context) (domain.StatsTotals, error) {
	query := `SELECT
	COUNT(*)::int AS total_users,
	COUNT(*) FILTER (WHERE is_buyer = true)::int AS buyers,
	COUNT(*) FILTER (WHERE is_buyer = false)::int AS leads,
	ROUND(AVG(calories))::int AS avg_calories,
	ROUND(AVG(protein))::int AS avg_protein,
	ROUND(AVG(fats))::int AS avg_fats,
	ROUND(AVG(carbs))::int AS avg_carbs
FROM users_nutrition`

	start := time.Now()
	var (
		t                           domain.StatsTotals
		calories, protein, fats, cb sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&t.TotalUsers, &t.Buyers, &t.Leads, &calories, &protein, &fats, &cb)
	if err != nil {
		return domain.StatsTotals{}, wrapQueryErr("stats.totals", start, err)
	}
	t.AvgCalories = int64Ptr(calories)
	t.AvgProtein = int64Ptr(protein)
	t.AvgFats = int64Ptr(fats)
	t.AvgCarbs = int64Ptr(cb)
	return t, wrapQueryErr("stats.totals", start, nil)
}

func (r *PostgresStatsRepository) GoalDistribution(ctx context.Context) ([]domain.GoalCount, error) {
	query := `SELECT COALESCE(goal, 'unknown') AS goal, COUNT(*)::int AS count
FROM users_nutrition
GROUP BY goal
ORDER BY count DESC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("stats.goals", start, err)
	}
	defer rows.Close()

	out := make([]domain.GoalCount, 0)
	for rows.Next() {
		var g domain.GoalCount
		if err := rows.Scan(&g.Goal, &g.Count); err != nil {
			return nil, wrapQueryErr("stats.goals", start, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("stats.goals", start, err)
	}
	return out, wrapQueryErr("stats.goals", start, nil)
}

func (r *PostgresStatsRepository) FunnelDistribution(ctx context.Context) ([]domain.FunnelCount, error) {
	query := `SELECT COALESCE(funnel_stage, 0) AS stage, COUNT(*)::int AS count
FROM users_nutrition
GROUP BY funnel_stage
ORDER BY stage`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("stats.funnel", start, err)
	}
	defer rows.Close()

	out := make([]domain.FunnelCount, 0)
	for rows.Next() {
		var f domain.FunnelCount
		if err := rows.Scan(&f.Stage, &f.Count); err != nil {
			return nil, wrapQueryErr("stats.funnel", start, err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("stats.funnel", start, err)
	}
	return out, wrapQueryErr("stats.funnel", start, nil)
}
