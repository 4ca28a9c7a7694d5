package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutrition-admin/internal/domain"
	"nutrition-admin/internal/metrics"
	apperrors "nutrition-admin/pkg/errors"
)

const userListColumns = `
	chat_id,
	username,
	first_name,
	sex,
	age,
	weight,
	height,
	goal,
	calories,
	protein,
	fats,
	carbs,
	funnel_stage,
	is_buyer,
	get_food,
	created_at`

const userDetailColumns = `
	chat_id,
	username,
	first_name,
	sex,
	age,
	weight,
	height,
	goal,
	calories,
	protein,
	fats,
	carbs,
	funnel_stage,
	is_buyer,
	get_food,
	created_at,
	activity_level,
	allergies,
	excluded_foods,
	language`

// sortColumns is the only source of column names that may reach ORDER BY.
var sortColumns = map[string]string{
	"name":     "first_name",
	"calories": "calories",
	"funnel":   "funnel_stage",
	"age":      "age",
	"weight":   "weight",
}

const (
	unknownSortColumn = "is_buyer DESC, funnel_stage"
	defaultOrderBy    = "ORDER BY is_buyer DESC, funnel_stage DESC, first_name"
)

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &PostgresUserRepository{db: db}
}

// buildUserListQuery assembles the WHERE and ORDER BY clauses for the user list.
// Every user supplied value is bound as a parameter.
func buildUserListQuery(f domain.UserFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if search := strings.TrimSpace(f.Search); search != "" {
		args = append(args, "%"+search+"%")
		p := placeholder(len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE %s OR username ILIKE %s OR chat_id::text ILIKE %s)", p, p, p))
	}

	switch f.Status {
	case domain.UserStatusBuyer:
		conditions = append(conditions, "is_buyer = true")
	case domain.UserStatusLead:
		conditions = append(conditions, "is_buyer = false")
	}

	if goal := strings.TrimSpace(f.Goal); goal != "" {
		args = append(args, goal)
		conditions = append(conditions, "goal = "+placeholder(len(args)))
	}

	if f.FunnelStage != nil {
		args = append(args, *f.FunnelStage)
		conditions = append(conditions, "funnel_stage = "+placeholder(len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT")
	sb.WriteString(userListColumns)
	sb.WriteString("\nFROM users_nutrition")
	if len(conditions) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString("\n")
	sb.WriteString(buildOrderBy(f.Sort, f.Order))

	return sb.String(), args
}

func buildOrderBy(sort string, order domain.SortOrder) string {
	if sort == "" {
		return defaultOrderBy
	}
	column, ok := sortColumns[sort]
	if !ok {
		column = unknownSortColumn
	}
	direction := "DESC"
	if order == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST", column, direction)
}

func (r *PostgresUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.NutritionUser, error) {
	query, args := buildUserListQuery(filter)

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr("users.list", start, err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	return users, wrapQueryErr("users.list", start, err)
}

func (r *PostgresUserRepository) Recent(ctx context.Context, q domain.RecentQuery) ([]domain.NutritionUser, error) {
	query := `SELECT` + userListColumns + `
FROM users_nutrition
WHERE created_at >= NOW() - INTERVAL '1 day' * $1
ORDER BY created_at DESC
LIMIT $2`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, q.Days, q.Limit)
	if err != nil {
		return nil, wrapQueryErr("users.recent", start, err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	return users, wrapQueryErr("users.recent", start, err)
}

func (r *PostgresUserRepository) GetByChatID(ctx context.Context, chatID string) (domain.NutritionUserDetail, error) {
	query := `SELECT` + userDetailColumns + `
FROM users_nutrition
WHERE chat_id = $1`

	start := time.Now()
	var row userRow
	var activity, allergies, excluded, language sql.NullString
	dest := append(row.targets(), &activity, &allergies, &excluded, &language)

	err := r.db.QueryRowContext(ctx, query, chatID).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.ObserveQuery("users.get", start, nil)
		return domain.NutritionUserDetail{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.NutritionUserDetail{}, wrapQueryErr("users.get", start, err)
	}
	metrics.ObserveQuery("users.get", start, nil)

	return domain.NutritionUserDetail{
		NutritionUser: row.toDomain(),
		ActivityLevel: stringPtr(activity),
		Allergies:     stringPtr(allergies),
		ExcludedFoods: stringPtr(excluded),
		Language:      stringPtr(language),
	}, nil
}

type userRow struct {
	chatID      int64
	username    sql.NullString
	firstName   sql.NullString
	sex         sql.NullString
	age         sql.NullFloat64
	weight      sql.NullFloat64
	height      sql.NullFloat64
	goal        sql.NullString
	calories    sql.NullFloat64
	protein     sql.NullFloat64
	fats        sql.NullFloat64
	carbs       sql.NullFloat64
	funnelStage sql.NullInt64
	isBuyer     sql.NullBool
	getFood     sql.NullBool
	createdAt   sql.NullTime
}

// targets follows the order of userListColumns.
func (r *userRow) targets() []interface{} {
	return []interface{}{
		&r.chatID, &r.username, &r.firstName, &r.sex,
		&r.age, &r.weight, &r.height, &r.goal,
		&r.calories, &r.protein, &r.fats, &r.carbs,
		&r.funnelStage, &r.isBuyer, &r.getFood, &r.createdAt,
	}
}

func (r *userRow) toDomain() domain.NutritionUser {
	return domain.NutritionUser{
		ChatID:      r.chatID,
		Username:    stringPtr(r.username),
		FirstName:   stringPtr(r.firstName),
		Sex:         stringPtr(r.sex),
		Age:         float64Ptr(r.age),
		Weight:      float64Ptr(r.weight),
		Height:      float64Ptr(r.height),
		Goal:        stringPtr(r.goal),
		Calories:    float64Ptr(r.calories),
		Protein:     float64Ptr(r.protein),
		Fats:        float64Ptr(r.fats),
		Carbs:       float64Ptr(r.carbs),
		FunnelStage: int64Ptr(r.funnelStage),
		IsBuyer:     boolPtr(r.isBuyer),
		GetFood:     boolPtr(r.getFood),
		CreatedAt:   timePtr(r.createdAt),
	}
}

func scanUsers(rows *sql.Rows) ([]domain.NutritionUser, error) {
	users := make([]domain.NutritionUser, 0)
	for rows.Next() {
		var row userRow
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, err
		}
		users = append(users, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
