package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"nutrition-admin/internal/domain"
	apperrors "nutrition-admin/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"chat_id", "username", "first_name", "sex", "age", "weight", "height", "goal",
	"calories", "protein", "fats", "carbs", "funnel_stage", "is_buyer", "get_food", "created_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func intPtr(v int) *int { return &v }

func TestBuildUserListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.UserFilter
		contains []string
		absent   []string
		wantArgs []interface{}
	}{
		{
			name:     "no filters",
			filter:   domain.UserFilter{},
			contains: []string{"FROM users_nutrition", "ORDER BY is_buyer DESC, funnel_stage DESC, first_name"},
			absent:   []string{"WHERE"},
			wantArgs: nil,
		},
		{
			name:   "search binds one pattern for three columns",
			filter: domain.UserFilter{Search: "  anna "},
			contains: []string{
				"WHERE (first_name ILIKE $1 OR username ILIKE $1 OR chat_id::text ILIKE $1)",
			},
			wantArgs: []interface{}{"%anna%"},
		},
		{
			name:     "buyers",
			filter:   domain.UserFilter{Status: domain.UserStatusBuyer},
			contains: []string{"WHERE is_buyer = true"},
			wantArgs: nil,
		},
		{
			name:     "leads",
			filter:   domain.UserFilter{Status: domain.UserStatusLead},
			contains: []string{"WHERE is_buyer = false"},
			wantArgs: nil,
		},
		{
			name: "all filters numbered in order",
			filter: domain.UserFilter{
				Search:      "x",
				Status:      domain.UserStatusLead,
				Goal:        "lose",
				FunnelStage: intPtr(3),
				Sort:        "calories",
				Order:       domain.SortAsc,
			},
			contains: []string{
				"ILIKE $1",
				"is_buyer = false",
				"goal = $2",
				"funnel_stage = $3",
				"ORDER BY calories ASC NULLS LAST",
			},
			wantArgs: []interface{}{"%x%", "lose", 3},
		},
		{
			name:     "stage zero is still a filter",
			filter:   domain.UserFilter{FunnelStage: intPtr(0)},
			contains: []string{"WHERE funnel_stage = $1"},
			wantArgs: []interface{}{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildUserListQuery(tt.filter)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.absent {
				assert.NotContains(t, query, fragment)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildOrderBy(t *testing.T) {
	tests := []struct {
		sort  string
		order domain.SortOrder
		want  string
	}{
		{"", domain.SortDesc, "ORDER BY is_buyer DESC, funnel_stage DESC, first_name"},
		{"", domain.SortAsc, "ORDER BY is_buyer DESC, funnel_stage DESC, first_name"},
		{"name", domain.SortAsc, "ORDER BY first_name ASC NULLS LAST"},
		{"funnel", domain.SortDesc, "ORDER BY funnel_stage DESC NULLS LAST"},
		{"weight", "", "ORDER BY weight DESC NULLS LAST"},
		{"age", domain.SortAsc, "ORDER BY age ASC NULLS LAST"},
		{"chat_id; DROP TABLE users_nutrition", domain.SortAsc, "ORDER BY is_buyer DESC, funnel_stage ASC NULLS LAST"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, buildOrderBy(tt.sort, tt.order), "sort=%q order=%q", tt.sort, tt.order)
	}
}

func TestUserRepositoryList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(111), "anna", "Anna", "female", 30.0, 60.5, 170.0, "lose",
			1800.0, 120.0, 60.0, 180.0, int64(2), true, false, created).
		AddRow(int64(222), nil, nil, nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE goal = $1")).
		WithArgs("lose").
		WillReturnRows(rows)

	users, err := repo.List(context.Background(), domain.UserFilter{Goal: "lose"})
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(111), users[0].ChatID)
	require.NotNil(t, users[0].Username)
	assert.Equal(t, "anna", *users[0].Username)
	require.NotNil(t, users[0].IsBuyer)
	assert.True(t, *users[0].IsBuyer)
	require.NotNil(t, users[0].CreatedAt)
	assert.True(t, created.Equal(*users[0].CreatedAt))

	assert.Equal(t, int64(222), users[1].ChatID)
	assert.Nil(t, users[1].Username)
	assert.Nil(t, users[1].Calories)
	assert.Nil(t, users[1].FunnelStage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users_nutrition").WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.List(context.Background(), domain.UserFilter{})
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepositoryListError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users_nutrition").WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background(), domain.UserFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users.list")
}

func TestUserRepositoryRecent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE created_at >= NOW() - INTERVAL '1 day' * $1")).
		WithArgs(7, 20).
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.Recent(context.Background(), domain.RecentQuery{Days: 7, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByChatID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	columns := append(append([]string{}, userColumns...), "activity_level", "allergies", "excluded_foods", "language")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE chat_id = $1")).
		WithArgs("111").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(111), "anna", "Anna", "female", 30.0, 60.5, 170.0, "lose",
				1800.0, 120.0, 60.0, 180.0, int64(2), true, false, time.Now(),
				"moderate", nil, "pork", "ru"))

	u, err := repo.GetByChatID(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, int64(111), u.ChatID)
	require.NotNil(t, u.ActivityLevel)
	assert.Equal(t, "moderate", *u.ActivityLevel)
	assert.Nil(t, u.Allergies)
	require.NotNil(t, u.Language)
	assert.Equal(t, "ru", *u.Language)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByChatIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE chat_id = $1")).
		WithArgs("404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByChatID(context.Background(), "404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
