package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrition-admin/config"
	"nutrition-admin/internal/domain"
	"nutrition-admin/internal/handler"
	"nutrition-admin/internal/ratelimit"
	"nutrition-admin/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct{}

func (fakeUsers) List(context.Context, domain.UserFilter) ([]domain.NutritionUser, error) {
	return []domain.NutritionUser{{ChatID: 1}}, nil
}

func (fakeUsers) Recent(context.Context, domain.RecentQuery) ([]domain.NutritionUser, error) {
	return []domain.NutritionUser{}, nil
}

func (fakeUsers) Get(context.Context, string) (domain.NutritionUserDetail, error) {
	return domain.NutritionUserDetail{NutritionUser: domain.NutritionUser{ChatID: 1}}, nil
}

type fakeChat struct{}

func (fakeChat) History(context.Context, string) ([]domain.ChatMessage, error) {
	return []domain.ChatMessage{}, nil
}

type fakeEvents struct{}

func (fakeEvents) List(context.Context, string, string) ([]domain.UserEvent, error) {
	return []domain.UserEvent{}, nil
}

type fakeStats struct{}

func (fakeStats) Get(context.Context) (domain.Stats, error) {
	return domain.Stats{GoalDistribution: []domain.GoalCount{}, FunnelDistribution: []domain.FunnelCount{}}, nil
}

func newTestServer(t *testing.T, cfg *config.Config, limiter ratelimit.Limiter) http.Handler {
	t.Helper()
	cfg.AppMode = TestMode
	cfg.AppPort = "0"

	srv := New(cfg, nil)
	srv.SetupRoutes(&Handlers{
		Health: handler.NewHealthHandler(nil, func(context.Context) error { return nil }),
		User:   handler.NewUserHandler(fakeUsers{}, nil),
		Chat:   handler.NewChatHandler(fakeChat{}, nil),
		Event:  handler.NewEventHandler(fakeEvents{}, nil),
		Stats:  handler.NewStatsHandler(fakeStats{}, nil),
	}, services.NewAuthService(cfg), limiter)
	return srv.Handler()
}

func get(h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutesWithoutAuth(t *testing.T) {
	h := newTestServer(t, &config.Config{}, nil)

	for _, path := range []string{
		"/api/users",
		"/api/users/recent",
		"/api/users/1",
		"/api/chat/1",
		"/api/events/1",
		"/api/stats",
		"/health",
		"/health/ready",
		"/metrics",
	} {
		w := get(h, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"), path)
	}
}

func TestRecentIsNotShadowedByChatID(t *testing.T) {
	h := newTestServer(t, &config.Config{}, nil)

	w := get(h, "/api/users/recent", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t, &config.Config{}, nil)

	w := get(h, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestAPIRequiresAuthWhenBotTokenSet(t *testing.T) {
	cfg := &config.Config{BotToken: "123:abc", InitDataTTL: time.Hour, ServiceJWTSecret: "s3cret"}
	h := newTestServer(t, cfg, nil)

	w := get(h, "/api/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// health and metrics stay public
	assert.Equal(t, http.StatusOK, get(h, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, get(h, "/metrics", nil).Code)

	token, err := services.NewAuthService(cfg).IssueServiceToken("reporting", time.Minute)
	require.NoError(t, err)
	w = get(h, "/api/stats", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitApplied(t *testing.T) {
	h := newTestServer(t, &config.Config{}, ratelimit.NewLocalLimiter(1, 1))

	assert.Equal(t, http.StatusOK, get(h, "/api/stats", nil).Code)
	w := get(h, "/api/stats", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())

	// health is not limited
	assert.Equal(t, http.StatusOK, get(h, "/health", nil).Code)
}
