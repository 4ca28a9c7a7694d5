package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nutrition-admin/internal/transport/httpdto"
	apperrors "nutrition-admin/pkg/errors"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

type HealthHandler struct {
	checks []ReadinessCheck
	logger *logger.Logger
	now    func() time.Time
}

// NewHealthHandler builds the handler. Every check must pass for /health/ready.
func NewHealthHandler(l *logger.Logger, checks ...ReadinessCheck) *HealthHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &HealthHandler{checks: checks, logger: l, now: time.Now}
}

// Live handles GET /health. It does not touch the database.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.NewHealthResponse(h.now()))
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.ready(c.Request.Context()); err != nil {
		h.logger.WarnCtx(c.Request.Context(), "readiness check failed", zap.Error(err))
		c.JSON(apperrors.HTTPStatus(err), httpdto.NewErrorResponse(httpdto.MsgNotReady))
		return
	}
	c.JSON(http.StatusOK, httpdto.HealthResponse{Status: "ok"})
}

func (h *HealthHandler) ready(ctx context.Context) error {
	for _, check := range h.checks {
		if err := check(ctx); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrServiceUnavailable, err)
		}
	}
	return nil
}
