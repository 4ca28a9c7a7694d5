package handler

import (
	"net/http"

	"nutrition-admin/internal/transport/httpdto"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	service StatsService
	logger  *logger.Logger
}

func NewStatsHandler(service StatsService, l *logger.Logger) *StatsHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &StatsHandler{service: service, logger: l}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.logger.ErrorCtx(c.Request.Context(), "error fetching stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(httpdto.MsgFetchStats))
		return
	}

	c.JSON(http.StatusOK, stats)
}
