package handler

import (
	"net/http"

	"nutrition-admin/internal/transport/httpdto"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service EventService
	logger  *logger.Logger
}

func NewEventHandler(service EventService, l *logger.Logger) *EventHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &EventHandler{service: service, logger: l}
}

// List handles GET /api/events/:chatId?type=.
func (h *EventHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("chatId"), c.Query("type"))
	if err != nil {
		h.logger.ErrorCtx(c.Request.Context(), "error fetching user events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(httpdto.MsgFetchUserEvents))
		return
	}

	c.JSON(http.StatusOK, items)
}
