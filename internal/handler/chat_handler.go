package handler

import (
	"net/http"

	"nutrition-admin/internal/transport/httpdto"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	service ChatService
	logger  *logger.Logger
}

func NewChatHandler(service ChatService, l *logger.Logger) *ChatHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &ChatHandler{service: service, logger: l}
}

// History handles GET /api/chat/:sessionId.
func (h *ChatHandler) History(c *gin.Context) {
	items, err := h.service.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.logger.ErrorCtx(c.Request.Context(), "error fetching chat history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(httpdto.MsgFetchChatHistory))
		return
	}

	c.JSON(http.StatusOK, items)
}
