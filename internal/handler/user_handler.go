package handler

import (
	"net/http"

	"nutrition-admin/internal/services"
	"nutrition-admin/internal/transport/httpdto"
	apperrors "nutrition-admin/pkg/errors"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	service UserService
	logger  *logger.Logger
}

func NewUserHandler(service UserService, l *logger.Logger) *UserHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &UserHandler{service: service, logger: l}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	filter := services.ParseUserFilter(
		c.Query("search"),
		c.Query("status"),
		c.Query("goal"),
		c.Query("funnel_stage"),
		c.Query("sort"),
		c.Query("order"),
	)

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.ErrorCtx(c.Request.Context(), "error fetching users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(httpdto.MsgFetchUsers))
		return
	}

	c.JSON(http.StatusOK, items)
}

// Recent handles GET /api/users/recent.
func (h *UserHandler) Recent(c *gin.Context) {
	q := services.ParseRecentQuery(c.Query("days"), c.Query("limit"))

	items, err := h.service.Recent(c.Request.Context(), q)
	if err != nil {
		h.logger.ErrorCtx(c.Request.Context(), "error fetching recent users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(httpdto.MsgFetchRecentUsers))
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/users/:chatId.
func (h *UserHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("chatId"))
	switch apperrors.HTTPStatus(err) {
	case http.StatusOK:
	case http.StatusNotFound:
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(httpdto.MsgUserNotFound))
		return
	default:
		h.logger.ErrorCtx(c.Request.Context(), "error fetching user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(httpdto.MsgFetchUser))
		return
	}

	c.JSON(http.StatusOK, item)
}
