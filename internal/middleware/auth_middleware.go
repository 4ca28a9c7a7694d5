package middleware

import (
	"context"
	"net/http"
	"strings"

	"nutrition-admin/internal/services"
	"nutrition-admin/internal/transport/httpdto"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
)

const initDataScheme = "tma"

// AuthMiddleware accepts Telegram Mini App init data ("tma <initData>") and,
// when a service secret is configured, Bearer service tokens. It is a no-op
// when the service has no bot token.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.Enabled() {
			c.Next()
			return
		}

		scheme, value := splitAuthorization(c.GetHeader("Authorization"))
		if value == "" {
			abortUnauthorized(c, httpdto.MsgUnauthorizedHeader)
			return
		}

		var (
			caller services.Caller
			err    error
		)
		switch {
		case scheme == initDataScheme:
			caller, err = service.ValidateInitData(value)
			if err != nil {
				abortUnauthorized(c, httpdto.MsgInvalidInitData)
				return
			}
		case strings.EqualFold(scheme, "Bearer") && service.ServiceTokensEnabled():
			caller, err = service.ParseServiceToken(value)
			if err != nil {
				abortUnauthorized(c, httpdto.MsgInvalidToken)
				return
			}
		default:
			abortUnauthorized(c, httpdto.MsgUnauthorizedHeader)
			return
		}

		ctx := services.WithCaller(c.Request.Context(), caller)
		if caller.TelegramUserID != 0 {
			ctx = context.WithValue(ctx, logger.TelegramUserIdKey, caller.TelegramUserID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func splitAuthorization(value string) (string, string) {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse(msg))
}
