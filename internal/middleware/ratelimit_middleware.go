package middleware

import (
	"strconv"

	"nutrition-admin/internal/ratelimit"
	"nutrition-admin/internal/services"
	"nutrition-admin/internal/transport/httpdto"
	apperrors "nutrition-admin/pkg/errors"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware limits each caller, identified by the authenticated
// caller or else the client IP. Must run after AuthMiddleware.
// A failing limiter lets the request through.
func RateLimitMiddleware(limiter ratelimit.Limiter, l *logger.Logger) gin.HandlerFunc {
	if l == nil {
		l = logger.NewNop()
	}
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), rateLimitKey(c))
		if err != nil {
			l.WarnCtx(c.Request.Context(), "rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			_ = c.Error(apperrors.ErrRateLimited)
			c.AbortWithStatusJSON(apperrors.HTTPStatus(apperrors.ErrRateLimited), httpdto.NewErrorResponse(httpdto.MsgRateLimited))
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if caller, ok := services.CallerFromContext(c.Request.Context()); ok {
		if key := caller.Key(); key != "" {
			return key
		}
	}
	return "ip:" + c.ClientIP()
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *ratelimit.Result) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
