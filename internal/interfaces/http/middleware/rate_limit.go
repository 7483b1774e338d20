package middleware

import (
	"github.com/easayliu/http-folder/internal/infrastructure/ratelimit"
	apperrors "github.com/easayliu/http-folder/internal/shared/errors"
	"github.com/easayliu/http-folder/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 超出全局QPS时返回429
func RateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	if limiter == nil || limiter.Unlimited() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !limiter.Allow() {
			logger.Warn("Rate limit exceeded", "client_ip", c.ClientIP(), "qps", limiter.QPS())
			c.Error(apperrors.NewServiceError(apperrors.ErrorCodeRateLimit, apperrors.MessageTooManyRequests))
			c.Abort()
			return
		}
		c.Next()
	}
}
