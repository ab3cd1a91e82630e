package handler

import (
	"net/http"
	"time"

	"marina-server/shared/models"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewLoginRateLimiter limits login attempts per client IP. The IP comes from
// gin's ClientIP, so the router's trusted proxies decide whether
// X-Forwarded-For is honoured.
func NewLoginRateLimiter(store rateli.Store) gin.HandlerFunc {
	return rateli.RateLimiter(store, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Login rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse(
				"Too many login attempts. Try again in "+time.Until(info.ResetTime).Round(time.Second).String(),
			))
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
