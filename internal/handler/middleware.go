package handler

import (
	"net/http"
	"strings"

	"marina-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// gin context keys set by AuthMiddleware.
const (
	ctxUserKey   = "auth_user"
	ctxClaimsKey = "auth_claims"
)

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the resolved user to both the gin and the request context.
func (h *MarinaHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			tokenVerificationsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(msgNoToken))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(msgInvalidToken))
			return
		}

		user, claims, err := h.authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Debug("Bearer token rejected", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(ctxUserKey, user)
		c.Set(ctxClaimsKey, claims)
		c.Request = c.Request.WithContext(models.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// currentUser returns the user attached by AuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

func currentClaims(c *gin.Context) (*models.Claims, bool) {
	value, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok && claims != nil
}
