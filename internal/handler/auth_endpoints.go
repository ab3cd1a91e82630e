package handler

import (
	"errors"
	"net/http"

	"marina-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *MarinaHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			loginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		handleServiceError(c, err)
		return
	}

	loginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data: loginResponse{
			Token:     result.Token.AccessToken,
			ExpiresAt: result.Token.ExpiresAt,
			User:      result.User,
		},
	})
}

func (h *MarinaHandler) logout(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		zap.L().Error("Token claims missing in context during logout")
		handleServiceError(c, errors.New("token claims missing in context"))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("Logout successful."))
}

func (h *MarinaHandler) getMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, models.DataResponse(user))
}
