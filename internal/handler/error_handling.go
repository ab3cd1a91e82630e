package handler

import (
	"errors"
	"net/http"

	"marina-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgNoToken            = "Access denied. No token provided."
	msgInvalidToken       = "Invalid token."
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidBody        = "Invalid request body"
	msgInternal           = "Internal server error"
)

func handleServiceError(c *gin.Context, err error) {
	var (
		statusCode int
		message    string
		vErr       *models.ValidationError
	)

	switch {
	case errors.As(err, &vErr):
		statusCode = http.StatusBadRequest
		message = vErr.Error()
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = msgInvalidBody
	case errors.Is(err, models.ErrUserAlreadyExists):
		statusCode = http.StatusBadRequest
		message = "A user with this username already exists"
	case errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode = http.StatusBadRequest
		message = "A user with this email already exists"
	case errors.Is(err, models.ErrCatwayAlreadyExists):
		statusCode = http.StatusBadRequest
		message = "A catway with this number already exists"
	case errors.Is(err, models.ErrReservationOverlap):
		statusCode = http.StatusBadRequest
		message = "This catway is already reserved for this period"
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = msgInvalidCredentials
	case errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = msgInvalidToken
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, models.ErrCatwayNotFound):
		statusCode = http.StatusNotFound
		message = "Catway not found"
	case errors.Is(err, models.ErrReservationNotFound):
		statusCode = http.StatusNotFound
		message = "Reservation not found"
	default:
		zap.L().Error("Unhandled internal error in handleServiceError",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		statusCode = http.StatusInternalServerError
		message = msgInternal
	}

	c.AbortWithStatusJSON(statusCode, models.ErrorResponse(message))
}

// abortBadRequest answers 400 for bodies that could not be decoded.
func abortBadRequest(c *gin.Context, err error) {
	zap.L().Debug("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse(msgInvalidBody))
}
