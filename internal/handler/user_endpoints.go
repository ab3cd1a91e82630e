package handler

import (
	"fmt"
	"net/http"

	"marina-server/internal/service"
	"marina-server/shared/models"

	"github.com/gin-gonic/gin"
)

func (h *MarinaHandler) listUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ListResponse(users))
}

func (h *MarinaHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DataResponse(user))
}

func (h *MarinaHandler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("user", "create").Inc()
	c.JSON(http.StatusCreated, models.DataResponse(user))
}

func (h *MarinaHandler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("email"), service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("user", "update").Inc()
	c.JSON(http.StatusOK, models.DataResponse(user))
}

func (h *MarinaHandler) deleteUser(c *gin.Context) {
	user, err := h.userService.DeleteUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("user", "delete").Inc()
	c.JSON(http.StatusOK, models.MessageResponse(fmt.Sprintf("User %s (%s) deleted.", user.Username, user.Email)))
}
