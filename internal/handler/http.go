package handler

import (
	"marina-server/internal/service"

	"github.com/gin-gonic/gin"
)

// MarinaHandler serves the /api routes.
type MarinaHandler struct {
	authService        service.AuthService
	userService        service.UserService
	catwayService      service.CatwayService
	reservationService service.ReservationService
}

func NewMarinaHandler(
	authService service.AuthService,
	userService service.UserService,
	catwayService service.CatwayService,
	reservationService service.ReservationService,
) *MarinaHandler {
	return &MarinaHandler{
		authService:        authService,
		userService:        userService,
		catwayService:      catwayService,
		reservationService: reservationService,
	}
}

// RegisterRoutes mounts every /api route. loginLimiter may be nil.
// Everything except POST /api/auth/login sits behind AuthMiddleware.
func (h *MarinaHandler) RegisterRoutes(router *gin.Engine, loginLimiter gin.HandlerFunc) {
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		if loginLimiter != nil {
			authGroup.POST("/login", loginLimiter, h.login)
		} else {
			authGroup.POST("/login", h.login)
		}
		authGroup.GET("/logout", h.AuthMiddleware(), h.logout)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.GET("/me", h.AuthMiddleware(), h.getMe)
	}

	protected := api.Group("")
	protected.Use(h.AuthMiddleware())

	users := protected.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:email", h.getUser)
		users.POST("", h.createUser)
		users.PUT("/:email", h.updateUser)
		users.DELETE("/:email", h.deleteUser)
	}

	catways := protected.Group("/catways")
	{
		catways.GET("", h.listCatways)
		catways.GET("/:id", h.getCatway)
		catways.POST("", h.createCatway)
		catways.PUT("/:id", h.updateCatway)
		catways.DELETE("/:id", h.deleteCatway)

		reservations := catways.Group("/:id/reservations")
		reservations.GET("", h.listReservations)
		reservations.GET("/:reservationId", h.getReservation)
		reservations.POST("", h.createReservation)
		reservations.PUT("/:reservationId", h.updateReservation)
		reservations.DELETE("/:reservationId", h.deleteReservation)
	}
}
