package handler

import (
	"fmt"
	"net/http"

	"marina-server/internal/service"
	"marina-server/shared/models"

	"github.com/gin-gonic/gin"
)

func (h *MarinaHandler) listReservations(c *gin.Context) {
	reservations, err := h.reservationService.ListReservations(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ListResponse(reservations))
}

func (h *MarinaHandler) getReservation(c *gin.Context) {
	reservation, err := h.reservationService.GetReservation(c.Request.Context(), c.Param("id"), c.Param("reservationId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DataResponse(reservation))
}

func (h *MarinaHandler) createReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), c.Param("id"), service.CreateReservationInput{
		CatwayNumber: string(req.CatwayNumber),
		ClientName:   req.ClientName,
		BoatName:     req.BoatName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("reservation", "create").Inc()
	c.JSON(http.StatusCreated, models.DataResponse(reservation))
}

func (h *MarinaHandler) updateReservation(c *gin.Context) {
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	reservation, err := h.reservationService.UpdateReservation(c.Request.Context(), c.Param("id"), c.Param("reservationId"), service.UpdateReservationInput{
		CatwayNumber: req.CatwayNumber.ptr(),
		ClientName:   req.ClientName,
		BoatName:     req.BoatName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("reservation", "update").Inc()
	c.JSON(http.StatusOK, models.DataResponse(reservation))
}

func (h *MarinaHandler) deleteReservation(c *gin.Context) {
	reservation, err := h.reservationService.DeleteReservation(c.Request.Context(), c.Param("id"), c.Param("reservationId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("reservation", "delete").Inc()
	c.JSON(http.StatusOK, models.MessageResponse(fmt.Sprintf("Reservation %s deleted.", reservation.ID.Hex())))
}
