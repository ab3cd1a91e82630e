package handler

import (
	"fmt"
	"net/http"

	"marina-server/internal/service"
	"marina-server/shared/models"

	"github.com/gin-gonic/gin"
)

func (h *MarinaHandler) listCatways(c *gin.Context) {
	catways, err := h.catwayService.ListCatways(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ListResponse(catways))
}

func (h *MarinaHandler) getCatway(c *gin.Context) {
	catway, err := h.catwayService.GetCatway(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DataResponse(catway))
}

func (h *MarinaHandler) createCatway(c *gin.Context) {
	var req createCatwayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	catway, err := h.catwayService.CreateCatway(c.Request.Context(), service.CreateCatwayInput{
		Number: string(req.CatwayNumber),
		Type:   req.CatwayType,
		State:  req.CatwayState,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("catway", "create").Inc()
	c.JSON(http.StatusCreated, models.DataResponse(catway))
}

func (h *MarinaHandler) updateCatway(c *gin.Context) {
	var req updateCatwayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	catway, err := h.catwayService.UpdateCatwayState(c.Request.Context(), c.Param("id"), req.CatwayState)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("catway", "update").Inc()
	c.JSON(http.StatusOK, models.DataResponse(catway))
}

func (h *MarinaHandler) deleteCatway(c *gin.Context) {
	catway, err := h.catwayService.DeleteCatway(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resourceChangesTotal.WithLabelValues("catway", "delete").Inc()
	c.JSON(http.StatusOK, models.MessageResponse(fmt.Sprintf("Catway number %s deleted.", catway.Number)))
}
