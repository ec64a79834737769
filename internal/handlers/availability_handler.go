package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	uc *ucAppointment.ManageAvailability
}

func NewAvailabilityHandler(uc *ucAppointment.ManageAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

type AvailabilityUpdateRequest struct {
	Days []ucAppointment.AvailabilityDay `json:"days"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	windows, err := h.uc.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	windows, err := h.uc.Replace(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		req.Days,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}
