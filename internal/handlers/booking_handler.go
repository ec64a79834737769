package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

// BookingHandler exposes the booking wizard. Every route answers with the
// full session so the client can render the current step.
type BookingHandler struct {
	wizard *booking.Wizard
}

func NewBookingHandler(w *booking.Wizard) *BookingHandler {
	return &BookingHandler{wizard: w}
}

type chooseServiceRequest struct {
	ServiceID string `json:"service_id"`
}

type chooseDateRequest struct {
	Date string `json:"date"`
}

type chooseSlotRequest struct {
	StartTime string `json:"start_time"`
}

func (h *BookingHandler) respond(c *gin.Context, status int, s *wizard.Session, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(status, s)
}

func (h *BookingHandler) Start(c *gin.Context) {
	s, err := h.wizard.Start(c.Request.Context())
	h.respond(c, http.StatusCreated, s, err)
}

func (h *BookingHandler) Get(c *gin.Context) {
	s, err := h.wizard.Get(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, s, err)
}

func (h *BookingHandler) ChooseService(c *gin.Context) {
	var req chooseServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	s, err := h.wizard.ChooseService(c.Request.Context(), c.Param("id"), req.ServiceID)
	h.respond(c, http.StatusOK, s, err)
}

func (h *BookingHandler) ChooseDate(c *gin.Context) {
	var req chooseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	s, err := h.wizard.ChooseDate(c.Request.Context(), c.Param("id"), req.Date)
	h.respond(c, http.StatusOK, s, err)
}

func (h *BookingHandler) ChooseSlot(c *gin.Context) {
	var req chooseSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	s, err := h.wizard.ChooseSlot(c.Request.Context(), c.Param("id"), req.StartTime)
	h.respond(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var req wizard.Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	s, err := h.wizard.Submit(c.Request.Context(), c.Param("id"), req)
	h.respond(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Back(c *gin.Context) {
	s, err := h.wizard.Back(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Reset(c *gin.Context) {
	s, err := h.wizard.Reset(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, s, err)
}
