package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

var businessStatus = map[string]int{
	"time_conflict":          http.StatusConflict,
	"submission_in_progress": http.StatusConflict,
	"invalid_state":          http.StatusConflict,
	"invalid_transition":     http.StatusConflict,
	"service_not_found":      http.StatusNotFound,
	"appointment_not_found":  http.StatusNotFound,
	"assessment_not_found":   http.StatusNotFound,
	"meditation_not_found":   http.StatusNotFound,
	"session_not_found":      http.StatusNotFound,
	"system_not_found":       http.StatusNotFound,
}

var businessMessage = map[string]string{
	"time_conflict":          "The selected time is no longer available.",
	"submission_in_progress": "A booking is already being submitted.",
	"invalid_state":          "The appointment cannot change to that status.",
	"invalid_transition":     "That step is not available right now.",
	"slot_not_offered":       "The selected time is not one of the offered slots.",
	"service_not_found":      "Service not found.",
	"appointment_not_found":  "Appointment not found.",
	"assessment_not_found":   "Assessment not found.",
	"meditation_not_found":   "Meditation session not found.",
	"session_not_found":      "Booking session not found or expired.",
	"system_not_found":       "Body system not found.",
	"outside_opening_hours":  "The selected time is outside the clinic's opening hours.",
}

// Respond translates err into the HTTP error contract.
func Respond(c *gin.Context, err error) {
	var (
		ve *ValidationError
		fe *FetchError
		we *WriteError
		be BusinessError
	)

	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Error(), "Please fill in all the required details.")
	case errors.As(err, &be):
		status, ok := businessStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		msg := businessMessage[be.Code]
		if msg == "" {
			msg = be.Code
		}
		Write(c, status, be.Code, msg)
	case IsExclusionConflict(err):
		Conflict(c, "time_conflict", businessMessage["time_conflict"])
	case errors.As(err, &fe):
		Unavailable(c, "fetch_failed", "Could not load "+fe.Resource+", please try again.")
	case errors.As(err, &we):
		Internal(c, "write_failed", we.Error())
	default:
		Internal(c, "internal_error", "Unexpected error.")
	}
}
