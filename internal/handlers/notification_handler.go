package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

// NotificationHandler is the synchronous relay endpoint: it accepts the
// appointment notification JSON and sends it through the notifier.
type NotificationHandler struct {
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewNotificationHandler(n notify.Notifier, m *metrics.Metrics, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{notifier: n, metrics: m, logger: logger}
}

func (h *NotificationHandler) Appointment(c *gin.Context) {
	var n notify.AppointmentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.notifier.NotifyAppointment(c.Request.Context(), n); err != nil {
		h.metrics.ObserveNotification(h.notifier.Channel(), "failed")
		h.logger.Warn("notification relay failed",
			zap.String("appointment_id", n.AppointmentID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.ObserveNotification(h.notifier.Channel(), "sent")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
