package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type ContactHandler struct {
	db          *gorm.DB
	sender      notify.EmailSender
	clinicEmail string
	checkDomain bool
	logger      *zap.Logger
}

func NewContactHandler(
	db *gorm.DB,
	sender notify.EmailSender,
	clinicEmail string,
	checkDomain bool,
	logger *zap.Logger,
) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{
		db:          db,
		sender:      sender,
		clinicEmail: clinicEmail,
		checkDomain: checkDomain,
		logger:      logger,
	}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}

	switch {
	case msg.Name == "":
		httperr.Respond(c, httperr.Missing("name"))
		return
	case msg.Email == "":
		httperr.Respond(c, httperr.Missing("email"))
		return
	case msg.Message == "":
		httperr.Respond(c, httperr.Missing("message"))
		return
	case !validators.IsEmail(msg.Email):
		httperr.Respond(c, httperr.Invalid("email", "not an email address"))
		return
	}

	if h.checkDomain && !validators.IsEmailDomainValid(c.Request.Context(), nil, msg.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		httperr.Respond(c, httperr.WriteFailed(err))
		return
	}

	go h.relay(msg)

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": msg.ID})
}

// relay forwards the message to the clinic inbox; failures are only logged.
func (h *ContactHandler) relay(msg models.ContactMessage) {
	if h.sender == nil || h.clinicEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	body := fmt.Sprintf(
		"New message from the website\n\nName: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Phone, msg.Message,
	)

	err := h.sender.Send(ctx, notify.EmailMessage{
		To:      h.clinicEmail,
		Subject: "Contact form: " + msg.Name,
		Body:    body,
	})
	if err != nil {
		h.logger.Warn("contact relay failed",
			zap.String("contact_id", msg.ID),
			zap.Error(&notify.NotificationError{Channel: "email", Err: err}),
		)
	}
}
