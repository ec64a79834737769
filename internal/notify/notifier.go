package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AppointmentNotification is the payload of the appointment relay.
type AppointmentNotification struct {
	AppointmentID string `json:"appointmentId"`
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Notes         string `json:"notes"`
}

// NotificationError marks a failed best-effort relay. It is logged, never
// returned to a booking caller.
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

type Notifier interface {
	Channel() string
	NotifyAppointment(ctx context.Context, n AppointmentNotification) error
}

// ==============================
// Email
// ==============================

type EmailNotifier struct {
	sender     EmailSender
	adminEmail string
}

func NewEmailNotifier(sender EmailSender, adminEmail string) *EmailNotifier {
	return &EmailNotifier{sender: sender, adminEmail: adminEmail}
}

func (n *EmailNotifier) Channel() string { return "email" }

func (n *EmailNotifier) NotifyAppointment(ctx context.Context, a AppointmentNotification) error {
	if n.adminEmail == "" {
		return &NotificationError{Channel: n.Channel(), Err: fmt.Errorf("admin email not configured")}
	}
	if err := n.sender.Send(ctx, AdminAppointmentEmail(n.adminEmail, a)); err != nil {
		return &NotificationError{Channel: n.Channel(), Err: err}
	}
	return nil
}

// AdminAppointmentEmail renders the message the clinic receives for a new booking.
func AdminAppointmentEmail(to string, a AppointmentNotification) EmailMessage {
	notes := strings.TrimSpace(a.Notes)
	if notes == "" {
		notes = "No notes"
	}

	var b strings.Builder
	b.WriteString("A new appointment was booked!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", a.ClientName)
	fmt.Fprintf(&b, "Phone: %s\n", a.ClientPhone)
	fmt.Fprintf(&b, "Email: %s\n", a.ClientEmail)
	fmt.Fprintf(&b, "Treatment: %s\n", a.ServiceName)
	fmt.Fprintf(&b, "Date: %s\n", a.Date)
	fmt.Fprintf(&b, "Time: %s\n\n", a.Time)
	fmt.Fprintf(&b, "Notes:\n%s\n\n", notes)
	fmt.Fprintf(&b, "Appointment ID: %s\n", a.AppointmentID)

	return EmailMessage{
		To:      to,
		Subject: "New appointment: " + a.ServiceName,
		Body:    b.String(),
	}
}

// ==============================
// Webhook
// ==============================

// WebhookNotifier posts the notification JSON to an external relay function.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{url: url, client: client}
}

func (n *WebhookNotifier) Channel() string { return "webhook" }

func (n *WebhookNotifier) NotifyAppointment(ctx context.Context, a AppointmentNotification) error {
	body, err := json.Marshal(a)
	if err != nil {
		return &NotificationError{Channel: n.Channel(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return &NotificationError{Channel: n.Channel(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return &NotificationError{Channel: n.Channel(), Err: err}
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 400 && decodeErr != nil {
		return &NotificationError{
			Channel: n.Channel(),
			Err:     fmt.Errorf("relay failed: %s: decode response: %w", resp.Status, decodeErr),
		}
	}
	if resp.StatusCode >= 400 || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return &NotificationError{Channel: n.Channel(), Err: fmt.Errorf("relay failed: %s", msg)}
	}
	return nil
}
