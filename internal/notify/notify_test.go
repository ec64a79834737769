package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotification() AppointmentNotification {
	return AppointmentNotification{
		AppointmentID: "ap-1",
		ClientName:    "Dana Levi",
		ClientEmail:   "dana@example.com",
		ClientPhone:   "0501234567",
		ServiceName:   "Acupuncture",
		Date:          "2026-03-03",
		Time:          "10:00",
	}
}

type captureSender struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (s *captureSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func TestAdminAppointmentEmail(t *testing.T) {
	msg := AdminAppointmentEmail("clinic@example.com", sampleNotification())

	assert.Equal(t, "clinic@example.com", msg.To)
	assert.Equal(t, "New appointment: Acupuncture", msg.Subject)
	assert.Contains(t, msg.Body, "Name: Dana Levi\n")
	assert.Contains(t, msg.Body, "Time: 10:00\n")
	assert.Contains(t, msg.Body, "Notes:\nNo notes\n")
	assert.Contains(t, msg.Body, "Appointment ID: ap-1")
}

func TestEmailNotifier(t *testing.T) {
	sender := &captureSender{}
	n := NewEmailNotifier(sender, "clinic@example.com")

	require.NoError(t, n.NotifyAppointment(context.Background(), sampleNotification()))
	require.Len(t, sender.sent, 1)

	sender.err = errors.New("smtp down")
	err := n.NotifyAppointment(context.Background(), sampleNotification())
	var ne *NotificationError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "email", ne.Channel)

	unset := NewEmailNotifier(sender, "")
	assert.Error(t, unset.NotifyAppointment(context.Background(), sampleNotification()))
}

func TestWebhookNotifier(t *testing.T) {
	var got AppointmentNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, srv.Client())
	require.NoError(t, n.NotifyAppointment(context.Background(), sampleNotification()))
	assert.Equal(t, "Dana Levi", got.ClientName)
	assert.Equal(t, "Acupuncture", got.ServiceName)
}

func TestWebhookNotifier_RelayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"mail quota exceeded"}`))
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, srv.Client()).
		NotifyAppointment(context.Background(), sampleNotification())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail quota exceeded")
}

func TestWebhookNotifier_UnreadableReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway page</html>`))
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, srv.Client()).
		NotifyAppointment(context.Background(), sampleNotification())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	var nerr *NotificationError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "webhook", nerr.Channel)

	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

type recordingNotifier struct {
	mu   sync.Mutex
	got  []AppointmentNotification
	fail bool
}

func (r *recordingNotifier) Channel() string { return "test" }

func (r *recordingNotifier) NotifyAppointment(ctx context.Context, n AppointmentNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	if r.fail {
		return errors.New("relay down")
	}
	return nil
}

func TestDispatcher_DeliversToEveryNotifier(t *testing.T) {
	failing := &recordingNotifier{fail: true}
	ok := &recordingNotifier{}
	d := NewDispatcher(nil, nil, failing, ok)

	d.Dispatch(sampleNotification())
	d.Dispatch(sampleNotification())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Len(t, failing.got, 2)
	assert.Len(t, ok.got, 2, "a failing channel does not stop the others")
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(nil, nil, rec)
	require.NoError(t, d.Close(context.Background()))

	d.Dispatch(sampleNotification())
	assert.Empty(t, rec.got)

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() { nilDispatcher.Dispatch(sampleNotification()) })
}
