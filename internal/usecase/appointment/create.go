package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID string

	// Service may carry the already loaded service to skip the lookup.
	Service *models.Service

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	clock   Clock
	audit   AuditDispatcher
	notify  NotificationDispatcher
	metrics *metrics.Metrics
}

func NewCreateAppointment(
	repo domain.Repository,
	clock Clock,
	audit AuditDispatcher,
	notifier NotificationDispatcher,
	m *metrics.Metrics,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		clock:   clock,
		audit:   audit,
		notify:  notifier,
		metrics: m,
	}
}

func (in CreateAppointmentInput) serviceID() string {
	if in.Service != nil {
		return in.Service.ID
	}
	return in.ServiceID
}

// validate runs before any store call.
func (uc *CreateAppointment) validate(in CreateAppointmentInput) error {
	required := []struct {
		field string
		value string
	}{
		{"service", in.serviceID()},
		{"date", in.Date},
		{"slot", in.StartTime},
		{"client_name", in.ClientName},
		{"client_email", in.ClientEmail},
		{"client_phone", in.ClientPhone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return httperr.Missing(r.field)
		}
	}

	if !validators.IsEmail(strings.TrimSpace(in.ClientEmail)) {
		return httperr.Invalid("client_email", "not an email address")
	}
	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return httperr.Invalid("slot", err.Error())
	}
	if in.EndTime != "" {
		if _, err := domain.ParseClock(in.EndTime); err != nil {
			return httperr.Invalid("slot", err.Error())
		}
	}

	if _, err := uc.clock.parseBookableDate(in.Date); err != nil {
		return err
	}

	if in.Date == uc.clock.Today() && start <= minuteOfDay(uc.clock.now()) {
		return httperr.Invalid("slot", "slot has already started")
	}
	return nil
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Local validation, no store call
	// --------------------------------------------------
	if err := uc.validate(in); err != nil {
		uc.metrics.ObserveBooking("invalid")
		return nil, err
	}

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	svc := in.Service
	if svc == nil {
		loaded, err := loadService(ctx, uc.repo, in.ServiceID)
		if err != nil {
			return nil, err
		}
		svc = loaded
	}

	// --------------------------------------------------
	// 3. Slot interval
	// --------------------------------------------------
	start, _ := domain.ParseClock(in.StartTime)
	slot := domain.Interval{Start: start, End: start + domain.Clock(svc.Duration)}
	if slot.End <= slot.Start {
		return nil, httperr.Invalid("slot", "service has no duration")
	}
	if in.EndTime != "" {
		if end, _ := domain.ParseClock(in.EndTime); end != slot.End {
			return nil, httperr.Invalid("slot",
				fmt.Sprintf("end must be %s for a %d minute service", slot.End, svc.Duration))
		}
	}

	// --------------------------------------------------
	// 4. Opening hours, slot grid and existing bookings
	// --------------------------------------------------
	if err := uc.assertOfferable(ctx, in.Date, slot); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Persist; the store constraint catches concurrent overlaps
	// --------------------------------------------------
	ap := &models.Appointment{
		ServiceID:   svc.ID,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		Date:        in.Date,
		StartTime:   slot.Start.String(),
		EndTime:     slot.End.String(),
		Status:      string(domain.InitialStatus()),
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		ap.Notes = &notes
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, uc.conflict(ap.Date, slot)
		}
		uc.metrics.ObserveBooking("failed")
		return nil, httperr.WriteFailed(err)
	}
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = time.Now()
	}

	uc.metrics.ObserveBooking("created")

	// --------------------------------------------------
	// 6. Audit + best-effort notification
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notify.Dispatch(notify.AppointmentNotification{
		AppointmentID: ap.ID,
		ClientName:    ap.ClientName,
		ClientEmail:   ap.ClientEmail,
		ClientPhone:   ap.ClientPhone,
		ServiceName:   svc.Name,
		Date:          ap.Date,
		Time:          ap.StartTime,
		Notes:         strings.TrimSpace(in.Notes),
	})

	return ap, nil
}

// assertOfferable rejects intervals the slot generator would not offer.
func (uc *CreateAppointment) assertOfferable(
	ctx context.Context,
	date string,
	slot domain.Interval,
) error {

	day, err := uc.clock.parseBookableDate(date)
	if err != nil {
		return err
	}

	av, err := uc.repo.GetAvailability(ctx, int(day.Weekday()))
	if err != nil {
		return httperr.Fetch("availability", err)
	}

	window, err := domain.WindowFrom(av)
	if err != nil {
		return httperr.Fetch("availability", err)
	}

	if window == nil || slot.Start < window.Start || slot.End > window.End {
		return httperr.ErrBusiness("outside_opening_hours")
	}

	step := domain.Clock(domain.SlotStep / time.Minute)
	if (slot.Start-window.Start)%step != 0 {
		return httperr.Invalid("slot", fmt.Sprintf("start must fall on the %d minute grid from %s", step, window.Start))
	}

	appointments, err := uc.repo.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return httperr.Fetch("appointments", err)
	}
	booked, err := domain.BookedIntervals(appointments)
	if err != nil {
		return httperr.Fetch("appointments", err)
	}
	for _, b := range booked {
		if slot.Overlaps(b) {
			return uc.conflict(date, slot)
		}
	}
	return nil
}

func (uc *CreateAppointment) conflict(date string, slot domain.Interval) error {
	uc.metrics.ObserveBooking("conflict")
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_conflict",
		Entity:   "appointment",
		Metadata: map[string]any{"date": date, "start": slot.Start.String(), "end": slot.End.String()},
	})
	return httperr.ErrBusiness("time_conflict")
}
