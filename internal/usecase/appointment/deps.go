package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type AuditDispatcher interface {
	Dispatch(ev audit.Event)
}

type NotificationDispatcher interface {
	Dispatch(n notify.AppointmentNotification)
}

// Clock resolves "now" in the clinic timezone.
type Clock struct {
	TZ  string
	Now func() time.Time
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now().In(timezone.Location(c.TZ))
	}
	return timezone.NowIn(c.TZ)
}

func minuteOfDay(t time.Time) domain.Clock {
	return domain.Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) Today() string {
	return c.now().Format(timezone.DateLayout)
}

// parseBookableDate parses date and rejects days before today.
func (c Clock) parseBookableDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, httperr.Missing("date")
	}

	d, err := timezone.ParseDate(c.TZ, date)
	if err != nil {
		return time.Time{}, httperr.Invalid("date", "expected yyyy-MM-dd")
	}

	if date < c.Today() {
		return time.Time{}, httperr.Invalid("date", "date is in the past")
	}

	return d, nil
}

func loadService(ctx context.Context, repo domain.Repository, id string) (*models.Service, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	svc, err := repo.GetService(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, httperr.Fetch("services", err)
	}
	return svc, nil
}

func loadAppointment(ctx context.Context, repo domain.Repository, id string) (*models.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, httperr.Fetch("appointments", err)
	}
	return ap, nil
}
