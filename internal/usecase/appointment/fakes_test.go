package appointment

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

const (
	massageID = "6f1c1f7e-8a6b-4f0a-9d7e-1b2c3d4e5f60"
	apptID    = "0b8e9a52-2f4e-4c3a-8f61-7d2a9c0e1b34"
)

// fakeRepo is an in-memory Repository. Calls counts every method invocation.
type fakeRepo struct {
	mu sync.Mutex

	services     map[string]models.Service
	availability map[int]models.Availability
	appointments []models.Appointment

	calls int

	getAvailabilityErr error
	listByDateErr      error
	createErr          error
	getServiceErr      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[string]models.Service{
			massageID: {ID: massageID, Name: "Massage", Duration: 30},
		},
		availability: map[int]models.Availability{},
	}
}

func (r *fakeRepo) open(day time.Weekday, start, end string) {
	r.availability[int(day)] = models.Availability{DayOfWeek: int(day), StartTime: start, EndTime: end}
}

func (r *fakeRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.getServiceErr != nil {
		return nil, r.getServiceErr
	}
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetAvailability(ctx context.Context, dayOfWeek int) (*models.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.getAvailabilityErr != nil {
		return nil, r.getAvailabilityErr
	}
	av, ok := r.availability[dayOfWeek]
	if !ok {
		return nil, nil
	}
	return &av, nil
}

func (r *fakeRepo) ListAvailability(ctx context.Context) ([]models.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := make([]models.Availability, 0, len(r.availability))
	for d := 0; d < 7; d++ {
		if av, ok := r.availability[d]; ok {
			out = append(out, av)
		}
	}
	return out, nil
}

func (r *fakeRepo) ReplaceAvailability(ctx context.Context, windows []models.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.availability = map[int]models.Availability{}
	for _, w := range windows {
		r.availability[w.DayOfWeek] = w
	}
	return nil
}

func (r *fakeRepo) ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listByDateErr != nil {
		return nil, r.listByDateErr
	}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Date == date && ap.Status != string(domain.StatusCancelled) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, from, to string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Date >= from && ap.Date < to {
			ap.Service = r.services[ap.ServiceID]
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	if ap.ID == "" {
		ap.ID = apptID
	}
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, ap := range r.appointments {
		if ap.ID == id {
			cp := ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ domain.Repository = (*fakeRepo)(nil)

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.AppointmentNotification
}

func (n *recordingNotifier) Dispatch(a notify.AppointmentNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, a)
}

// fixedClock is Monday 2 March 2026, 08:00 in the clinic timezone.
func fixedClock() Clock {
	return Clock{
		TZ: "UTC",
		Now: func() time.Time {
			return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
		},
	}
}
