package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GetAvailability struct {
	repo    domain.Repository
	clock   Clock
	metrics *metrics.Metrics
}

func NewGetAvailability(
	repo domain.Repository,
	clock Clock,
	m *metrics.Metrics,
) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock, metrics: m}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	if in.ServiceID == "" {
		return nil, httperr.Missing("service_id")
	}
	if _, err := uc.clock.parseBookableDate(in.Date); err != nil {
		return nil, err
	}

	svc, err := loadService(ctx, uc.repo, in.ServiceID)
	if err != nil {
		return nil, err
	}

	return uc.ExecuteFor(ctx, svc, in.Date)
}

// ExecuteFor computes the offerable slots for an already loaded service.
func (uc *GetAvailability) ExecuteFor(
	ctx context.Context,
	svc *models.Service,
	date string,
) (*domain.AvailabilityResult, error) {

	day, err := uc.clock.parseBookableDate(date)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Availability window of the weekday
	// --------------------------------------------------
	av, err := uc.repo.GetAvailability(ctx, int(day.Weekday()))
	if err != nil {
		return nil, httperr.Fetch("availability", err)
	}

	window, err := domain.WindowFrom(av)
	if err != nil {
		return nil, httperr.Fetch("availability", err)
	}

	if window == nil {
		return uc.result(date, []domain.TimeSlot{}), nil
	}

	// --------------------------------------------------
	// Existing bookings snapshot
	// --------------------------------------------------
	appointments, err := uc.repo.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, httperr.Fetch("appointments", err)
	}

	booked, err := domain.BookedIntervals(appointments)
	if err != nil {
		return nil, httperr.Fetch("appointments", err)
	}

	slots := domain.GenerateSlots(
		window,
		time.Duration(svc.Duration)*time.Minute,
		domain.SlotStep,
		booked,
	)

	if date == uc.clock.Today() {
		slots = dropStarted(slots, uc.clock.now())
	}

	return uc.result(date, slots), nil
}

func (uc *GetAvailability) result(date string, slots []domain.TimeSlot) *domain.AvailabilityResult {
	uc.metrics.ObserveOfferedSlots(len(slots))

	res := &domain.AvailabilityResult{Date: date, Slots: slots}
	if len(slots) == 0 {
		res.Message = domain.NoSlotsMessage
	}
	return res
}

// dropStarted removes slots whose start is not after now.
func dropStarted(slots []domain.TimeSlot, now time.Time) []domain.TimeSlot {
	current := minuteOfDay(now)

	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		start, err := domain.ParseClock(s.StartTime)
		if err != nil || start <= current {
			continue
		}
		out = append(out, s)
	}
	return out
}
