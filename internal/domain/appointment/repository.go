package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Services --------
	ListServices(ctx context.Context) ([]models.Service, error)

	GetService(ctx context.Context, id string) (*models.Service, error)

	// -------- Availability --------

	// GetAvailability returns nil, nil when the clinic is closed on dayOfWeek.
	GetAvailability(ctx context.Context, dayOfWeek int) (*models.Availability, error)

	ListAvailability(ctx context.Context) ([]models.Availability, error)

	ReplaceAvailability(ctx context.Context, windows []models.Availability) error

	// -------- Appointments --------

	// ListAppointmentsByDate returns the non-cancelled bookings of one date.
	ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
}
