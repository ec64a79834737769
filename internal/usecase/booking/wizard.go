package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// Wizard drives booking sessions through the wizard steps. Every failed
// call leaves the stored session on the step it was on.
type Wizard struct {
	store        wizard.Store
	services     ServiceLoader
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	metrics      *metrics.Metrics
	logger       *zap.Logger
	now          func() time.Time

	// submitTimeout bounds the write so it ends before the submit lock expires.
	submitTimeout time.Duration
}

// SubmitTimeout stays below the submit lock TTL.
const SubmitTimeout = wizard.SubmitLockTTL - 10*time.Second

type ServiceLoader interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
}

func NewWizard(
	store wizard.Store,
	services ServiceLoader,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{
		store:        store,
		services:     services,
		availability: availability,
		create:       create,
		metrics:      m,
		logger:       logger,
		now:          time.Now,

		submitTimeout: SubmitTimeout,
	}
}

func (w *Wizard) Start(ctx context.Context) (*wizard.Session, error) {
	sess := wizard.New(uuid.NewString(), w.now())
	if err := w.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	w.metrics.ObserveTransition(string(sess.Step))
	return sess, nil
}

func (w *Wizard) Get(ctx context.Context, id string) (*wizard.Session, error) {
	sess, err := w.store.Get(ctx, id)
	if errors.Is(err, wizard.ErrSessionNotFound) {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if err != nil {
		return nil, httperr.Fetch("session", err)
	}
	return sess, nil
}

// update loads the session, applies fn and persists the result only when fn succeeds.
func (w *Wizard) update(
	ctx context.Context,
	id string,
	fn func(*wizard.Session) error,
) (*wizard.Session, error) {

	sess, err := w.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.UpdatedAt = w.now()
	if err := w.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	w.metrics.ObserveTransition(string(sess.Step))
	return sess, nil
}

func (w *Wizard) ChooseService(ctx context.Context, id, serviceID string) (*wizard.Session, error) {
	return w.update(ctx, id, func(s *wizard.Session) error {
		if s.Step != wizard.StepServiceSelection {
			return wizard.ErrInvalidTransition
		}
		if serviceID == "" {
			return httperr.Missing("service_id")
		}
		if _, err := uuid.Parse(serviceID); err != nil {
			return httperr.ErrBusiness("service_not_found")
		}

		svc, err := w.services.GetService(ctx, serviceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("service_not_found")
		}
		if err != nil {
			return httperr.Fetch("services", err)
		}
		return s.SelectService(svc)
	})
}

func (w *Wizard) ChooseDate(ctx context.Context, id, date string) (*wizard.Session, error) {
	return w.update(ctx, id, func(s *wizard.Session) error {
		if s.Step != wizard.StepDateSelection {
			return wizard.ErrInvalidTransition
		}

		res, err := w.availability.ExecuteFor(ctx, s.Service, date)
		if err != nil {
			return err
		}
		return s.SelectDate(res)
	})
}

func (w *Wizard) ChooseSlot(ctx context.Context, id, startTime string) (*wizard.Session, error) {
	return w.update(ctx, id, func(s *wizard.Session) error {
		return s.SelectSlot(startTime)
	})
}

// Submit writes the appointment. A concurrent submit for the same session
// is rejected while the first one is in flight, and the session is read
// only once the lock is held so a finished submit cannot be replayed.
func (w *Wizard) Submit(ctx context.Context, id string, contact wizard.Contact) (*wizard.Session, error) {
	if _, err := w.Get(ctx, id); err != nil {
		return nil, err
	}

	ok, err := w.store.AcquireSubmit(ctx, id)
	if err != nil {
		return nil, httperr.Fetch("session", err)
	}
	if !ok {
		return nil, httperr.ErrBusiness("submission_in_progress")
	}
	defer func() {
		if err := w.store.ReleaseSubmit(context.WithoutCancel(ctx), id); err != nil {
			w.logger.Warn("release submit lock", zap.String("session_id", id), zap.Error(err))
		}
	}()

	sess, err := w.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.SetContact(contact); err != nil {
		return nil, err
	}

	in := ucAppointment.CreateAppointmentInput{
		Service:     sess.Service,
		ClientName:  contact.ClientName,
		ClientEmail: contact.ClientEmail,
		ClientPhone: contact.ClientPhone,
		Date:        sess.Date,
		Notes:       contact.Notes,
	}
	if sess.Slot != nil {
		in.StartTime = sess.Slot.StartTime
		in.EndTime = sess.Slot.EndTime
	}

	writeCtx, cancel := context.WithTimeout(ctx, w.submitTimeout)
	ap, createErr := w.create.Execute(writeCtx, in)
	cancel()

	// Keep the contact draft on the form step whatever the outcome.
	if createErr == nil {
		if err := sess.Confirm(ap); err != nil {
			return nil, err
		}
	}
	sess.UpdatedAt = w.now()
	if err := w.store.Save(ctx, sess); err != nil {
		if createErr == nil {
			w.logger.Error("booking stored but session not saved",
				zap.String("session_id", id),
				zap.String("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if createErr != nil {
		return nil, createErr
	}

	w.metrics.ObserveTransition(string(sess.Step))
	return sess, nil
}

func (w *Wizard) Back(ctx context.Context, id string) (*wizard.Session, error) {
	return w.update(ctx, id, func(s *wizard.Session) error {
		return s.Back()
	})
}

func (w *Wizard) Reset(ctx context.Context, id string) (*wizard.Session, error) {
	return w.update(ctx, id, func(s *wizard.Session) error {
		s.Reset()
		return nil
	})
}
