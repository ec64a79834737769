package wizard

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Step is the current state of a booking wizard. The order is strictly
// linear: each step is entered only by completing the previous one.
type Step string

const (
	StepServiceSelection Step = "service_selection"
	StepDateSelection    Step = "date_selection"
	StepTimeSelection    Step = "time_selection"
	StepContactForm      Step = "contact_form"
	StepConfirmation     Step = "confirmation"
)

var steps = []Step{
	StepServiceSelection,
	StepDateSelection,
	StepTimeSelection,
	StepContactForm,
	StepConfirmation,
}

func (s Step) index() int {
	for i, st := range steps {
		if st == s {
			return i
		}
	}
	return -1
}

var (
	ErrInvalidTransition = httperr.ErrBusiness("invalid_transition")
	ErrSlotNotOffered    = httperr.ErrBusiness("slot_not_offered")
)

type Contact struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	Notes       string `json:"notes"`
}

// Session is the draft booking carried through the wizard.
type Session struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	Service *models.Service        `json:"service,omitempty"`
	Date    string                 `json:"date,omitempty"`
	Slots   []appointment.TimeSlot `json:"slots,omitempty"`
	Slot    *appointment.TimeSlot  `json:"slot,omitempty"`
	Contact Contact                `json:"contact"`
	Booked  *models.Appointment    `json:"appointment,omitempty"`
	Message string                 `json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      StepServiceSelection,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) expect(step Step) error {
	if s.Step != step {
		return ErrInvalidTransition
	}
	return nil
}

// SelectService completes ServiceSelection.
func (s *Session) SelectService(svc *models.Service) error {
	if err := s.expect(StepServiceSelection); err != nil {
		return err
	}
	if svc == nil {
		return httperr.Missing("service")
	}

	s.Service = svc
	s.Date = ""
	s.Slots = nil
	s.Slot = nil
	s.Message = ""
	s.Step = StepDateSelection
	return nil
}

// SelectDate completes DateSelection with the slot snapshot for that date.
func (s *Session) SelectDate(res *appointment.AvailabilityResult) error {
	if err := s.expect(StepDateSelection); err != nil {
		return err
	}
	if res == nil || res.Date == "" {
		return httperr.Missing("date")
	}

	s.Date = res.Date
	s.Slots = res.Slots
	s.Message = res.Message
	s.Slot = nil
	s.Step = StepTimeSelection
	return nil
}

// SelectSlot completes TimeSelection; only slots from the snapshot are accepted.
func (s *Session) SelectSlot(startTime string) error {
	if err := s.expect(StepTimeSelection); err != nil {
		return err
	}
	if startTime == "" {
		return httperr.Missing("slot")
	}

	for i := range s.Slots {
		if s.Slots[i].StartTime == startTime {
			slot := s.Slots[i]
			s.Slot = &slot
			s.Step = StepContactForm
			return nil
		}
	}
	return ErrSlotNotOffered
}

// SetContact records the contact draft without leaving ContactForm.
func (s *Session) SetContact(c Contact) error {
	if err := s.expect(StepContactForm); err != nil {
		return err
	}
	s.Contact = c
	return nil
}

// Confirm completes ContactForm with the stored appointment.
func (s *Session) Confirm(ap *models.Appointment) error {
	if err := s.expect(StepContactForm); err != nil {
		return err
	}
	s.Booked = ap
	s.Step = StepConfirmation
	return nil
}

// Back returns exactly one step. It is a no-op on the first step and
// rejected on Confirmation, which only Reset leaves.
func (s *Session) Back() error {
	switch s.Step {
	case StepServiceSelection:
		return nil
	case StepConfirmation:
		return ErrInvalidTransition
	}

	i := s.Step.index()
	if i <= 0 {
		return ErrInvalidTransition
	}
	s.Step = steps[i-1]
	return nil
}

// Reset returns to ServiceSelection with every draft field cleared.
func (s *Session) Reset() {
	*s = Session{
		ID:        s.ID,
		Step:      StepServiceSelection,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
