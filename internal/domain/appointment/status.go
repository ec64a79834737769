package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions lists the statuses reachable from each status. Cancelled and
// completed are terminal.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusCancelled, StatusCompleted},
}

func InitialStatus() Status {
	return StatusScheduled
}

// BlocksSlot reports whether a booking in this status still occupies its time.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}
