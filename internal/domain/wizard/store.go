package wizard

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SubmitLockTTL is how long a submit lock survives a crashed holder.
const SubmitLockTTL = 30 * time.Second

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error

	// AcquireSubmit takes the per-session submit lock; false means a
	// submission is already in flight.
	AcquireSubmit(ctx context.Context, id string) (bool, error)
	ReleaseSubmit(ctx context.Context, id string) error
}
