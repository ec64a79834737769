package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
)

const sendTimeout = 15 * time.Second

// Dispatcher relays notifications on a background worker. Dispatch never
// blocks the caller; when the queue is full the notification is dropped.
type Dispatcher struct {
	notifiers []Notifier
	logger    *zap.Logger
	metrics   *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan AppointmentNotification
	done   chan struct{}
}

func NewDispatcher(
	logger *zap.Logger,
	m *metrics.Metrics,
	notifiers ...Notifier,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		notifiers: notifiers,
		logger:    logger,
		metrics:   m,
		queue:     make(chan AppointmentNotification, 100),
		done:      make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n AppointmentNotification) {
	for _, notifier := range d.notifiers {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := notifier.NotifyAppointment(ctx, n)
		cancel()

		if err != nil {
			d.metrics.ObserveNotification(notifier.Channel(), "failed")
			d.logger.Warn("appointment notification failed",
				zap.String("channel", notifier.Channel()),
				zap.String("appointment_id", n.AppointmentID),
				zap.Error(err),
			)
			continue
		}
		d.metrics.ObserveNotification(notifier.Channel(), "sent")
	}
}

func (d *Dispatcher) Dispatch(n AppointmentNotification) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dispatcher closed, dropping",
			zap.String("appointment_id", n.AppointmentID),
		)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.metrics.ObserveNotification("queue", "dropped")
		d.logger.Warn("notification queue full, dropping",
			zap.String("appointment_id", n.AppointmentID),
		)
	}
}

// Close stops accepting notifications and waits for queued ones, bounded by ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
