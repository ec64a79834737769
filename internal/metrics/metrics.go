package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters and histograms for the booking flow.
type Metrics struct {
	bookingsTotal      *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	wizardTransitions  *prometheus.CounterVec
	offeredSlots       prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Appointment notifications by channel and outcome",
		}, []string{"channel", "outcome"}),
		wizardTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "wizard_transitions_total",
			Help:      "Booking wizard transitions by target step",
		}, []string{"step"}),
		offeredSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "offered_slots",
			Help:      "Number of slots offered per availability query",
			Buckets:   []float64{0, 1, 2, 4, 8, 12, 16, 24, 32},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.notificationsTotal, m.wizardTransitions, m.offeredSlots)
	return m
}

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveNotification(channel, outcome string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) ObserveTransition(step string) {
	if m == nil {
		return
	}
	m.wizardTransitions.WithLabelValues(step).Inc()
}

func (m *Metrics) ObserveOfferedSlots(n int) {
	if m == nil {
		return
	}
	m.offeredSlots.Observe(float64(n))
}
