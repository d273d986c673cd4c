package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the marketplace.
type Metrics struct {
	RegistrationsCompleted prometheus.Counter
	VerificationOutcomes   *prometheus.CounterVec
	BookingTransitions     *prometheus.CounterVec
	PaymentsProcessed      *prometheus.CounterVec
}

// New creates and registers all metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careconnect_registrations_completed_total",
			Help: "Caregiver registrations that reached profile creation",
		}),
		VerificationOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careconnect_verification_outcomes_total",
			Help: "Simulated verification outcomes by status",
		}, []string{"status"}),
		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careconnect_booking_transitions_total",
			Help: "Booking status transitions by target status",
		}, []string{"to"}),
		PaymentsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careconnect_payments_processed_total",
			Help: "Registration fee charges by result",
		}, []string{"result"}),
	}
}

// IncVerification records a verification outcome.
func (m *Metrics) IncVerification(status string) {
	if m != nil {
		m.VerificationOutcomes.WithLabelValues(status).Inc()
	}
}

// IncBookingTransition records a booking status change.
func (m *Metrics) IncBookingTransition(to string) {
	if m != nil {
		m.BookingTransitions.WithLabelValues(to).Inc()
	}
}

// IncPayment records a charge result ("success" or "declined").
func (m *Metrics) IncPayment(result string) {
	if m != nil {
		m.PaymentsProcessed.WithLabelValues(result).Inc()
	}
}

// IncRegistrationCompleted records a finished wizard.
func (m *Metrics) IncRegistrationCompleted() {
	if m != nil {
		m.RegistrationsCompleted.Inc()
	}
}
