package waitlist

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeJoined       = "joined"
	outcomeDuplicate    = "duplicate"
	outcomeInvalid      = "invalid"
	outcomeStorageError = "storage_error"

	confirmationSent    = "sent"
	confirmationFailed  = "failed"
	confirmationSkipped = "skipped"
)

type Metrics struct {
	submissions   *prometheus.CounterVec
	confirmations *prometheus.CounterVec
}

// NewMetrics registers the waitlist counters on reg. A nil reg gets a private
// registry so callers never have to nil-check.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_submissions_total",
				Help: "Waitlist submissions by outcome.",
			},
			[]string{"outcome"},
		),
		confirmations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_confirmation_emails_total",
				Help: "Confirmation emails by result.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.submissions, m.confirmations)
	return m
}

func (m *Metrics) observeSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeConfirmation(result string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(result).Inc()
}
