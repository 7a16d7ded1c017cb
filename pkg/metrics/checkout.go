package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records submission outcomes for the checkout flow.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	submitted *prometheus.CounterVec
	recovered prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_submission_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	recovered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_recovered_total",
		Help: "Pending checkout snapshots consumed after a payment redirect.",
	})
	reg.MustRegister(duration, submitted, recovered)
	return &CheckoutMetrics{
		duration:  duration,
		submitted: submitted,
		recovered: recovered,
	}
}

// ObserveSubmission records one submission attempt with its outcome and duration.
func (c *CheckoutMetrics) ObserveSubmission(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	label := normalizeLabel(outcome)
	if c.duration != nil {
		c.duration.WithLabelValues(label).Observe(duration.Seconds())
	}
	if c.submitted != nil {
		c.submitted.WithLabelValues(label).Inc()
	}
}

// IncSessionRecovered counts one consumed pending-checkout snapshot.
func (c *CheckoutMetrics) IncSessionRecovered() {
	if c == nil || c.recovered == nil {
		return
	}
	c.recovered.Inc()
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
