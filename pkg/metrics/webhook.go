package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WebhookMetrics records the intake pipeline's terminal outcomes.
type WebhookMetrics struct {
	duration *prometheus.HistogramVec
	received prometheus.Counter
	outcomes *prometheus.CounterVec
}

// NewWebhookMetrics registers the webhook metrics on the provided registerer.
func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	if reg == nil {
		return &WebhookMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webhook_duration_seconds",
		Help:    "Duration of webhook intake processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	received := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_received_total",
		Help: "Inbound webhook requests, before any processing.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_outcomes_total",
		Help: "Webhook requests by terminal HTTP status.",
	}, []string{"status"})
	reg.MustRegister(duration, received, outcomes)
	return &WebhookMetrics{
		duration: duration,
		received: received,
		outcomes: outcomes,
	}
}

// IncReceived counts one inbound request.
func (w *WebhookMetrics) IncReceived() {
	if w == nil || w.received == nil {
		return
	}
	w.received.Inc()
}

// ObserveOutcome records the terminal status and processing duration.
func (w *WebhookMetrics) ObserveOutcome(status int, duration time.Duration) {
	if w == nil || w.outcomes == nil {
		return
	}
	label := strconv.Itoa(status)
	w.outcomes.WithLabelValues(label).Inc()
	w.duration.WithLabelValues(label).Observe(duration.Seconds())
}
