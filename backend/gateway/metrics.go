package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes recorded per webhook action.
const (
	outcomeOK          = "ok"
	outcomeNotFound    = "not_found"
	outcomeUnavailable = "upstream_error"
	outcomeMalformed   = "malformed_response"
)

// Metrics tracks outbound webhook calls. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskbridge",
			Subsystem: "webhook",
			Name:      "calls_total",
			Help:      "Outbound webhook calls by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskbridge",
			Subsystem: "webhook",
			Name:      "call_duration_seconds",
			Help:      "Outbound webhook call latency by action.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.calls, m.duration)
	}

	return m
}

func (m *Metrics) observe(action string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := outcomeOK
	switch {
	case IsNotFound(err):
		outcome = outcomeNotFound
	case IsMalformedResponse(err):
		outcome = outcomeMalformed
	case err != nil:
		outcome = outcomeUnavailable
	}

	m.calls.WithLabelValues(action, outcome).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}
