package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type clientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	m := &clientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relayctl",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend API requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "relayctl",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend API round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	m.requests = registerOrExisting(reg, m.requests)
	m.duration = registerOrExisting(reg, m.duration)
	return m
}

// registerOrExisting lets several clients share one registry.
func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// observe is a no-op on a nil receiver so callers need not check.
func (m *clientMetrics) observe(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	if elapsed > 0 {
		m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
}
