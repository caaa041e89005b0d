package client

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings configures WithCircuitBreaker. Zero values take defaults.
type BreakerSettings struct {
	// Name labels state-change logs. Defaults to "relay-api".
	Name string
	// ConsecutiveFailures opens the circuit. Defaults to 5.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before probing. Defaults to 30s.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of probes allowed while half-open. Defaults to 1.
	HalfOpenRequests uint32
}

func newBreaker(s BreakerSettings, c *Client) *gobreaker.TwoStepCircuitBreaker[struct{}] {
	if s.Name == "" {
		s.Name = "relay-api"
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.HalfOpenRequests == 0 {
		s.HalfOpenRequests = 1
	}
	threshold := s.ConsecutiveFailures
	return gobreaker.NewTwoStepCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})
}
