package external

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	MaxRequests uint32        `json:"max_requests"`
	Interval    time.Duration `json:"interval"`
	Timeout     time.Duration `json:"timeout"`
	// MinRequests and FailureRatio decide when the breaker trips
	MinRequests  uint32  `json:"min_requests"`
	FailureRatio float64 `json:"failure_ratio"`
}

// DefaultCircuitBreakerConfig trips after 3 requests with at least 60% failures
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests:  5,
		Interval:     30 * time.Second,
		Timeout:      60 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// NewCircuitBreaker creates a named breaker that logs its state changes
func NewCircuitBreaker(name string, config CircuitBreakerConfig, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker changed state")
		},
	})
}
