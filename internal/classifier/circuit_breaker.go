package classifier

import (
	"sync"
	"time"
)

// CircuitBreakerState represents the state of the breaker.
type CircuitBreakerState int

const (
	CircuitClosed   CircuitBreakerState = iota // normal operation
	CircuitOpen                                // failing fast
	CircuitHalfOpen                            // probing
)

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	FailThreshold int           // consecutive failures before opening (default 5)
	Cooldown      time.Duration // how long to stay open before half-open (default 30s)
	FailWindow    time.Duration // reset consecutive counter if last failure is older than this (default 60s)
}

// DefaultCircuitBreakerConfig returns the default config.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailThreshold: 5,
		Cooldown:      30 * time.Second,
		FailWindow:    60 * time.Second,
	}
}

// CircuitBreaker tracks consecutive upstream failures and fails fast while
// the upstream is down. It never retries on the caller's behalf.
type CircuitBreaker struct {
	mu               sync.Mutex
	config           CircuitBreakerConfig
	consecutiveFails int
	lastFailTime     time.Time
	openedAt         time.Time
	state            CircuitBreakerState
}

// NewCircuitBreaker creates a new CircuitBreaker with the given config.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailThreshold <= 0 {
		config.FailThreshold = 5
	}
	if config.Cooldown <= 0 {
		config.Cooldown = 30 * time.Second
	}
	if config.FailWindow <= 0 {
		config.FailWindow = 60 * time.Second
	}
	return &CircuitBreaker{config: config}
}

// Allow reports whether a call should proceed. It returns true while the
// circuit is closed or half-open (probe), false while open.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		if time.Since(cb.openedAt) >= cb.config.Cooldown {
			cb.state = CircuitHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

// RecordSuccess closes the circuit and resets the failure counter.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.consecutiveFails = 0
	cb.state = CircuitClosed
}

// RecordFailure counts a failed call and opens the circuit once the
// threshold of consecutive failures is reached.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	if !cb.lastFailTime.IsZero() && now.Sub(cb.lastFailTime) > cb.config.FailWindow {
		cb.consecutiveFails = 0
	}
	cb.consecutiveFails++
	cb.lastFailTime = now

	if cb.consecutiveFails >= cb.config.FailThreshold {
		cb.state = CircuitOpen
		cb.openedAt = now
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
