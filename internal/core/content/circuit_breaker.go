package content

import (
	"fmt"
	"sync"
	"time"
)

// circuitState represents the state of the circuit breaker
type circuitState int

const (
	stateClosed   circuitState = iota // Normal operation
	stateOpen                         // Upstream failing, calls rejected
	stateHalfOpen                     // Probing whether upstream recovered
)

// circuitBreaker stops hammering the post service once it starts failing.
// After failureThreshold consecutive failures the circuit opens for
// openDuration; the first call after that window is a half-open probe.
type circuitBreaker struct {
	mu               sync.Mutex
	state            circuitState
	failures         int
	lastFailure      time.Time
	failureThreshold int
	openDuration     time.Duration
}

// newCircuitBreaker creates a circuit breaker with the default settings
func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{
		failureThreshold: 3,
		openDuration:     30 * time.Second,
	}
}

// canAttempt reports whether a call should be attempted right now
func (cb *circuitBreaker) canAttempt() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case stateOpen:
		if time.Since(cb.lastFailure) > cb.openDuration {
			cb.state = stateHalfOpen
			return nil
		}
		nextRetry := cb.lastFailure.Add(cb.openDuration)
		return fmt.Errorf("%w (failures: %d, next retry: %s)",
			ErrCircuitOpen, cb.failures, nextRetry.Format("15:04:05"))
	default:
		return nil
	}
}

// recordSuccess resets failure tracking and closes the circuit
func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.state = stateClosed
}

// recordFailure counts a failure and opens the circuit at the threshold.
// A failed half-open probe reopens immediately.
func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = time.Now()

	if cb.state == stateHalfOpen || cb.failures >= cb.failureThreshold {
		cb.state = stateOpen
	}
}
