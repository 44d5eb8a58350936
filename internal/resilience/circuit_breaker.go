// Package resilience protects calls to the live collaborator backends with
// a circuit breaker and bounded retry.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without attempting it.
var ErrOpen = errors.New("circuit breaker is open")

// State of a circuit breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// CircuitBreaker trips after maxFailures consecutive failures and allows a
// probe call once resetTimeout has elapsed. A successful probe closes the
// circuit; a failed probe reopens it.
type CircuitBreaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration

	mu           sync.Mutex
	state        State
	failures     int
	lastFailTime time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        StateClosed,
	}
}

// Do executes fn under breaker protection. When the circuit is open and the
// reset timeout has not elapsed, fn is not called and ErrOpen is returned.
func (cb *CircuitBreaker) Do(fn func() error) error {
	if !cb.allow() {
		return ErrOpen
	}

	err := fn()
	cb.record(err == nil)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(cb.lastFailTime) >= cb.resetTimeout {
			cb.state = StateHalfOpen
			return true
		}
		return false
	}
	return false
}

func (cb *CircuitBreaker) record(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.state = StateClosed
		cb.failures = 0
		return
	}

	cb.lastFailTime = time.Now()
	if cb.state == StateHalfOpen {
		cb.state = StateOpen
		return
	}
	cb.failures++
	if cb.failures >= cb.maxFailures {
		cb.state = StateOpen
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Name returns the breaker's service name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}
