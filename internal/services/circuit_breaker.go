package services

import (
	"errors"
	"sync"
	"time"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/models"
)

var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// DefaultCircuitBreakerConfig is used for any zero field of the configured values
func DefaultCircuitBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		MaxFailures:     5,
		ResetTimeout:    30 * time.Second,
		HalfOpenMaxSucc: 3,
	}
}

const (
	StateClosed models.CircuitBreakerState = iota
	StateOpen
	StateHalfOpen
)

// CircuitBreaker stops calls to the transactions API after repeated failures.
// Once ResetTimeout has passed it lets calls through again (half-open) and
// closes after HalfOpenMaxSucc consecutive successes.
type CircuitBreaker struct {
	mu                sync.RWMutex
	config            config.CircuitBreakerConfig
	state             models.CircuitBreakerState
	failures          int
	halfOpenSuccesses int
	openedAt          time.Time
	now               func() time.Time
}

func NewCircuitBreaker(cfg config.CircuitBreakerConfig) CircuitBreakerInterface {
	return newCircuitBreaker(cfg, time.Now)
}

func newCircuitBreaker(cfg config.CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaults.MaxFailures
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = defaults.ResetTimeout
	}
	if cfg.HalfOpenMaxSucc <= 0 {
		cfg.HalfOpenMaxSucc = defaults.HalfOpenMaxSucc
	}

	return &CircuitBreaker{
		config: cfg,
		state:  StateClosed,
		now:    now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.ResetTimeout {
		cb.state = StateHalfOpen
		cb.halfOpenSuccesses = 0
	}

	return cb.state == StateOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses >= cb.config.HalfOpenMaxSucc {
			cb.close()
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.open()
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.open()
		}
	}
}

func (cb *CircuitBreaker) open() {
	cb.state = StateOpen
	cb.openedAt = cb.now()
	cb.halfOpenSuccesses = 0
}

func (cb *CircuitBreaker) close() {
	cb.state = StateClosed
	cb.failures = 0
	cb.halfOpenSuccesses = 0
}

func (cb *CircuitBreaker) GetState() models.CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// GetFailureCount is the number of consecutive failures while closed
func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}
