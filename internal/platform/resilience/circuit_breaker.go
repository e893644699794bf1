// Package resilience guards outbound dependencies with a circuit breaker.
package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker counts consecutive transient failures of one dependency and
// sheds calls while open. A disabled breaker admits every call.
type CircuitBreaker struct {
	dependency string
	cfg        CircuitBreakerConfig
	logger     *logging.Logger
	now        func() time.Time

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openedAt  time.Time
	trials    int
	successes int
}

func NewCircuitBreaker(dependency string, cfg CircuitBreakerConfig, logger *logging.Logger) *CircuitBreaker {
	if logger == nil {
		logger = logging.Default()
	}
	return &CircuitBreaker{
		dependency: dependency,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		now:        time.Now,
		state:      CircuitStateClosed,
	}
}

// Allow admits a call or returns an error wrapping ErrCircuitOpen. Every
// admitted call must be reported back through Done exactly once.
func (b *CircuitBreaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return fmt.Errorf("%w: %s", ErrCircuitOpen, b.dependency)
		}
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.trials >= b.cfg.HalfOpenMaxReq {
			return fmt.Errorf("%w: %s is being retried", ErrCircuitOpen, b.dependency)
		}
		b.trials++
	}
	return nil
}

// Done records the outcome of an admitted call. Only transient failures
// count against the dependency; client errors are reported as success.
func (b *CircuitBreaker) Done(transientFailure bool) {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		if !transientFailure {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.trials > 0 {
			b.trials--
		}
		if transientFailure {
			b.moveTo(CircuitStateOpen)
			return
		}
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq && b.trials == 0 {
			b.moveTo(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if transientFailure {
			b.openedAt = b.now()
		}
	}
}

// State reports half-open once the open timeout has elapsed, even before the
// next call arrives.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) moveTo(next CircuitState) {
	prev := b.state
	b.state = next
	b.trials = 0
	b.successes = 0
	switch next {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}

	if prev != next {
		b.logger.Warn("circuit breaker state changed",
			"dependency", b.dependency,
			"from", string(prev),
			"to", string(next),
		)
	}
}
