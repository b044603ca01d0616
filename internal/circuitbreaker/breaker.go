package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("circuit breaker probe already in flight")
)

// Defaults used for vocabulary store reads
const (
	DefaultMaxFailures = 5
	DefaultOpenTimeout = 30 * time.Second
)

// State represents circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Config controls when a breaker trips and how long it stays open
type Config struct {
	Name        string
	MaxFailures int           // consecutive failures before opening
	OpenTimeout time.Duration // time spent open before a probe is allowed

	// OnStateChange is called with the breaker lock released
	OnStateChange func(name string, from, to State)

	// IsFailure decides which errors count against the breaker.
	// Context cancellation by the caller never does.
	IsFailure func(err error) bool

	now func() time.Time
}

// CircuitBreaker stops calling a failing dependency for a while after
// MaxFailures consecutive errors, then lets a single probe through.
type CircuitBreaker struct {
	cfg Config

	mu         sync.Mutex
	state      State
	failures   int
	openedAt   time.Time
	probing    bool
	totalCalls int64
	rejected   int64
}

// Stats is a point-in-time view of a breaker
type Stats struct {
	State               State
	ConsecutiveFailures int
	TotalCalls          int64
	Rejected            int64
}

// New creates a breaker, filling zero config fields with defaults
func New(cfg Config) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = DefaultMaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultOpenTimeout
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &CircuitBreaker{cfg: cfg}
}

// Execute runs fn unless the breaker is open. The error from fn is returned
// unchanged; a rejected call returns ErrCircuitOpen or ErrTooManyRequests
// without running fn.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe, err := cb.allow()
	if err != nil {
		return err
	}

	err = fn(ctx)
	cb.record(probe, err)
	return err
}

func (cb *CircuitBreaker) allow() (probe bool, err error) {
	cb.mu.Lock()
	cb.totalCalls++

	var transition func()
	switch cb.state {
	case StateOpen:
		if cb.cfg.now().Sub(cb.openedAt) < cb.cfg.OpenTimeout {
			cb.rejected++
			cb.mu.Unlock()
			return false, ErrCircuitOpen
		}
		transition = cb.setState(StateHalfOpen)
		cb.probing = true
		probe = true
	case StateHalfOpen:
		if cb.probing {
			cb.rejected++
			cb.mu.Unlock()
			return false, ErrTooManyRequests
		}
		cb.probing = true
		probe = true
	}
	cb.mu.Unlock()

	if transition != nil {
		transition()
	}
	return probe, nil
}

func (cb *CircuitBreaker) record(probe bool, err error) {
	failed := err != nil && cb.countsAsFailure(err)

	cb.mu.Lock()
	if probe {
		cb.probing = false
	}

	var transition func()
	switch {
	case failed:
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.MaxFailures {
			cb.openedAt = cb.cfg.now()
			transition = cb.setState(StateOpen)
		}
	case err == nil:
		cb.failures = 0
		if cb.state == StateHalfOpen {
			transition = cb.setState(StateClosed)
		}
	}
	cb.mu.Unlock()

	if transition != nil {
		transition()
	}
}

func (cb *CircuitBreaker) countsAsFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if cb.cfg.IsFailure != nil {
		return cb.cfg.IsFailure(err)
	}
	return true
}

// setState must be called with mu held; the returned func fires the
// callback and must be called after unlocking.
func (cb *CircuitBreaker) setState(to State) func() {
	from := cb.state
	if from == to {
		return nil
	}
	cb.state = to
	if cb.cfg.OnStateChange == nil {
		return nil
	}
	name, hook := cb.cfg.Name, cb.cfg.OnStateChange
	return func() { hook(name, from, to) }
}

// State returns the current state. An open breaker whose timeout has passed
// still reports open until the next call probes it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return Stats{
		State:               cb.state,
		ConsecutiveFailures: cb.failures,
		TotalCalls:          cb.totalCalls,
		Rejected:            cb.rejected,
	}
}

// Reset closes the breaker and clears the failure count
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	transition := cb.setState(StateClosed)
	cb.failures = 0
	cb.probing = false
	cb.mu.Unlock()

	if transition != nil {
		transition()
	}
}
