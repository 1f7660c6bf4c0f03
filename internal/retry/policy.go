// Package retry provides backoff policies for transient failures.
package retry

import (
	"context"
	"time"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

// Mode selects how the delay grows between attempts.
type Mode string

const (
	ModeFixed       Mode = "fixed"
	ModeLinear      Mode = "linear"
	ModeExponential Mode = "exponential"
)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       Mode          // fixed|linear|exponential
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // maximum retry attempts after the first failure
}

// DefaultPolicy never retries; the linear 1s/30s settings apply once retries are enabled.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 0}
}

// NewPolicy builds a policy from raw config fields; zero/invalid values fall back to defaults.
func NewPolicy(mode string, initial, maxDuration time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDuration > 0 {
		p.Max = maxDuration
	}
	if ValidMode(mode) {
		p.Mode = Mode(mode)
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// ValidMode reports whether mode names a known backoff mode.
func ValidMode(mode string) bool {
	switch Mode(mode) {
	case ModeFixed, ModeLinear, ModeExponential:
		return true
	default:
		return false
	}
}

// Delay returns the backoff delay for the given retry attempt number (1-based: first retry => 1).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	switch p.Mode {
	case ModeFixed:
		return p.Initial
	case ModeExponential:
		d := p.Initial * (1 << (retryCount - 1))
		if d > p.Max || d <= 0 {
			return p.Max
		}
		return d
	default: // linear
		d := time.Duration(retryCount) * p.Initial
		if d > p.Max {
			return p.Max
		}
		return d
	}
}

// Validate ensures invariants; returns error if policy impossible to apply.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return ferrors.ValidationError("retry initial delay must be > 0").Build()
	}
	if p.Max <= 0 {
		return ferrors.ValidationError("retry max delay must be > 0").Build()
	}
	if p.MaxRetries < 0 {
		return ferrors.ValidationError("retry count cannot be negative").Build()
	}
	return nil
}

// Do calls fn until it succeeds, reports the error as permanent, or the
// retries are used up. The last error is returned. Waiting honours ctx.
func (p Policy) Do(ctx context.Context, fn func(attempt int) (retryable bool, err error)) error {
	for attempt := 0; ; attempt++ {
		retryable, err := fn(attempt)
		if err == nil || !retryable || attempt >= p.MaxRetries {
			return err
		}
		timer := time.NewTimer(p.Delay(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
