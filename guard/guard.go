// Package guard wraps callables behind a precondition, typically the
// presence of an optional dependency:
//
//	svc, err := tracing.Dial(addr) // optional backend
//
//	var Export = guard.Requires(err == nil, "tracing backend is not available", export)
//
// The condition is evaluated once, at wrap time. Every call of the wrapped
// function checks it: when it does not hold the call fails with a
// RequirementError (or the error kind configured with WithError) carrying
// the message, otherwise the original function runs with its arguments and
// results unchanged.
package guard

import (
	"errors"

	"github.com/devfoundry/devkit/pkg/callwrap"
)

// ErrRequirement is the sentinel wrapped by every RequirementError.
var ErrRequirement = errors.New("requirement not met")

// RequirementError is the default guard-violation error.
type RequirementError struct {
	Message string
}

func (e *RequirementError) Error() string { return e.Message }

func (e *RequirementError) Unwrap() error { return ErrRequirement }

type config struct {
	newErr func(msg string) error
}

// Option configures a guard.
type Option func(*config)

// WithError substitutes the constructor for the guard-violation error, so
// callers can fail with their own error kind.
func WithError(newErr func(msg string) error) Option {
	return func(c *config) { c.newErr = newErr }
}

// Requires wraps fn behind condition. When the wrapped signature's last
// result is an error, a violation is returned there; signatures without an
// error result panic with it, since the guard cannot add a result the
// signature does not have. Wrapping a non-function panics with an
// InvalidTargetError at wrap time.
func Requires[F any](condition bool, message string, fn F, opts ...Option) F {
	cfg := config{
		newErr: func(msg string) error { return &RequirementError{Message: msg} },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	wrapped, err := callwrap.Wrap(fn, func() error {
		if !condition {
			return cfg.newErr(message)
		}

		return nil
	})
	if err != nil {
		panic(err)
	}

	return wrapped.(F)
}
