// Package deprecations provides CLI commands for inspecting and gating the
// deprecation markers registered in the host binary.
package deprecations

import (
	"time"

	"github.com/devfoundry/devkit/exceptions"
)

// NowFunc supplies the current time for overdue checks.
type NowFunc func() time.Time

// ExceptionsLoaderFunc loads the deprecation exceptions allowlist from a
// file path.
type ExceptionsLoaderFunc func(path string) (*exceptions.Exceptions, error)

// Deps holds the injectable dependencies for deprecations commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// Now supplies the current time.
	// Default: time.Now
	Now NowFunc

	// ExceptionsLoader loads the allowlist consulted by check.
	// Default: exceptions.Load
	ExceptionsLoader ExceptionsLoaderFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ExceptionsLoader == nil {
		d.ExceptionsLoader = exceptions.Load
	}
}
