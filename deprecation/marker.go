package deprecation

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/devfoundry/devkit/exceptions"
)

// Spec is the configuration captured when a marker is built. It is never
// mutated after construction.
type Spec struct {
	// Name of the deprecated function or type.
	Name string
	// Replacement to point callers at, if any.
	Replacement *Replacement
	// Message is appended free-text, e.g. migration notes.
	Message string
	// Deadline is the removal date at UTC midnight; zero means none.
	Deadline time.Time
	// RemovedIn is the release that will drop the item; nil means none.
	RemovedIn *semver.Version
	// Category selects the warning audience.
	Category Category
}

// Marker is the decoration product for one deprecated item. Build it with
// New or Must, then wrap the item with Wrap, Func, or Ctor.
type Marker struct {
	spec     Spec
	msg      string
	emitter  Emitter
	registry *Registry
	now      func() time.Time
}

type markerConfig struct {
	spec       Spec
	emitter    Emitter
	registry   *Registry
	now        func() time.Time
	ownerCheck func() bool
	exceptions *exceptions.Exceptions
	err        error
}

// Option configures a Marker under construction.
type Option func(*markerConfig)

// WithReplacement records fn as the replacement. Its display name and
// defining scope are resolved from the function's runtime identity.
func WithReplacement(fn any) Option {
	return func(c *markerConfig) {
		r, err := resolveReplacement(fn)
		if err != nil {
			c.err = err
			return
		}
		c.spec.Replacement = r
	}
}

// WithReplacementRef records a replacement by explicit name and scope, for
// replacements that are not function values (e.g. a type or another module).
func WithReplacementRef(name, scope string) Option {
	return func(c *markerConfig) {
		c.spec.Replacement = &Replacement{Name: name, Scope: scope}
	}
}

// WithMessage appends free-text to the warning.
func WithMessage(msg string) Option {
	return func(c *markerConfig) { c.spec.Message = msg }
}

// WithDeadline sets the removal date. The date must be valid in the
// proleptic Gregorian calendar; comparisons are date-only in UTC.
func WithDeadline(year int, month time.Month, day int) Option {
	return func(c *markerConfig) {
		c.spec.Deadline = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if y, m, d := c.spec.Deadline.Date(); y != year || m != month || d != day {
			c.err = fmt.Errorf("invalid deadline date %04d-%02d-%02d", year, month, day)
		}
	}
}

// WithRemovedIn sets the release that will drop the item.
func WithRemovedIn(v *semver.Version) Option {
	return func(c *markerConfig) { c.spec.RemovedIn = v }
}

// WithCategory overrides the default CategoryFuture.
func WithCategory(cat Category) Option {
	return func(c *markerConfig) { c.spec.Category = cat }
}

// WithEmitter overrides the default log-backed emitter.
func WithEmitter(e Emitter) Option {
	return func(c *markerConfig) { c.emitter = e }
}

// WithRegistry registers the marker in a custom registry instead of the
// package default.
func WithRegistry(r *Registry) Option {
	return func(c *markerConfig) { c.registry = r }
}

// WithExceptions supplies the allowlist consulted before escalating an
// overdue deadline.
func WithExceptions(e *exceptions.Exceptions) Option {
	return func(c *markerConfig) { c.exceptions = e }
}

// WithNow overrides the clock. Test seam.
func WithNow(now func() time.Time) Option {
	return func(c *markerConfig) { c.now = now }
}

// WithOwnerCheck overrides owner-repository detection. Test seam.
func WithOwnerCheck(check func() bool) Option {
	return func(c *markerConfig) { c.ownerCheck = check }
}

// New builds a Marker for the named item. The deadline escalation check runs
// here, once, so an overdue item in the owning repository's CI fails at
// package initialization rather than at call time.
func New(name string, opts ...Option) (*Marker, error) {
	if name == "" {
		return nil, errors.New("deprecation: name is required")
	}

	cfg := &markerConfig{
		spec:       Spec{Name: name, Category: CategoryFuture},
		registry:   defaultRegistry,
		now:        time.Now,
		ownerCheck: defaultOwnerCheck,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, fmt.Errorf("deprecation: %w", cfg.err)
	}
	if !cfg.spec.Category.Valid() {
		return nil, fmt.Errorf("deprecation: unknown category %q", cfg.spec.Category)
	}
	if err := cfg.checkDeadline(); err != nil {
		return nil, err
	}
	if cfg.emitter == nil {
		cfg.emitter = defaultEmitter()
	}

	m := &Marker{
		spec:     cfg.spec,
		msg:      craftMessage(cfg.spec),
		emitter:  cfg.emitter,
		registry: cfg.registry,
		now:      cfg.now,
	}
	m.registry.register(m)

	return m, nil
}

// Must is New that panics on error, for package-level marker declarations.
func Must(name string, opts ...Option) *Marker {
	m, err := New(name, opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Name returns the deprecated item's name.
func (m *Marker) Name() string { return m.spec.Name }

// Spec returns a copy of the marker's configuration.
func (m *Marker) Spec() Spec { return m.spec }

// Message returns the crafted warning text.
func (m *Marker) Message() string { return m.msg }

// Deadline returns the removal date and whether one is set.
func (m *Marker) Deadline() (time.Time, bool) {
	return m.spec.Deadline, !m.spec.Deadline.IsZero()
}

// Overdue reports whether the marker's deadline has passed as of now,
// date-only in UTC.
func (m *Marker) Overdue(now time.Time) bool {
	return !m.spec.Deadline.IsZero() && dateOnly(now).After(m.spec.Deadline)
}

// emit delivers one warning and records it in the registry.
func (m *Marker) emit(kind TargetKind) {
	w := newWarning(m.spec.Name, m.msg, m.spec.Category, kind, m.now())
	m.emitter.Emit(w)
	m.registry.record(w)
}
