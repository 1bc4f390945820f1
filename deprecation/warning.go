package deprecation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devfoundry/devkit/pkg/logger"
)

// Category selects the audience and visibility of a deprecation warning.
type Category string

const (
	// CategoryFuture is the user-facing category. It is emitted at Warn
	// level so it is always visible unless silenced by policy.
	CategoryFuture Category = "future"

	// CategoryDeprecation is the developer-facing category. It is emitted at
	// Debug level and only surfaces when debug logging is enabled.
	CategoryDeprecation Category = "deprecation"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryFuture || c == CategoryDeprecation
}

// TargetKind is the resolved kind of a wrapped target.
type TargetKind string

const (
	TargetFunction    TargetKind = "function"
	TargetConstructor TargetKind = "constructor"
)

// Warning is a single emitted deprecation notice.
type Warning struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Message   string     `json:"message"`
	Category  Category   `json:"category"`
	Target    TargetKind `json:"target"`
	Timestamp time.Time  `json:"timestamp"`
}

// newWarning stamps a warning with a fresh ID and timestamp.
func newWarning(name, msg string, cat Category, kind TargetKind, now time.Time) Warning {
	return Warning{
		ID:        uuid.New().String(),
		Name:      name,
		Message:   msg,
		Category:  cat,
		Target:    kind,
		Timestamp: now,
	}
}

// Emitter delivers warnings. Implementations must not block the wrapped
// call's hot path on anything slower than logging.
type Emitter interface {
	Emit(w Warning)
}

// LogEmitter emits warnings through a Logger, mapping CategoryFuture to Warn
// and CategoryDeprecation to Debug.
type LogEmitter struct {
	lggr logger.Logger
}

// NewLogEmitter returns an Emitter that writes to lggr.
func NewLogEmitter(lggr logger.Logger) *LogEmitter {
	return &LogEmitter{lggr: lggr}
}

// Emit implements Emitter.
func (e *LogEmitter) Emit(w Warning) {
	switch w.Category {
	case CategoryDeprecation:
		e.lggr.Debugw(w.Message, "name", w.Name, "category", w.Category, "id", w.ID)
	default:
		e.lggr.Warnw(w.Message, "name", w.Name, "category", w.Category, "id", w.ID)
	}
}

var (
	sharedEmitterOnce sync.Once
	sharedEmitter     Emitter
)

// defaultEmitter lazily builds the process-wide LogEmitter. Falls back to a
// no-op logger if the production logger cannot be constructed.
func defaultEmitter() Emitter {
	sharedEmitterOnce.Do(func() {
		lggr, err := logger.New()
		if err != nil {
			lggr = logger.Nop()
		}
		sharedEmitter = NewLogEmitter(lggr.Named("deprecation"))
	})

	return sharedEmitter
}
