// Package tracehook maintains the process-wide panic-formatting hook: a
// single slot holding the Formatter used to render unrecovered panics.
//
// Formatters are contributed by style name; the built-in "color" and
// "verbose" styles live in the optional subpackage tracehook/ultra and
// register themselves on import:
//
//	import _ "github.com/devfoundry/devkit/tracehook/ultra"
//
//	func main() {
//	    tracehook.Install("color")
//	    defer tracehook.Recover()
//	    ...
//	}
//
// Installation is expected to happen once at startup; the slot is
// last-writer-wins and needs no locking beyond an atomic pointer.
package tracehook

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/devfoundry/devkit/pkg/logger"
)

// Status reports the outcome of an Install.
type Status int

const (
	// StatusInstalled means the hook now holds the requested formatter.
	StatusInstalled Status = iota
	// StatusUnavailable means no formatter styles are registered; the slot
	// is untouched and a warning is logged.
	StatusUnavailable
	// StatusUnknownStyle means the requested style name is not registered;
	// the slot is untouched.
	StatusUnknownStyle
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusUnavailable:
		return "unavailable"
	case StatusUnknownStyle:
		return "unknown style"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Formatter renders a panic value and its stack for display.
type Formatter interface {
	Format(w io.Writer, v any, stack []byte)
}

// Options carries the settings a Provider may use when building its
// formatter.
type Options struct {
	// Writer receives formatted panics. Defaults to os.Stderr.
	Writer io.Writer
}

// Provider builds a Formatter for the given options.
type Provider func(o Options) Formatter

type installConfig struct {
	opts Options
	lggr logger.Logger
}

// Option configures Install.
type Option func(*installConfig)

// WithWriter directs formatted panics to w instead of os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(c *installConfig) { c.opts.Writer = w }
}

// WithLogger overrides the logger used for install diagnostics.
func WithLogger(lggr logger.Logger) Option {
	return func(c *installConfig) { c.lggr = lggr }
}

var (
	providersMu sync.Mutex
	providers   = map[string]Provider{}

	current atomic.Pointer[installed]
)

type installed struct {
	f Formatter
	w io.Writer
}

// RegisterStyle contributes a formatter style. Style names are
// case-insensitive; a repeated name replaces the earlier provider.
func RegisterStyle(name string, p Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[normalizeStyle(name)] = p
}

// Styles returns the registered style names, sorted.
func Styles() []string {
	providersMu.Lock()
	defer providersMu.Unlock()

	out := make([]string, 0, len(providers))
	for name := range providers {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Install replaces the process-wide panic formatter with the named style.
// StatusUnavailable and StatusUnknownStyle leave the slot untouched.
func Install(style string, opts ...Option) Status {
	cfg := installConfig{opts: Options{Writer: os.Stderr}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lggr == nil {
		cfg.lggr = defaultLogger()
	}

	providersMu.Lock()
	defer providersMu.Unlock()

	if len(providers) == 0 {
		cfg.lggr.Warn("cannot install trace hook: no formatter styles registered (import devkit/tracehook/ultra)")
		return StatusUnavailable
	}

	p, ok := providers[normalizeStyle(style)]
	if !ok {
		return StatusUnknownStyle
	}

	current.Store(&installed{f: p(cfg.opts), w: cfg.opts.Writer})

	return StatusInstalled
}

// Current returns the installed formatter, if any.
func Current() (Formatter, bool) {
	in := current.Load()
	if in == nil {
		return nil, false
	}

	return in.f, true
}

// Reset clears the slot. Tests only.
func Reset() {
	current.Store(nil)
}

// HandlePanic renders v and the current goroutine's stack with the installed
// formatter, or a plain rendering when none is installed. A nil v is a no-op.
func HandlePanic(v any) {
	if v == nil {
		return
	}

	stack := debug.Stack()
	if in := current.Load(); in != nil {
		in.f.Format(in.w, v, stack)
		return
	}

	fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", v, stack)
}

// Recover is meant to be deferred at the top of main: it renders any panic
// with the installed formatter and exits with the runtime's panic exit code.
func Recover() {
	if v := recover(); v != nil {
		HandlePanic(v)
		os.Exit(2)
	}
}

func normalizeStyle(name string) string {
	return strings.ToLower(name)
}

var (
	defaultLoggerOnce sync.Once
	defaultLggr       logger.Logger
)

func defaultLogger() logger.Logger {
	defaultLoggerOnce.Do(func() {
		lggr, err := logger.New()
		if err != nil {
			lggr = logger.Nop()
		}
		defaultLggr = lggr.Named("tracehook")
	})

	return defaultLggr
}
