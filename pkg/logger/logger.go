// Package logger provides the logging layer used across devkit.
//
// Loggers should be injected rather than constructed at point of use, and
// usually Named: e.g. lggr.Named("deprecation"). Tests should use [Test] or
// [TestObserved]; [New] is reserved for actual runtime use.
package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the basic logging interface implemented by go.uber.org/zap's
// SugaredLogger. It is declared here so consumers of devkit do not need to
// depend on zap directly.
type Logger interface {
	// Name returns the fully qualified name of the logger.
	Name() string

	// Named returns a logger with the given name segment appended.
	Named(name string) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Debugf(format string, values ...any)
	Infof(format string, values ...any)
	Warnf(format string, values ...any)
	Errorf(format string, values ...any)

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// Sync flushes any buffered log entries.
	// Some insignificant errors are suppressed.
	Sync() error
}

// Config holds logger construction options.
type Config struct {
	Level zapcore.Level
}

var defaultConfig Config

// New returns a new Logger with the default configuration.
func New() (Logger, error) { return defaultConfig.New() }

// New returns a new Logger for Config.
func (c *Config) New() (Logger, error) {
	return NewWith(func(cfg *zap.Config) {
		cfg.Level.SetLevel(c.Level)
	})
}

// NewWith returns a new Logger from a modified [zap.Config].
func NewWith(cfgFn func(*zap.Config)) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfgFn(&cfg)
	core, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &logger{core.Sugar()}, nil
}

// Test returns a new test Logger for tb.
func Test(tb testing.TB) Logger {
	tb.Helper()
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	lggr := zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zaptest.NewTestingWriter(tb),
			zapcore.DebugLevel,
		),
	)

	return &logger{lggr.Sugar()}
}

// TestObserved returns a new test Logger for tb and ObservedLogs at the given Level.
func TestObserved(tb testing.TB, lvl zapcore.Level) (Logger, *observer.ObservedLogs) {
	tb.Helper()
	oCore, logs := observer.New(lvl)
	observe := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, oCore)
	})
	sl := zaptest.NewLogger(tb, zaptest.WrapOptions(observe, zap.AddCaller())).Sugar()

	return &logger{sl}, logs
}

// Nop returns a no-op Logger.
func Nop() Logger {
	return &logger{zap.New(zapcore.NewNopCore()).Sugar()}
}

type logger struct {
	*zap.SugaredLogger
}

func (l *logger) Name() string {
	return l.Desugar().Name()
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}
