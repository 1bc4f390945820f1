package ultra_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfoundry/devkit/pkg/logger"
	"github.com/devfoundry/devkit/tracehook"
	"github.com/devfoundry/devkit/tracehook/ultra"
)

// stack mimics a runtime/debug.Stack dump.
const stack = "goroutine 1 [running]:\n" +
	"runtime/debug.Stack()\n" +
	"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x5e\n" +
	"main.work(0x2a)\n" +
	"\t/src/app/main.go:14 +0x19\n" +
	"main.main()\n" +
	"\t/src/app/main.go:8 +0x1c\n"

func Test_ImportRegistersStyles(t *testing.T) {
	styles := tracehook.Styles()
	assert.Contains(t, styles, "color")
	assert.Contains(t, styles, "verbose")
}

func Test_InstallColor(t *testing.T) {
	t.Cleanup(tracehook.Reset)

	status := tracehook.Install("color", tracehook.WithLogger(logger.Nop()))
	require.Equal(t, tracehook.StatusInstalled, status)

	_, ok := tracehook.Current()
	assert.True(t, ok)
}

func Test_ColorFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &ultra.ColorFormatter{}
	f.Format(&buf, "boom", []byte(stack))

	out := buf.String()
	assert.Contains(t, out, "\x1b[1;31mpanic: boom\x1b[0m")
	assert.Contains(t, out, "\x1b[36mmain.work(0x2a)\x1b[0m")
	assert.Contains(t, out, "/src/app/main.go:14 +0x19")
	assert.NotContains(t, out, "goroutine 1", "goroutine header is dropped")
}

func Test_VerboseFormatter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	f := &ultra.VerboseFormatter{Now: func() time.Time { return now }}
	f.Format(&buf, "boom", []byte(stack))

	out := buf.String()
	assert.Contains(t, out, "panic: boom\n")
	assert.Contains(t, out, "time:  2026-04-02T12:00:00Z")
	assert.Contains(t, out, "  1: main.work(0x2a)")
	assert.Contains(t, out, "     /src/app/main.go:14 +0x19")
	assert.Contains(t, out, "---------------")
}

func Test_VerboseFormatter_DefaultClock(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &ultra.VerboseFormatter{}
	f.Format(&buf, "boom", []byte(stack))

	assert.Contains(t, buf.String(), "time:  ")
}
