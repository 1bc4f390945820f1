// Package ultra provides the enhanced trace formatters. Importing it
// registers the "color" and "verbose" styles with tracehook:
//
//	import _ "github.com/devfoundry/devkit/tracehook/ultra"
//
// "color" renders a compact ANSI-colored trace; "verbose" renders a ruled
// report with numbered frames and a timestamp.
package ultra

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/devfoundry/devkit/tracehook"
)

func init() {
	tracehook.RegisterStyle("color", func(o tracehook.Options) tracehook.Formatter {
		return &ColorFormatter{}
	})
	tracehook.RegisterStyle("verbose", func(o tracehook.Options) tracehook.Formatter {
		return &VerboseFormatter{Now: time.Now}
	})
}

const (
	ansiReset   = "\x1b[0m"
	ansiRedBold = "\x1b[1;31m"
	ansiCyan    = "\x1b[36m"
	ansiDim     = "\x1b[2m"
)

// ColorFormatter renders a panic as a colored header followed by the stack,
// with function lines in cyan and source locations dimmed.
type ColorFormatter struct{}

// Format implements tracehook.Formatter.
func (f *ColorFormatter) Format(w io.Writer, v any, stack []byte) {
	fmt.Fprintf(w, "%spanic: %v%s\n", ansiRedBold, v, ansiReset)

	for _, frame := range parseStack(stack) {
		fmt.Fprintf(w, "%s%s%s\n", ansiCyan, frame.fn, ansiReset)
		if frame.loc != "" {
			fmt.Fprintf(w, "\t%s%s%s\n", ansiDim, frame.loc, ansiReset)
		}
	}
}

// VerboseFormatter renders a ruled report with a timestamp and numbered
// frames.
type VerboseFormatter struct {
	// Now supplies the report timestamp; defaults to time.Now.
	Now func() time.Time
}

// Format implements tracehook.Formatter.
func (f *VerboseFormatter) Format(w io.Writer, v any, stack []byte) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	rule := strings.Repeat("-", 75)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "panic: %v\n", v)
	fmt.Fprintf(w, "time:  %s\n", now().Format(time.RFC3339))
	fmt.Fprintln(w, rule)

	for i, frame := range parseStack(stack) {
		fmt.Fprintf(w, "%3d: %s\n", i, frame.fn)
		if frame.loc != "" {
			fmt.Fprintf(w, "     %s\n", frame.loc)
		}
	}
	fmt.Fprintln(w, rule)
}

// frame is one entry of a runtime/debug.Stack dump: the function line and
// its indented file:line location.
type frame struct {
	fn  string
	loc string
}

// parseStack splits a debug.Stack dump into frames, dropping the goroutine
// header line. Location lines arrive tab-indented directly below their
// function line.
func parseStack(stack []byte) []frame {
	var frames []frame
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" || strings.HasPrefix(line, "goroutine ") {
			continue
		}
		if strings.HasPrefix(line, "\t") {
			if len(frames) > 0 {
				frames[len(frames)-1].loc = strings.TrimSpace(line)
			}
			continue
		}
		frames = append(frames, frame{fn: line})
	}

	return frames
}
