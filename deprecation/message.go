package deprecation

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// dateLayout is the removal-deadline date format.
const dateLayout = "2006-01-02"

// Replacement identifies what a deprecated item should be replaced with.
type Replacement struct {
	// Name of the replacement function or type.
	Name string
	// Scope is where the replacement is defined, usually its package path.
	Scope string
}

// resolveReplacement derives the displayable identity of a replacement from
// its function value. Method values carry a "-fm" suffix on their runtime
// name; it is stripped so the underlying method identifies itself.
func resolveReplacement(fn any) (*Replacement, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("replacement must be a non-nil function, got %v", reflect.TypeOf(fn))
	}

	full := runtime.FuncForPC(v.Pointer()).Name()
	full = strings.TrimSuffix(full, "-fm")

	i := strings.LastIndex(full, ".")
	if i < 0 {
		return &Replacement{Name: full}, nil
	}

	return &Replacement{Name: full[i+1:], Scope: full[:i]}, nil
}

// craftMessage builds the warning text. It is a pure function of its Spec:
// the same name, replacement, message, deadline, and removal version always
// produce the identical string.
func craftMessage(s Spec) string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(" is deprecated")

	flowing := true
	switch {
	case !s.Deadline.IsZero():
		fmt.Fprintf(&b, ", and will be removed on %s\n", s.Deadline.Format(dateLayout))
		flowing = false
	case s.RemovedIn != nil:
		fmt.Fprintf(&b, ", and will be removed in v%s\n", s.RemovedIn.String())
		flowing = false
	}

	if s.Replacement != nil {
		if flowing {
			b.WriteString("; use ")
		} else {
			b.WriteString("Use ")
		}
		b.WriteString(s.Replacement.Name)
		if s.Replacement.Scope != "" {
			b.WriteString(" in ")
			b.WriteString(s.Replacement.Scope)
		}
		b.WriteString(" instead.")
	}

	if s.Message != "" {
		b.WriteString("\n")
		b.WriteString(s.Message)
	}

	return b.String()
}
