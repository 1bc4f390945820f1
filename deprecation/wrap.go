package deprecation

import (
	"github.com/devfoundry/devkit/pkg/callwrap"
)

// ErrInvalidTarget is returned when a wrap target is neither a function nor a
// constructor.
var ErrInvalidTarget = callwrap.ErrInvalidTarget

// InvalidTargetError reports the kind of an unsupported wrap target.
type InvalidTargetError = callwrap.InvalidTargetError

// Wrap returns a function of the same dynamic type as target that emits one
// warning per call and then invokes target with its arguments unchanged. A
// non-function target fails with an InvalidTargetError and has no side
// effect.
func (m *Marker) Wrap(target any) (any, error) {
	return m.wrap(target, TargetFunction)
}

// WrapCtor is Wrap for constructor functions, so constructing the deprecated
// type warns before the constructor runs.
func (m *Marker) WrapCtor(ctor any) (any, error) {
	return m.wrap(ctor, TargetConstructor)
}

func (m *Marker) wrap(target any, kind TargetKind) (any, error) {
	return callwrap.Wrap(target, func() error {
		m.emit(kind)
		return nil
	})
}

// Func wraps a function, preserving its static type. It panics on an invalid
// target, making misuse fail at package initialization.
func Func[F any](m *Marker, fn F) F {
	wrapped, err := m.Wrap(fn)
	if err != nil {
		panic(err)
	}

	return wrapped.(F)
}

// Ctor wraps a constructor, preserving its static type. It panics on an
// invalid target.
func Ctor[F any](m *Marker, ctor F) F {
	wrapped, err := m.WrapCtor(ctor)
	if err != nil {
		panic(err)
	}

	return wrapped.(F)
}
