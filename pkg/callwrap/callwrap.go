// Package callwrap builds behavior-preserving wrappers around function
// values. It is the shared mechanism behind the deprecation and guard
// wrappers: the wrapped function runs an interceptor ahead of each call and
// otherwise forwards arguments and results unchanged.
package callwrap

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidTarget is returned when a wrap target is not a function.
var ErrInvalidTarget = errors.New("wrap target must be a function")

// InvalidTargetError reports the kind of an unsupported wrap target.
type InvalidTargetError struct {
	Kind reflect.Kind
}

func (e *InvalidTargetError) Error() string {
	if e.Kind == reflect.Invalid {
		return "wrap target must be a function, got untyped nil"
	}

	return fmt.Sprintf("wrap target must be a function, got %s", e.Kind)
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// Interceptor runs ahead of each invocation of a wrapped function. Returning
// a non-nil error short-circuits the call: when the wrapped signature's last
// result is an error the zero results plus that error are returned, otherwise
// the error is raised as a panic. A nil return lets the call proceed.
type Interceptor func() error

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Wrap returns a new function with the same dynamic type as fn that runs
// intercept before delegating to fn. The target must be a non-nil function
// value; anything else fails with an InvalidTargetError.
func Wrap(fn any, intercept Interceptor) (any, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() {
		return nil, &InvalidTargetError{Kind: reflect.Invalid}
	}
	if v.Kind() != reflect.Func {
		return nil, &InvalidTargetError{Kind: v.Kind()}
	}
	if v.IsNil() {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidTarget)
	}

	t := v.Type()
	wrapped := reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		if err := intercept(); err != nil {
			return shortCircuit(t, err)
		}
		if t.IsVariadic() {
			return v.CallSlice(args)
		}

		return v.Call(args)
	})

	return wrapped.Interface(), nil
}

// shortCircuit produces the results for an intercepted call. Signatures
// without a trailing error result cannot report the failure, so it panics.
func shortCircuit(t reflect.Type, err error) []reflect.Value {
	n := t.NumOut()
	if n == 0 || t.Out(n-1) != errType {
		panic(err)
	}

	out := make([]reflect.Value, n)
	for i := range n - 1 {
		out[i] = reflect.Zero(t.Out(i))
	}
	ev := reflect.New(errType).Elem()
	ev.Set(reflect.ValueOf(err))
	out[n-1] = ev

	return out
}
