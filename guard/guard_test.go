package guard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfoundry/devkit/pkg/callwrap"
)

func Test_Requires_ConditionHolds(t *testing.T) {
	t.Parallel()

	calls := 0
	double := func(n int) (int, error) {
		calls++
		return n * 2, nil
	}

	wrapped := Requires(true, "unused", double)

	got, err := wrapped(21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func Test_Requires_ConditionFails(t *testing.T) {
	t.Parallel()

	calls := 0
	double := func(n int) (int, error) {
		calls++
		return n * 2, nil
	}

	wrapped := Requires(false, "scipy is not present.", double)

	// Fails identically regardless of arguments.
	for _, n := range []int{0, 1, -5} {
		got, err := wrapped(n)
		require.Error(t, err)
		assert.Zero(t, got)
		assert.Equal(t, "scipy is not present.", err.Error())
		assert.ErrorIs(t, err, ErrRequirement)

		var reqErr *RequirementError
		assert.ErrorAs(t, err, &reqErr)
	}
	assert.Zero(t, calls, "guarded function must never run")
}

func Test_Requires_CustomErrorKind(t *testing.T) {
	t.Parallel()

	notSupported := errors.New("not supported")
	wrapped := Requires(false, "X not available", func() error { return nil },
		WithError(func(msg string) error {
			return fmt.Errorf("%w: %s", notSupported, msg)
		}),
	)

	err := wrapped()
	require.ErrorIs(t, err, notSupported)
	assert.Equal(t, "not supported: X not available", err.Error())
	assert.NotErrorIs(t, err, ErrRequirement)
}

func Test_Requires_PanicsWithoutErrorResult(t *testing.T) {
	t.Parallel()

	wrapped := Requires(false, "X not available", func() int { return 1 })

	assert.PanicsWithError(t, "X not available", func() { wrapped() })
}

func Test_Requires_InvalidTargetPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		v := recover()
		require.NotNil(t, v)

		err, ok := v.(error)
		require.True(t, ok)

		var invalidErr *callwrap.InvalidTargetError
		assert.ErrorAs(t, err, &invalidErr)
	}()

	Requires(true, "unused", 42)
}
