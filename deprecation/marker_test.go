package deprecation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfoundry/devkit/exceptions"
)

// recordingEmitter captures emitted warnings for assertions.
type recordingEmitter struct {
	warnings []Warning
}

func (e *recordingEmitter) Emit(w Warning) {
	e.warnings = append(e.warnings, w)
}

func Test_New_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		giveOpt []Option
		wantErr string
	}{
		{
			name:    "empty name",
			give:    "",
			wantErr: "name is required",
		},
		{
			name:    "unknown category",
			give:    "foo",
			giveOpt: []Option{WithCategory("loud")},
			wantErr: `unknown category "loud"`,
		},
		{
			name:    "invalid deadline date",
			give:    "foo",
			giveOpt: []Option{WithDeadline(2026, time.February, 30)},
			wantErr: "invalid deadline date",
		},
		{
			name:    "non-function replacement",
			give:    "foo",
			giveOpt: []Option{WithReplacement("bar")},
			wantErr: "replacement must be a non-nil function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{WithRegistry(NewRegistry())}, tt.giveOpt...)
			m, err := New(tt.give, opts...)
			require.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, m)
		})
	}
}

func Test_New_Defaults(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	m, err := New("foo", WithRegistry(reg))
	require.NoError(t, err)

	assert.Equal(t, "foo", m.Name())
	assert.Equal(t, CategoryFuture, m.Spec().Category)
	assert.Equal(t, "foo is deprecated", m.Message())

	_, ok := m.Deadline()
	assert.False(t, ok)

	require.Len(t, reg.Markers(), 1, "marker must self-register")
}

func Test_Must(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Must("foo", WithRegistry(NewRegistry()))
	})
	assert.Panics(t, func() {
		Must("", WithRegistry(NewRegistry()))
	})
}

func Test_New_DeadlineEscalation(t *testing.T) {
	// t.Setenv is process-wide; no t.Parallel here.

	now := func() time.Time {
		return time.Date(2026, time.June, 15, 10, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		giveCI     string
		giveOpts   []Option
		wantFailed bool
	}{
		{
			name:   "deadline passed in owner repo CI",
			giveCI: "true",
			giveOpts: []Option{
				WithDeadline(2026, time.January, 1),
				WithOwnerCheck(func() bool { return true }),
			},
			wantFailed: true,
		},
		{
			name:   "not in CI",
			giveCI: "",
			giveOpts: []Option{
				WithDeadline(2026, time.January, 1),
				WithOwnerCheck(func() bool { return true }),
			},
		},
		{
			name:   "CI flag not the GitHub Actions value",
			giveCI: "1",
			giveOpts: []Option{
				WithDeadline(2026, time.January, 1),
				WithOwnerCheck(func() bool { return true }),
			},
		},
		{
			name:   "not owner repo",
			giveCI: "true",
			giveOpts: []Option{
				WithDeadline(2026, time.January, 1),
				WithOwnerCheck(func() bool { return false }),
			},
		},
		{
			name:   "deadline not yet passed",
			giveCI: "true",
			giveOpts: []Option{
				WithDeadline(2026, time.December, 31),
				WithOwnerCheck(func() bool { return true }),
			},
		},
		{
			name:   "deadline is today",
			giveCI: "true",
			giveOpts: []Option{
				WithDeadline(2026, time.June, 15),
				WithOwnerCheck(func() bool { return true }),
			},
		},
		{
			name:   "no deadline",
			giveCI: "true",
			giveOpts: []Option{
				WithOwnerCheck(func() bool { return true }),
			},
		},
		{
			name:   "allowlisted overdue item",
			giveCI: "true",
			giveOpts: []Option{
				WithDeadline(2026, time.January, 1),
				WithOwnerCheck(func() bool { return true }),
				WithExceptions(&exceptions.Exceptions{
					Exceptions: []exceptions.Exception{
						{
							Resource: "foo",
							Reason:   "removal blocked on downstream migration",
							Type:     exceptions.ExceptionTypeDeprecated,
						},
					},
				}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.giveCI)

			opts := append([]Option{WithRegistry(NewRegistry()), WithNow(now)}, tt.giveOpts...)
			m, err := New("foo", opts...)
			if tt.wantFailed {
				var deadlineErr *DeadlineExceededError
				require.ErrorAs(t, err, &deadlineErr)
				assert.Equal(t, "foo", deadlineErr.Name)
				assert.Equal(t, "foo should have been removed on 2026-01-01", err.Error())
				assert.Nil(t, m)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, m)
		})
	}
}

func Test_New_OwnerCheckNotInvokedOutsideCI(t *testing.T) {
	t.Setenv("CI", "")

	invoked := false
	_, err := New("foo",
		WithRegistry(NewRegistry()),
		WithDeadline(2000, time.January, 1),
		WithOwnerCheck(func() bool {
			invoked = true
			return true
		}),
	)
	require.NoError(t, err)
	assert.False(t, invoked, "owner check must not run outside CI")
}

func Test_Marker_Overdue(t *testing.T) {
	t.Parallel()

	// Pin the construction-time clock ahead of the deadline so the
	// escalation check stays inert regardless of the ambient CI env.
	reg := NewRegistry()
	m := Must("foo",
		WithRegistry(reg),
		WithDeadline(2026, time.June, 15),
		WithNow(func() time.Time {
			return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		}),
	)

	assert.False(t, m.Overdue(time.Date(2026, time.June, 15, 23, 59, 0, 0, time.UTC)))
	assert.True(t, m.Overdue(time.Date(2026, time.June, 16, 0, 1, 0, 0, time.UTC)))

	noDeadline := Must("bar", WithRegistry(reg))
	assert.False(t, noDeadline.Overdue(time.Date(2999, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
