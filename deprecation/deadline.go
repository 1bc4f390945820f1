package deprecation

import (
	"context"
	"os"
	"time"

	"github.com/devfoundry/devkit/exceptions"
	"github.com/devfoundry/devkit/internal/gitrepo"
)

// isCI returns true if we are running in CI. This env var is set by GitHub Actions.
func isCI() bool {
	return os.Getenv("CI") == "true"
}

// defaultOwnerCheck reports whether the working directory's repository is the
// owner repository named by GITHUB_REPOSITORY. Git being unavailable counts
// as "no".
func defaultOwnerCheck() bool {
	return gitrepo.IsOwnerRepo(context.Background(), gitrepo.CLIResolver{}, os.Getenv("GITHUB_REPOSITORY"))
}

// WithOwnerRepo overrides the owner repository identity read from
// GITHUB_REPOSITORY; the git remote is still resolved and compared.
func WithOwnerRepo(ownerRepo string) Option {
	return func(c *markerConfig) {
		c.ownerCheck = func() bool {
			return gitrepo.IsOwnerRepo(context.Background(), gitrepo.CLIResolver{}, ownerRepo)
		}
	}
}

// dateOnly truncates t to UTC midnight so deadline comparisons are free of
// time-of-day ambiguity.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// checkDeadline escalates an overdue deadline to a construction failure, but
// only in the owner repository's own CI. Allowlisted items are skipped before
// the git query runs.
func (c *markerConfig) checkDeadline() error {
	if c.spec.Deadline.IsZero() || !isCI() {
		return nil
	}
	if !dateOnly(c.now()).After(c.spec.Deadline) {
		return nil
	}
	if c.exceptions != nil {
		if ok, _ := c.exceptions.IsExpected(c.spec.Name, exceptions.ExceptionTypeDeprecated); ok {
			return nil
		}
	}
	if !c.ownerCheck() {
		return nil
	}

	return &DeadlineExceededError{Name: c.spec.Name, Deadline: c.spec.Deadline}
}
