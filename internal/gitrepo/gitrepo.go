// Package gitrepo resolves the identity of the repository in the current
// working directory from its configured git remote.
package gitrepo

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// OriginResolver reports the configured remote origin URL of the working
// directory's repository.
type OriginResolver interface {
	Origin(ctx context.Context) (string, error)
}

// CLIResolver resolves the origin URL by invoking the git CLI. It only
// produces a reliable answer when git is installed and the remote is named
// "origin".
type CLIResolver struct{}

// Origin returns the remote origin URL of the current working directory.
func (CLIResolver) Origin(ctx context.Context) (string, error) {
	return retry.DoWithData(func() (string, error) {
		cmd := exec.CommandContext(ctx, "git", "config", "--get", "remote.origin.url")
		output, err := cmd.Output()
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(output)), nil
	},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

// NormalizeRemote reduces a clone URL to its owner/name identity by removing
// the HTTPS or SSH protocol prefix and the trailing ".git" suffix.
func NormalizeRemote(url string) string {
	id := strings.TrimSpace(url)
	id = strings.TrimPrefix(id, "https://github.com/")
	id = strings.TrimPrefix(id, "git@github.com:")

	return strings.TrimSuffix(id, ".git")
}

// IsOwnerRepo reports whether the working directory's repository has the
// given owner/name identity. Any failure to resolve the remote, including git
// being unavailable, is treated as a non-match.
func IsOwnerRepo(ctx context.Context, r OriginResolver, ownerRepo string) bool {
	if ownerRepo == "" {
		return false
	}

	origin, err := r.Origin(ctx)
	if err != nil {
		return false
	}

	return NormalizeRemote(origin) == ownerRepo
}
