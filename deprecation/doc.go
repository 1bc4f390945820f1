// Package deprecation marks functions and constructors as deprecated.
//
// A Marker is built once, at the point where the deprecated item is declared,
// and carries the item's name, an optional replacement, an optional removal
// deadline or version, and a warning category. Wrapping a function with the
// marker produces a call-compatible function that emits one warning per call
// and then delegates to the original with its arguments unchanged:
//
//	var sumMarker = deprecation.Must("Sum",
//	    deprecation.WithReplacement(Total),
//	    deprecation.WithDeadline(2026, time.March, 1),
//	)
//
//	var Sum = deprecation.Func(sumMarker, sum)
//
// Deprecating a type is done by wrapping its constructor with [Ctor], so each
// construction warns before the constructor runs.
//
// When a deadline is set, marker construction fails with a
// DeadlineExceededError if the deadline has passed, the CI environment flag
// is set, and the working directory's git remote matches the owner repository
// named by the GITHUB_REPOSITORY environment variable. This stops the owning
// repository's own pipeline from carrying overdue deprecations; it never
// fires for downstream consumers or outside CI.
package deprecation
