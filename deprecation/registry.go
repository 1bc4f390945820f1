package deprecation

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Registry stores the markers built in this process and the warnings they
// have emitted. It backs the deprecations CLI commands.
type Registry struct {
	mu      sync.Mutex
	markers []*Marker
	records []Warning
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that markers join unless
// WithRegistry overrides it.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func (r *Registry) register(m *Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = append(r.markers, m)
}

func (r *Registry) record(w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, w)
}

// Markers returns the registered markers sorted by name.
func (r *Registry) Markers() []*Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.markers)
	slices.SortFunc(out, func(a, b *Marker) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return out
}

// Records returns the warnings emitted so far, in emission order.
func (r *Registry) Records() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.records)
}

// Overdue returns the markers whose deadline has passed as of now, sorted by
// name.
func (r *Registry) Overdue(now time.Time) []*Marker {
	out := r.Markers()
	out = slices.DeleteFunc(out, func(m *Marker) bool {
		return !m.Overdue(now)
	})

	return out
}

// Reset drops all markers and records. Tests only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = nil
	r.records = nil
}
