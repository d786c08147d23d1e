package inventory

import (
	"strings"
	"sync"

	"github.com/google/btree"

	"github.com/matzehuels/depinv/pkg/observability"
)

const (
	// DefaultMaxPaths bounds how many distinct archive paths a Registry holds.
	DefaultMaxPaths = 4096

	// DefaultExtension is the archive extension accepted when none is configured.
	DefaultExtension = ".jar"

	btreeDegree = 16
)

// RegisterResult describes what Register did with a path.
type RegisterResult string

const (
	Accepted  RegisterResult = "accepted"  // Path was inserted
	Duplicate RegisterResult = "duplicate" // Path was already present
	Full      RegisterResult = "full"      // Registry is at capacity; path dropped
	Ignored   RegisterResult = "ignored"   // Empty path or not an archive
)

// Registry is a bounded, ordered set of archive paths fed by load events.
//
// All methods are safe for concurrent use. Once Len reaches the capacity,
// new paths are dropped; existing paths are never displaced to make room.
type Registry struct {
	mu   sync.Mutex
	tree *btree.BTreeG[string]

	maxPaths   int
	extensions []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithMaxPaths sets the registry capacity. Values <= 0 keep the default.
func WithMaxPaths(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxPaths = n
		}
	}
}

// WithExtensions sets the file extensions treated as archives (e.g. ".jar",
// ".war"). Matching is case-sensitive. An empty list keeps the default.
func WithExtensions(exts ...string) Option {
	return func(r *Registry) {
		if len(exts) > 0 {
			r.extensions = append([]string(nil), exts...)
		}
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tree:       btree.NewOrderedG[string](btreeDegree),
		maxPaths:   DefaultMaxPaths,
		extensions: []string{DefaultExtension},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records path as a loaded archive. It performs no I/O and is
// meant to be called directly from load-event callbacks.
func (r *Registry) Register(path string) RegisterResult {
	result, size := r.register(path)
	observability.Registry().OnRegister(string(result), size)
	return result
}

func (r *Registry) register(path string) (RegisterResult, int) {
	if !r.isArchive(path) {
		return Ignored, r.Len()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.tree.Len()
	if r.tree.Has(path) {
		return Duplicate, size
	}
	if size >= r.maxPaths {
		return Full, size
	}
	r.tree.ReplaceOrInsert(path)
	return Accepted, size + 1
}

// RegisterLocation normalises a code-source location (a path or a file:
// or jar:file: URL) and registers the resulting path.
func (r *Registry) RegisterLocation(location string) RegisterResult {
	path, ok := LocationPath(location)
	if !ok {
		observability.Registry().OnRegister(string(Ignored), r.Len())
		return Ignored
	}
	return r.Register(path)
}

// Remove drops path from the registry and reports whether it was present.
func (r *Registry) Remove(path string) bool {
	r.mu.Lock()
	_, removed := r.tree.Delete(path)
	size := r.tree.Len()
	r.mu.Unlock()

	if removed {
		observability.Registry().OnRemove(size)
	}
	return removed
}

// Contains reports whether path is registered.
func (r *Registry) Contains(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Has(path)
}

// Snapshot returns the registered paths in lexical order.
//
// The snapshot reflects every Register and Remove that completed before the
// call and may or may not reflect ones running concurrently with it. It never
// contains duplicates.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	view := r.tree.Clone()
	r.mu.Unlock()

	paths := make([]string, 0, view.Len())
	view.Ascend(func(p string) bool {
		paths = append(paths, p)
		return true
	})
	return paths
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Len()
}

// Cap returns the maximum number of paths the registry holds.
func (r *Registry) Cap() int { return r.maxPaths }

// Extensions returns the archive extensions the registry accepts.
func (r *Registry) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

func (r *Registry) isArchive(path string) bool {
	if path == "" {
		return false
	}
	for _, ext := range r.extensions {
		if len(path) > len(ext) && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
