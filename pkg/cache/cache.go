// Package cache memoises archive resolution across scans.
//
// A periodic scan re-resolves every registered archive, but library archives
// rarely change while a process runs. [Resolver] wraps another
// [deps.Resolver] and reuses the previous answer for a path while the file's
// size and modification time are unchanged.
//
// Errors are never cached, so a missing or unreadable archive is reported by
// the wrapped resolver on every scan and the scanner's eviction and retry
// behaviour is unchanged.
//
// [deps.Resolver]: github.com/matzehuels/depinv/pkg/deps.Resolver
package cache

import (
	"os"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/depinv/pkg/deps"
)

// DefaultSize is the number of paths remembered when none is configured.
const DefaultSize = 4096

// fingerprint identifies one version of a file on disk.
type fingerprint struct {
	size    int64
	modTime time.Time
}

func (f fingerprint) matches(o fingerprint) bool {
	return f.size == o.size && f.modTime.Equal(o.modTime)
}

type entry struct {
	fp  fingerprint
	dep *deps.Dependency // nil when the archive had no usable metadata
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Resolver is a deps.Resolver that caches successful resolutions.
// It is safe for concurrent use.
type Resolver struct {
	inner   deps.Resolver
	entries *lru.Cache[string, entry]

	hits, misses atomic.Uint64
}

var _ deps.Resolver = (*Resolver)(nil)

// NewResolver wraps inner with a cache of up to size paths. Values <= 0 use
// DefaultSize. The least recently used path is forgotten first.
func NewResolver(inner deps.Resolver, size int) *Resolver {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Resolver{inner: inner, entries: entries}
}

// Resolve returns the cached dependency for path if the file is unchanged
// since it was last resolved, and otherwise delegates to the wrapped
// resolver.
func (r *Resolver) Resolve(path string) (*deps.Dependency, error) {
	info, err := os.Stat(path)
	if err != nil {
		r.entries.Remove(path)
		r.misses.Add(1)
		return r.inner.Resolve(path)
	}
	fp := fingerprint{size: info.Size(), modTime: info.ModTime()}

	if e, ok := r.entries.Get(path); ok && e.fp.matches(fp) {
		r.hits.Add(1)
		return clone(e.dep), nil
	}

	r.misses.Add(1)
	dep, err := r.inner.Resolve(path)
	if err != nil {
		r.entries.Remove(path)
		return nil, err
	}
	r.entries.Add(path, entry{fp: fp, dep: clone(dep)})
	return dep, nil
}

// Stats returns hit and miss counts since creation.
func (r *Resolver) Stats() Stats {
	return Stats{
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
		Entries: r.entries.Len(),
	}
}

func clone(d *deps.Dependency) *deps.Dependency {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
