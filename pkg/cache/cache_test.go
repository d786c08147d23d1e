package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/depinv/pkg/deps"
)

// countingResolver resolves every path to a fixed dependency and counts calls.
type countingResolver struct {
	calls int
	dep   *deps.Dependency
	err   error
}

func (c *countingResolver) Resolve(path string) (*deps.Dependency, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if c.dep == nil {
		return nil, nil
	}
	d := *c.dep
	d.Source = path
	return &d, nil
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolverCachesUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jar")
	writeFile(t, path, "v1")

	inner := &countingResolver{dep: &deps.Dependency{Name: "a", Version: "1", Method: deps.MethodPOM}}
	r := NewResolver(inner, 0)

	for i := 0; i < 3; i++ {
		dep, err := r.Resolve(path)
		if err != nil || dep == nil || dep.Name != "a" || dep.Source != path {
			t.Fatalf("Resolve #%d = %+v, %v", i, dep, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	st := r.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Entries != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestResolverReturnsCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jar")
	writeFile(t, path, "v1")
	r := NewResolver(&countingResolver{dep: &deps.Dependency{Name: "a", Version: "1"}}, 0)

	first, _ := r.Resolve(path)
	first.Name = "mutated"

	second, _ := r.Resolve(path)
	if second.Name != "a" {
		t.Errorf("cached dependency was mutated through a returned pointer: %+v", second)
	}
}

func TestResolverDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jar")
	writeFile(t, path, "v1")

	inner := &countingResolver{dep: &deps.Dependency{Name: "a", Version: "1"}}
	r := NewResolver(inner, 0)
	r.Resolve(path)

	writeFile(t, path, "version two")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	r.Resolve(path)

	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 after the file changed", inner.calls)
	}
}

func TestResolverCachesNone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.jar")
	writeFile(t, path, "x")

	inner := &countingResolver{}
	r := NewResolver(inner, 0)
	for _i := 0; _i < 2; _i++ {
		if dep, err := r.Resolve(path); dep != nil || err != nil {
			t.Fatalf("Resolve() = %v, %v, want none", dep, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestResolverDoesNotCacheErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jar")
	writeFile(t, path, "x")

	boom := errors.New("boom")
	inner := &countingResolver{err: boom}
	r := NewResolver(inner, 0)

	for _i := 0; _i < 2; _i++ {
		if _, err := r.Resolve(path); !errors.Is(err, boom) {
			t.Fatalf("Resolve() error = %v, want %v", err, boom)
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}

	// A missing file goes straight to the wrapped resolver.
	missing := filepath.Join(dir, "missing.jar")
	inner.err = nil
	r.Resolve(missing)
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
	if r.Stats().Entries != 0 {
		t.Errorf("Entries = %d, want 0", r.Stats().Entries)
	}
}

func TestResolverEvictsLeastRecentlyUsed(t *testing.T) {
	dir := t.TempDir()
	inner := &countingResolver{dep: &deps.Dependency{Name: "x", Version: "1"}}
	r := NewResolver(inner, 2)

	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".jar")
		writeFile(t, paths[i], "x")
		r.Resolve(paths[i])
	}
	if r.Stats().Entries != 2 {
		t.Fatalf("Entries = %d, want 2", r.Stats().Entries)
	}

	r.Resolve(paths[0]) // evicted, resolves again
	if inner.calls != 4 {
		t.Errorf("inner calls = %d, want 4", inner.calls)
	}

	r.Resolve(paths[0]) // now cached again
	if inner.calls != 4 {
		t.Errorf("inner calls after re-resolve = %d, want 4", inner.calls)
	}
}
