package deps

import (
	"encoding/json"
	"slices"
	"strings"
)

// Set is a deduplicated collection of Dependency records.
//
// Records are deduplicated by identity: name, version, vendor and method.
// When several archives resolve to the same identity the first one added
// is kept, so its Source names one representative path.
// The zero value is ready to use. A Set is not safe for concurrent mutation.
type Set struct {
	m map[identity]Dependency
}

// identity is the part of a Dependency that takes part in deduplication.
type identity struct {
	name    string
	version string
	vendor  string
	method  Method
}

func identityOf(d Dependency) identity {
	return identity{name: d.Name, version: d.Version, vendor: d.Vendor, method: d.Method}
}

// NewSet returns a set holding the given dependencies.
func NewSet(ds ...Dependency) *Set {
	s := &Set{}
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

// Add inserts d and reports whether its identity was not already present.
func (s *Set) Add(d Dependency) bool {
	if s.m == nil {
		s.m = make(map[identity]Dependency)
	}
	k := identityOf(d)
	if _, ok := s.m[k]; ok {
		return false
	}
	s.m[k] = d
	return true
}

// Contains reports whether a record with the identity of d is in the set.
func (s *Set) Contains(d Dependency) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[identityOf(d)]
	return ok
}

// Len returns the number of distinct dependencies.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Sorted returns the dependencies ordered by name, version, vendor, method
// and source.
func (s *Set) Sorted() []Dependency {
	if s.Len() == 0 {
		return []Dependency{}
	}
	out := make([]Dependency, 0, len(s.m))
	for _, d := range s.m {
		out = append(out, d)
	}
	slices.SortFunc(out, compare)
	return out
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func compare(a, b Dependency) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.Version, b.Version); c != 0 {
		return c
	}
	if c := strings.Compare(a.Vendor, b.Vendor); c != 0 {
		return c
	}
	if c := strings.Compare(string(a.Method), string(b.Method)); c != 0 {
		return c
	}
	return strings.Compare(a.Source, b.Source)
}
