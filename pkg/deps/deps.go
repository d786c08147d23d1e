package deps

import "fmt"

// Method records which metadata source produced a Dependency.
type Method string

// Extraction methods, in resolution precedence order.
const (
	MethodPOM                    Method = "pom"
	MethodManifestImplementation Method = "manifest_implementation"
	MethodManifestSpecification  Method = "manifest_specification"
	MethodManifestBundle         Method = "manifest_bundle"
)

// Methods lists every extraction method in precedence order.
var Methods = []Method{
	MethodPOM,
	MethodManifestImplementation,
	MethodManifestSpecification,
	MethodManifestBundle,
}

// Dependency is the resolved identity of one loaded archive.
//
// Dependency is an immutable, comparable value. Records differing only in
// Method are distinct entries in a Set; records differing only in Source are
// the same dependency seen at two paths.
type Dependency struct {
	Name    string `json:"name"`             // artifactId, or manifest title/symbolic name
	Version string `json:"version"`          // Artifact version
	Vendor  string `json:"vendor,omitempty"` // groupId or manifest vendor; empty when absent
	Source  string `json:"source"`           // Path of the archive the metadata came from
	Method  Method `json:"method"`           // Metadata source that produced this record
}

// HasVendor reports whether the metadata named a vendor.
func (d Dependency) HasVendor() bool { return d.Vendor != "" }

// Coordinate returns "vendor:name:version", or "name:version" when no vendor
// is known.
func (d Dependency) Coordinate() string {
	if !d.HasVendor() {
		return d.Name + ":" + d.Version
	}
	return d.Vendor + ":" + d.Name + ":" + d.Version
}

// String implements fmt.Stringer.
func (d Dependency) String() string {
	return fmt.Sprintf("%s (%s, %s)", d.Coordinate(), d.Method, d.Source)
}

// Resolver extracts dependency identity from an archive on disk.
type Resolver interface {
	// Resolve reads the archive at path. It returns (nil, nil) when the
	// archive was readable but carried no usable metadata.
	Resolve(path string) (*Dependency, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(path string) (*Dependency, error)

// Resolve calls f(path).
func (f ResolverFunc) Resolve(path string) (*Dependency, error) { return f(path) }
