package java

import "github.com/matzehuels/depinv/pkg/deps"

// strategy extracts a dependency from one metadata source. It returns
// (nil, nil) when the source is absent or incomplete, and an error when the
// source exists but cannot be parsed. Either way the next strategy runs.
type strategy struct {
	method deps.Method
	apply  func(*archive) (*deps.Dependency, error)
}

var defaultStrategies = []strategy{
	{deps.MethodPOM, fromPOMProperties},
	{deps.MethodManifestImplementation, fromManifest(implementationAttributes)},
	{deps.MethodManifestSpecification, fromManifest(specificationAttributes)},
	{deps.MethodManifestBundle, fromManifest(bundleAttributes)},
}

// attributeSet names the manifest attributes one strategy reads.
type attributeSet struct {
	method  deps.Method
	title   string
	version string
	vendors []string // Consulted in order; the first present attribute wins, even if empty
}

var (
	implementationAttributes = attributeSet{
		method:  deps.MethodManifestImplementation,
		title:   "Implementation-Title",
		version: "Implementation-Version",
		vendors: []string{"Implementation-Vendor-Id", "Implementation-Vendor"},
	}
	specificationAttributes = attributeSet{
		method:  deps.MethodManifestSpecification,
		title:   "Specification-Title",
		version: "Specification-Version",
		vendors: []string{"Specification-Vendor"},
	}
	bundleAttributes = attributeSet{
		method:  deps.MethodManifestBundle,
		title:   "Bundle-SymbolicName",
		version: "Bundle-Version",
		vendors: []string{"Bundle-Vendor"},
	}
)

func fromManifest(attrs attributeSet) func(*archive) (*deps.Dependency, error) {
	return func(a *archive) (*deps.Dependency, error) {
		m, err := a.Manifest()
		if err != nil || m == nil {
			return nil, err
		}
		name, ok := m.Get(attrs.title)
		if !ok {
			return nil, nil
		}
		version, ok := m.Get(attrs.version)
		if !ok {
			return nil, nil
		}
		var vendor string
		for _, key := range attrs.vendors {
			if v, ok := m.Get(key); ok {
				vendor = v
				break
			}
		}
		return &deps.Dependency{
			Name:    name,
			Version: version,
			Vendor:  vendor,
			Source:  a.path,
			Method:  attrs.method,
		}, nil
	}
}
