package java

import (
	"strings"

	"github.com/magiconair/properties"

	"github.com/matzehuels/depinv/pkg/deps"
	derrors "github.com/matzehuels/depinv/pkg/errors"
)

// fromPOMProperties reads the pom.properties Maven writes under
// META-INF/maven/<groupId>/<artifactId>/. Only the first matching entry is
// consulted; shaded jars carrying several are identified by whichever comes
// first in the zip directory.
func fromPOMProperties(a *archive) (*deps.Dependency, error) {
	for _, f := range a.files {
		if !isPOMProperties(f.Name) || f.FileInfo().IsDir() {
			continue
		}
		data, err := a.read(f)
		if err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeMetadataParse, err, "read %s", f.Name)
		}
		p, err := loadProperties(data)
		if err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeMetadataParse, err, "parse %s", f.Name)
		}
		artifactID, ok := p.Get("artifactId")
		if !ok {
			return nil, nil
		}
		version, ok := p.Get("version")
		if !ok {
			return nil, nil
		}
		groupID, _ := p.Get("groupId")
		return &deps.Dependency{
			Name:    artifactID,
			Version: version,
			Vendor:  groupID,
			Source:  a.path,
			Method:  deps.MethodPOM,
		}, nil
	}
	return nil, nil
}

func isPOMProperties(name string) bool {
	return strings.HasPrefix(name, "META-INF") && strings.HasSuffix(name, "pom.properties")
}

// loadProperties parses data in the java.util.Properties format. Maven writes
// these files in ISO-8859-1 and never uses ${} references, so expansion is
// disabled.
func loadProperties(data []byte) (*properties.Properties, error) {
	l := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	return l.LoadBytes(data)
}
