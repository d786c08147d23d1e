package java

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// entry is one file written into a test archive. Names ending in "/" are
// written as directories.
type entry struct {
	name string
	body string
}

// writeJar creates dir/name as a zip archive holding entries in order.
func writeJar(t *testing.T, dir, name string, entries ...entry) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if e.body != "" {
			if _, err := w.Write([]byte(e.body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func manifest(lines ...string) entry {
	body := "Manifest-Version: 1.0\n"
	for _, l := range lines {
		body += l + "\n"
	}
	return entry{name: manifestName, body: body}
}

func pomProperties(groupID, artifactID, body string) entry {
	return entry{name: "META-INF/maven/" + groupID + "/" + artifactID + "/pom.properties", body: body}
}
