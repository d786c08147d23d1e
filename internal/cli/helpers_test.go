package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// writeJar creates dir/name as a zip archive holding a single entry.
func writeJar(t *testing.T, dir, name, entry, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create(entry)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeLibDir populates a directory with two resolvable archives, one
// archive without metadata and a non-archive file.
func writeLibDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeJar(t, dir, "lib/commons-io-2.15.1.jar",
		"META-INF/maven/commons-io/commons-io/pom.properties",
		"groupId=commons-io\nartifactId=commons-io\nversion=2.15.1\n")
	writeJar(t, dir, "lib/nested/jsr305.jar",
		"META-INF/MANIFEST.MF",
		"Manifest-Version: 1.0\nBundle-SymbolicName: org.jsr-305\nBundle-Version: 3.0.2\n")
	writeJar(t, dir, "lib/classes.jar", "com/example/App.class", "\xca\xfe\xba\xbe")
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not an archive"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// executeRoot runs the root command with args and returns stdout and the
// log output.
func executeRoot(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, logs bytes.Buffer
	c := New(&logs, log.DebugLevel)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stdout.String(), logs.String(), err
}
