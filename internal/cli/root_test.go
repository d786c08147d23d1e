package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depinv/pkg/buildinfo"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	for _, name := range []string{"scan", "watch"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
		}
	}

	if root.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", root.Version, buildinfo.Version)
	}
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := executeRoot(t, context.Background(), "--version")
	if err != nil {
		t.Fatalf("--version error = %v", err)
	}
	if !strings.HasPrefix(stdout, "depinv version "+buildinfo.Version) {
		t.Errorf("--version output = %q", stdout)
	}
}

func TestRootCommandAttachesLogger(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()

	cmd, _, _ := root.Find([]string{"scan"})
	cmd.SetContext(context.Background())
	if err := root.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatal(err)
	}
	if got := loggerFromContext(cmd.Context()); got != c.Logger {
		t.Error("command context does not carry the CLI logger")
	}
}
