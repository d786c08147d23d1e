package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depinv/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The CLI's logger is attached to each command's context so helpers can
// fetch it with loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Depinv inventories the third-party archives a process loads",
		Long: `Depinv builds a deduplicated inventory of library archives (name, version,
vendor) from their embedded metadata: Maven pom.properties first, then the
MANIFEST.MF implementation, specification and OSGi bundle attributes.

Files found under the given paths are treated as load events, exactly as an
instrumented host process would report them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.watchCommand())

	return root
}
