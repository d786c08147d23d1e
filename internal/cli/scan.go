package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depinv/pkg/buildinfo"
	"github.com/matzehuels/depinv/pkg/inventory"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	inventoryOpts
	json bool // print JSON instead of a table
}

// scanOutput is the JSON document printed by scan --json.
type scanOutput struct {
	Agent  buildinfo.Info   `json:"agent"`
	Report inventory.Report `json:"report"`
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Inventory the archives under the given paths once",
		Long: `Walk the given files and directories, register every archive as a loaded
artifact, resolve its metadata and print the deduplicated inventory.

Examples:
  depinv scan ~/.m2/repository
  depinv scan build/libs app.jar --json
  depinv scan /opt/app --ext .jar,.war --max-paths 10000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd, &opts, args)
		},
	}

	opts.bindFlags(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, opts *scanOpts, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	if lvl, err := cfg.Level(); err == nil {
		applyConfigLevel(logger, lvl)
	}

	reg, scanner, _ := c.newInventory(cfg, false)
	prog := newProgress(logger)

	stop := startSpinner(ctx, cmd.ErrOrStderr(), "Scanning archives")
	feed, err := feedPaths(ctx, reg, scanRoots(args))
	if err != nil {
		stop()
		return err
	}
	rep := scanner.Report(ctx)
	stop()
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d archives", rep.Paths))

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, scanOutput{Agent: buildinfo.Get(), Report: rep})
	}
	printReport(out, rep, feed)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
