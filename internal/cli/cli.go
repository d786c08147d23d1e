// Package cli implements the depinv command-line interface.
//
// The CLI stands in for an instrumented host process: every file found under
// the given paths is reported to an [inventory.Registry] as a load event, and
// an [inventory.Scanner] turns the registry into a dependency inventory.
//
// # Commands
//
//   - scan: walk the paths once, scan, and print a table or JSON report
//   - watch: re-walk and re-scan on an interval until interrupted, optionally
//     serving Prometheus metrics
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and retrieved with loggerFromContext.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depinv/pkg/cache"
	"github.com/matzehuels/depinv/pkg/config"
	"github.com/matzehuels/depinv/pkg/deps"
	"github.com/matzehuels/depinv/pkg/deps/java"
	"github.com/matzehuels/depinv/pkg/inventory"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "depinv"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Inventory Factory
// =============================================================================

// inventoryOpts holds the flags shared by scan and watch.
type inventoryOpts struct {
	configPath  string   // TOML config file (optional)
	maxPaths    int      // registry capacity
	extensions  []string // archive extensions
	interval    string   // scan interval (watch only)
	metricsAddr string   // metrics listen address (watch only)
}

// bindFlags registers the shared flags on cmd.
func (o *inventoryOpts) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().IntVar(&o.maxPaths, "max-paths", 0, "maximum archives tracked (default 4096)")
	cmd.Flags().StringSliceVar(&o.extensions, "ext", nil, "archive extensions to track (default .jar)")
}

// load reads the config file and applies flags that were set explicitly.
func (o *inventoryOpts) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-paths") {
		cfg.MaxPaths = o.maxPaths
	}
	if flags.Changed("ext") {
		cfg.Extensions = o.extensions
	}
	if flags.Changed("interval") {
		var d config.Duration
		if err := d.UnmarshalText([]byte(o.interval)); err != nil {
			return config.Config{}, err
		}
		cfg.ScanInterval = d
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newInventory builds the registry and scanner described by cfg. If
// withCache is set, a resolution cache sits in front of the archive resolver
// and is returned as well.
func (c *CLI) newInventory(cfg config.Config, withCache bool) (*inventory.Registry, *inventory.Scanner, *cache.Resolver) {
	reg := inventory.NewRegistry(cfg.RegistryOptions()...)

	var resolver deps.Resolver = java.NewResolver(c.Logger)
	var cached *cache.Resolver
	if withCache {
		cached = cache.NewResolver(resolver, cfg.MaxPaths)
		resolver = cached
	}
	return reg, inventory.NewScanner(reg, resolver, c.Logger), cached
}
