package cli

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depinv/pkg/inventory"
	"github.com/matzehuels/depinv/pkg/observability"
	"github.com/matzehuels/depinv/pkg/observability/prom"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var opts inventoryOpts

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-scan the given paths on an interval",
		Long: `Walk the given paths and scan them repeatedly until interrupted. Every
cycle re-reports the files found as load events, so new archives join the
inventory and deleted ones are dropped from the registry.

Examples:
  depinv watch /opt/app/lib --interval 30s
  depinv watch /opt/app --config depinv.toml --metrics-addr :9464`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, &opts, args)
		},
	}

	opts.bindFlags(cmd)
	cmd.Flags().StringVarP(&opts.interval, "interval", "i", "", "time between scans (default 1m)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, opts *inventoryOpts, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	if lvl, err := cfg.Level(); err == nil {
		applyConfigLevel(logger, lvl)
	}

	reg, scanner, cached := c.newInventory(cfg, true)

	if cfg.MetricsAddr != "" {
		metrics := prometheus.NewRegistry()
		metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		hooks := prom.New(metrics)
		observability.SetRegistryHooks(hooks)
		observability.SetScanHooks(hooks)
		defer observability.Reset()

		if err := serveMetrics(ctx, cfg.MetricsAddr, newMetricsHandler(metrics, reg), logger); err != nil {
			return err
		}
	}

	roots := scanRoots(args)
	feed := func() {
		if _, err := feedPaths(ctx, reg, roots); err != nil && ctx.Err() == nil {
			logger.Warn("walk failed", "err", err)
		}
	}

	logger.Info("watching", "paths", roots, "interval", cfg.Interval())
	feed()
	return scanner.Run(ctx, cfg.Interval(), func(rep inventory.Report) {
		logger.Info("scan complete",
			"dependencies", rep.Dependencies.Len(),
			"archives", rep.Paths,
			"evicted", rep.Evicted,
			"failed", rep.Failed,
			"duration", rep.Duration.Round(time.Millisecond))
		st := cached.Stats()
		logger.Debug("resolution cache", "hits", st.Hits, "misses", st.Misses, "entries", st.Entries)
		feed()
	})
}
