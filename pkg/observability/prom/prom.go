// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/depinv/pkg/deps"
	"github.com/matzehuels/depinv/pkg/observability"
)

const namespace = "depinv"

// Hooks records registry and scan events as Prometheus metrics.
type Hooks struct {
	registrations *prometheus.CounterVec
	registrySize  prometheus.Gauge
	scans         prometheus.Counter
	scanDuration  prometheus.Histogram
	dependencies  prometheus.Gauge
	resolved      *prometheus.CounterVec
	failures      *prometheus.CounterVec
	evictions     prometheus.Counter
}

var (
	_ observability.RegistryHooks = (*Hooks)(nil)
	_ observability.ScanHooks     = (*Hooks)(nil)
)

// New creates the metrics and registers them with reg. It panics if any
// metric is already registered, like promauto.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	h := &Hooks{
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_registrations_total",
			Help:      "Archive path registration attempts by result.",
		}, []string{"result"}),
		registrySize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_paths",
			Help:      "Archive paths currently held by the registry.",
		}),
		scans: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Inventory scans started.",
		}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of completed inventory scans.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		dependencies: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependencies",
			Help:      "Distinct dependencies found by the last scan.",
		}),
		resolved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paths_resolved_total",
			Help:      "Archive paths resolved to a dependency, by extraction method.",
		}, []string{"method"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_failures_total",
			Help:      "Archive paths that could not be read, by error code.",
		}, []string{"code"}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paths_evicted_total",
			Help:      "Archive paths dropped because the file no longer exists.",
		}),
	}
	// Export a zero series per method before the first scan.
	for _, m := range deps.Methods {
		h.resolved.WithLabelValues(string(m))
	}
	return h
}

func (h *Hooks) OnRegister(result string, size int) {
	h.registrations.WithLabelValues(result).Inc()
	h.registrySize.Set(float64(size))
}

func (h *Hooks) OnRemove(size int) {
	h.registrySize.Set(float64(size))
}

func (h *Hooks) OnScanStart(_ context.Context, _ int) {
	h.scans.Inc()
}

func (h *Hooks) OnPathResolved(_ context.Context, method string) {
	h.resolved.WithLabelValues(method).Inc()
}

func (h *Hooks) OnPathFailed(_ context.Context, code string) {
	if code == "" {
		code = "unknown"
	}
	h.failures.WithLabelValues(code).Inc()
}

func (h *Hooks) OnPathEvicted(context.Context) {
	h.evictions.Inc()
}

func (h *Hooks) OnScanComplete(_ context.Context, dependencies int, duration time.Duration) {
	h.dependencies.Set(float64(dependencies))
	h.scanDuration.Observe(duration.Seconds())
}
