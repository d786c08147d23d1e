package prom

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/depinv/pkg/deps"
)

func TestRegistryMetrics(t *testing.T) {
	h := New(prometheus.NewRegistry())

	h.OnRegister("accepted", 1)
	h.OnRegister("accepted", 2)
	h.OnRegister("duplicate", 2)
	h.OnRemove(1)

	if got := testutil.ToFloat64(h.registrations.WithLabelValues("accepted")); got != 2 {
		t.Errorf("accepted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.registrations.WithLabelValues("duplicate")); got != 1 {
		t.Errorf("duplicate = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.registrySize); got != 1 {
		t.Errorf("registry size = %v, want 1", got)
	}
}

func TestScanMetrics(t *testing.T) {
	ctx := context.Background()
	h := New(prometheus.NewRegistry())

	h.OnScanStart(ctx, 3)
	h.OnPathResolved(ctx, "pom")
	h.OnPathFailed(ctx, "ARCHIVE_OPEN")
	h.OnPathFailed(ctx, "")
	h.OnPathEvicted(ctx)
	h.OnScanComplete(ctx, 1, 250*time.Millisecond)

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"scans", h.scans, 1},
		{"resolved pom", h.resolved.WithLabelValues("pom"), 1},
		{"failures open", h.failures.WithLabelValues("ARCHIVE_OPEN"), 1},
		{"failures unknown", h.failures.WithLabelValues("unknown"), 1},
		{"evictions", h.evictions, 1},
		{"dependencies", h.dependencies, 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}

	if n := testutil.CollectAndCount(h.scanDuration); n != 1 {
		t.Errorf("scan duration series = %d, want 1", n)
	}
}

func TestResolvedSeriesPresentBeforeScan(t *testing.T) {
	h := New(prometheus.NewRegistry())

	if n := testutil.CollectAndCount(h.resolved); n != len(deps.Methods) {
		t.Errorf("resolved series = %d, want %d", n, len(deps.Methods))
	}
	for _, m := range deps.Methods {
		if got := testutil.ToFloat64(h.resolved.WithLabelValues(string(m))); got != 0 {
			t.Errorf("resolved %s = %v, want 0", m, got)
		}
	}
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	defer func() {
		if recover() == nil {
			t.Error("second New on the same registerer should panic")
		}
	}()
	New(reg)
}
