// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about path registration and inventory
// scans.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// A Prometheus implementation lives in the [prom] subpackage.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := prom.New(prometheus.DefaultRegisterer)
//	    observability.SetRegistryHooks(hooks)
//	    observability.SetScanHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnScanStart(ctx, len(paths))
//	// ... resolve paths ...
//	observability.Scan().OnScanComplete(ctx, set.Len(), duration)
//
// [prom]: github.com/matzehuels/depinv/pkg/observability/prom
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the archive path registry.
//
// These hooks run on the host application's load-event goroutines and must
// not block.
type RegistryHooks interface {
	// OnRegister records a registration attempt. result is one of
	// "accepted", "duplicate", "full" or "ignored"; size is the registry
	// size afterwards.
	OnRegister(result string, size int)

	// OnRemove records a path leaving the registry.
	OnRemove(size int)
}

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from inventory scans.
type ScanHooks interface {
	// OnScanStart records the start of a scan over the given number of paths.
	OnScanStart(ctx context.Context, paths int)

	// OnPathResolved records a path that produced a dependency.
	OnPathResolved(ctx context.Context, method string)

	// OnPathFailed records a path that could not be read, by error code.
	OnPathFailed(ctx context.Context, code string)

	// OnPathEvicted records a path dropped because its archive is gone.
	OnPathEvicted(ctx context.Context)

	// OnScanComplete records the end of a scan.
	OnScanComplete(ctx context.Context, dependencies int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnRegister(string, int) {}
func (NoopRegistryHooks) OnRemove(int)           {}

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, int)                   {}
func (NoopScanHooks) OnPathResolved(context.Context, string)             {}
func (NoopScanHooks) OnPathFailed(context.Context, string)               {}
func (NoopScanHooks) OnPathEvicted(context.Context)                      {}
func (NoopScanHooks) OnScanComplete(context.Context, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	registryHooks RegistryHooks = NoopRegistryHooks{}
	scanHooks     ScanHooks     = NoopScanHooks{}
	hooksMu       sync.RWMutex
)

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any paths are registered.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan runs.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	registryHooks = NoopRegistryHooks{}
	scanHooks = NoopScanHooks{}
}
