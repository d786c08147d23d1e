// Package inventory keeps the set of archives loaded by the host process and
// turns it into a dependency inventory on demand.
//
// # Overview
//
// Two activities share one [Registry]:
//
//   - Load-event callbacks call [Registry.Register] (or
//     [Registry.RegisterLocation]) on arbitrary goroutines whenever the host
//     loads code from an archive. Registration never touches the file system.
//   - A [Scanner] periodically, or on demand, takes [Registry.Snapshot],
//     resolves each path with a [deps.Resolver] and returns the deduplicated
//     [deps.Set].
//
// The Registry is an explicit value. The component that owns the load hooks
// creates it at startup and hands the same instance to the callbacks and to
// the Scanner.
//
// # Capacity
//
// A Registry holds at most [DefaultMaxPaths] paths unless configured with
// [WithMaxPaths]. When full, new paths are dropped and existing ones are
// kept; there is no eviction and no retry queue.
//
// # Scanning
//
// Each path's resolution is isolated: the outcome is recorded as a
// [PathResult] and a failure never affects other paths.
//
//   - resolved: the dependency is added to the result set
//   - none: the archive had no usable metadata and contributes nothing
//   - missing: the archive is gone and the path is removed from the registry
//   - failed: the archive could not be read; the path stays registered and is
//     retried on the next scan
//
// [Scanner.Run] repeats scans on a fixed interval and hands each [Report] to
// a sink, typically the telemetry uploader.
//
// # Example
//
//	reg := inventory.NewRegistry()
//	hook := func(location string) { reg.RegisterLocation(location) }
//	// ... instrumentation calls hook on every class load ...
//
//	scanner := inventory.NewScanner(reg, java.NewResolver(logger), logger)
//	for _, d := range scanner.Scan(ctx).Sorted() {
//	    fmt.Println(d.Coordinate())
//	}
//
// [deps.Resolver]: github.com/matzehuels/depinv/pkg/deps.Resolver
// [deps.Set]: github.com/matzehuels/depinv/pkg/deps.Set
package inventory
