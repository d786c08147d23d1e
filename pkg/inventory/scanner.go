package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depinv/pkg/deps"
	derrors "github.com/matzehuels/depinv/pkg/errors"
	"github.com/matzehuels/depinv/pkg/observability"
)

// Outcome classifies what happened to one path during a scan.
type Outcome int

const (
	OutcomeResolved Outcome = iota // A dependency was extracted
	OutcomeNone                    // The archive opened but had no usable metadata
	OutcomeMissing                 // The archive no longer exists; the path was deregistered
	OutcomeFailed                  // The archive could not be read this time
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNone:
		return "none"
	case OutcomeMissing:
		return "missing"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PathResult is the outcome of resolving one registered path.
type PathResult struct {
	Path       string
	Outcome    Outcome
	Dependency deps.Dependency // Set when Outcome is OutcomeResolved
	Err        error           // Set when Outcome is OutcomeMissing or OutcomeFailed
}

// Report summarises one scan for the telemetry layer.
type Report struct {
	ID           uuid.UUID     `json:"id"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration_ns"`
	Paths        int           `json:"paths"`
	Resolved     int           `json:"resolved"`
	Unresolved   int           `json:"unresolved"`
	Evicted      int           `json:"evicted"`
	Failed       int           `json:"failed"`
	Dependencies *deps.Set     `json:"dependencies"`
}

// Scanner resolves every registered path into the dependency inventory.
//
// A Scanner does all archive I/O on the goroutine that calls Scan, one path
// at a time. Scan must not be called concurrently on the same Scanner.
type Scanner struct {
	registry *Registry
	resolver deps.Resolver
	logger   *log.Logger
}

// NewScanner creates a Scanner over registry using resolver.
// If logger is nil, log.Default() is used.
func NewScanner(registry *Registry, resolver deps.Resolver, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{registry: registry, resolver: resolver, logger: logger}
}

// Scan resolves a snapshot of the registry and returns the deduplicated
// dependencies found. Paths whose archive has disappeared are removed from
// the registry. Scan never fails; paths that cannot be read are logged and
// skipped. If ctx is cancelled the dependencies found so far are returned.
func (s *Scanner) Scan(ctx context.Context) *deps.Set {
	return s.Report(ctx).Dependencies
}

// Report runs a scan like Scan and returns it with per-outcome counts.
func (s *Scanner) Report(ctx context.Context) Report {
	rep := Report{
		ID:           uuid.New(),
		StartedAt:    time.Now(),
		Dependencies: deps.NewSet(),
	}

	paths := s.registry.Snapshot()
	rep.Paths = len(paths)
	hooks := observability.Scan()
	hooks.OnScanStart(ctx, len(paths))

	for i, path := range paths {
		if ctx.Err() != nil {
			s.logger.Debug("scan interrupted", "remaining", len(paths)-i)
			break
		}

		res := s.resolvePath(path)
		switch res.Outcome {
		case OutcomeResolved:
			rep.Resolved++
			rep.Dependencies.Add(res.Dependency)
			hooks.OnPathResolved(ctx, string(res.Dependency.Method))
		case OutcomeNone:
			rep.Unresolved++
			s.logger.Debug("no dependency metadata", "path", path)
		case OutcomeMissing:
			rep.Evicted++
			s.registry.Remove(path)
			hooks.OnPathEvicted(ctx)
			s.logger.Debug("archive gone, deregistered", "path", path)
		case OutcomeFailed:
			rep.Failed++
			hooks.OnPathFailed(ctx, string(derrors.GetCode(res.Err)))
			s.logger.Warn("resolve archive failed", "path", path, "err", res.Err)
		}
	}

	rep.Duration = time.Since(rep.StartedAt)
	hooks.OnScanComplete(ctx, rep.Dependencies.Len(), rep.Duration)
	s.logger.Debug("scan complete",
		"id", rep.ID,
		"paths", rep.Paths,
		"dependencies", rep.Dependencies.Len(),
		"evicted", rep.Evicted,
		"failed", rep.Failed,
		"duration", rep.Duration)
	return rep
}

// resolvePath resolves one path, converting any error or panic from the
// resolver into a PathResult so it cannot escape the scan loop.
func (s *Scanner) resolvePath(path string) (res PathResult) {
	res.Path = path
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Err = derrors.New(derrors.ErrCodeInternal, "resolver panic on %s: %v", path, r)
		}
	}()

	dep, err := s.resolver.Resolve(path)
	switch {
	case derrors.Is(err, derrors.ErrCodeArchiveMissing),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ENOTDIR): // a parent directory was replaced by a file
		res.Outcome = OutcomeMissing
		res.Err = err
	case err != nil:
		res.Outcome = OutcomeFailed
		res.Err = err
	case dep == nil:
		res.Outcome = OutcomeNone
	default:
		res.Outcome = OutcomeResolved
		res.Dependency = *dep
	}
	return res
}

// Run scans immediately and then once per interval until ctx is done,
// passing each report to sink on the calling goroutine. It returns
// ctx.Err().
func (s *Scanner) Run(ctx context.Context, interval time.Duration, sink func(Report)) error {
	if interval <= 0 {
		return derrors.New(derrors.ErrCodeInvalidConfig, "scan interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		rep := s.Report(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if sink != nil {
			sink(rep)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
