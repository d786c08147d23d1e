package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/matzehuels/depinv/pkg/errors"
	"github.com/matzehuels/depinv/pkg/inventory"
)

// feedStats counts how the registry answered the load events of one walk.
type feedStats struct {
	files     int
	accepted  int
	duplicate int
	dropped   int
}

// scanRoots returns the paths to walk, defaulting to the working directory.
func scanRoots(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// feedPaths walks roots and reports every regular file to reg as a load
// event. The registry decides which files are archives. Unreadable
// subdirectories are logged and skipped; an unreadable root is an error.
func feedPaths(ctx context.Context, reg *inventory.Registry, roots []string) (feedStats, error) {
	logger := loggerFromContext(ctx)
	var st feedStats

	for _, root := range roots {
		if err := errors.ValidateScanPath(root); err != nil {
			return st, err
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return st, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", root)
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == abs {
					return err
				}
				logger.Debug("skipping unreadable path", "path", path, "err", err)
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}

			st.files++
			switch reg.Register(path) {
			case inventory.Accepted:
				st.accepted++
			case inventory.Duplicate:
				st.duplicate++
			case inventory.Full:
				st.dropped++
			}
			return nil
		})
		if err != nil {
			return st, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if st.dropped > 0 {
		logger.Warn("registry full, archives dropped", "dropped", st.dropped, "capacity", reg.Cap())
	}
	return st, nil
}
