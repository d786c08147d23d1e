package java

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depinv/pkg/deps"
	derrors "github.com/matzehuels/depinv/pkg/errors"
)

// maxEntrySize caps how much of a metadata entry is read into memory.
const maxEntrySize = 1 << 20

const manifestName = "META-INF/MANIFEST.MF"

// Resolver extracts dependency identity from jar-style archives.
// It is safe for concurrent use; each Resolve call opens its own archive.
type Resolver struct {
	Logger *log.Logger

	strategies []strategy
}

// NewResolver creates a Resolver using the default strategy order.
// If logger is nil, log.Default() is used.
func NewResolver(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{Logger: logger, strategies: defaultStrategies}
}

var _ deps.Resolver = (*Resolver)(nil)

// Resolve opens the archive at path and returns the first dependency any
// strategy produces, or (nil, nil) if none does.
//
// The archive is closed before Resolve returns on every path. A close
// failure is logged and never changes the result.
func (r *Resolver) Resolve(path string) (*deps.Dependency, error) {
	zr, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, derrors.Wrap(derrors.ErrCodeArchiveMissing, err, "archive %s", path)
		}
		return nil, derrors.Wrap(derrors.ErrCodeArchiveOpen, err, "open archive %s", path)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil {
			r.Logger.Warn("close archive failed", "path", path,
				"err", derrors.Wrap(derrors.ErrCodeResourceClose, cerr, "close %s", path))
		}
	}()

	a := &archive{path: path, files: zr.File, logger: r.Logger}
	for _, s := range r.strategies {
		dep, err := s.apply(a)
		if err != nil {
			r.Logger.Debug("metadata strategy failed", "path", path, "method", s.method, "err", err)
			continue
		}
		if dep != nil {
			return dep, nil
		}
	}
	return nil, nil
}

// archive is one opened zip shared by all strategies of a single Resolve
// call. The manifest is parsed lazily and at most once.
type archive struct {
	path   string
	files  []*zip.File
	logger *log.Logger

	manifestRead bool
	manifest     *Manifest
	manifestErr  error
}

// Manifest returns the parsed main section of META-INF/MANIFEST.MF, or
// (nil, nil) if the archive has no manifest.
func (a *archive) Manifest() (*Manifest, error) {
	if a.manifestRead {
		return a.manifest, a.manifestErr
	}
	a.manifestRead = true

	f := a.find(manifestName)
	if f == nil {
		return nil, nil
	}
	data, err := a.read(f)
	if err != nil {
		a.manifestErr = derrors.Wrap(derrors.ErrCodeMetadataParse, err, "read %s", f.Name)
		return nil, a.manifestErr
	}
	m, err := ParseManifest(bytes.NewReader(data))
	if err != nil {
		a.manifestErr = derrors.Wrap(derrors.ErrCodeMetadataParse, err, "parse %s", f.Name)
		return nil, a.manifestErr
	}
	a.manifest = m
	return m, nil
}

// find returns the entry with the given name, falling back to a
// case-insensitive match.
func (a *archive) find(name string) *zip.File {
	var folded *zip.File
	for _, f := range a.files {
		if f.Name == name {
			return f
		}
		if folded == nil && strings.EqualFold(f.Name, name) {
			folded = f
		}
	}
	return folded
}

// read returns the content of f, refusing entries larger than maxEntrySize.
func (a *archive) read(f *zip.File) (data []byte, err error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			a.logger.Warn("close archive entry failed", "path", a.path, "entry", f.Name,
				"err", derrors.Wrap(derrors.ErrCodeResourceClose, cerr, "close %s", f.Name))
		}
	}()

	data, err = io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxEntrySize {
		return nil, fmt.Errorf("%s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return data, nil
}
