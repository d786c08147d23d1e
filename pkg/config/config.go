// Package config loads depinv settings from a TOML file.
//
// Example file:
//
//	max_paths     = 4096
//	extensions    = [".jar", ".war"]
//	scan_interval = "5m"
//	log_level     = "info"
//	metrics_addr  = ":9464"
//
// Every key is optional. Unknown keys are rejected so typos do not pass
// silently.
package config

import (
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/depinv/pkg/errors"
	"github.com/matzehuels/depinv/pkg/inventory"
)

const (
	DefaultScanInterval = time.Minute
	DefaultLogLevel     = "info"
)

// Duration is a time.Duration written as a Go duration string ("30s", "5m").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the tunables of the registry, scanner and CLI.
type Config struct {
	MaxPaths     int      `toml:"max_paths"`
	Extensions   []string `toml:"extensions"`
	ScanInterval Duration `toml:"scan_interval"`
	LogLevel     string   `toml:"log_level"`
	MetricsAddr  string   `toml:"metrics_addr"` // Empty disables the metrics endpoint
}

// Default returns a Config with every field set to its default.
func Default() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	cfg := c
	if cfg.MaxPaths <= 0 {
		cfg.MaxPaths = inventory.DefaultMaxPaths
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{inventory.DefaultExtension}
	} else {
		cfg.Extensions = slices.Clone(cfg.Extensions)
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = Duration(DefaultScanInterval)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if c.MaxPaths <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_paths must be positive, got %d", c.MaxPaths)
	}
	for _, ext := range c.Extensions {
		if err := errors.ValidateExtension(ext); err != nil {
			return err
		}
	}
	if c.ScanInterval <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scan_interval must be positive, got %s", time.Duration(c.ScanInterval))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// Interval returns ScanInterval as a time.Duration.
func (c Config) Interval() time.Duration { return time.Duration(c.ScanInterval) }

// RegistryOptions converts the registry settings into inventory options.
func (c Config) RegistryOptions() []inventory.Option {
	return []inventory.Option{
		inventory.WithMaxPaths(c.MaxPaths),
		inventory.WithExtensions(c.Extensions...),
	}
}

// Load reads the TOML file at path, applies defaults and validates the
// result. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r, applies defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
