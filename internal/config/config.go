// Package config loads asmodeus.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "asmodeus.toml"

// Config is the merged configuration. Zero values are replaced by defaults
// in Load.
type Config struct {
	LSP      LSPConfig      `toml:"lsp"`
	Analysis AnalysisConfig `toml:"analysis"`
	Diag     DiagConfig     `toml:"diag"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

type LSPConfig struct {
	DebounceMs     int  `toml:"debounce_ms"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Trace          bool `toml:"trace"`
}

// Debounce returns DebounceMs as a duration.
func (c LSPConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

type AnalysisConfig struct {
	ExtendedInstructions bool `toml:"extended_instructions"`
}

type DiagConfig struct {
	// Jobs is the worker count; 0 means GOMAXPROCS.
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LSP:      LSPConfig{DebounceMs: 300, MaxDiagnostics: 200},
		Analysis: AnalysisConfig{ExtendedInstructions: true},
		Diag:     DiagConfig{Cache: true},
	}
}

// Find walks up from startDir to locate asmodeus.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest asmodeus.toml above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) validate() error {
	switch {
	case c.LSP.DebounceMs < 0:
		return errors.New("lsp.debounce_ms must not be negative")
	case c.LSP.MaxDiagnostics < 0:
		return errors.New("lsp.max_diagnostics must not be negative")
	case c.Diag.Jobs < 0:
		return errors.New("diag.jobs must not be negative")
	}
	return nil
}
