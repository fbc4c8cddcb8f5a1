// Package config loads pennmush.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "pennmush.toml"

// Config is the decoded pennmush.toml merged over the defaults.
type Config struct {
	// Path is the file the config came from; empty when defaults are used.
	Path   string       `toml:"-"`
	Check  CheckConfig  `toml:"check"`
	Lint   LintConfig   `toml:"lint"`
	Format FormatConfig `toml:"format"`
	LSP    LSPConfig    `toml:"lsp"`
}

type CheckConfig struct {
	Extensions     []string `toml:"extensions"`
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

type LintConfig struct {
	UnknownFunctions bool `toml:"unknown_functions"`
	UnknownCommands  bool `toml:"unknown_commands"`
	Registers        bool `toml:"registers"`
}

type FormatConfig struct {
	IndentWidth int `toml:"indent_width"`
}

type LSPConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the settings used when no pennmush.toml exists.
func Default() Config {
	return Config{
		Check: CheckConfig{
			Extensions:     []string{".mush", ".mu"},
			MaxDiagnostics: 100,
		},
		Lint: LintConfig{
			UnknownFunctions: true,
			UnknownCommands:  true,
			Registers:        true,
		},
		Format: FormatConfig{IndentWidth: 2},
	}
}

// LintOptions converts the [lint] table.
func (c Config) LintOptions() lint.Options {
	return lint.Options{
		UnknownFunctions: c.Lint.UnknownFunctions,
		UnknownCommands:  c.Lint.UnknownCommands,
		Registers:        c.Lint.Registers,
	}
}

// FormatOptions converts the [format] table.
func (c Config) FormatOptions() format.Options {
	return format.Options{IndentWidth: c.Format.IndentWidth}
}

// Debounce converts lsp.debounce_ms.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.LSP.DebounceMS) * time.Millisecond
}

// Find walks up from startDir to locate pennmush.toml.
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
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest pennmush.toml; without one it returns
// Default().
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults and validates the keys it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "extensions") {
		for _, ext := range cfg.Check.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return Config{}, fmt.Errorf("%s: [check].extensions: %q must start with '.'", path, ext)
			}
		}
		if len(cfg.Check.Extensions) == 0 {
			return Config{}, fmt.Errorf("%s: [check].extensions must not be empty", path)
		}
	}
	if meta.IsDefined("check", "jobs") && cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must be >= 0", path)
	}
	if meta.IsDefined("check", "max_diagnostics") && cfg.Check.MaxDiagnostics <= 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must be > 0", path)
	}
	if meta.IsDefined("format", "indent_width") && cfg.Format.IndentWidth < 2 {
		return Config{}, fmt.Errorf("%s: [format].indent_width must be >= 2", path)
	}
	if meta.IsDefined("lsp", "debounce_ms") && cfg.LSP.DebounceMS < 0 {
		return Config{}, fmt.Errorf("%s: [lsp].debounce_ms must be >= 0", path)
	}
	cfg.Path = path
	return cfg, nil
}
