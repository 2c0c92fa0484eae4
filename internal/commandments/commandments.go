// Package commandments loads the optional per-project configuration
// file commandments.toml. Missing file or missing sections fall back
// to the defaults; unknown keys are ignored so older interpreters can
// read newer files.
package commandments

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest name looked up from the script's directory.
const FileName = "commandments.toml"

// Sabbath controls the day-of-rest gate.
type Sabbath struct {
	// Enforce blocks execution on Sundays unless overridden.
	Enforce bool `toml:"enforce"`
}

// Practices lists the name fragments the linter forbids in calls and
// bindings, and the exact names exempted from that check.
type Practices struct {
	Forbidden []string `toml:"forbidden"`
	Allowed   []string `toml:"allowed"`
}

// Blessings controls the marker requirement per declaration kind.
// Each flag rejects declarations of that kind that use the secular
// `function` keyword instead of bless or miracle.
type Blessings struct {
	Functions  bool `toml:"functions"`
	Containers bool `toml:"containers"`
	Modules    bool `toml:"modules"`
}

// Config is the decoded commandments.toml.
type Config struct {
	Sabbath   Sabbath   `toml:"sabbath"`
	Practices Practices `toml:"practices"`
	Blessings Blessings `toml:"blessings"`
}

// Default returns the configuration used when no commandments.toml is
// present.
func Default() Config {
	return Config{
		Sabbath: Sabbath{Enforce: true},
		Practices: Practices{
			Forbidden: []string{"devil", "satan", "demon", "kill"},
		},
		Blessings: Blessings{Functions: true, Containers: true, Modules: true},
	}
}

// Load parses a commandments.toml at path. Sections absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("sabbath", "enforce") {
		cfg.Sabbath.Enforce = raw.Sabbath.Enforce
	}
	if meta.IsDefined("practices", "forbidden") {
		cfg.Practices.Forbidden = raw.Practices.Forbidden
	}
	if meta.IsDefined("practices", "allowed") {
		cfg.Practices.Allowed = raw.Practices.Allowed
	}
	if meta.IsDefined("blessings", "functions") {
		cfg.Blessings.Functions = raw.Blessings.Functions
	}
	if meta.IsDefined("blessings", "containers") {
		cfg.Blessings.Containers = raw.Blessings.Containers
	}
	if meta.IsDefined("blessings", "modules") {
		cfg.Blessings.Modules = raw.Blessings.Modules
	}
	return cfg, nil
}

// Find walks up from startDir to locate the nearest commandments.toml.
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

// ForScript loads the commandments governing the given script path,
// falling back to defaults when none is found.
func ForScript(scriptPath string) (Config, error) {
	path, ok, err := Find(filepath.Dir(scriptPath))
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
