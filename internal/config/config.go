// Package config loads host configuration for the tash shell.
//
// Precedence (highest to lowest): command-line flags (scanned elsewhere) >
// TASH_* environment variables > tash.yaml > defaults. The config never
// overrides an explicit flag; it only supplies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config file names probed in the working directory and ~/.tash/.
const (
	ConfigFileName    = "tash.yaml"
	ConfigFileNameAlt = "tash.yml"
)

// Host holds shell-level settings.
type Host struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
	InitFile    string `koanf:"init_file"`
	Threads     int    `koanf:"threads"`
	NoSplash    bool   `koanf:"no_splash"`
}

// Load reads host configuration from defaults, an optional config file, and
// TASH_* environment variables. A missing config file is not an error.
func Load() (*Host, error) {
	k := koanf.New(".")

	// Defaults.
	if err := k.Load(confmap.Provider(map[string]any{
		"prompt":       "tash> ",
		"history_file": ".tash_history",
		"threads":      1,
		"no_splash":    false,
	}, "."), nil); err != nil {
		return nil, err
	}

	// Optional config file.
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// Environment overrides: TASH_THREADS=max etc.
	if err := k.Load(env.Provider("TASH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TASH_"))
	}), nil); err != nil {
		return nil, err
	}

	var cfg Host
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile probes the working directory, then ~/.tash/.
func findConfigFile() string {
	candidates := []string{ConfigFileName, ConfigFileNameAlt}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".tash", ConfigFileName),
			filepath.Join(home, ".tash", ConfigFileNameAlt),
		)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
