// Package config loads the optional canary.yaml configuration and supports
// hot reload of the settings that are safe to change at runtime.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/canary/internal/logging"
)

// EnvVerbosity overrides the default verbosity when set to 0..3.
const EnvVerbosity = "CANARY_VERBOSE"

// Config is the CLI/server configuration.
type Config struct {
	// Verbosity is the log verbosity level (0..3).
	Verbosity int `yaml:"verbosity"`

	// IncludeAll disables member filtering during inspection.
	IncludeAll bool `yaml:"include_all"`

	// Deny appends member-name substrings to the hub's dispatch denylist.
	Deny []string `yaml:"deny"`

	// HTTPAddr is the diagnostic server bind address.
	HTTPAddr string `yaml:"http_addr"`
}

// Default returns the configuration used when no file is present. The
// environment variable override is applied here so every entry point
// honors it.
func Default() Config {
	cfg := Config{
		Verbosity: logging.User,
		HTTPAddr:  ":8321",
	}
	if raw := os.Getenv(EnvVerbosity); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= logging.Silent && v <= logging.Trace {
			cfg.Verbosity = v
		}
	}
	return cfg
}

// Load reads a YAML configuration file over the defaults. A missing file is
// not an error; it just yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Verbosity < logging.Silent || cfg.Verbosity > logging.Trace {
		cfg.Verbosity = logging.User
	}
	return cfg, nil
}
