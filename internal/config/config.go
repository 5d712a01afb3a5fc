/*
PURPOSE:
  Defines the configuration structure and loading logic for Speedtest Batch.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the external tool name, output directory, server
    count, and the pause between consecutive tests.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - A per-test timeout knob is useful; default 0 keeps the historical
    behavior of waiting on the tool indefinitely.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files fall back to DefaultConfig silently.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should match the tool's documented behavior (2s pause, 50 cap).

USAGE:
  cfg, err := config.Load("speedtest-batch.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update Load() defaults.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "2s" parse; yaml.v3 has
// no native support for duration strings.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	// Bare integers are taken as nanoseconds, matching time.Duration.
	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", node.Value)
	}
	*d = Duration(n)
	return nil
}

// Config represents the full configuration for Speedtest Batch.
type Config struct {
	// Tool is the external measurement binary looked up on PATH.
	Tool       string `yaml:"tool"`
	OutputDir  string `yaml:"output_dir"`
	MaxServers int    `yaml:"max_servers"`
	// Count is how many discovered servers to test; 0 means all of them.
	Count int `yaml:"count"`
	// ServerFile, when set, bypasses discovery entirely. The file's IDs are
	// taken verbatim; unknown IDs simply fail at test time.
	ServerFile string   `yaml:"server_file"`
	Pause      Duration `yaml:"pause"`
	// TestTimeout bounds a single tool invocation. 0 disables the bound.
	TestTimeout Duration `yaml:"test_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tool:        "speedtest-cli",
		OutputDir:   "./results",
		MaxServers:  50,
		Count:       0,
		Pause:       Duration(2 * time.Second),
		TestTimeout: 0,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"speedtest-batch.yaml", "batch.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
