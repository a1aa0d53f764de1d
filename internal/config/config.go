package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/shellmarks/catalog/internal/logging"
)

// DefaultScriptPath is ~/.shellmarks/scripts, or a relative "scripts"
// directory when the home directory is unknown.
func DefaultScriptPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scripts"
	}
	return filepath.Join(home, ".shellmarks", "scripts")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ProjectName: "Shellmarks",
		ScriptPaths: []string{DefaultScriptPath()},
		Exclude:     DefaultExcludes,
		OutputDir:   "site",
		DataDir:     ".shellmarks",
		Port:        8080,
		LogLevel:    "info",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SHELLMARKS_*). SHELLMARKS_PATH, when set,
// replaces the script paths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SHELLMARKS_PORT -> port, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if v := os.Getenv(PathEnvVar); v != "" {
		cfg.ScriptPaths = nil
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				cfg.ScriptPaths = append(cfg.ScriptPaths, p)
			}
		}
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if len(c.ScriptPaths) == 0 {
		return fmt.Errorf("at least one script path is required")
	}
	for i, p := range c.ScriptPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("script_paths[%d] is empty", i)
		}
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}

// DatabasePath returns where the edit history database lives.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "shellmarks.db")
}
