// Package config loads miniml tool settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete tool configuration
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// OutputConfig controls how parsed trees are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // sexpr, json or pretty
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Output formats
const (
	FormatSExpr  = "sexpr"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the MINIML_CONFIG environment
// variable or the first default location that exists. Without a file the
// defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MINIML_CONFIG")
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func defaultPaths() []string {
	home := os.Getenv("HOME")
	return []string{
		"./miniml.toml",
		"./miniml.yaml",
		filepath.Join(home, ".config/miniml/config.toml"),
		filepath.Join(home, ".config/miniml/config.yaml"),
	}
}

// Validate reports settings that have no meaning
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatSExpr, FormatJSON, FormatPretty:
	default:
		return fmt.Errorf("invalid output format %q (want sexpr, json or pretty)", c.Output.Format)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = FormatSExpr
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "miniml> "
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = filepath.Join(os.Getenv("HOME"), ".miniml_history")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// expandEnvVars expands environment variables in path settings
func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}
