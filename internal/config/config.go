// Package config loads and validates the apilinks configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "apilinks.yaml"

// LogFileDisabled as logging.file writes no log file.
const LogFileDisabled = "-"

// Config is the root configuration document.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Markdown MarkdownConfig `yaml:"markdown"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Policies []PolicyConfig `yaml:"policies"`
}

// InputConfig selects the markdown files to check.
type InputConfig struct {
	Dir       string `yaml:"dir"`       // Directory holding the mapping documents
	Pattern   string `yaml:"pattern"`   // Glob matched against file names
	Recursive bool   `yaml:"recursive"` // Descend into subdirectories
}

// MarkdownConfig controls how documents are split into sections.
type MarkdownConfig struct {
	SplitMode SplitMode `yaml:"split_mode"`
}

// HTTPConfig controls every request made by the tool.
type HTTPConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent,omitempty"`
}

// LoggingConfig controls the run log.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
	File   string    `yaml:"file"` // LogFileDisabled turns the log file off
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	File string `yaml:"file,omitempty"` // Empty disables metrics output
}

// PolicyConfig describes one link-correction policy.
type PolicyConfig struct {
	Name    string        `yaml:"name"`
	Kind    PolicyKind    `yaml:"kind"`
	Section SectionConfig `yaml:"section"`

	SplitKey string `yaml:"split_key"`

	// prefix policies
	TargetURL string `yaml:"target_url,omitempty"`
	Segment   string `yaml:"segment,omitempty"`

	// version policies
	TargetVersion string `yaml:"target_version,omitempty"`

	// Marker must appear in the final page body when set.
	Marker string `yaml:"marker,omitempty"`
}

// SectionConfig locates the heading carrying a policy's link.
type SectionConfig struct {
	Keyword string `yaml:"keyword,omitempty"`
	Index   *int   `yaml:"index,omitempty"`
}

// Duration is a time.Duration that reads and writes as a Go duration string.
type Duration time.Duration

// UnmarshalYAML parses values such as "5s" or "1500ms".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads, normalizes, defaults and validates the configuration at path.
//
// Environment variables from a .env file in the working directory are loaded
// first, then ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	if err := cfg.finalize(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists. A missing file at DefaultPath
// yields Default(); a missing explicitly named file is an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == DefaultPath {
		if err := loadEnvFile(); err != nil {
			return nil, err
		}
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	c.applyDefaults()
	return c.Validate()
}
