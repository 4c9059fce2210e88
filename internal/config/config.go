package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonstrip/internal/division"
	"github.com/mcncl/jsonstrip/internal/errors"
	"github.com/mcncl/jsonstrip/internal/formatter"
	"github.com/mcncl/jsonstrip/internal/logging"
	"github.com/mcncl/jsonstrip/internal/stripper"
)

// Default paths, relative to the working directory
const (
	DefaultInput       = "2023/fullData.json"
	DefaultOutput      = "2023/data.json"
	DefaultBuildOutput = DefaultInput
)

// Config represents the complete configuration for jsonstrip
type Config struct {
	Input  string         `yaml:"input"`
	Output string         `yaml:"output"`
	Indent int            `yaml:"indent"`
	Fields []string       `yaml:"fields"`
	Build  BuildConfig    `yaml:"build"`
	Log    logging.Config `yaml:"log"`
}

// BuildConfig controls the division tree builder
type BuildConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	KeyStyle string `yaml:"key_style"`
}

// Overrides holds values given on the command line.
// Zero values mean "not set" and leave the loaded value in place.
type Overrides struct {
	Input       string
	Output      string
	Indent      *int
	Fields      []string
	BuildInput  string
	BuildOutput string
	KeyStyle    string
	Debug       bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Indent: formatter.DefaultIndent,
		Fields: append([]string(nil), stripper.DefaultFields...),
		Build: BuildConfig{
			Output:   DefaultBuildOutput,
			KeyStyle: string(division.KeyStyleCamel),
		},
		Log: logging.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonstrip.yml", ".jsonstrip.yaml", "jsonstrip.yml", "jsonstrip.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load resolves the effective configuration: defaults, then the config
// file (explicit path, or the first one found by FindConfigFile), then overrides.
func Load(configPath string, overrides Overrides) (*Config, error) {
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg := NewConfig()
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load '%s'", configPath), err)
		}
		cfg = fileConfig
	}

	cfg.Apply(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies every set override onto c
func (c *Config) Apply(o Overrides) {
	if o.Input != "" {
		c.Input = o.Input
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Indent != nil {
		c.Indent = *o.Indent
	}
	if len(o.Fields) > 0 {
		c.Fields = o.Fields
	}
	if o.BuildInput != "" {
		c.Build.Input = o.BuildInput
	}
	if o.BuildOutput != "" {
		c.Build.Output = o.BuildOutput
	}
	if o.KeyStyle != "" {
		c.Build.KeyStyle = o.KeyStyle
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
}

// Validate checks the configuration for values the commands cannot use
func (c *Config) Validate() error {
	if c.Indent < 0 || c.Indent > formatter.MaxIndent {
		return errors.NewConfigError(
			fmt.Sprintf("indent must be between 0 and %d, got %d", formatter.MaxIndent, c.Indent),
			errors.ErrInvalidConfig,
		)
	}
	if len(c.Fields) == 0 {
		return errors.NewConfigError("at least one field to strip is required", errors.ErrInvalidConfig)
	}
	for _, field := range c.Fields {
		if strings.TrimSpace(field) == "" {
			return errors.NewConfigError("field names must not be blank", errors.ErrInvalidConfig)
		}
	}
	if _, err := division.ParseKeyStyle(c.Build.KeyStyle); err != nil {
		return errors.NewConfigError(
			fmt.Sprintf("unknown key style '%s', want camel, snake or kebab", c.Build.KeyStyle),
			errors.ErrInvalidConfig,
		)
	}
	if err := c.Log.Validate(); err != nil {
		return errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}
	return nil
}
