// Package config loads the launcher configuration: which files to look
// for, how to resolve single and multiple matches, how to prompt and what
// to run on a chosen file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/tui"
	"github.com/thlorenz/files-provider/pkg/pattern"
	"github.com/thlorenz/files-provider/pkg/types"
)

// AppName names the configuration directory
const AppName = "files-provider"

// Prompt interfaces
const (
	InterfaceAuto = "auto" // tui on a terminal, line prompt otherwise
	InterfaceLine = "line"
	InterfaceTUI  = "tui"
	InterfaceForm = "form"
)

// Config represents the launcher configuration file.
type Config struct {
	Pattern struct {
		Match string       `yaml:"match"` // Expression entry names must match
		Type  pattern.Type `yaml:"type"`  // regex or glob
	} `yaml:"pattern"`
	Strategies struct {
		Single types.Strategy `yaml:"single"` // Exactly one match
		Multi  types.Strategy `yaml:"multi"`  // More than one match
	} `yaml:"strategies"`
	Prompt struct {
		Header     string `yaml:"header"`
		Footer     string `yaml:"footer"`
		IncludeAll bool   `yaml:"include_all"` // Offer "0: All"
		Interface  string `yaml:"interface"`   // auto, line, tui or form
	} `yaml:"prompt"`
	Handler struct {
		Command string   `yaml:"command"`        // Empty opens files with the platform opener
		Args    []string `yaml:"args,omitempty"` // "{}" is replaced with the path
	} `yaml:"handler"`
	Timestamps bool      `yaml:"timestamps"` // Show freshness next to each file
	Theme      tui.Theme `yaml:"theme"`
}

// DefaultPath returns $XDG_CONFIG_HOME/files-provider/config.yaml
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(DefaultPath())
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
// Keys missing from the file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Pattern.Type = pattern.TypeRegex
	cfg.Strategies.Single = types.Handle
	cfg.Strategies.Multi = types.PromptAndHandle
	cfg.Prompt.Header = "Please select a file below:"
	cfg.Prompt.Footer = "Your choice: "
	cfg.Prompt.IncludeAll = true
	cfg.Prompt.Interface = InterfaceAuto
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist. Concurrent writers
// are serialized through a lock file next to the config.
func SaveConfig(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer lock.Unlock()

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if _, err := pattern.ParseType(string(c.Pattern.Type)); err != nil {
		return errors.NewConfigError("invalid pattern type", "pattern.type", errors.InvalidPattern, err)
	}
	if c.Pattern.Match != "" {
		if _, err := c.Matcher(); err != nil {
			return err
		}
	}

	if !c.Strategies.Single.Valid() {
		return errors.NewConfigError("invalid strategy", "strategies.single", errors.InvalidStrategy, nil)
	}
	if !c.Strategies.Multi.Valid() {
		return errors.NewConfigError("invalid strategy", "strategies.multi", errors.InvalidStrategy, nil)
	}
	if c.Strategies.Single.Prompts() {
		return errors.NewConfigError("prompting to select a single file makes no sense", "strategies.single", errors.InvalidStrategy, nil)
	}

	switch c.Prompt.Interface {
	case InterfaceAuto, InterfaceLine, InterfaceTUI, InterfaceForm:
	default:
		return errors.NewConfigError("invalid prompt interface", "prompt.interface", errors.InvalidConfig,
			fmt.Errorf("%q is not one of auto, line, tui, form", c.Prompt.Interface))
	}

	if c.Handler.Command == "" && len(c.Handler.Args) > 0 {
		return errors.NewConfigError("handler args given without a command", "handler.args", errors.InvalidConfig, nil)
	}
	return nil
}

// Matcher compiles the configured pattern
func (c *Config) Matcher() (pattern.Matcher, error) {
	t, err := pattern.ParseType(string(c.Pattern.Type))
	if err != nil {
		return nil, errors.NewConfigError("invalid pattern type", "pattern.type", errors.InvalidPattern, err)
	}
	m, err := pattern.Compile(t, c.Pattern.Match)
	if err != nil {
		return nil, errors.NewConfigError("invalid pattern", "pattern.match", errors.InvalidPattern, err)
	}
	return m, nil
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Pattern.Match = `\.js$`
	cfg.Strategies.Single = types.Return
	cfg.Strategies.Multi = types.Prompt
	cfg.Prompt.Interface = InterfaceLine
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
