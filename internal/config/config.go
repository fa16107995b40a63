// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobuine/internal/logger"
	"github.com/jonathan/jobuine/internal/rendering"
)

// Environment variables that override the file.
const (
	EnvStoreFile       = "JOBUINE_STORE_FILE"
	EnvAppliesDir      = "JOBUINE_APPLIES_DIR"
	EnvCurrentApplyDir = "JOBUINE_CURRENT_APPLY_DIR"
	EnvDataDir         = "JOBUINE_DATA_DIR"
)

// Paths is the nested form of the path settings. Flat keys win over it.
type Paths struct {
	StoreFile       string `yaml:"store_file,omitempty"`
	AppliesDir      string `yaml:"applies_dir,omitempty"`
	CurrentApplyDir string `yaml:"current_apply_dir,omitempty"`
	DataDir         string `yaml:"data_dir,omitempty"`
}

// RenderConfig controls document output.
type RenderConfig struct {
	Format   string `yaml:"format,omitempty"`   // pdf, latex or markdown
	Template string `yaml:"template,omitempty"` // LaTeX template overriding the built-in one
}

// Config represents config.yaml. Every path may be given either at the top
// level or under "paths:".
type Config struct {
	StoreFile       string `yaml:"store_file,omitempty"`        // XLSX ledger
	AppliesDir      string `yaml:"applies_dir,omitempty"`       // root of the per-day application workspaces
	CurrentApplyDir string `yaml:"current_apply_dir,omitempty"` // workspace created by the last apply
	DataDir         string `yaml:"data_dir,omitempty"`          // prompt.txt, career.json, schema.json

	Paths  *Paths        `yaml:"paths,omitempty"`
	Render RenderConfig  `yaml:"render,omitempty"`
	Logger logger.Config `yaml:"logger,omitempty"`

	path string
	raw  map[string]any
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		AppliesDir: "applies",
		DataDir:    "data",
		Render:     RenderConfig{Format: string(rendering.FormatPDF)},
		Logger:     logger.DefaultConfig(),
	}
}

// Load reads configuration from a YAML file and applies environment
// overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, &ConfigError{Message: "config path is empty"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ConfigError{Message: "failed to resolve config path", Cause: err}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to read config file %s", abs), Cause: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Message: "failed to parse config YAML", Cause: err}
	}
	if err := yaml.Unmarshal(data, &cfg.raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config YAML", Cause: err}
	}
	if cfg.raw == nil {
		cfg.raw = make(map[string]any)
	}

	cfg.path = abs
	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default. Save
// then creates the file at path.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	def := Default()
	def.path, _ = filepath.Abs(path)
	def.applyEnv()
	return &def, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvStoreFile:       &c.StoreFile,
		EnvAppliesDir:      &c.AppliesDir,
		EnvCurrentApplyDir: &c.CurrentApplyDir,
		EnvDataDir:         &c.DataDir,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*field = v
		}
	}
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks that the configuration has valid values.
// Missing paths are reported later, by the accessor that needs them.
func (c *Config) Validate() error {
	if _, err := rendering.ParseFormat(c.Render.Format); err != nil {
		return &ConfigError{Key: "render.format", Message: "invalid 'render.format'", Cause: err}
	}

	if c.Render.Template != "" {
		if _, err := os.Stat(expandHome(c.Render.Template)); os.IsNotExist(err) {
			return &ConfigError{Key: "render.template", Message: fmt.Sprintf("template file not found: %s", c.Render.Template)}
		}
	}

	if c.Logger.Level != "" && !logger.ValidLevel(c.Logger.Level) {
		return &ConfigError{Key: "logger.level", Message: fmt.Sprintf("invalid 'logger.level': %s", c.Logger.Level)}
	}
	switch c.Logger.Format {
	case "", "json", "pretty":
	default:
		return &ConfigError{Key: "logger.format", Message: fmt.Sprintf("'logger.format' must be json or pretty, got %s", c.Logger.Format)}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.lookup("store_file") == "" {
		result.StoreFile = defaults.StoreFile
	}
	if result.lookup("applies_dir") == "" {
		result.AppliesDir = defaults.AppliesDir
	}
	if result.lookup("current_apply_dir") == "" {
		result.CurrentApplyDir = defaults.CurrentApplyDir
	}
	if result.lookup("data_dir") == "" {
		result.DataDir = defaults.DataDir
	}

	if result.Render.Format == "" {
		result.Render.Format = defaults.Render.Format
	}
	if result.Render.Template == "" {
		result.Render.Template = defaults.Render.Template
	}

	if result.Logger.Level == "" {
		result.Logger.Level = defaults.Logger.Level
	}
	if result.Logger.Format == "" {
		result.Logger.Format = defaults.Logger.Format
	}
	if result.Logger.TimeFormat == "" {
		result.Logger.TimeFormat = defaults.Logger.TimeFormat
	}

	return result
}

// lookup returns a path setting, trying the flat key then "paths:".
func (c *Config) lookup(key string) string {
	var flat, nested string
	var p Paths
	if c.Paths != nil {
		p = *c.Paths
	}

	switch key {
	case "store_file":
		flat, nested = c.StoreFile, p.StoreFile
	case "applies_dir":
		flat, nested = c.AppliesDir, p.AppliesDir
	case "current_apply_dir":
		flat, nested = c.CurrentApplyDir, p.CurrentApplyDir
	case "data_dir":
		flat, nested = c.DataDir, p.DataDir
	}

	if v := strings.TrimSpace(flat); v != "" {
		return v
	}
	return strings.TrimSpace(nested)
}

// resolve returns key as an absolute path, or a ConfigError when unset.
func (c *Config) resolve(key, hint string) (string, error) {
	v := c.lookup(key)
	if v == "" {
		msg := fmt.Sprintf("'%s' not found in config", key)
		if hint != "" {
			msg += ". " + hint
		}
		return "", &ConfigError{Key: key, Message: msg}
	}

	abs, err := filepath.Abs(expandHome(v))
	if err != nil {
		return "", &ConfigError{Key: key, Message: fmt.Sprintf("failed to resolve '%s'", key), Cause: err}
	}
	return abs, nil
}

// StoreFile returns the absolute path of the ledger.
func (c *Config) StoreFile() (string, error) {
	return c.resolve("store_file", "")
}

// AppliesDir returns the absolute path of the workspaces root.
func (c *Config) AppliesDir() (string, error) {
	return c.resolve("applies_dir", "")
}

// CurrentApplyDir returns the absolute path of the active workspace.
func (c *Config) CurrentApplyDir() (string, error) {
	return c.resolve("current_apply_dir", "Run 'jobuine apply' first.")
}

// DataDir returns the absolute path of the prompt and career data.
func (c *Config) DataDir() (string, error) {
	return c.resolve("data_dir", "")
}

// SetCurrentApplyDir records dir as the active workspace.
func (c *Config) SetCurrentApplyDir(dir string) {
	c.CurrentApplyDir = dir
	if c.raw != nil {
		c.raw["current_apply_dir"] = dir
	}
}

// Save writes the configuration to path, or back to the file it was loaded
// from when path is empty. A loaded file keeps its keys, including ones this
// package does not know; environment overrides are not persisted.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return &ConfigError{Message: "no config path to save to"}
	}

	var (
		data []byte
		err  error
	)
	if c.raw != nil {
		data, err = yaml.Marshal(c.raw)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return &ConfigError{Message: "failed to encode config", Cause: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ConfigError{Message: fmt.Sprintf("failed to write config file %s", path), Cause: err}
	}
	return nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
