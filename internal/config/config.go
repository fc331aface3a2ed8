// Package config loads, validates and persists tablekit settings.
//
// Settings live in $TABLEKIT_HOME/config.yaml (default ~/.tablekit/config.yaml).
// A project-local .tablekit.yaml in the working directory is shallow-merged on
// top, and a small set of environment variables override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// File names and environment variables.
const (
	ConfigFileName  = "config.yaml"
	ProjectFileName = ".tablekit.yaml"

	EnvHome         = "TABLEKIT_HOME"
	EnvLogLevel     = "TABLEKIT_LOG_LEVEL"
	EnvLogFormat    = "TABLEKIT_LOG_FORMAT"
	EnvOutputFormat = "TABLEKIT_OUTPUT_FORMAT"
)

// Theme modes persisted in the theme section.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidPageSize     = errors.New("page size must be a positive integer")
	ErrInvalidTheme        = errors.New("theme mode must be 'light' or 'dark'")
	ErrInvalidLogFormat    = errors.New("log format must be 'json' or 'console'")
)

// validOutputFormats lists the formats accepted in output.default_format.
//
//nolint:gochecknoglobals // Read-only lookup table.
var validOutputFormats = []string{"table", "json", "yaml", "csv"}

// Config is the full tablekit configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Theme   ThemeConfig   `yaml:"theme"`

	// path is where Save writes; empty means the default location.
	path     string
	overlays []Overlay
	skipped  []OverlayError
}

// OutputConfig controls non-interactive rendering and table defaults.
type OutputConfig struct {
	DefaultFormat     string `yaml:"default_format"`
	PageSize          int    `yaml:"page_size"`
	PageSizeOptions   []int  `yaml:"page_size_options"`
	FilterPlaceholder string `yaml:"filter_placeholder"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ThemeConfig holds the persisted theme preference.
type ThemeConfig struct {
	Mode string `yaml:"mode"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat:     "table",
			PageSize:          10,
			PageSizeOptions:   []int{5, 10, 25, 50},
			FilterPlaceholder: "Filter",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Theme: ThemeConfig{Mode: ThemeLight},
	}
}

// New loads the user config file, merges the project overlay from the working
// directory and applies environment overrides. Missing or unreadable files
// fall back to defaults.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		cfg = Default()
	}
	cfg.mergeProjectOverlay()
	cfg.applyEnv()
	return cfg
}

// NewFromFile is New with an explicit config file. Unlike New, a file that
// exists but cannot be read or parsed is an error.
func NewFromFile(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.mergeProjectOverlay()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeProjectOverlay() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	overlay := filepath.Join(wd, ProjectFileName)
	if _, statErr := os.Stat(overlay); statErr != nil {
		return
	}
	if mergeErr := ShallowMergeYAML(c, overlay); mergeErr != nil {
		c.skipped = append(c.skipped, OverlayError{Path: overlay, Err: mergeErr})
	}
}

// Load reads the config at path, or the default location when path is empty.
// A missing file is not an error and yields defaults bound to that path.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Path returns the file this config is saved to.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	p, err := DefaultPath()
	if err != nil {
		return ""
	}
	return p
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.path = path
}

// Save validates and writes the config as YAML, creating parent directories.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path := c.Path()
	if path == "" {
		return errors.New("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks every section for out-of-range values.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidOutputFormat, c.Output.DefaultFormat, validOutputFormats)
	}
	if c.Output.PageSize <= 0 {
		return fmt.Errorf("%w: output.page_size=%d", ErrInvalidPageSize, c.Output.PageSize)
	}
	for _, n := range c.Output.PageSizeOptions {
		if n <= 0 {
			return fmt.Errorf("%w: output.page_size_options contains %d", ErrInvalidPageSize, n)
		}
	}
	if c.Theme.Mode != ThemeLight && c.Theme.Mode != ThemeDark {
		return fmt.Errorf("%w: got %q", ErrInvalidTheme, c.Theme.Mode)
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// fillDefaults restores zero-valued fields left empty by a partial file.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Output.DefaultFormat == "" {
		c.Output.DefaultFormat = def.Output.DefaultFormat
	}
	if c.Output.PageSize == 0 {
		c.Output.PageSize = def.Output.PageSize
	}
	if len(c.Output.PageSizeOptions) == 0 {
		c.Output.PageSizeOptions = def.Output.PageSizeOptions
	}
	if c.Output.FilterPlaceholder == "" {
		c.Output.FilterPlaceholder = def.Output.FilterPlaceholder
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Theme.Mode == "" {
		c.Theme.Mode = def.Theme.Mode
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// DefaultPath returns $TABLEKIT_HOME/config.yaml.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
