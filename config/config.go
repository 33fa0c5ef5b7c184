// Package config resolves studybuddy settings from defaults, an optional YAML
// file, STUDYBUDDY_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/studybuddy"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STUDYBUDDY"

// Config holds resolved settings.
type Config struct {
	// Backend selects the persistence collaborator: json, sqlite or badger.
	Backend string `yaml:"backend" mapstructure:"backend"`

	// DataDir holds the session snapshot and the log file.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// Seed adds sample sessions when the store starts empty.
	Seed bool `yaml:"seed" mapstructure:"seed"`

	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	Theme ThemeConfig `yaml:"theme" mapstructure:"theme"`
}

// ThemeConfig overrides TUI colors with ANSI indices. Negative disables color.
type ThemeConfig struct {
	Urgent     int `yaml:"urgent" mapstructure:"urgent"`
	High       int `yaml:"high" mapstructure:"high"`
	Medium     int `yaml:"medium" mapstructure:"medium"`
	Low        int `yaml:"low" mapstructure:"low"`
	InProgress int `yaml:"in_progress" mapstructure:"in_progress"`
	Success    int `yaml:"success" mapstructure:"success"`
	Error      int `yaml:"error" mapstructure:"error"`
	Muted      int `yaml:"muted" mapstructure:"muted"`
	Accent     int `yaml:"accent" mapstructure:"accent"`
}

// Default returns the default configuration with data kept under dir.
func Default(dir string) *Config {
	t := studybuddy.DefaultTheme()
	return &Config{
		Backend:  BackendJSON,
		DataDir:  dir,
		Seed:     true,
		LogLevel: "info",
		Theme: ThemeConfig{
			Urgent:     t.Urgent,
			High:       t.High,
			Medium:     t.Medium,
			Low:        t.Low,
			InProgress: t.InProgress,
			Success:    t.Success,
			Error:      t.Error,
			Muted:      t.Muted,
			Accent:     t.Accent,
		},
	}
}

// Dir returns the default studybuddy directory, ~/.studybuddy.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".studybuddy")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"backend":   "backend",
	"data-dir":  "data_dir",
	"log-level": "log_level",
}

// Load resolves the configuration. A missing file at path is not an error.
// Flags in flags that were set explicitly override every other source;
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default(Dir()))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("backend", d.Backend)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("theme.urgent", d.Theme.Urgent)
	v.SetDefault("theme.high", d.Theme.High)
	v.SetDefault("theme.medium", d.Theme.Medium)
	v.SetDefault("theme.low", d.Theme.Low)
	v.SetDefault("theme.in_progress", d.Theme.InProgress)
	v.SetDefault("theme.success", d.Theme.Success)
	v.SetDefault("theme.error", d.Theme.Error)
	v.SetDefault("theme.muted", d.Theme.Muted)
	v.SetDefault("theme.accent", d.Theme.Accent)
}

// Validate rejects unknown backends and log levels and an empty data
// directory.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s): %w",
			c.Backend, BackendJSON, BackendSQLite, BackendBadger, studybuddy.ErrValidation)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required: %w", studybuddy.ErrValidation)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return 0, fmt.Errorf("log level %q: %w", c.LogLevel, studybuddy.ErrValidation)
		}
		return lvl, nil
	}
	return 0, fmt.Errorf("unknown log level %q: %w", c.LogLevel, studybuddy.ErrValidation)
}

// StudyTheme converts the theme settings to a studybuddy.Theme.
func (c *Config) StudyTheme() studybuddy.Theme {
	return studybuddy.Theme{
		Urgent:     c.Theme.Urgent,
		High:       c.Theme.High,
		Medium:     c.Theme.Medium,
		Low:        c.Theme.Low,
		InProgress: c.Theme.InProgress,
		Success:    c.Theme.Success,
		Error:      c.Theme.Error,
		Muted:      c.Theme.Muted,
		Accent:     c.Theme.Accent,
	}
}

// WriteDefault writes a commented default configuration file to path,
// creating its directory.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	content := `# studybuddy configuration

# Persistence backend: json (one file), sqlite (key-value table) or
# badger (embedded key-value store).
backend: json

# Where sessions and the log file live. Defaults to ~/.studybuddy.
# data_dir: ~/.studybuddy

# Add four sample sessions when there is nothing saved yet.
seed: true

# debug, info, warn or error. Logs go to <data_dir>/studybuddy.log.
log_level: info

# ANSI color indices (0-15); -1 disables a color.
theme:
  urgent: 1
  high: 3
  medium: 4
  low: 8
  in_progress: 6
  success: 2
  error: 1
  muted: 8
  accent: 5
`
	return os.WriteFile(path, []byte(content), 0o600)
}
