// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/gridsel/internal/constants"
	"github.com/xonecas/gridsel/internal/selection"
)

// Config is the root configuration structure.
type Config struct {
	Selection SelectionConfig `toml:"selection"`
	UI        UIConfig        `toml:"ui"`
	Cache     CacheConfig     `toml:"cache"`
	Log       LogConfig       `toml:"log"`
}

// SelectionConfig mirrors selection.Options.
type SelectionConfig struct {
	MultiSelect               *bool `toml:"multi_select"`
	AutoSelectRows            bool  `toml:"auto_select_rows"`
	AutoSelectColumns         bool  `toml:"auto_select_columns"`
	CheckboxOnlyRowSelections bool  `toml:"checkbox_only_row_selections"`
	SingleRowSelectionMode    bool  `toml:"single_row_selection_mode"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma style the grid colors are derived from via
	// highlight.ThemePalette.
	SyntaxTheme string `toml:"syntax_theme"`
	// ColumnWidth caps the display width of a column.
	ColumnWidth int `toml:"column_width"`
}

// SyntaxThemeOrDefault returns the configured theme or constants.SyntaxTheme if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return constants.SyntaxTheme
	}
	return u.SyntaxTheme
}

// ColumnWidthOrDefault returns the configured column width cap or the default.
func (u UIConfig) ColumnWidthOrDefault() int {
	if u.ColumnWidth <= 0 {
		return constants.DefaultColumnWidth
	}
	return u.ColumnWidth
}

// CacheConfig holds sheet cache settings.
type CacheConfig struct {
	TTLHours int    `toml:"ttl_hours"`
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// CacheTTLOrDefault returns the configured TTL or constants.CacheTTL if unset.
func (c CacheConfig) CacheTTLOrDefault() time.Duration {
	if c.TTLHours <= 0 {
		return constants.CacheTTL
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// PathOrDefault returns the cache database path, defaulting to the data dir.
func (c CacheConfig) PathOrDefault() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sheets.db"), nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault parses the configured level, falling back to info.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// FileOrDefault returns the log file path, defaulting to the data dir.
func (l LogConfig) FileOrDefault() (string, error) {
	if l.File != "" {
		return l.File, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gridsel.log"), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads configuration from a TOML file and applies environment variable overrides.
// An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.UI.ColumnWidth < 0 {
		errs = append(errs, fmt.Errorf("ui.column_width=%d must not be negative", c.UI.ColumnWidth))
	} else if c.UI.ColumnWidth > 0 && c.UI.ColumnWidth < constants.MinColumnWidth {
		errs = append(errs, fmt.Errorf("ui.column_width=%d must be at least %d", c.UI.ColumnWidth, constants.MinColumnWidth))
	}

	if c.Cache.TTLHours < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl_hours=%d must not be negative", c.Cache.TTLHours))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	s := c.Selection
	if s.SingleRowSelectionMode && !s.AutoSelectRows {
		errs = append(errs, errors.New("selection.single_row_selection_mode requires auto_select_rows"))
	}
	if s.SingleRowSelectionMode && s.CheckboxOnlyRowSelections {
		errs = append(errs, errors.New("selection.single_row_selection_mode conflicts with checkbox_only_row_selections"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// SelectionOptions converts the [selection] table to engine options.
// multi_select defaults to true when absent.
func (c *Config) SelectionOptions() selection.Options {
	opts := selection.DefaultOptions()
	if c.Selection.MultiSelect != nil {
		opts.MultiSelect = *c.Selection.MultiSelect
	}
	opts.AutoSelectRows = c.Selection.AutoSelectRows
	opts.AutoSelectColumns = c.Selection.AutoSelectColumns
	opts.CheckboxOnlyRowSelections = c.Selection.CheckboxOnlyRowSelections
	opts.SingleRowSelectionMode = c.Selection.SingleRowSelectionMode
	return opts
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"GRIDSEL_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
		{"GRIDSEL_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"GRIDSEL_CACHE_DISABLED", func(v string) {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.Cache.Disabled = b
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the gridsel data directory (~/.config/gridsel).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gridsel"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
