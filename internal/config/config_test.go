package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/xonecas/gridsel/internal/constants"
	"github.com/xonecas/gridsel/internal/selection"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridsel.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GRIDSEL_THEME", "")
	t.Setenv("GRIDSEL_LOG_LEVEL", "")
	path := writeConfig(t, `
[selection]
multi_select = false
auto_select_rows = true
auto_select_columns = true

[ui]
syntax_theme = "dracula"
column_width = 20

[cache]
ttl_hours = 2
path = "/tmp/cache.db"

[log]
level = "debug"
file = "/tmp/gridsel.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := selection.Options{AutoSelectRows: true, AutoSelectColumns: true}
	if got := cfg.SelectionOptions(); got != want {
		t.Errorf("SelectionOptions() = %+v, want %+v", got, want)
	}
	if cfg.UI.SyntaxThemeOrDefault() != "dracula" || cfg.UI.ColumnWidthOrDefault() != 20 {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Cache.CacheTTLOrDefault() != 2*time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.CacheTTLOrDefault())
	}
	if p, _ := cfg.Cache.PathOrDefault(); p != "/tmp/cache.db" {
		t.Errorf("cache path = %q", p)
	}
	if cfg.Log.LevelOrDefault() != zerolog.DebugLevel {
		t.Errorf("level = %v", cfg.Log.LevelOrDefault())
	}
	if f, _ := cfg.Log.FileOrDefault(); f != "/tmp/gridsel.log" {
		t.Errorf("log file = %q", f)
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("GRIDSEL_THEME", "")
	t.Setenv("GRIDSEL_LOG_LEVEL", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.SelectionOptions(); got != selection.DefaultOptions() {
		t.Errorf("SelectionOptions() = %+v", got)
	}
	if cfg.UI.SyntaxThemeOrDefault() != constants.SyntaxTheme {
		t.Errorf("theme = %q", cfg.UI.SyntaxThemeOrDefault())
	}
	if cfg.UI.ColumnWidthOrDefault() != constants.DefaultColumnWidth {
		t.Errorf("column width = %d", cfg.UI.ColumnWidthOrDefault())
	}
	if cfg.Cache.CacheTTLOrDefault() != constants.CacheTTL {
		t.Errorf("ttl = %v", cfg.Cache.CacheTTLOrDefault())
	}
	if cfg.Log.LevelOrDefault() != zerolog.InfoLevel {
		t.Errorf("level = %v", cfg.Log.LevelOrDefault())
	}
	p, err := cfg.Cache.PathOrDefault()
	if err != nil || filepath.Base(p) != "sheets.db" || filepath.Base(filepath.Dir(p)) != "gridsel" {
		t.Errorf("cache path = %q, %v", p, err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRIDSEL_THEME", "nord")
	t.Setenv("GRIDSEL_LOG_LEVEL", "warn")
	t.Setenv("GRIDSEL_CACHE_DISABLED", "true")
	path := writeConfig(t, "[ui]\nsyntax_theme = \"dracula\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.SyntaxTheme != "nord" || cfg.Log.Level != "warn" || !cfg.Cache.Disabled {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("GRIDSEL_LOG_LEVEL", "")
	path := writeConfig(t, `
[selection]
single_row_selection_mode = true
checkbox_only_row_selections = true

[ui]
column_width = 1

[cache]
ttl_hours = -1

[log]
level = "loud"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"ui.column_width=1",
		"cache.ttl_hours=-1",
		`log.level="loud"`,
		"requires auto_select_rows",
		"conflicts with checkbox_only_row_selections",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "[ui\n")); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}
