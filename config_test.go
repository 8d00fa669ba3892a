package glyphpack

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyphpack.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
history_depth: 4
label: BATTERY
log_level: debug
display:
  spi: SPI0.0
  contrast: 40
  rotated: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HistoryDepth != 4 || cfg.Label != "BATTERY" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults
	if cfg.Spacing != 1 || cfg.StatusInterface != "gStatusLine" || cfg.Display.DC != "GPIO25" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Display.SPI != "SPI0.0" || cfg.Display.Contrast != 40 || !cfg.Display.Rotated {
		t.Errorf("display = %+v", cfg.Display)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", lvl)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "history_depth: [1"},
		{"zero depth", "history_depth: 0"},
		{"negative spacing", "spacing: -1"},
		{"bad interface", "status_interface: 'g Status'"},
		{"bad level", "log_level: loud"},
		{"contrast range", "display:\n  contrast: 64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("LoadConfig succeeded, want an error")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig of a missing file succeeded")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{Spacing: -3}
	cfg.defaults()
	if cfg.Logger == nil || cfg.HistoryDepth != 10 || cfg.Spacing != 1 || cfg.StatusInterface != "gStatusLine" {
		t.Errorf("defaults() = %+v", cfg)
	}
}
