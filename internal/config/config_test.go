// ABOUTME: Tests for partnerdesk configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, corrupt documents, Set, and interval thresholds.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ArchivePath != "" || cfg.ExportPath != "" {
		t.Error("expected empty paths in default config")
	}
	if cfg.SyncInterval != DefaultInterval {
		t.Errorf("expected sync_interval %q, got %q", DefaultInterval, cfg.SyncInterval)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "partnerdesk")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `archive_path: "~/archive"
export_path: "/srv/export"
sync_interval: "14 days"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ExportPath != "/srv/export" {
		t.Errorf("expected export_path '/srv/export', got %q", cfg.ExportPath)
	}
	if cfg.SyncInterval != "14 days" {
		t.Errorf("expected sync_interval '14 days', got %q", cfg.SyncInterval)
	}

	home, _ := os.UserHomeDir()
	if got, err := cfg.ArchiveRoot(); err != nil {
		t.Fatalf("ArchiveRoot() error: %v", err)
	} else if got != filepath.Join(home, "archive") {
		t.Errorf("ArchiveRoot() = %q, want %q", got, filepath.Join(home, "archive"))
	}
}

func TestLoadCorruptConfigFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("archive_path: [unterminated\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if !errors.Is(err, ErrConfigUnavailable) {
		t.Fatalf("expected ErrConfigUnavailable, got %v", err)
	}
	if cfg == nil || cfg.SyncInterval != DefaultInterval {
		t.Errorf("expected default config alongside error, got %+v", cfg)
	}
}

func TestLoadEmptyIntervalGetsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("archive_path: /a\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.SyncInterval != DefaultInterval {
		t.Errorf("expected %q, got %q", DefaultInterval, cfg.SyncInterval)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{
		ArchivePath:  "/data/archive",
		ExportPath:   "/data/export",
		SyncInterval: "1 month",
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("archive_path", "/x"); err != nil {
		t.Fatalf("Set archive_path error: %v", err)
	}
	if cfg.ArchivePath != "/x" {
		t.Errorf("ArchivePath = %q", cfg.ArchivePath)
	}
	if err := cfg.Set("sync_interval", "6 months"); err != nil {
		t.Fatalf("Set sync_interval error: %v", err)
	}
	if err := cfg.Set("sync_interval", "fortnight"); err == nil {
		t.Error("expected error for unknown interval")
	}
	if cfg.SyncInterval != "6 months" {
		t.Errorf("rejected value must not be applied, got %q", cfg.SyncInterval)
	}
	if err := cfg.Set("colour", "blue"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		label string
		want  time.Duration
	}{
		{"now", 0},
		{"1 week", 7 * day},
		{"14 days", 14 * day},
		{"1 month", 30 * day},
		{"6 months", 182 * day},
		{"1 týden", 7 * day},
		{"14 dní", 14 * day},
		{"1 měsíc", 30 * day},
		{"whenever", 7 * day},
		{"", 7 * day},
	}
	for _, tt := range tests {
		if got := Threshold(tt.label); got != tt.want {
			t.Errorf("Threshold(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestIntervalLabelsAscending(t *testing.T) {
	for i := 1; i < len(IntervalLabels); i++ {
		if Threshold(IntervalLabels[i-1]) >= Threshold(IntervalLabels[i]) {
			t.Errorf("%q should have a shorter threshold than %q", IntervalLabels[i-1], IntervalLabels[i])
		}
	}
}

func TestRegistryPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	if dir != filepath.Join(tmpDir, "partnerdesk") {
		t.Errorf("DataDir() = %q", dir)
	}
	if got := RegistryPath(dir); got != filepath.Join(dir, "partners.yaml") {
		t.Errorf("RegistryPath() = %q", got)
	}
}
