// ABOUTME: Configuration management for partnerdesk with YAML config loading.
// ABOUTME: Handles archive/export paths, sync intervals, XDG locations, and ~ expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ErrConfigUnavailable reports a config document that exists but cannot be parsed.
// Load still returns usable defaults alongside it.
var ErrConfigUnavailable = errors.New("config unavailable")

// Config stores partnerdesk configuration loaded from ~/.config/partnerdesk/config.yaml.
type Config struct {
	ArchivePath  string `yaml:"archive_path"`
	ExportPath   string `yaml:"export_path"`
	SyncInterval string `yaml:"sync_interval"`
}

// Default returns the configuration used when no document exists.
func Default() *Config {
	return &Config{SyncInterval: DefaultInterval}
}

// ArchiveRoot returns the archive path with ~ expanded.
func (c *Config) ArchiveRoot() (string, error) {
	return ExpandPath(c.ArchivePath)
}

// ExportRoot returns the export path with ~ expanded.
func (c *Config) ExportRoot() (string, error) {
	return ExpandPath(c.ExportPath)
}

// Set updates a single key by its document name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "archive_path":
		c.ArchivePath = value
	case "export_path":
		c.ExportPath = value
	case "sync_interval":
		if !IsKnownInterval(value) {
			return fmt.Errorf("unknown sync_interval %q (expected one of %s)", value, strings.Join(IntervalLabels, ", "))
		}
		c.SyncInterval = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// DataDir returns the default directory holding the partner registry.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "partnerdesk"), nil
}

// RegistryPath returns the default registry document path inside dataDir.
func RegistryPath(dataDir string) string {
	return filepath.Join(dataDir, "partners.yaml")
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "partnerdesk", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from the default location.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. A missing file yields defaults and no error.
// A corrupt file yields defaults and an error wrapping ErrConfigUnavailable.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	if cfg.SyncInterval == "" {
		cfg.SyncInterval = DefaultInterval
	}
	return cfg, nil
}

// Save writes config to the default location.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo replaces the document at path with c.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, strings.NewReader(string(data)))
}
