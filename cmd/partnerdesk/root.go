// ABOUTME: Root Cobra command and global flags for partnerdesk CLI.
// ABOUTME: Loads .env files, binds flags/env with viper, sets up logging, config, and the registry engine.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/logging"
	"github.com/2389-research/partnerdesk/internal/registry"
	"github.com/2389-research/partnerdesk/internal/storage"
)

var globalConfig *config.Config
var globalConfigPath string
var globalRegistry *storage.FileRegistry
var globalEngine *registry.Engine
var globalLogFile *os.File

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "partnerdesk",
	Short: "Partner registry reconciliation and archive folder tracking",
	Long: `
██████╗  █████╗ ██████╗ ████████╗███╗   ██╗███████╗██████╗
██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝████╗  ██║██╔════╝██╔══██╗
██████╔╝███████║██████╔╝   ██║   ██╔██╗ ██║█████╗  ██████╔╝
██╔═══╝ ██╔══██║██╔══██╗   ██║   ██║╚██╗██║██╔══╝  ██╔══██╗
██║     ██║  ██║██║  ██║   ██║   ██║ ╚████║███████╗██║  ██║
╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝
   DESK

Keeps a local registry of partners in sync with the production export
and shows which partners still lack an archive folder.`,
	RunE: runUI,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		logger := setupLogging(cmd, dataDir)
		cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))

		globalConfigPath = viper.GetString("config")
		if globalConfigPath == "" {
			globalConfigPath, err = config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}
		cfg, err := config.LoadFrom(globalConfigPath)
		if err != nil {
			if !errors.Is(err, config.ErrConfigUnavailable) {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Warn().Err(err).Str("path", globalConfigPath).Msg("using default settings")
		}
		globalConfig = cfg

		registryPath := viper.GetString("registry")
		if registryPath == "" {
			registryPath = config.RegistryPath(dataDir)
		}
		if registryPath, err = config.ExpandPath(registryPath); err != nil {
			return err
		}
		reg, err := storage.NewFileRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to open registry: %w", err)
		}
		globalRegistry = reg

		engine, err := registry.NewEngine(reg)
		if err != nil {
			return err
		}
		globalEngine = engine

		logger.Debug().
			Str("config", globalConfigPath).
			Str("registry", registryPath).
			Str("sync_interval", cfg.SyncInterval).
			Msg("partnerdesk ready")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalRegistry != nil {
			_ = globalRegistry.Close()
			globalRegistry = nil
		}
		if globalLogFile != nil {
			_ = globalLogFile.Close()
			globalLogFile = nil
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.Version = version

	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/partnerdesk/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the registry and logs (default $XDG_DATA_HOME/partnerdesk)")
	rootCmd.PersistentFlags().String("registry", "", "registry document path (.yaml or .json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	for _, name := range []string{"config", "data-dir", "registry", "log-level"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initEnv loads .env files and binds PARTNERDESK_* environment variables.
func initEnv() {
	// .env.local overrides .env
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}

	viper.SetEnvPrefix("PARTNERDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func resolveDataDir() (string, error) {
	dataDir := viper.GetString("data-dir")
	if dataDir == "" {
		return config.DataDir()
	}
	return config.ExpandPath(dataDir)
}

// interactive reports whether cmd takes over the terminal.
func interactive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "partnerdesk", "ui", "setup":
		return true
	}
	return false
}

// setupLogging installs the process logger. Interactive commands log to a file
// in dataDir so log lines never land on the alternate screen.
func setupLogging(cmd *cobra.Command, dataDir string) zerolog.Logger {
	opts := logging.Options{Level: viper.GetString("log-level")}
	if interactive(cmd) {
		if err := os.MkdirAll(dataDir, 0750); err == nil {
			f, err := os.OpenFile(filepath.Join(dataDir, "partnerdesk.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
			if err == nil {
				globalLogFile = f
				opts.Out = f
				opts.Format = "json"
			}
		}
		if opts.Out == nil {
			opts.Out = io.Discard
		}
	}
	return logging.Setup(opts)
}
