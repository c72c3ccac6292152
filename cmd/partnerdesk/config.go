// ABOUTME: CLI commands for viewing and editing partnerdesk settings.
// ABOUTME: Provides show and set subcommands over the YAML config document.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/partnerdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: fmt.Sprintf(`Change a setting and save the config document.

Keys: archive_path, export_path, sync_interval.
Intervals: %s.`, strings.Join(config.IntervalLabels, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config:        %s\n", globalConfigPath)
	fmt.Fprintf(out, "Registry:      %s\n", globalRegistry.Path())
	fmt.Fprintf(out, "archive_path:  %s\n", globalConfig.ArchivePath)
	fmt.Fprintf(out, "export_path:   %s\n", globalConfig.ExportPath)
	fmt.Fprintf(out, "sync_interval: %s (%s)\n", globalConfig.SyncInterval, config.Threshold(globalConfig.SyncInterval))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := globalConfig.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := globalConfig.SaveTo(globalConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}
