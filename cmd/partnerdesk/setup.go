// ABOUTME: Cobra command for interactive settings setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate the archive and export paths.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/partnerdesk/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure archive, export, and sync interval",
	Long:  "Interactive wizard to configure the archive folder, production export folder, and registry sync interval.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	model := tui.NewSetupModel(globalConfig)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	archivePath, exportPath, interval := final.Result()
	globalConfig.ArchivePath = archivePath
	globalConfig.ExportPath = exportPath
	globalConfig.SyncInterval = interval

	if err := globalConfig.SaveTo(globalConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Config saved to %s\n", globalConfigPath)
	return nil
}
