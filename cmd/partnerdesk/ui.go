// ABOUTME: Cobra command for the interactive registry browser.
// ABOUTME: Runs the bubbletea table and refreshes it when the registry or archive changes.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/partnerdesk/internal/logging"
	"github.com/2389-research/partnerdesk/internal/tui"
	"github.com/2389-research/partnerdesk/internal/watch"
)

var uiNoWatch bool

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse the partner registry",
	Long:  "Interactive table of partners with freshness status, folder checks, search, folder edits, and imports.",
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().BoolVar(&uiNoWatch, "no-watch", false, "Do not refresh on filesystem changes")
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	model := tui.NewBrowserModel(globalEngine, globalConfig, nil)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if !uiNoWatch {
		root, _ := globalConfig.ArchiveRoot()
		w, err := watch.New(globalRegistry.Path(), root, watch.DefaultDebounce, func() {
			p.Send(tui.RefreshMsg{})
		})
		if err != nil {
			log.Warn().Err(err).Msg("live refresh disabled")
		} else {
			defer func() { _ = w.Stop() }()
			go w.Start(ctx)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
