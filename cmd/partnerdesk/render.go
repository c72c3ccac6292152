// ABOUTME: Plain-text rendering of registry status and views for CLI output.
// ABOUTME: Shared by the status, list, and watch commands.
package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/partnerdesk/internal/registry"
)

var (
	freshStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func writeStatus(w io.Writer, f registry.Freshness, interval string) {
	style := errStyle
	switch f.State {
	case registry.Fresh:
		style = freshStyle
	case registry.Stale:
		style = staleStyle
	}
	fmt.Fprintf(w, "%s\n", style.Render(f.Label))
	fmt.Fprintf(w, "Last sync:     %s\n", f.LastSync)
	fmt.Fprintf(w, "Sync interval: %s\n", interval)
	if f.Err != nil {
		fmt.Fprintf(w, "%s\n", dimStyle.Render(f.Err.Error()))
	}
}

// writeView prints one line per partner. limit <= 0 prints everything.
func writeView(w io.Writer, v registry.View, limit int) {
	fmt.Fprintf(w, "Total: %d  Missing folders: %d\n\n", v.Total, v.Missing)
	if len(v.Partners) == 0 {
		fmt.Fprintln(w, "No partners found.")
		return
	}

	for i, p := range v.Partners {
		if limit > 0 && i >= limit {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("... %d more", len(v.Partners)-limit)))
			break
		}
		mark := errStyle.Render("✗")
		if p.HasFolder {
			mark = freshStyle.Render("✓")
		}
		folder := p.Folder
		if folder == "" {
			folder = "-"
		}
		fmt.Fprintf(w, "%s %-10s %-40s %-24s %s\n", mark, p.ID, p.Name, folder, dimStyle.Render(p.UpdatedAt))
	}
}
