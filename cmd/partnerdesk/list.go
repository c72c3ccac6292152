// ABOUTME: Cobra command listing partners with folder checks.
// ABOUTME: Supports the all, missing, and search filters.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/partnerdesk/internal/models"
	"github.com/2389-research/partnerdesk/internal/registry"
)

var (
	listFilter string
	listSearch string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List partners",
	Long:  "List partners sorted by ID, marking those whose archive folder is missing.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFilter, "filter", "all", "Filter: all, missing, or search")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive substring of name or ID (implies --filter search)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of partners to show (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	q := registry.Query{Filter: models.ParseFilterMode(listFilter), Search: strings.TrimSpace(listSearch)}
	if q.Search != "" {
		q.Filter = models.FilterSearch
	}

	view, err := globalEngine.View(cmd.Context(), globalConfig, q, nil)
	if err != nil {
		return fmt.Errorf("failed to build view: %w", err)
	}
	writeView(cmd.OutOrStdout(), view, listLimit)
	return nil
}
