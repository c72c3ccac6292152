// ABOUTME: Cobra command reporting registry freshness.
// ABOUTME: Exit code is 0 fresh, 1 unavailable, 2 stale, for use in scripts.
package main

import (
	"github.com/spf13/cobra"

	"github.com/2389-research/partnerdesk/internal/registry"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the registry is up to date",
	Long: `Evaluate the registry's last sync against the configured interval.

Exits 0 when fresh, 1 when the registry is unavailable, 2 when stale.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	f := globalEngine.Freshness(globalConfig)
	writeStatus(cmd.OutOrStdout(), f, globalConfig.SyncInterval)

	if f.State != registry.Fresh {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &exitError{code: int(f.State)}
	}
	return nil
}
