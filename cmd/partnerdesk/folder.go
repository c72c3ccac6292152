// ABOUTME: CLI commands for assigning archive folders to partners.
// ABOUTME: Provides set and clear subcommands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage partner archive folders",
}

var folderSetCmd = &cobra.Command{
	Use:   "set <partner-id> <folder>",
	Short: "Assign an archive folder to a partner",
	Long:  "Assign a folder, relative to the archive root, to a partner.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFolder(cmd, args[0], args[1])
	},
}

var folderClearCmd = &cobra.Command{
	Use:   "clear <partner-id>",
	Short: "Remove a partner's folder assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFolder(cmd, args[0], "")
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderSetCmd)
	folderCmd.AddCommand(folderClearCmd)
}

func setFolder(cmd *cobra.Command, id, folder string) error {
	applied, err := globalEngine.SetFolder(cmd.Context(), id, folder)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("partner %s not found or registry not loaded", id)
	}
	if folder == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Folder for %s cleared\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Folder for %s set to %s\n", id, folder)
	}
	return nil
}
