// ABOUTME: Cobra command that reprints status and the partner list on changes.
// ABOUTME: Watches the registry document and archive root with fsnotify.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/2389-research/partnerdesk/internal/models"
	"github.com/2389-research/partnerdesk/internal/registry"
	"github.com/2389-research/partnerdesk/internal/watch"
)

var (
	watchFilter string
	watchLimit  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the registry whenever it or the archive changes",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchFilter, "filter", "missing", "Filter: all or missing")
	watchCmd.Flags().IntVar(&watchLimit, "limit", 30, "Maximum number of partners to show (0 = all)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root, err := globalConfig.ArchiveRoot()
	if err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	w, err := watch.New(globalRegistry.Path(), root, watch.DefaultDebounce, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()
	go w.Start(ctx)

	q := registry.Query{Filter: models.ParseFilterMode(watchFilter)}
	out := cmd.OutOrStdout()
	for {
		if err := renderWatch(ctx, out, q); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
		}
	}
}

func renderWatch(ctx context.Context, out io.Writer, q registry.Query) error {
	view, err := globalEngine.View(ctx, globalConfig, q, nil)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to build view: %w", err)
	}
	fmt.Fprint(out, "\033[H\033[2J")
	writeStatus(out, globalEngine.Freshness(globalConfig), globalConfig.SyncInterval)
	fmt.Fprintln(out)
	writeView(out, view, watchLimit)
	return nil
}
