// ABOUTME: Archive path validation for the settings wizard.
// ABOUTME: Checks the archive root is an existing, listable directory.
package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/2389-research/partnerdesk/internal/config"
)

// ValidateArchive checks that path is a directory the registry can cross-check
// partner folders against. The context allows cancellation when the user quits,
// since listing a slow network share can take a while.
func ValidateArchive(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("archive path is empty")
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		info, err := os.Stat(expanded)
		if err != nil {
			done <- fmt.Errorf("cannot open archive: %w", err)
			return
		}
		if !info.IsDir() {
			done <- fmt.Errorf("%s is not a directory", expanded)
			return
		}
		if _, err := os.ReadDir(expanded); err != nil {
			done <- fmt.Errorf("cannot list archive: %w", err)
			return
		}
		done <- nil
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
