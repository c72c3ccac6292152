// ABOUTME: View projection of the registry: folder cross-check, filtering, and sorting.
// ABOUTME: Read-only; folder existence is an injected capability so tests avoid the disk.
package registry

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/models"
)

// FolderChecker reports whether folder exists as a directory under root.
// Implementations must be safe for concurrent use.
type FolderChecker func(root, folder string) bool

// DirExists is the filesystem FolderChecker.
func DirExists(root, folder string) bool {
	info, err := os.Stat(filepath.Join(root, folder))
	return err == nil && info.IsDir()
}

// checkWorkers bounds concurrent folder stats during a projection.
const checkWorkers = 8

// Query selects the partners a view shows.
type Query struct {
	Filter models.FilterMode
	Search string
}

// PartnerView is a partner plus its folder cross-check.
type PartnerView struct {
	models.Partner
	HasFolder bool
}

// View is an immutable projection of the registry.
type View struct {
	Partners []PartnerView
	Total    int
	Missing  int // partners without a usable folder, counted before filtering
}

// Project builds a view of store. Folder checks run concurrently; the result is
// sorted ascending by ID regardless of the filter.
func Project(ctx context.Context, store *models.Store, archiveRoot string, q Query, exists FolderChecker) (View, error) {
	if exists == nil {
		exists = DirExists
	}
	if store == nil {
		return View{}, nil
	}

	all := make([]PartnerView, 0, len(store.Partners))
	for _, p := range store.Partners {
		all = append(all, PartnerView{Partner: p})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkWorkers)
	for i := range all {
		folder := all[i].Folder
		if strings.TrimSpace(folder) == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			all[i].HasFolder = exists(archiveRoot, folder)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return View{}, err
	}

	view := View{Total: len(all)}
	match := matcher(q)
	for _, pv := range all {
		if !pv.HasFolder {
			view.Missing++
		}
		if match(pv) {
			view.Partners = append(view.Partners, pv)
		}
	}

	sort.Slice(view.Partners, func(i, j int) bool {
		return view.Partners[i].ID < view.Partners[j].ID
	})
	return view, nil
}

func matcher(q Query) func(PartnerView) bool {
	switch q.Filter {
	case models.FilterMissingFolder:
		return func(pv PartnerView) bool { return !pv.HasFolder }
	case models.FilterSearch:
		needle := strings.ToLower(q.Search)
		return func(pv PartnerView) bool {
			return strings.Contains(strings.ToLower(pv.Name), needle) ||
				strings.Contains(strings.ToLower(pv.ID), needle)
		}
	default:
		return func(PartnerView) bool { return true }
	}
}

// View loads the registry and projects it against cfg's archive root.
// An unavailable registry projects to an empty view.
func (e *Engine) View(ctx context.Context, cfg *config.Config, q Query, exists FolderChecker) (View, error) {
	store, _ := e.store.Load()
	root, err := cfg.ArchiveRoot()
	if err != nil {
		return View{}, err
	}
	return Project(ctx, store, root, q, exists)
}
