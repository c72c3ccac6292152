// ABOUTME: Filesystem watcher for the registry document and the archive root.
// ABOUTME: Debounces fsnotify events into a single change callback.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/2389-research/partnerdesk/internal/logging"
)

// DefaultDebounce collapses bursts such as an atomic rename or a folder copy.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports changes to the registry document and archive root.
//
// The registry's parent directory is watched rather than the file itself,
// because atomic writes replace the file and drop a direct watch.
type Watcher struct {
	registryPath string
	archiveRoot  string
	debounce     time.Duration
	watcher      *fsnotify.Watcher
	onChange     func()

	closeOnce sync.Once
}

// New creates a watcher. onChange is called from the watcher goroutine.
func New(registryPath, archiveRoot string, debounce time.Duration, onChange func()) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		registryPath: registryPath,
		archiveRoot:  archiveRoot,
		debounce:     debounce,
		watcher:      w,
		onChange:     onChange,
	}, nil
}

// Start watches until ctx is cancelled or Stop is called. Run it in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	log := logging.FromContext(ctx)

	for _, dir := range w.dirs() {
		if err := w.watcher.Add(dir); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("failed to watch directory")
			continue
		}
		log.Debug().Str("path", dir).Msg("watching directory")
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if w.onChange != nil {
				w.onChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop releases the underlying watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) dirs() []string {
	var dirs []string
	if w.registryPath != "" {
		dirs = append(dirs, filepath.Dir(w.registryPath))
	}
	if w.archiveRoot != "" {
		if info, err := os.Stat(w.archiveRoot); err == nil && info.IsDir() {
			dirs = append(dirs, w.archiveRoot)
		}
	}
	return dirs
}

// relevant filters registry-dir noise down to the registry file itself.
// Any create, remove, or rename directly under the archive root counts.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	dir := filepath.Dir(event.Name)
	if w.archiveRoot != "" && filepath.Clean(dir) == filepath.Clean(w.archiveRoot) {
		return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
	}
	return filepath.Clean(event.Name) == filepath.Clean(w.registryPath)
}
