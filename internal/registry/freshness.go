// ABOUTME: Freshness evaluation of the registry against the configured sync interval.
// ABOUTME: Pure tri-state verdict (fresh, stale, unavailable) with display text.
package registry

import (
	"errors"
	"time"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/models"
)

// ErrMalformedTimestamp reports a stored last_sync that does not parse.
var ErrMalformedTimestamp = errors.New("corrupt timestamp")

// State is the freshness verdict. Values double as the status command's exit codes.
type State int

const (
	Fresh State = iota
	Unavailable
	Stale
)

// String returns a short machine-friendly name.
func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unavailable"
	}
}

// NoSyncDisplay is shown in place of a last-sync time when there is none.
const NoSyncDisplay = "--:--"

// Freshness is the status handed to the presentation layer.
type Freshness struct {
	State    State
	Label    string
	LastSync string        // display string, NoSyncDisplay when unavailable
	Age      time.Duration // zero when unavailable
	Err      error         // set when State is Unavailable
}

// EvaluateFreshness decides whether store is fresh. loadErr is the error the
// store was loaded with, if any. It never modifies store.
func EvaluateFreshness(store *models.Store, loadErr error, interval string, now time.Time) Freshness {
	if loadErr != nil || store == nil || store.LastSync == "" {
		err := loadErr
		if err == nil {
			err = errNeverSynced
		}
		return Freshness{State: Unavailable, Label: "registry not loaded", LastSync: NoSyncDisplay, Err: err}
	}

	last, err := models.ParseStamp(store.LastSync)
	if err != nil {
		return Freshness{State: Unavailable, Label: "corrupt timestamp", LastSync: NoSyncDisplay, Err: ErrMalformedTimestamp}
	}

	age := now.Sub(last)
	if age > config.Threshold(interval) {
		return Freshness{State: Stale, Label: "registry is stale", LastSync: store.LastSync, Age: age}
	}
	return Freshness{State: Fresh, Label: "registry is up to date", LastSync: store.LastSync, Age: age}
}

var errNeverSynced = errors.New("registry never synced")

// Freshness loads the registry and evaluates it against cfg.
func (e *Engine) Freshness(cfg *config.Config) Freshness {
	store, err := e.store.Load()
	return EvaluateFreshness(store, err, cfg.SyncInterval, e.now())
}
