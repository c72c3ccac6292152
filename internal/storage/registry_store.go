// ABOUTME: Interface definition for partner registry storage.
// ABOUTME: Defines the whole-document load/save contract and its error sentinels.
package storage

import (
	"errors"

	"github.com/2389-research/partnerdesk/internal/models"
)

// ErrStoreUnavailable reports a registry document that is missing or cannot be parsed.
var ErrStoreUnavailable = errors.New("registry not loaded")

// RegistryStore defines operations for partner registry persistence.
// Every call reads or replaces the whole document.
type RegistryStore interface {
	// Load reads the registry. When the document is missing or corrupt it returns
	// an empty store together with an error wrapping ErrStoreUnavailable.
	Load() (*models.Store, error)

	// Save replaces the registry document with store. A failed write leaves the
	// previous document intact.
	Save(store *models.Store) error

	// Path returns the location of the registry document.
	Path() string

	// Close releases any resources held by the store.
	Close() error
}
