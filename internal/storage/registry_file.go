// ABOUTME: File-backed registry storage using a single YAML or JSON document.
// ABOUTME: Reads fall back to an empty store; writes replace the document atomically.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/2389-research/partnerdesk/internal/models"
)

// FileRegistry stores the partner registry as one document on disk.
type FileRegistry struct {
	path  string
	codec Codec
}

// NewFileRegistry creates a registry store at path, choosing the codec by extension.
func NewFileRegistry(path string) (*FileRegistry, error) {
	if path == "" {
		return nil, fmt.Errorf("registry path is required")
	}
	return &FileRegistry{
		path:  path,
		codec: CodecFor(path),
	}, nil
}

// Load reads the registry document.
func (r *FileRegistry) Load() (*models.Store, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return models.NewStore(), fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	store, err := r.codec.Decode(data)
	if err != nil {
		return models.NewStore(), fmt.Errorf("%w: failed to parse %s: %w", ErrStoreUnavailable, r.path, err)
	}
	return store, nil
}

// Save replaces the registry document.
func (r *FileRegistry) Save(store *models.Store) error {
	data, err := r.codec.Encode(store)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0750); err != nil {
		return fmt.Errorf("failed to create registry dir: %w", err)
	}

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Path returns the registry document location.
func (r *FileRegistry) Path() string {
	return r.path
}

// Close releases any resources held by the store.
func (r *FileRegistry) Close() error {
	return nil
}
