// ABOUTME: Reconciliation engine merging imported partner rows into the persisted registry.
// ABOUTME: Serializes every read-modify-write of the registry document through one Engine.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/2389-research/partnerdesk/internal/importer"
	"github.com/2389-research/partnerdesk/internal/logging"
	"github.com/2389-research/partnerdesk/internal/models"
	"github.com/2389-research/partnerdesk/internal/storage"
)

// ErrEditTargetNotFound reports a folder edit for an ID the registry does not hold.
// SetFolder treats it as a no-op; it is exposed so callers can tell the user.
var ErrEditTargetNotFound = errors.New("partner not found")

// Clock returns the current time.
type Clock func() time.Time

// Engine owns all mutations of one registry document. Reads go straight to the
// store; writes hold mu for the whole load-merge-save cycle.
type Engine struct {
	store storage.RegistryStore
	now   Clock
	mu    sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for stamps.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.now = c
	}
}

// NewEngine creates an engine over store.
func NewEngine(store storage.RegistryStore, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("registry store is required")
	}
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Store returns the underlying registry store.
func (e *Engine) Store() storage.RegistryStore {
	return e.store
}

// ImportResult summarizes one reconciliation run.
type ImportResult struct {
	RunID     uuid.UUID
	Rows      int // data rows seen, header excluded
	Inserted  int
	Renamed   int
	Unchanged int
	Skipped   int // rows with an empty ID
	SyncedAt  string
	Store     *models.Store // snapshot of the persisted result
}

// Merge applies rows to store in order and stamps last_sync. rows[0] is the
// header and is skipped. Folder assignments are never touched.
func Merge(store *models.Store, rows []importer.Row, stamp string) ImportResult {
	res := ImportResult{SyncedAt: stamp}
	if store.Partners == nil {
		store.Partners = make(map[string]models.Partner)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		res.Rows++

		id := strings.TrimSpace(row.ID)
		name := strings.TrimSpace(row.Name)
		if id == "" {
			res.Skipped++
			continue
		}

		existing, ok := store.Partners[id]
		switch {
		case !ok:
			store.Partners[id] = models.Partner{ID: id, Name: name, UpdatedAt: stamp}
			res.Inserted++
		case existing.Name != name:
			existing.Name = name
			existing.UpdatedAt = stamp
			store.Partners[id] = existing
			res.Renamed++
		default:
			res.Unchanged++
		}
	}

	store.LastSync = stamp
	return res
}

// Import merges rows into the persisted registry and saves it.
// A missing or corrupt registry is replaced by the merge of rows into an empty one.
func (e *Engine) Import(ctx context.Context, rows []importer.Row) (*ImportResult, error) {
	runID := uuid.New()
	log := logging.FromContext(ctx).With().Str("run_id", runID.String()).Logger()

	e.mu.Lock()
	defer e.mu.Unlock()

	store, err := e.store.Load()
	if err != nil || store == nil {
		log.Warn().Err(err).Str("path", e.store.Path()).Msg("starting import from empty registry")
		store = models.NewStore()
	}

	res := Merge(store, rows, models.FormatStamp(e.now()))
	res.RunID = runID

	if err := e.store.Save(store); err != nil {
		return nil, fmt.Errorf("failed to persist registry: %w", err)
	}
	res.Store = store.Clone()

	logResult(&log, &res)
	return &res, nil
}

// ImportFile reads the spreadsheet at path and imports it. If the file cannot
// be read the registry is left untouched.
func (e *Engine) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	rows, err := importer.ReadRows(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("source", path).Msg("import aborted")
		return nil, err
	}
	return e.Import(ctx, rows)
}

// SetFolder assigns folder to the partner with id, stamping updated_at.
// It reports false without writing when the registry cannot be loaded or id is unknown.
func (e *Engine) SetFolder(ctx context.Context, id, folder string) (bool, error) {
	log := logging.FromContext(ctx)
	id = strings.TrimSpace(id)
	folder = strings.TrimSpace(folder)

	e.mu.Lock()
	defer e.mu.Unlock()

	store, err := e.store.Load()
	if err != nil || store == nil {
		log.Warn().Err(err).Str("partner_id", id).Msg("folder edit ignored")
		return false, nil
	}

	p, ok := store.Partners[id]
	if !ok {
		log.Warn().Err(ErrEditTargetNotFound).Str("partner_id", id).Msg("folder edit ignored")
		return false, nil
	}

	p.Folder = folder
	p.UpdatedAt = models.FormatStamp(e.now())
	store.Partners[id] = p

	if err := e.store.Save(store); err != nil {
		return false, fmt.Errorf("failed to persist registry: %w", err)
	}

	log.Info().Str("partner_id", id).Str("folder", folder).Msg("folder updated")
	return true, nil
}

// Snapshot loads the registry. The error, if any, wraps storage.ErrStoreUnavailable
// and the returned store is empty.
func (e *Engine) Snapshot() (*models.Store, error) {
	return e.store.Load()
}

func logResult(log *zerolog.Logger, res *ImportResult) {
	log.Info().
		Int("rows", res.Rows).
		Int("inserted", res.Inserted).
		Int("renamed", res.Renamed).
		Int("unchanged", res.Unchanged).
		Int("skipped", res.Skipped).
		Str("synced_at", res.SyncedAt).
		Msg("registry reconciled")
}
