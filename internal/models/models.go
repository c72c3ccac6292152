// ABOUTME: Core data models for partner registry entries and the persisted store.
// ABOUTME: Provides timestamp formatting, filter modes, and store constructors.
package models

import (
	"strings"
	"time"
)

// StampLayout is the registry timestamp format: day.month.year 24h, minute precision.
const StampLayout = "02.01.2006 15:04"

// FormatStamp renders t in the registry timestamp format.
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseStamp parses a registry timestamp in the local time zone.
func ParseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(StampLayout, strings.TrimSpace(s), time.Local)
}

// Partner is one registry entry.
type Partner struct {
	ID        string
	Name      string
	Folder    string // subdirectory name under the archive root, empty = unassigned
	UpdatedAt string // StampLayout
}

// Store is the persisted registry keyed by partner ID.
type Store struct {
	LastSync string // StampLayout, empty if never synced
	Partners map[string]Partner
}

// NewStore returns an empty, never-synced store.
func NewStore() *Store {
	return &Store{Partners: make(map[string]Partner)}
}

// Len returns the number of partners.
func (s *Store) Len() int {
	return len(s.Partners)
}

// Clone returns a deep copy so a snapshot can be handed to another goroutine.
func (s *Store) Clone() *Store {
	c := &Store{
		LastSync: s.LastSync,
		Partners: make(map[string]Partner, len(s.Partners)),
	}
	for id, p := range s.Partners {
		c.Partners[id] = p
	}
	return c
}

// FilterMode selects which partners a view shows.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterMissingFolder
	FilterSearch
)

// String returns the filter name used by the CLI and MCP tools.
func (f FilterMode) String() string {
	switch f {
	case FilterMissingFolder:
		return "missing"
	case FilterSearch:
		return "search"
	default:
		return "all"
	}
}

// ParseFilterMode maps a filter name to a FilterMode. Unknown names yield FilterAll.
func ParseFilterMode(name string) FilterMode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "missing", "missing-folder", "missing_folder":
		return FilterMissingFolder
	case "search":
		return FilterSearch
	default:
		return FilterAll
	}
}
