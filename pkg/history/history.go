// Package history keeps a capped, most-recent-first record of past audits
// in a single JSON slot on disk.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/auditpro/auditpro/internal/models"
)

// MaxItems bounds the persisted list; recording evicts beyond this.
const MaxItems = 10

const formatVersion = 1

// envelope is the versioned on-disk form. A bare legacy array is also
// accepted on read.
type envelope struct {
	Version int                  `json:"version"`
	Items   []models.HistoryItem `json:"items"`
}

// Store persists the audit history. Order is recording order, newest
// first, regardless of the items' timestamp fields.
type Store struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the history location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "auditpro", "history.json")
}

// Load reads the persisted history. A missing or malformed slot yields an
// empty list, never an error: history is a convenience, not a source of
// truth.
func (s *Store) Load() []models.HistoryItem {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version >= formatVersion {
		return clamp(env.Items)
	}

	var legacy []models.HistoryItem
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return clamp(legacy)
	}
	return nil
}

// Record prepends the item, truncates to MaxItems, and replaces the
// persisted state atomically (temp file + rename), so readers never see a
// partial write.
func (s *Store) Record(item models.HistoryItem) error {
	items := append([]models.HistoryItem{item}, s.Load()...)
	items = clamp(items)

	raw, err := json.MarshalIndent(envelope{Version: formatVersion, Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("history: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("history: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("history: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("history: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("history: replace: %w", err)
	}
	return nil
}

// Clear removes the persisted slot.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}

func clamp(items []models.HistoryItem) []models.HistoryItem {
	if len(items) > MaxItems {
		return items[:MaxItems]
	}
	return items
}
