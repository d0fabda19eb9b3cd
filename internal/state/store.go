// Package state persists the per-container status snapshot between runs.
// The format is a flat JSON object mapping container names to canonical
// status strings, interchangeable with the state file of earlier tooling.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/HerbHall/dockpulse/internal/monitor"
)

// Compile-time interface guard.
var _ monitor.SnapshotStore = (*FileStore)(nil)

// FileStore stores the snapshot in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a snapshot store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot from disk. A missing file is not an error: the
// monitor has simply never completed a cycle, and every container will be
// classified as first-seen.
func (s *FileStore) Load() (monitor.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return monitor.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", s.path, err)
	}

	var snap monitor.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot atomically via a temp file and rename, so a
// crash mid-write never leaves a truncated snapshot behind.
func (s *FileStore) Save(snap monitor.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write snapshot %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename snapshot %q: %w", s.path, err)
	}
	return nil
}
