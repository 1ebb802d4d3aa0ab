// Package file stores the order history as a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
	"github.com/ghuser/voiceshop/services/shop/domain/repositories"
)

// SnapshotStore implements repositories.OrderSnapshotStore with one JSON
// file holding a top-level array of orders, oldest first.
type SnapshotStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewSnapshotStore returns a store backed by path. The file is created on first Save.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path, now: time.Now}
}

// Load reads the snapshot. A missing file is an empty history. A file that
// does not parse is renamed to <path>.corrupt-<unix> so the next Save does
// not overwrite it, and the parse error is returned.
func (s *SnapshotStore) Load(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read order snapshot: %w", err)
	}

	var history []models.Order
	if err := json.Unmarshal(data, &history); err != nil {
		aside := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
		if mvErr := os.Rename(s.path, aside); mvErr != nil {
			return nil, fmt.Errorf("parse order snapshot: %w (keeping file in place: %v)", err, mvErr)
		}
		return nil, fmt.Errorf("parse order snapshot (moved to %s): %w: %w", aside, repositories.ErrSnapshotQuarantined, err)
	}
	if history == nil {
		history = []models.Order{}
	}
	return history, nil
}

// Save replaces the snapshot atomically: renameio writes a temp file in the
// same directory, syncs it, then renames it over the old snapshot.
func (s *SnapshotStore) Save(_ context.Context, history []models.Order) error {
	if history == nil {
		history = []models.Order{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode order snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := renameio.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("replace order snapshot: %w", err)
	}
	return nil
}

// Ping reports whether the snapshot directory is writable.
func (s *SnapshotStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("snapshot dir %s is not a directory", dir)
	}
	f, err := os.CreateTemp(dir, ".voiceshop-ping-*")
	if err != nil {
		return fmt.Errorf("snapshot dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
