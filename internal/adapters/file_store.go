package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/persistence"
	"github.com/loomcraft/vbed/pkg/ports"
)

// FileStore implements ports.SnapshotStore using the local filesystem.
// It stores sessions as JSON files in a configured directory.
type FileStore struct {
	BasePath string
	codec    persistence.Codec
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFileCodec sets the codec used to serialize snapshots. Defaults
// to indented JSON.
func WithFileCodec(codec persistence.Codec) FileOption {
	return func(f *FileStore) {
		f.codec = codec
	}
}

// NewFileStore creates a new FileStore with the given base path.
// If basePath is empty, it defaults to ".vbed/sessions".
func NewFileStore(basePath string, opts ...FileOption) *FileStore {
	if basePath == "" {
		basePath = filepath.Join(".vbed", "sessions")
	}
	store := &FileStore{
		BasePath: basePath,
		codec:    persistence.JSON{Indent: true},
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Save persists the snapshot to a JSON file.
func (f *FileStore) Save(ctx context.Context, sessionID string, snap machine.Snapshot) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := f.codec.Encode(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.WriteFile(f.path(sessionID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves the snapshot from a JSON file.
func (f *FileStore) Load(ctx context.Context, sessionID string) (machine.Snapshot, error) {
	if sessionID == "" {
		return machine.Snapshot{}, fmt.Errorf("sessionID cannot be empty")
	}

	data, err := os.ReadFile(f.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return machine.Snapshot{}, ports.ErrSessionNotFound
		}
		return machine.Snapshot{}, fmt.Errorf("failed to read session file: %w", err)
	}

	return f.codec.Decode(data)
}

// Delete removes the session file.
func (f *FileStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	err := os.Remove(f.path(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns all stored session IDs.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			sessions = append(sessions, name[:len(name)-len(".json")])
		}
	}
	return sessions, nil
}

func (f *FileStore) path(sessionID string) string {
	return filepath.Join(f.BasePath, sessionID+".json")
}
