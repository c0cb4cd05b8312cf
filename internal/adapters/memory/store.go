// Package memory provides a ports.SnapshotStore backed by a map.
// Useful for tests and for ephemeral simulations that never touch
// disk.
package memory

import (
	"context"
	"sync"

	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/ports"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]machine.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]machine.Snapshot),
	}
}

// Save persists the snapshot in memory. The stored copy is deep, so
// later mutation of the caller's snapshot does not leak in.
func (s *Store) Save(ctx context.Context, sessionID string, snap machine.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = snap.Clone()
	return nil
}

// Load retrieves the snapshot for a session.
func (s *Store) Load(ctx context.Context, sessionID string) (machine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[sessionID]
	if !ok {
		return machine.Snapshot{}, ports.ErrSessionNotFound
	}
	// Copy on read so the caller cannot mutate store state.
	return snap.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
