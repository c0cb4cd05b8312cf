package ports

import (
	"context"
	"errors"

	"github.com/loomcraft/vbed/pkg/machine"
)

// ErrSessionNotFound is returned when a session ID cannot be found in
// the store.
var ErrSessionNotFound = errors.New("session not found")

// SnapshotStore defines the interface for persisting machine state.
// This allows for durable knitting sessions, enabling stop-and-resume
// workflows across process restarts.
type SnapshotStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap machine.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (machine.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
