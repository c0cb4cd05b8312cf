package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/pkg/machine"
)

// RunSnapshotStoreContract verifies that a SnapshotStore implementation
// adheres to the interface contract. Store adapters call it from their
// own tests.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	snap := contractSnapshot(t)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap, loaded)

		restored, err := machine.Restore(loaded)
		require.NoError(t, err, "a stored snapshot must restore cleanly")
		assert.Equal(t, snap, restored.Snapshot())
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		next := contractSnapshot(t)
		next.Racking = 1
		require.NoError(t, store.Save(ctx, sessionID, next))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Racking)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, snap))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, snap)
		_ = store.Save(ctx, id2, snap)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// contractSnapshot builds a snapshot with loops, an active carrier and
// carriage state, so serialization bugs cannot hide behind zero values.
func contractSnapshot(t *testing.T) machine.Snapshot {
	t.Helper()
	cfg := machine.DefaultConfig()
	cfg.Width = 12
	m, err := machine.New(cfg)
	require.NoError(t, err)

	ops := []machine.Operation{
		machine.BringIn(1),
		machine.Tuck(machine.FrontNeedle(4), []int{1}, machine.Leftward),
		machine.Knit(machine.BackNeedle(2), []int{1}, machine.Leftward),
	}
	for _, op := range ops {
		require.NoError(t, m.Execute(op))
	}
	return m.Snapshot()
}
