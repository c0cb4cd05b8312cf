package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/loomcraft/vbed/pkg/machine"
)

// nopStore ignores everything; only the lock bookkeeping matters here.
type nopStore struct{}

func (nopStore) Save(ctx context.Context, sessionID string, snap machine.Snapshot) error {
	return nil
}
func (nopStore) Load(ctx context.Context, sessionID string) (machine.Snapshot, error) {
	return machine.Snapshot{}, nil
}
func (nopStore) Delete(ctx context.Context, sessionID string) error { return nil }
func (nopStore) List(ctx context.Context) ([]string, error)         { return nil, nil }

func TestManager_LockEntriesDoNotLeak(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, sid, machine.Snapshot{})
		_ = mgr.Delete(ctx, sid)
	}

	if remaining := len(mgr.locks); remaining != 0 {
		t.Errorf("expected lock map to be empty, %d entries remain", remaining)
	}
}
