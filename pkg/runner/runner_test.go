package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/internal/adapters/memory"
	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/ports"
)

func newMachine(t *testing.T) *machine.Machine {
	t.Helper()
	cfg := machine.DefaultConfig()
	cfg.Width = 10
	m, err := machine.New(cfg)
	require.NoError(t, err)
	return m
}

func swatchOps() []machine.Operation {
	return []machine.Operation{
		machine.BringIn(1),
		machine.Tuck(machine.FrontNeedle(5), []int{1}, machine.Leftward),
		machine.Tuck(machine.FrontNeedle(3), []int{1}, machine.Leftward),
		machine.Knit(machine.FrontNeedle(3), []int{1}, machine.Rightward),
		machine.Knit(machine.FrontNeedle(5), []int{1}, machine.Rightward),
		machine.Out(1),
	}
}

func TestRunExecutesSequence(t *testing.T) {
	m := newMachine(t)
	var executed []machine.OpKind
	var passes []int
	r := New(WithHooks(Hooks{
		OnOperation: func(op machine.Operation) { executed = append(executed, op.Kind) },
		OnPass:      func(dir machine.Direction, ops int) { passes = append(passes, ops) },
	}))

	report, err := r.Run(context.Background(), m, swatchOps())
	require.NoError(t, err)

	assert.Equal(t, 6, report.Executed)
	assert.Zero(t, report.Rejected)
	assert.Equal(t, 2, report.Passes, "one leftward and one rightward pass")
	assert.Equal(t, []int{2, 2}, passes)
	assert.Len(t, executed, 6)
	assert.Len(t, m.HoldingNeedles(), 2)
}

func TestRunAbortsOnFirstRejection(t *testing.T) {
	m := newMachine(t)
	ops := []machine.Operation{
		machine.BringIn(1),
		machine.Knit(machine.FrontNeedle(2), []int{1}, machine.Rightward),
		machine.Knit(machine.FrontNeedle(0), []int{1}, machine.Rightward), // behind the carriage
		machine.Knit(machine.FrontNeedle(5), []int{1}, machine.Rightward),
	}
	var rejected int
	r := New(WithHooks(Hooks{
		OnReject: func(op machine.Operation, err error) { rejected++ },
	}))

	report, err := r.Run(context.Background(), m, ops)
	require.Error(t, err)
	var dirErr *machine.CarriageDirectionError
	assert.ErrorAs(t, err, &dirErr)

	assert.Equal(t, 2, report.Executed)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 1, rejected)
	// Accepted prefix survives; the rejected tail never ran.
	assert.Len(t, m.HoldingNeedles(), 1)
}

func TestRunContinueOnError(t *testing.T) {
	m := newMachine(t)
	ops := []machine.Operation{
		machine.BringIn(1),
		machine.Knit(machine.FrontNeedle(2), []int{1}, machine.Rightward),
		machine.Knit(machine.FrontNeedle(0), []int{1}, machine.Rightward),
		machine.Knit(machine.FrontNeedle(5), []int{1}, machine.Rightward),
	}
	r := New(WithContinueOnError())

	report, err := r.Run(context.Background(), m, ops)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Executed)
	assert.Equal(t, 1, report.Rejected)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Failures[0].Index)
	assert.Len(t, m.HoldingNeedles(), 2)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	m := newMachine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New().Run(ctx, m, swatchOps())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Executed)
}

// countingStore wraps a store to count checkpoint saves.
type countingStore struct {
	ports.SnapshotStore
	saves int
}

func (s *countingStore) Save(ctx context.Context, id string, snap machine.Snapshot) error {
	s.saves++
	return s.SnapshotStore.Save(ctx, id, snap)
}

func TestRunCheckpoints(t *testing.T) {
	m := newMachine(t)
	store := &countingStore{SnapshotStore: memory.NewStore()}
	r := New(
		WithStore(store, "swatch-1"),
		WithCheckpointEvery(2),
	)

	_, err := r.Run(context.Background(), m, swatchOps())
	require.NoError(t, err)

	// Three mid-run checkpoints (after ops 2, 4 and 6) plus the final
	// save.
	assert.Equal(t, 4, store.saves)

	snap, err := store.Load(context.Background(), "swatch-1")
	require.NoError(t, err)
	assert.Equal(t, m.Snapshot(), snap)
}
