package vbed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed"
	"github.com/loomcraft/vbed/internal/adapters"
	"github.com/loomcraft/vbed/pkg/machine"
)

const swatchPattern = `
name: garter-strip
machine:
  width: 12
  has_sliders: false
ops:
  - {op: inhook, carrier: 1}
  - {op: tuck, needle: f7, carriers: [1], direction: "-"}
  - {op: tuck, needle: f5, carriers: [1], direction: "-"}
  - {op: tuck, needle: f3, carriers: [1], direction: "-"}
  - {op: releasehook}
  - {op: knit, needle: f3, carriers: [1], direction: "+"}
  - {op: knit, needle: f5, carriers: [1], direction: "+"}
  - {op: knit, needle: f7, carriers: [1], direction: "+"}
  - {op: outhook, carrier: 1}
`

func TestRunPattern(t *testing.T) {
	sim, report, err := vbed.RunPattern(context.Background(), []byte(swatchPattern))
	require.NoError(t, err)

	assert.Equal(t, 9, report.Executed)
	assert.Equal(t, 2, report.Passes)

	m := sim.Machine()
	assert.Equal(t, 12, m.Width())
	require.Len(t, m.HoldingNeedles(), 3)
	for _, n := range m.HoldingNeedles() {
		assert.Len(t, m.LoopsAt(n), 1)
	}
	assert.Empty(t, m.ActiveCarriers())
}

func TestRunPatternReportsFailure(t *testing.T) {
	src := []byte(`
ops:
  - {op: in, carrier: 1}
  - {op: knit, needle: f2, carriers: [1], direction: "+"}
  - {op: knit, needle: f0, carriers: [1], direction: "+"}
`)
	sim, report, err := vbed.RunPattern(context.Background(), src)
	require.Error(t, err)
	var dirErr *machine.CarriageDirectionError
	assert.ErrorAs(t, err, &dirErr)

	require.NotNil(t, report)
	assert.Equal(t, 2, report.Executed)
	assert.Equal(t, 1, report.Rejected)
	assert.Len(t, sim.Machine().HoldingNeedles(), 1)
}

func TestRunPatternRejectsBadDocument(t *testing.T) {
	_, _, err := vbed.RunPattern(context.Background(), []byte("ops: [{op: knot}]"))
	require.Error(t, err)
}

func TestSimulatorSnapshotRoundTrip(t *testing.T) {
	store := adapters.NewFileStore(t.TempDir())

	sim, _, err := vbed.RunPattern(context.Background(), []byte(swatchPattern), vbed.WithStore(store))
	require.NoError(t, err)
	require.NoError(t, sim.SaveSnapshot(context.Background(), "strip-1"))

	resumed, err := vbed.New(machine.DefaultConfig(), vbed.WithStore(store))
	require.NoError(t, err)
	require.NoError(t, resumed.LoadSnapshot(context.Background(), "strip-1"))

	assert.Equal(t, sim.Machine().Snapshot(), resumed.Machine().Snapshot())
}

func TestSimulatorWithoutStore(t *testing.T) {
	sim, err := vbed.New(machine.DefaultConfig())
	require.NoError(t, err)

	assert.Error(t, sim.SaveSnapshot(context.Background(), "x"))
	assert.Error(t, sim.LoadSnapshot(context.Background(), "x"))
}

func TestNewFromSnapshot(t *testing.T) {
	sim, _, err := vbed.RunPattern(context.Background(), []byte(swatchPattern))
	require.NoError(t, err)

	resumed, err := vbed.NewFromSnapshot(sim.Machine().Snapshot())
	require.NoError(t, err)
	assert.Equal(t, sim.Machine().Snapshot(), resumed.Machine().Snapshot())

	// The resumed machine keeps knitting from where it stopped.
	require.NoError(t, resumed.Execute(machine.BringIn(2)))
	require.NoError(t, resumed.Execute(machine.Knit(machine.FrontNeedle(3), []int{2}, machine.Leftward)))
}
