package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/pkg/machine"
)

const samplePattern = `
name: swatch
machine:
  width: 20
  has_sliders: false
ops:
  - {op: inhook, carrier: 1}
  - {op: tuck, needle: f5, carriers: [1], direction: "-"}
  - {op: releasehook}
  - {op: rack, racking: 1}
  - {op: xfer, needle: f5, target: b4}
  - {op: outhook, carrier: 1}
`

func TestParsePattern(t *testing.T) {
	p, err := NewParser().Parse([]byte(samplePattern))
	require.NoError(t, err)

	assert.Equal(t, "swatch", p.Name)
	assert.Equal(t, 20, p.Config.Width)
	assert.False(t, p.Config.HasSliders)
	// Unset machine fields keep their defaults.
	assert.Equal(t, machine.DefaultConfig().Carriers, p.Config.Carriers)
	assert.Equal(t, machine.DefaultConfig().MaxRacking, p.Config.MaxRacking)

	require.Len(t, p.Ops, 6)
	assert.Equal(t, machine.Inhook(1), p.Ops[0])
	assert.Equal(t, machine.Tuck(machine.FrontNeedle(5), []int{1}, machine.Leftward), p.Ops[1])
	assert.Equal(t, machine.Releasehook(), p.Ops[2])
	assert.Equal(t, machine.SetRacking(1), p.Ops[3])
	assert.Equal(t, machine.Xfer(machine.FrontNeedle(5), machine.BackNeedle(4)), p.Ops[4])
	assert.Equal(t, machine.Outhook(1), p.Ops[5])
}

func TestParsePatternWithoutMachineSection(t *testing.T) {
	p, err := NewParser().Parse([]byte("ops:\n  - {op: in, carrier: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, machine.DefaultConfig(), p.Config)
	require.Len(t, p.Ops, 1)
	assert.Equal(t, machine.BringIn(2), p.Ops[0])
}

func TestParseRejectsEmptyPattern(t *testing.T) {
	_, err := NewParser().Parse([]byte("name: nothing\n"))
	require.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := NewParser().Parse([]byte("ops: [\n"))
	require.Error(t, err)
}

func TestDecodeOperation(t *testing.T) {
	op, err := DecodeOperation(map[string]any{
		"op":        "split",
		"needle":    "f3",
		"target":    "b3",
		"carriers":  []any{1, 2},
		"direction": "+",
	})
	require.NoError(t, err)
	assert.Equal(t,
		machine.Split(machine.FrontNeedle(3), machine.BackNeedle(3), []int{1, 2}, machine.Rightward),
		op)
}

func TestDecodeOperationSliderNeedle(t *testing.T) {
	op, err := DecodeOperation(map[string]any{"op": "xfer", "needle": "f7", "target": "bs7"})
	require.NoError(t, err)
	assert.Equal(t, machine.Xfer(machine.FrontNeedle(7), machine.BackSlider(7)), op)
}

func TestDecodeOperationErrors(t *testing.T) {
	cases := map[string]map[string]any{
		"missing op":    {"needle": "f1"},
		"bad needle":    {"op": "knit", "needle": "x9"},
		"unknown field": {"op": "knit", "needle": "f1", "speed": 3},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeOperation(raw)
			require.Error(t, err)
		})
	}
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeConfig(map[string]any{"width": 10, "gauge": 7})
	require.Error(t, err)
}
