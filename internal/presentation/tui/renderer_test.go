package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/pkg/machine"
)

func newRenderMachine(t *testing.T, sliders bool) *machine.Machine {
	t.Helper()
	cfg := machine.DefaultConfig()
	cfg.Width = 20
	cfg.HasSliders = sliders
	m, err := machine.New(cfg)
	require.NoError(t, err)
	return m
}

func TestRenderBedsEmptyMachine(t *testing.T) {
	m := newRenderMachine(t, false)

	out := NewPlainRenderer().RenderBeds(m)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "back, front and scale rows")
	assert.True(t, strings.HasPrefix(lines[0], "b |"))
	assert.True(t, strings.HasPrefix(lines[1], "f |"))
	// Only the scale row carries digits; the bed rows are empty cells.
	assert.NotContains(t, lines[0], "1")
	assert.NotContains(t, lines[1], "1")
}

func TestRenderBedsShowsLoopCounts(t *testing.T) {
	m := newRenderMachine(t, false)
	require.NoError(t, m.Execute(machine.BringIn(1)))
	require.NoError(t, m.Execute(machine.Tuck(machine.FrontNeedle(8), []int{1}, machine.Rightward)))
	require.NoError(t, m.Execute(machine.Tuck(machine.FrontNeedle(8), []int{1}, machine.Rightward)))
	require.NoError(t, m.Execute(machine.Knit(machine.BackNeedle(10), []int{1}, machine.Rightward)))

	out := NewPlainRenderer().RenderBeds(m)
	lines := strings.Split(out, "\n")

	// Window spans needles 6..12; f8 holds 2 loops, b10 holds 1.
	front := lines[1]
	assert.Equal(t, byte('2'), front[3+(8-6)])
	back := lines[0]
	assert.Equal(t, byte('1'), back[3+(10-6)])
}

func TestRenderBedsSliderRows(t *testing.T) {
	m := newRenderMachine(t, true)
	require.NoError(t, m.Execute(machine.BringIn(1)))
	require.NoError(t, m.Execute(machine.Knit(machine.FrontNeedle(5), []int{1}, machine.Rightward)))
	require.NoError(t, m.Execute(machine.Xfer(machine.FrontNeedle(5), machine.BackSlider(5))))

	out := NewPlainRenderer().RenderBeds(m)
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "bs|"))
	assert.Contains(t, lines[0], "1")
	assert.True(t, strings.HasPrefix(lines[3], "fs|"))
	assert.NotContains(t, lines[3][3:], "1")
}

func TestRenderBedsShowsRacking(t *testing.T) {
	m := newRenderMachine(t, false)
	require.NoError(t, m.Execute(machine.SetRacking(2)))

	out := NewPlainRenderer().RenderBeds(m)
	assert.Contains(t, out, "racking +2")
}

func TestPlainRendererEmitsNoEscapes(t *testing.T) {
	m := newRenderMachine(t, false)
	require.NoError(t, m.Execute(machine.BringIn(1)))
	require.NoError(t, m.Execute(machine.Knit(machine.FrontNeedle(3), []int{1}, machine.Rightward)))

	out := NewPlainRenderer().RenderBeds(m)
	assert.NotContains(t, out, "\x1b[")
}
