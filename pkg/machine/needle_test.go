package machine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/pkg/machine"
)

func TestNeedleString(t *testing.T) {
	assert.Equal(t, "f3", machine.FrontNeedle(3).String())
	assert.Equal(t, "b12", machine.BackNeedle(12).String())
	assert.Equal(t, "fs0", machine.FrontSlider(0).String())
	assert.Equal(t, "bs7", machine.BackSlider(7).String())
}

func TestParseNeedle(t *testing.T) {
	cases := []struct {
		in   string
		want machine.Needle
	}{
		{"f0", machine.FrontNeedle(0)},
		{"b41", machine.BackNeedle(41)},
		{"fs3", machine.FrontSlider(3)},
		{"bs19", machine.BackSlider(19)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := machine.ParseNeedle(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "x3", "f", "fs", "f3.5", "3f"} {
		_, err := machine.ParseNeedle(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestAlignedNeedleKnitoutRule(t *testing.T) {
	// At racking R, back needle B aligns to front needle B+R. The
	// knitout spec example: at racking 2 f3 transfers to b1.
	assert.Equal(t, machine.BackNeedle(1), machine.AlignedNeedle(machine.FrontNeedle(3), 2, false))
	assert.Equal(t, machine.FrontNeedle(3), machine.AlignedNeedle(machine.BackNeedle(1), 2, false))
	assert.Equal(t, machine.BackSlider(5), machine.AlignedNeedle(machine.FrontNeedle(5), 0, true))
}

func TestAlignedNeedleIsInvolution(t *testing.T) {
	// Transfer alignment is its own inverse for every racking in range.
	for rack := -4; rack <= 4; rack++ {
		for pos := 0; pos < 10; pos++ {
			for _, n := range []machine.Needle{machine.FrontNeedle(pos), machine.BackNeedle(pos)} {
				aligned := machine.AlignedNeedle(n, rack, false)
				back := machine.AlignedNeedle(aligned, rack, false)
				assert.Equal(t, n, back, "needle %s at racking %d", n, rack)
			}
		}
	}
}

func TestRackedPosition(t *testing.T) {
	assert.Equal(t, 3, machine.FrontNeedle(3).RackedPosition(2))
	assert.Equal(t, 3, machine.BackNeedle(1).RackedPosition(2))
	assert.Equal(t, -1, machine.BackNeedle(1).RackedPosition(-2))
}

func TestDirectionSortNeedles(t *testing.T) {
	needles := []machine.Needle{
		machine.FrontNeedle(4),
		machine.BackNeedle(1),
		machine.FrontNeedle(0),
		machine.BackNeedle(4),
	}

	right := machine.Rightward.SortNeedles(needles, 0)
	require.Len(t, right, 4)
	assert.Equal(t, machine.FrontNeedle(0), right[0])
	assert.Equal(t, machine.BackNeedle(1), right[1])
	// same slot: front before back when moving rightward
	assert.Equal(t, machine.FrontNeedle(4), right[2])
	assert.Equal(t, machine.BackNeedle(4), right[3])

	left := machine.Leftward.SortNeedles(needles, 0)
	assert.Equal(t, machine.BackNeedle(4), left[0])
	assert.Equal(t, machine.FrontNeedle(4), left[1])
	assert.Equal(t, machine.FrontNeedle(0), left[3])

	// racking shifts back-bed slots
	racked := machine.Rightward.SortNeedles([]machine.Needle{machine.BackNeedle(0), machine.FrontNeedle(1)}, 2)
	assert.Equal(t, machine.FrontNeedle(1), racked[0], "b0 sits at slot 2 when racked by 2")
}

func ExampleParseNeedle() {
	n, _ := machine.ParseNeedle("bs4")
	fmt.Println(n.Bed, n.Position, n.Slider)
	// Output: b 4 true
}
