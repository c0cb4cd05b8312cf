package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// Bed identifies one side of the machine.
type Bed string

const (
	// Front is the needle bed facing the operator.
	Front Bed = "f"
	// Back is the needle bed away from the operator.
	Back Bed = "b"
)

// Opposite returns the other bed.
func (b Bed) Opposite() Bed {
	if b == Front {
		return Back
	}
	return Front
}

// Needle identifies a single needle by bed, position and slider flag.
// It is a pure identity: loop state lives on the Machine, never here.
type Needle struct {
	Bed      Bed  `json:"bed" yaml:"bed" mapstructure:"bed"`
	Position int  `json:"position" yaml:"position" mapstructure:"position"`
	Slider   bool `json:"slider,omitempty" yaml:"slider,omitempty" mapstructure:"slider"`
}

// FrontNeedle returns the main front needle at position.
func FrontNeedle(position int) Needle { return Needle{Bed: Front, Position: position} }

// BackNeedle returns the main back needle at position.
func BackNeedle(position int) Needle { return Needle{Bed: Back, Position: position} }

// FrontSlider returns the front slider needle at position.
func FrontSlider(position int) Needle { return Needle{Bed: Front, Position: position, Slider: true} }

// BackSlider returns the back slider needle at position.
func BackSlider(position int) Needle { return Needle{Bed: Back, Position: position, Slider: true} }

// Main returns the non-slider needle at this needle's slot.
func (n Needle) Main() Needle { return Needle{Bed: n.Bed, Position: n.Position} }

// SliderPair returns the slider needle at this needle's slot.
func (n Needle) SliderPair() Needle { return Needle{Bed: n.Bed, Position: n.Position, Slider: true} }

// Opposite returns the needle at the same position on the other bed,
// keeping the slider flag.
func (n Needle) Opposite() Needle {
	return Needle{Bed: n.Bed.Opposite(), Position: n.Position, Slider: n.Slider}
}

// IsFront reports whether the needle sits on the front bed.
func (n Needle) IsFront() bool { return n.Bed == Front }

// RackedPosition maps the needle to front-bed coordinates at the given
// racking. Front needles are unaffected; at racking R back needle B sits
// under front position B+R.
func (n Needle) RackedPosition(racking int) int {
	if n.IsFront() {
		return n.Position
	}
	return n.Position + racking
}

// String renders the needle in knitout notation: f3, b3, fs3, bs3.
func (n Needle) String() string {
	if n.Slider {
		return fmt.Sprintf("%ss%d", string(n.Bed), n.Position)
	}
	return fmt.Sprintf("%s%d", string(n.Bed), n.Position)
}

// ParseNeedle reads knitout notation ("f0", "b12", "fs3", "bs7") back
// into a Needle identity.
func ParseNeedle(s string) (Needle, error) {
	var n Needle
	rest := s
	switch {
	case strings.HasPrefix(s, "fs"):
		n.Bed, n.Slider, rest = Front, true, s[2:]
	case strings.HasPrefix(s, "bs"):
		n.Bed, n.Slider, rest = Back, true, s[2:]
	case strings.HasPrefix(s, "f"):
		n.Bed, rest = Front, s[1:]
	case strings.HasPrefix(s, "b"):
		n.Bed, rest = Back, s[1:]
	default:
		return Needle{}, fmt.Errorf("machine: invalid needle %q: must start with f, b, fs or bs", s)
	}
	pos, err := strconv.Atoi(rest)
	if err != nil {
		return Needle{}, fmt.Errorf("machine: invalid needle %q: %w", s, err)
	}
	n.Position = pos
	return n, nil
}

// AlignedNeedle returns the opposite-bed needle that the given needle
// can transfer to at the given racking. The knitout alignment rule is
// F = B + R: at racking R, back needle B aligns to front needle B+R.
// The slider flag of the result follows the toSlider argument.
func AlignedNeedle(n Needle, racking int, toSlider bool) Needle {
	var pos int
	if n.IsFront() {
		pos = n.Position - racking
	} else {
		pos = n.Position + racking
	}
	return Needle{Bed: n.Bed.Opposite(), Position: pos, Slider: toSlider}
}

// RackingFor returns the racking required to transfer between a front
// and back position (R = F - B).
func RackingFor(frontPos, backPos int) int { return frontPos - backPos }
