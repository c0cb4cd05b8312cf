// Package tui renders machine state for terminals.
package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/loomcraft/vbed/pkg/machine"
)

// Renderer draws bed views. Colors degrade to plain ASCII on dumb
// terminals via termenv's profile detection.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer creates a renderer using the terminal's color profile.
func NewRenderer() *Renderer {
	return &Renderer{profile: termenv.ColorProfile()}
}

// NewPlainRenderer creates a renderer that never emits color.
func NewPlainRenderer() *Renderer {
	return &Renderer{profile: termenv.Ascii}
}

// RenderBeds draws the four needle rows around the occupied needle
// range: back sliders, back, front, front sliders, plus a position
// scale. Empty needles render as dots, held needles as their loop
// count. The back rows shift with the racking so aligned needles line
// up vertically.
func (r *Renderer) RenderBeds(m *machine.Machine) string {
	lo, hi := renderWindow(m)
	racking := m.Racking()

	var b strings.Builder
	if m.Config().HasSliders {
		b.WriteString(r.bedRow(m, "bs", lo, hi, racking, func(pos int) machine.Needle {
			return machine.BackSlider(pos)
		}))
	}
	b.WriteString(r.bedRow(m, "b ", lo, hi, racking, machine.BackNeedle))
	b.WriteString(r.bedRow(m, "f ", lo, hi, 0, machine.FrontNeedle))
	if m.Config().HasSliders {
		b.WriteString(r.bedRow(m, "fs", lo, hi, 0, func(pos int) machine.Needle {
			return machine.FrontSlider(pos)
		}))
	}
	b.WriteString(scaleRow(lo, hi))
	if racking != 0 {
		fmt.Fprintf(&b, "racking %+d\n", racking)
	}
	return b.String()
}

// renderWindow picks the needle range worth drawing: the occupied span
// with a small margin, or the bed start when empty.
func renderWindow(m *machine.Machine) (lo, hi int) {
	const margin = 2
	lo, hi = 0, 11
	holding := m.HoldingNeedles()
	if len(holding) > 0 {
		lo, hi = holding[0].Position, holding[0].Position
		for _, n := range holding {
			lo = min(lo, n.Position)
			hi = max(hi, n.Position)
		}
		lo -= margin
		hi += margin
	}
	lo = max(lo, 0)
	hi = min(hi, m.Width()-1)
	return lo, hi
}

// bedRow renders one needle row. A non-zero shift slides the row to
// reflect the racking offset.
func (r *Renderer) bedRow(m *machine.Machine, label string, lo, hi, shift int, needle func(int) machine.Needle) string {
	var b strings.Builder
	b.WriteString(label)
	b.WriteByte('|')
	b.WriteString(strings.Repeat(" ", max(shift, 0)))
	for pos := lo; pos <= hi; pos++ {
		b.WriteString(r.cell(len(m.LoopsAt(needle(pos)))))
	}
	b.WriteString(strings.Repeat(" ", max(-shift, 0)))
	b.WriteString("|\n")
	return b.String()
}

func (r *Renderer) cell(loops int) string {
	switch {
	case loops == 0:
		return "."
	case loops > 9:
		return r.colored("+", "#f87171")
	case loops > 1:
		return r.colored(fmt.Sprintf("%d", loops), "#facc15")
	default:
		return r.colored("1", "#4ade80")
	}
}

func (r *Renderer) colored(s, hex string) string {
	return termenv.String(s).Foreground(r.profile.Color(hex)).String()
}

// scaleRow prints position markers every five needles.
func scaleRow(lo, hi int) string {
	var b strings.Builder
	b.WriteString("  |")
	pos := lo
	for pos <= hi {
		if pos%5 == 0 {
			mark := fmt.Sprintf("%d", pos)
			if pos+len(mark) > hi+1 {
				b.WriteString(strings.Repeat(" ", hi-pos+1))
				break
			}
			b.WriteString(mark)
			pos += len(mark)
			continue
		}
		b.WriteByte(' ')
		pos++
	}
	b.WriteString("|\n")
	return b.String()
}
