package machine

// CarriageState is the observable state of the carriage.
type CarriageState struct {
	// Position is the racked slot the carriage last stopped at, nil
	// while parked at the left side before any operation.
	Position *int `json:"position,omitempty"`

	// Direction is the direction of the last explicit pass (knit, tuck,
	// split or miss). Transfers and drops move the carriage without
	// setting it.
	Direction Direction `json:"direction,omitempty"`
}

// carriage tracks the carriage position plus the directional
// monotonicity cursor for the current pass. Within one pass, explicit
// operations must not address a racked slot behind the carriage.
type carriage struct {
	state CarriageState

	// cursor is the racked slot of the last explicit operation in the
	// current pass; valid only when state.Direction is set.
	cursor int
}

// moveTo repositions the carriage without a direction, as transfers and
// drops do. The pass cursor is untouched.
func (c *carriage) moveTo(slot int) {
	s := slot
	c.state.Position = &s
}

// passViolation reports whether an explicit operation at the racked
// slot in the given direction would run the carriage backwards within
// its current pass. A direction change always starts a fresh pass.
func (c *carriage) passViolation(slot int, dir Direction) bool {
	if c.state.Direction != dir {
		return false
	}
	if dir == Rightward {
		return slot < c.cursor
	}
	return slot > c.cursor
}

// moveInDirection commits an explicit pass movement, advancing the
// monotonicity cursor.
func (c *carriage) moveInDirection(slot int, dir Direction) {
	c.moveTo(slot)
	c.state.Direction = dir
	c.cursor = slot
}

func (c *carriage) clone() carriage {
	out := carriage{state: c.state, cursor: c.cursor}
	if c.state.Position != nil {
		v := *c.state.Position
		out.state.Position = &v
	}
	return out
}
