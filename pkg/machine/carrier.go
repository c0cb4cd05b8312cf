package machine

// CarrierState is the observable state of one yarn carrier.
type CarrierState struct {
	// ID is the carrier number, 1-based.
	ID int `json:"id"`

	// Active reports whether the carrier is off the grippers and can
	// feed yarn.
	Active bool `json:"active"`

	// Hooked reports whether the carrier is held by the yarn inserting
	// hook (brought in via inhook and not yet released).
	Hooked bool `json:"hooked"`

	// Position is the needle slot the carrier last passed, nil while the
	// carrier has not been positioned.
	Position *int `json:"position,omitempty"`

	// Direction is the direction of the carrier's last movement, empty
	// until it has moved.
	Direction Direction `json:"direction,omitempty"`
}

// carrierSystem tracks every carrier plus the single yarn inserting
// hook. Carriers are stored 0-indexed but addressed 1-based.
type carrierSystem struct {
	carriers []CarrierState

	// hookCarrier is the carrier currently on the inserting hook, 0 when
	// the hook is free.
	hookCarrier int

	// hookSlot is where the hook parked, in racked (front-aligned)
	// coordinates: one slot right of the first loop formed after an
	// inhook. Nil while free or still searching.
	hookSlot *int

	// hookPending marks an inhook that has not yet formed its first
	// loop, so the hook has no committed position.
	hookPending bool
}

func newCarrierSystem(count int) *carrierSystem {
	cs := &carrierSystem{carriers: make([]CarrierState, count)}
	for i := range cs.carriers {
		cs.carriers[i] = CarrierState{ID: i + 1}
	}
	return cs
}

func (cs *carrierSystem) has(id int) bool {
	return id >= 1 && id <= len(cs.carriers)
}

func (cs *carrierSystem) get(id int) *CarrierState {
	return &cs.carriers[id-1]
}

// missing returns the subset of ids that are not active.
func (cs *carrierSystem) missing(ids []int) []int {
	var out []int
	for _, id := range ids {
		if !cs.has(id) || !cs.get(id).Active {
			out = append(out, id)
		}
	}
	return out
}

// hookFree reports whether the inserting hook is available.
func (cs *carrierSystem) hookFree() bool { return cs.hookCarrier == 0 }

// hookBlocks reports whether the inserting hook occupies a racked slot
// at or left of the given racked slot, blocking carrier travel there.
func (cs *carrierSystem) hookBlocks(slot int) bool {
	return cs.hookSlot != nil && *cs.hookSlot <= slot
}

// position records that the given carriers passed a slot moving in a
// direction.
func (cs *carrierSystem) position(ids []int, slot int, dir Direction) {
	for _, id := range ids {
		c := cs.get(id)
		s := slot
		c.Position = &s
		c.Direction = dir
	}
}

// releaseHook frees the inserting hook regardless of its state.
func (cs *carrierSystem) releaseHook() {
	if cs.hookCarrier != 0 {
		cs.get(cs.hookCarrier).Hooked = false
	}
	cs.hookCarrier = 0
	cs.hookSlot = nil
	cs.hookPending = false
}

// deactivate parks a carrier on the grippers, clearing its position.
func (cs *carrierSystem) deactivate(id int) {
	c := cs.get(id)
	c.Active = false
	c.Hooked = false
	c.Position = nil
	c.Direction = ""
}

func (cs *carrierSystem) clone() *carrierSystem {
	c := &carrierSystem{
		carriers:    make([]CarrierState, len(cs.carriers)),
		hookCarrier: cs.hookCarrier,
		hookPending: cs.hookPending,
	}
	copy(c.carriers, cs.carriers)
	for i := range c.carriers {
		if p := cs.carriers[i].Position; p != nil {
			v := *p
			c.carriers[i].Position = &v
		}
	}
	if cs.hookSlot != nil {
		v := *cs.hookSlot
		c.hookSlot = &v
	}
	return c
}
