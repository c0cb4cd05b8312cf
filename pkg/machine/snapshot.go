package machine

import (
	"fmt"
	"sort"
)

// NeedleState pairs a needle with the loops it holds, oldest first.
type NeedleState struct {
	Needle Needle `json:"needle"`
	Loops  []Loop `json:"loops"`
}

// Snapshot is a full value copy of a machine's state, suitable for
// persistence. Restore rebuilds an equivalent machine from it.
type Snapshot struct {
	Config      Config         `json:"config"`
	Racking     int            `json:"racking"`
	AllNeedle   bool           `json:"all_needle,omitempty"`
	Needles     []NeedleState  `json:"needles"`
	Carriers    []CarrierState `json:"carriers"`
	Carriage    CarriageState  `json:"carriage"`
	PassCursor  int            `json:"pass_cursor,omitempty"`
	HookCarrier int            `json:"hook_carrier,omitempty"`
	HookSlot    *int           `json:"hook_slot,omitempty"`
	HookPending bool           `json:"hook_pending,omitempty"`
	NextLoopID  LoopID         `json:"next_loop_id"`
}

// Snapshot captures the current state as an independent value.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg := m.reg.clone()
	carriers := m.carriers.clone()
	car := m.car.clone()

	var needles []NeedleState
	for _, n := range sortedHoldingNeedles(reg) {
		needles = append(needles, NeedleState{Needle: n, Loops: reg.stacks[n]})
	}
	return Snapshot{
		Config:      m.cfg,
		Racking:     m.racking,
		AllNeedle:   m.allNeedle,
		Needles:     needles,
		Carriers:    carriers.carriers,
		Carriage:    car.state,
		PassCursor:  car.cursor,
		HookCarrier: carriers.hookCarrier,
		HookSlot:    carriers.hookSlot,
		HookPending: carriers.hookPending,
		NextLoopID:  m.nextLoop,
	}
}

// Clone returns a deep copy of the snapshot sharing no mutable state
// with the original.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Needles != nil {
		out.Needles = make([]NeedleState, len(s.Needles))
		for i, ns := range s.Needles {
			out.Needles[i] = NeedleState{Needle: ns.Needle, Loops: cloneLoops(ns.Loops)}
		}
	}
	if s.Carriers != nil {
		out.Carriers = make([]CarrierState, len(s.Carriers))
		for i, c := range s.Carriers {
			if c.Position != nil {
				v := *c.Position
				c.Position = &v
			}
			out.Carriers[i] = c
		}
	}
	if s.Carriage.Position != nil {
		v := *s.Carriage.Position
		out.Carriage.Position = &v
	}
	if s.HookSlot != nil {
		v := *s.HookSlot
		out.HookSlot = &v
	}
	return out
}

func cloneLoops(loops []Loop) []Loop {
	if loops == nil {
		return nil
	}
	out := make([]Loop, len(loops))
	for i, l := range loops {
		l.Carriers = append([]int(nil), l.Carriers...)
		out[i] = l
	}
	return out
}

// Restore rebuilds a machine from a snapshot.
func Restore(s Snapshot) (*Machine, error) {
	m, err := New(s.Config)
	if err != nil {
		return nil, err
	}
	if s.Racking < s.Config.MinRacking || s.Racking > s.Config.MaxRacking {
		return nil, &RackingOutOfRangeError{Requested: s.Racking, Min: s.Config.MinRacking, Max: s.Config.MaxRacking}
	}
	m.racking = s.Racking
	m.allNeedle = s.AllNeedle
	for _, ns := range s.Needles {
		if err := m.checkNeedle(ns.Needle); err != nil {
			return nil, err
		}
		if len(ns.Loops) > s.Config.MaxLoopHold {
			return nil, &NeedleOverloadError{Needle: ns.Needle, Held: len(ns.Loops), Max: s.Config.MaxLoopHold}
		}
		m.reg.stacks[ns.Needle] = cloneLoops(ns.Loops)
	}
	if len(s.Carriers) != s.Config.Carriers {
		return nil, fmt.Errorf("machine: snapshot has %d carriers, config expects %d", len(s.Carriers), s.Config.Carriers)
	}
	for i, c := range s.Carriers {
		if c.ID != i+1 {
			return nil, fmt.Errorf("machine: snapshot carrier at index %d has id %d, want %d", i, c.ID, i+1)
		}
		if c.Position != nil {
			if *c.Position < 0 || *c.Position >= s.Config.Width {
				return nil, fmt.Errorf("machine: snapshot carrier %d at slot %d, outside bed [0, %d)", c.ID, *c.Position, s.Config.Width)
			}
			v := *c.Position
			c.Position = &v
		}
		m.carriers.carriers[i] = c
	}
	m.carriers.hookCarrier = s.HookCarrier
	if s.HookSlot != nil {
		v := *s.HookSlot
		m.carriers.hookSlot = &v
	}
	m.carriers.hookPending = s.HookPending
	m.car.state = s.Carriage
	if s.Carriage.Position != nil {
		v := *s.Carriage.Position
		m.car.state.Position = &v
	}
	m.car.cursor = s.PassCursor
	if s.NextLoopID > 0 {
		m.nextLoop = s.NextLoopID
	}
	return m, nil
}

func sortedHoldingNeedles(r *registry) []Needle {
	needles := r.holdingNeedles()
	sort.Slice(needles, func(i, j int) bool { return needleLess(needles[i], needles[j]) })
	return needles
}

// needleLess orders by bed (front first), then position, main before
// slider.
func needleLess(a, b Needle) bool {
	if a.Bed != b.Bed {
		return a.Bed == Front
	}
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	return !a.Slider && b.Slider
}
