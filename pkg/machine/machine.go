package machine

import "sync"

// Machine is a virtual V-bed knitting machine. All mutation goes
// through Execute; every other method is a read accessor. A Machine is
// safe for use by a single goroutine at a time; Execute serializes
// concurrent callers with an internal mutex so no caller can observe a
// partially applied operation.
type Machine struct {
	mu sync.Mutex

	cfg       Config
	racking   int
	allNeedle bool
	reg       *registry
	carriers  *carrierSystem
	car       carriage
	nextLoop  LoopID
}

// New creates an empty machine from the given configuration.
func New(cfg Config) (*Machine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Machine{
		cfg:      cfg,
		reg:      newRegistry(),
		carriers: newCarrierSystem(cfg.Carriers),
		nextLoop: 1,
	}, nil
}

// Config returns the machine's configuration.
func (m *Machine) Config() Config { return m.cfg }

// Width returns the needle count per bed.
func (m *Machine) Width() int { return m.cfg.Width }

// Execute validates op against the committed state and applies it
// atomically. On error the machine is unchanged.
func (m *Machine) Execute(op Operation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	apply, err := m.validate(op)
	if err != nil {
		return err
	}
	apply()
	return nil
}

// Racking returns the current signed bed offset.
func (m *Machine) Racking() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.racking
}

// AllNeedleRacking reports whether the beds hold quarter-pitch
// all-needle alignment.
func (m *Machine) AllNeedleRacking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allNeedle
}

// NeedleExists reports whether the needle is addressable on this
// machine.
func (m *Machine) NeedleExists(n Needle) bool {
	return m.checkNeedle(n) == nil
}

// LoopsAt returns a copy of the loop stack held on a needle, oldest
// first.
func (m *Machine) LoopsAt(n Needle) []Loop {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Loop(nil), m.reg.stack(n)...)
}

// HoldingNeedles returns every needle holding at least one loop, in
// bed-then-position order.
func (m *Machine) HoldingNeedles() []Needle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedHoldingNeedles(m.reg)
}

// SlidersClear reports whether no slider needle holds loops.
func (m *Machine) SlidersClear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.slidersClear()
}

// CarrierState returns the state of a carrier by its 1-based id.
func (m *Machine) CarrierState(id int) (CarrierState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.carriers.has(id) {
		return CarrierState{}, &NoYarnInFeederError{Carriers: []int{id}, Reason: "no such carrier"}
	}
	c := *m.carriers.get(id)
	if c.Position != nil {
		v := *c.Position
		c.Position = &v
	}
	return c, nil
}

// ActiveCarriers returns the ids of all active carriers in ascending
// order.
func (m *Machine) ActiveCarriers() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int
	for _, c := range m.carriers.carriers {
		if c.Active {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Carriage returns the carriage position and last pass direction.
func (m *Machine) Carriage() CarriageState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.car.state
	if s.Position != nil {
		v := *s.Position
		s.Position = &v
	}
	return s
}

// AlignedNeedle returns the opposite-bed needle that n transfers to at
// the current racking.
func (m *Machine) AlignedNeedle(n Needle, toSlider bool) Needle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return AlignedNeedle(n, m.racking, toSlider)
}

// probeKinds is the order LegalOperations reports operation kinds in.
var probeKinds = []OpKind{OpKnit, OpTuck, OpSplit, OpMiss, OpXfer, OpDrop}

// LegalOperations enumerates the needle operation kinds that would
// currently be accepted at n. It is a pure probe: nothing is mutated.
// Yarn operations probe with the active carrier set and the current
// pass direction (rightward before the first pass).
func (m *Machine) LegalOperations(n Needle) []OpKind {
	m.mu.Lock()
	defer m.mu.Unlock()

	var carriers []int
	for _, c := range m.carriers.carriers {
		if c.Active {
			carriers = append(carriers, c.ID)
		}
	}
	dir := m.car.state.Direction
	if dir == "" {
		dir = Rightward
	}
	target := AlignedNeedle(n, m.racking, false)

	var legal []OpKind
	for _, kind := range probeKinds {
		var op Operation
		switch kind {
		case OpKnit:
			op = Knit(n, carriers, dir)
		case OpTuck:
			op = Tuck(n, carriers, dir)
		case OpSplit:
			op = Split(n, target, carriers, dir)
		case OpMiss:
			op = Miss(n, carriers, dir)
		case OpXfer:
			op = Xfer(n, target)
		case OpDrop:
			op = Drop(n)
		}
		if _, err := m.validate(op); err == nil {
			legal = append(legal, kind)
		}
	}
	return legal
}
