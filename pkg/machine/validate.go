package machine

import "fmt"

// validate is the state-transition rules engine. It checks op against
// the committed state and returns the closure that applies its delta.
// Validation never mutates: every rejected operation leaves the machine
// exactly as it was. Callers hold m.mu.
func (m *Machine) validate(op Operation) (func(), error) {
	switch op.Kind {
	case OpKnit:
		return m.validateKnit(op)
	case OpTuck:
		return m.validateTuck(op)
	case OpSplit:
		return m.validateSplit(op)
	case OpMiss:
		return m.validateMiss(op)
	case OpXfer:
		return m.validateXfer(op)
	case OpDrop:
		return m.validateDrop(op)
	case OpRack:
		return m.validateRack(op)
	case OpIn, OpInhook:
		return m.validateBringIn(op)
	case OpReleasehook:
		return func() { m.carriers.releaseHook() }, nil
	case OpOut, OpOuthook:
		return m.validateOut(op)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Kind)
	}
}

// checkNeedle verifies the needle is addressable on this configuration.
func (m *Machine) checkNeedle(n Needle) error {
	if n.Bed != Front && n.Bed != Back {
		return &InvalidNeedleError{Needle: n, Width: m.cfg.Width, Reason: "bed must be front or back"}
	}
	if n.Position < 0 || n.Position >= m.cfg.Width {
		return &InvalidNeedleError{Needle: n, Width: m.cfg.Width}
	}
	if n.Slider && !m.cfg.HasSliders {
		return &InvalidNeedleError{Needle: n, Width: m.cfg.Width, Reason: "machine has no sliders"}
	}
	return nil
}

// checkYarn verifies the carrier set can feed yarn to needle n moving
// in dir: carriers exist and are active, the inserting hook does not
// block the slot, and a pending inhook starts leftward.
func (m *Machine) checkYarn(n Needle, ids []int, dir Direction) error {
	if len(ids) == 0 {
		return &NoYarnInFeederError{Reason: "empty carrier set"}
	}
	for _, id := range ids {
		if !m.carriers.has(id) {
			return &NoYarnInFeederError{Carriers: ids, Missing: []int{id}, Reason: fmt.Sprintf("no such carrier %d", id)}
		}
	}
	if missing := m.carriers.missing(ids); len(missing) > 0 {
		return &NoYarnInFeederError{Carriers: ids, Missing: missing}
	}
	if m.carriers.hookBlocks(n.RackedPosition(m.racking)) {
		return &NoYarnInFeederError{
			Carriers: ids,
			Reason:   fmt.Sprintf("inserting hook parked at slot %d blocks needle %s", *m.carriers.hookSlot, n),
		}
	}
	if m.carriers.hookPending && dir != Leftward {
		return &NoYarnInFeederError{Carriers: ids, Reason: "inserting hook must begin in a leftward pass"}
	}
	return nil
}

// checkPass enforces directional monotonicity within the current
// carriage pass, comparing racked slots.
func (m *Machine) checkPass(n Needle, dir Direction) error {
	if !dir.valid() {
		return fmt.Errorf("machine: operation requires a direction (+ or -)")
	}
	slot := n.RackedPosition(m.racking)
	if m.car.passViolation(slot, dir) {
		return &CarriageDirectionError{Direction: dir, Slot: slot, Cursor: m.car.cursor}
	}
	return nil
}

// checkLoopFormation groups the rules shared by knit, tuck and split:
// main needles only, sliders clear, live yarn path, monotone pass.
func (m *Machine) checkLoopFormation(op Operation) error {
	if err := m.checkNeedle(op.Needle); err != nil {
		return err
	}
	if op.Needle.Slider {
		return &InvalidNeedleError{Needle: op.Needle, Width: m.cfg.Width, Reason: "slider needles cannot form new loops"}
	}
	if !m.reg.slidersClear() {
		return &InvalidNeedleError{Needle: op.Needle, Width: m.cfg.Width, Reason: "sliders are not clear"}
	}
	if err := m.checkYarn(op.Needle, op.Carriers, op.Direction); err != nil {
		return err
	}
	return m.checkPass(op.Needle, op.Direction)
}

// formLoop builds the loop a yarn operation would create. The loop id
// is only consumed when the delta commits.
func (m *Machine) formLoop(op Operation) Loop {
	return Loop{ID: m.nextLoop, Carriers: append([]int(nil), op.Carriers...)}
}

// commitYarnPass applies the carrier, inserting hook and carriage
// movement shared by every explicit yarn pass.
func (m *Machine) commitYarnPass(op Operation) {
	m.carriers.position(op.Carriers, op.Needle.Position, op.Direction)
	if m.carriers.hookPending {
		// The hook parks one racked slot right of the first loop it
		// feeds, so blocking works across beds at any racking.
		slot := op.Needle.RackedPosition(m.racking) + 1
		m.carriers.hookSlot = &slot
		m.carriers.hookPending = false
	}
	m.car.moveInDirection(op.Needle.RackedPosition(m.racking), op.Direction)
}

func (m *Machine) validateKnit(op Operation) (func(), error) {
	if err := m.checkLoopFormation(op); err != nil {
		return nil, err
	}
	loop := m.formLoop(op)
	return func() {
		m.reg.clear(op.Needle) // knitted-through loops leave the machine
		m.reg.push(op.Needle, loop)
		m.nextLoop++
		m.commitYarnPass(op)
	}, nil
}

func (m *Machine) validateTuck(op Operation) (func(), error) {
	if err := m.checkLoopFormation(op); err != nil {
		return nil, err
	}
	if held := m.reg.height(op.Needle); held+1 > m.cfg.MaxLoopHold {
		return nil, &NeedleOverloadError{Needle: op.Needle, Held: held, Adding: 1, Max: m.cfg.MaxLoopHold}
	}
	loop := m.formLoop(op)
	return func() {
		m.reg.push(op.Needle, loop)
		m.nextLoop++
		m.commitYarnPass(op)
	}, nil
}

func (m *Machine) validateSplit(op Operation) (func(), error) {
	if err := m.checkLoopFormation(op); err != nil {
		return nil, err
	}
	if err := m.checkNeedle(op.Target); err != nil {
		return nil, err
	}
	if op.Target.Slider {
		return nil, &InvalidTransferError{From: op.Needle, To: op.Target, Reason: "split cannot target a slider"}
	}
	if m.racking != 0 && !m.cfg.AllowRackedSplits {
		return nil, &MachineRackingError{Current: m.racking, Required: 0, Reason: "split requires racking 0"}
	}
	if AlignedNeedle(op.Needle, m.racking, false) != op.Target {
		return nil, &InvalidTransferError{
			From: op.Needle, To: op.Target,
			Reason: fmt.Sprintf("needles are not aligned at racking %d", m.racking),
		}
	}
	if held, moving := m.reg.height(op.Target), m.reg.height(op.Needle); held+moving > m.cfg.MaxLoopHold {
		return nil, &InvalidTransferError{From: op.Needle, To: op.Target, Reason: "target needle would overflow"}
	}
	loop := m.formLoop(op)
	return func() {
		m.reg.transfer(op.Needle, op.Target)
		m.reg.push(op.Needle, loop)
		m.nextLoop++
		m.commitYarnPass(op)
	}, nil
}

func (m *Machine) validateMiss(op Operation) (func(), error) {
	if err := m.checkNeedle(op.Needle); err != nil {
		return nil, err
	}
	if err := m.checkYarn(op.Needle, op.Carriers, op.Direction); err != nil {
		return nil, err
	}
	if err := m.checkPass(op.Needle, op.Direction); err != nil {
		return nil, err
	}
	return func() {
		m.carriers.position(op.Carriers, op.Needle.Position, op.Direction)
		m.car.moveInDirection(op.Needle.RackedPosition(m.racking), op.Direction)
	}, nil
}

func (m *Machine) validateXfer(op Operation) (func(), error) {
	if err := m.checkNeedle(op.Needle); err != nil {
		return nil, err
	}
	if err := m.checkNeedle(op.Target); err != nil {
		return nil, err
	}
	if op.Needle.Bed == op.Target.Bed {
		return nil, &InvalidTransferError{From: op.Needle, To: op.Target, Reason: "needles are on the same bed"}
	}
	if op.Needle.Slider && op.Target.Slider {
		return nil, &InvalidTransferError{From: op.Needle, To: op.Target, Reason: "cannot transfer slider to slider"}
	}
	if AlignedNeedle(op.Needle, m.racking, op.Target.Slider) != op.Target {
		return nil, &InvalidTransferError{
			From: op.Needle, To: op.Target,
			Reason: fmt.Sprintf("needles are not aligned at racking %d", m.racking),
		}
	}
	// A loop lives on at most one of a slider/main pair at a time.
	var pair Needle
	if op.Target.Slider {
		pair = op.Target.Main()
	} else {
		pair = op.Target.SliderPair()
	}
	if m.cfg.HasSliders && m.reg.height(pair) > 0 {
		return nil, &InvalidTransferError{From: op.Needle, To: op.Target, Reason: fmt.Sprintf("paired needle %s holds loops", pair)}
	}
	if held, moving := m.reg.height(op.Target), m.reg.height(op.Needle); held+moving > m.cfg.MaxLoopHold {
		return nil, &InvalidTransferError{From: op.Needle, To: op.Target, Reason: "target needle would overflow"}
	}
	return func() {
		m.reg.transfer(op.Needle, op.Target)
		// Transfers reposition the carriage without a direction and do
		// not advance the pass cursor.
		m.car.moveTo(op.Needle.RackedPosition(m.racking))
	}, nil
}

func (m *Machine) validateDrop(op Operation) (func(), error) {
	if err := m.checkNeedle(op.Needle); err != nil {
		return nil, err
	}
	return func() {
		m.reg.clear(op.Needle)
		m.car.moveTo(op.Needle.RackedPosition(m.racking))
	}, nil
}

func (m *Machine) validateRack(op Operation) (func(), error) {
	if op.Racking < m.cfg.MinRacking || op.Racking > m.cfg.MaxRacking {
		return nil, &RackingOutOfRangeError{Requested: op.Racking, Min: m.cfg.MinRacking, Max: m.cfg.MaxRacking}
	}
	return func() {
		m.racking = op.Racking
		m.allNeedle = op.AllNeedle
	}, nil
}

func (m *Machine) validateBringIn(op Operation) (func(), error) {
	if !m.carriers.has(op.Carrier) {
		return nil, &NoYarnInFeederError{Carriers: []int{op.Carrier}, Reason: fmt.Sprintf("no such carrier %d", op.Carrier)}
	}
	hasPos := op.Needle != (Needle{})
	if hasPos {
		if err := m.checkNeedle(op.Needle); err != nil {
			return nil, err
		}
		if !op.Direction.valid() {
			return nil, fmt.Errorf("machine: bringing a carrier in at a needle requires a direction")
		}
	}
	hook := op.Kind == OpInhook
	if hook && !m.carriers.hookFree() && m.carriers.hookCarrier != op.Carrier {
		return nil, &NoYarnInFeederError{Carriers: []int{op.Carrier}, Reason: "inserting hook is in use"}
	}
	return func() {
		c := m.carriers.get(op.Carrier)
		c.Active = true
		if hasPos {
			m.carriers.position([]int{op.Carrier}, op.Needle.Position, op.Direction)
		}
		if hook {
			c.Hooked = true
			m.carriers.hookCarrier = op.Carrier
			m.carriers.hookSlot = nil
			m.carriers.hookPending = true
		}
	}, nil
}

func (m *Machine) validateOut(op Operation) (func(), error) {
	if !m.carriers.has(op.Carrier) {
		return nil, &NoYarnInFeederError{Carriers: []int{op.Carrier}, Reason: fmt.Sprintf("no such carrier %d", op.Carrier)}
	}
	if m.carriers.get(op.Carrier).Hooked {
		return nil, &NoYarnInFeederError{Carriers: []int{op.Carrier}, Reason: "carrier is on the inserting hook; releasehook first"}
	}
	if op.Kind == OpOuthook && !m.carriers.hookFree() {
		return nil, &NoYarnInFeederError{Carriers: []int{op.Carrier}, Reason: "inserting hook is in use"}
	}
	return func() { m.carriers.deactivate(op.Carrier) }, nil
}
