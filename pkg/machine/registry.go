package machine

// registry is the bookkeeping layer for loops held on needles. It keeps
// an ordered stack per needle (index 0 is the oldest loop, the last
// element is top of stack) and enforces structural invariants only;
// hardware legality is the validator's job.
type registry struct {
	stacks map[Needle][]Loop
}

func newRegistry() *registry {
	return &registry{stacks: make(map[Needle][]Loop)}
}

// stack returns the held loops on a needle in push order.
func (r *registry) stack(n Needle) []Loop {
	return r.stacks[n]
}

// height returns the stack height of a needle.
func (r *registry) height(n Needle) int {
	return len(r.stacks[n])
}

// push places a loop on top of the needle's stack.
func (r *registry) push(n Needle, l Loop) {
	r.stacks[n] = append(r.stacks[n], l)
}

// clear removes and returns the whole stack on a needle.
func (r *registry) clear(n Needle) []Loop {
	loops := r.stacks[n]
	delete(r.stacks, n)
	return loops
}

// transfer moves the entire stack from one needle onto another,
// preserving order beneath any loops the destination already holds.
func (r *registry) transfer(from, to Needle) {
	moved := r.clear(from)
	if len(moved) == 0 {
		return
	}
	r.stacks[to] = append(r.stacks[to], moved...)
}

// holdingNeedles returns every needle with at least one loop. Order is
// unspecified; callers sort as needed.
func (r *registry) holdingNeedles() []Needle {
	needles := make([]Needle, 0, len(r.stacks))
	for n := range r.stacks {
		needles = append(needles, n)
	}
	return needles
}

// slidersClear reports whether no slider needle holds a loop. Knit,
// tuck and split are blocked while sliders are occupied.
func (r *registry) slidersClear() bool {
	for n := range r.stacks {
		if n.Slider {
			return false
		}
	}
	return true
}

func (r *registry) clone() *registry {
	c := newRegistry()
	for n, loops := range r.stacks {
		c.stacks[n] = append([]Loop(nil), loops...)
	}
	return c
}
