package machine

import "sort"

// Direction is the direction of a carriage pass across the beds.
// Needles ascend left to right: Left -> 0 1 2 ... N <- Right.
type Direction string

const (
	// Leftward moves the carriage toward needle 0.
	Leftward Direction = "-"
	// Rightward moves the carriage toward needle N.
	Rightward Direction = "+"
)

// Opposite returns the reverse pass direction.
func (d Direction) Opposite() Direction {
	if d == Leftward {
		return Rightward
	}
	return Leftward
}

func (d Direction) valid() bool { return d == Leftward || d == Rightward }

// SortNeedles orders needles in carriage traversal order for this
// direction at the given racking. Needles sharing a racked slot keep
// front before back for rightward passes and back before front for
// leftward passes, matching all-needle carriage order.
func (d Direction) SortNeedles(needles []Needle, racking int) []Needle {
	sorted := make([]Needle, len(needles))
	copy(sorted, needles)
	ascending := d == Rightward
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].RackedPosition(racking), sorted[j].RackedPosition(racking)
		if pi != pj {
			if ascending {
				return pi < pj
			}
			return pi > pj
		}
		if ascending {
			return sorted[i].IsFront() && !sorted[j].IsFront()
		}
		return !sorted[i].IsFront() && sorted[j].IsFront()
	})
	return sorted
}
