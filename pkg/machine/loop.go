package machine

// LoopID identifies a loop for the lifetime of a machine instance.
// IDs ascend in formation order and are never reused, so callers can
// correlate loops across snapshots.
type LoopID int

// Loop is a unit of held yarn. Loops are created by knit, tuck and
// split operations and leave the machine when knitted through or
// dropped.
type Loop struct {
	// ID is the formation-ordered identity of the loop.
	ID LoopID `json:"id"`

	// Carriers lists the carriers whose yarn formed the loop.
	Carriers []int `json:"carriers"`
}
