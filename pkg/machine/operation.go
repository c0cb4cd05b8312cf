package machine

import (
	"fmt"
	"strings"
)

// OpKind tags the closed set of operation descriptors. Adding a kind
// means extending the validator's switch, which is exhaustive over this
// set.
type OpKind string

const (
	// OpKnit pulls new loops through the held loops on a needle,
	// dropping the old ones.
	OpKnit OpKind = "knit"
	// OpTuck adds new loops on top of the held loops.
	OpTuck OpKind = "tuck"
	// OpSplit knits on a needle while transferring its prior loops to
	// the aligned opposite-bed needle.
	OpSplit OpKind = "split"
	// OpMiss moves carriers past a needle without forming loops.
	OpMiss OpKind = "miss"
	// OpXfer moves a whole loop stack to the aligned opposite-bed
	// needle.
	OpXfer OpKind = "xfer"
	// OpDrop releases every loop on a needle off the machine.
	OpDrop OpKind = "drop"
	// OpRack changes the bed alignment offset.
	OpRack OpKind = "rack"
	// OpIn activates a carrier without the inserting hook.
	OpIn OpKind = "in"
	// OpInhook activates a carrier on the yarn inserting hook.
	OpInhook OpKind = "inhook"
	// OpReleasehook frees the inserting hook, leaving its carrier
	// active.
	OpReleasehook OpKind = "releasehook"
	// OpOut deactivates a carrier, leaving its yarn attached.
	OpOut OpKind = "out"
	// OpOuthook cuts a carrier's yarn with the inserting hook and
	// deactivates it.
	OpOuthook OpKind = "outhook"
)

// Operation is the tagged descriptor handed to Machine.Execute. Only
// the fields relevant to Kind are read; constructors below populate
// them correctly.
type Operation struct {
	Kind OpKind `json:"op" yaml:"op" mapstructure:"op"`

	// Needle is the primary needle for needle operations, and an
	// optional initial carrier position for in/inhook.
	Needle Needle `json:"needle,omitzero" yaml:"needle,omitempty" mapstructure:"needle"`

	// Target is the destination needle for split and xfer.
	Target Needle `json:"target,omitzero" yaml:"target,omitempty" mapstructure:"target"`

	// Carriers is the yarn carrier set for knit, tuck, split and miss.
	Carriers []int `json:"carriers,omitempty" yaml:"carriers,omitempty" mapstructure:"carriers"`

	// Carrier is the single carrier for in, inhook, out and outhook.
	Carrier int `json:"carrier,omitempty" yaml:"carrier,omitempty" mapstructure:"carrier"`

	// Direction is the carriage direction for explicit passes.
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty" mapstructure:"direction"`

	// Racking is the requested offset for rack operations.
	Racking int `json:"racking,omitempty" yaml:"racking,omitempty" mapstructure:"racking"`

	// AllNeedle requests quarter-pitch all-needle alignment with a rack
	// operation.
	AllNeedle bool `json:"all_needle,omitempty" yaml:"all_needle,omitempty" mapstructure:"all_needle"`
}

// Knit builds a knit descriptor.
func Knit(n Needle, carriers []int, dir Direction) Operation {
	return Operation{Kind: OpKnit, Needle: n, Carriers: carriers, Direction: dir}
}

// Tuck builds a tuck descriptor.
func Tuck(n Needle, carriers []int, dir Direction) Operation {
	return Operation{Kind: OpTuck, Needle: n, Carriers: carriers, Direction: dir}
}

// Split builds a split descriptor; target must be the needle aligned to
// n at the current racking.
func Split(n, target Needle, carriers []int, dir Direction) Operation {
	return Operation{Kind: OpSplit, Needle: n, Target: target, Carriers: carriers, Direction: dir}
}

// Miss builds a miss descriptor.
func Miss(n Needle, carriers []int, dir Direction) Operation {
	return Operation{Kind: OpMiss, Needle: n, Carriers: carriers, Direction: dir}
}

// Xfer builds a transfer descriptor; target must be aligned to n at the
// current racking.
func Xfer(n, target Needle) Operation {
	return Operation{Kind: OpXfer, Needle: n, Target: target}
}

// Drop builds a drop descriptor.
func Drop(n Needle) Operation {
	return Operation{Kind: OpDrop, Needle: n}
}

// SetRacking builds a rack descriptor.
func SetRacking(racking int) Operation {
	return Operation{Kind: OpRack, Racking: racking}
}

// SetAllNeedleRacking builds a rack descriptor with quarter-pitch
// all-needle alignment.
func SetAllNeedleRacking(racking int) Operation {
	return Operation{Kind: OpRack, Racking: racking, AllNeedle: true}
}

// BringIn builds an in descriptor activating a carrier with no known
// position.
func BringIn(carrier int) Operation {
	return Operation{Kind: OpIn, Carrier: carrier}
}

// BringInAt builds an in descriptor activating a carrier positioned at
// a needle moving in a direction.
func BringInAt(carrier int, n Needle, dir Direction) Operation {
	return Operation{Kind: OpIn, Carrier: carrier, Needle: n, Direction: dir}
}

// Inhook builds an inhook descriptor.
func Inhook(carrier int) Operation {
	return Operation{Kind: OpInhook, Carrier: carrier}
}

// Releasehook builds a releasehook descriptor.
func Releasehook() Operation {
	return Operation{Kind: OpReleasehook}
}

// Out builds an out descriptor.
func Out(carrier int) Operation {
	return Operation{Kind: OpOut, Carrier: carrier}
}

// Outhook builds an outhook descriptor.
func Outhook(carrier int) Operation {
	return Operation{Kind: OpOuthook, Carrier: carrier}
}

// String renders the operation roughly in knitout style, for logs.
func (o Operation) String() string {
	var b strings.Builder
	b.WriteString(string(o.Kind))
	if o.Direction != "" {
		fmt.Fprintf(&b, " %s", string(o.Direction))
	}
	if o.Needle != (Needle{}) {
		fmt.Fprintf(&b, " %s", o.Needle)
	}
	if o.Kind == OpSplit || o.Kind == OpXfer {
		fmt.Fprintf(&b, " %s", o.Target)
	}
	if len(o.Carriers) > 0 {
		fmt.Fprintf(&b, " %v", o.Carriers)
	}
	if o.Carrier != 0 {
		fmt.Fprintf(&b, " %d", o.Carrier)
	}
	if o.Kind == OpRack {
		fmt.Fprintf(&b, " %d", o.Racking)
		if o.AllNeedle {
			b.WriteString(" all-needle")
		}
	}
	return b.String()
}
