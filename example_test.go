package vbed_test

import (
	"context"
	"fmt"
	"log"

	"github.com/loomcraft/vbed"
	"github.com/loomcraft/vbed/pkg/machine"
)

// ExampleRunPattern runs a small stockinette strip from a YAML
// document and inspects the resulting fabric.
func ExampleRunPattern() {
	src := []byte(`
name: mini-swatch
machine:
  width: 8
ops:
  - {op: inhook, carrier: 1}
  - {op: tuck, needle: f5, carriers: [1], direction: "-"}
  - {op: tuck, needle: f3, carriers: [1], direction: "-"}
  - {op: releasehook}
  - {op: knit, needle: f3, carriers: [1], direction: "+"}
  - {op: knit, needle: f5, carriers: [1], direction: "+"}
  - {op: outhook, carrier: 1}
`)
	sim, report, err := vbed.RunPattern(context.Background(), src)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("executed %d operations in %d passes\n", report.Executed, report.Passes)
	fmt.Printf("needles holding loops: %d\n", len(sim.Machine().HoldingNeedles()))
	// Output:
	// executed 7 operations in 2 passes
	// needles holding loops: 2
}

// ExampleNew drives the machine directly with typed operations,
// transferring a loop from the front bed to the back bed.
func ExampleNew() {
	cfg := machine.DefaultConfig()
	cfg.Width = 6

	sim, err := vbed.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ops := []machine.Operation{
		machine.BringInAt(1, machine.FrontNeedle(0), machine.Rightward),
		machine.Tuck(machine.FrontNeedle(2), []int{1}, machine.Rightward),
		machine.Xfer(machine.FrontNeedle(2), machine.BackNeedle(2)),
		machine.Out(1),
	}
	for _, op := range ops {
		if err := sim.Execute(op); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("back needle 2 holds %d loop(s)\n", len(sim.Machine().LoopsAt(machine.BackNeedle(2))))
	fmt.Printf("front needle 2 holds %d loop(s)\n", len(sim.Machine().LoopsAt(machine.FrontNeedle(2))))
	// Output:
	// back needle 2 holds 1 loop(s)
	// front needle 2 holds 0 loop(s)
}
