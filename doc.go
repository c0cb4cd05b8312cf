/*
Package vbed models a virtual V-bed knitting machine: two opposed
needle beds with optional slider needles, yarn carriers, a racking
offset and a carriage. The model validates every operation against the
machine state before applying it, so an accepted sequence is one a real
machine could execute.

The core state model lives in pkg/machine and has no I/O. This package
is the high-level entry point: it wires the machine to pattern parsing,
execution reporting and snapshot persistence.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/loomcraft/vbed"
	)

	func main() {
		src, err := os.ReadFile("swatch.yaml")
		if err != nil {
			log.Fatal(err)
		}

		sim, report, err := vbed.RunPattern(context.Background(), src)
		if err != nil {
			log.Fatal(err)
		}

		log.Printf("executed %d operations over %d passes", report.Executed, report.Passes)
		for _, n := range sim.Machine().HoldingNeedles() {
			log.Printf("%s holds %d loops", n, len(sim.Machine().LoopsAt(n)))
		}
	}
*/
package vbed
