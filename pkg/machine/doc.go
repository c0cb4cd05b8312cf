// Package machine models the state of a V-bed whole-garment knitting
// machine with sliders: two needle beds, the loops held on each needle,
// the yarn carrier system, bed racking and the carriage.
//
// The only mutation surface is Machine.Execute, which validates a single
// Operation against the committed state and either applies it atomically
// or returns a typed error leaving the state untouched. Everything else
// is a read accessor. The package performs no I/O and keeps no global
// state; a Machine value is owned by its caller.
package machine
