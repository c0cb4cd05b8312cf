package machine

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned for an operation kind the validator
// does not recognize.
var ErrUnknownOperation = errors.New("machine: unknown operation kind")

// InvalidNeedleError reports a needle that does not exist on this
// machine configuration or cannot be used for the requested operation.
type InvalidNeedleError struct {
	Needle Needle
	Width  int
	Reason string
}

func (e *InvalidNeedleError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("machine: invalid needle %s: %s", e.Needle, e.Reason)
	}
	return fmt.Sprintf("machine: invalid needle %s: position outside [0, %d)", e.Needle, e.Width)
}

// NeedleOverloadError reports an operation that would exceed the
// maximum loop stack height on a needle.
type NeedleOverloadError struct {
	Needle Needle
	Held   int
	Adding int
	Max    int
}

func (e *NeedleOverloadError) Error() string {
	return fmt.Sprintf("machine: needle %s holds %d loops, adding %d exceeds maximum of %d",
		e.Needle, e.Held, e.Adding, e.Max)
}

// NoYarnInFeederError reports a carrier set that cannot feed yarn to
// the requested needle: a carrier is missing, inactive, or its path is
// blocked.
type NoYarnInFeederError struct {
	Carriers []int
	Missing  []int
	Reason   string
}

func (e *NoYarnInFeederError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("machine: carriers %v cannot feed yarn: %s", e.Carriers, e.Reason)
	}
	return fmt.Sprintf("machine: carriers %v are not active", e.Missing)
}

// MachineRackingError reports an operation that requires a racking
// value other than the one currently set.
type MachineRackingError struct {
	Current  int
	Required int
	Reason   string
}

func (e *MachineRackingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("machine: racking %d: %s", e.Current, e.Reason)
	}
	return fmt.Sprintf("machine: operation requires racking %d but machine is racked at %d", e.Required, e.Current)
}

// RackingOutOfRangeError reports a racking change beyond the configured
// bounds.
type RackingOutOfRangeError struct {
	Requested int
	Min, Max  int
}

func (e *RackingOutOfRangeError) Error() string {
	return fmt.Sprintf("machine: racking %d outside bounds [%d, %d]", e.Requested, e.Min, e.Max)
}

// InvalidTransferError reports a transfer or split whose destination is
// invalid or would overflow.
type InvalidTransferError struct {
	From   Needle
	To     Needle
	Reason string
}

func (e *InvalidTransferError) Error() string {
	return fmt.Sprintf("machine: cannot transfer %s to %s: %s", e.From, e.To, e.Reason)
}

// CarriageDirectionError reports an operation that would run the
// carriage backwards within the current pass.
type CarriageDirectionError struct {
	Direction Direction
	Slot      int
	Cursor    int
}

func (e *CarriageDirectionError) Error() string {
	return fmt.Sprintf("machine: slot %d is behind the carriage at slot %d in a %q pass",
		e.Slot, e.Cursor, string(e.Direction))
}
