// Package persistence defines how machine snapshots are serialized
// for storage. Stores accept a Codec so the wire format (plain JSON,
// encrypted) is chosen by the caller, not the backend.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/loomcraft/vbed/pkg/machine"
)

// Codec converts snapshots to and from stored bytes.
type Codec interface {
	Encode(snap machine.Snapshot) ([]byte, error)
	Decode(data []byte) (machine.Snapshot, error)
}

// JSON encodes snapshots as JSON.
type JSON struct {
	// Indent produces human-readable output, for file-backed stores.
	Indent bool
}

func (j JSON) Encode(snap machine.Snapshot) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(snap, "", "  ")
	}
	return json.Marshal(snap)
}

func (j JSON) Decode(data []byte) (machine.Snapshot, error) {
	var snap machine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return machine.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}
