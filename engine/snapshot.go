package engine

import (
	"encoding/json"
	"fmt"
)

// MarshalSnapshot serializes the complete round state. The snapshot
// round-trips exactly: decoding it yields a state identical to the
// source, including the RNG stream, so a persisted round resumes
// deterministically.
func (g *RoundState) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(g)
}

// UnmarshalSnapshot restores a round state from a snapshot produced by
// MarshalSnapshot.
func UnmarshalSnapshot(blob []byte) (*RoundState, error) {
	var g RoundState
	if err := json.Unmarshal(blob, &g); err != nil {
		return nil, fmt.Errorf("decode round snapshot: %w", err)
	}
	return &g, nil
}
