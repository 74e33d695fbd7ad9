package model

import (
	"encoding/json"
	"fmt"
)

// NodeRow is the row index used for node values.
const NodeRow = -1

// ValueKey identifies one recorded value: a node, or one row of a memory.
type ValueKey struct {
	Path Path
	Row  int
}

// Designation selects an item for sampling. Memories are designated with an
// inclusive row range which may be descending.
type Designation struct {
	Path    Path
	HasRows bool
	First   int
	Last    int
}

// Keys expands the designation into value keys in wire order.
func (d Designation) Keys() []ValueKey {
	if !d.HasRows {
		return []ValueKey{{Path: d.Path, Row: NodeRow}}
	}

	step := 1
	if d.Last < d.First {
		step = -1
	}

	keys := make([]ValueKey, 0, abs(d.Last-d.First)+1)
	for row := d.First; ; row += step {
		keys = append(keys, ValueKey{Path: d.Path, Row: row})

		if row == d.Last {
			break
		}
	}

	return keys
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// MarshalJSON encodes [path] or [path, first, last].
func (d Designation) MarshalJSON() ([]byte, error) {
	if d.HasRows {
		return json.Marshal([]any{d.Path, d.First, d.Last})
	}

	return json.Marshal([]any{d.Path})
}

// UnmarshalJSON decodes [path] or [path, first, last].
func (d *Designation) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("designation: %w", err)
	}

	if len(parts) != 1 && len(parts) != 3 {
		return fmt.Errorf("designation: expected 1 or 3 elements, got %d", len(parts))
	}

	var out Designation
	if err := json.Unmarshal(parts[0], &out.Path); err != nil {
		return fmt.Errorf("designation path: %w", err)
	}

	if len(parts) == 3 {
		out.HasRows = true

		if err := json.Unmarshal(parts[1], &out.First); err != nil {
			return fmt.Errorf("designation first row: %w", err)
		}

		if err := json.Unmarshal(parts[2], &out.Last); err != nil {
			return fmt.Errorf("designation last row: %w", err)
		}
	}

	*d = out

	return nil
}

// ValueWidth pairs a value key with the bit width used to encode it.
type ValueWidth struct {
	Key   ValueKey
	Width int
}

// Sample is the set of values recorded at one simulation time.
type Sample struct {
	Time   TimeStamp
	Values map[ValueKey][]uint32
}
