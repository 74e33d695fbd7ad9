// Package model defines the design hierarchy and simulation state observed by a debugger.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ItemKind discriminates the item variants.
type ItemKind string

const (
	// ItemNode is a signal, register or port.
	ItemNode ItemKind = "node"
	// ItemMemory is an addressable array of rows.
	ItemMemory ItemKind = "memory"
)

// ErrInvalidItem is returned when an item violates its shape invariants.
var ErrInvalidItem = errors.New("invalid item")

// Item is a named, debuggable value owned by a scope.
// The set of implementations is closed: Node and Memory.
type Item interface {
	Kind() ItemKind
	// BitWidth is the number of bits of one value (one row for memories).
	BitWidth() int
	// Rows is 1 for nodes and the depth for memories.
	Rows() int
	Validate() error
	item()
}

// Node is a signal, register or port.
type Node struct {
	Src        string     `json:"src"`
	Width      int        `json:"width"`
	LSBAt      int        `json:"lsb_at"`
	Settable   bool       `json:"settable"`
	Input      bool       `json:"input"`
	Output     bool       `json:"output"`
	Attributes Attributes `json:"attributes"`
}

// Memory is an array of equally wide rows.
type Memory struct {
	Src        *string    `json:"src"`
	Width      int        `json:"width"`
	LSBAt      int        `json:"lsb_at"`
	Depth      int        `json:"depth"`
	ZeroAt     int        `json:"zero_at"`
	Settable   bool       `json:"settable"`
	Attributes Attributes `json:"attributes"`
}

func (Node) item()   {}
func (Memory) item() {}

// Kind implements Item.
func (Node) Kind() ItemKind { return ItemNode }

// Kind implements Item.
func (Memory) Kind() ItemKind { return ItemMemory }

// BitWidth implements Item.
func (n Node) BitWidth() int { return n.Width }

// BitWidth implements Item.
func (mem Memory) BitWidth() int { return mem.Width }

// Rows implements Item.
func (Node) Rows() int { return 1 }

// Rows implements Item.
func (mem Memory) Rows() int { return mem.Depth }

// Validate implements Item.
func (n Node) Validate() error {
	if n.Width <= 0 {
		return fmt.Errorf("%w: node width %d", ErrInvalidItem, n.Width)
	}

	if n.Src == "" {
		return fmt.Errorf("%w: node without source location", ErrInvalidItem)
	}

	return nil
}

// Validate implements Item.
func (mem Memory) Validate() error {
	if mem.Width <= 0 {
		return fmt.Errorf("%w: memory width %d", ErrInvalidItem, mem.Width)
	}

	if mem.Depth <= 0 {
		return fmt.Errorf("%w: memory depth %d", ErrInvalidItem, mem.Depth)
	}

	return nil
}

// MarshalJSON adds the "type" tag.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node

	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		plain
	}{ItemNode, plain(n)})
}

// MarshalJSON adds the "type" tag.
func (mem Memory) MarshalJSON() ([]byte, error) {
	type plain Memory

	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		plain
	}{ItemMemory, plain(mem)})
}

// ChunkCount is the number of 32-bit words needed to hold width bits.
func ChunkCount(width int) int {
	return (width + 31) / 32
}

// Items maps item paths to items.
type Items map[Path]Item

// UnmarshalJSON decodes the tagged item variants.
func (items *Items) UnmarshalJSON(data []byte) error {
	var raw map[Path]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Items, len(raw))

	for path, body := range raw {
		item, err := UnmarshalItem(body)
		if err != nil {
			return fmt.Errorf("item %q: %w", path, err)
		}

		out[path] = item
	}

	*items = out

	return nil
}

// UnmarshalItem decodes one tagged item.
func UnmarshalItem(data []byte) (Item, error) {
	var tag struct {
		Type ItemKind `json:"type"`
	}

	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case ItemNode:
		var n Node
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}

		return n, nil
	case ItemMemory:
		var mem Memory
		if err := json.Unmarshal(data, &mem); err != nil {
			return nil, err
		}

		return mem, nil
	default:
		return nil, fmt.Errorf("%w: unknown item type %q", ErrInvalidItem, tag.Type)
	}
}
