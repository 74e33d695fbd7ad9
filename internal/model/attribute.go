package model

import "encoding/json"

// AttributeType is the value kind of an attribute.
type AttributeType string

const (
	// AttributeUnsignedInt holds a non-negative integer.
	AttributeUnsignedInt AttributeType = "unsigned_int"
	// AttributeSignedInt holds a signed integer.
	AttributeSignedInt AttributeType = "signed_int"
	// AttributeString holds a string.
	AttributeString AttributeType = "string"
	// AttributeBool holds a boolean.
	AttributeBool AttributeType = "bool"
	// AttributeDouble holds a floating point value.
	AttributeDouble AttributeType = "double"
)

// Attribute is simulator-specific metadata attached to a scope site or item.
// Value is any JSON-representable payload.
type Attribute struct {
	Type  AttributeType `json:"type"`
	Value any           `json:"value"`
}

// Attributes maps attribute names to typed values.
type Attributes map[string]Attribute

// Clone returns a shallow copy that never aliases the receiver.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}

	return out
}

// MarshalJSON encodes a nil map as an empty object.
func (a Attributes) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(map[string]Attribute(a))
}
