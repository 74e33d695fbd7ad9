// Package wire implements the NUL-delimited message framing of the debug protocol.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Delimiter terminates every frame on the wire.
const Delimiter byte = 0

// DefaultMaxFrameSize bounds the bytes buffered for a single frame.
const DefaultMaxFrameSize = 16 << 20

// ErrFraming is the sentinel for all framing errors.
var ErrFraming = errors.New("framing error")

// FramingError describes a frame that could not be turned into a message.
type FramingError struct {
	Reason string
	Size   int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: %s (%d bytes)", e.Reason, e.Size)
}

// Is makes errors.Is(err, ErrFraming) hold for every FramingError.
func (e *FramingError) Is(target error) bool {
	return target == ErrFraming
}

// Frame is one delimited unit extracted from the stream. Exactly one of
// Payload and Err is set.
type Frame struct {
	Payload []byte
	Err     error
}

// FrameBuffer accumulates stream bytes and splits them into frames.
// It is not safe for concurrent use.
type FrameBuffer struct {
	pending  []byte
	maxSize  int
	overflow bool
}

// NewFrameBuffer creates a FrameBuffer. A non-positive maxSize selects
// DefaultMaxFrameSize.
func NewFrameBuffer(maxSize int) *FrameBuffer {
	if maxSize <= 0 {
		maxSize = DefaultMaxFrameSize
	}

	return &FrameBuffer{maxSize: maxSize}
}

// Feed appends chunk and returns every frame completed by it, in order.
// Bytes after the last delimiter are retained for the next call.
func (b *FrameBuffer) Feed(chunk []byte) []Frame {
	var frames []Frame

	for len(chunk) > 0 {
		idx := bytes.IndexByte(chunk, Delimiter)
		if idx < 0 {
			b.appendPending(chunk)
			break
		}

		b.appendPending(chunk[:idx])
		chunk = chunk[idx+1:]

		frames = append(frames, b.complete())
	}

	return frames
}

// Pending reports how many bytes of an incomplete frame are buffered.
func (b *FrameBuffer) Pending() int {
	return len(b.pending)
}

func (b *FrameBuffer) appendPending(part []byte) {
	if b.overflow {
		return
	}

	if len(b.pending)+len(part) > b.maxSize {
		// Drop the oversized frame but keep scanning for its delimiter.
		b.overflow = true
		b.pending = b.pending[:0]

		return
	}

	b.pending = append(b.pending, part...)
}

func (b *FrameBuffer) complete() Frame {
	defer func() {
		b.pending = b.pending[:0]
		b.overflow = false
	}()

	if b.overflow {
		return Frame{Err: &FramingError{Reason: "frame exceeds maximum size", Size: b.maxSize}}
	}

	if !utf8.Valid(b.pending) {
		return Frame{Err: &FramingError{Reason: "payload is not valid UTF-8", Size: len(b.pending)}}
	}

	payload := make([]byte, len(b.pending))
	copy(payload, b.pending)

	return Frame{Payload: payload}
}

// Encode serializes v as compact JSON followed by the delimiter.
func Encode(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	return AppendDelimiter(payload), nil
}

// AppendDelimiter frames an already encoded payload.
func AppendDelimiter(payload []byte) []byte {
	framed := make([]byte, 0, len(payload)+1)
	framed = append(framed, payload...)

	return append(framed, Delimiter)
}
