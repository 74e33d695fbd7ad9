package protocol

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// ValueEncoding names a scheme for packing item values into a string.
type ValueEncoding string

// EncodingBase64U32 packs each value as little-endian u32 chunks, base64 encoded.
const EncodingBase64U32 ValueEncoding = "base64(u32)"

// SupportedEncodings lists the encodings advertised in the greeting.
var SupportedEncodings = []ValueEncoding{EncodingBase64U32}

// IsSupported reports whether the encoding is known.
func (e ValueEncoding) IsSupported() bool {
	for _, s := range SupportedEncodings {
		if s == e {
			return true
		}
	}

	return false
}

// AppendValue appends value to dst as exactly ChunkCount(width) chunks,
// zero-extending short values and masking bits above width.
func AppendValue(dst []uint32, value []uint32, width int) []uint32 {
	count := model.ChunkCount(width)

	for i := range count {
		var chunk uint32
		if i < len(value) {
			chunk = value[i]
		}

		if i == count-1 && width%32 != 0 {
			chunk &= (uint32(1) << (width % 32)) - 1
		}

		dst = append(dst, chunk)
	}

	return dst
}

// EncodeValues packs chunks with the given encoding.
func EncodeValues(enc ValueEncoding, chunks []uint32) (string, error) {
	if enc != EncodingBase64U32 {
		return "", Errorf(KindUnsupportedEncoding, "item values encoding %q is not supported", enc)
	}

	raw := make([]byte, 4*len(chunks))
	for i, chunk := range chunks {
		binary.LittleEndian.PutUint32(raw[4*i:], chunk)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeValues unpacks an encoded value string into chunks.
func DecodeValues(enc ValueEncoding, encoded string) ([]uint32, error) {
	if enc != EncodingBase64U32 {
		return nil, Errorf(KindUnsupportedEncoding, "item values encoding %q is not supported", enc)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode item values: %w", err)
	}

	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("decode item values: %d bytes is not a multiple of 4", len(raw))
	}

	chunks := make([]uint32, len(raw)/4)
	for i := range chunks {
		chunks[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}

	return chunks, nil
}

// SplitValues cuts a chunk stream back into one value per width.
func SplitValues(chunks []uint32, widths []int) ([][]uint32, error) {
	values := make([][]uint32, 0, len(widths))

	for _, width := range widths {
		count := model.ChunkCount(width)
		if count > len(chunks) {
			return nil, fmt.Errorf("split item values: need %d chunks, have %d", count, len(chunks))
		}

		values = append(values, chunks[:count:count])
		chunks = chunks[count:]
	}

	if len(chunks) != 0 {
		return nil, fmt.Errorf("split item values: %d trailing chunks", len(chunks))
	}

	return values, nil
}
