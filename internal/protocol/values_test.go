package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendValue(t *testing.T) {
	tests := []struct {
		name  string
		value []uint32
		width int
		want  []uint32
	}{
		{"single bit", []uint32{1}, 1, []uint32{1}},
		{"masks high bits", []uint32{0xff}, 4, []uint32{0xf}},
		{"full chunk", []uint32{0xffffffff}, 32, []uint32{0xffffffff}},
		{"zero extends", []uint32{7}, 40, []uint32{7, 0}},
		{"masks last chunk", []uint32{1, 0xffffffff}, 33, []uint32{1, 1}},
		{"missing value", nil, 64, []uint32{0, 0}},
		{"zero width", []uint32{5}, 0, []uint32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendValue([]uint32{}, tt.value, tt.width)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeValues(t *testing.T) {
	encoded, err := EncodeValues(EncodingBase64U32, []uint32{1})
	require.NoError(t, err)
	assert.Equal(t, "AQAAAA==", encoded)

	encoded, err = EncodeValues(EncodingBase64U32, []uint32{0x04030201, 0xdeadbeef})
	require.NoError(t, err)
	assert.Equal(t, "AQIDBO++rd4=", encoded)

	encoded, err = EncodeValues(EncodingBase64U32, nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	_, err = EncodeValues("hex", []uint32{1})
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestDecodeValues(t *testing.T) {
	chunks, err := DecodeValues(EncodingBase64U32, "AQIDBO++rd4=")
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x04030201, 0xdeadbeef}, chunks)

	_, err = DecodeValues(EncodingBase64U32, "AQID")
	assert.Error(t, err)

	_, err = DecodeValues(EncodingBase64U32, "!!!")
	assert.Error(t, err)

	_, err = DecodeValues("hex", "")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestSplitValues(t *testing.T) {
	values, err := SplitValues([]uint32{1, 2, 3, 4}, []int{1, 64, 8})
	require.NoError(t, err)
	assert.Equal(t, [][]uint32{{1}, {2, 3}, {4}}, values)

	_, err = SplitValues([]uint32{1}, []int{33})
	assert.Error(t, err)

	_, err = SplitValues([]uint32{1, 2}, []int{8})
	assert.Error(t, err)
}

func TestValueEncoding_IsSupported(t *testing.T) {
	assert.True(t, EncodingBase64U32.IsSupported())
	assert.False(t, ValueEncoding("base64(u8)").IsSupported())
}
