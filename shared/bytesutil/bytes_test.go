package bytesutil_test

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
)

func TestToBytes(t *testing.T) {
	tests := []struct {
		a uint64
		b []byte
	}{
		{0, []byte{0}},
		{255, []byte{255}},
		{256, []byte{0, 1}},
		{65535, []byte{255, 255, 0}},
		{16777217, []byte{1, 0, 0, 1}},
		{4294967297, []byte{1, 0, 0, 0, 1, 0, 0, 0}},
		{1, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		assert.DeepEqual(t, tt.b, bytesutil.ToBytes(tt.a, len(tt.b)))
	}
}

func TestBytes8RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 1 << 32, 1<<64 - 1} {
		assert.Equal(t, v, bytesutil.FromBytes8(bytesutil.Bytes8(v)))
	}
	assert.Equal(t, uint64(0), bytesutil.FromBytes8([]byte{1, 2}))
}

func TestReverseByteOrder(t *testing.T) {
	input := []byte{1, 2, 3}
	assert.DeepEqual(t, []byte{3, 2, 1}, bytesutil.ReverseByteOrder(input))
	assert.DeepEqual(t, []byte{1, 2, 3}, input, "Input was modified")
}

func TestXor(t *testing.T) {
	assert.DeepEqual(t, []byte{0xff, 0x00}, bytesutil.Xor([]byte{0x0f, 0xaa}, []byte{0xf0, 0xaa, 0x01}))
}

func TestPadTo(t *testing.T) {
	assert.DeepEqual(t, []byte{1, 0, 0, 0}, bytesutil.PadTo([]byte{1}, 4))
	assert.DeepEqual(t, []byte{1, 2}, bytesutil.PadTo([]byte{1, 2}, 1))
}

func TestZeroRoot(t *testing.T) {
	assert.Equal(t, true, bytesutil.ZeroRoot(make([]byte, 32)))
	assert.Equal(t, false, bytesutil.ZeroRoot([]byte{0, 1}))
}
