package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestHash(t *testing.T) {
	// sha256("hello")
	want, err := hex.DecodeString("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
	require.NoError(t, err)
	got := hashutil.Hash([]byte("hello"))
	assert.DeepEqual(t, want, got[:])
}

func TestCustomSHA256Hasher_MatchesHash(t *testing.T) {
	hasher := hashutil.CustomSHA256Hasher()
	for _, in := range [][]byte{{}, []byte("a"), make([]byte, 64)} {
		assert.Equal(t, hashutil.Hash(in), hasher(in))
	}
}

func TestHashLayer_MatchesPairwiseHash(t *testing.T) {
	chunks := make([][32]byte, 6)
	for i := range chunks {
		chunks[i][0] = byte(i + 1)
		chunks[i][31] = byte(0xff - i)
	}
	parents, err := hashutil.HashLayer(chunks)
	require.NoError(t, err)
	require.Equal(t, 3, len(parents))
	for i := range parents {
		pair := append(append([]byte{}, chunks[2*i][:]...), chunks[2*i+1][:]...)
		assert.Equal(t, hashutil.Hash(pair), parents[i])
	}
}

func TestHashLayer_OddChunks(t *testing.T) {
	_, err := hashutil.HashLayer(make([][32]byte, 3))
	assert.ErrorContains(t, "odd number of chunks", err)

	parents, err := hashutil.HashLayer(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, len(parents))
}
