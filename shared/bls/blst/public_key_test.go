package blst

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/bls/common"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestPublicKeyFromBytes(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		err   string
	}{
		{name: "Nil", err: "public key must be 48 bytes"},
		{name: "Short", input: []byte{0x01, 0x02}, err: "public key must be 48 bytes"},
		{name: "Infinite", input: common.InfinitePublicKey[:], err: common.ErrInfinitePubKey.Error()},
		{name: "Garbage", input: make([]byte, 48), err: "could not unmarshal bytes into public key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PublicKeyFromBytes(tt.input)
			assert.ErrorContains(t, tt.err, err)
		})
	}
}

func TestPublicKeyFromBytes_CachedCopy(t *testing.T) {
	pub := testKey(t, 3).PublicKey()
	first, err := PublicKeyFromBytes(pub.Marshal())
	require.NoError(t, err)
	second, err := PublicKeyFromBytes(pub.Marshal())
	require.NoError(t, err)
	assert.Equal(t, true, first.Equals(second))
	// Aggregating into the returned key must not corrupt the cached entry.
	second.Aggregate(testKey(t, 4).PublicKey())
	third, err := PublicKeyFromBytes(pub.Marshal())
	require.NoError(t, err)
	assert.Equal(t, true, first.Equals(third))
}

func TestAggregatePublicKeys(t *testing.T) {
	k1 := testKey(t, 5).PublicKey()
	k2 := testKey(t, 6).PublicKey()
	agg, err := AggregatePublicKeys([][]byte{k1.Marshal(), k2.Marshal()})
	require.NoError(t, err)
	assert.Equal(t, true, agg.Equals(k1.Copy().Aggregate(k2)))

	_, err = AggregatePublicKeys(nil)
	assert.ErrorContains(t, "no public keys to aggregate", err)
}

func TestSecretKeyFromBytes(t *testing.T) {
	sk := testKey(t, 7)
	decoded, err := SecretKeyFromBytes(sk.Marshal())
	require.NoError(t, err)
	assert.DeepEqual(t, sk.Marshal(), decoded.Marshal())

	_, err = SecretKeyFromBytes(make([]byte, 32))
	assert.ErrorContains(t, common.ErrZeroKey.Error(), err)
	_, err = SecretKeyFromBytes([]byte{1})
	assert.ErrorContains(t, "secret key must be 32 bytes", err)
}
