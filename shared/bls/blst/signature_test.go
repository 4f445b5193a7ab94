package blst

import (
	"bytes"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/bls/common"
	"github.com/prysmaticlabs/transition-vectors/shared/bls/iface"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func testKey(t *testing.T, i byte) iface.SecretKey {
	ikm := bytes.Repeat([]byte{i + 1}, 32)
	sk, err := SecretKeyFromSeed(ikm)
	require.NoError(t, err)
	return sk
}

func TestSignVerify(t *testing.T) {
	priv := testKey(t, 0)
	pub := priv.PublicKey()
	msg := []byte("hello")
	sig := priv.Sign(msg)
	assert.Equal(t, true, sig.Verify(pub, msg), "Signature did not verify")
	assert.Equal(t, false, sig.Verify(pub, []byte("other")), "Signature verified for the wrong message")
}

func TestSignatureFromBytes_RoundTrip(t *testing.T) {
	priv := testKey(t, 1)
	sig := priv.Sign([]byte("msg"))
	decoded, err := SignatureFromBytes(sig.Marshal())
	require.NoError(t, err)
	assert.DeepEqual(t, sig.Marshal(), decoded.Marshal())

	_, err = SignatureFromBytes([]byte{1, 2, 3})
	assert.ErrorContains(t, "signature must be 96 bytes", err)
	_, err = SignatureFromBytes(make([]byte, 96))
	assert.ErrorContains(t, "could not unmarshal bytes into signature", err)
}

func TestFastAggregateVerify(t *testing.T) {
	msg := [32]byte{'h', 'e', 'l', 'l', 'o'}
	pubkeys := make([]iface.PublicKey, 0, 10)
	sigs := make([]iface.Signature, 0, 10)
	for i := byte(0); i < 10; i++ {
		priv := testKey(t, i)
		pubkeys = append(pubkeys, priv.PublicKey())
		sigs = append(sigs, priv.Sign(msg[:]))
	}
	aggSig := AggregateSignatures(sigs)
	assert.Equal(t, true, aggSig.FastAggregateVerify(pubkeys, msg), "Signature did not verify")
	assert.Equal(t, false, aggSig.FastAggregateVerify(pubkeys[1:], msg), "Signature verified with a missing key")
	assert.Equal(t, false, aggSig.FastAggregateVerify(nil, msg), "Signature verified without keys")
}

func TestAggregateSignatures_Empty(t *testing.T) {
	assert.IsNil(t, AggregateSignatures(nil))
}

func TestSignatureCopy(t *testing.T) {
	sig := testKey(t, 2).Sign([]byte("copy"))
	cp := sig.Copy()
	assert.DeepEqual(t, sig.Marshal(), cp.Marshal())
	assert.Equal(t, false, common.SignatureIsInfinite(cp.Marshal()))
}
