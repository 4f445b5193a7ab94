package helpers

import (
	"bytes"
	"testing"

	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestSigningRoot_ComputeSigningRoot(t *testing.T) {
	header := &ethpb.BeaconBlockHeader{
		ParentRoot: make([]byte, 32),
		StateRoot:  make([]byte, 32),
		BodyRoot:   make([]byte, 32),
	}
	r1, err := ComputeSigningRoot(header, bytesutil.PadTo([]byte{'T', 'E', 'S', 'T'}, 32))
	require.NoError(t, err, "Could not compute signing root of header")
	r2, err := ComputeSigningRoot(header, bytesutil.PadTo([]byte{'T', 'E', 'S', 'U'}, 32))
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2, "Signing roots of distinct domains should differ")
}

func TestSigningRoot_ComputeDomain(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMainnetConfig()
	tests := []struct {
		domainType [4]byte
		domain     []byte
	}{
		{domainType: [4]byte{4, 0, 0, 0}, domain: []byte{4, 0, 0, 0, 245, 165, 253, 66, 209, 106, 32, 48, 39, 152, 239, 110, 211, 9, 151, 155, 67, 0, 61, 35, 32, 217, 240, 232, 234, 152, 49, 169}},
		{domainType: [4]byte{5, 0, 0, 0}, domain: []byte{5, 0, 0, 0, 245, 165, 253, 66, 209, 106, 32, 48, 39, 152, 239, 110, 211, 9, 151, 155, 67, 0, 61, 35, 32, 217, 240, 232, 234, 152, 49, 169}},
	}
	for _, tt := range tests {
		if got, err := ComputeDomain(tt.domainType, nil, nil); !bytes.Equal(got, tt.domain) {
			t.Errorf("wanted domain version: %d, got: %d", tt.domain, got)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestSigningRoot_ComputeDomain_BadVersion(t *testing.T) {
	_, err := ComputeDomain([4]byte{}, []byte{1, 2}, nil)
	assert.ErrorContains(t, "expected fork version length of 4, got 2", err)
}

func TestSigningRoot_ComputeForkDigest(t *testing.T) {
	tests := []struct {
		version []byte
		root    [32]byte
		result  [4]byte
	}{
		{version: []byte{'A', 'B', 'C', 'D'}, root: [32]byte{'i', 'o', 'p'}, result: [4]byte{0x69, 0x5c, 0x26, 0x47}},
		{version: []byte{'i', 'm', 'n', 'a'}, root: [32]byte{'z', 'a', 'b'}, result: [4]byte{0x1c, 0x38, 0x84, 0x58}},
		{version: []byte{'b', 'w', 'r', 't'}, root: [32]byte{'r', 'd', 'c'}, result: [4]byte{0x83, 0x34, 0x38, 0x88}},
	}
	for _, tt := range tests {
		digest, err := ComputeForkDigest(tt.version, tt.root[:])
		require.NoError(t, err)
		assert.Equal(t, tt.result, digest, "Wanted domain version: %#x, got: %#x", digest, tt.result)
	}
}

func TestSigningRoot_ComputeDomainAndSignVerifies(t *testing.T) {
	st := activeRegistryState(t, 4)
	key, err := bls.SecretKeyFromSeed(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)
	exit := &ethpb.VoluntaryExit{Epoch: 1, ValidatorIndex: 2}
	domainType := params.BeaconConfig().DomainVoluntaryExit

	sig, err := ComputeDomainAndSign(st, 1, exit, domainType, key)
	require.NoError(t, err)

	domain, err := Domain(st.Fork(), 1, domainType, st.GenesisValidatorRoot())
	require.NoError(t, err)
	require.NoError(t, VerifySigningRoot(exit, key.PublicKey().Marshal(), sig, domain))

	otherDomain, err := Domain(st.Fork(), 1, params.BeaconConfig().DomainBeaconProposer, st.GenesisValidatorRoot())
	require.NoError(t, err)
	assert.ErrorIs(t, VerifySigningRoot(exit, key.PublicKey().Marshal(), sig, otherDomain), ErrSigFailedToVerify)

	tampered := &ethpb.VoluntaryExit{Epoch: 1, ValidatorIndex: 3}
	assert.ErrorIs(t, VerifySigningRoot(tampered, key.PublicKey().Marshal(), sig, domain), ErrSigFailedToVerify)
}

func TestVerifySigningRoot_MalformedInputs(t *testing.T) {
	exit := &ethpb.VoluntaryExit{}
	err := VerifySigningRoot(exit, []byte{1, 2, 3}, make([]byte, 96), make([]byte, 32))
	assert.ErrorContains(t, "could not convert bytes to public key", err)
}
