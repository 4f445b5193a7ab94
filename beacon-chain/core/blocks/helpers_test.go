package blocks_test

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

const numValidators = 64

func minimalGenesis(t *testing.T) (*state.BeaconState, []bls.SecretKey) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	return testutil.DeterministicGenesisState(t, numValidators)
}

func requireKind(t *testing.T, want verification.Kind, err error) {
	require.NotNil(t, err, "expected a %s error", want)
	assert.Equal(t, want, verification.Classify(err), "unexpected classification of %v", err)
}

func requireInvariant(t *testing.T, want verification.InvariantKind, err error) {
	requireKind(t, verification.KindStateInvariant, err)
	got, ok := verification.InvariantOf(err)
	require.Equal(t, true, ok)
	assert.Equal(t, want, got)
}
