package interop_test

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/depositutil"
	"github.com/prysmaticlabs/transition-vectors/shared/interop"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
	"github.com/prysmaticlabs/transition-vectors/shared/trieutil"
)

func TestGenerateDepositsFromData_ProofsVerify(t *testing.T) {
	numValidators := uint64(8)
	privKeys, pubKeys, err := interop.DeterministicallyGenerateKeys(0, numValidators)
	require.NoError(t, err)
	dataItems, dataRoots, err := interop.DepositDataFromKeys(privKeys, pubKeys)
	require.NoError(t, err)
	trie, err := interop.DepositTrieFromData(dataRoots)
	require.NoError(t, err)
	deposits, err := interop.GenerateDepositsFromData(dataItems, trie)
	require.NoError(t, err)
	require.Equal(t, int(numValidators), len(deposits))

	root := trie.HashTreeRoot()
	for i, dep := range deposits {
		leaf, err := dep.Data.HashTreeRoot()
		require.NoError(t, err)
		ok := trieutil.VerifyMerkleProofWithDepth(root[:], leaf[:], uint64(i), dep.Proof, params.BeaconConfig().DepositContractTreeDepth)
		assert.Equal(t, true, ok, "proof %d did not verify", i)
		assert.NoError(t, depositutil.VerifyDepositSignature(dep.Data))
		assert.Equal(t, params.BeaconConfig().MaxEffectiveBalance, dep.Data.Amount)
	}
}

func TestDepositDataFromKeys_MismatchedLengths(t *testing.T) {
	privKeys, pubKeys, err := interop.DeterministicallyGenerateKeys(0, 2)
	require.NoError(t, err)
	_, _, err = interop.DepositDataFromKeys(privKeys, pubKeys[:1])
	assert.ErrorContains(t, "got 2 private keys for 1 public keys", err)
}
