package depositutil_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/depositutil"
	"github.com/prysmaticlabs/transition-vectors/shared/interop"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestDepositInput_GeneratesPb(t *testing.T) {
	keys, _, err := interop.DeterministicallyGenerateKeys(0, 2)
	require.NoError(t, err)
	k1, k2 := keys[0], keys[1]

	result, root, err := depositutil.DepositInput(k1, k2, params.BeaconConfig().MaxEffectiveBalance)
	require.NoError(t, err)
	assert.DeepEqual(t, k1.PublicKey().Marshal(), result.PublicKey)
	assert.DeepEqual(t, depositutil.WithdrawalCredentialsHash(k2), result.WithdrawalCredentials)
	assert.Equal(t, params.BeaconConfig().BLSWithdrawalPrefixByte, result.WithdrawalCredentials[0])
	want, err := result.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, root)
	require.NoError(t, depositutil.VerifyDepositSignature(result))
}

func TestVerifyDepositSignature_Invalid(t *testing.T) {
	keys, _, err := interop.DeterministicallyGenerateKeys(0, 1)
	require.NoError(t, err)
	k1 := keys[0]
	data, _, err := depositutil.DepositInput(k1, k1, params.BeaconConfig().MaxEffectiveBalance)
	require.NoError(t, err)

	tampered := *data
	tampered.Amount--
	err = depositutil.VerifyDepositSignature(&tampered)
	assert.Equal(t, true, errors.Is(err, depositutil.ErrInvalidDepositSignature))

	zero := *data
	zero.Signature = make([]byte, params.BeaconConfig().BLSSignatureLength)
	err = depositutil.VerifyDepositSignature(&zero)
	assert.Equal(t, true, errors.Is(err, depositutil.ErrInvalidDepositSignature))

	assert.ErrorContains(t, "nil deposit data", depositutil.VerifyDepositSignature(nil))
}
