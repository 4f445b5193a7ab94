package helpers

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestTotalBalance_OK(t *testing.T) {
	st, err := state.InitializeFromProto(&pb.BeaconState{Validators: []*ethpb.Validator{
		{EffectiveBalance: 27 * 1e9}, {EffectiveBalance: 28 * 1e9},
		{EffectiveBalance: 32 * 1e9}, {EffectiveBalance: 40 * 1e9},
	}})
	require.NoError(t, err)

	balance := TotalBalance(st, []uint64{0, 1, 2, 3})
	wanted := st.Validators()[0].EffectiveBalance + st.Validators()[1].EffectiveBalance +
		st.Validators()[2].EffectiveBalance + st.Validators()[3].EffectiveBalance
	assert.Equal(t, wanted, balance, "Incorrect TotalBalance")
}

func TestTotalBalance_ReturnsOne(t *testing.T) {
	st, err := state.InitializeFromProto(&pb.BeaconState{Validators: []*ethpb.Validator{}})
	require.NoError(t, err)

	balance := TotalBalance(st, []uint64{})
	assert.Equal(t, uint64(1), balance, "Incorrect TotalBalance")
}

func TestTotalActiveBalance_OK(t *testing.T) {
	st, err := state.InitializeFromProto(&pb.BeaconState{Validators: []*ethpb.Validator{
		{
			EffectiveBalance: 32 * 1e9,
			ExitEpoch:        params.BeaconConfig().FarFutureEpoch,
		},
		{
			EffectiveBalance: 30 * 1e9,
			ExitEpoch:        params.BeaconConfig().FarFutureEpoch,
		},
		{
			EffectiveBalance: 30 * 1e9,
			ExitEpoch:        0,
		},
	}})
	require.NoError(t, err)

	balance, err := TotalActiveBalance(st)
	require.NoError(t, err)
	assert.Equal(t, uint64(62*1e9), balance, "Incorrect TotalActiveBalance")
}

func TestIncreaseBalance_OK(t *testing.T) {
	tests := []struct {
		i  uint64
		b  []uint64
		nb uint64
		eb uint64
	}{
		{i: 0, b: []uint64{27 * 1e9, 28 * 1e9, 32 * 1e9}, nb: 1, eb: 27*1e9 + 1},
		{i: 1, b: []uint64{27 * 1e9, 28 * 1e9, 32 * 1e9}, nb: 0, eb: 28 * 1e9},
		{i: 2, b: []uint64{27 * 1e9, 28 * 1e9, 32 * 1e9}, nb: 33 * 1e9, eb: 65 * 1e9},
	}
	for _, test := range tests {
		st, err := state.InitializeFromProto(&pb.BeaconState{
			Validators: []*ethpb.Validator{
				{EffectiveBalance: 4}, {EffectiveBalance: 4}, {EffectiveBalance: 4}},
			Balances: test.b,
		})
		require.NoError(t, err)
		require.NoError(t, IncreaseBalance(st, test.i, test.nb))
		bal, err := st.BalanceAtIndex(test.i)
		require.NoError(t, err)
		assert.Equal(t, test.eb, bal, "Incorrect Validator balance")
	}
}

func TestDecreaseBalance_OK(t *testing.T) {
	tests := []struct {
		i  uint64
		b  []uint64
		nb uint64
		eb uint64
	}{
		{i: 0, b: []uint64{2, 28 * 1e9, 32 * 1e9}, nb: 1, eb: 1},
		{i: 1, b: []uint64{27 * 1e9, 28 * 1e9, 32 * 1e9}, nb: 0, eb: 28 * 1e9},
		{i: 2, b: []uint64{27 * 1e9, 28 * 1e9, 1}, nb: 2, eb: 0},
		{i: 3, b: []uint64{27 * 1e9, 28 * 1e9, 1, 28 * 1e9}, nb: 28 * 1e9, eb: 0},
	}
	for _, test := range tests {
		st, err := state.InitializeFromProto(&pb.BeaconState{
			Validators: []*ethpb.Validator{
				{EffectiveBalance: 4}, {EffectiveBalance: 4}, {EffectiveBalance: 4}, {EffectiveBalance: 3}},
			Balances: test.b,
		})
		require.NoError(t, err)
		require.NoError(t, DecreaseBalance(st, test.i, test.nb))
		bal, err := st.BalanceAtIndex(test.i)
		require.NoError(t, err)
		assert.Equal(t, test.eb, bal, "Incorrect Validator balance")
	}
}

func TestDecreaseBalance_UnknownIndex(t *testing.T) {
	st, err := state.InitializeFromProto(&pb.BeaconState{Balances: []uint64{1}})
	require.NoError(t, err)
	assert.ErrorContains(t, "index of 5 does not exist", DecreaseBalance(st, 5, 1))
}
