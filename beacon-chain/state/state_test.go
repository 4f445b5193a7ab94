package state_test

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func zeroRoots(n uint64) [][]byte {
	r := make([][]byte, n)
	for i := range r {
		r[i] = make([]byte, 32)
	}
	return r
}

func newState(t *testing.T, numVals int) *state.BeaconState {
	cfg := params.BeaconConfig()
	vals := make([]*ethpb.Validator, numVals)
	bals := make([]uint64, numVals)
	for i := range vals {
		vals[i] = &ethpb.Validator{
			PublicKey:             make([]byte, 48),
			WithdrawalCredentials: make([]byte, 32),
			EffectiveBalance:      cfg.MaxEffectiveBalance,
			ExitEpoch:             cfg.FarFutureEpoch,
			WithdrawableEpoch:     cfg.FarFutureEpoch,
		}
		bals[i] = cfg.MaxEffectiveBalance
	}
	st, err := state.InitializeFromProto(&pb.BeaconState{
		GenesisValidatorsRoot: make([]byte, 32),
		Fork:                  &ethpb.Fork{PreviousVersion: make([]byte, 4), CurrentVersion: make([]byte, 4)},
		LatestBlockHeader: &ethpb.BeaconBlockHeader{
			ParentRoot: make([]byte, 32),
			StateRoot:  make([]byte, 32),
			BodyRoot:   make([]byte, 32),
		},
		BlockRoots:                  zeroRoots(cfg.SlotsPerHistoricalRoot),
		StateRoots:                  zeroRoots(cfg.SlotsPerHistoricalRoot),
		Eth1Data:                    &ethpb.Eth1Data{DepositRoot: make([]byte, 32), BlockHash: make([]byte, 32)},
		Validators:                  vals,
		Balances:                    bals,
		RandaoMixes:                 zeroRoots(cfg.EpochsPerHistoricalVector),
		Slashings:                   make([]uint64, cfg.EpochsPerSlashingsVector),
		JustificationBits:           bitfield.Bitvector4{0},
		PreviousJustifiedCheckpoint: &ethpb.Checkpoint{Root: make([]byte, 32)},
		CurrentJustifiedCheckpoint:  &ethpb.Checkpoint{Root: make([]byte, 32)},
		FinalizedCheckpoint:         &ethpb.Checkpoint{Root: make([]byte, 32)},
	})
	require.NoError(t, err)
	return st
}

func assertRootMatchesContainer(t *testing.T, st *state.BeaconState) {
	got, err := st.HashTreeRoot()
	require.NoError(t, err)
	want, err := st.CloneInnerState().HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHashTreeRoot_TracksMutations(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()

	st := newState(t, 8)
	assertRootMatchesContainer(t, st)

	st.SetSlot(9)
	require.NoError(t, st.UpdateBalancesAtIndex(3, 1))
	require.NoError(t, st.UpdateBlockRootAtIndex(2, [32]byte{'a'}))
	assertRootMatchesContainer(t, st)

	st.AppendHistoricalRoots([32]byte{'b'})
	st.AppendEth1DataVotes(&ethpb.Eth1Data{DepositRoot: make([]byte, 32), BlockHash: make([]byte, 32)})
	require.NoError(t, st.ApplyToEveryValidator(func(idx int, val *ethpb.Validator) (bool, error) {
		if idx == 5 {
			val.Slashed = true
			return true, nil
		}
		return false, nil
	}))
	st.SetJustificationBits(bitfield.Bitvector4{0x01})
	assertRootMatchesContainer(t, st)
}

func TestCopy_IsIndependent(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()

	st := newState(t, 4)
	before, err := st.HashTreeRoot()
	require.NoError(t, err)

	cp := st.Copy()
	require.NoError(t, cp.UpdateBalancesAtIndex(0, 0))
	cp.SetSlot(3)

	after, err := st.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	bal, err := st.BalanceAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, params.BeaconConfig().MaxEffectiveBalance, bal)
	assertRootMatchesContainer(t, cp)
}

func TestGetters_ReturnCopies(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()

	st := newState(t, 2)
	v, err := st.ValidatorAtIndex(0)
	require.NoError(t, err)
	v.Slashed = true
	ro, err := st.ValidatorAtIndexReadOnly(0)
	require.NoError(t, err)
	assert.Equal(t, false, ro.Slashed())

	_, err = st.ValidatorAtIndex(2)
	assert.ErrorContains(t, "out of range", err)
	assert.ErrorContains(t, "invalid index", st.UpdateBalancesAtIndex(7, 1))
}

func TestRotateAttestations(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()

	st := newState(t, 1)
	att := &pb.PendingAttestation{
		AggregationBits: bitfield.Bitlist{0x03},
		Data: &ethpb.AttestationData{
			BeaconBlockRoot: make([]byte, 32),
			Source:          &ethpb.Checkpoint{Root: make([]byte, 32)},
			Target:          &ethpb.Checkpoint{Root: make([]byte, 32)},
		},
	}
	st.AppendCurrentEpochAttestations(att)
	st.RotateAttestations()
	assert.Equal(t, 1, len(st.PreviousEpochAttestations()))
	assert.Equal(t, 0, len(st.CurrentEpochAttestations()))
	assertRootMatchesContainer(t, st)
}
