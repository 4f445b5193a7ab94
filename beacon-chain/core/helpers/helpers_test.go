package helpers

import (
	"encoding/binary"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

// activeRegistryState returns a state of numValidators active validators at the max effective
// balance, with distinct randao mixes and the minimal preset in place for the test.
func activeRegistryState(t *testing.T, numValidators uint64) *state.BeaconState {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	ClearCache()

	cfg := params.BeaconConfig()
	validators := make([]*ethpb.Validator, numValidators)
	balances := make([]uint64, numValidators)
	for i := range validators {
		pubkey := make([]byte, 48)
		binary.LittleEndian.PutUint64(pubkey, uint64(i))
		validators[i] = &ethpb.Validator{
			PublicKey:                  pubkey,
			WithdrawalCredentials:      make([]byte, 32),
			EffectiveBalance:           cfg.MaxEffectiveBalance,
			ActivationEligibilityEpoch: 0,
			ActivationEpoch:            0,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
		}
		balances[i] = cfg.MaxEffectiveBalance
	}
	mixes := make([][]byte, cfg.EpochsPerHistoricalVector)
	for i := range mixes {
		mixes[i] = make([]byte, 32)
		binary.LittleEndian.PutUint64(mixes[i], uint64(i)+1)
	}
	st, err := state.InitializeFromProto(&pb.BeaconState{
		Fork: &ethpb.Fork{
			PreviousVersion: cfg.GenesisForkVersion,
			CurrentVersion:  cfg.GenesisForkVersion,
		},
		GenesisValidatorsRoot: make([]byte, 32),
		Validators:            validators,
		Balances:              balances,
		RandaoMixes:           mixes,
		FinalizedCheckpoint:   &ethpb.Checkpoint{Root: make([]byte, 32)},
	})
	require.NoError(t, err)
	return st
}
