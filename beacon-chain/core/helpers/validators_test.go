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

func TestIsActiveValidator_OK(t *testing.T) {
	tests := []struct {
		a uint64
		b bool
	}{
		{a: 0, b: false},
		{a: 10, b: true},
		{a: 100, b: false},
		{a: 1000, b: false},
		{a: 64, b: true},
	}
	for _, test := range tests {
		validator := &ethpb.Validator{ActivationEpoch: 10, ExitEpoch: 100}
		assert.Equal(t, test.b, IsActiveValidator(validator, test.a), "IsActiveValidator(%d)", test.a)
	}
}

func TestIsActiveValidatorUsingTrie_OK(t *testing.T) {
	tests := []struct {
		a uint64
		b bool
	}{
		{a: 0, b: false},
		{a: 10, b: true},
		{a: 100, b: false},
	}
	val := &ethpb.Validator{ActivationEpoch: 10, ExitEpoch: 100}
	st, err := state.InitializeFromProto(&pb.BeaconState{Validators: []*ethpb.Validator{val}})
	require.NoError(t, err)
	for _, test := range tests {
		readOnlyVal, err := st.ValidatorAtIndexReadOnly(0)
		require.NoError(t, err)
		assert.Equal(t, test.b, IsActiveValidatorUsingTrie(readOnlyVal, test.a), "IsActiveValidatorUsingTrie(%d)", test.a)
	}
}

func TestIsSlashableValidator_OK(t *testing.T) {
	tests := []struct {
		name      string
		validator *ethpb.Validator
		epoch     uint64
		slashable bool
	}{
		{
			name: "Unset withdrawable, slashable",
			validator: &ethpb.Validator{
				WithdrawableEpoch: params.BeaconConfig().FarFutureEpoch,
			},
			epoch:     0,
			slashable: true,
		},
		{
			name: "before withdrawable, slashable",
			validator: &ethpb.Validator{
				WithdrawableEpoch: 5,
			},
			epoch:     3,
			slashable: true,
		},
		{
			name: "inactive, not slashable",
			validator: &ethpb.Validator{
				ActivationEpoch:   5,
				WithdrawableEpoch: params.BeaconConfig().FarFutureEpoch,
			},
			epoch:     2,
			slashable: false,
		},
		{
			name: "after withdrawable, not slashable",
			validator: &ethpb.Validator{
				WithdrawableEpoch: 3,
			},
			epoch:     3,
			slashable: false,
		},
		{
			name: "slashed and withdrawable, not slashable",
			validator: &ethpb.Validator{
				Slashed:           true,
				ExitEpoch:         params.BeaconConfig().FarFutureEpoch,
				WithdrawableEpoch: 1,
			},
			epoch:     2,
			slashable: false,
		},
		{
			name: "slashed, not slashable",
			validator: &ethpb.Validator{
				Slashed:           true,
				ExitEpoch:         params.BeaconConfig().FarFutureEpoch,
				WithdrawableEpoch: params.BeaconConfig().FarFutureEpoch,
			},
			epoch:     2,
			slashable: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.slashable, IsSlashableValidator(test.validator, test.epoch), "Expected active validator slashable to be %t", test.slashable)
			st, err := state.InitializeFromProto(&pb.BeaconState{Validators: []*ethpb.Validator{test.validator}})
			require.NoError(t, err)
			readOnlyVal, err := st.ValidatorAtIndexReadOnly(0)
			require.NoError(t, err)
			assert.Equal(t, test.slashable, IsSlashableValidatorUsingTrie(readOnlyVal, test.epoch), "Expected active validator slashable to be %t", test.slashable)
		})
	}
}

func TestActiveValidatorIndices_SkipsExitedAndPending(t *testing.T) {
	farFuture := params.BeaconConfig().FarFutureEpoch
	st, err := state.InitializeFromProto(&pb.BeaconState{
		Slot: 2 * params.BeaconConfig().SlotsPerEpoch,
		Validators: []*ethpb.Validator{
			{ActivationEpoch: 0, ExitEpoch: farFuture},
			{ActivationEpoch: 0, ExitEpoch: 1},
			{ActivationEpoch: 3, ExitEpoch: farFuture},
			{ActivationEpoch: 2, ExitEpoch: 3},
		},
	})
	require.NoError(t, err)

	indices, err := ActiveValidatorIndices(st, 2)
	require.NoError(t, err)
	assert.DeepEqual(t, []uint64{0, 3}, indices)

	count, err := ActiveValidatorCount(st, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestChurnLimit_OK(t *testing.T) {
	tests := []struct {
		validatorCount uint64
		wantedChurn    uint64
	}{
		{validatorCount: 1000, wantedChurn: 4},
		{validatorCount: 100000, wantedChurn: 4},
		{validatorCount: 1000000, wantedChurn: 15 /* validatorCount/churnLimitQuotient */},
		{validatorCount: 2000000, wantedChurn: 30 /* validatorCount/churnLimitQuotient */},
	}
	for _, test := range tests {
		resultChurn, err := ValidatorChurnLimit(test.validatorCount)
		require.NoError(t, err)
		assert.Equal(t, test.wantedChurn, resultChurn, "ValidatorChurnLimit(%d)", test.validatorCount)
	}
}

func TestActivationExitEpoch_OK(t *testing.T) {
	assert.Equal(t, 5+1+params.BeaconConfig().MaxSeedLookahead, ActivationExitEpoch(5))
}

func TestBeaconProposerIndex_IsActiveAndDeterministic(t *testing.T) {
	st := activeRegistryState(t, 64)
	seen := make(map[uint64]bool)
	for slot := uint64(0); slot < params.BeaconConfig().SlotsPerEpoch; slot++ {
		st.SetSlot(slot)
		idx, err := BeaconProposerIndex(st)
		require.NoError(t, err)
		require.Equal(t, true, idx < 64, "Proposer index %d out of range", idx)
		again, err := BeaconProposerIndex(st)
		require.NoError(t, err)
		assert.Equal(t, idx, again)
		seen[idx] = true
	}
	assert.Equal(t, true, len(seen) > 1, "Expected proposers to vary across the epoch")
}

func TestBeaconProposerIndex_NoActiveValidators(t *testing.T) {
	st := activeRegistryState(t, 4)
	require.NoError(t, st.ApplyToEveryValidator(func(idx int, val *ethpb.Validator) (bool, error) {
		val.ExitEpoch = 0
		return true, nil
	}))
	_, err := BeaconProposerIndex(st)
	assert.ErrorContains(t, "empty active indices list", err)
}

func TestComputeProposerIndex_PicksFromActiveIndices(t *testing.T) {
	st := activeRegistryState(t, 8)
	active := []uint64{2, 5, 7}
	for i := byte(0); i < 16; i++ {
		idx, err := ComputeProposerIndex(st, active, [32]byte{i})
		require.NoError(t, err)
		assert.Equal(t, true, idx == 2 || idx == 5 || idx == 7, "Index %d is not in the active set", idx)
	}
	_, err := ComputeProposerIndex(st, []uint64{9}, [32]byte{})
	assert.ErrorContains(t, "active index out of range", err)
}

func TestDomain_OK(t *testing.T) {
	fork := &ethpb.Fork{
		Epoch:           3,
		PreviousVersion: []byte{0, 0, 0, 2},
		CurrentVersion:  []byte{0, 0, 0, 3},
	}
	tests := []struct {
		epoch      uint64
		domainType [4]byte
		version    []byte
	}{
		{epoch: 1, domainType: [4]byte{4, 0, 0, 0}, version: []byte{0, 0, 0, 2}},
		{epoch: 2, domainType: [4]byte{4, 0, 0, 0}, version: []byte{0, 0, 0, 2}},
		{epoch: 3, domainType: [4]byte{4, 0, 0, 0}, version: []byte{0, 0, 0, 3}},
		{epoch: 3, domainType: [4]byte{5, 0, 0, 0}, version: []byte{0, 0, 0, 3}},
	}
	for _, tt := range tests {
		domain, err := Domain(fork, tt.epoch, tt.domainType, nil)
		require.NoError(t, err)
		wanted, err := ComputeDomain(tt.domainType, tt.version, nil)
		require.NoError(t, err)
		assert.DeepEqual(t, wanted, domain, "Domain(%d, %v)", tt.epoch, tt.domainType)
		assert.DeepEqual(t, tt.domainType[:], domain[:4])
	}
}

func TestDomain_NilFork(t *testing.T) {
	_, err := Domain(nil, 0, [4]byte{}, nil)
	assert.ErrorContains(t, "nil fork", err)
}

func TestIsEligibleForActivationQueue(t *testing.T) {
	tests := []struct {
		name      string
		validator *ethpb.Validator
		want      bool
	}{
		{"Eligible",
			&ethpb.Validator{ActivationEligibilityEpoch: params.BeaconConfig().FarFutureEpoch, EffectiveBalance: params.BeaconConfig().MaxEffectiveBalance},
			true},
		{"Incorrect activation eligibility epoch",
			&ethpb.Validator{ActivationEligibilityEpoch: 1, EffectiveBalance: params.BeaconConfig().MaxEffectiveBalance},
			false},
		{"Not enough balance",
			&ethpb.Validator{ActivationEligibilityEpoch: params.BeaconConfig().FarFutureEpoch, EffectiveBalance: 1},
			false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligibleForActivationQueue(tt.validator), "IsEligibleForActivationQueue()")
		})
	}
}

func TestIsEligibleForActivation(t *testing.T) {
	tests := []struct {
		name      string
		validator *ethpb.Validator
		state     *pb.BeaconState
		want      bool
	}{
		{"Eligible",
			&ethpb.Validator{ActivationEligibilityEpoch: 1, ActivationEpoch: params.BeaconConfig().FarFutureEpoch},
			&pb.BeaconState{FinalizedCheckpoint: &ethpb.Checkpoint{Epoch: 2}},
			true},
		{"Not yet finalized",
			&ethpb.Validator{ActivationEligibilityEpoch: 1, ActivationEpoch: params.BeaconConfig().FarFutureEpoch},
			&pb.BeaconState{FinalizedCheckpoint: &ethpb.Checkpoint{Root: make([]byte, 32)}},
			false},
		{"Incorrect activation epoch",
			&ethpb.Validator{ActivationEligibilityEpoch: 1},
			&pb.BeaconState{FinalizedCheckpoint: &ethpb.Checkpoint{Epoch: 2}},
			false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := state.InitializeFromProto(tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, IsEligibleForActivation(s, tt.validator), "IsEligibleForActivation()")
		})
	}
}
