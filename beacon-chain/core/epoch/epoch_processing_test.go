package epoch_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func withValidators(vals []*ethpb.Validator, bals []uint64) func(*pb.BeaconState) error {
	return func(s *pb.BeaconState) error {
		s.Validators = vals
		s.Balances = bals
		return nil
	}
}

func TestCanProcessEpoch(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	spe := params.BeaconConfig().SlotsPerEpoch
	tests := []struct {
		slot uint64
		want bool
	}{
		{slot: 0, want: false},
		{slot: spe - 2, want: false},
		{slot: spe - 1, want: true},
		{slot: spe, want: false},
		{slot: 2*spe - 1, want: true},
	}
	for _, tt := range tests {
		st, err := testutil.NewBeaconState(func(s *pb.BeaconState) error {
			s.Slot = tt.slot
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, epoch.CanProcessEpoch(st), "slot %d", tt.slot)
	}
}

func TestProcessRegistryUpdates_EligibleToActivate(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	limit := cfg.MinPerEpochChurnLimit
	vals := make([]*ethpb.Validator, 0, limit+2)
	bals := make([]uint64, 0, limit+2)
	// Validators queued in reverse index order of eligibility to exercise queue sorting.
	for i := uint64(0); i < limit+2; i++ {
		vals = append(vals, &ethpb.Validator{
			ActivationEligibilityEpoch: limit + 2 - i,
			ActivationEpoch:            cfg.FarFutureEpoch,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
			EffectiveBalance:           cfg.MaxEffectiveBalance,
		})
		bals = append(bals, cfg.MaxEffectiveBalance)
	}
	st, err := testutil.NewBeaconState(withValidators(vals, bals), func(s *pb.BeaconState) error {
		s.Slot = 10 * cfg.SlotsPerEpoch
		s.FinalizedCheckpoint = &ethpb.Checkpoint{Epoch: 10, Root: make([]byte, 32)}
		return nil
	})
	require.NoError(t, err)

	newState, err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	activationEpoch := helpers.ActivationExitEpoch(10)
	for i, val := range newState.Validators() {
		if i >= 2 {
			assert.Equal(t, activationEpoch, val.ActivationEpoch, "validator %d should have been activated", i)
		} else {
			assert.Equal(t, cfg.FarFutureEpoch, val.ActivationEpoch, "validator %d is past the churn limit", i)
		}
	}
}

func TestProcessRegistryUpdates_NotFinalized(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	vals := []*ethpb.Validator{
		{
			ActivationEligibilityEpoch: cfg.FarFutureEpoch,
			ActivationEpoch:            cfg.FarFutureEpoch,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
			EffectiveBalance:           cfg.MaxEffectiveBalance,
		},
		{
			ActivationEligibilityEpoch: 4,
			ActivationEpoch:            cfg.FarFutureEpoch,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
			EffectiveBalance:           cfg.MaxEffectiveBalance,
		},
	}
	st, err := testutil.NewBeaconState(withValidators(vals, []uint64{cfg.MaxEffectiveBalance, cfg.MaxEffectiveBalance}), func(s *pb.BeaconState) error {
		s.Slot = 5 * cfg.SlotsPerEpoch
		s.FinalizedCheckpoint = &ethpb.Checkpoint{Epoch: 3, Root: make([]byte, 32)}
		return nil
	})
	require.NoError(t, err)

	newState, err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	got := newState.Validators()
	assert.Equal(t, uint64(6), got[0].ActivationEligibilityEpoch, "eligibility is set to the next epoch")
	assert.Equal(t, cfg.FarFutureEpoch, got[0].ActivationEpoch)
	assert.Equal(t, cfg.FarFutureEpoch, got[1].ActivationEpoch, "eligibility epoch is not finalized yet")
}

func TestProcessRegistryUpdates_EjectsLowBalance(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	vals := []*ethpb.Validator{
		{
			ExitEpoch:         cfg.FarFutureEpoch,
			WithdrawableEpoch: cfg.FarFutureEpoch,
			EffectiveBalance:  cfg.EjectionBalance,
		},
		{
			ExitEpoch:         cfg.FarFutureEpoch,
			WithdrawableEpoch: cfg.FarFutureEpoch,
			EffectiveBalance:  cfg.EjectionBalance + cfg.EffectiveBalanceIncrement,
		},
	}
	st, err := testutil.NewBeaconState(withValidators(vals, []uint64{cfg.EjectionBalance, cfg.MaxEffectiveBalance}), func(s *pb.BeaconState) error {
		s.Slot = cfg.SlotsPerEpoch
		return nil
	})
	require.NoError(t, err)

	newState, err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	got := newState.Validators()
	wantExit := helpers.ActivationExitEpoch(1)
	assert.Equal(t, wantExit, got[0].ExitEpoch)
	assert.Equal(t, wantExit+cfg.MinValidatorWithdrawabilityDelay, got[0].WithdrawableEpoch)
	assert.Equal(t, cfg.FarFutureEpoch, got[1].ExitEpoch)
}

func TestProcessSlashings_NotSlashed(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig()
	st, err := testutil.NewBeaconState(withValidators(
		[]*ethpb.Validator{{ExitEpoch: cfg.FarFutureEpoch, EffectiveBalance: cfg.MaxEffectiveBalance}},
		[]uint64{cfg.MaxEffectiveBalance},
	), func(s *pb.BeaconState) error {
		s.Slashings[0] = 1e9
		return nil
	})
	require.NoError(t, err)
	newState, err := epoch.ProcessSlashings(st)
	require.NoError(t, err)
	assert.DeepEqual(t, []uint64{cfg.MaxEffectiveBalance}, newState.Balances())
}

func TestProcessSlashings_SlashedLess(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig()
	tests := []struct {
		name      string
		vals      []*ethpb.Validator
		bals      []uint64
		slashings []uint64
		want      uint64
	}{
		{
			name: "single active validator",
			vals: []*ethpb.Validator{
				{Slashed: true, WithdrawableEpoch: cfg.EpochsPerSlashingsVector / 2, EffectiveBalance: cfg.MaxEffectiveBalance},
				{ExitEpoch: cfg.FarFutureEpoch, EffectiveBalance: cfg.MaxEffectiveBalance},
			},
			bals:      []uint64{cfg.MaxEffectiveBalance, cfg.MaxEffectiveBalance},
			slashings: []uint64{0, 1e9},
			// penalty = 32 * 1e9 / 32e9 * 1e9
			want: 31000000000,
		},
		{
			name: "two active validators",
			vals: []*ethpb.Validator{
				{Slashed: true, WithdrawableEpoch: cfg.EpochsPerSlashingsVector / 2, EffectiveBalance: cfg.MaxEffectiveBalance},
				{ExitEpoch: cfg.FarFutureEpoch, EffectiveBalance: cfg.MaxEffectiveBalance},
				{ExitEpoch: cfg.FarFutureEpoch, EffectiveBalance: cfg.MaxEffectiveBalance},
			},
			bals:      []uint64{cfg.MaxEffectiveBalance, cfg.MaxEffectiveBalance, cfg.MaxEffectiveBalance},
			slashings: []uint64{0, 1e9},
			// penalty = 32 * 1e9 / 64e9 * 1e9, rounded down to an increment
			want: 32000000000,
		},
		{
			name: "penalty capped by total balance",
			vals: []*ethpb.Validator{
				{Slashed: true, WithdrawableEpoch: cfg.EpochsPerSlashingsVector / 2, EffectiveBalance: cfg.MaxEffectiveBalance - cfg.EffectiveBalanceIncrement},
				{ExitEpoch: cfg.FarFutureEpoch, EffectiveBalance: cfg.MaxEffectiveBalance - cfg.EffectiveBalanceIncrement},
			},
			bals:      []uint64{cfg.MaxEffectiveBalance - cfg.EffectiveBalanceIncrement, cfg.MaxEffectiveBalance - cfg.EffectiveBalanceIncrement},
			slashings: []uint64{0, 2 * cfg.MaxEffectiveBalance},
			// penalty = 31 * 31e9 / 31e9 * 1e9
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := testutil.NewBeaconState(withValidators(tt.vals, tt.bals), func(s *pb.BeaconState) error {
				copy(s.Slashings, tt.slashings)
				return nil
			})
			require.NoError(t, err)
			newState, err := epoch.ProcessSlashings(st)
			require.NoError(t, err)
			got, err := newState.BalanceAtIndex(0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessFinalUpdates_CanProcess(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	st, _ := testutil.DeterministicGenesisState(t, 16)
	ce := uint64(2)
	ne := ce + 1
	st.SetSlot(ne*cfg.SlotsPerEpoch - 1)
	st.SetEth1DataVotes([]*ethpb.Eth1Data{{DepositRoot: make([]byte, 32), BlockHash: make([]byte, 32)}})

	bals := st.Balances()
	bals[0] = 29 * 1e9
	for i, b := range bals {
		require.NoError(t, st.UpdateBalancesAtIndex(uint64(i), b))
	}
	require.NoError(t, st.UpdateSlashingsAtIndex(ne%cfg.EpochsPerSlashingsVector, 100))
	mix := make([]byte, 32)
	mix[0] = 'A'
	require.NoError(t, st.UpdateRandaoMixesAtIndex(ce, mix))

	newState, err := epoch.ProcessFinalUpdates(st)
	require.NoError(t, err)

	// Eth1 votes are only reset at the end of a voting period.
	assert.Equal(t, 1, len(newState.Eth1DataVotes()))
	// Effective balance drops past the hysteresis threshold.
	val, err := newState.ValidatorAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(29*1e9), val.EffectiveBalance)
	// Slashed amount of the next epoch is reset.
	slashings := newState.Slashings()
	assert.Equal(t, uint64(0), slashings[ne%cfg.EpochsPerSlashingsVector])
	// Randao mix is carried into the next epoch.
	gotMix, err := newState.RandaoMixAtIndex(ne)
	require.NoError(t, err)
	assert.DeepEqual(t, mix, gotMix)
}

func TestProcessFinalUpdates_Eth1VotesReset(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	st, err := testutil.NewBeaconState(func(s *pb.BeaconState) error {
		s.Slot = cfg.EpochsPerEth1VotingPeriod*cfg.SlotsPerEpoch - 1
		s.Eth1DataVotes = []*ethpb.Eth1Data{{DepositRoot: make([]byte, 32), BlockHash: make([]byte, 32)}}
		return nil
	})
	require.NoError(t, err)
	newState := epoch.ProcessEth1DataReset(st)
	assert.Equal(t, 0, len(newState.Eth1DataVotes()))
}

func TestProcessEffectiveBalanceUpdates_Hysteresis(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig()
	inc := cfg.EffectiveBalanceIncrement
	tests := []struct {
		name      string
		effective uint64
		balance   uint64
		want      uint64
	}{
		{name: "small drop keeps effective balance", effective: cfg.MaxEffectiveBalance, balance: cfg.MaxEffectiveBalance - inc/4, want: cfg.MaxEffectiveBalance},
		{name: "large drop lowers effective balance", effective: cfg.MaxEffectiveBalance, balance: cfg.MaxEffectiveBalance - inc, want: cfg.MaxEffectiveBalance - inc},
		{name: "small rise keeps effective balance", effective: 16 * inc, balance: 16*inc + inc, want: 16 * inc},
		{name: "large rise raises effective balance", effective: 16 * inc, balance: 16*inc + 2*inc, want: 18 * inc},
		{name: "capped at max effective balance", effective: 16 * inc, balance: 2 * cfg.MaxEffectiveBalance, want: cfg.MaxEffectiveBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := testutil.NewBeaconState(withValidators(
				[]*ethpb.Validator{{ExitEpoch: cfg.FarFutureEpoch, EffectiveBalance: tt.effective}},
				[]uint64{tt.balance},
			))
			require.NoError(t, err)
			newState, err := epoch.ProcessEffectiveBalanceUpdates(st)
			require.NoError(t, err)
			val, err := newState.ValidatorAtIndex(0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, val.EffectiveBalance)
		})
	}
}

func TestProcessHistoricalRootsUpdate(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	st, err := testutil.NewBeaconState(func(s *pb.BeaconState) error {
		s.Slot = cfg.SlotsPerHistoricalRoot - 1
		s.BlockRoots[3][0] = 'b'
		return nil
	})
	require.NoError(t, err)
	newState, err := epoch.ProcessHistoricalRootsUpdate(st)
	require.NoError(t, err)
	require.Equal(t, 1, len(newState.HistoricalRoots()))
	want, err := (&pb.HistoricalBatch{BlockRoots: st.BlockRoots(), StateRoots: st.StateRoots()}).HashTreeRoot()
	require.NoError(t, err)
	assert.DeepEqual(t, want[:], newState.HistoricalRoots()[0])

	// Not at a batch boundary.
	newState.SetSlot(cfg.SlotsPerHistoricalRoot + cfg.SlotsPerEpoch - 1)
	newState, err = epoch.ProcessHistoricalRootsUpdate(newState)
	require.NoError(t, err)
	assert.Equal(t, 1, len(newState.HistoricalRoots()))
}

func TestProcessFinalUpdates_RotatesAttestations(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	current := []*pb.PendingAttestation{
		{
			AggregationBits: bitfield.Bitlist{0x03},
			Data: &ethpb.AttestationData{
				BeaconBlockRoot: make([]byte, 32),
				Source:          &ethpb.Checkpoint{Root: make([]byte, 32)},
				Target:          &ethpb.Checkpoint{Epoch: 1, Root: make([]byte, 32)},
			},
		},
	}
	st, err := testutil.NewBeaconState(func(s *pb.BeaconState) error {
		s.Slot = 2*cfg.SlotsPerEpoch - 1
		s.CurrentEpochAttestations = current
		return nil
	})
	require.NoError(t, err)
	want, err := st.CloneInnerState().CurrentEpochAttestations[0].HashTreeRoot()
	require.NoError(t, err)

	newState, err := epoch.ProcessFinalUpdates(st)
	require.NoError(t, err)
	assert.Equal(t, 0, len(newState.CurrentEpochAttestations()))
	prev := newState.PreviousEpochAttestations()
	require.Equal(t, 1, len(prev))
	got, err := prev[0].HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// pendingAttestationsForEpoch returns full participation attestations for every committee of
// the epoch, targeting the zero block root of a fresh genesis state.
func pendingAttestationsForEpoch(t *testing.T, st *state.BeaconState, e uint64) []*pb.PendingAttestation {
	activeCount, err := helpers.ActiveValidatorCount(st, e)
	require.NoError(t, err)
	committeesPerSlot := helpers.SlotCommitteeCount(activeCount)
	var atts []*pb.PendingAttestation
	for slot := helpers.StartSlot(e); slot < helpers.StartSlot(e+1); slot++ {
		for idx := uint64(0); idx < committeesPerSlot; idx++ {
			committee, err := helpers.BeaconCommitteeFromState(st, slot, idx)
			require.NoError(t, err)
			bits := bitfield.NewBitlist(uint64(len(committee)))
			for i := range committee {
				bits.SetBitAt(uint64(i), true)
			}
			atts = append(atts, &pb.PendingAttestation{
				AggregationBits: bits,
				Data: &ethpb.AttestationData{
					Slot:            slot,
					CommitteeIndex:  idx,
					BeaconBlockRoot: make([]byte, 32),
					Source:          &ethpb.Checkpoint{Root: make([]byte, 32)},
					Target:          &ethpb.Checkpoint{Epoch: e, Root: make([]byte, 32)},
				},
				InclusionDelay: 1,
			})
		}
	}
	return atts
}

func TestProcessJustificationAndFinalization_LessThan2ndEpoch(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	st, _ := testutil.DeterministicGenesisState(t, 16)
	st.SetSlot(params.BeaconConfig().SlotsPerEpoch)
	before, err := st.HashTreeRoot()
	require.NoError(t, err)

	newState, err := epoch.ProcessJustificationAndFinalization(st)
	require.NoError(t, err)
	after, err := newState.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, before, after, "justification must not run in the first two epochs")
}

func TestProcessJustificationAndFinalization_JustifyBothEpochs(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	st, _ := testutil.DeterministicGenesisState(t, 64)
	st.SetSlot(3*cfg.SlotsPerEpoch - 1)
	st.SetPreviousEpochAttestations(pendingAttestationsForEpoch(t, st, 1))
	st.SetCurrentEpochAttestations(pendingAttestationsForEpoch(t, st, 2))

	newState, err := epoch.ProcessJustificationAndFinalization(st)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), newState.CurrentJustifiedCheckpoint().Epoch)
	assert.Equal(t, uint64(0), newState.PreviousJustifiedCheckpoint().Epoch)
	assert.DeepEqual(t, bitfield.Bitvector4{0x03}, newState.JustificationBits())
	assert.Equal(t, uint64(0), newState.FinalizedCheckpoint().Epoch)
}

func TestProcessJustificationAndFinalization_Finalizes(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()
	st, _ := testutil.DeterministicGenesisState(t, 64)
	st.SetSlot(4*cfg.SlotsPerEpoch - 1)
	st.SetJustificationBits(bitfield.Bitvector4{0x03})
	st.SetPreviousJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: 1, Root: make([]byte, 32)})
	st.SetCurrentJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: 2, Root: make([]byte, 32)})
	st.SetPreviousEpochAttestations(pendingAttestationsForEpoch(t, st, 2))
	st.SetCurrentEpochAttestations(pendingAttestationsForEpoch(t, st, 3))

	newState, err := epoch.ProcessJustificationAndFinalization(st)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), newState.CurrentJustifiedCheckpoint().Epoch)
	assert.Equal(t, uint64(2), newState.PreviousJustifiedCheckpoint().Epoch)
	assert.Equal(t, uint64(2), newState.FinalizedCheckpoint().Epoch)
}

func TestProcessEpoch_CanProcess(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	st, _ := testutil.DeterministicGenesisState(t, 16)
	st.SetSlot(params.BeaconConfig().SlotsPerEpoch - 1)
	newState, err := epoch.ProcessEpoch(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), newState.Slashings()[2], "unexpected slashed balance")
	assert.Equal(t, 0, len(newState.CurrentEpochAttestations()))
}
