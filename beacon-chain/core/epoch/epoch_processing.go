// Package epoch contains epoch processing libraries. These libraries
// justify and finalize checkpoints, update the validator registry,
// apply slashing penalties and rotate the per-epoch state vectors.
package epoch

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/validators"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"go.opencensus.io/trace"
)

func sortUint64(a []uint64) {
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
}

// CanProcessEpoch checks the eligibility to process epoch.
// The epoch can be processed at the end of the last slot of every epoch
//
// Pseudocode definition:
//    If (state.slot + 1) % SLOTS_PER_EPOCH == 0:
func CanProcessEpoch(st *state.BeaconState) bool {
	return (st.Slot()+1)%params.BeaconConfig().SlotsPerEpoch == 0
}

// ProcessEpoch describes the per epoch operations that are performed on the beacon state.
//
// Pseudocode definition:
//  def process_epoch(state: BeaconState) -> None:
//    process_justification_and_finalization(state)
//    process_registry_updates(state)
//    process_slashings(state)
//    process_final_updates(state)
func ProcessEpoch(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.epoch.ProcessEpoch")
	defer span.End()

	if st == nil {
		return nil, errors.New("nil state")
	}
	st, err := ProcessJustificationAndFinalization(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process justification")
	}
	st, err = ProcessRegistryUpdates(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process registry updates")
	}
	st, err = ProcessSlashings(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process slashings")
	}
	st, err = ProcessFinalUpdates(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process final updates")
	}
	return st, nil
}

// ProcessRegistryUpdates rotates validators in and out of active pool.
// the amount to rotate is determined churn limit.
//
// Pseudocode definition:
//   def process_registry_updates(state: BeaconState) -> None:
//    # Process activation eligibility and ejections
//    for index, validator in enumerate(state.validators):
//        if is_eligible_for_activation_queue(validator):
//            validator.activation_eligibility_epoch = get_current_epoch(state) + 1
//
//        if is_active_validator(validator, get_current_epoch(state)) and validator.effective_balance <= EJECTION_BALANCE:
//            initiate_validator_exit(state, ValidatorIndex(index))
//
//    # Queue validators eligible for activation and not yet dequeued for activation
//    activation_queue = sorted([
//        index for index, validator in enumerate(state.validators)
//        if is_eligible_for_activation(state, validator)
//        # Order by the sequence of activation_eligibility_epoch setting and then index
//    ], key=lambda index: (state.validators[index].activation_eligibility_epoch, index))
//    # Dequeued validators for activation up to churn limit
//    for index in activation_queue[:get_validator_churn_limit(state)]:
//        validator = state.validators[index]
//        validator.activation_epoch = compute_activation_exit_epoch(get_current_epoch(state))
func ProcessRegistryUpdates(st *state.BeaconState) (*state.BeaconState, error) {
	currentEpoch := helpers.CurrentEpoch(st)
	cfg := params.BeaconConfig()

	var err error
	vals := st.Validators()
	for idx, val := range vals {
		if helpers.IsEligibleForActivationQueue(val) {
			val.ActivationEligibilityEpoch = currentEpoch + 1
			if err := st.UpdateValidatorAtIndex(uint64(idx), val); err != nil {
				return nil, err
			}
		}
		if helpers.IsActiveValidator(val, currentEpoch) && val.EffectiveBalance <= cfg.EjectionBalance {
			log.WithField("validatorIndex", idx).Debug("Ejecting validator")
			st, err = validators.InitiateValidatorExit(st, uint64(idx))
			if err != nil {
				return nil, errors.Wrapf(err, "could not initiate exit for validator %d", idx)
			}
		}
	}

	// Queue validators eligible for activation and not yet dequeued for activation.
	vals = st.Validators()
	var activationQ []uint64
	for idx, val := range vals {
		if helpers.IsEligibleForActivation(st, val) {
			activationQ = append(activationQ, uint64(idx))
		}
	}
	sort.Sort(sortableIndices{indices: activationQ, validators: vals})

	activeValidatorCount, err := helpers.ActiveValidatorCount(st, currentEpoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get active validator count")
	}
	churnLimit, err := helpers.ValidatorChurnLimit(activeValidatorCount)
	if err != nil {
		return nil, errors.Wrap(err, "could not get churn limit")
	}
	// Prevent churn limit cause index out of bound.
	if churnLimit < uint64(len(activationQ)) {
		activationQ = activationQ[:churnLimit]
	}
	activationExitEpoch := helpers.ActivationExitEpoch(currentEpoch)
	for _, index := range activationQ {
		val := vals[index]
		val.ActivationEpoch = activationExitEpoch
		if err := st.UpdateValidatorAtIndex(index, val); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// ProcessSlashings processes the slashed validators during epoch processing,
//
// Pseudocode definition:
//  def process_slashings(state: BeaconState) -> None:
//    epoch = get_current_epoch(state)
//    total_balance = get_total_active_balance(state)
//    adjusted_total_slashing_balance = min(sum(state.slashings) * PROPORTIONAL_SLASHING_MULTIPLIER, total_balance)
//    for index, validator in enumerate(state.validators):
//        if validator.slashed and epoch + EPOCHS_PER_SLASHINGS_VECTOR // 2 == validator.withdrawable_epoch:
//            increment = EFFECTIVE_BALANCE_INCREMENT  # Factored out from penalty numerator to avoid uint64 overflow
//            penalty_numerator = validator.effective_balance // increment * adjusted_total_slashing_balance
//            penalty = penalty_numerator // total_balance * increment
//            decrease_balance(state, ValidatorIndex(index), penalty)
func ProcessSlashings(st *state.BeaconState) (*state.BeaconState, error) {
	currentEpoch := helpers.CurrentEpoch(st)
	totalBalance, err := helpers.TotalActiveBalance(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get total active balance")
	}
	cfg := params.BeaconConfig()

	// Compute slashed balances in the current epoch
	totalSlashing := uint64(0)
	for _, slashing := range st.Slashings() {
		totalSlashing += slashing
	}
	adjusted := totalSlashing * cfg.ProportionalSlashingMultiplier
	if adjusted > totalBalance {
		adjusted = totalBalance
	}

	epochToWithdraw := currentEpoch + cfg.EpochsPerSlashingsVector/2
	increment := cfg.EffectiveBalanceIncrement
	penalties := make(map[uint64]uint64)
	if err := st.ReadFromEveryValidator(func(idx int, val *state.ReadOnlyValidator) error {
		if val.Slashed() && val.WithdrawableEpoch() == epochToWithdraw {
			penaltyNumerator := val.EffectiveBalance() / increment * adjusted
			penalties[uint64(idx)] = penaltyNumerator / totalBalance * increment
		}
		return nil
	}); err != nil {
		return nil, err
	}
	indices := make([]uint64, 0, len(penalties))
	for idx := range penalties {
		indices = append(indices, idx)
	}
	sortUint64(indices)
	for _, idx := range indices {
		if err := helpers.DecreaseBalance(st, idx, penalties[idx]); err != nil {
			return nil, err
		}
		log.WithField("validatorIndex", idx).WithField("penalty", penalties[idx]).Debug("Applied slashing penalty")
	}
	return st, nil
}

// ProcessFinalUpdates processes the final updates during epoch processing.
//
// Pseudocode definition:
//  def process_final_updates(state: BeaconState) -> None:
//    current_epoch = get_current_epoch(state)
//    next_epoch = Epoch(current_epoch + 1)
//    # Reset eth1 data votes
//    if next_epoch % EPOCHS_PER_ETH1_VOTING_PERIOD == 0:
//        state.eth1_data_votes = []
//    # Update effective balances with hysteresis
//    for index, validator in enumerate(state.validators):
//        balance = state.balances[index]
//        HYSTERESIS_INCREMENT = EFFECTIVE_BALANCE_INCREMENT // HYSTERESIS_QUOTIENT
//        DOWNWARD_THRESHOLD = HYSTERESIS_INCREMENT * HYSTERESIS_DOWNWARD_MULTIPLIER
//        UPWARD_THRESHOLD = HYSTERESIS_INCREMENT * HYSTERESIS_UPWARD_MULTIPLIER
//        if (
//            balance + DOWNWARD_THRESHOLD < validator.effective_balance
//            or validator.effective_balance + UPWARD_THRESHOLD < balance
//        ):
//            validator.effective_balance = min(balance - balance % EFFECTIVE_BALANCE_INCREMENT, MAX_EFFECTIVE_BALANCE)
//    # Reset slashings
//    state.slashings[next_epoch % EPOCHS_PER_SLASHINGS_VECTOR] = Gwei(0)
//    # Set randao mix
//    state.randao_mixes[next_epoch % EPOCHS_PER_HISTORICAL_VECTOR] = get_randao_mix(state, current_epoch)
//    # Set historical root accumulator
//    if next_epoch % (SLOTS_PER_HISTORICAL_ROOT // SLOTS_PER_EPOCH) == 0:
//        historical_batch = HistoricalBatch(block_roots=state.block_roots, state_roots=state.state_roots)
//        state.historical_roots.append(hash_tree_root(historical_batch))
//    # Rotate current/previous epoch attestations
//    state.previous_epoch_attestations = state.current_epoch_attestations
//    state.current_epoch_attestations = []
func ProcessFinalUpdates(st *state.BeaconState) (*state.BeaconState, error) {
	st = ProcessEth1DataReset(st)
	st, err := ProcessEffectiveBalanceUpdates(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessSlashingsReset(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessRandaoMixesReset(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessHistoricalRootsUpdate(st)
	if err != nil {
		return nil, err
	}
	st.RotateAttestations()
	return st, nil
}

// ProcessEth1DataReset clears the eth1 vote pool at the end of a voting period.
func ProcessEth1DataReset(st *state.BeaconState) *state.BeaconState {
	nextEpoch := helpers.NextEpoch(st)
	if nextEpoch%params.BeaconConfig().EpochsPerEth1VotingPeriod == 0 {
		st.SetEth1DataVotes([]*ethpb.Eth1Data{})
	}
	return st
}

// ProcessEffectiveBalanceUpdates moves effective balances toward balances, using hysteresis to
// avoid flapping on small changes.
func ProcessEffectiveBalanceUpdates(st *state.BeaconState) (*state.BeaconState, error) {
	cfg := params.BeaconConfig()
	hysteresisInc := cfg.EffectiveBalanceIncrement / cfg.HysteresisQuotient
	downwardThreshold := hysteresisInc * cfg.HysteresisDownwardMultiplier
	upwardThreshold := hysteresisInc * cfg.HysteresisUpwardMultiplier

	bals := st.Balances()
	validatorFunc := func(idx int, val *ethpb.Validator) (bool, error) {
		if val == nil {
			return false, errors.Errorf("validator %d is nil in state", idx)
		}
		if idx >= len(bals) {
			return false, errors.Errorf("validator index exceeds validator length in state %d >= %d", idx, len(bals))
		}
		balance := bals[idx]
		if balance+downwardThreshold < val.EffectiveBalance || val.EffectiveBalance+upwardThreshold < balance {
			effectiveBal := balance - balance%cfg.EffectiveBalanceIncrement
			if effectiveBal > cfg.MaxEffectiveBalance {
				effectiveBal = cfg.MaxEffectiveBalance
			}
			if effectiveBal != val.EffectiveBalance {
				val.EffectiveBalance = effectiveBal
				return true, nil
			}
		}
		return false, nil
	}
	if err := st.ApplyToEveryValidator(validatorFunc); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessSlashingsReset zeroes the slashings entry of the next epoch.
func ProcessSlashingsReset(st *state.BeaconState) (*state.BeaconState, error) {
	nextEpoch := helpers.NextEpoch(st)
	slashedExitLength := params.BeaconConfig().EpochsPerSlashingsVector
	if err := st.UpdateSlashingsAtIndex(nextEpoch%slashedExitLength, 0); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessRandaoMixesReset carries the current randao mix forward into the next epoch's slot.
func ProcessRandaoMixesReset(st *state.BeaconState) (*state.BeaconState, error) {
	currentEpoch := helpers.CurrentEpoch(st)
	nextEpoch := currentEpoch + 1
	randaoMixLength := params.BeaconConfig().EpochsPerHistoricalVector
	mix, err := helpers.RandaoMix(st, currentEpoch)
	if err != nil {
		return nil, err
	}
	if err := st.UpdateRandaoMixesAtIndex(nextEpoch%randaoMixLength, mix); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessHistoricalRootsUpdate appends the root of the current historical batch once every
// SLOTS_PER_HISTORICAL_ROOT slots.
func ProcessHistoricalRootsUpdate(st *state.BeaconState) (*state.BeaconState, error) {
	nextEpoch := helpers.NextEpoch(st)
	epochsPerHistoricalRoot := params.BeaconConfig().SlotsPerHistoricalRoot / params.BeaconConfig().SlotsPerEpoch
	if nextEpoch%epochsPerHistoricalRoot != 0 {
		return st, nil
	}
	batch := &pb.HistoricalBatch{
		BlockRoots: st.BlockRoots(),
		StateRoots: st.StateRoots(),
	}
	batchRoot, err := batch.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash historical batch")
	}
	st.AppendHistoricalRoots(batchRoot)
	log.WithField("epoch", nextEpoch).Debug("Appended historical root")
	return st, nil
}
