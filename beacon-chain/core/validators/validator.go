// Package validators contains the registry mutations shared by block and epoch
// processing: scheduling exits and slashing validators.
package validators

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/sirupsen/logrus"
)

// InitiateValidatorExit takes in validator index and updates
// validator with correct voluntary exit parameters.
//
// Pseudocode definition:
//  def initiate_validator_exit(state: BeaconState, index: ValidatorIndex) -> None:
//    """
//    Initiate the exit of the validator with index ``index``.
//    """
//    # Return if validator already initiated exit
//    validator = state.validators[index]
//    if validator.exit_epoch != FAR_FUTURE_EPOCH:
//        return
//
//    # Compute exit queue epoch
//    exit_epochs = [v.exit_epoch for v in state.validators if v.exit_epoch != FAR_FUTURE_EPOCH]
//    exit_queue_epoch = max(exit_epochs + [compute_activation_exit_epoch(get_current_epoch(state))])
//    exit_queue_churn = len([v for v in state.validators if v.exit_epoch == exit_queue_epoch])
//    if exit_queue_churn >= get_validator_churn_limit(state):
//        exit_queue_epoch += Epoch(1)
//
//    # Set validator exit epoch and withdrawable epoch
//    validator.exit_epoch = exit_queue_epoch
//    validator.withdrawable_epoch = Epoch(validator.exit_epoch + MIN_VALIDATOR_WITHDRAWABILITY_DELAY)
func InitiateValidatorExit(st *state.BeaconState, idx uint64) (*state.BeaconState, error) {
	validator, err := st.ValidatorAtIndex(idx)
	if err != nil {
		return nil, err
	}
	if validator.ExitEpoch != params.BeaconConfig().FarFutureEpoch {
		return st, nil
	}
	currentEpoch := helpers.CurrentEpoch(st)
	exitQueueEpoch := helpers.ActivationExitEpoch(currentEpoch)
	if err := st.ReadFromEveryValidator(func(idx int, val *state.ReadOnlyValidator) error {
		e := val.ExitEpoch()
		if e != params.BeaconConfig().FarFutureEpoch && e > exitQueueEpoch {
			exitQueueEpoch = e
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// We use the exit queue churn to determine if we have passed a churn limit.
	exitQueueChurn := uint64(0)
	if err := st.ReadFromEveryValidator(func(idx int, val *state.ReadOnlyValidator) error {
		if val.ExitEpoch() == exitQueueEpoch {
			exitQueueChurn++
		}
		return nil
	}); err != nil {
		return nil, err
	}
	activeValidatorCount, err := helpers.ActiveValidatorCount(st, currentEpoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get active validator count")
	}
	churn, err := helpers.ValidatorChurnLimit(activeValidatorCount)
	if err != nil {
		return nil, errors.Wrap(err, "could not get churn limit")
	}

	if exitQueueChurn >= churn {
		exitQueueEpoch++
	}
	validator.ExitEpoch = exitQueueEpoch
	validator.WithdrawableEpoch = exitQueueEpoch + params.BeaconConfig().MinValidatorWithdrawabilityDelay
	if err := st.UpdateValidatorAtIndex(idx, validator); err != nil {
		return nil, err
	}
	return st, nil
}

// SlashValidator slashes the malicious validator's balance and awards
// the whistleblower's balance. The proposer of the current slot is the whistleblower.
func SlashValidator(st *state.BeaconState, slashedIdx uint64) (*state.BeaconState, error) {
	proposerIdx, err := helpers.BeaconProposerIndex(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get proposer idx")
	}
	return SlashValidatorWithWhistleblower(st, slashedIdx, proposerIdx)
}

// SlashValidatorWithWhistleblower slashes the validator at slashedIdx and splits the
// whistleblower reward between the current proposer and whistleBlowerIdx.
//
// Pseudocode definition:
//  def slash_validator(state: BeaconState,
//                    slashed_index: ValidatorIndex,
//                    whistleblower_index: ValidatorIndex=None) -> None:
//    """
//    Slash the validator with index ``slashed_index``.
//    """
//    epoch = get_current_epoch(state)
//    initiate_validator_exit(state, slashed_index)
//    validator = state.validators[slashed_index]
//    validator.slashed = True
//    validator.withdrawable_epoch = max(validator.withdrawable_epoch, Epoch(epoch + EPOCHS_PER_SLASHINGS_VECTOR))
//    state.slashings[epoch % EPOCHS_PER_SLASHINGS_VECTOR] += validator.effective_balance
//    decrease_balance(state, slashed_index, validator.effective_balance // MIN_SLASHING_PENALTY_QUOTIENT)
//
//    # Apply proposer and whistleblower rewards
//    proposer_index = get_beacon_proposer_index(state)
//    if whistleblower_index is None:
//        whistleblower_index = proposer_index
//    whistleblower_reward = Gwei(validator.effective_balance // WHISTLEBLOWER_REWARD_QUOTIENT)
//    proposer_reward = Gwei(whistleblower_reward // PROPOSER_REWARD_QUOTIENT)
//    increase_balance(state, proposer_index, proposer_reward)
//    increase_balance(state, whistleblower_index, whistleblower_reward - proposer_reward)
func SlashValidatorWithWhistleblower(st *state.BeaconState, slashedIdx, whistleBlowerIdx uint64) (*state.BeaconState, error) {
	st, err := InitiateValidatorExit(st, slashedIdx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not initiate validator %d exit", slashedIdx)
	}
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(st)
	validator, err := st.ValidatorAtIndex(slashedIdx)
	if err != nil {
		return nil, err
	}
	validator.Slashed = true
	maxWithdrawableEpoch := validator.WithdrawableEpoch
	if currentEpoch+cfg.EpochsPerSlashingsVector > maxWithdrawableEpoch {
		maxWithdrawableEpoch = currentEpoch + cfg.EpochsPerSlashingsVector
	}
	validator.WithdrawableEpoch = maxWithdrawableEpoch

	if err := st.UpdateValidatorAtIndex(slashedIdx, validator); err != nil {
		return nil, err
	}

	// The slashed validator's effective balance is added to the total slashed balance of the epoch.
	slashedBalance, err := slashingsAt(st, currentEpoch%cfg.EpochsPerSlashingsVector)
	if err != nil {
		return nil, err
	}
	if err := st.UpdateSlashingsAtIndex(currentEpoch%cfg.EpochsPerSlashingsVector, slashedBalance+validator.EffectiveBalance); err != nil {
		return nil, err
	}
	if err := helpers.DecreaseBalance(st, slashedIdx, validator.EffectiveBalance/cfg.MinSlashingPenaltyQuotient); err != nil {
		return nil, err
	}

	proposerIdx, err := helpers.BeaconProposerIndex(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get proposer idx")
	}
	whistleblowerReward := validator.EffectiveBalance / cfg.WhistleBlowerRewardQuotient
	proposerReward := whistleblowerReward / cfg.ProposerRewardQuotient
	if err := helpers.IncreaseBalance(st, proposerIdx, proposerReward); err != nil {
		return nil, err
	}
	if err := helpers.IncreaseBalance(st, whistleBlowerIdx, whistleblowerReward-proposerReward); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"slashed":       slashedIdx,
		"whistleblower": whistleBlowerIdx,
		"penalty":       validator.EffectiveBalance / cfg.MinSlashingPenaltyQuotient,
	}).Debug("Slashed validator")
	return st, nil
}

func slashingsAt(st *state.BeaconState, idx uint64) (uint64, error) {
	slashings := st.Slashings()
	if uint64(len(slashings)) <= idx {
		return 0, errors.Errorf("slashings index %d out of range", idx)
	}
	return slashings[idx], nil
}
