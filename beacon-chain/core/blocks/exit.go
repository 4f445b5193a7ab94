package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	v "github.com/prysmaticlabs/transition-vectors/beacon-chain/core/validators"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"go.opencensus.io/trace"
)

// ProcessVoluntaryExits is one of the operations performed
// on each processed beacon block to determine which validators
// should exit the state's validator registry.
//
// Pseudocode definition:
//  def process_voluntary_exit(state: BeaconState, signed_voluntary_exit: SignedVoluntaryExit) -> None:
//    voluntary_exit = signed_voluntary_exit.message
//    validator = state.validators[voluntary_exit.validator_index]
//    # Verify the validator is active
//    assert is_active_validator(validator, get_current_epoch(state))
//    # Verify exit has not been initiated
//    assert validator.exit_epoch == FAR_FUTURE_EPOCH
//    # Exits must specify an epoch when they become valid; they are not valid before then
//    assert get_current_epoch(state) >= voluntary_exit.epoch
//    # Verify the validator has been active long enough
//    assert get_current_epoch(state) >= validator.activation_epoch + SHARD_COMMITTEE_PERIOD
//    # Verify signature
//    domain = get_domain(state, DOMAIN_VOLUNTARY_EXIT, voluntary_exit.epoch)
//    signing_root = compute_signing_root(voluntary_exit, domain)
//    assert bls.Verify(validator.pubkey, signing_root, signed_voluntary_exit.signature)
//    # Initiate exit
//    initiate_validator_exit(state, voluntary_exit.validator_index)
func ProcessVoluntaryExits(
	ctx context.Context,
	st *state.BeaconState,
	exits []*ethpb.SignedVoluntaryExit,
	verifySignatures bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessVoluntaryExits")
	defer span.End()

	if uint64(len(exits)) > params.BeaconConfig().MaxVoluntaryExits {
		return nil, verification.Structuralf("number of voluntary exits (%d) exceeds allowed threshold of %d",
			len(exits), params.BeaconConfig().MaxVoluntaryExits)
	}
	for idx, exit := range exits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if exit == nil || exit.Exit == nil {
			return nil, verification.Structuralf("nil voluntary exit in block body")
		}
		val, err := st.ValidatorAtIndexReadOnly(exit.Exit.ValidatorIndex)
		if err != nil {
			return nil, verification.Structuralf("unknown exiting validator index %d", exit.Exit.ValidatorIndex)
		}
		if err := VerifyExitAndSignature(val, st, exit, verifySignatures); err != nil {
			return nil, errors.Wrapf(err, "could not verify exit %d", idx)
		}
		st, err = v.InitiateValidatorExit(st, exit.Exit.ValidatorIndex)
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}

// VerifyExitAndSignature implements the exit conditions of process_voluntary_exit and,
// when verifySignature is set, checks the exit signature of the validator.
func VerifyExitAndSignature(
	validator *state.ReadOnlyValidator,
	st *state.BeaconState,
	signed *ethpb.SignedVoluntaryExit,
	verifySignature bool,
) error {
	if signed == nil || signed.Exit == nil {
		return verification.Structuralf("nil exit")
	}
	if err := verifyExitConditions(validator, helpers.CurrentEpoch(st), signed.Exit); err != nil {
		return err
	}
	if !verifySignature {
		return nil
	}
	pub := validator.PublicKey()
	return verifySigningRoot(
		st,
		"voluntary exit",
		signed.Exit,
		pub[:],
		signed.Signature,
		params.BeaconConfig().DomainVoluntaryExit,
		signed.Exit.Epoch,
	)
}

func verifyExitConditions(validator *state.ReadOnlyValidator, currentEpoch uint64, exit *ethpb.VoluntaryExit) error {
	// Verify the validator is active.
	if !helpers.IsActiveValidatorUsingTrie(validator, currentEpoch) {
		return verification.Invariantf(verification.ExitNotActive, "non-active validator cannot exit")
	}
	// Verify the validator has not yet exited.
	if validator.ExitEpoch() != params.BeaconConfig().FarFutureEpoch {
		return verification.Invariantf(verification.ExitAlreadyInitiated, "validator has already exited at epoch: %v", validator.ExitEpoch())
	}
	// Exits must specify an epoch when they become valid; they are not valid before then.
	if currentEpoch < exit.Epoch {
		return verification.Invariantf(verification.ExitEpochInFuture, "expected current epoch >= exit epoch, received %d < %d", currentEpoch, exit.Epoch)
	}
	// Verify the validator has been active long enough.
	if currentEpoch < validator.ActivationEpoch()+params.BeaconConfig().ShardCommitteePeriod {
		return verification.Invariantf(
			verification.ExitTooEarly,
			"validator has not been active long enough to exit, wanted epoch %d >= %d",
			currentEpoch,
			validator.ActivationEpoch()+params.BeaconConfig().ShardCommitteePeriod,
		)
	}
	return nil
}
