package transition

import (
	"context"

	"github.com/pkg/errors"
	b "github.com/prysmaticlabs/transition-vectors/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ExecuteStateTransitionNoVerifyAnySig defines the procedure for a state transition function.
// This does not validate any BLS signatures of the block, its operations or deposit
// proofs of possession. Deposits with an invalid proof of possession are treated as valid.
func ExecuteStateTransitionNoVerifyAnySig(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
) (*state.BeaconState, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if signed == nil || signed.Block == nil {
		return nil, verification.Structuralf("nil block")
	}

	ctx, span := trace.StartSpan(ctx, "core.state.ExecuteStateTransitionNoVerifyAnySig")
	defer span.End()

	var err error
	st, err = ProcessSlots(ctx, st, signed.Block.Slot)
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not process slots")
	}
	st, err = ProcessBlockNoVerifyAnySig(ctx, st, signed)
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not process block")
	}
	if err := verifyStateRoot(st, signed.Block); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessBlockNoVerifyAnySig creates a new, modified beacon state by applying block operation
// transformations without checking any signature.
func ProcessBlockNoVerifyAnySig(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessBlockNoVerifyAnySig")
	defer span.End()
	return processBlockNoVerify(ctx, st, signed, operationSignatures{})
}

// ProcessBlockForStateRoot processes the block for the purpose of computing its post state root.
// Block, randao and operation signatures are skipped, deposit proofs of possession are not,
// since they decide whether the deposit adds a validator.
func ProcessBlockForStateRoot(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessBlockForStateRoot")
	defer span.End()
	return processBlockNoVerify(ctx, st, signed, operationSignatures{deposits: true})
}

func processBlockNoVerify(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
	sigs operationSignatures,
) (*state.BeaconState, error) {
	st, err := b.ProcessBlockHeaderNoVerify(ctx, st, signed)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block header")
	}
	st, err = b.ProcessRandaoNoVerify(ctx, st, signed.Block.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not process randao")
	}
	st, err = b.ProcessEth1DataInBlock(ctx, st, signed.Block.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not process eth1 data")
	}
	st, err = ProcessOperations(ctx, st, signed.Block.Body, sigs)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block operation")
	}
	return st, nil
}
