// Package transition implements the whole state transition
// function which consists of per slot, per-epoch transitions, and
// bootstraps the empty genesis state used by scenarios.
package transition

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	b "github.com/prysmaticlabs/transition-vectors/beacon-chain/core/blocks"
	e "github.com/prysmaticlabs/transition-vectors/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/featureconfig"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ApplyBlock applies a signed block to a copy of the given state, checking signatures
// according to mode. The input state is never mutated: on failure the caller keeps
// its pre-state and the partially processed copy is discarded.
func ApplyBlock(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
	mode SignatureMode,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ApplyBlock")
	defer span.End()

	if st == nil {
		return nil, errors.New("nil state")
	}
	if signed == nil || signed.Block == nil {
		return nil, verification.Structuralf("nil block")
	}
	if signed.Block.Slot <= st.Slot() {
		appliedBlocks.WithLabelValues(string(verification.KindSlotOrder)).Inc()
		return nil, &verification.SlotOrderError{BlockSlot: signed.Block.Slot, StateSlot: st.Slot()}
	}
	span.AddAttributes(
		trace.Int64Attribute("slot", int64(signed.Block.Slot)),
		trace.BoolAttribute("verifySignatures", mode.Verify()),
	)

	start := time.Now()
	var post *state.BeaconState
	var err error
	if mode.Verify() {
		post, err = ExecuteStateTransition(ctx, st.Copy(), signed)
	} else {
		post, err = ExecuteStateTransitionNoVerifyAnySig(ctx, st.Copy(), signed)
	}
	if err != nil {
		appliedBlocks.WithLabelValues(string(verification.Classify(err))).Inc()
		traceErr(span, err)
		return nil, err
	}
	blockProcessingTime.Observe(float64(time.Since(start).Milliseconds()))
	appliedBlocks.WithLabelValues("ok").Inc()
	log.WithFields(logrus.Fields{
		"slot":          signed.Block.Slot,
		"proposerIndex": signed.Block.ProposerIndex,
		"mode":          mode.String(),
	}).Debug("Applied block")
	return post, nil
}

// ExecuteStateTransition defines the procedure for a state transition function.
//
// Pseudocode definition:
//  def state_transition(state: BeaconState, signed_block: SignedBeaconBlock, validate_result: bool=True) -> None:
//    block = signed_block.message
//    # Process slots (including those with no blocks) since block
//    process_slots(state, block.slot)
//    # Verify signature
//    if validate_result:
//        assert verify_block_signature(state, signed_block)
//    # Process block
//    process_block(state, block)
//    # Verify state root
//    if validate_result:
//        assert block.state_root == hash_tree_root(state)
//
// The state is mutated in place. Callers that need the pre-state should pass a copy, as ApplyBlock does.
func ExecuteStateTransition(
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

	ctx, span := trace.StartSpan(ctx, "core.state.ExecuteStateTransition")
	defer span.End()

	var err error
	st, err = ProcessSlots(ctx, st, signed.Block.Slot)
	if err != nil {
		return nil, errors.Wrap(err, "could not process slot")
	}
	st, err = ProcessBlock(ctx, st, signed)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block")
	}
	if err := verifyStateRoot(st, signed.Block); err != nil {
		return nil, err
	}
	return st, nil
}

// CalculateStateRoot defines the procedure for a state transition function.
// This does not validate any BLS signatures in a block, it is used for calculating the
// state root of the state for the block proposer to use.
// This does not modify state.
func CalculateStateRoot(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.CalculateStateRoot")
	defer span.End()

	if ctx.Err() != nil {
		traceErr(span, ctx.Err())
		return [32]byte{}, ctx.Err()
	}
	if st == nil {
		return [32]byte{}, errors.New("nil state")
	}
	if signed == nil || signed.Block == nil {
		return [32]byte{}, verification.Structuralf("nil block")
	}

	// Copy state to avoid mutating the state reference.
	st = st.Copy()

	var err error
	if st.Slot() < signed.Block.Slot {
		st, err = ProcessSlots(ctx, st, signed.Block.Slot)
		if err != nil {
			traceErr(span, err)
			return [32]byte{}, errors.Wrap(err, "could not process slots")
		}
	}
	st, err = ProcessBlockForStateRoot(ctx, st, signed)
	if err != nil {
		traceErr(span, err)
		return [32]byte{}, errors.Wrap(err, "could not process block")
	}
	return st.HashTreeRoot()
}

// ProcessSlot happens every slot and focuses on the slot counter and block roots record updates.
// It happens regardless if there's an incoming block or not.
//
// Pseudocode definition:
//  def process_slot(state: BeaconState) -> None:
//    # Cache state root
//    previous_state_root = hash_tree_root(state)
//    state.state_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_state_root
//    # Cache latest block header state root
//    if state.latest_block_header.state_root == Bytes32():
//        state.latest_block_header.state_root = previous_state_root
//    # Cache block root
//    previous_block_root = hash_tree_root(state.latest_block_header)
//    state.block_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_block_root
func ProcessSlot(ctx context.Context, st *state.BeaconState) (*state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.state.ProcessSlot")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("slot", int64(st.Slot())))

	prevStateRoot, err := st.HashTreeRoot()
	if err != nil {
		traceErr(span, err)
		return nil, err
	}
	historicalIdx := st.Slot() % params.BeaconConfig().SlotsPerHistoricalRoot
	if err := st.UpdateStateRootAtIndex(historicalIdx, prevStateRoot); err != nil {
		return nil, err
	}
	header := st.LatestBlockHeader()
	if header == nil {
		return nil, errors.New("nil latest block header in state")
	}
	if bytes.Equal(header.StateRoot, params.BeaconConfig().ZeroHash[:]) || len(header.StateRoot) == 0 {
		header.StateRoot = prevStateRoot[:]
		st.SetLatestBlockHeader(header)
	}
	prevBlockRoot, err := header.HashTreeRoot()
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not determine prev block root")
	}
	if err := st.UpdateBlockRootAtIndex(historicalIdx, prevBlockRoot); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessSlots process through skip slots and apply epoch transition when it's needed
//
// Pseudocode definition:
//  def process_slots(state: BeaconState, slot: Slot) -> None:
//    assert state.slot < slot
//    while state.slot < slot:
//        process_slot(state)
//        # Process epoch on the start slot of the next epoch
//        if (state.slot + 1) % SLOTS_PER_EPOCH == 0:
//            process_epoch(state)
//        state.slot = Slot(state.slot + 1)
func ProcessSlots(ctx context.Context, st *state.BeaconState, slot uint64) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlots")
	defer span.End()
	if st == nil {
		return nil, errors.New("nil state")
	}
	span.AddAttributes(trace.Int64Attribute("slots", int64(slot)-int64(st.Slot())))

	if st.Slot() >= slot {
		err := errors.Errorf("expected state.slot %d < slot %d", st.Slot(), slot)
		traceErr(span, err)
		return nil, err
	}

	var err error
	for st.Slot() < slot {
		if ctx.Err() != nil {
			traceErr(span, ctx.Err())
			return nil, ctx.Err()
		}
		st, err = ProcessSlot(ctx, st)
		if err != nil {
			traceErr(span, err)
			return nil, errors.Wrap(err, "could not process slot")
		}
		if e.CanProcessEpoch(st) {
			st, err = e.ProcessEpoch(ctx, st)
			if err != nil {
				traceErr(span, err)
				return nil, errors.Wrap(err, "could not process epoch")
			}
			processedEpochs.Inc()
			log.WithField("epoch", (st.Slot()+1)/params.BeaconConfig().SlotsPerEpoch).Debug("Processed epoch transition")
		}
		st.SetSlot(st.Slot() + 1)
		processedSlots.Inc()
	}
	return st, nil
}

// ProcessBlock creates a new, modified beacon state by applying block operation
// transformations as defined in the Ethereum Serenity specification, including processing proposer slashings,
// processing block attestations, and more. Every signature is verified.
//
// Pseudocode definition:
//  def process_block(state: BeaconState, block: BeaconBlock) -> None:
//    process_block_header(state, block)
//    process_randao(state, block.body)
//    process_eth1_data(state, block.body)
//    process_operations(state, block.body)
func ProcessBlock(
	ctx context.Context,
	st *state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessBlock")
	defer span.End()

	st, err := b.ProcessBlockHeader(ctx, st, signed)
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not process block header")
	}
	st, err = b.ProcessRandao(ctx, st, signed.Block.Body)
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not verify and process randao")
	}
	st, err = b.ProcessEth1DataInBlock(ctx, st, signed.Block.Body)
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not process eth1 data")
	}
	st, err = ProcessOperations(ctx, st, signed.Block.Body, operationSignatures{all: true, deposits: true})
	if err != nil {
		traceErr(span, err)
		return nil, errors.Wrap(err, "could not process block operation")
	}
	return st, nil
}

// operationSignatures toggles the signature checks of the operation processors.
// Deposit proofs of possession are tracked apart from the rest: they decide whether a
// validator is added, so they are kept when only the state root is wanted.
type operationSignatures struct {
	all      bool
	deposits bool
}

// ProcessOperations processes the operations in the beacon block and updates beacon state
// with the operations in block.
//
// Pseudocode definition:
//  def process_operations(state: BeaconState, body: BeaconBlockBody) -> None:
//    # Verify that outstanding deposits are processed up to the maximum number of deposits
//    assert len(body.deposits) == min(MAX_DEPOSITS, state.eth1_data.deposit_count - state.eth1_deposit_index)
//
//    def for_ops(operations: Sequence[Any], fn: Callable[[BeaconState, Any], None]) -> None:
//        for operation in operations:
//            fn(state, operation)
//
//    for_ops(body.proposer_slashings, process_proposer_slashing)
//    for_ops(body.attester_slashings, process_attester_slashing)
//    for_ops(body.attestations, process_attestation)
//    for_ops(body.deposits, process_deposit)
//    for_ops(body.voluntary_exits, process_voluntary_exit)
//    for_ops(body.transfers, process_transfer)
func ProcessOperations(
	ctx context.Context,
	st *state.BeaconState,
	body *ethpb.BeaconBlockBody,
	sigs operationSignatures,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessOperations")
	defer span.End()

	if body == nil {
		return nil, verification.Structuralf("nil block body")
	}

	var err error
	st, err = b.ProcessProposerSlashings(ctx, st, body.ProposerSlashings, sigs.all)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block proposer slashings")
	}
	st, err = b.ProcessAttesterSlashings(ctx, st, body.AttesterSlashings, sigs.all)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block attester slashings")
	}
	st, err = b.ProcessAttestations(ctx, st, body.Attestations, sigs.all)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block attestations")
	}
	st, err = b.ProcessDeposits(ctx, st, body.Deposits, sigs.deposits)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block validator deposits")
	}
	st, err = b.ProcessVoluntaryExits(ctx, st, body.VoluntaryExits, sigs.all)
	if err != nil {
		return nil, errors.Wrap(err, "could not process validator exits")
	}
	st, err = b.ProcessTransfers(ctx, st, body.Transfers, sigs.all)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block transfers")
	}
	return st, nil
}

func verifyStateRoot(st *state.BeaconState, blk *ethpb.BeaconBlock) error {
	if !featureconfig.Get().VerifyStateRoot {
		return nil
	}
	postStateRoot, err := st.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not compute post state root")
	}
	if !bytes.Equal(postStateRoot[:], blk.StateRoot) {
		return verification.Structuralf("validate state root failed, wanted: %#x, received: %#x",
			bytesutil.Trunc(postStateRoot[:]), bytesutil.Trunc(blk.StateRoot))
	}
	return nil
}

func traceErr(span *trace.Span, err error) {
	span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
}
