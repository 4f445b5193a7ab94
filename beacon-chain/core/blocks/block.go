package blocks

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"go.opencensus.io/trace"
)

// NewGenesisBlock returns the canonical, genesis block for the beacon chain protocol.
func NewGenesisBlock(stateRoot []byte) *ethpb.SignedBeaconBlock {
	return &ethpb.SignedBeaconBlock{
		Block: &ethpb.BeaconBlock{
			ParentRoot: make([]byte, 32),
			StateRoot:  bytesOrZero(stateRoot),
			Body: &ethpb.BeaconBlockBody{
				RandaoReveal: make([]byte, params.BeaconConfig().BLSSignatureLength),
				Eth1Data: &ethpb.Eth1Data{
					DepositRoot: make([]byte, 32),
					BlockHash:   make([]byte, 32),
				},
				Graffiti: make([]byte, 32),
			},
		},
		Signature: make([]byte, params.BeaconConfig().BLSSignatureLength),
	}
}

func bytesOrZero(b []byte) []byte {
	if len(b) == 0 {
		return make([]byte, 32)
	}
	return b
}

// ProcessBlockHeader validates a block by its header and verifies the proposer signature.
//
// Pseudocode definition:
//
//  def process_block_header(state: BeaconState, block: BeaconBlock) -> None:
//    # Verify that the slots match
//    assert block.slot == state.slot
//    # Verify that proposer index is the correct index
//    assert block.proposer_index == get_beacon_proposer_index(state)
//    # Verify that the parent matches
//    assert block.parent_root == hash_tree_root(state.latest_block_header)
//    # Cache current block as the new latest block
//    state.latest_block_header = BeaconBlockHeader(
//        slot=block.slot,
//        proposer_index=block.proposer_index,
//        parent_root=block.parent_root,
//        state_root=Bytes32(),  # Overwritten in the next process_slot call
//        body_root=hash_tree_root(block.body),
//    )
//
//    # Verify proposer is not slashed
//    proposer = state.validators[block.proposer_index]
//    assert not proposer.slashed
func ProcessBlockHeader(ctx context.Context, st *state.BeaconState, block *ethpb.SignedBeaconBlock) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessBlockHeader")
	defer span.End()

	st, err := ProcessBlockHeaderNoVerify(ctx, st, block)
	if err != nil {
		return nil, err
	}
	if err := VerifyBlockSignature(st, block); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessBlockHeaderNoVerify validates a block by its header but skips proposer
// signature verification.
func ProcessBlockHeaderNoVerify(ctx context.Context, st *state.BeaconState, signed *ethpb.SignedBeaconBlock) (*state.BeaconState, error) {
	if err := verifyNilBeaconBlock(signed); err != nil {
		return nil, err
	}
	block := signed.Block
	if st.Slot() != block.Slot {
		return nil, verification.Structuralf("state slot %d is different than block slot %d", st.Slot(), block.Slot)
	}
	idx, err := helpers.BeaconProposerIndex(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	if block.ProposerIndex != idx {
		return nil, verification.Structuralf("proposer index %d is different than calculated %d", block.ProposerIndex, idx)
	}
	parentHeader := st.LatestBlockHeader()
	parentRoot, err := parentHeader.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash latest block header")
	}
	if !bytes.Equal(block.ParentRoot, parentRoot[:]) {
		return nil, verification.Structuralf(
			"parent root %#x does not match the latest block header signing root in state %#x",
			block.ParentRoot, parentRoot[:])
	}

	proposer, err := st.ValidatorAtIndexReadOnly(idx)
	if err != nil {
		return nil, err
	}
	if proposer.Slashed() {
		return nil, verification.Invariantf(verification.ProposerSlashed, "proposer at index %d was previously slashed", idx)
	}

	bodyRoot, err := block.Body.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash block body")
	}
	st.SetLatestBlockHeader(&ethpb.BeaconBlockHeader{
		Slot:          block.Slot,
		ProposerIndex: block.ProposerIndex,
		ParentRoot:    block.ParentRoot,
		StateRoot:     make([]byte, 32),
		BodyRoot:      bodyRoot[:],
	})
	return st, nil
}
