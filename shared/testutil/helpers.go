package testutil

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
)

// HydrateBeaconHeader hydrates a beacon block header with correct field length sizes
// to comply with fssz marshalling and unmarshalling rules.
func HydrateBeaconHeader(h *ethpb.BeaconBlockHeader) *ethpb.BeaconBlockHeader {
	if h.ParentRoot == nil {
		h.ParentRoot = make([]byte, 32)
	}
	if h.StateRoot == nil {
		h.StateRoot = make([]byte, 32)
	}
	if h.BodyRoot == nil {
		h.BodyRoot = make([]byte, 32)
	}
	return h
}

// HydrateSignedBeaconHeader hydrates a signed beacon block header with correct field length sizes.
func HydrateSignedBeaconHeader(h *ethpb.SignedBeaconBlockHeader) *ethpb.SignedBeaconBlockHeader {
	if h.Signature == nil {
		h.Signature = make([]byte, params.BeaconConfig().BLSSignatureLength)
	}
	if h.Header == nil {
		h.Header = &ethpb.BeaconBlockHeader{}
	}
	h.Header = HydrateBeaconHeader(h.Header)
	return h
}

// proposerAtSlot returns the proposer index of slot, advancing a copy of the state when slot is ahead.
func proposerAtSlot(ctx context.Context, st *state.BeaconState, slot uint64) (*state.BeaconState, uint64, error) {
	if slot < st.Slot() {
		return nil, 0, errors.Errorf("slot %d is before state slot %d", slot, st.Slot())
	}
	stub := st.Copy()
	if slot > stub.Slot() {
		var err error
		stub, err = transition.ProcessSlots(ctx, stub, slot)
		if err != nil {
			return nil, 0, errors.Wrap(err, "could not advance state to block slot")
		}
	}
	idx, err := helpers.BeaconProposerIndex(stub)
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not get proposer index")
	}
	return stub, idx, nil
}

// SignBlock fills in the proposer index, randao reveal and state root of the block and
// signs it with the key of the proposer of block.slot. Blocks far ahead of the state
// require running the skipped slots on a copy of the state.
func SignBlock(st *state.BeaconState, blk *ethpb.SignedBeaconBlock, privKeys []bls.SecretKey) (*ethpb.SignedBeaconBlock, error) {
	if blk == nil || blk.Block == nil || blk.Block.Body == nil {
		return nil, errors.New("nil block")
	}
	ctx := context.Background()
	stub, proposerIdx, err := proposerAtSlot(ctx, st, blk.Block.Slot)
	if err != nil {
		return nil, err
	}
	if proposerIdx >= uint64(len(privKeys)) {
		return nil, errors.Errorf("no private key for proposer %d", proposerIdx)
	}
	blk.Block.ProposerIndex = proposerIdx
	epoch := helpers.SlotToEpoch(blk.Block.Slot)
	blk.Block.Body.RandaoReveal, err = helpers.ComputeDomainAndSign(
		stub, epoch, epochObj(epoch), params.BeaconConfig().DomainRandao, privKeys[proposerIdx])
	if err != nil {
		return nil, errors.Wrap(err, "could not sign randao reveal")
	}
	root, err := transition.CalculateStateRoot(ctx, st, blk)
	if err != nil {
		return nil, errors.Wrap(err, "could not calculate state root")
	}
	blk.Block.StateRoot = root[:]
	blk.Signature, err = helpers.ComputeDomainAndSign(
		stub, epoch, blk.Block, params.BeaconConfig().DomainBeaconProposer, privKeys[proposerIdx])
	if err != nil {
		return nil, errors.Wrap(err, "could not sign block")
	}
	return blk, nil
}

// RandaoReveal returns a signature of the requested epoch using the beacon proposer private key.
func RandaoReveal(st *state.BeaconState, epoch uint64, privKeys []bls.SecretKey) ([]byte, error) {
	// We fetch the proposer's index as that is whom the RANDAO will be verified against.
	proposerIdx, err := helpers.BeaconProposerIndex(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	return helpers.ComputeDomainAndSign(st, epoch, epochObj(epoch), params.BeaconConfig().DomainRandao, privKeys[proposerIdx])
}

func epochObj(epoch uint64) *sszutil.SSZUint64 {
	e := sszutil.SSZUint64(epoch)
	return &e
}
