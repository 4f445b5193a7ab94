package helpers

import (
	"fmt"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

// BlockRootAtSlot returns the block root stored in the BeaconState for a recent slot.
// It returns an error if the requested block root is not within the slot range.
//
// Pseudocode definition:
//  def get_block_root_at_slot(state: BeaconState, slot: Slot) -> Root:
//    """
//    Return the block root at a recent ``slot``.
//    """
//    assert slot < state.slot <= slot + SLOTS_PER_HISTORICAL_ROOT
//    return state.block_roots[slot % SLOTS_PER_HISTORICAL_ROOT]
func BlockRootAtSlot(st *state.BeaconState, slot uint64) ([]byte, error) {
	stateSlot := st.Slot()
	if !(slot < stateSlot && stateSlot <= slot+params.BeaconConfig().SlotsPerHistoricalRoot) {
		return []byte{}, fmt.Errorf("slot %d out of bounds for state slot %d", slot, stateSlot)
	}
	return st.BlockRootAtIndex(slot % params.BeaconConfig().SlotsPerHistoricalRoot)
}

// BlockRoot returns the block root stored in the BeaconState for epoch start slot.
//
// Pseudocode definition:
//  def get_block_root(state: BeaconState, epoch: Epoch) -> Root:
//    """
//    Return the block root at the start of a recent ``epoch``.
//    """
//    return get_block_root_at_slot(state, compute_start_slot_at_epoch(epoch))
func BlockRoot(st *state.BeaconState, epoch uint64) ([]byte, error) {
	return BlockRootAtSlot(st, StartSlot(epoch))
}
