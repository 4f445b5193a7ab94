package epoch

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/attestationutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/sirupsen/logrus"
)

// MatchingTargetAttestations returns the pending attestations of epoch whose target root
// is the block root at the start of that epoch.
//
// Pseudocode definition:
//  def get_matching_target_attestations(state: BeaconState, epoch: Epoch) -> Sequence[PendingAttestation]:
//    return [
//        a for a in get_matching_source_attestations(state, epoch)
//        if a.data.target.root == get_block_root(state, epoch)
//    ]
func MatchingTargetAttestations(st *state.BeaconState, epoch uint64) ([]*pb.PendingAttestation, error) {
	var source []*pb.PendingAttestation
	switch epoch {
	case helpers.CurrentEpoch(st):
		source = st.CurrentEpochAttestations()
	case helpers.PrevEpoch(st):
		source = st.PreviousEpochAttestations()
	default:
		return nil, errors.Errorf("epoch %d is neither the previous nor the current epoch", epoch)
	}
	targetRoot, err := helpers.BlockRoot(st, epoch)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get block root for epoch %d", epoch)
	}
	matched := make([]*pb.PendingAttestation, 0, len(source))
	for _, a := range source {
		if a.Data != nil && a.Data.Target != nil && bytes.Equal(a.Data.Target.Root, targetRoot) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// UnslashedAttestingIndices returns the sorted indices of unslashed validators that took part
// in any of the given attestations.
func UnslashedAttestingIndices(st *state.BeaconState, atts []*pb.PendingAttestation) ([]uint64, error) {
	seen := make(map[uint64]bool)
	var indices []uint64
	for _, a := range atts {
		committee, err := helpers.BeaconCommitteeFromState(st, a.Data.Slot, a.Data.CommitteeIndex)
		if err != nil {
			return nil, err
		}
		attesters, err := attestationutil.AttestingIndices(a.AggregationBits, committee)
		if err != nil {
			return nil, err
		}
		for _, idx := range attesters {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			val, err := st.ValidatorAtIndexReadOnly(idx)
			if err != nil {
				return nil, err
			}
			if !val.Slashed() {
				indices = append(indices, idx)
			}
		}
	}
	sortUint64(indices)
	return indices, nil
}

// AttestingBalance returns the total effective balance of the unslashed validators in atts.
func AttestingBalance(st *state.BeaconState, atts []*pb.PendingAttestation) (uint64, error) {
	indices, err := UnslashedAttestingIndices(st, atts)
	if err != nil {
		return 0, err
	}
	return helpers.TotalBalance(st, indices), nil
}

// ProcessJustificationAndFinalization processes justification and finalization during
// epoch processing. This is where a beacon node can justify and finalize a new epoch.
//
// Pseudocode definition:
//  def process_justification_and_finalization(state: BeaconState) -> None:
//    if get_current_epoch(state) <= GENESIS_EPOCH + 1:
//        return
//
//    previous_epoch = get_previous_epoch(state)
//    current_epoch = get_current_epoch(state)
//    old_previous_justified_checkpoint = state.previous_justified_checkpoint
//    old_current_justified_checkpoint = state.current_justified_checkpoint
//
//    # Process justifications
//    state.previous_justified_checkpoint = state.current_justified_checkpoint
//    state.justification_bits[1:] = state.justification_bits[:-1]
//    state.justification_bits[0] = 0b0
//    matching_target_attestations = get_matching_target_attestations(state, previous_epoch)  # Previous epoch
//    if get_attesting_balance(state, matching_target_attestations) * 3 >= get_total_active_balance(state) * 2:
//        state.current_justified_checkpoint = Checkpoint(epoch=previous_epoch,
//                                                        root=get_block_root(state, previous_epoch))
//        state.justification_bits[1] = 0b1
//    matching_target_attestations = get_matching_target_attestations(state, current_epoch)  # Current epoch
//    if get_attesting_balance(state, matching_target_attestations) * 3 >= get_total_active_balance(state) * 2:
//        state.current_justified_checkpoint = Checkpoint(epoch=current_epoch,
//                                                        root=get_block_root(state, current_epoch))
//        state.justification_bits[0] = 0b1
//
//    # Process finalizations
//    bits = state.justification_bits
//    # The 2nd/3rd/4th most recent epochs are justified, the 2nd using the 4th as source
//    if all(bits[1:4]) and old_previous_justified_checkpoint.epoch + 3 == current_epoch:
//        state.finalized_checkpoint = old_previous_justified_checkpoint
//    # The 2nd/3rd most recent epochs are justified, the 2nd using the 3rd as source
//    if all(bits[1:3]) and old_previous_justified_checkpoint.epoch + 2 == current_epoch:
//        state.finalized_checkpoint = old_previous_justified_checkpoint
//    # The 1st/2nd/3rd most recent epochs are justified, the 1st using the 3rd as source
//    if all(bits[0:3]) and old_current_justified_checkpoint.epoch + 2 == current_epoch:
//        state.finalized_checkpoint = old_current_justified_checkpoint
//    # The 1st/2nd most recent epochs are justified, the 1st using the 2nd as source
//    if all(bits[0:2]) and old_current_justified_checkpoint.epoch + 1 == current_epoch:
//        state.finalized_checkpoint = old_current_justified_checkpoint
func ProcessJustificationAndFinalization(st *state.BeaconState) (*state.BeaconState, error) {
	currentEpoch := helpers.CurrentEpoch(st)
	if currentEpoch <= params.BeaconConfig().GenesisEpoch+1 {
		return st, nil
	}
	prevEpoch := helpers.PrevEpoch(st)
	totalActive, err := helpers.TotalActiveBalance(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get total active balance")
	}
	prevTarget, err := MatchingTargetAttestations(st, prevEpoch)
	if err != nil {
		return nil, err
	}
	prevAttested, err := AttestingBalance(st, prevTarget)
	if err != nil {
		return nil, err
	}
	currTarget, err := MatchingTargetAttestations(st, currentEpoch)
	if err != nil {
		return nil, err
	}
	currAttested, err := AttestingBalance(st, currTarget)
	if err != nil {
		return nil, err
	}
	return weighJustificationAndFinalization(st, totalActive, prevAttested, currAttested)
}

func weighJustificationAndFinalization(st *state.BeaconState, totalActive, prevAttested, currAttested uint64) (*state.BeaconState, error) {
	prevEpoch := helpers.PrevEpoch(st)
	currentEpoch := helpers.CurrentEpoch(st)
	oldPrevJustified := st.PreviousJustifiedCheckpoint()
	oldCurrJustified := st.CurrentJustifiedCheckpoint()
	st.SetPreviousJustifiedCheckpoint(ethpb.CopyCheckpoint(oldCurrJustified))

	oldBits := st.JustificationBits()
	newBits := bitfield.Bitvector4{(oldBits[0] << 1) & 0x0f}

	if 3*prevAttested >= 2*totalActive {
		root, err := helpers.BlockRoot(st, prevEpoch)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get block root for previous epoch %d", prevEpoch)
		}
		st.SetCurrentJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: prevEpoch, Root: root})
		newBits.SetBitAt(1, true)
	}
	if 3*currAttested >= 2*totalActive {
		root, err := helpers.BlockRoot(st, currentEpoch)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get block root for current epoch %d", currentEpoch)
		}
		st.SetCurrentJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: currentEpoch, Root: root})
		newBits.SetBitAt(0, true)
	}
	st.SetJustificationBits(newBits)

	justified := func(from, to uint64) bool {
		for i := from; i < to; i++ {
			if !newBits.BitAt(i) {
				return false
			}
		}
		return true
	}
	var finalized *ethpb.Checkpoint
	if justified(1, 4) && oldPrevJustified.Epoch+3 == currentEpoch {
		finalized = oldPrevJustified
	}
	if justified(1, 3) && oldPrevJustified.Epoch+2 == currentEpoch {
		finalized = oldPrevJustified
	}
	if justified(0, 3) && oldCurrJustified.Epoch+2 == currentEpoch {
		finalized = oldCurrJustified
	}
	if justified(0, 2) && oldCurrJustified.Epoch+1 == currentEpoch {
		finalized = oldCurrJustified
	}
	if finalized != nil {
		st.SetFinalizedCheckpoint(ethpb.CopyCheckpoint(finalized))
		log.WithFields(logrus.Fields{
			"epoch":          currentEpoch,
			"finalizedEpoch": finalized.Epoch,
		}).Debug("Finalized checkpoint")
	}
	return st, nil
}
