package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/cache"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

var shuffledIndicesCache = cache.NewShuffledIndicesCache()

// SlotCommitteeCount returns the number of beacon committees of a slot.
//
// Pseudocode definition:
//   def get_committee_count_per_slot(state: BeaconState, epoch: Epoch) -> uint64:
//    """
//    Return the number of committees in each slot for the given ``epoch``.
//    """
//    return max(uint64(1), min(
//        MAX_COMMITTEES_PER_SLOT,
//        uint64(len(get_active_validator_indices(state, epoch))) // SLOTS_PER_EPOCH // TARGET_COMMITTEE_SIZE,
//    ))
func SlotCommitteeCount(activeValidatorCount uint64) uint64 {
	var committeePerSlot = activeValidatorCount / params.BeaconConfig().SlotsPerEpoch / params.BeaconConfig().TargetCommitteeSize

	if committeePerSlot > params.BeaconConfig().MaxCommitteesPerSlot {
		return params.BeaconConfig().MaxCommitteesPerSlot
	}
	if committeePerSlot == 0 {
		return 1
	}

	return committeePerSlot
}

// BeaconCommitteeFromState returns the beacon committee of a given slot and committee index. This
// is a spec implementation where state is used as an argument. In case of state retrieval
// becomes expensive, consider using BeaconCommittee below.
//
// Pseudocode definition:
//   def get_beacon_committee(state: BeaconState, slot: Slot, index: CommitteeIndex) -> Sequence[ValidatorIndex]:
//    """
//    Return the beacon committee at ``slot`` for ``index``.
//    """
//    epoch = compute_epoch_at_slot(slot)
//    committees_per_slot = get_committee_count_per_slot(state, epoch)
//    return compute_committee(
//        indices=get_active_validator_indices(state, epoch),
//        seed=get_seed(state, epoch, DOMAIN_BEACON_ATTESTER),
//        index=(slot % SLOTS_PER_EPOCH) * committees_per_slot + index,
//        count=committees_per_slot * SLOTS_PER_EPOCH,
//    )
func BeaconCommitteeFromState(st *state.BeaconState, slot, committeeIndex uint64) ([]uint64, error) {
	epoch := SlotToEpoch(slot)
	seed, err := Seed(st, epoch, params.BeaconConfig().DomainBeaconAttester)
	if err != nil {
		return nil, errors.Wrap(err, "could not get seed")
	}

	indices, err := ActiveValidatorIndices(st, epoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get active indices")
	}

	return BeaconCommittee(indices, seed, slot, committeeIndex)
}

// BeaconCommittee returns the beacon committee of a given slot and committee index.
func BeaconCommittee(validatorIndices []uint64, seed [32]byte, slot, committeeIndex uint64) ([]uint64, error) {
	committeesPerSlot := SlotCommitteeCount(uint64(len(validatorIndices)))
	if committeeIndex >= committeesPerSlot {
		return nil, errors.Errorf("committee index %d out of range for %d committees per slot", committeeIndex, committeesPerSlot)
	}

	epochOffset := committeeIndex + (slot%params.BeaconConfig().SlotsPerEpoch)*committeesPerSlot
	count := committeesPerSlot * params.BeaconConfig().SlotsPerEpoch

	return ComputeCommittee(validatorIndices, seed, epochOffset, count)
}

// ComputeCommittee returns the requested shuffled committee out of the total committees using
// validator indices and seed.
//
// Pseudocode definition:
//  def compute_committee(indices: Sequence[ValidatorIndex],
//                      seed: Bytes32,
//                      index: uint64,
//                      count: uint64) -> Sequence[ValidatorIndex]:
//    """
//    Return the committee corresponding to ``indices``, ``seed``, ``index``, and committee ``count``.
//    """
//    start = (len(indices) * index) // count
//    end = (len(indices) * (index + 1)) // count
//    return [indices[compute_shuffled_index(uint64(i), uint64(len(indices)), seed)] for i in range(start, end)]
func ComputeCommittee(indices []uint64, seed [32]byte, index, count uint64) ([]uint64, error) {
	if count == 0 {
		return nil, errors.New("zero committee count")
	}
	validatorCount := uint64(len(indices))
	start := validatorCount * index / count
	end := validatorCount * (index + 1) / count
	if start > end || end > validatorCount {
		return nil, errors.Errorf("committee %d of %d out of range", index, count)
	}

	key := cache.ShuffleKey(seed, params.BeaconConfig().ShuffleRoundCount, indices)
	shuffled := shuffledIndicesCache.ShuffledIndices(key)
	if shuffled == nil {
		var err error
		shuffled, err = ShuffledIndices(indices, seed)
		if err != nil {
			return nil, errors.Wrap(err, "could not shuffle indices")
		}
		shuffledIndicesCache.AddShuffledIndices(key, shuffled)
	}
	committeeComputations.Inc()

	committee := make([]uint64, end-start)
	copy(committee, shuffled[start:end])
	return committee, nil
}
