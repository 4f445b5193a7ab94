package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

// Seed returns the randao seed used for shuffling of a given epoch.
//
// Pseudocode definition:
//  def get_seed(state: BeaconState, epoch: Epoch, domain_type: DomainType) -> Bytes32:
//    """
//    Return the seed at ``epoch``.
//    """
//    mix = get_randao_mix(state, Epoch(epoch + EPOCHS_PER_HISTORICAL_VECTOR - MIN_SEED_LOOKAHEAD - 1))  # Avoid underflow
//    return hash(domain_type + int_to_bytes(epoch, length=8) + mix)
func Seed(st *state.BeaconState, epoch uint64, domain [4]byte) ([32]byte, error) {
	// See https://github.com/ethereum/eth2.0-specs/pull/1296 for
	// rationale on why offset has to look down by 1.
	lookAheadEpoch := epoch + params.BeaconConfig().EpochsPerHistoricalVector -
		params.BeaconConfig().MinSeedLookahead - 1

	randaoMix, err := RandaoMix(st, lookAheadEpoch)
	if err != nil {
		return [32]byte{}, err
	}
	seed := append(domain[:], bytesutil.Bytes8(epoch)...)
	seed = append(seed, randaoMix...)

	return hashutil.Hash(seed), nil
}

// RandaoMix returns the randao mix (xor'ed seed)
// of a given slot. It is used to shuffle validators.
//
// Pseudocode definition:
//   def get_randao_mix(state: BeaconState, epoch: Epoch) -> Bytes32:
//    """
//    Return the randao mix at a recent ``epoch``.
//    """
//    return state.randao_mixes[epoch % EPOCHS_PER_HISTORICAL_VECTOR]
func RandaoMix(st *state.BeaconState, epoch uint64) ([]byte, error) {
	mix, err := st.RandaoMixAtIndex(epoch % params.BeaconConfig().EpochsPerHistoricalVector)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get randao mix for epoch %d", epoch)
	}
	return mix, nil
}
