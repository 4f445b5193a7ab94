package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"go.opencensus.io/trace"
)

// ProcessRandao checks the block proposer's
// randao commitment and generates a new randao mix to update
// in the beacon state's latest randao mixes slice.
//
// Pseudocode definition:
//   def process_randao(state: BeaconState, body: BeaconBlockBody) -> None:
//    epoch = get_current_epoch(state)
//    # Verify RANDAO reveal
//    proposer = state.validators[get_beacon_proposer_index(state)]
//    signing_root = compute_signing_root(epoch, get_domain(state, DOMAIN_RANDAO))
//    assert bls.Verify(proposer.pubkey, signing_root, body.randao_reveal)
//    # Mix in RANDAO reveal
//    mix = xor(get_randao_mix(state, epoch), hash(body.randao_reveal))
//    state.randao_mixes[epoch % EPOCHS_PER_HISTORICAL_VECTOR] = mix
func ProcessRandao(ctx context.Context, st *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessRandao")
	defer span.End()

	if body == nil {
		return nil, verification.Structuralf("nil block body")
	}
	if err := VerifyRandao(st, body.RandaoReveal); err != nil {
		return nil, errors.Wrap(err, "could not verify block randao")
	}
	return ProcessRandaoNoVerify(ctx, st, body)
}

// VerifyRandao checks the randao reveal is the proposer's signature over the current epoch.
func VerifyRandao(st *state.BeaconState, reveal []byte) error {
	epochObj, proposerPub, err := randaoSigningData(st)
	if err != nil {
		return err
	}
	return verifySigningRoot(st, "randao", epochObj, proposerPub, reveal, params.BeaconConfig().DomainRandao, helpers.CurrentEpoch(st))
}

// ProcessRandaoNoVerify generates a new randao mix to update
// in the beacon state's latest randao mixes slice.
func ProcessRandaoNoVerify(_ context.Context, st *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	if body == nil {
		return nil, verification.Structuralf("nil block body")
	}
	currentEpoch := helpers.CurrentEpoch(st)
	// If block randao passed verification, we XOR the state's latest randao mix with the block's
	// randao and update the state's corresponding latest randao mix value.
	latestMixesLength := params.BeaconConfig().EpochsPerHistoricalVector
	latestMixSlice, err := st.RandaoMixAtIndex(currentEpoch % latestMixesLength)
	if err != nil {
		return nil, err
	}
	blockRandaoReveal := hashutil.Hash(body.RandaoReveal)
	if len(latestMixSlice) != len(blockRandaoReveal) {
		return nil, errors.Errorf("randao mix has length %d, want %d", len(latestMixSlice), len(blockRandaoReveal))
	}
	mix := bytesutil.Xor(latestMixSlice, blockRandaoReveal[:])
	if err := st.UpdateRandaoMixesAtIndex(currentEpoch%latestMixesLength, mix); err != nil {
		return nil, err
	}
	return st, nil
}
