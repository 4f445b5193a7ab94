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

// ProcessProposerSlashings is one of the operations performed
// on each processed beacon block to slash proposers based on
// slashing conditions if any slashable events occurred.
//
// Pseudocode definition:
//   def process_proposer_slashing(state: BeaconState, proposer_slashing: ProposerSlashing) -> None:
//    proposer = state.validators[proposer_slashing.proposer_index]
//    header_1 = proposer_slashing.signed_header_1.message
//    header_2 = proposer_slashing.signed_header_2.message
//    # Verify header slots match
//    assert header_1.slot == header_2.slot
//    # Verify the headers are different
//    assert header_1 != header_2
//    # Verify the proposer is slashable
//    assert is_slashable_validator(proposer, get_current_epoch(state))
//    # Verify signatures
//    for signed_header in (proposer_slashing.signed_header_1, proposer_slashing.signed_header_2):
//        domain = get_domain(state, DOMAIN_BEACON_PROPOSER, compute_epoch_at_slot(signed_header.message.slot))
//        signing_root = compute_signing_root(signed_header.message, domain)
//        assert bls.Verify(proposer.pubkey, signing_root, signed_header.signature)
//
//    slash_validator(state, proposer_slashing.proposer_index)
func ProcessProposerSlashings(
	ctx context.Context,
	st *state.BeaconState,
	slashings []*ethpb.ProposerSlashing,
	verifySignatures bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessProposerSlashings")
	defer span.End()

	if uint64(len(slashings)) > params.BeaconConfig().MaxProposerSlashings {
		return nil, verification.Structuralf("number of proposer slashings (%d) exceeds allowed threshold of %d",
			len(slashings), params.BeaconConfig().MaxProposerSlashings)
	}
	var err error
	for idx, slashing := range slashings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err = VerifyProposerSlashing(st, slashing, verifySignatures); err != nil {
			return nil, errors.Wrapf(err, "could not verify proposer slashing %d", idx)
		}
		st, err = v.SlashValidator(st, slashing.ProposerIndex)
		if err != nil {
			return nil, errors.Wrapf(err, "could not slash proposer index %d", slashing.ProposerIndex)
		}
	}
	return st, nil
}

// VerifyProposerSlashing verifies that the data provided from slashing is valid.
func VerifyProposerSlashing(st *state.BeaconState, slashing *ethpb.ProposerSlashing, verifySignatures bool) error {
	if slashing == nil {
		return verification.Structuralf("nil proposer slashing")
	}
	if slashing.Header_1 == nil || slashing.Header_1.Header == nil || slashing.Header_2 == nil || slashing.Header_2.Header == nil {
		return verification.Structuralf("nil header in proposer slashing")
	}
	hSlot := slashing.Header_1.Header.Slot
	if hSlot != slashing.Header_2.Header.Slot {
		return verification.Structuralf("mismatched header slots, received %d == %d", hSlot, slashing.Header_2.Header.Slot)
	}
	pIdx := slashing.ProposerIndex
	if slashing.Header_1.Header.ProposerIndex != pIdx || slashing.Header_2.Header.ProposerIndex != pIdx {
		return verification.Structuralf("mismatched indices, received %d == %d == %d",
			pIdx, slashing.Header_1.Header.ProposerIndex, slashing.Header_2.Header.ProposerIndex)
	}
	r1, err := slashing.Header_1.Header.HashTreeRoot()
	if err != nil {
		return err
	}
	r2, err := slashing.Header_2.Header.HashTreeRoot()
	if err != nil {
		return err
	}
	if r1 == r2 {
		return verification.Structuralf("expected slashing headers to differ")
	}
	proposer, err := st.ValidatorAtIndexReadOnly(pIdx)
	if err != nil {
		return verification.Structuralf("unknown proposer index %d", pIdx)
	}
	if !helpers.IsSlashableValidatorUsingTrie(proposer, helpers.CurrentEpoch(st)) {
		return verification.Invariantf(verification.NotSlashable, "validator with key %#x is not slashable", proposer.PublicKey())
	}
	if !verifySignatures {
		return nil
	}
	pub := proposer.PublicKey()
	for _, header := range []*ethpb.SignedBeaconBlockHeader{slashing.Header_1, slashing.Header_2} {
		if err := verifySigningRoot(
			st,
			"proposer slashing",
			header.Header,
			pub[:],
			header.Signature,
			params.BeaconConfig().DomainBeaconProposer,
			helpers.SlotToEpoch(header.Header.Slot),
		); err != nil {
			return err
		}
	}
	return nil
}
