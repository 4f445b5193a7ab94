package blocks

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	v "github.com/prysmaticlabs/transition-vectors/beacon-chain/core/validators"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1/slashings"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sliceutil"
	"go.opencensus.io/trace"
)

// ProcessAttesterSlashings is one of the operations performed
// on each processed beacon block to slash attesters based on
// Casper FFG slashing conditions if any slashable events occurred.
//
// Pseudocode definition:
//   def process_attester_slashing(state: BeaconState, attester_slashing: AttesterSlashing) -> None:
//    attestation_1 = attester_slashing.attestation_1
//    attestation_2 = attester_slashing.attestation_2
//    assert is_slashable_attestation_data(attestation_1.data, attestation_2.data)
//    assert is_valid_indexed_attestation(state, attestation_1)
//    assert is_valid_indexed_attestation(state, attestation_2)
//
//    slashed_any = False
//    indices = set(attestation_1.attesting_indices).intersection(attestation_2.attesting_indices)
//    for index in sorted(indices):
//        if is_slashable_validator(state.validators[index], get_current_epoch(state)):
//            slash_validator(state, index)
//            slashed_any = True
//    assert slashed_any
func ProcessAttesterSlashings(
	ctx context.Context,
	st *state.BeaconState,
	attSlashings []*ethpb.AttesterSlashing,
	verifySignatures bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessAttesterSlashings")
	defer span.End()

	if uint64(len(attSlashings)) > params.BeaconConfig().MaxAttesterSlashings {
		return nil, verification.Structuralf("number of attester slashings (%d) exceeds allowed threshold of %d",
			len(attSlashings), params.BeaconConfig().MaxAttesterSlashings)
	}
	for idx, slashing := range attSlashings {
		if err := VerifyAttesterSlashing(ctx, st, slashing, verifySignatures); err != nil {
			return nil, errors.Wrapf(err, "could not verify attester slashing %d", idx)
		}
		slashableIndices := SlashableAttesterIndices(slashing)
		sort.Slice(slashableIndices, func(i, j int) bool {
			return slashableIndices[i] < slashableIndices[j]
		})
		currentEpoch := helpers.CurrentEpoch(st)
		slashedAny := false
		for _, validatorIndex := range slashableIndices {
			val, err := st.ValidatorAtIndexReadOnly(validatorIndex)
			if err != nil {
				return nil, err
			}
			if helpers.IsSlashableValidatorUsingTrie(val, currentEpoch) {
				st, err = v.SlashValidator(st, validatorIndex)
				if err != nil {
					return nil, errors.Wrapf(err, "could not slash validator index %d", validatorIndex)
				}
				slashedAny = true
			}
		}
		if !slashedAny {
			return nil, verification.Invariantf(verification.NoSlashableIndex, "unable to slash any validator despite confirmed attester slashing")
		}
	}
	return st, nil
}

// VerifyAttesterSlashing validates the attestation data in both attestations in the slashing object.
func VerifyAttesterSlashing(ctx context.Context, st *state.BeaconState, slashing *ethpb.AttesterSlashing, verifySignatures bool) error {
	if slashing == nil {
		return verification.Structuralf("nil attester slashing")
	}
	att1 := slashing.Attestation_1
	att2 := slashing.Attestation_2
	if err := helpers.ValidateNilIndexedAttestation(att1); err != nil {
		return verification.Structuralf("attestation 1: %v", err)
	}
	if err := helpers.ValidateNilIndexedAttestation(att2); err != nil {
		return verification.Structuralf("attestation 2: %v", err)
	}
	slashable, err := slashings.IsSlashableAttestationData(att1.Data, att2.Data)
	if err != nil {
		return err
	}
	if !slashable {
		return verification.Invariantf(verification.NotSlashableData, "attestations are not slashable")
	}
	if err := VerifyIndexedAttestation(ctx, st, att1, verifySignatures); err != nil {
		return errors.Wrap(err, "could not validate indexed attestation 1")
	}
	if err := VerifyIndexedAttestation(ctx, st, att2, verifySignatures); err != nil {
		return errors.Wrap(err, "could not validate indexed attestation 2")
	}
	return nil
}

// SlashableAttesterIndices returns the intersection of attester indices from both attestations in this slashing.
func SlashableAttesterIndices(slashing *ethpb.AttesterSlashing) []uint64 {
	if slashing == nil || slashing.Attestation_1 == nil || slashing.Attestation_2 == nil {
		return nil
	}
	indices1 := slashing.Attestation_1.AttestingIndices
	indices2 := slashing.Attestation_2.AttestingIndices
	return sliceutil.IntersectionUint64(indices1, indices2)
}
