package blocks

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/attestationutil"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"go.opencensus.io/trace"
)

func attestationInvalid(format string, args ...interface{}) error {
	return verification.Invariantf(verification.AttestationInvalid, format, args...)
}

// ProcessAttestations applies processing operations to a block's inner attestation
// records.
func ProcessAttestations(
	ctx context.Context,
	st *state.BeaconState,
	atts []*ethpb.Attestation,
	verifySignatures bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessAttestations")
	defer span.End()

	if uint64(len(atts)) > params.BeaconConfig().MaxAttestations {
		return nil, verification.Structuralf("number of attestations (%d) exceeds allowed threshold of %d",
			len(atts), params.BeaconConfig().MaxAttestations)
	}
	var err error
	for idx, att := range atts {
		if verifySignatures {
			st, err = ProcessAttestation(ctx, st, att)
		} else {
			st, err = ProcessAttestationNoVerifySignature(ctx, st, att)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "could not verify attestation at index %d in block", idx)
		}
	}
	return st, nil
}

// ProcessAttestation verifies an input attestation can pass through processing using the given beacon state.
//
// Pseudocode definition:
//  def process_attestation(state: BeaconState, attestation: Attestation) -> None:
//    data = attestation.data
//    assert data.target.epoch in (get_previous_epoch(state), get_current_epoch(state))
//    assert data.target.epoch == compute_epoch_at_slot(data.slot)
//    assert data.slot + MIN_ATTESTATION_INCLUSION_DELAY <= state.slot <= data.slot + SLOTS_PER_EPOCH
//    assert data.index < get_committee_count_per_slot(state, data.target.epoch)
//
//    committee = get_beacon_committee(state, data.slot, data.index)
//    assert len(attestation.aggregation_bits) == len(committee)
//
//    pending_attestation = PendingAttestation(
//        data=data,
//        aggregation_bits=attestation.aggregation_bits,
//        inclusion_delay=state.slot - data.slot,
//        proposer_index=get_beacon_proposer_index(state),
//    )
//
//    if data.target.epoch == get_current_epoch(state):
//        assert data.source == state.current_justified_checkpoint
//        state.current_epoch_attestations.append(pending_attestation)
//    else:
//        assert data.source == state.previous_justified_checkpoint
//        state.previous_epoch_attestations.append(pending_attestation)
//
//    # Check signature
//    assert is_valid_indexed_attestation(state, get_indexed_attestation(state, attestation))
func ProcessAttestation(ctx context.Context, st *state.BeaconState, att *ethpb.Attestation) (*state.BeaconState, error) {
	st, err := ProcessAttestationNoVerifySignature(ctx, st, att)
	if err != nil {
		return nil, err
	}
	return st, VerifyAttestationSignature(ctx, st, att)
}

// VerifyAttestationNoVerifySignature verifies the attestation without verifying the attestation signature.
func VerifyAttestationNoVerifySignature(ctx context.Context, st *state.BeaconState, att *ethpb.Attestation) error {
	ctx, span := trace.StartSpan(ctx, "core.blocks.VerifyAttestationNoVerifySignature")
	defer span.End()

	if err := helpers.ValidateNilAttestation(att); err != nil {
		return verification.Structuralf("%v", err)
	}
	currEpoch := helpers.CurrentEpoch(st)
	prevEpoch := helpers.PrevEpoch(st)
	data := att.Data
	if data.Target.Epoch != prevEpoch && data.Target.Epoch != currEpoch {
		return attestationInvalid(
			"expected target epoch (%d) to be the previous epoch (%d) or the current epoch (%d)",
			data.Target.Epoch,
			prevEpoch,
			currEpoch,
		)
	}
	if err := helpers.ValidateSlotTargetEpoch(data); err != nil {
		return attestationInvalid("%v", err)
	}

	s := data.Slot
	if s+params.BeaconConfig().MinAttestationInclusionDelay > st.Slot() {
		return attestationInvalid(
			"attestation slot %d + inclusion delay %d > state slot %d",
			s,
			params.BeaconConfig().MinAttestationInclusionDelay,
			st.Slot(),
		)
	}
	if st.Slot() > s+params.BeaconConfig().SlotsPerEpoch {
		return attestationInvalid(
			"state slot %d > attestation slot %d + SLOTS_PER_EPOCH %d",
			st.Slot(),
			s,
			params.BeaconConfig().SlotsPerEpoch,
		)
	}

	activeValidatorCount, err := helpers.ActiveValidatorCount(st, data.Target.Epoch)
	if err != nil {
		return err
	}
	c := helpers.SlotCommitteeCount(activeValidatorCount)
	if data.CommitteeIndex >= c {
		return attestationInvalid("committee index %d >= committee count %d", data.CommitteeIndex, c)
	}
	committee, err := helpers.BeaconCommitteeFromState(st, data.Slot, data.CommitteeIndex)
	if err != nil {
		return err
	}
	if att.AggregationBits.Len() != uint64(len(committee)) {
		return attestationInvalid("aggregation bitfield length %d is not equal to committee length %d",
			att.AggregationBits.Len(), len(committee))
	}

	var justified *ethpb.Checkpoint
	if data.Target.Epoch == currEpoch {
		justified = st.CurrentJustifiedCheckpoint()
	} else {
		justified = st.PreviousJustifiedCheckpoint()
	}
	if !checkpointsEqual(data.Source, justified) {
		return attestationInvalid("source checkpoint (%d, %#x) not equal to justified checkpoint (%d, %#x)",
			data.Source.Epoch, data.Source.Root, justified.Epoch, justified.Root)
	}

	indexedAtt, err := attestationutil.ConvertToIndexed(ctx, att, committee)
	if err != nil {
		return attestationInvalid("%v", err)
	}
	if err := attestationutil.IsValidAttestationIndices(ctx, indexedAtt); err != nil {
		return attestationInvalid("%v", err)
	}
	return nil
}

// ProcessAttestationNoVerifySignature processes the attestation without verifying the attestation signature.
func ProcessAttestationNoVerifySignature(ctx context.Context, st *state.BeaconState, att *ethpb.Attestation) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessAttestationNoVerifySignature")
	defer span.End()

	if err := VerifyAttestationNoVerifySignature(ctx, st, att); err != nil {
		return nil, err
	}
	proposerIndex, err := helpers.BeaconProposerIndex(st)
	if err != nil {
		return nil, err
	}
	attCopy := ethpb.CopyAttestation(att)
	pendingAtt := &pb.PendingAttestation{
		Data:            attCopy.Data,
		AggregationBits: attCopy.AggregationBits,
		InclusionDelay:  st.Slot() - att.Data.Slot,
		ProposerIndex:   proposerIndex,
	}
	if att.Data.Target.Epoch == helpers.CurrentEpoch(st) {
		st.AppendCurrentEpochAttestations(pendingAtt)
	} else {
		st.AppendPreviousEpochAttestations(pendingAtt)
	}
	return st, nil
}

// VerifyAttestationSignature converts an attestation into an indexed attestation and verifies
// the signature in that attestation.
func VerifyAttestationSignature(ctx context.Context, st *state.BeaconState, att *ethpb.Attestation) error {
	if err := helpers.ValidateNilAttestation(att); err != nil {
		return verification.Structuralf("%v", err)
	}
	committee, err := helpers.BeaconCommitteeFromState(st, att.Data.Slot, att.Data.CommitteeIndex)
	if err != nil {
		return err
	}
	indexedAtt, err := attestationutil.ConvertToIndexed(ctx, att, committee)
	if err != nil {
		return attestationInvalid("%v", err)
	}
	return VerifyIndexedAttestation(ctx, st, indexedAtt, true)
}

// VerifyIndexedAttestation determines the validity of an indexed attestation. Malformed indices are
// structural errors, and the aggregate signature is only checked when verifySignature is set.
//
// Pseudocode definition:
//  def is_valid_indexed_attestation(state: BeaconState, indexed_attestation: IndexedAttestation) -> bool:
//    """
//    Check if ``indexed_attestation`` is not empty, has sorted and unique indices and has a valid aggregate signature.
//    """
//    # Verify indices are sorted and unique
//    indices = indexed_attestation.attesting_indices
//    if len(indices) == 0 or not indices == sorted(set(indices)):
//        return False
//    # Verify aggregate signature
//    pubkeys = [state.validators[i].pubkey for i in indices]
//    domain = get_domain(state, DOMAIN_BEACON_ATTESTER, indexed_attestation.data.target.epoch)
//    signing_root = compute_signing_root(indexed_attestation.data, domain)
//    return bls.FastAggregateVerify(pubkeys, signing_root, indexed_attestation.signature)
func VerifyIndexedAttestation(ctx context.Context, st *state.BeaconState, indexedAtt *ethpb.IndexedAttestation, verifySignature bool) error {
	ctx, span := trace.StartSpan(ctx, "core.blocks.VerifyIndexedAttestation")
	defer span.End()

	if err := attestationutil.IsValidAttestationIndices(ctx, indexedAtt); err != nil {
		return verification.Structuralf("%v", err)
	}
	numValidators := uint64(st.NumValidators())
	for _, idx := range indexedAtt.AttestingIndices {
		if idx >= numValidators {
			return verification.Structuralf("attesting index %d out of range for %d validators", idx, numValidators)
		}
	}
	if !verifySignature {
		return nil
	}
	domain, err := helpers.Domain(st.Fork(), indexedAtt.Data.Target.Epoch, params.BeaconConfig().DomainBeaconAttester, st.GenesisValidatorRoot())
	if err != nil {
		return err
	}
	pubkeys := make([]bls.PublicKey, len(indexedAtt.AttestingIndices))
	for i, idx := range indexedAtt.AttestingIndices {
		pubkeyAtIdx := st.PubkeyAtIndex(idx)
		pk, err := bls.PublicKeyFromBytes(pubkeyAtIdx[:])
		if err != nil {
			return verification.NewSignatureError("attestation", errors.Wrap(err, "could not deserialize validator public key"))
		}
		pubkeys[i] = pk
	}
	if err := attestationutil.VerifyIndexedAttestationSig(ctx, indexedAtt, pubkeys, domain); err != nil {
		return verification.NewSignatureError("attestation", err)
	}
	return nil
}

func checkpointsEqual(a, b *ethpb.Checkpoint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Epoch == b.Epoch && bytes.Equal(a.Root, b.Root)
}
