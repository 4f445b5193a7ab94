package helpers

import (
	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
)

// ValidateNilAttestation checks if any composite field of input attestation is nil.
// Access to these nil fields will result in run time panic,
// it is recommended to run these checks as first line of defense.
func ValidateNilAttestation(attestation *ethpb.Attestation) error {
	if attestation == nil {
		return errors.New("attestation can't be nil")
	}
	if attestation.Data == nil {
		return errors.New("attestation's data can't be nil")
	}
	if attestation.Data.Source == nil {
		return errors.New("attestation's source can't be nil")
	}
	if attestation.Data.Target == nil {
		return errors.New("attestation's target can't be nil")
	}
	if attestation.AggregationBits == nil {
		return errors.New("attestation's bitfield can't be nil")
	}
	return nil
}

// ValidateNilIndexedAttestation checks the composite fields of an indexed attestation.
func ValidateNilIndexedAttestation(attestation *ethpb.IndexedAttestation) error {
	if attestation == nil {
		return errors.New("indexed attestation can't be nil")
	}
	if attestation.Data == nil || attestation.Data.Source == nil || attestation.Data.Target == nil {
		return errors.New("indexed attestation's data can't be nil")
	}
	return nil
}

// ValidateSlotTargetEpoch checks if attestation data's epoch matches target checkpoint's epoch.
// It is recommended to run `ValidateNilAttestation` first to ensure `data.Target` can't be nil.
func ValidateSlotTargetEpoch(data *ethpb.AttestationData) error {
	if SlotToEpoch(data.Slot) != data.Target.Epoch {
		return errors.Errorf("slot %d does not match target epoch %d", data.Slot, data.Target.Epoch)
	}
	return nil
}
