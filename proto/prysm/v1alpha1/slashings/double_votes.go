// Package slashings holds the predicates deciding whether two attestation votes conflict.
package slashings

import (
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
)

// IsDoubleVote reports whether the two votes are distinct but share a target epoch.
func IsDoubleVote(data1, data2 *ethpb.AttestationData) (bool, error) {
	if data1 == nil || data2 == nil || data1.Target == nil || data2.Target == nil {
		return false, nil
	}
	if data1.Target.Epoch != data2.Target.Epoch {
		return false, nil
	}
	r1, err := data1.HashTreeRoot()
	if err != nil {
		return false, err
	}
	r2, err := data2.HashTreeRoot()
	if err != nil {
		return false, err
	}
	return r1 != r2, nil
}

// IsSurroundVote reports whether data1 strictly surrounds data2.
func IsSurroundVote(data1, data2 *ethpb.AttestationData) bool {
	if data1 == nil || data2 == nil || data1.Source == nil || data2.Source == nil || data1.Target == nil || data2.Target == nil {
		return false
	}
	return data1.Source.Epoch < data2.Source.Epoch && data2.Target.Epoch < data1.Target.Epoch
}

// IsSlashableAttestationData reports whether the pair is either a double vote or a surround vote.
//
// Pseudocode definition:
//
//	def is_slashable_attestation_data(data_1: AttestationData, data_2: AttestationData) -> bool:
//	  return (
//	      # Double vote
//	      (data_1 != data_2 and data_1.target.epoch == data_2.target.epoch) or
//	      # Surround vote
//	      (data_1.source.epoch < data_2.source.epoch and data_2.target.epoch < data_1.target.epoch)
//	  )
func IsSlashableAttestationData(data1, data2 *ethpb.AttestationData) (bool, error) {
	double, err := IsDoubleVote(data1, data2)
	if err != nil {
		return false, err
	}
	return double || IsSurroundVote(data1, data2), nil
}
