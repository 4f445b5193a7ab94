package eth

import (
	"github.com/prysmaticlabs/go-bitfield"
)

// Attestation is an aggregate vote from one committee.
type Attestation struct {
	AggregationBits bitfield.Bitlist `ssz-max:"2048"`
	Data            *AttestationData
	Signature       []byte `ssz-size:"96"`
}

// AttestationData is the vote content shared by a committee.
type AttestationData struct {
	Slot            uint64
	CommitteeIndex  uint64
	BeaconBlockRoot []byte `ssz-size:"32"`
	Source          *Checkpoint
	Target          *Checkpoint
}

// IndexedAttestation lists the attesting validators explicitly, sorted ascending.
type IndexedAttestation struct {
	AttestingIndices []uint64 `ssz-max:"2048"`
	Data             *AttestationData
	Signature        []byte `ssz-size:"96"`
}

// Checkpoint is an epoch boundary block root.
type Checkpoint struct {
	Epoch uint64
	Root  []byte `ssz-size:"32"`
}
