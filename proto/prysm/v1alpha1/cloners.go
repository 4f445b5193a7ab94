package eth

import (
	"github.com/mohae/deepcopy"
)

// CopySignedBeaconBlock returns a deep copy of the signed block.
func CopySignedBeaconBlock(sigBlock *SignedBeaconBlock) *SignedBeaconBlock {
	if sigBlock == nil {
		return nil
	}
	return deepcopy.Copy(sigBlock).(*SignedBeaconBlock)
}

// CopyBeaconBlock returns a deep copy of the block.
func CopyBeaconBlock(block *BeaconBlock) *BeaconBlock {
	if block == nil {
		return nil
	}
	return deepcopy.Copy(block).(*BeaconBlock)
}

// CopyBeaconBlockHeader returns a deep copy of the header.
func CopyBeaconBlockHeader(header *BeaconBlockHeader) *BeaconBlockHeader {
	if header == nil {
		return nil
	}
	return deepcopy.Copy(header).(*BeaconBlockHeader)
}

// CopyValidator returns a deep copy of the registry entry.
func CopyValidator(val *Validator) *Validator {
	if val == nil {
		return nil
	}
	return deepcopy.Copy(val).(*Validator)
}

// CopyEth1Data returns a deep copy of the eth1 vote.
func CopyEth1Data(data *Eth1Data) *Eth1Data {
	if data == nil {
		return nil
	}
	return deepcopy.Copy(data).(*Eth1Data)
}

// CopyCheckpoint returns a deep copy of the checkpoint.
func CopyCheckpoint(cp *Checkpoint) *Checkpoint {
	if cp == nil {
		return nil
	}
	return deepcopy.Copy(cp).(*Checkpoint)
}

// CopyAttestation returns a deep copy of the attestation.
func CopyAttestation(att *Attestation) *Attestation {
	if att == nil {
		return nil
	}
	return deepcopy.Copy(att).(*Attestation)
}

// CopyIndexedAttestation returns a deep copy of the indexed attestation.
func CopyIndexedAttestation(att *IndexedAttestation) *IndexedAttestation {
	if att == nil {
		return nil
	}
	return deepcopy.Copy(att).(*IndexedAttestation)
}
