package ethereum_beacon_p2p_v1

import (
	"github.com/mohae/deepcopy"
)

// CopyBeaconState returns a deep copy of the state container.
func CopyBeaconState(st *BeaconState) *BeaconState {
	if st == nil {
		return nil
	}
	return deepcopy.Copy(st).(*BeaconState)
}

// CopyPendingAttestation returns a deep copy of the pending attestation.
func CopyPendingAttestation(att *PendingAttestation) *PendingAttestation {
	if att == nil {
		return nil
	}
	return deepcopy.Copy(att).(*PendingAttestation)
}
