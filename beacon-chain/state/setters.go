package state

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
)

// SetGenesisTime for the beacon state.
func (b *BeaconState) SetGenesisTime(val uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.GenesisTime = val
	b.markFieldAsDirty(genesisTime)
}

// SetGenesisValidatorRoot for the beacon state.
func (b *BeaconState) SetGenesisValidatorRoot(val []byte) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.GenesisValidatorsRoot = val
	b.markFieldAsDirty(genesisValidatorRoot)
}

// SetSlot for the beacon state.
func (b *BeaconState) SetSlot(val uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Slot = val
	b.markFieldAsDirty(slot)
}

// SetFork version for the beacon chain.
func (b *BeaconState) SetFork(val *ethpb.Fork) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Fork = val
	b.markFieldAsDirty(fork)
}

// SetLatestBlockHeader in the beacon state.
func (b *BeaconState) SetLatestBlockHeader(val *ethpb.BeaconBlockHeader) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.LatestBlockHeader = ethpb.CopyBeaconBlockHeader(val)
	b.markFieldAsDirty(latestBlockHeader)
}

// SetBlockRoots for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetBlockRoots(val [][]byte) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.BlockRoots = val
	b.markFieldAsDirty(blockRoots)
}

// UpdateBlockRootAtIndex for the beacon state. Updates the block root
// at a specific index to a new value.
func (b *BeaconState) UpdateBlockRootAtIndex(idx uint64, blockRoot [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(len(b.state.BlockRoots)) <= idx {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.BlockRoots[idx] = append([]byte{}, blockRoot[:]...)
	b.markFieldAsDirty(blockRoots)
	return nil
}

// SetStateRoots for the beacon state. Updates the state roots
// to a new value by overwriting the previous value.
func (b *BeaconState) SetStateRoots(val [][]byte) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.StateRoots = val
	b.markFieldAsDirty(stateRoots)
}

// UpdateStateRootAtIndex for the beacon state. Updates the state root
// at a specific index to a new value.
func (b *BeaconState) UpdateStateRootAtIndex(idx uint64, stateRoot [32]byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(len(b.state.StateRoots)) <= idx {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.StateRoots[idx] = append([]byte{}, stateRoot[:]...)
	b.markFieldAsDirty(stateRoots)
	return nil
}

// SetHistoricalRoots for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetHistoricalRoots(val [][]byte) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.HistoricalRoots = val
	b.markFieldAsDirty(historicalRoots)
}

// AppendHistoricalRoots for the beacon state. Appends the new value
// to the the end of list.
func (b *BeaconState) AppendHistoricalRoots(root [32]byte) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.HistoricalRoots = append(b.state.HistoricalRoots, append([]byte{}, root[:]...))
	b.markFieldAsDirty(historicalRoots)
}

// SetEth1Data for the beacon state.
func (b *BeaconState) SetEth1Data(val *ethpb.Eth1Data) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1Data = val
	b.markFieldAsDirty(eth1Data)
}

// SetEth1DataVotes for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetEth1DataVotes(val []*ethpb.Eth1Data) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1DataVotes = val
	b.markFieldAsDirty(eth1DataVotes)
}

// AppendEth1DataVotes for the beacon state. Appends a copy of the new value
// to the the end of list.
func (b *BeaconState) AppendEth1DataVotes(val *ethpb.Eth1Data) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1DataVotes = append(b.state.Eth1DataVotes, ethpb.CopyEth1Data(val))
	b.markFieldAsDirty(eth1DataVotes)
}

// SetEth1DepositIndex for the beacon state.
func (b *BeaconState) SetEth1DepositIndex(val uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Eth1DepositIndex = val
	b.markFieldAsDirty(eth1DepositIndex)
}

// SetValidators for the beacon state. Updates the entire
// to a new value by overwriting the previous one.
func (b *BeaconState) SetValidators(val []*ethpb.Validator) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Validators = val
	b.markFieldAsDirty(validators)
}

// ApplyToEveryValidator applies the provided callback function to each validator in the
// validator registry. The callback reports whether it changed the validator.
func (b *BeaconState) ApplyToEveryValidator(f func(idx int, val *ethpb.Validator) (bool, error)) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	changed := false
	for i, val := range b.state.Validators {
		ok, err := f(i, val)
		if err != nil {
			return err
		}
		changed = changed || ok
	}
	if changed {
		b.markFieldAsDirty(validators)
	}
	return nil
}

// UpdateValidatorAtIndex for the beacon state. Updates the validator
// at a specific index to a new value.
func (b *BeaconState) UpdateValidatorAtIndex(idx uint64, val *ethpb.Validator) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(len(b.state.Validators)) <= idx {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.Validators[idx] = val
	b.markFieldAsDirty(validators)
	return nil
}

// AppendValidator for the beacon state. Appends the new value
// to the the end of list.
func (b *BeaconState) AppendValidator(val *ethpb.Validator) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Validators = append(b.state.Validators, val)
	b.markFieldAsDirty(validators)
}

// SetBalances for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetBalances(val []uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Balances = val
	b.markFieldAsDirty(balances)
}

// UpdateBalancesAtIndex for the beacon state. This method updates the balance
// at a specific index to a new value.
func (b *BeaconState) UpdateBalancesAtIndex(idx uint64, val uint64) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(len(b.state.Balances)) <= idx {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.Balances[idx] = val
	b.markFieldAsDirty(balances)
	return nil
}

// AppendBalance for the beacon state. Appends the new value
// to the the end of list.
func (b *BeaconState) AppendBalance(bal uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Balances = append(b.state.Balances, bal)
	b.markFieldAsDirty(balances)
}

// SetRandaoMixes for the beacon state. Updates the entire
// randao mixes to a new value by overwriting the previous one.
func (b *BeaconState) SetRandaoMixes(val [][]byte) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.RandaoMixes = val
	b.markFieldAsDirty(randaoMixes)
}

// UpdateRandaoMixesAtIndex for the beacon state. Updates the randao mixes
// at a specific index to a new value.
func (b *BeaconState) UpdateRandaoMixesAtIndex(idx uint64, val []byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(len(b.state.RandaoMixes)) <= idx {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.RandaoMixes[idx] = append([]byte{}, val...)
	b.markFieldAsDirty(randaoMixes)
	return nil
}

// SetSlashings for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetSlashings(val []uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Slashings = val
	b.markFieldAsDirty(slashings)
}

// UpdateSlashingsAtIndex for the beacon state. Updates the slashings
// at a specific index to a new value.
func (b *BeaconState) UpdateSlashingsAtIndex(idx uint64, val uint64) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(len(b.state.Slashings)) <= idx {
		return errors.Errorf("invalid index provided %d", idx)
	}
	b.state.Slashings[idx] = val
	b.markFieldAsDirty(slashings)
	return nil
}

// SetPreviousEpochAttestations for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetPreviousEpochAttestations(val []*pb.PendingAttestation) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousEpochAttestations = val
	b.markFieldAsDirty(previousEpochAttestations)
}

// SetCurrentEpochAttestations for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetCurrentEpochAttestations(val []*pb.PendingAttestation) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.CurrentEpochAttestations = val
	b.markFieldAsDirty(currentEpochAttestations)
}

// AppendCurrentEpochAttestations for the beacon state. Appends the new value
// to the the end of list.
func (b *BeaconState) AppendCurrentEpochAttestations(val *pb.PendingAttestation) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.CurrentEpochAttestations = append(b.state.CurrentEpochAttestations, val)
	b.markFieldAsDirty(currentEpochAttestations)
}

// AppendPreviousEpochAttestations for the beacon state. Appends the new value
// to the the end of list.
func (b *BeaconState) AppendPreviousEpochAttestations(val *pb.PendingAttestation) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousEpochAttestations = append(b.state.PreviousEpochAttestations, val)
	b.markFieldAsDirty(previousEpochAttestations)
}

// RotateAttestations sets the previous epoch attestations to the current epoch attestations and
// then clears the current epoch attestations.
func (b *BeaconState) RotateAttestations() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousEpochAttestations = b.state.CurrentEpochAttestations
	b.state.CurrentEpochAttestations = []*pb.PendingAttestation{}
	b.markFieldAsDirty(previousEpochAttestations)
	b.markFieldAsDirty(currentEpochAttestations)
}

// SetJustificationBits for the beacon state.
func (b *BeaconState) SetJustificationBits(val bitfield.Bitvector4) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.JustificationBits = val
	b.markFieldAsDirty(justificationBits)
}

// SetPreviousJustifiedCheckpoint for the beacon state.
func (b *BeaconState) SetPreviousJustifiedCheckpoint(val *ethpb.Checkpoint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.PreviousJustifiedCheckpoint = val
	b.markFieldAsDirty(previousJustifiedCheckpoint)
}

// SetCurrentJustifiedCheckpoint for the beacon state.
func (b *BeaconState) SetCurrentJustifiedCheckpoint(val *ethpb.Checkpoint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.CurrentJustifiedCheckpoint = val
	b.markFieldAsDirty(currentJustifiedCheckpoint)
}

// SetFinalizedCheckpoint for the beacon state.
func (b *BeaconState) SetFinalizedCheckpoint(val *ethpb.Checkpoint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.FinalizedCheckpoint = val
	b.markFieldAsDirty(finalizedCheckpoint)
}
