package state

import (
	"fmt"

	"github.com/prysmaticlabs/go-bitfield"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
)

// ReadOnlyValidator returns a wrapper that only allows fields from a validator
// to be read, and prevents any modification of internal validator fields.
type ReadOnlyValidator struct {
	validator *ethpb.Validator
}

// EffectiveBalance returns the effective balance of the
// read only validator.
func (v *ReadOnlyValidator) EffectiveBalance() uint64 {
	return v.validator.EffectiveBalance
}

// ActivationEligibilityEpoch returns the activation eligibility epoch of the
// read only validator.
func (v *ReadOnlyValidator) ActivationEligibilityEpoch() uint64 {
	return v.validator.ActivationEligibilityEpoch
}

// ActivationEpoch returns the activation epoch of the
// read only validator.
func (v *ReadOnlyValidator) ActivationEpoch() uint64 {
	return v.validator.ActivationEpoch
}

// WithdrawableEpoch returns the withdrawable epoch of the
// read only validator.
func (v *ReadOnlyValidator) WithdrawableEpoch() uint64 {
	return v.validator.WithdrawableEpoch
}

// ExitEpoch returns the exit epoch of the
// read only validator.
func (v *ReadOnlyValidator) ExitEpoch() uint64 {
	return v.validator.ExitEpoch
}

// PublicKey returns the public key of the
// read only validator.
func (v *ReadOnlyValidator) PublicKey() [48]byte {
	return bytesutil.ToBytes48(v.validator.PublicKey)
}

// Slashed returns the read only validator is slashed.
func (v *ReadOnlyValidator) Slashed() bool {
	return v.validator.Slashed
}

// GenesisTime of the beacon state as a uint64.
func (b *BeaconState) GenesisTime() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.GenesisTime
}

// GenesisValidatorRoot of the beacon state.
func (b *BeaconState) GenesisValidatorRoot() []byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopyBytes(b.state.GenesisValidatorsRoot)
}

// Slot of the current beacon chain state.
func (b *BeaconState) Slot() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Slot
}

// Fork version of the beacon chain.
func (b *BeaconState) Fork() *ethpb.Fork {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.Fork == nil {
		return nil
	}
	return &ethpb.Fork{
		PreviousVersion: bytesutil.SafeCopyBytes(b.state.Fork.PreviousVersion),
		CurrentVersion:  bytesutil.SafeCopyBytes(b.state.Fork.CurrentVersion),
		Epoch:           b.state.Fork.Epoch,
	}
}

// LatestBlockHeader stored within the beacon state.
func (b *BeaconState) LatestBlockHeader() *ethpb.BeaconBlockHeader {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyBeaconBlockHeader(b.state.LatestBlockHeader)
}

// BlockRoots kept track of in the beacon state.
func (b *BeaconState) BlockRoots() [][]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopy2dBytes(b.state.BlockRoots)
}

// BlockRootAtIndex retrieves a specific block root based on an
// input index value.
func (b *BeaconState) BlockRootAtIndex(idx uint64) ([]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.BlockRoots)) <= idx {
		return nil, fmt.Errorf("index %d out of range", idx)
	}
	return bytesutil.SafeCopyBytes(b.state.BlockRoots[idx]), nil
}

// StateRoots kept track of in the beacon state.
func (b *BeaconState) StateRoots() [][]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopy2dBytes(b.state.StateRoots)
}

// StateRootAtIndex retrieves a specific state root based on an
// input index value.
func (b *BeaconState) StateRootAtIndex(idx uint64) ([]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.StateRoots)) <= idx {
		return nil, fmt.Errorf("index %d out of range", idx)
	}
	return bytesutil.SafeCopyBytes(b.state.StateRoots[idx]), nil
}

// HistoricalRoots based on epochs stored in the beacon state.
func (b *BeaconState) HistoricalRoots() [][]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopy2dBytes(b.state.HistoricalRoots)
}

// Eth1Data corresponding to the proof-of-work chain information stored in the beacon state.
func (b *BeaconState) Eth1Data() *ethpb.Eth1Data {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyEth1Data(b.state.Eth1Data)
}

// Eth1DataVotes corresponds to votes from eth2 on the canonical proof-of-work chain
// data retrieved from eth1.
func (b *BeaconState) Eth1DataVotes() []*ethpb.Eth1Data {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.Eth1DataVotes == nil {
		return nil
	}
	res := make([]*ethpb.Eth1Data, len(b.state.Eth1DataVotes))
	for i := range res {
		res[i] = ethpb.CopyEth1Data(b.state.Eth1DataVotes[i])
	}
	return res
}

// Eth1DepositIndex corresponds to the index of the deposit made to the
// validator deposit contract at the time of this state's eth1 data.
func (b *BeaconState) Eth1DepositIndex() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Eth1DepositIndex
}

// Validators participating in consensus on the beacon chain.
func (b *BeaconState) Validators() []*ethpb.Validator {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.Validators == nil {
		return nil
	}
	res := make([]*ethpb.Validator, len(b.state.Validators))
	for i := range res {
		res[i] = ethpb.CopyValidator(b.state.Validators[i])
	}
	return res
}

// ValidatorAtIndex is the validator at the provided index.
func (b *BeaconState) ValidatorAtIndex(idx uint64) (*ethpb.Validator, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.Validators)) <= idx {
		return nil, fmt.Errorf("index %d out of range", idx)
	}
	return ethpb.CopyValidator(b.state.Validators[idx]), nil
}

// ValidatorAtIndexReadOnly is the validator at the provided index. This method
// doesn't clone the validator.
func (b *BeaconState) ValidatorAtIndexReadOnly(idx uint64) (*ReadOnlyValidator, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.Validators)) <= idx {
		return nil, fmt.Errorf("index %d out of range", idx)
	}
	return &ReadOnlyValidator{b.state.Validators[idx]}, nil
}

// PubkeyAtIndex returns the pubkey at the given
// validator index.
func (b *BeaconState) PubkeyAtIndex(idx uint64) [48]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.Validators)) <= idx {
		return [48]byte{}
	}
	return bytesutil.ToBytes48(b.state.Validators[idx].PublicKey)
}

// NumValidators returns the size of the validator registry.
func (b *BeaconState) NumValidators() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.state.Validators)
}

// ReadFromEveryValidator reads values from every validator and applies it to the provided function.
// Warning: This method is potentially unsafe, as it exposes the actual validator registry.
func (b *BeaconState) ReadFromEveryValidator(f func(idx int, val *ReadOnlyValidator) error) error {
	b.lock.RLock()
	validators := b.state.Validators
	b.lock.RUnlock()
	for i, v := range validators {
		if err := f(i, &ReadOnlyValidator{validator: v}); err != nil {
			return err
		}
	}
	return nil
}

// Balances of validators participating in consensus on the beacon chain.
func (b *BeaconState) Balances() []uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.Balances == nil {
		return nil
	}
	res := make([]uint64, len(b.state.Balances))
	copy(res, b.state.Balances)
	return res
}

// BalanceAtIndex of validator with the provided index.
func (b *BeaconState) BalanceAtIndex(idx uint64) (uint64, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.Balances)) <= idx {
		return 0, fmt.Errorf("index of %d does not exist", idx)
	}
	return b.state.Balances[idx], nil
}

// RandaoMixes of block proposers on the beacon chain.
func (b *BeaconState) RandaoMixes() [][]byte {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopy2dBytes(b.state.RandaoMixes)
}

// RandaoMixAtIndex retrieves a specific block root based on an
// input index value.
func (b *BeaconState) RandaoMixAtIndex(idx uint64) ([]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(len(b.state.RandaoMixes)) <= idx {
		return nil, fmt.Errorf("index %d out of range", idx)
	}
	return bytesutil.SafeCopyBytes(b.state.RandaoMixes[idx]), nil
}

// RandaoMixesLength returns the length of the randao mixes slice.
func (b *BeaconState) RandaoMixesLength() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.state.RandaoMixes)
}

// Slashings of validators on the beacon chain.
func (b *BeaconState) Slashings() []uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.Slashings == nil {
		return nil
	}
	res := make([]uint64, len(b.state.Slashings))
	copy(res, b.state.Slashings)
	return res
}

// PreviousEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) PreviousEpochAttestations() []*pb.PendingAttestation {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyPendingAttestations(b.state.PreviousEpochAttestations)
}

// CurrentEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) CurrentEpochAttestations() []*pb.PendingAttestation {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyPendingAttestations(b.state.CurrentEpochAttestations)
}

// PreviousEpochAttestationsRoot is the hash tree root of the previous epoch attestation pool.
func (b *BeaconState) PreviousEpochAttestationsRoot() ([32]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FieldRoot(int(previousEpochAttestations))
}

// CurrentEpochAttestationsRoot is the hash tree root of the current epoch attestation pool.
func (b *BeaconState) CurrentEpochAttestationsRoot() ([32]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FieldRoot(int(currentEpochAttestations))
}

func copyPendingAttestations(atts []*pb.PendingAttestation) []*pb.PendingAttestation {
	if atts == nil {
		return nil
	}
	res := make([]*pb.PendingAttestation, len(atts))
	for i := range res {
		res[i] = pb.CopyPendingAttestation(atts[i])
	}
	return res
}

// JustificationBits marking which epochs have been justified in the beacon chain.
func (b *BeaconState) JustificationBits() bitfield.Bitvector4 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.state.JustificationBits == nil {
		return nil
	}
	res := make([]byte, len(b.state.JustificationBits))
	copy(res, b.state.JustificationBits)
	return res
}

// PreviousJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) PreviousJustifiedCheckpoint() *ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyCheckpoint(b.state.PreviousJustifiedCheckpoint)
}

// CurrentJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) CurrentJustifiedCheckpoint() *ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyCheckpoint(b.state.CurrentJustifiedCheckpoint)
}

// FinalizedCheckpoint denoting an epoch and block root.
func (b *BeaconState) FinalizedCheckpoint() *ethpb.Checkpoint {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyCheckpoint(b.state.FinalizedCheckpoint)
}

// ValidatorRegistryRoot computes the hash tree root of the validator registry.
func (b *BeaconState) ValidatorRegistryRoot() ([32]byte, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.FieldRoot(int(validators))
}
