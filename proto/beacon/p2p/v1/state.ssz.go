package ethereum_beacon_p2p_v1

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
)

const (
	eth1DataSize                  = 72
	pendingAttestationFixedSize   = 148
	beaconStateFixedSizeNoVectors = 401
)

func errNilField(field string) error {
	return errors.Errorf("nil %s", field)
}

func validateBitlist(buf []byte, limit uint64) error {
	if len(buf) == 0 {
		return errors.New("bitlist is empty")
	}
	if buf[len(buf)-1] == 0 {
		return errors.New("bitlist has no length bit")
	}
	if l := bitfield.Bitlist(buf).Len(); l > limit {
		return errors.Errorf("bitlist of %d bits exceeds limit %d", l, limit)
	}
	return nil
}

// MarshalSSZ ssz marshals the PendingAttestation object
func (p *PendingAttestation) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(p)
}

// MarshalSSZTo ssz marshals the PendingAttestation object to a target array
func (p *PendingAttestation) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.WriteOffset(buf, pendingAttestationFixedSize)
	if p.Data == nil {
		return nil, errNilField("PendingAttestation.Data")
	}
	if dst, err = p.Data.MarshalSSZTo(dst); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, p.InclusionDelay)
	dst = ssz.MarshalUint64(dst, p.ProposerIndex)
	if err = validateBitlist(p.AggregationBits, params.BeaconConfig().MaxValidatorsPerCommittee); err != nil {
		return nil, errors.Wrap(err, "PendingAttestation.AggregationBits")
	}
	dst = append(dst, p.AggregationBits...)
	return
}

// UnmarshalSSZ ssz unmarshals the PendingAttestation object
func (p *PendingAttestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < pendingAttestationFixedSize {
		return ssz.ErrSize
	}
	if o := ssz.ReadOffset(buf[0:4]); o != pendingAttestationFixedSize {
		return ssz.ErrOffset
	}
	p.Data = new(ethpb.AttestationData)
	if err := p.Data.UnmarshalSSZ(buf[4:132]); err != nil {
		return err
	}
	p.InclusionDelay = ssz.UnmarshallUint64(buf[132:140])
	p.ProposerIndex = ssz.UnmarshallUint64(buf[140:148])
	bits := buf[pendingAttestationFixedSize:]
	if err := validateBitlist(bits, params.BeaconConfig().MaxValidatorsPerCommittee); err != nil {
		return errors.Wrap(err, "PendingAttestation.AggregationBits")
	}
	p.AggregationBits = sszutil.CopyBytes(bits)
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the PendingAttestation object
func (p *PendingAttestation) SizeSSZ() int {
	return pendingAttestationFixedSize + len(p.AggregationBits)
}

// HashTreeRoot ssz hashes the PendingAttestation object
func (p *PendingAttestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(p)
}

// HashTreeRootWith ssz hashes the PendingAttestation object with a hasher
func (p *PendingAttestation) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	limit := params.BeaconConfig().MaxValidatorsPerCommittee
	if err := validateBitlist(p.AggregationBits, limit); err != nil {
		return errors.Wrap(err, "PendingAttestation.AggregationBits")
	}
	hh.PutBitlist(p.AggregationBits, limit)
	if p.Data == nil {
		return errNilField("PendingAttestation.Data")
	}
	if err := p.Data.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutUint64(p.InclusionDelay)
	hh.PutUint64(p.ProposerIndex)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the HistoricalBatch object
func (h *HistoricalBatch) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(h)
}

// MarshalSSZTo ssz marshals the HistoricalBatch object to a target array
func (h *HistoricalBatch) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	n := int(params.BeaconConfig().SlotsPerHistoricalRoot)
	if len(h.BlockRoots) != n {
		return nil, sszutil.ErrVectorLength("HistoricalBatch.BlockRoots", len(h.BlockRoots), n)
	}
	if len(h.StateRoots) != n {
		return nil, sszutil.ErrVectorLength("HistoricalBatch.StateRoots", len(h.StateRoots), n)
	}
	if dst, err = sszutil.MarshalRoots(buf, h.BlockRoots, "HistoricalBatch.BlockRoots"); err != nil {
		return
	}
	return sszutil.MarshalRoots(dst, h.StateRoots, "HistoricalBatch.StateRoots")
}

// UnmarshalSSZ ssz unmarshals the HistoricalBatch object
func (h *HistoricalBatch) UnmarshalSSZ(buf []byte) (err error) {
	if len(buf) != h.SizeSSZ() {
		return ssz.ErrSize
	}
	half := len(buf) / 2
	if h.BlockRoots, err = sszutil.UnmarshalRoots(buf[:half]); err != nil {
		return
	}
	h.StateRoots, err = sszutil.UnmarshalRoots(buf[half:])
	return
}

// SizeSSZ returns the ssz encoded size in bytes for the HistoricalBatch object
func (h *HistoricalBatch) SizeSSZ() int {
	return 64 * int(params.BeaconConfig().SlotsPerHistoricalRoot)
}

// HashTreeRoot ssz hashes the HistoricalBatch object
func (h *HistoricalBatch) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(h)
}

// HashTreeRootWith ssz hashes the HistoricalBatch object with a hasher
func (h *HistoricalBatch) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	n := int(params.BeaconConfig().SlotsPerHistoricalRoot)
	if err := sszutil.PutRootVector(hh, h.BlockRoots, n, "HistoricalBatch.BlockRoots"); err != nil {
		return err
	}
	if err := sszutil.PutRootVector(hh, h.StateRoots, n, "HistoricalBatch.StateRoots"); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// beaconStateFixedSize is the size of the fixed part of the state for the active config.
func beaconStateFixedSize() int {
	cfg := params.BeaconConfig()
	return beaconStateFixedSizeNoVectors +
		64*int(cfg.SlotsPerHistoricalRoot) +
		32*int(cfg.EpochsPerHistoricalVector) +
		8*int(cfg.EpochsPerSlashingsVector)
}

// MarshalSSZ ssz marshals the BeaconState object
func (b *BeaconState) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the BeaconState object to a target array
func (b *BeaconState) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if err = b.checkLimits(); err != nil {
		return nil, err
	}

	dst = ssz.MarshalUint64(buf, b.GenesisTime)
	if dst, err = sszutil.MarshalFixedBytes(dst, b.GenesisValidatorsRoot, 32, "BeaconState.GenesisValidatorsRoot"); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, b.Slot)
	if b.Fork == nil {
		return nil, errNilField("BeaconState.Fork")
	}
	if dst, err = b.Fork.MarshalSSZTo(dst); err != nil {
		return
	}
	if b.LatestBlockHeader == nil {
		return nil, errNilField("BeaconState.LatestBlockHeader")
	}
	if dst, err = b.LatestBlockHeader.MarshalSSZTo(dst); err != nil {
		return
	}
	if dst, err = sszutil.MarshalRoots(dst, b.BlockRoots, "BeaconState.BlockRoots"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalRoots(dst, b.StateRoots, "BeaconState.StateRoots"); err != nil {
		return
	}

	offset := beaconStateFixedSize()
	dst = ssz.WriteOffset(dst, offset)
	offset += 32 * len(b.HistoricalRoots)

	if b.Eth1Data == nil {
		return nil, errNilField("BeaconState.Eth1Data")
	}
	if dst, err = b.Eth1Data.MarshalSSZTo(dst); err != nil {
		return
	}
	dst = ssz.WriteOffset(dst, offset)
	offset += eth1DataSize * len(b.Eth1DataVotes)
	dst = ssz.MarshalUint64(dst, b.Eth1DepositIndex)
	dst = ssz.WriteOffset(dst, offset)
	offset += 121 * len(b.Validators)
	dst = ssz.WriteOffset(dst, offset)
	offset += 8 * len(b.Balances)

	if dst, err = sszutil.MarshalRoots(dst, b.RandaoMixes, "BeaconState.RandaoMixes"); err != nil {
		return
	}
	dst = sszutil.MarshalUint64s(dst, b.Slashings)

	dst = ssz.WriteOffset(dst, offset)
	for _, a := range b.PreviousEpochAttestations {
		if a == nil {
			return nil, errNilField("BeaconState.PreviousEpochAttestations element")
		}
		offset += 4 + a.SizeSSZ()
	}
	dst = ssz.WriteOffset(dst, offset)

	if dst, err = sszutil.MarshalFixedBytes(dst, b.JustificationBits, 1, "BeaconState.JustificationBits"); err != nil {
		return
	}
	for _, cp := range []struct {
		name string
		val  *ethpb.Checkpoint
	}{
		{"BeaconState.PreviousJustifiedCheckpoint", b.PreviousJustifiedCheckpoint},
		{"BeaconState.CurrentJustifiedCheckpoint", b.CurrentJustifiedCheckpoint},
		{"BeaconState.FinalizedCheckpoint", b.FinalizedCheckpoint},
	} {
		if cp.val == nil {
			return nil, errNilField(cp.name)
		}
		if dst, err = cp.val.MarshalSSZTo(dst); err != nil {
			return
		}
	}

	// Variable parts, in field order.
	if dst, err = sszutil.MarshalRoots(dst, b.HistoricalRoots, "BeaconState.HistoricalRoots"); err != nil {
		return
	}
	for _, v := range b.Eth1DataVotes {
		if v == nil {
			return nil, errNilField("BeaconState.Eth1DataVotes element")
		}
		if dst, err = v.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	for _, v := range b.Validators {
		if v == nil {
			return nil, errNilField("BeaconState.Validators element")
		}
		if dst, err = v.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	dst = sszutil.MarshalUint64s(dst, b.Balances)
	if dst, err = marshalPendingAttestations(dst, b.PreviousEpochAttestations); err != nil {
		return
	}
	return marshalPendingAttestations(dst, b.CurrentEpochAttestations)
}

func marshalPendingAttestations(dst []byte, atts []*PendingAttestation) ([]byte, error) {
	offset := 4 * len(atts)
	for _, a := range atts {
		if a == nil {
			return nil, errNilField("BeaconState pending attestation")
		}
		dst = ssz.WriteOffset(dst, offset)
		offset += a.SizeSSZ()
	}
	var err error
	for _, a := range atts {
		if dst, err = a.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// checkLimits verifies the vector lengths and list limits of the state against the active config.
func (b *BeaconState) checkLimits() error {
	cfg := params.BeaconConfig()
	for _, v := range []struct {
		name      string
		got, want int
	}{
		{"BeaconState.BlockRoots", len(b.BlockRoots), int(cfg.SlotsPerHistoricalRoot)},
		{"BeaconState.StateRoots", len(b.StateRoots), int(cfg.SlotsPerHistoricalRoot)},
		{"BeaconState.RandaoMixes", len(b.RandaoMixes), int(cfg.EpochsPerHistoricalVector)},
		{"BeaconState.Slashings", len(b.Slashings), int(cfg.EpochsPerSlashingsVector)},
	} {
		if v.got != v.want {
			return sszutil.ErrVectorLength(v.name, v.got, v.want)
		}
	}
	for _, l := range []struct {
		name  string
		n     int
		limit uint64
	}{
		{"BeaconState.HistoricalRoots", len(b.HistoricalRoots), cfg.HistoricalRootsLimit},
		{"BeaconState.Eth1DataVotes", len(b.Eth1DataVotes), cfg.SlotsPerEth1VotingPeriod()},
		{"BeaconState.Validators", len(b.Validators), cfg.ValidatorRegistryLimit},
		{"BeaconState.Balances", len(b.Balances), cfg.ValidatorRegistryLimit},
		{"BeaconState.PreviousEpochAttestations", len(b.PreviousEpochAttestations), cfg.PendingAttestationsLimit()},
		{"BeaconState.CurrentEpochAttestations", len(b.CurrentEpochAttestations), cfg.PendingAttestationsLimit()},
	} {
		if uint64(l.n) > l.limit {
			return sszutil.ErrListTooBig(l.name, l.n, l.limit)
		}
	}
	return nil
}

// UnmarshalSSZ ssz unmarshals the BeaconState object
func (b *BeaconState) UnmarshalSSZ(buf []byte) error {
	cfg := params.BeaconConfig()
	size := uint64(len(buf))
	fixed := beaconStateFixedSize()
	if len(buf) < fixed {
		return ssz.ErrSize
	}
	shr := int(cfg.SlotsPerHistoricalRoot)
	ehv := int(cfg.EpochsPerHistoricalVector)
	epsv := int(cfg.EpochsPerSlashingsVector)

	var err error
	pos := 0
	next := func(n int) []byte {
		s := buf[pos : pos+n]
		pos += n
		return s
	}

	b.GenesisTime = ssz.UnmarshallUint64(next(8))
	b.GenesisValidatorsRoot = sszutil.CopyBytes(next(32))
	b.Slot = ssz.UnmarshallUint64(next(8))
	b.Fork = new(ethpb.Fork)
	if err = b.Fork.UnmarshalSSZ(next(16)); err != nil {
		return err
	}
	b.LatestBlockHeader = new(ethpb.BeaconBlockHeader)
	if err = b.LatestBlockHeader.UnmarshalSSZ(next(112)); err != nil {
		return err
	}
	if b.BlockRoots, err = sszutil.UnmarshalRoots(next(32 * shr)); err != nil {
		return err
	}
	if b.StateRoots, err = sszutil.UnmarshalRoots(next(32 * shr)); err != nil {
		return err
	}
	offsets := make([]uint64, 0, 7)
	offsets = append(offsets, ssz.ReadOffset(next(4)))
	b.Eth1Data = new(ethpb.Eth1Data)
	if err = b.Eth1Data.UnmarshalSSZ(next(eth1DataSize)); err != nil {
		return err
	}
	offsets = append(offsets, ssz.ReadOffset(next(4)))
	b.Eth1DepositIndex = ssz.UnmarshallUint64(next(8))
	offsets = append(offsets, ssz.ReadOffset(next(4)))
	offsets = append(offsets, ssz.ReadOffset(next(4)))
	if b.RandaoMixes, err = sszutil.UnmarshalRoots(next(32 * ehv)); err != nil {
		return err
	}
	if b.Slashings, err = sszutil.UnmarshalUint64s(next(8 * epsv)); err != nil {
		return err
	}
	offsets = append(offsets, ssz.ReadOffset(next(4)))
	offsets = append(offsets, ssz.ReadOffset(next(4)))
	b.JustificationBits = sszutil.CopyBytes(next(1))
	b.PreviousJustifiedCheckpoint = new(ethpb.Checkpoint)
	if err = b.PreviousJustifiedCheckpoint.UnmarshalSSZ(next(40)); err != nil {
		return err
	}
	b.CurrentJustifiedCheckpoint = new(ethpb.Checkpoint)
	if err = b.CurrentJustifiedCheckpoint.UnmarshalSSZ(next(40)); err != nil {
		return err
	}
	b.FinalizedCheckpoint = new(ethpb.Checkpoint)
	if err = b.FinalizedCheckpoint.UnmarshalSSZ(next(40)); err != nil {
		return err
	}

	if offsets[0] != uint64(fixed) {
		return ssz.ErrOffset
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] || offsets[i] > size {
			return ssz.ErrOffset
		}
	}
	offsets = append(offsets, size)

	histBuf := buf[offsets[0]:offsets[1]]
	if uint64(len(histBuf)/32) > cfg.HistoricalRootsLimit {
		return ssz.ErrListTooBig
	}
	if b.HistoricalRoots, err = sszutil.UnmarshalRoots(histBuf); err != nil {
		return err
	}
	b.Eth1DataVotes = nil
	if _, err = sszutil.DecodeFixedList(buf[offsets[1]:offsets[2]], eth1DataSize, cfg.SlotsPerEth1VotingPeriod(), func(_ int, e []byte) error {
		v := new(ethpb.Eth1Data)
		if err := v.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.Eth1DataVotes = append(b.Eth1DataVotes, v)
		return nil
	}); err != nil {
		return err
	}
	b.Validators = nil
	if _, err = sszutil.DecodeFixedList(buf[offsets[2]:offsets[3]], 121, cfg.ValidatorRegistryLimit, func(_ int, e []byte) error {
		v := new(ethpb.Validator)
		if err := v.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.Validators = append(b.Validators, v)
		return nil
	}); err != nil {
		return err
	}
	if b.Balances, err = sszutil.UnmarshalUint64s(buf[offsets[3]:offsets[4]]); err != nil {
		return err
	}
	if b.PreviousEpochAttestations, err = unmarshalPendingAttestations(buf[offsets[4]:offsets[5]]); err != nil {
		return err
	}
	b.CurrentEpochAttestations, err = unmarshalPendingAttestations(buf[offsets[5]:offsets[6]])
	return err
}

func unmarshalPendingAttestations(buf []byte) ([]*PendingAttestation, error) {
	var atts []*PendingAttestation
	_, err := sszutil.DecodeDynamicList(buf, params.BeaconConfig().PendingAttestationsLimit(), func(_ int, e []byte) error {
		a := new(PendingAttestation)
		if err := a.UnmarshalSSZ(e); err != nil {
			return err
		}
		atts = append(atts, a)
		return nil
	})
	return atts, err
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconState object
func (b *BeaconState) SizeSSZ() int {
	size := beaconStateFixedSize()
	size += 32 * len(b.HistoricalRoots)
	size += eth1DataSize * len(b.Eth1DataVotes)
	size += 121 * len(b.Validators)
	size += 8 * len(b.Balances)
	for _, a := range b.PreviousEpochAttestations {
		size += 4
		if a != nil {
			size += a.SizeSSZ()
		}
	}
	for _, a := range b.CurrentEpochAttestations {
		size += 4
		if a != nil {
			size += a.SizeSSZ()
		}
	}
	return size
}

// HashTreeRoot ssz hashes the BeaconState object
func (b *BeaconState) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// BeaconStateFieldCount is the number of top level fields in the state container.
const BeaconStateFieldCount = 21

// HashTreeRootWith ssz hashes the BeaconState object with a hasher
func (b *BeaconState) HashTreeRootWith(hh *ssz.Hasher) error {
	if err := b.checkLimits(); err != nil {
		return err
	}
	indx := hh.Index()
	for i := 0; i < BeaconStateFieldCount; i++ {
		if err := b.putField(hh, i); err != nil {
			return err
		}
	}
	hh.Merkleize(indx)
	return nil
}

// FieldRoot returns the hash tree root of the top level field at index idx.
func (b *BeaconState) FieldRoot(idx int) ([32]byte, error) {
	if idx < 0 || idx >= BeaconStateFieldCount {
		return [32]byte{}, errors.Errorf("state field index %d out of range", idx)
	}
	hh := ssz.NewHasher()
	if err := b.putField(hh, idx); err != nil {
		return [32]byte{}, err
	}
	return hh.HashRoot()
}

func (b *BeaconState) putField(hh *ssz.Hasher, idx int) error {
	cfg := params.BeaconConfig()
	switch idx {
	case 0:
		hh.PutUint64(b.GenesisTime)
	case 1:
		if len(b.GenesisValidatorsRoot) != 32 {
			return sszutil.ErrVectorLength("BeaconState.GenesisValidatorsRoot", len(b.GenesisValidatorsRoot), 32)
		}
		hh.PutBytes(b.GenesisValidatorsRoot)
	case 2:
		hh.PutUint64(b.Slot)
	case 3:
		if b.Fork == nil {
			return errNilField("BeaconState.Fork")
		}
		return b.Fork.HashTreeRootWith(hh)
	case 4:
		if b.LatestBlockHeader == nil {
			return errNilField("BeaconState.LatestBlockHeader")
		}
		return b.LatestBlockHeader.HashTreeRootWith(hh)
	case 5:
		return sszutil.PutRootVector(hh, b.BlockRoots, int(cfg.SlotsPerHistoricalRoot), "BeaconState.BlockRoots")
	case 6:
		return sszutil.PutRootVector(hh, b.StateRoots, int(cfg.SlotsPerHistoricalRoot), "BeaconState.StateRoots")
	case 7:
		return sszutil.PutRootList(hh, b.HistoricalRoots, cfg.HistoricalRootsLimit, "BeaconState.HistoricalRoots")
	case 8:
		if b.Eth1Data == nil {
			return errNilField("BeaconState.Eth1Data")
		}
		return b.Eth1Data.HashTreeRootWith(hh)
	case 9:
		limit := cfg.SlotsPerEth1VotingPeriod()
		if uint64(len(b.Eth1DataVotes)) > limit {
			return sszutil.ErrListTooBig("BeaconState.Eth1DataVotes", len(b.Eth1DataVotes), limit)
		}
		subIndx := hh.Index()
		for _, v := range b.Eth1DataVotes {
			if v == nil {
				return errNilField("BeaconState.Eth1DataVotes element")
			}
			if err := v.HashTreeRootWith(hh); err != nil {
				return err
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.Eth1DataVotes)), limit)
	case 10:
		hh.PutUint64(b.Eth1DepositIndex)
	case 11:
		if uint64(len(b.Validators)) > cfg.ValidatorRegistryLimit {
			return sszutil.ErrListTooBig("BeaconState.Validators", len(b.Validators), cfg.ValidatorRegistryLimit)
		}
		subIndx := hh.Index()
		for _, v := range b.Validators {
			if v == nil {
				return errNilField("BeaconState.Validators element")
			}
			if err := v.HashTreeRootWith(hh); err != nil {
				return err
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.Validators)), cfg.ValidatorRegistryLimit)
	case 12:
		return sszutil.PutUint64List(hh, b.Balances, cfg.ValidatorRegistryLimit, "BeaconState.Balances")
	case 13:
		return sszutil.PutRootVector(hh, b.RandaoMixes, int(cfg.EpochsPerHistoricalVector), "BeaconState.RandaoMixes")
	case 14:
		return sszutil.PutUint64Vector(hh, b.Slashings, int(cfg.EpochsPerSlashingsVector), "BeaconState.Slashings")
	case 15, 16:
		atts := b.PreviousEpochAttestations
		if idx == 16 {
			atts = b.CurrentEpochAttestations
		}
		limit := cfg.PendingAttestationsLimit()
		if uint64(len(atts)) > limit {
			return sszutil.ErrListTooBig("BeaconState pending attestations", len(atts), limit)
		}
		subIndx := hh.Index()
		for _, a := range atts {
			if a == nil {
				return errNilField("BeaconState pending attestation")
			}
			if err := a.HashTreeRootWith(hh); err != nil {
				return err
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(atts)), limit)
	case 17:
		if len(b.JustificationBits) != 1 {
			return sszutil.ErrVectorLength("BeaconState.JustificationBits", len(b.JustificationBits), 1)
		}
		hh.PutBytes(b.JustificationBits)
	case 18:
		if b.PreviousJustifiedCheckpoint == nil {
			return errNilField("BeaconState.PreviousJustifiedCheckpoint")
		}
		return b.PreviousJustifiedCheckpoint.HashTreeRootWith(hh)
	case 19:
		if b.CurrentJustifiedCheckpoint == nil {
			return errNilField("BeaconState.CurrentJustifiedCheckpoint")
		}
		return b.CurrentJustifiedCheckpoint.HashTreeRootWith(hh)
	case 20:
		if b.FinalizedCheckpoint == nil {
			return errNilField("BeaconState.FinalizedCheckpoint")
		}
		return b.FinalizedCheckpoint.HashTreeRootWith(hh)
	}
	return nil
}
