package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
)

// validateBitlist checks that buf is a well formed bitlist of at most limit bits.
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

// MarshalSSZ ssz marshals the AttestationData object
func (a *AttestationData) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the AttestationData object to a target array
func (a *AttestationData) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.MarshalUint64(buf, a.Slot)
	dst = ssz.MarshalUint64(dst, a.CommitteeIndex)
	if dst, err = sszutil.MarshalFixedBytes(dst, a.BeaconBlockRoot, 32, "AttestationData.BeaconBlockRoot"); err != nil {
		return
	}
	if a.Source == nil {
		return nil, errNilField("AttestationData.Source")
	}
	if dst, err = a.Source.MarshalSSZTo(dst); err != nil {
		return
	}
	if a.Target == nil {
		return nil, errNilField("AttestationData.Target")
	}
	return a.Target.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the AttestationData object
func (a *AttestationData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 128 {
		return ssz.ErrSize
	}
	a.Slot = ssz.UnmarshallUint64(buf[0:8])
	a.CommitteeIndex = ssz.UnmarshallUint64(buf[8:16])
	a.BeaconBlockRoot = sszutil.CopyBytes(buf[16:48])
	a.Source = new(Checkpoint)
	if err := a.Source.UnmarshalSSZ(buf[48:88]); err != nil {
		return err
	}
	a.Target = new(Checkpoint)
	return a.Target.UnmarshalSSZ(buf[88:128])
}

// SizeSSZ returns the ssz encoded size in bytes for the AttestationData object
func (a *AttestationData) SizeSSZ() int {
	return 128
}

// HashTreeRoot ssz hashes the AttestationData object
func (a *AttestationData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(a)
}

// HashTreeRootWith ssz hashes the AttestationData object with a hasher
func (a *AttestationData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(a.Slot)
	hh.PutUint64(a.CommitteeIndex)
	if len(a.BeaconBlockRoot) != 32 {
		return sszutil.ErrVectorLength("AttestationData.BeaconBlockRoot", len(a.BeaconBlockRoot), 32)
	}
	hh.PutBytes(a.BeaconBlockRoot)
	if a.Source == nil {
		return errNilField("AttestationData.Source")
	}
	if err := a.Source.HashTreeRootWith(hh); err != nil {
		return err
	}
	if a.Target == nil {
		return errNilField("AttestationData.Target")
	}
	if err := a.Target.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Attestation object
func (a *Attestation) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the Attestation object to a target array
func (a *Attestation) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.WriteOffset(buf, 228)
	if a.Data == nil {
		return nil, errNilField("Attestation.Data")
	}
	if dst, err = a.Data.MarshalSSZTo(dst); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, a.Signature, 96, "Attestation.Signature"); err != nil {
		return
	}
	if err = validateBitlist(a.AggregationBits, params.BeaconConfig().MaxValidatorsPerCommittee); err != nil {
		return nil, errors.Wrap(err, "Attestation.AggregationBits")
	}
	dst = append(dst, a.AggregationBits...)
	return
}

// UnmarshalSSZ ssz unmarshals the Attestation object
func (a *Attestation) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < 228 {
		return ssz.ErrSize
	}
	if o0 := ssz.ReadOffset(buf[0:4]); o0 != 228 {
		return ssz.ErrOffset
	}
	a.Data = new(AttestationData)
	if err := a.Data.UnmarshalSSZ(buf[4:132]); err != nil {
		return err
	}
	a.Signature = sszutil.CopyBytes(buf[132:228])
	bits := buf[228:]
	if err := validateBitlist(bits, params.BeaconConfig().MaxValidatorsPerCommittee); err != nil {
		return errors.Wrap(err, "Attestation.AggregationBits")
	}
	a.AggregationBits = sszutil.CopyBytes(bits)
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Attestation object
func (a *Attestation) SizeSSZ() int {
	return 228 + len(a.AggregationBits)
}

// HashTreeRoot ssz hashes the Attestation object
func (a *Attestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(a)
}

// HashTreeRootWith ssz hashes the Attestation object with a hasher
func (a *Attestation) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if err := validateBitlist(a.AggregationBits, params.BeaconConfig().MaxValidatorsPerCommittee); err != nil {
		return errors.Wrap(err, "Attestation.AggregationBits")
	}
	hh.PutBitlist(a.AggregationBits, params.BeaconConfig().MaxValidatorsPerCommittee)
	if a.Data == nil {
		return errNilField("Attestation.Data")
	}
	if err := a.Data.HashTreeRootWith(hh); err != nil {
		return err
	}
	if len(a.Signature) != 96 {
		return sszutil.ErrVectorLength("Attestation.Signature", len(a.Signature), 96)
	}
	hh.PutBytes(a.Signature)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the IndexedAttestation object
func (i *IndexedAttestation) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(i)
}

// MarshalSSZTo ssz marshals the IndexedAttestation object to a target array
func (i *IndexedAttestation) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.WriteOffset(buf, 228)
	if i.Data == nil {
		return nil, errNilField("IndexedAttestation.Data")
	}
	if dst, err = i.Data.MarshalSSZTo(dst); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, i.Signature, 96, "IndexedAttestation.Signature"); err != nil {
		return
	}
	if limit := params.BeaconConfig().MaxValidatorsPerCommittee; uint64(len(i.AttestingIndices)) > limit {
		return nil, sszutil.ErrListTooBig("IndexedAttestation.AttestingIndices", len(i.AttestingIndices), limit)
	}
	dst = sszutil.MarshalUint64s(dst, i.AttestingIndices)
	return
}

// UnmarshalSSZ ssz unmarshals the IndexedAttestation object
func (i *IndexedAttestation) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < 228 {
		return ssz.ErrSize
	}
	if o0 := ssz.ReadOffset(buf[0:4]); o0 != 228 {
		return ssz.ErrOffset
	}
	i.Data = new(AttestationData)
	if err := i.Data.UnmarshalSSZ(buf[4:132]); err != nil {
		return err
	}
	i.Signature = sszutil.CopyBytes(buf[132:228])
	tail := buf[228:]
	if limit := params.BeaconConfig().MaxValidatorsPerCommittee; uint64(len(tail)/8) > limit {
		return ssz.ErrListTooBig
	}
	indices, err := sszutil.UnmarshalUint64s(tail)
	if err != nil {
		return err
	}
	i.AttestingIndices = indices
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the IndexedAttestation object
func (i *IndexedAttestation) SizeSSZ() int {
	return 228 + 8*len(i.AttestingIndices)
}

// HashTreeRoot ssz hashes the IndexedAttestation object
func (i *IndexedAttestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(i)
}

// HashTreeRootWith ssz hashes the IndexedAttestation object with a hasher
func (i *IndexedAttestation) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if err := sszutil.PutUint64List(hh, i.AttestingIndices, params.BeaconConfig().MaxValidatorsPerCommittee, "IndexedAttestation.AttestingIndices"); err != nil {
		return err
	}
	if i.Data == nil {
		return errNilField("IndexedAttestation.Data")
	}
	if err := i.Data.HashTreeRootWith(hh); err != nil {
		return err
	}
	if len(i.Signature) != 96 {
		return sszutil.ErrVectorLength("IndexedAttestation.Signature", len(i.Signature), 96)
	}
	hh.PutBytes(i.Signature)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the AttesterSlashing object
func (a *AttesterSlashing) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the AttesterSlashing object to a target array
func (a *AttesterSlashing) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if a.Attestation_1 == nil {
		return nil, errNilField("AttesterSlashing.Attestation_1")
	}
	if a.Attestation_2 == nil {
		return nil, errNilField("AttesterSlashing.Attestation_2")
	}
	offset := 8
	dst = ssz.WriteOffset(buf, offset)
	offset += a.Attestation_1.SizeSSZ()
	dst = ssz.WriteOffset(dst, offset)
	if dst, err = a.Attestation_1.MarshalSSZTo(dst); err != nil {
		return
	}
	return a.Attestation_2.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the AttesterSlashing object
func (a *AttesterSlashing) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < 8 {
		return ssz.ErrSize
	}
	offsets, err := sszutil.ReadOffsets(buf, 2, 8, size)
	if err != nil {
		return err
	}
	a.Attestation_1 = new(IndexedAttestation)
	if err := a.Attestation_1.UnmarshalSSZ(buf[offsets[0]:offsets[1]]); err != nil {
		return err
	}
	a.Attestation_2 = new(IndexedAttestation)
	return a.Attestation_2.UnmarshalSSZ(buf[offsets[1]:offsets[2]])
}

// SizeSSZ returns the ssz encoded size in bytes for the AttesterSlashing object
func (a *AttesterSlashing) SizeSSZ() int {
	size := 8
	if a.Attestation_1 != nil {
		size += a.Attestation_1.SizeSSZ()
	}
	if a.Attestation_2 != nil {
		size += a.Attestation_2.SizeSSZ()
	}
	return size
}

// HashTreeRoot ssz hashes the AttesterSlashing object
func (a *AttesterSlashing) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(a)
}

// HashTreeRootWith ssz hashes the AttesterSlashing object with a hasher
func (a *AttesterSlashing) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if a.Attestation_1 == nil {
		return errNilField("AttesterSlashing.Attestation_1")
	}
	if err := a.Attestation_1.HashTreeRootWith(hh); err != nil {
		return err
	}
	if a.Attestation_2 == nil {
		return errNilField("AttesterSlashing.Attestation_2")
	}
	if err := a.Attestation_2.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}
