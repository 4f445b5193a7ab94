package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
)

// IMPORTANT
// The methods in this file are hand-written. Container shapes follow the phase0
// layout; list limits are read from the active chain config at call time.

func errNilField(field string) error {
	return errors.Errorf("nil %s", field)
}

func unmarshalBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.Errorf("invalid ssz bool byte %#x", b)
}

// MarshalSSZ ssz marshals the Validator object
func (v *Validator) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(v)
}

// MarshalSSZTo ssz marshals the Validator object to a target array
func (v *Validator) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = buf
	if dst, err = sszutil.MarshalFixedBytes(dst, v.PublicKey, 48, "Validator.PublicKey"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, v.WithdrawalCredentials, 32, "Validator.WithdrawalCredentials"); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, v.EffectiveBalance)
	dst = ssz.MarshalBool(dst, v.Slashed)
	dst = ssz.MarshalUint64(dst, v.ActivationEligibilityEpoch)
	dst = ssz.MarshalUint64(dst, v.ActivationEpoch)
	dst = ssz.MarshalUint64(dst, v.ExitEpoch)
	dst = ssz.MarshalUint64(dst, v.WithdrawableEpoch)
	return
}

// UnmarshalSSZ ssz unmarshals the Validator object
func (v *Validator) UnmarshalSSZ(buf []byte) (err error) {
	if len(buf) != 121 {
		return ssz.ErrSize
	}
	v.PublicKey = sszutil.CopyBytes(buf[0:48])
	v.WithdrawalCredentials = sszutil.CopyBytes(buf[48:80])
	v.EffectiveBalance = ssz.UnmarshallUint64(buf[80:88])
	if v.Slashed, err = unmarshalBool(buf[88]); err != nil {
		return
	}
	v.ActivationEligibilityEpoch = ssz.UnmarshallUint64(buf[89:97])
	v.ActivationEpoch = ssz.UnmarshallUint64(buf[97:105])
	v.ExitEpoch = ssz.UnmarshallUint64(buf[105:113])
	v.WithdrawableEpoch = ssz.UnmarshallUint64(buf[113:121])
	return
}

// SizeSSZ returns the ssz encoded size in bytes for the Validator object
func (v *Validator) SizeSSZ() int {
	return 121
}

// HashTreeRoot ssz hashes the Validator object
func (v *Validator) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(v)
}

// HashTreeRootWith ssz hashes the Validator object with a hasher
func (v *Validator) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(v.PublicKey) != 48 {
		return sszutil.ErrVectorLength("Validator.PublicKey", len(v.PublicKey), 48)
	}
	hh.PutBytes(v.PublicKey)
	if len(v.WithdrawalCredentials) != 32 {
		return sszutil.ErrVectorLength("Validator.WithdrawalCredentials", len(v.WithdrawalCredentials), 32)
	}
	hh.PutBytes(v.WithdrawalCredentials)
	hh.PutUint64(v.EffectiveBalance)
	hh.PutBool(v.Slashed)
	hh.PutUint64(v.ActivationEligibilityEpoch)
	hh.PutUint64(v.ActivationEpoch)
	hh.PutUint64(v.ExitEpoch)
	hh.PutUint64(v.WithdrawableEpoch)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Fork object
func (f *Fork) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(f)
}

// MarshalSSZTo ssz marshals the Fork object to a target array
func (f *Fork) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = buf
	if dst, err = sszutil.MarshalFixedBytes(dst, f.PreviousVersion, 4, "Fork.PreviousVersion"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, f.CurrentVersion, 4, "Fork.CurrentVersion"); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, f.Epoch)
	return
}

// UnmarshalSSZ ssz unmarshals the Fork object
func (f *Fork) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 16 {
		return ssz.ErrSize
	}
	f.PreviousVersion = sszutil.CopyBytes(buf[0:4])
	f.CurrentVersion = sszutil.CopyBytes(buf[4:8])
	f.Epoch = ssz.UnmarshallUint64(buf[8:16])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Fork object
func (f *Fork) SizeSSZ() int {
	return 16
}

// HashTreeRoot ssz hashes the Fork object
func (f *Fork) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(f)
}

// HashTreeRootWith ssz hashes the Fork object with a hasher
func (f *Fork) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(f.PreviousVersion) != 4 {
		return sszutil.ErrVectorLength("Fork.PreviousVersion", len(f.PreviousVersion), 4)
	}
	hh.PutBytes(f.PreviousVersion)
	if len(f.CurrentVersion) != 4 {
		return sszutil.ErrVectorLength("Fork.CurrentVersion", len(f.CurrentVersion), 4)
	}
	hh.PutBytes(f.CurrentVersion)
	hh.PutUint64(f.Epoch)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the ForkData object
func (f *ForkData) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(f)
}

// MarshalSSZTo ssz marshals the ForkData object to a target array
func (f *ForkData) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = buf
	if dst, err = sszutil.MarshalFixedBytes(dst, f.CurrentVersion, 4, "ForkData.CurrentVersion"); err != nil {
		return
	}
	return sszutil.MarshalFixedBytes(dst, f.GenesisValidatorsRoot, 32, "ForkData.GenesisValidatorsRoot")
}

// UnmarshalSSZ ssz unmarshals the ForkData object
func (f *ForkData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 36 {
		return ssz.ErrSize
	}
	f.CurrentVersion = sszutil.CopyBytes(buf[0:4])
	f.GenesisValidatorsRoot = sszutil.CopyBytes(buf[4:36])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the ForkData object
func (f *ForkData) SizeSSZ() int {
	return 36
}

// HashTreeRoot ssz hashes the ForkData object
func (f *ForkData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(f)
}

// HashTreeRootWith ssz hashes the ForkData object with a hasher
func (f *ForkData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(f.CurrentVersion) != 4 {
		return sszutil.ErrVectorLength("ForkData.CurrentVersion", len(f.CurrentVersion), 4)
	}
	hh.PutBytes(f.CurrentVersion)
	if len(f.GenesisValidatorsRoot) != 32 {
		return sszutil.ErrVectorLength("ForkData.GenesisValidatorsRoot", len(f.GenesisValidatorsRoot), 32)
	}
	hh.PutBytes(f.GenesisValidatorsRoot)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the SigningData object
func (s *SigningData) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(s)
}

// MarshalSSZTo ssz marshals the SigningData object to a target array
func (s *SigningData) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = buf
	if dst, err = sszutil.MarshalFixedBytes(dst, s.ObjectRoot, 32, "SigningData.ObjectRoot"); err != nil {
		return
	}
	return sszutil.MarshalFixedBytes(dst, s.Domain, 32, "SigningData.Domain")
}

// UnmarshalSSZ ssz unmarshals the SigningData object
func (s *SigningData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 64 {
		return ssz.ErrSize
	}
	s.ObjectRoot = sszutil.CopyBytes(buf[0:32])
	s.Domain = sszutil.CopyBytes(buf[32:64])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the SigningData object
func (s *SigningData) SizeSSZ() int {
	return 64
}

// HashTreeRoot ssz hashes the SigningData object
func (s *SigningData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SigningData object with a hasher
func (s *SigningData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(s.ObjectRoot) != 32 {
		return sszutil.ErrVectorLength("SigningData.ObjectRoot", len(s.ObjectRoot), 32)
	}
	hh.PutBytes(s.ObjectRoot)
	if len(s.Domain) != 32 {
		return sszutil.ErrVectorLength("SigningData.Domain", len(s.Domain), 32)
	}
	hh.PutBytes(s.Domain)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Checkpoint object
func (c *Checkpoint) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(c)
}

// MarshalSSZTo ssz marshals the Checkpoint object to a target array
func (c *Checkpoint) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.MarshalUint64(buf, c.Epoch)
	return sszutil.MarshalFixedBytes(dst, c.Root, 32, "Checkpoint.Root")
}

// UnmarshalSSZ ssz unmarshals the Checkpoint object
func (c *Checkpoint) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 40 {
		return ssz.ErrSize
	}
	c.Epoch = ssz.UnmarshallUint64(buf[0:8])
	c.Root = sszutil.CopyBytes(buf[8:40])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Checkpoint object
func (c *Checkpoint) SizeSSZ() int {
	return 40
}

// HashTreeRoot ssz hashes the Checkpoint object
func (c *Checkpoint) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(c)
}

// HashTreeRootWith ssz hashes the Checkpoint object with a hasher
func (c *Checkpoint) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(c.Epoch)
	if len(c.Root) != 32 {
		return sszutil.ErrVectorLength("Checkpoint.Root", len(c.Root), 32)
	}
	hh.PutBytes(c.Root)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Eth1Data object
func (e *Eth1Data) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(e)
}

// MarshalSSZTo ssz marshals the Eth1Data object to a target array
func (e *Eth1Data) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = buf
	if dst, err = sszutil.MarshalFixedBytes(dst, e.DepositRoot, 32, "Eth1Data.DepositRoot"); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, e.DepositCount)
	return sszutil.MarshalFixedBytes(dst, e.BlockHash, 32, "Eth1Data.BlockHash")
}

// UnmarshalSSZ ssz unmarshals the Eth1Data object
func (e *Eth1Data) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 72 {
		return ssz.ErrSize
	}
	e.DepositRoot = sszutil.CopyBytes(buf[0:32])
	e.DepositCount = ssz.UnmarshallUint64(buf[32:40])
	e.BlockHash = sszutil.CopyBytes(buf[40:72])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Eth1Data object
func (e *Eth1Data) SizeSSZ() int {
	return 72
}

// HashTreeRoot ssz hashes the Eth1Data object
func (e *Eth1Data) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(e)
}

// HashTreeRootWith ssz hashes the Eth1Data object with a hasher
func (e *Eth1Data) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(e.DepositRoot) != 32 {
		return sszutil.ErrVectorLength("Eth1Data.DepositRoot", len(e.DepositRoot), 32)
	}
	hh.PutBytes(e.DepositRoot)
	hh.PutUint64(e.DepositCount)
	if len(e.BlockHash) != 32 {
		return sszutil.ErrVectorLength("Eth1Data.BlockHash", len(e.BlockHash), 32)
	}
	hh.PutBytes(e.BlockHash)
	hh.Merkleize(indx)
	return nil
}
