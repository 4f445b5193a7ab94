package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
)

const (
	beaconBlockHeaderSize       = 112
	signedBeaconBlockHeaderSize = 208
	proposerSlashingSize        = 424
	depositDataSize             = 184
	voluntaryExitSize           = 16
	signedVoluntaryExitSize     = 112
	transferSize                = 32
	signedTransferSize          = 128
	beaconBlockBodyFixedSize    = 224
	beaconBlockFixedSize        = 84
)

func depositProofLength() int {
	return int(params.BeaconConfig().DepositContractTreeDepth) + 1
}

func depositSize() int {
	return depositProofLength()*32 + depositDataSize
}

// MarshalSSZ ssz marshals the BeaconBlockHeader object
func (b *BeaconBlockHeader) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the BeaconBlockHeader object to a target array
func (b *BeaconBlockHeader) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.MarshalUint64(buf, b.Slot)
	dst = ssz.MarshalUint64(dst, b.ProposerIndex)
	if dst, err = sszutil.MarshalFixedBytes(dst, b.ParentRoot, 32, "BeaconBlockHeader.ParentRoot"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, b.StateRoot, 32, "BeaconBlockHeader.StateRoot"); err != nil {
		return
	}
	return sszutil.MarshalFixedBytes(dst, b.BodyRoot, 32, "BeaconBlockHeader.BodyRoot")
}

// UnmarshalSSZ ssz unmarshals the BeaconBlockHeader object
func (b *BeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != beaconBlockHeaderSize {
		return ssz.ErrSize
	}
	b.Slot = ssz.UnmarshallUint64(buf[0:8])
	b.ProposerIndex = ssz.UnmarshallUint64(buf[8:16])
	b.ParentRoot = sszutil.CopyBytes(buf[16:48])
	b.StateRoot = sszutil.CopyBytes(buf[48:80])
	b.BodyRoot = sszutil.CopyBytes(buf[80:112])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlockHeader object
func (b *BeaconBlockHeader) SizeSSZ() int {
	return beaconBlockHeaderSize
}

// HashTreeRoot ssz hashes the BeaconBlockHeader object
func (b *BeaconBlockHeader) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconBlockHeader object with a hasher
func (b *BeaconBlockHeader) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(b.Slot)
	hh.PutUint64(b.ProposerIndex)
	for _, f := range []struct {
		name string
		val  []byte
	}{
		{"BeaconBlockHeader.ParentRoot", b.ParentRoot},
		{"BeaconBlockHeader.StateRoot", b.StateRoot},
		{"BeaconBlockHeader.BodyRoot", b.BodyRoot},
	} {
		if len(f.val) != 32 {
			return sszutil.ErrVectorLength(f.name, len(f.val), 32)
		}
		hh.PutBytes(f.val)
	}
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(s)
}

// MarshalSSZTo ssz marshals the SignedBeaconBlockHeader object to a target array
func (s *SignedBeaconBlockHeader) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if s.Header == nil {
		return nil, errNilField("SignedBeaconBlockHeader.Header")
	}
	if dst, err = s.Header.MarshalSSZTo(buf); err != nil {
		return
	}
	return sszutil.MarshalFixedBytes(dst, s.Signature, 96, "SignedBeaconBlockHeader.Signature")
}

// UnmarshalSSZ ssz unmarshals the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != signedBeaconBlockHeaderSize {
		return ssz.ErrSize
	}
	s.Header = new(BeaconBlockHeader)
	if err := s.Header.UnmarshalSSZ(buf[0:112]); err != nil {
		return err
	}
	s.Signature = sszutil.CopyBytes(buf[112:208])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) SizeSSZ() int {
	return signedBeaconBlockHeaderSize
}

// HashTreeRoot ssz hashes the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SignedBeaconBlockHeader object with a hasher
func (s *SignedBeaconBlockHeader) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if s.Header == nil {
		return errNilField("SignedBeaconBlockHeader.Header")
	}
	if err := s.Header.HashTreeRootWith(hh); err != nil {
		return err
	}
	if len(s.Signature) != 96 {
		return sszutil.ErrVectorLength("SignedBeaconBlockHeader.Signature", len(s.Signature), 96)
	}
	hh.PutBytes(s.Signature)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the ProposerSlashing object
func (p *ProposerSlashing) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(p)
}

// MarshalSSZTo ssz marshals the ProposerSlashing object to a target array
func (p *ProposerSlashing) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.MarshalUint64(buf, p.ProposerIndex)
	if p.Header_1 == nil {
		return nil, errNilField("ProposerSlashing.Header_1")
	}
	if dst, err = p.Header_1.MarshalSSZTo(dst); err != nil {
		return
	}
	if p.Header_2 == nil {
		return nil, errNilField("ProposerSlashing.Header_2")
	}
	return p.Header_2.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the ProposerSlashing object
func (p *ProposerSlashing) UnmarshalSSZ(buf []byte) error {
	if len(buf) != proposerSlashingSize {
		return ssz.ErrSize
	}
	p.ProposerIndex = ssz.UnmarshallUint64(buf[0:8])
	p.Header_1 = new(SignedBeaconBlockHeader)
	if err := p.Header_1.UnmarshalSSZ(buf[8:216]); err != nil {
		return err
	}
	p.Header_2 = new(SignedBeaconBlockHeader)
	return p.Header_2.UnmarshalSSZ(buf[216:424])
}

// SizeSSZ returns the ssz encoded size in bytes for the ProposerSlashing object
func (p *ProposerSlashing) SizeSSZ() int {
	return proposerSlashingSize
}

// HashTreeRoot ssz hashes the ProposerSlashing object
func (p *ProposerSlashing) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(p)
}

// HashTreeRootWith ssz hashes the ProposerSlashing object with a hasher
func (p *ProposerSlashing) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(p.ProposerIndex)
	if p.Header_1 == nil {
		return errNilField("ProposerSlashing.Header_1")
	}
	if err := p.Header_1.HashTreeRootWith(hh); err != nil {
		return err
	}
	if p.Header_2 == nil {
		return errNilField("ProposerSlashing.Header_2")
	}
	if err := p.Header_2.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the DepositMessage object
func (d *DepositMessage) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(d)
}

// MarshalSSZTo ssz marshals the DepositMessage object to a target array
func (d *DepositMessage) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if dst, err = sszutil.MarshalFixedBytes(buf, d.PublicKey, 48, "DepositMessage.PublicKey"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, d.WithdrawalCredentials, 32, "DepositMessage.WithdrawalCredentials"); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, d.Amount)
	return
}

// UnmarshalSSZ ssz unmarshals the DepositMessage object
func (d *DepositMessage) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 88 {
		return ssz.ErrSize
	}
	d.PublicKey = sszutil.CopyBytes(buf[0:48])
	d.WithdrawalCredentials = sszutil.CopyBytes(buf[48:80])
	d.Amount = ssz.UnmarshallUint64(buf[80:88])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the DepositMessage object
func (d *DepositMessage) SizeSSZ() int {
	return 88
}

// HashTreeRoot ssz hashes the DepositMessage object
func (d *DepositMessage) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith ssz hashes the DepositMessage object with a hasher
func (d *DepositMessage) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(d.PublicKey) != 48 {
		return sszutil.ErrVectorLength("DepositMessage.PublicKey", len(d.PublicKey), 48)
	}
	hh.PutBytes(d.PublicKey)
	if len(d.WithdrawalCredentials) != 32 {
		return sszutil.ErrVectorLength("DepositMessage.WithdrawalCredentials", len(d.WithdrawalCredentials), 32)
	}
	hh.PutBytes(d.WithdrawalCredentials)
	hh.PutUint64(d.Amount)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Deposit_Data object
func (d *Deposit_Data) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(d)
}

// MarshalSSZTo ssz marshals the Deposit_Data object to a target array
func (d *Deposit_Data) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if dst, err = sszutil.MarshalFixedBytes(buf, d.PublicKey, 48, "Deposit_Data.PublicKey"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, d.WithdrawalCredentials, 32, "Deposit_Data.WithdrawalCredentials"); err != nil {
		return
	}
	dst = ssz.MarshalUint64(dst, d.Amount)
	return sszutil.MarshalFixedBytes(dst, d.Signature, 96, "Deposit_Data.Signature")
}

// UnmarshalSSZ ssz unmarshals the Deposit_Data object
func (d *Deposit_Data) UnmarshalSSZ(buf []byte) error {
	if len(buf) != depositDataSize {
		return ssz.ErrSize
	}
	d.PublicKey = sszutil.CopyBytes(buf[0:48])
	d.WithdrawalCredentials = sszutil.CopyBytes(buf[48:80])
	d.Amount = ssz.UnmarshallUint64(buf[80:88])
	d.Signature = sszutil.CopyBytes(buf[88:184])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Deposit_Data object
func (d *Deposit_Data) SizeSSZ() int {
	return depositDataSize
}

// HashTreeRoot ssz hashes the Deposit_Data object
func (d *Deposit_Data) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith ssz hashes the Deposit_Data object with a hasher
func (d *Deposit_Data) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if len(d.PublicKey) != 48 {
		return sszutil.ErrVectorLength("Deposit_Data.PublicKey", len(d.PublicKey), 48)
	}
	hh.PutBytes(d.PublicKey)
	if len(d.WithdrawalCredentials) != 32 {
		return sszutil.ErrVectorLength("Deposit_Data.WithdrawalCredentials", len(d.WithdrawalCredentials), 32)
	}
	hh.PutBytes(d.WithdrawalCredentials)
	hh.PutUint64(d.Amount)
	if len(d.Signature) != 96 {
		return sszutil.ErrVectorLength("Deposit_Data.Signature", len(d.Signature), 96)
	}
	hh.PutBytes(d.Signature)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Deposit object
func (d *Deposit) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(d)
}

// MarshalSSZTo ssz marshals the Deposit object to a target array
func (d *Deposit) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if n := depositProofLength(); len(d.Proof) != n {
		return nil, sszutil.ErrVectorLength("Deposit.Proof", len(d.Proof), n)
	}
	if dst, err = sszutil.MarshalRoots(buf, d.Proof, "Deposit.Proof"); err != nil {
		return
	}
	if d.Data == nil {
		return nil, errNilField("Deposit.Data")
	}
	return d.Data.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the Deposit object
func (d *Deposit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != depositSize() {
		return ssz.ErrSize
	}
	proofEnd := depositProofLength() * 32
	proof, err := sszutil.UnmarshalRoots(buf[:proofEnd])
	if err != nil {
		return err
	}
	d.Proof = proof
	d.Data = new(Deposit_Data)
	return d.Data.UnmarshalSSZ(buf[proofEnd:])
}

// SizeSSZ returns the ssz encoded size in bytes for the Deposit object
func (d *Deposit) SizeSSZ() int {
	return depositSize()
}

// HashTreeRoot ssz hashes the Deposit object
func (d *Deposit) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith ssz hashes the Deposit object with a hasher
func (d *Deposit) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if err := sszutil.PutRootVector(hh, d.Proof, depositProofLength(), "Deposit.Proof"); err != nil {
		return err
	}
	if d.Data == nil {
		return errNilField("Deposit.Data")
	}
	if err := d.Data.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the VoluntaryExit object
func (v *VoluntaryExit) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(v)
}

// MarshalSSZTo ssz marshals the VoluntaryExit object to a target array
func (v *VoluntaryExit) MarshalSSZTo(buf []byte) ([]byte, error) {
	dst := ssz.MarshalUint64(buf, v.Epoch)
	return ssz.MarshalUint64(dst, v.ValidatorIndex), nil
}

// UnmarshalSSZ ssz unmarshals the VoluntaryExit object
func (v *VoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != voluntaryExitSize {
		return ssz.ErrSize
	}
	v.Epoch = ssz.UnmarshallUint64(buf[0:8])
	v.ValidatorIndex = ssz.UnmarshallUint64(buf[8:16])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the VoluntaryExit object
func (v *VoluntaryExit) SizeSSZ() int {
	return voluntaryExitSize
}

// HashTreeRoot ssz hashes the VoluntaryExit object
func (v *VoluntaryExit) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(v)
}

// HashTreeRootWith ssz hashes the VoluntaryExit object with a hasher
func (v *VoluntaryExit) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(v.Epoch)
	hh.PutUint64(v.ValidatorIndex)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(s)
}

// MarshalSSZTo ssz marshals the SignedVoluntaryExit object to a target array
func (s *SignedVoluntaryExit) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if s.Exit == nil {
		return nil, errNilField("SignedVoluntaryExit.Exit")
	}
	if dst, err = s.Exit.MarshalSSZTo(buf); err != nil {
		return
	}
	return sszutil.MarshalFixedBytes(dst, s.Signature, 96, "SignedVoluntaryExit.Signature")
}

// UnmarshalSSZ ssz unmarshals the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != signedVoluntaryExitSize {
		return ssz.ErrSize
	}
	s.Exit = new(VoluntaryExit)
	if err := s.Exit.UnmarshalSSZ(buf[0:16]); err != nil {
		return err
	}
	s.Signature = sszutil.CopyBytes(buf[16:112])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) SizeSSZ() int {
	return signedVoluntaryExitSize
}

// HashTreeRoot ssz hashes the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SignedVoluntaryExit object with a hasher
func (s *SignedVoluntaryExit) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if s.Exit == nil {
		return errNilField("SignedVoluntaryExit.Exit")
	}
	if err := s.Exit.HashTreeRootWith(hh); err != nil {
		return err
	}
	if len(s.Signature) != 96 {
		return sszutil.ErrVectorLength("SignedVoluntaryExit.Signature", len(s.Signature), 96)
	}
	hh.PutBytes(s.Signature)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the Transfer object
func (t *Transfer) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(t)
}

// MarshalSSZTo ssz marshals the Transfer object to a target array
func (t *Transfer) MarshalSSZTo(buf []byte) ([]byte, error) {
	dst := ssz.MarshalUint64(buf, t.SenderIndex)
	dst = ssz.MarshalUint64(dst, t.RecipientIndex)
	dst = ssz.MarshalUint64(dst, t.Amount)
	return ssz.MarshalUint64(dst, t.Slot), nil
}

// UnmarshalSSZ ssz unmarshals the Transfer object
func (t *Transfer) UnmarshalSSZ(buf []byte) error {
	if len(buf) != transferSize {
		return ssz.ErrSize
	}
	t.SenderIndex = ssz.UnmarshallUint64(buf[0:8])
	t.RecipientIndex = ssz.UnmarshallUint64(buf[8:16])
	t.Amount = ssz.UnmarshallUint64(buf[16:24])
	t.Slot = ssz.UnmarshallUint64(buf[24:32])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Transfer object
func (t *Transfer) SizeSSZ() int {
	return transferSize
}

// HashTreeRoot ssz hashes the Transfer object
func (t *Transfer) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(t)
}

// HashTreeRootWith ssz hashes the Transfer object with a hasher
func (t *Transfer) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(t.SenderIndex)
	hh.PutUint64(t.RecipientIndex)
	hh.PutUint64(t.Amount)
	hh.PutUint64(t.Slot)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the SignedTransfer object
func (s *SignedTransfer) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(s)
}

// MarshalSSZTo ssz marshals the SignedTransfer object to a target array
func (s *SignedTransfer) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if s.Transfer == nil {
		return nil, errNilField("SignedTransfer.Transfer")
	}
	if dst, err = s.Transfer.MarshalSSZTo(buf); err != nil {
		return
	}
	return sszutil.MarshalFixedBytes(dst, s.Signature, 96, "SignedTransfer.Signature")
}

// UnmarshalSSZ ssz unmarshals the SignedTransfer object
func (s *SignedTransfer) UnmarshalSSZ(buf []byte) error {
	if len(buf) != signedTransferSize {
		return ssz.ErrSize
	}
	s.Transfer = new(Transfer)
	if err := s.Transfer.UnmarshalSSZ(buf[0:32]); err != nil {
		return err
	}
	s.Signature = sszutil.CopyBytes(buf[32:128])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the SignedTransfer object
func (s *SignedTransfer) SizeSSZ() int {
	return signedTransferSize
}

// HashTreeRoot ssz hashes the SignedTransfer object
func (s *SignedTransfer) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SignedTransfer object with a hasher
func (s *SignedTransfer) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if s.Transfer == nil {
		return errNilField("SignedTransfer.Transfer")
	}
	if err := s.Transfer.HashTreeRootWith(hh); err != nil {
		return err
	}
	if len(s.Signature) != 96 {
		return sszutil.ErrVectorLength("SignedTransfer.Signature", len(s.Signature), 96)
	}
	hh.PutBytes(s.Signature)
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the BeaconBlockBody object
func (b *BeaconBlockBody) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the BeaconBlockBody object to a target array
func (b *BeaconBlockBody) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	cfg := params.BeaconConfig()
	if dst, err = sszutil.MarshalFixedBytes(buf, b.RandaoReveal, 96, "BeaconBlockBody.RandaoReveal"); err != nil {
		return
	}
	if b.Eth1Data == nil {
		return nil, errNilField("BeaconBlockBody.Eth1Data")
	}
	if dst, err = b.Eth1Data.MarshalSSZTo(dst); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, b.Graffiti, 32, "BeaconBlockBody.Graffiti"); err != nil {
		return
	}

	for _, l := range []struct {
		name  string
		n     int
		limit uint64
	}{
		{"BeaconBlockBody.ProposerSlashings", len(b.ProposerSlashings), cfg.MaxProposerSlashings},
		{"BeaconBlockBody.AttesterSlashings", len(b.AttesterSlashings), cfg.MaxAttesterSlashings},
		{"BeaconBlockBody.Attestations", len(b.Attestations), cfg.MaxAttestations},
		{"BeaconBlockBody.Deposits", len(b.Deposits), cfg.MaxDeposits},
		{"BeaconBlockBody.VoluntaryExits", len(b.VoluntaryExits), cfg.MaxVoluntaryExits},
		{"BeaconBlockBody.Transfers", len(b.Transfers), cfg.MaxTransfers},
	} {
		if uint64(l.n) > l.limit {
			return nil, sszutil.ErrListTooBig(l.name, l.n, l.limit)
		}
	}

	offset := beaconBlockBodyFixedSize
	dst = ssz.WriteOffset(dst, offset)
	offset += len(b.ProposerSlashings) * proposerSlashingSize
	dst = ssz.WriteOffset(dst, offset)
	offset += 4 * len(b.AttesterSlashings)
	for _, s := range b.AttesterSlashings {
		if s == nil {
			return nil, errNilField("BeaconBlockBody.AttesterSlashings element")
		}
		offset += s.SizeSSZ()
	}
	dst = ssz.WriteOffset(dst, offset)
	offset += 4 * len(b.Attestations)
	for _, a := range b.Attestations {
		if a == nil {
			return nil, errNilField("BeaconBlockBody.Attestations element")
		}
		offset += a.SizeSSZ()
	}
	dst = ssz.WriteOffset(dst, offset)
	offset += len(b.Deposits) * depositSize()
	dst = ssz.WriteOffset(dst, offset)
	offset += len(b.VoluntaryExits) * signedVoluntaryExitSize
	dst = ssz.WriteOffset(dst, offset)

	for _, s := range b.ProposerSlashings {
		if s == nil {
			return nil, errNilField("BeaconBlockBody.ProposerSlashings element")
		}
		if dst, err = s.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	inner := 4 * len(b.AttesterSlashings)
	for _, s := range b.AttesterSlashings {
		dst = ssz.WriteOffset(dst, inner)
		inner += s.SizeSSZ()
	}
	for _, s := range b.AttesterSlashings {
		if dst, err = s.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	inner = 4 * len(b.Attestations)
	for _, a := range b.Attestations {
		dst = ssz.WriteOffset(dst, inner)
		inner += a.SizeSSZ()
	}
	for _, a := range b.Attestations {
		if dst, err = a.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	for _, d := range b.Deposits {
		if d == nil {
			return nil, errNilField("BeaconBlockBody.Deposits element")
		}
		if dst, err = d.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	for _, e := range b.VoluntaryExits {
		if e == nil {
			return nil, errNilField("BeaconBlockBody.VoluntaryExits element")
		}
		if dst, err = e.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	for _, t := range b.Transfers {
		if t == nil {
			return nil, errNilField("BeaconBlockBody.Transfers element")
		}
		if dst, err = t.MarshalSSZTo(dst); err != nil {
			return
		}
	}
	return
}

// UnmarshalSSZ ssz unmarshals the BeaconBlockBody object
func (b *BeaconBlockBody) UnmarshalSSZ(buf []byte) error {
	cfg := params.BeaconConfig()
	size := uint64(len(buf))
	if size < beaconBlockBodyFixedSize {
		return ssz.ErrSize
	}
	b.RandaoReveal = sszutil.CopyBytes(buf[0:96])
	b.Eth1Data = new(Eth1Data)
	if err := b.Eth1Data.UnmarshalSSZ(buf[96:168]); err != nil {
		return err
	}
	b.Graffiti = sszutil.CopyBytes(buf[168:200])

	o, err := sszutil.ReadOffsets(buf[200:224], 6, beaconBlockBodyFixedSize, size)
	if err != nil {
		return err
	}
	o[6] = size

	b.ProposerSlashings = nil
	if _, err := sszutil.DecodeFixedList(buf[o[0]:o[1]], proposerSlashingSize, cfg.MaxProposerSlashings, func(_ int, e []byte) error {
		s := new(ProposerSlashing)
		if err := s.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.ProposerSlashings = append(b.ProposerSlashings, s)
		return nil
	}); err != nil {
		return err
	}
	b.AttesterSlashings = nil
	if _, err := sszutil.DecodeDynamicList(buf[o[1]:o[2]], cfg.MaxAttesterSlashings, func(_ int, e []byte) error {
		s := new(AttesterSlashing)
		if err := s.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.AttesterSlashings = append(b.AttesterSlashings, s)
		return nil
	}); err != nil {
		return err
	}
	b.Attestations = nil
	if _, err := sszutil.DecodeDynamicList(buf[o[2]:o[3]], cfg.MaxAttestations, func(_ int, e []byte) error {
		a := new(Attestation)
		if err := a.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.Attestations = append(b.Attestations, a)
		return nil
	}); err != nil {
		return err
	}
	b.Deposits = nil
	if _, err := sszutil.DecodeFixedList(buf[o[3]:o[4]], depositSize(), cfg.MaxDeposits, func(_ int, e []byte) error {
		d := new(Deposit)
		if err := d.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.Deposits = append(b.Deposits, d)
		return nil
	}); err != nil {
		return err
	}
	b.VoluntaryExits = nil
	if _, err := sszutil.DecodeFixedList(buf[o[4]:o[5]], signedVoluntaryExitSize, cfg.MaxVoluntaryExits, func(_ int, e []byte) error {
		v := new(SignedVoluntaryExit)
		if err := v.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.VoluntaryExits = append(b.VoluntaryExits, v)
		return nil
	}); err != nil {
		return err
	}
	b.Transfers = nil
	_, err = sszutil.DecodeFixedList(buf[o[5]:o[6]], signedTransferSize, cfg.MaxTransfers, func(_ int, e []byte) error {
		t := new(SignedTransfer)
		if err := t.UnmarshalSSZ(e); err != nil {
			return err
		}
		b.Transfers = append(b.Transfers, t)
		return nil
	})
	return err
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlockBody object
func (b *BeaconBlockBody) SizeSSZ() int {
	size := beaconBlockBodyFixedSize
	size += len(b.ProposerSlashings) * proposerSlashingSize
	for _, s := range b.AttesterSlashings {
		size += 4
		if s != nil {
			size += s.SizeSSZ()
		}
	}
	for _, a := range b.Attestations {
		size += 4
		if a != nil {
			size += a.SizeSSZ()
		}
	}
	size += len(b.Deposits) * depositSize()
	size += len(b.VoluntaryExits) * signedVoluntaryExitSize
	size += len(b.Transfers) * signedTransferSize
	return size
}

// HashTreeRoot ssz hashes the BeaconBlockBody object
func (b *BeaconBlockBody) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconBlockBody object with a hasher
func (b *BeaconBlockBody) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	cfg := params.BeaconConfig()
	indx := hh.Index()
	if len(b.RandaoReveal) != 96 {
		return sszutil.ErrVectorLength("BeaconBlockBody.RandaoReveal", len(b.RandaoReveal), 96)
	}
	hh.PutBytes(b.RandaoReveal)
	if b.Eth1Data == nil {
		return errNilField("BeaconBlockBody.Eth1Data")
	}
	if err = b.Eth1Data.HashTreeRootWith(hh); err != nil {
		return
	}
	if len(b.Graffiti) != 32 {
		return sszutil.ErrVectorLength("BeaconBlockBody.Graffiti", len(b.Graffiti), 32)
	}
	hh.PutBytes(b.Graffiti)

	// Each operation list is merkleized as a list of container roots.
	{
		if uint64(len(b.ProposerSlashings)) > cfg.MaxProposerSlashings {
			return sszutil.ErrListTooBig("BeaconBlockBody.ProposerSlashings", len(b.ProposerSlashings), cfg.MaxProposerSlashings)
		}
		subIndx := hh.Index()
		for _, e := range b.ProposerSlashings {
			if e == nil {
				return errNilField("BeaconBlockBody.ProposerSlashings element")
			}
			if err = e.HashTreeRootWith(hh); err != nil {
				return
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.ProposerSlashings)), cfg.MaxProposerSlashings)
	}
	{
		if uint64(len(b.AttesterSlashings)) > cfg.MaxAttesterSlashings {
			return sszutil.ErrListTooBig("BeaconBlockBody.AttesterSlashings", len(b.AttesterSlashings), cfg.MaxAttesterSlashings)
		}
		subIndx := hh.Index()
		for _, e := range b.AttesterSlashings {
			if e == nil {
				return errNilField("BeaconBlockBody.AttesterSlashings element")
			}
			if err = e.HashTreeRootWith(hh); err != nil {
				return
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.AttesterSlashings)), cfg.MaxAttesterSlashings)
	}
	{
		if uint64(len(b.Attestations)) > cfg.MaxAttestations {
			return sszutil.ErrListTooBig("BeaconBlockBody.Attestations", len(b.Attestations), cfg.MaxAttestations)
		}
		subIndx := hh.Index()
		for _, e := range b.Attestations {
			if e == nil {
				return errNilField("BeaconBlockBody.Attestations element")
			}
			if err = e.HashTreeRootWith(hh); err != nil {
				return
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.Attestations)), cfg.MaxAttestations)
	}
	{
		if uint64(len(b.Deposits)) > cfg.MaxDeposits {
			return sszutil.ErrListTooBig("BeaconBlockBody.Deposits", len(b.Deposits), cfg.MaxDeposits)
		}
		subIndx := hh.Index()
		for _, e := range b.Deposits {
			if e == nil {
				return errNilField("BeaconBlockBody.Deposits element")
			}
			if err = e.HashTreeRootWith(hh); err != nil {
				return
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.Deposits)), cfg.MaxDeposits)
	}
	{
		if uint64(len(b.VoluntaryExits)) > cfg.MaxVoluntaryExits {
			return sszutil.ErrListTooBig("BeaconBlockBody.VoluntaryExits", len(b.VoluntaryExits), cfg.MaxVoluntaryExits)
		}
		subIndx := hh.Index()
		for _, e := range b.VoluntaryExits {
			if e == nil {
				return errNilField("BeaconBlockBody.VoluntaryExits element")
			}
			if err = e.HashTreeRootWith(hh); err != nil {
				return
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.VoluntaryExits)), cfg.MaxVoluntaryExits)
	}
	{
		if uint64(len(b.Transfers)) > cfg.MaxTransfers {
			return sszutil.ErrListTooBig("BeaconBlockBody.Transfers", len(b.Transfers), cfg.MaxTransfers)
		}
		subIndx := hh.Index()
		for _, e := range b.Transfers {
			if e == nil {
				return errNilField("BeaconBlockBody.Transfers element")
			}
			if err = e.HashTreeRootWith(hh); err != nil {
				return
			}
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(b.Transfers)), cfg.MaxTransfers)
	}
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the BeaconBlock object
func (b *BeaconBlock) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the BeaconBlock object to a target array
func (b *BeaconBlock) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = ssz.MarshalUint64(buf, b.Slot)
	dst = ssz.MarshalUint64(dst, b.ProposerIndex)
	if dst, err = sszutil.MarshalFixedBytes(dst, b.ParentRoot, 32, "BeaconBlock.ParentRoot"); err != nil {
		return
	}
	if dst, err = sszutil.MarshalFixedBytes(dst, b.StateRoot, 32, "BeaconBlock.StateRoot"); err != nil {
		return
	}
	if b.Body == nil {
		return nil, errNilField("BeaconBlock.Body")
	}
	dst = ssz.WriteOffset(dst, beaconBlockFixedSize)
	return b.Body.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the BeaconBlock object
func (b *BeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < beaconBlockFixedSize {
		return ssz.ErrSize
	}
	b.Slot = ssz.UnmarshallUint64(buf[0:8])
	b.ProposerIndex = ssz.UnmarshallUint64(buf[8:16])
	b.ParentRoot = sszutil.CopyBytes(buf[16:48])
	b.StateRoot = sszutil.CopyBytes(buf[48:80])
	if o := ssz.ReadOffset(buf[80:84]); o != beaconBlockFixedSize {
		return ssz.ErrOffset
	}
	b.Body = new(BeaconBlockBody)
	return b.Body.UnmarshalSSZ(buf[beaconBlockFixedSize:])
}

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlock object
func (b *BeaconBlock) SizeSSZ() int {
	size := beaconBlockFixedSize
	if b.Body != nil {
		size += b.Body.SizeSSZ()
	}
	return size
}

// HashTreeRoot ssz hashes the BeaconBlock object
func (b *BeaconBlock) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconBlock object with a hasher
func (b *BeaconBlock) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(b.Slot)
	hh.PutUint64(b.ProposerIndex)
	if len(b.ParentRoot) != 32 {
		return sszutil.ErrVectorLength("BeaconBlock.ParentRoot", len(b.ParentRoot), 32)
	}
	hh.PutBytes(b.ParentRoot)
	if len(b.StateRoot) != 32 {
		return sszutil.ErrVectorLength("BeaconBlock.StateRoot", len(b.StateRoot), 32)
	}
	hh.PutBytes(b.StateRoot)
	if b.Body == nil {
		return errNilField("BeaconBlock.Body")
	}
	if err := b.Body.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// MarshalSSZ ssz marshals the SignedBeaconBlock object
func (s *SignedBeaconBlock) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(s)
}

// MarshalSSZTo ssz marshals the SignedBeaconBlock object to a target array
func (s *SignedBeaconBlock) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	if s.Block == nil {
		return nil, errNilField("SignedBeaconBlock.Block")
	}
	dst = ssz.WriteOffset(buf, 100)
	if dst, err = sszutil.MarshalFixedBytes(dst, s.Signature, 96, "SignedBeaconBlock.Signature"); err != nil {
		return
	}
	return s.Block.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the SignedBeaconBlock object
func (s *SignedBeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 100 {
		return ssz.ErrSize
	}
	if o := ssz.ReadOffset(buf[0:4]); o != 100 {
		return ssz.ErrOffset
	}
	s.Signature = sszutil.CopyBytes(buf[4:100])
	s.Block = new(BeaconBlock)
	return s.Block.UnmarshalSSZ(buf[100:])
}

// SizeSSZ returns the ssz encoded size in bytes for the SignedBeaconBlock object
func (s *SignedBeaconBlock) SizeSSZ() int {
	size := 100
	if s.Block != nil {
		size += s.Block.SizeSSZ()
	}
	return size
}

// HashTreeRoot ssz hashes the SignedBeaconBlock object
func (s *SignedBeaconBlock) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SignedBeaconBlock object with a hasher
func (s *SignedBeaconBlock) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if s.Block == nil {
		return errNilField("SignedBeaconBlock.Block")
	}
	if err := s.Block.HashTreeRootWith(hh); err != nil {
		return err
	}
	if len(s.Signature) != 96 {
		return sszutil.ErrVectorLength("SignedBeaconBlock.Signature", len(s.Signature), 96)
	}
	hh.PutBytes(s.Signature)
	hh.Merkleize(indx)
	return nil
}
