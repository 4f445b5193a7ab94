// Package eth defines the consensus containers carried in blocks and states, with
// hand-written SSZ codecs whose list limits follow the active chain config.
package eth

// SignedBeaconBlock is a beacon block together with the proposer's signature.
type SignedBeaconBlock struct {
	Block     *BeaconBlock
	Signature []byte `ssz-size:"96"`
}

// BeaconBlock is the unsigned block applied by the state transition.
type BeaconBlock struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    []byte `ssz-size:"32"`
	StateRoot     []byte `ssz-size:"32"`
	Body          *BeaconBlockBody
}

// BeaconBlockBody carries the randao reveal, the eth1 vote and the ordered operation lists.
type BeaconBlockBody struct {
	RandaoReveal      []byte `ssz-size:"96"`
	Eth1Data          *Eth1Data
	Graffiti          []byte                 `ssz-size:"32"`
	ProposerSlashings []*ProposerSlashing    `ssz-max:"16"`
	AttesterSlashings []*AttesterSlashing    `ssz-max:"2"`
	Attestations      []*Attestation         `ssz-max:"128"`
	Deposits          []*Deposit             `ssz-max:"16"`
	VoluntaryExits    []*SignedVoluntaryExit `ssz-max:"16"`
	Transfers         []*SignedTransfer      `ssz-max:"16"`
}

// BeaconBlockHeader summarises a block by the root of its body.
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    []byte `ssz-size:"32"`
	StateRoot     []byte `ssz-size:"32"`
	BodyRoot      []byte `ssz-size:"32"`
}

// SignedBeaconBlockHeader is a header with the proposer's signature over it.
type SignedBeaconBlockHeader struct {
	Header    *BeaconBlockHeader
	Signature []byte `ssz-size:"96"`
}

// ProposerSlashing is evidence of two distinct headers signed for the same slot.
type ProposerSlashing struct {
	ProposerIndex uint64
	Header_1      *SignedBeaconBlockHeader
	Header_2      *SignedBeaconBlockHeader
}

// AttesterSlashing is evidence of two conflicting attestations.
type AttesterSlashing struct {
	Attestation_1 *IndexedAttestation
	Attestation_2 *IndexedAttestation
}

// Deposit is a deposit contract entry with its merkle proof.
type Deposit struct {
	Proof [][]byte `ssz-size:"33,32"`
	Data  *Deposit_Data
}

// Deposit_Data is the leaf data of a deposit.
type Deposit_Data struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
	Signature             []byte `ssz-size:"96"`
}

// DepositMessage is the part of a deposit covered by the proof of possession.
type DepositMessage struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
}

// VoluntaryExit is a validator's request to leave the active set.
type VoluntaryExit struct {
	Epoch          uint64
	ValidatorIndex uint64
}

// SignedVoluntaryExit is a voluntary exit signed by the exiting validator.
type SignedVoluntaryExit struct {
	Exit      *VoluntaryExit
	Signature []byte `ssz-size:"96"`
}

// Transfer moves balance between two validators.
type Transfer struct {
	SenderIndex    uint64
	RecipientIndex uint64
	Amount         uint64
	Slot           uint64
}

// SignedTransfer is a transfer signed by the sender's validator key.
type SignedTransfer struct {
	Transfer  *Transfer
	Signature []byte `ssz-size:"96"`
}

// Eth1Data is a vote on the deposit contract state.
type Eth1Data struct {
	DepositRoot  []byte `ssz-size:"32"`
	DepositCount uint64
	BlockHash    []byte `ssz-size:"32"`
}
