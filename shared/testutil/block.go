package testutil

import (
	"bytes"
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/depositutil"
	"github.com/prysmaticlabs/transition-vectors/shared/interop"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/trieutil"
)

// NewBeaconBlock creates a beacon block with minimum marshalable fields.
func NewBeaconBlock() *ethpb.SignedBeaconBlock {
	return &ethpb.SignedBeaconBlock{
		Block: &ethpb.BeaconBlock{
			ParentRoot: make([]byte, 32),
			StateRoot:  make([]byte, 32),
			Body: &ethpb.BeaconBlockBody{
				RandaoReveal: make([]byte, params.BeaconConfig().BLSSignatureLength),
				Eth1Data: &ethpb.Eth1Data{
					DepositRoot: make([]byte, 32),
					BlockHash:   make([]byte, 32),
				},
				Graffiti:          make([]byte, 32),
				ProposerSlashings: []*ethpb.ProposerSlashing{},
				AttesterSlashings: []*ethpb.AttesterSlashing{},
				Attestations:      []*ethpb.Attestation{},
				Deposits:          []*ethpb.Deposit{},
				VoluntaryExits:    []*ethpb.SignedVoluntaryExit{},
				Transfers:         []*ethpb.SignedTransfer{},
			},
		},
		Signature: make([]byte, params.BeaconConfig().BLSSignatureLength),
	}
}

// NextSlotParentRoot returns the root the block following the state will name as its parent.
// This is the root ProcessSlot caches for the current slot.
func NextSlotParentRoot(st *state.BeaconState) ([32]byte, error) {
	header := st.LatestBlockHeader()
	if header == nil {
		return [32]byte{}, errors.New("nil latest block header")
	}
	if bytes.Equal(header.StateRoot, params.BeaconConfig().ZeroHash[:]) {
		stateRoot, err := st.HashTreeRoot()
		if err != nil {
			return [32]byte{}, err
		}
		header.StateRoot = stateRoot[:]
	}
	return header.HashTreeRoot()
}

// BuildEmptyBlockForNextSlot returns an unsigned block at state.slot + 1 that votes for the
// state's current eth1 data. The block stays a plain struct: callers may bump the slot or
// fill the body before calling SignBlock.
func BuildEmptyBlockForNextSlot(st *state.BeaconState) (*ethpb.SignedBeaconBlock, error) {
	parentRoot, err := NextSlotParentRoot(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute parent root")
	}
	_, proposerIdx, err := proposerAtSlot(context.Background(), st, st.Slot()+1)
	if err != nil {
		return nil, err
	}
	blk := NewBeaconBlock()
	blk.Block.Slot = st.Slot() + 1
	blk.Block.ProposerIndex = proposerIdx
	blk.Block.ParentRoot = parentRoot[:]
	blk.Block.Body.Eth1Data = ethpb.CopyEth1Data(st.Eth1Data())
	return blk, nil
}

// GenerateProposerSlashingForValidator for a specific validator index.
func GenerateProposerSlashingForValidator(
	st *state.BeaconState,
	priv bls.SecretKey,
	idx uint64,
) (*ethpb.ProposerSlashing, error) {
	header1 := HydrateSignedBeaconHeader(&ethpb.SignedBeaconBlockHeader{
		Header: &ethpb.BeaconBlockHeader{
			ProposerIndex: idx,
			Slot:          st.Slot(),
			BodyRoot:      bytesutil.PadTo([]byte{0, 1, 0}, 32),
		},
	})
	epoch := helpers.SlotToEpoch(st.Slot())
	var err error
	header1.Signature, err = helpers.ComputeDomainAndSign(st, epoch, header1.Header, params.BeaconConfig().DomainBeaconProposer, priv)
	if err != nil {
		return nil, err
	}

	header2 := &ethpb.SignedBeaconBlockHeader{
		Header: &ethpb.BeaconBlockHeader{
			ProposerIndex: idx,
			Slot:          st.Slot(),
			BodyRoot:      bytesutil.PadTo([]byte{0, 2, 0}, 32),
			StateRoot:     make([]byte, 32),
			ParentRoot:    make([]byte, 32),
		},
	}
	header2.Signature, err = helpers.ComputeDomainAndSign(st, epoch, header2.Header, params.BeaconConfig().DomainBeaconProposer, priv)
	if err != nil {
		return nil, err
	}

	return &ethpb.ProposerSlashing{
		ProposerIndex: idx,
		Header_1:      header1,
		Header_2:      header2,
	}, nil
}

// GenerateAttesterSlashingForValidators builds a double vote by the given validators: two
// attestations for the same target epoch naming different block roots. Indices must be
// sorted and unique.
func GenerateAttesterSlashingForValidators(
	st *state.BeaconState,
	privs []bls.SecretKey,
	indices []uint64,
) (*ethpb.AttesterSlashing, error) {
	currentEpoch := helpers.CurrentEpoch(st)
	att1 := &ethpb.IndexedAttestation{
		AttestingIndices: indices,
		Data: &ethpb.AttestationData{
			Slot:            st.Slot(),
			BeaconBlockRoot: bytesutil.PadTo([]byte{0, 1, 0}, 32),
			Source:          &ethpb.Checkpoint{Epoch: 0, Root: make([]byte, 32)},
			Target:          &ethpb.Checkpoint{Epoch: currentEpoch, Root: make([]byte, 32)},
		},
	}
	att2 := &ethpb.IndexedAttestation{
		AttestingIndices: indices,
		Data: &ethpb.AttestationData{
			Slot:            st.Slot(),
			BeaconBlockRoot: bytesutil.PadTo([]byte{0, 2, 0}, 32),
			Source:          &ethpb.Checkpoint{Epoch: 0, Root: make([]byte, 32)},
			Target:          &ethpb.Checkpoint{Epoch: currentEpoch, Root: make([]byte, 32)},
		},
	}
	for _, att := range []*ethpb.IndexedAttestation{att1, att2} {
		sig, err := signAttestationData(st, att.Data, privs, att.AttestingIndices)
		if err != nil {
			return nil, err
		}
		att.Signature = sig
	}
	return &ethpb.AttesterSlashing{
		Attestation_1: att1,
		Attestation_2: att2,
	}, nil
}

func signAttestationData(st *state.BeaconState, data *ethpb.AttestationData, privs []bls.SecretKey, indices []uint64) ([]byte, error) {
	domain, err := helpers.Domain(st.Fork(), data.Target.Epoch, params.BeaconConfig().DomainBeaconAttester, st.GenesisValidatorRoot())
	if err != nil {
		return nil, err
	}
	root, err := helpers.ComputeSigningRoot(data, domain)
	if err != nil {
		return nil, err
	}
	sigs := make([]bls.Signature, 0, len(indices))
	for _, idx := range indices {
		if idx >= uint64(len(privs)) {
			return nil, errors.Errorf("no private key for validator %d", idx)
		}
		sigs = append(sigs, privs[idx].Sign(root[:]))
	}
	return bls.AggregateSignatures(sigs).Marshal(), nil
}

// GenerateAttestation builds an attestation for the given slot and committee, with every
// committee member attesting. The slot may be the state slot or a recent one.
func GenerateAttestation(st *state.BeaconState, privs []bls.SecretKey, slot, committeeIndex uint64, signed bool) (*ethpb.Attestation, error) {
	data, err := attestationData(st, slot, committeeIndex)
	if err != nil {
		return nil, err
	}
	committee, err := helpers.BeaconCommitteeFromState(st, slot, committeeIndex)
	if err != nil {
		return nil, errors.Wrap(err, "could not get beacon committee")
	}
	bits := bitfield.NewBitlist(uint64(len(committee)))
	for i := range committee {
		bits.SetBitAt(uint64(i), true)
	}
	att := &ethpb.Attestation{
		AggregationBits: bits,
		Data:            data,
		Signature:       make([]byte, params.BeaconConfig().BLSSignatureLength),
	}
	if signed {
		sorted := append([]uint64{}, committee...)
		sortIndices(sorted)
		att.Signature, err = signAttestationData(st, data, privs, sorted)
		if err != nil {
			return nil, err
		}
	}
	return att, nil
}

func attestationData(st *state.BeaconState, slot, committeeIndex uint64) (*ethpb.AttestationData, error) {
	var blockRoot []byte
	if slot == st.Slot() {
		root, err := NextSlotParentRoot(st)
		if err != nil {
			return nil, err
		}
		blockRoot = root[:]
	} else {
		root, err := helpers.BlockRootAtSlot(st, slot)
		if err != nil {
			return nil, err
		}
		blockRoot = root
	}

	currentEpoch := helpers.CurrentEpoch(st)
	currentEpochStart := helpers.StartSlot(currentEpoch)
	var epochBoundaryRoot []byte
	var source *ethpb.Checkpoint
	var err error
	switch {
	case slot < currentEpochStart:
		epochBoundaryRoot, err = helpers.BlockRoot(st, helpers.PrevEpoch(st))
		source = st.PreviousJustifiedCheckpoint()
	case slot == currentEpochStart:
		epochBoundaryRoot = blockRoot
		source = st.CurrentJustifiedCheckpoint()
	default:
		epochBoundaryRoot, err = helpers.BlockRoot(st, currentEpoch)
		source = st.CurrentJustifiedCheckpoint()
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not get epoch boundary root")
	}
	return &ethpb.AttestationData{
		Slot:            slot,
		CommitteeIndex:  committeeIndex,
		BeaconBlockRoot: blockRoot,
		Source:          source,
		Target: &ethpb.Checkpoint{
			Epoch: helpers.SlotToEpoch(slot),
			Root:  epochBoundaryRoot,
		},
	}, nil
}

// DepositFor builds a deposit of amount for the given key without touching the state.
// The deposit sits at the state's next deposit index in a deposit trie whose earlier leaves
// are zero, and the returned eth1 data commits to that trie. Unsigned deposits carry a zero
// signature, which is fine for top ups.
func DepositFor(st *state.BeaconState, key bls.SecretKey, amount uint64, signed bool) (*ethpb.Deposit, *ethpb.Eth1Data, error) {
	data, dataRoot, err := depositutil.DepositInput(key, key, amount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not build deposit data")
	}
	if !signed {
		data.Signature = make([]byte, params.BeaconConfig().BLSSignatureLength)
		dataRoot, err = data.HashTreeRoot()
		if err != nil {
			return nil, nil, err
		}
	}
	index := st.Eth1DepositIndex()
	leaves := make([][]byte, index+1)
	for i := range leaves {
		leaves[i] = make([]byte, 32)
	}
	leaves[index] = dataRoot[:]
	trie, err := trieutil.GenerateTrieFromItems(leaves, params.BeaconConfig().DepositContractTreeDepth)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate deposit trie")
	}
	proof, err := trie.MerkleProof(int(index))
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate deposit proof")
	}
	root := trie.HashTreeRoot()
	eth1Data := ethpb.CopyEth1Data(st.Eth1Data())
	eth1Data.DepositRoot = root[:]
	eth1Data.DepositCount = uint64(len(leaves))
	return &ethpb.Deposit{Proof: proof, Data: data}, eth1Data, nil
}

// PrepareStateAndDeposit builds a deposit for the deterministic key of validatorIndex and
// points the state's eth1 data at the deposit trie holding it. The next block must include
// the deposit.
func PrepareStateAndDeposit(st *state.BeaconState, validatorIndex, amount uint64, signed bool) (*ethpb.Deposit, error) {
	keys, _, err := interop.DeterministicallyGenerateKeys(validatorIndex, 1)
	if err != nil {
		return nil, err
	}
	deposit, eth1Data, err := DepositFor(st, keys[0], amount, signed)
	if err != nil {
		return nil, err
	}
	st.SetEth1Data(eth1Data)
	return deposit, nil
}

// GenerateVoluntaryExit signs an exit of the validator at the current epoch.
func GenerateVoluntaryExit(st *state.BeaconState, priv bls.SecretKey, idx uint64) (*ethpb.SignedVoluntaryExit, error) {
	exit := &ethpb.VoluntaryExit{
		Epoch:          helpers.CurrentEpoch(st),
		ValidatorIndex: idx,
	}
	sig, err := helpers.ComputeDomainAndSign(st, exit.Epoch, exit, params.BeaconConfig().DomainVoluntaryExit, priv)
	if err != nil {
		return nil, err
	}
	return &ethpb.SignedVoluntaryExit{Exit: exit, Signature: sig}, nil
}

// GenerateTransfer signs a transfer of amount from sender to recipient, valid at slot.
func GenerateTransfer(st *state.BeaconState, priv bls.SecretKey, sender, recipient, amount, slot uint64) (*ethpb.SignedTransfer, error) {
	transfer := &ethpb.Transfer{
		SenderIndex:    sender,
		RecipientIndex: recipient,
		Amount:         amount,
		Slot:           slot,
	}
	sig, err := helpers.ComputeDomainAndSign(st, helpers.SlotToEpoch(slot), transfer, params.BeaconConfig().DomainTransfer, priv)
	if err != nil {
		return nil, err
	}
	return &ethpb.SignedTransfer{Transfer: transfer, Signature: sig}, nil
}

func sortIndices(a []uint64) {
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
}
