// Package blocks contains the block body and header processing of the state
// transition: header checks, randao, eth1 voting and every block operation.
package blocks

import (
	fssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
)

// verifySigningRoot checks sig over obj under the domain of domainType at epoch and
// classifies any failure as a signature error for op.
func verifySigningRoot(
	st *state.BeaconState,
	op string,
	obj fssz.HashRoot,
	pub []byte,
	sig []byte,
	domainType [4]byte,
	epoch uint64,
) error {
	domain, err := helpers.Domain(st.Fork(), epoch, domainType, st.GenesisValidatorRoot())
	if err != nil {
		return err
	}
	if err := helpers.VerifySigningRoot(obj, pub, sig, domain); err != nil {
		return verification.NewSignatureError(op, err)
	}
	return nil
}

// VerifyBlockSignature verifies the proposer signature of a beacon block.
func VerifyBlockSignature(st *state.BeaconState, block *ethpb.SignedBeaconBlock) error {
	if err := verifyNilBeaconBlock(block); err != nil {
		return err
	}
	proposer, err := st.ValidatorAtIndex(block.Block.ProposerIndex)
	if err != nil {
		return verification.Structuralf("unknown proposer index %d", block.Block.ProposerIndex)
	}
	return verifySigningRoot(
		st,
		"block",
		block.Block,
		proposer.PublicKey,
		block.Signature,
		params.BeaconConfig().DomainBeaconProposer,
		helpers.CurrentEpoch(st),
	)
}

// randaoSigningData returns the proposer public key and the epoch object the randao reveal signs.
func randaoSigningData(st *state.BeaconState) (fssz.HashRoot, []byte, error) {
	proposerIdx, err := helpers.BeaconProposerIndex(st)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	proposerPub := st.PubkeyAtIndex(proposerIdx)
	epoch := sszutil.SSZUint64(helpers.CurrentEpoch(st))
	return &epoch, proposerPub[:], nil
}

func verifyNilBeaconBlock(b *ethpb.SignedBeaconBlock) error {
	if b == nil {
		return verification.Structuralf("signed beacon block can't be nil")
	}
	if b.Block == nil {
		return verification.Structuralf("beacon block can't be nil")
	}
	if b.Block.Body == nil {
		return verification.Structuralf("beacon block body can't be nil")
	}
	return nil
}
