package blocks_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/sszutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

// blockAtStateSlot returns a block for the current slot of the state, signed by signer.
func blockAtStateSlot(t *testing.T, st *state.BeaconState, privKeys []bls.SecretKey, signer int) *ethpb.SignedBeaconBlock {
	proposerIdx, err := helpers.BeaconProposerIndex(st)
	require.NoError(t, err)
	parentRoot, err := st.LatestBlockHeader().HashTreeRoot()
	require.NoError(t, err)
	blk := testutil.NewBeaconBlock()
	blk.Block.Slot = st.Slot()
	blk.Block.ProposerIndex = proposerIdx
	blk.Block.ParentRoot = parentRoot[:]
	key := privKeys[proposerIdx]
	if signer >= 0 {
		key = privKeys[signer]
	}
	blk.Signature, err = helpers.ComputeDomainAndSign(st, helpers.CurrentEpoch(st), blk.Block, params.BeaconConfig().DomainBeaconProposer, key)
	require.NoError(t, err)
	return blk
}

func TestNewGenesisBlock(t *testing.T) {
	root := make([]byte, 32)
	root[0] = 'a'
	blk := blocks.NewGenesisBlock(root)
	assert.Equal(t, uint64(0), blk.Block.Slot)
	assert.DeepEqual(t, root, blk.Block.StateRoot)
	assert.DeepEqual(t, make([]byte, 32), blk.Block.ParentRoot)
	assert.DeepEqual(t, make([]byte, 32), blocks.NewGenesisBlock(nil).Block.StateRoot)
}

func TestProcessBlockHeader_OK(t *testing.T) {
	st, privKeys := minimalGenesis(t)
	blk := blockAtStateSlot(t, st, privKeys, -1)

	newState, err := blocks.ProcessBlockHeader(context.Background(), st, blk)
	require.NoError(t, err)
	header := newState.LatestBlockHeader()
	bodyRoot, err := blk.Block.Body.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, blk.Block.Slot, header.Slot)
	assert.Equal(t, blk.Block.ProposerIndex, header.ProposerIndex)
	assert.DeepEqual(t, blk.Block.ParentRoot, header.ParentRoot)
	assert.DeepEqual(t, bodyRoot[:], header.BodyRoot)
	assert.DeepEqual(t, make([]byte, 32), header.StateRoot)
}

func TestProcessBlockHeader_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, st *state.BeaconState, blk *ethpb.SignedBeaconBlock)
		signer int
		want   string
		kind   verification.Kind
	}{
		{
			name: "wrong slot",
			mutate: func(t *testing.T, st *state.BeaconState, blk *ethpb.SignedBeaconBlock) {
				blk.Block.Slot++
			},
			signer: -1,
			want:   "is different than block slot",
			kind:   verification.KindStructural,
		},
		{
			name: "wrong proposer index",
			mutate: func(t *testing.T, st *state.BeaconState, blk *ethpb.SignedBeaconBlock) {
				blk.Block.ProposerIndex = (blk.Block.ProposerIndex + 1) % numValidators
			},
			signer: -1,
			want:   "proposer index",
			kind:   verification.KindStructural,
		},
		{
			name: "wrong parent root",
			mutate: func(t *testing.T, st *state.BeaconState, blk *ethpb.SignedBeaconBlock) {
				blk.Block.ParentRoot = make([]byte, 32)
			},
			signer: -1,
			want:   "parent root",
			kind:   verification.KindStructural,
		},
		{
			name: "slashed proposer",
			mutate: func(t *testing.T, st *state.BeaconState, blk *ethpb.SignedBeaconBlock) {
				val, err := st.ValidatorAtIndex(blk.Block.ProposerIndex)
				require.NoError(t, err)
				val.Slashed = true
				require.NoError(t, st.UpdateValidatorAtIndex(blk.Block.ProposerIndex, val))
			},
			signer: -1,
			want:   "was previously slashed",
			kind:   verification.KindStateInvariant,
		},
		{
			name:   "signed by another validator",
			mutate: func(t *testing.T, st *state.BeaconState, blk *ethpb.SignedBeaconBlock) {},
			signer: numValidators - 1,
			want:   "signature did not verify",
			kind:   verification.KindSignature,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, privKeys := minimalGenesis(t)
			signer := tt.signer
			if proposer, err := helpers.BeaconProposerIndex(st); err == nil && uint64(signer) == proposer {
				signer = 0
			}
			blk := blockAtStateSlot(t, st, privKeys, signer)
			tt.mutate(t, st, blk)
			_, err := blocks.ProcessBlockHeader(context.Background(), st, blk)
			assert.ErrorContains(t, tt.want, err)
			requireKind(t, tt.kind, err)
		})
	}
}

func TestProcessBlockHeaderNoVerify_NilBlock(t *testing.T) {
	st, _ := minimalGenesis(t)
	_, err := blocks.ProcessBlockHeaderNoVerify(context.Background(), st, &ethpb.SignedBeaconBlock{})
	requireKind(t, verification.KindStructural, err)
}

func TestProcessRandao_IncorrectProposerFailsVerification(t *testing.T) {
	st, privKeys := minimalGenesis(t)
	proposerIdx, err := helpers.BeaconProposerIndex(st)
	require.NoError(t, err)
	epoch := sszutil.SSZUint64(helpers.CurrentEpoch(st))
	wrong := privKeys[(proposerIdx+1)%numValidators]
	reveal, err := helpers.ComputeDomainAndSign(st, uint64(epoch), &epoch, params.BeaconConfig().DomainRandao, wrong)
	require.NoError(t, err)
	body := &ethpb.BeaconBlockBody{RandaoReveal: reveal}

	_, err = blocks.ProcessRandao(context.Background(), st, body)
	requireKind(t, verification.KindSignature, err)
}

func TestProcessRandao_SignatureVerifiesAndUpdatesLatestStateMixes(t *testing.T) {
	st, privKeys := minimalGenesis(t)
	epoch := helpers.CurrentEpoch(st)
	reveal, err := testutil.RandaoReveal(st, epoch, privKeys)
	require.NoError(t, err)
	before, err := st.RandaoMixAtIndex(epoch % params.BeaconConfig().EpochsPerHistoricalVector)
	require.NoError(t, err)

	newState, err := blocks.ProcessRandao(context.Background(), st, &ethpb.BeaconBlockBody{RandaoReveal: reveal})
	require.NoError(t, err)
	after, err := newState.RandaoMixAtIndex(epoch % params.BeaconConfig().EpochsPerHistoricalVector)
	require.NoError(t, err)
	assert.DeepNotEqual(t, before, after, "Expected randao mix to change")
}
