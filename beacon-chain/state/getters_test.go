package state

import (
	"sync"
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestBeaconState_SlotDataRace(t *testing.T) {
	headState, err := InitializeFromProto(&pb.BeaconState{Slot: 1})
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		headState.SetSlot(0)
		wg.Done()
	}()
	go func() {
		headState.Slot()
		wg.Done()
	}()

	wg.Wait()
}

func TestInitializeFromProto_Nil(t *testing.T) {
	_, err := InitializeFromProtoUnsafe(nil)
	assert.ErrorIs(t, err, ErrNilInnerState)
}

func TestFieldIndex_String(t *testing.T) {
	assert.Equal(t, "validators", validators.String())
	assert.Equal(t, "finalizedCheckpoint", finalizedCheckpoint.String())
	assert.Equal(t, "unknown field index 99", fieldIndex(99).String())
}

func TestBeaconState_AttestationPoolRoots(t *testing.T) {
	att := &pb.PendingAttestation{
		AggregationBits: bitfield.Bitlist{0x03},
		Data: &ethpb.AttestationData{
			Slot:            3,
			BeaconBlockRoot: make([]byte, 32),
			Source:          &ethpb.Checkpoint{Root: make([]byte, 32)},
			Target:          &ethpb.Checkpoint{Root: make([]byte, 32)},
		},
		InclusionDelay: 1,
	}
	st, err := InitializeFromProto(&pb.BeaconState{CurrentEpochAttestations: []*pb.PendingAttestation{att}})
	require.NoError(t, err)

	current, err := st.CurrentEpochAttestationsRoot()
	require.NoError(t, err)
	emptyRoot, err := st.PreviousEpochAttestationsRoot()
	require.NoError(t, err)
	assert.NotEqual(t, emptyRoot, current)

	st.RotateAttestations()
	previous, err := st.PreviousEpochAttestationsRoot()
	require.NoError(t, err)
	assert.Equal(t, current, previous)
	newCurrent, err := st.CurrentEpochAttestationsRoot()
	require.NoError(t, err)
	assert.Equal(t, emptyRoot, newCurrent)
}

func TestBeaconState_AppendEth1DataVotesCopies(t *testing.T) {
	st, err := InitializeFromProto(&pb.BeaconState{})
	require.NoError(t, err)
	vote := &ethpb.Eth1Data{DepositRoot: make([]byte, 32), BlockHash: []byte{'a'}, DepositCount: 3}
	st.AppendEth1DataVotes(vote)

	vote.BlockHash[0] = 'b'
	vote.DepositCount = 4
	got := st.Eth1DataVotes()
	require.Equal(t, 1, len(got))
	assert.DeepEqual(t, []byte{'a'}, got[0].BlockHash)
	assert.Equal(t, uint64(3), got[0].DepositCount)
}
