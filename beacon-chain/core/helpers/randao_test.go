package helpers

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestRandaoMix_OK(t *testing.T) {
	randaoMixes := make([][]byte, params.BeaconConfig().EpochsPerHistoricalVector)
	for i := 0; i < len(randaoMixes); i++ {
		intInBytes := make([]byte, 32)
		binary.LittleEndian.PutUint64(intInBytes, uint64(i))
		randaoMixes[i] = intInBytes
	}
	st, err := state.InitializeFromProto(&pb.BeaconState{RandaoMixes: randaoMixes})
	require.NoError(t, err)
	tests := []struct {
		epoch     uint64
		randaoMix []byte
	}{
		{
			epoch:     10,
			randaoMix: randaoMixes[10],
		},
		{
			epoch:     2344,
			randaoMix: randaoMixes[2344],
		},
		{
			epoch:     99999,
			randaoMix: randaoMixes[99999%params.BeaconConfig().EpochsPerHistoricalVector],
		},
	}
	for _, test := range tests {
		st.SetSlot((test.epoch + 1) * params.BeaconConfig().SlotsPerEpoch)
		mix, err := RandaoMix(st, test.epoch)
		require.NoError(t, err)
		if !bytes.Equal(test.randaoMix, mix) {
			t.Errorf("Incorrect randao mix. Wanted: %#x, got: %#x",
				test.randaoMix, mix)
		}
	}
}

func TestRandaoMix_MissingVector(t *testing.T) {
	st, err := state.InitializeFromProto(&pb.BeaconState{})
	require.NoError(t, err)
	_, err = RandaoMix(st, 1)
	assert.ErrorContains(t, "could not get randao mix for epoch 1", err)
}

func TestSeed_DependsOnDomainAndEpoch(t *testing.T) {
	st := activeRegistryState(t, 8)
	cfg := params.BeaconConfig()

	proposer, err := Seed(st, 1, cfg.DomainBeaconProposer)
	require.NoError(t, err)
	attester, err := Seed(st, 1, cfg.DomainBeaconAttester)
	require.NoError(t, err)
	assert.NotEqual(t, proposer, attester, "Seeds of distinct domains should differ")

	again, err := Seed(st, 1, cfg.DomainBeaconProposer)
	require.NoError(t, err)
	assert.Equal(t, proposer, again)

	next, err := Seed(st, 2, cfg.DomainBeaconProposer)
	require.NoError(t, err)
	assert.NotEqual(t, proposer, next)
}
