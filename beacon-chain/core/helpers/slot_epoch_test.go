package helpers

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestSlotToEpoch_OK(t *testing.T) {
	tests := []struct {
		slot  uint64
		epoch uint64
	}{
		{slot: 0, epoch: 0},
		{slot: 50, epoch: 1},
		{slot: 64, epoch: 2},
		{slot: 128, epoch: 4},
		{slot: 200, epoch: 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.epoch, SlotToEpoch(tt.slot), "SlotToEpoch(%d)", tt.slot)
	}
}

func TestCurrentEpoch_OK(t *testing.T) {
	tests := []struct {
		slot  uint64
		epoch uint64
	}{
		{slot: 0, epoch: 0},
		{slot: 50, epoch: 1},
		{slot: 64, epoch: 2},
		{slot: 128, epoch: 4},
		{slot: 200, epoch: 6},
	}
	for _, tt := range tests {
		st, err := state.InitializeFromProto(&pb.BeaconState{Slot: tt.slot})
		require.NoError(t, err)
		assert.Equal(t, tt.epoch, CurrentEpoch(st), "CurrentEpoch(%d)", st.Slot())
	}
}

func TestPrevEpoch_OK(t *testing.T) {
	tests := []struct {
		slot  uint64
		epoch uint64
	}{
		{slot: 0, epoch: 0},
		{slot: 0 + params.BeaconConfig().SlotsPerEpoch + 1, epoch: 0},
		{slot: 2 * params.BeaconConfig().SlotsPerEpoch, epoch: 1},
	}
	for _, tt := range tests {
		st, err := state.InitializeFromProto(&pb.BeaconState{Slot: tt.slot})
		require.NoError(t, err)
		assert.Equal(t, tt.epoch, PrevEpoch(st), "PrevEpoch(%d)", st.Slot())
	}
}

func TestNextEpoch_OK(t *testing.T) {
	tests := []struct {
		slot  uint64
		epoch uint64
	}{
		{slot: 0, epoch: 0/params.BeaconConfig().SlotsPerEpoch + 1},
		{slot: 50, epoch: 50/params.BeaconConfig().SlotsPerEpoch + 1},
		{slot: 64, epoch: 64/params.BeaconConfig().SlotsPerEpoch + 1},
		{slot: 128, epoch: 128/params.BeaconConfig().SlotsPerEpoch + 1},
		{slot: 200, epoch: 200/params.BeaconConfig().SlotsPerEpoch + 1},
	}
	for _, tt := range tests {
		st, err := state.InitializeFromProto(&pb.BeaconState{Slot: tt.slot})
		require.NoError(t, err)
		assert.Equal(t, tt.epoch, NextEpoch(st), "NextEpoch(%d)", st.Slot())
	}
}

func TestEpochStartSlot_OK(t *testing.T) {
	tests := []struct {
		epoch     uint64
		startSlot uint64
	}{
		{epoch: 0, startSlot: 0 * params.BeaconConfig().SlotsPerEpoch},
		{epoch: 1, startSlot: 1 * params.BeaconConfig().SlotsPerEpoch},
		{epoch: 10, startSlot: 10 * params.BeaconConfig().SlotsPerEpoch},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.startSlot, StartSlot(tt.epoch), "StartSlot(%d)", tt.epoch)
	}
}

func TestIsEpochStartAndEnd(t *testing.T) {
	spe := params.BeaconConfig().SlotsPerEpoch
	tests := []struct {
		name  string
		slot  uint64
		start bool
		end   bool
	}{
		{name: "genesis", slot: 0, start: true, end: false},
		{name: "mid epoch", slot: 1, start: false, end: false},
		{name: "last slot", slot: spe - 1, start: false, end: true},
		{name: "next epoch start", slot: spe, start: true, end: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, IsEpochStart(tt.slot))
			assert.Equal(t, tt.end, IsEpochEnd(tt.slot))
		})
	}
}
