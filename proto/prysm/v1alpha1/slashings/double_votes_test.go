package slashings

import (
	"testing"

	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func vote(source, target uint64, root byte) *ethpb.AttestationData {
	return &ethpb.AttestationData{
		BeaconBlockRoot: bytesutil.PadTo([]byte{root}, 32),
		Source:          &ethpb.Checkpoint{Epoch: source, Root: make([]byte, 32)},
		Target:          &ethpb.Checkpoint{Epoch: target, Root: make([]byte, 32)},
	}
}

func TestIsSlashableAttestationData(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *ethpb.AttestationData
		slash bool
	}{
		{name: "identical votes", a: vote(0, 1, 1), b: vote(0, 1, 1), slash: false},
		{name: "double vote", a: vote(0, 1, 1), b: vote(0, 1, 2), slash: true},
		{name: "surround vote", a: vote(0, 3, 1), b: vote(1, 2, 1), slash: true},
		{name: "surrounded is not ordered", a: vote(1, 2, 1), b: vote(0, 3, 1), slash: false},
		{name: "disjoint votes", a: vote(0, 1, 1), b: vote(1, 2, 1), slash: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsSlashableAttestationData(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.slash, got)
		})
	}
}

func TestIsDoubleVote_MalformedRoot(t *testing.T) {
	a := vote(0, 1, 1)
	b := vote(0, 1, 1)
	b.BeaconBlockRoot = []byte{1}
	_, err := IsDoubleVote(a, b)
	assert.ErrorContains(t, "BeaconBlockRoot", err)
}
