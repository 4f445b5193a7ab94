package vectors

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"gopkg.in/d4l3k/messagediff.v1"
)

// ErrPostStateMismatch is returned when replaying a vector does not reproduce its post-state.
var ErrPostStateMismatch = errors.New("replayed post state does not match vector")

// Replay applies the blocks of v to a copy of its pre-state under mode and returns the
// resulting state. When v carries a post-state, the result must match it, and the
// returned error describes the differing fields otherwise.
func Replay(ctx context.Context, v *scenario.Vector, mode transition.SignatureMode) (*state.BeaconState, error) {
	if v == nil || v.Pre == nil {
		return nil, errors.New("vector has no pre state")
	}
	st := v.Pre.Copy()
	for i, b := range v.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		st, err = transition.ApplyBlock(ctx, st, b.Block, mode)
		if err != nil {
			return nil, errors.Wrapf(err, "could not replay block %d of %s", i, v.Name)
		}
	}
	if v.Post == nil {
		return st, nil
	}
	got, err := st.HashTreeRoot()
	if err != nil {
		return nil, err
	}
	want, err := v.Post.HashTreeRoot()
	if err != nil {
		return nil, err
	}
	if got != want {
		diff, _ := messagediff.PrettyDiff(v.Post.CloneInnerState(), st.CloneInnerState())
		return st, errors.Wrapf(ErrPostStateMismatch, "%s: root %#x, want %#x, diff: %s", v.Name, got, want, diff)
	}
	return st, nil
}
