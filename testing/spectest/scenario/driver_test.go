package scenario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

func minimalGenesis(t *testing.T) (*state.BeaconState, []bls.SecretKey) {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	return testutil.DeterministicGenesisState(t, 64)
}

func emptyBlockBody(t *testing.T, privKeys []bls.SecretKey, n int) scenario.Body {
	return func(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
		if err := e.Pre(st); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			blk, err := testutil.BuildEmptyBlockForNextSlot(st)
			require.NoError(t, err)
			blk, err = testutil.SignBlock(st, blk, privKeys)
			require.NoError(t, err)
			st, err = scenario.ApplyAndEmit(ctx, e, st, blk, mode)
			if err != nil {
				return err
			}
		}
		return e.Post(st)
	}
}

func TestDriver_Run_OK(t *testing.T) {
	hook := logTest.NewGlobal()
	st, privKeys := minimalGenesis(t)
	preRoot, err := st.HashTreeRoot()
	require.NoError(t, err)

	v, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "two_empty_blocks",
		BLS:  transition.VerifyAlways,
		Body: emptyBlockBody(t, privKeys, 2),
	}, st)
	require.NoError(t, err)
	assert.Equal(t, true, v.Complete())
	assert.Equal(t, "two_empty_blocks", v.Name)
	assert.Equal(t, transition.VerifyAlways, v.BLS)
	assert.Equal(t, 2, len(v.Blocks))
	assert.DeepEqual(t, []string{scenario.SignedBeaconBlockType, scenario.SignedBeaconBlockType}, v.BlockTypes())
	assert.Equal(t, uint64(2), v.Post.Slot())

	vPreRoot, err := v.Pre.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, preRoot, vPreRoot)
	callerRoot, err := st.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, preRoot, callerRoot, "caller state must not change")
	require.LogsContain(t, hook, "Scenario completed")
}

func TestDriver_Run_CopiesCheckpoints(t *testing.T) {
	st, _ := minimalGenesis(t)
	v, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "mutate_after_emit",
		Body: func(ctx context.Context, e scenario.Emitter, st *state.BeaconState, _ transition.SignatureMode) error {
			if err := e.Pre(st); err != nil {
				return err
			}
			st.SetSlot(42)
			if err := e.Post(st); err != nil {
				return err
			}
			st.SetSlot(43)
			return nil
		},
	}, st)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Pre.Slot())
	assert.Equal(t, uint64(42), v.Post.Slot())
}

func TestDriver_Run_OrderingViolations(t *testing.T) {
	st, _ := minimalGenesis(t)
	blk := testutil.NewBeaconBlock()
	tests := []struct {
		name string
		body scenario.Body
		want error
	}{
		{
			name: "block before pre",
			body: func(_ context.Context, e scenario.Emitter, _ *state.BeaconState, _ transition.SignatureMode) error {
				return e.Block(blk, scenario.SignedBeaconBlockType)
			},
			want: scenario.ErrPreNotFirst,
		},
		{
			name: "post before pre",
			body: func(_ context.Context, e scenario.Emitter, st *state.BeaconState, _ transition.SignatureMode) error {
				return e.Post(st)
			},
			want: scenario.ErrPreNotFirst,
		},
		{
			name: "pre twice",
			body: func(_ context.Context, e scenario.Emitter, st *state.BeaconState, _ transition.SignatureMode) error {
				if err := e.Pre(st); err != nil {
					return err
				}
				return e.Pre(st)
			},
			want: scenario.ErrDuplicatePre,
		},
		{
			name: "block after post",
			body: func(_ context.Context, e scenario.Emitter, st *state.BeaconState, _ transition.SignatureMode) error {
				if err := e.Pre(st); err != nil {
					return err
				}
				if err := e.Post(st); err != nil {
					return err
				}
				return e.Block(blk, scenario.SignedBeaconBlockType)
			},
			want: scenario.ErrEmitAfterPost,
		},
		{
			name: "missing post",
			body: func(_ context.Context, e scenario.Emitter, st *state.BeaconState, _ transition.SignatureMode) error {
				return e.Pre(st)
			},
			want: scenario.ErrMissingPost,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{Name: "ordering", Body: tt.body}, st)
			require.ErrorIs(t, err, tt.want)
			require.NotNil(t, v)
			assert.Equal(t, false, v.Complete())
			assert.Equal(t, true, v.Post == nil, "partial vector must not carry post")
		})
	}
}

func TestDriver_Run_FailureKeepsPartialVector(t *testing.T) {
	hook := logTest.NewGlobal()
	st, privKeys := minimalGenesis(t)
	v, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "stale_block",
		BLS:  transition.VerifyNever,
		Body: func(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
			if err := e.Pre(st); err != nil {
				return err
			}
			blk, err := testutil.BuildEmptyBlockForNextSlot(st)
			require.NoError(t, err)
			blk, err = testutil.SignBlock(st, blk, privKeys)
			require.NoError(t, err)
			post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
			if err != nil {
				return err
			}
			// Re-applying the same block must be rejected.
			if _, err := scenario.ApplyAndEmit(ctx, e, post, blk, mode); err != nil {
				return err
			}
			return e.Post(post)
		},
	}, st)
	require.ErrorContains(t, "scenario stale_block failed", err)
	var slotErr *verification.SlotOrderError
	assert.Equal(t, true, errors.As(err, &slotErr))
	assert.Equal(t, verification.KindSlotOrder, verification.Classify(err))

	require.NotNil(t, v)
	require.NotNil(t, v.Pre)
	assert.Equal(t, 1, len(v.Blocks), "only the applied block is emitted")
	assert.Equal(t, true, v.Post == nil)
	require.LogsContain(t, hook, "Scenario failed")
}

func TestDriver_Run_InvalidDescriptor(t *testing.T) {
	st, _ := minimalGenesis(t)
	_, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{Name: "no_body"}, st)
	require.ErrorContains(t, "has no body", err)

	_, err = scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "bad_mode",
		BLS:  transition.SignatureMode(7),
		Body: emptyBlockBody(t, nil, 0),
	}, st)
	require.ErrorContains(t, "unknown bls_setting 7", err)

	_, err = scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "nil_pre",
		Body: emptyBlockBody(t, nil, 0),
	}, nil)
	require.ErrorContains(t, "nil pre state", err)
}

func TestDriver_Run_AssertionFailure(t *testing.T) {
	st, _ := minimalGenesis(t)
	v, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "failed_check",
		Body: func(_ context.Context, e scenario.Emitter, st *state.BeaconState, _ transition.SignatureMode) error {
			if err := e.Pre(st); err != nil {
				return err
			}
			if err := scenario.Assert(st.Slot() == 1, "slot %d, want 1", st.Slot()); err != nil {
				return err
			}
			return e.Post(st)
		},
	}, st)
	require.ErrorIs(t, err, scenario.ErrAssertion)
	require.ErrorContains(t, "slot 0, want 1", err)
	assert.Equal(t, verification.KindUnknown, verification.Classify(err))
	assert.Equal(t, false, v.Complete())
}

func TestAssert(t *testing.T) {
	assert.NoError(t, scenario.Assert(true, "unused"))
	require.ErrorIs(t, scenario.Assert(false, "value %d", 3), scenario.ErrAssertion)
}
