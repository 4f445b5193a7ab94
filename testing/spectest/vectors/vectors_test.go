package vectors_test

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/vectors"
)

func emptyBlocksVector(t *testing.T, n int) *scenario.Vector {
	params.SetupTestConfigCleanup(t)
	params.UseMinimalConfig()
	st, privKeys := testutil.DeterministicGenesisState(t, 64)
	v, err := scenario.NewDriver().Run(context.Background(), scenario.Descriptor{
		Name: "empty_blocks",
		BLS:  transition.VerifyNever,
		Body: func(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
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
		},
	}, st)
	require.NoError(t, err)
	return v
}

func rootOf(t *testing.T, st *state.BeaconState) [32]byte {
	r, err := st.HashTreeRoot()
	require.NoError(t, err)
	return r
}

func TestDir_Layout(t *testing.T) {
	assert.Equal(t,
		filepath.Join("out", "minimal", "phase0", "sanity", "blocks", "pyspec_tests", "attestation"),
		vectors.Dir("out", "minimal", "attestation"))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	v := emptyBlocksVector(t, 2)
	dir := vectors.Dir(filepath.Join(t.TempDir(), "out"), "minimal", v.Name)
	require.NoError(t, vectors.Write(dir, v, nil))

	for _, name := range []string{"pre.ssz_snappy", "blocks_0.ssz_snappy", "blocks_1.ssz_snappy", "post.ssz_snappy", "meta.yaml"} {
		assert.Equal(t, true, fileutil.FileExists(filepath.Join(dir, name)), "missing %s", name)
	}

	got, meta, err := vectors.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.BlocksCount)
	assert.Equal(t, transition.VerifyNever.BLSSetting(), meta.BLSSetting)
	assert.DeepEqual(t, []string{scenario.SignedBeaconBlockType, scenario.SignedBeaconBlockType}, meta.BlockTypes)
	assert.Equal(t, false, meta.Incomplete)

	assert.Equal(t, v.Name, got.Name)
	assert.Equal(t, transition.VerifyNever, got.BLS)
	assert.Equal(t, rootOf(t, v.Pre), rootOf(t, got.Pre))
	assert.Equal(t, rootOf(t, v.Post), rootOf(t, got.Post))
	require.Equal(t, len(v.Blocks), len(got.Blocks))
	for i := range v.Blocks {
		want, err := v.Blocks[i].Block.HashTreeRoot()
		require.NoError(t, err)
		have, err := got.Blocks[i].Block.HashTreeRoot()
		require.NoError(t, err)
		assert.Equal(t, want, have, "block %d", i)
	}
}

func TestWrite_MetaYaml(t *testing.T) {
	v := emptyBlocksVector(t, 1)
	dir := filepath.Join(t.TempDir(), "vec")
	require.NoError(t, vectors.Write(dir, v, nil))
	data, err := ioutil.ReadFile(filepath.Join(dir, "meta.yaml"))
	require.NoError(t, err)
	want := "blocks_count: 1\nbls_setting: 2\nblock_types:\n- SignedBeaconBlock\n"
	assert.Equal(t, want, string(data))
}

func TestWrite_IncompleteVector(t *testing.T) {
	v := emptyBlocksVector(t, 1)
	dir := filepath.Join(t.TempDir(), "vec")
	require.NoError(t, vectors.Write(dir, v, nil))

	v.Post = nil
	require.NoError(t, vectors.Write(dir, v, nil))
	assert.Equal(t, false, fileutil.FileExists(filepath.Join(dir, "post.ssz_snappy")), "stale post must be removed")

	got, meta, err := vectors.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, true, meta.Incomplete)
	assert.Equal(t, true, got.Post == nil)
	assert.Equal(t, 1, len(got.Blocks))
}

func TestRead_MissingPost(t *testing.T) {
	v := emptyBlocksVector(t, 1)
	dir := filepath.Join(t.TempDir(), "vec")
	meta := vectors.MetaFor(v)
	v.Post = nil
	require.NoError(t, vectors.Write(dir, v, meta))
	_, _, err := vectors.Read(dir)
	require.ErrorContains(t, "missing its post state", err)
}

func TestRead_BlockTypesMismatch(t *testing.T) {
	v := emptyBlocksVector(t, 1)
	dir := filepath.Join(t.TempDir(), "vec")
	meta := vectors.MetaFor(v)
	meta.BlockTypes = nil
	require.NoError(t, vectors.Write(dir, v, meta))
	_, _, err := vectors.Read(dir)
	require.ErrorContains(t, "0 block types for 1 blocks", err)
}

func TestWrite_NoPre(t *testing.T) {
	require.ErrorContains(t, "no pre state", vectors.Write(t.TempDir(), &scenario.Vector{}, nil))
}

func TestEncodeDecodeSnappy(t *testing.T) {
	v := emptyBlocksVector(t, 1)
	blk := v.Blocks[0].Block
	enc, err := vectors.EncodeSnappy(blk)
	require.NoError(t, err)
	raw, err := blk.MarshalSSZ()
	require.NoError(t, err)
	assert.NotEqual(t, len(raw), 0)

	got := testutil.NewBeaconBlock()
	require.NoError(t, vectors.DecodeSnappy(enc, got))
	want, err := blk.HashTreeRoot()
	require.NoError(t, err)
	have, err := got.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, have)

	require.ErrorContains(t, "could not decompress snappy", vectors.DecodeSnappy([]byte{0xff, 0xff, 0xff}, got))
}
