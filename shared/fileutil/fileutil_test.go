// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.
package fileutil_test

import (
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestExpandPath(t *testing.T) {
	u, err := user.Current()
	require.NoError(t, err)
	t.Setenv("HOME", u.HomeDir)
	t.Setenv("VECTORS_ROOT", "/tmp/vectors")

	tests := []struct {
		in   string
		want string
	}{
		{in: "/tmp/vectors/minimal", want: "/tmp/vectors/minimal"},
		{in: "~/vectors", want: filepath.Join(u.HomeDir, "vectors")},
		{in: "$VECTORS_ROOT/minimal/phase0", want: "/tmp/vectors/minimal/phase0"},
		{in: "/tmp/vectors/minimal/../mainnet/", want: "/tmp/vectors/mainnet"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := fileutil.ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMkdirAll(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "minimal", "phase0", "sanity")
		require.NoError(t, fileutil.MkdirAll(dir))
		exists, err := fileutil.HasDir(dir)
		require.NoError(t, err)
		assert.Equal(t, true, exists)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, params.BeaconIoConfig().ReadWriteExecutePermissions, info.Mode().Perm())
	})
	t.Run("existing directory with expected permissions", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.MkdirAll(dir, params.BeaconIoConfig().ReadWriteExecutePermissions))
		assert.NoError(t, fileutil.MkdirAll(dir))
	})
	t.Run("existing directory with wider permissions", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.MkdirAll(dir, os.ModePerm))
		require.NoError(t, os.Chmod(dir, 0755))
		assert.ErrorContains(t, "already exists without proper 0700 permissions", fileutil.MkdirAll(dir))
	})
}

func TestHasDir_File(t *testing.T) {
	f := filepath.Join(t.TempDir(), "pre.ssz_snappy")
	require.NoError(t, fileutil.WriteFile(f, []byte{1}))
	exists, err := fileutil.HasDir(f)
	require.NoError(t, err)
	assert.Equal(t, false, exists)

	exists, err = fileutil.HasDir(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, false, exists)
}

func TestWriteFile(t *testing.T) {
	t.Run("new file", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "post.ssz_snappy")
		require.NoError(t, fileutil.WriteFile(f, []byte("post")))
		assert.Equal(t, true, fileutil.FileExists(f))
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Equal(t, params.BeaconIoConfig().ReadWritePermissions, info.Mode())
	})
	t.Run("overwrites file with expected permissions", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "meta.yaml")
		require.NoError(t, ioutil.WriteFile(f, []byte("old"), params.BeaconIoConfig().ReadWritePermissions))
		require.NoError(t, fileutil.WriteFile(f, []byte("new")))
		got, err := fileutil.ReadFileAsBytes(f)
		require.NoError(t, err)
		assert.DeepEqual(t, []byte("new"), got)
	})
	t.Run("refuses file with wider permissions", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "meta.yaml")
		require.NoError(t, ioutil.WriteFile(f, []byte("old"), 0644))
		require.NoError(t, os.Chmod(f, 0644))
		assert.ErrorContains(t, "already exists without proper 0600 permissions", fileutil.WriteFile(f, []byte("new")))
	})
}

func TestFileExists_Directory(t *testing.T) {
	assert.Equal(t, false, fileutil.FileExists(t.TempDir()))
	assert.Equal(t, false, fileutil.FileExists(filepath.Join(t.TempDir(), "missing")))
}

func TestReadFileAsBytes(t *testing.T) {
	f := filepath.Join(t.TempDir(), "blocks_0.ssz_snappy")
	require.NoError(t, fileutil.WriteFile(f, []byte{1, 2, 3}))
	got, err := fileutil.ReadFileAsBytes(f)
	require.NoError(t, err)
	assert.DeepEqual(t, []byte{1, 2, 3}, got)

	_, err = fileutil.ReadFileAsBytes(filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, err)
}
