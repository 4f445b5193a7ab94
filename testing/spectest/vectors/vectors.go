// Package vectors writes scenario conformance vectors to disk in the ssz_snappy
// layout consumed by client test runners, reads them back and replays them.
package vectors

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	preFile  = "pre.ssz_snappy"
	postFile = "post.ssz_snappy"
	metaFile = "meta.yaml"
)

// Meta is the content of meta.yaml.
type Meta struct {
	BlocksCount int      `yaml:"blocks_count"`
	BLSSetting  int      `yaml:"bls_setting"`
	BlockTypes  []string `yaml:"block_types"`
	Incomplete  bool     `yaml:"incomplete,omitempty"`
}

// MetaFor describes v.
func MetaFor(v *scenario.Vector) *Meta {
	return &Meta{
		BlocksCount: len(v.Blocks),
		BLSSetting:  v.BLS.BLSSetting(),
		BlockTypes:  v.BlockTypes(),
		Incomplete:  !v.Complete(),
	}
}

// Dir is the directory of a scenario vector under out.
func Dir(out, config, name string) string {
	return filepath.Join(out, config, "phase0", "sanity", "blocks", "pyspec_tests", name)
}

func blockFile(i int) string {
	return fmt.Sprintf("blocks_%d.ssz_snappy", i)
}

// Write serializes v into dir: the pre-state, one file per block, the post-state when
// present and meta.yaml. Nothing is validated.
func Write(dir string, v *scenario.Vector, meta *Meta) error {
	if v == nil || v.Pre == nil {
		return errors.New("vector has no pre state")
	}
	if meta == nil {
		meta = MetaFor(v)
	}
	if err := fileutil.MkdirAll(dir); err != nil {
		return errors.Wrapf(err, "could not create %s", dir)
	}
	size, err := writeState(filepath.Join(dir, preFile), v.Pre)
	if err != nil {
		return err
	}
	for i, b := range v.Blocks {
		n, err := writeSSZSnappy(filepath.Join(dir, blockFile(i)), b.Block)
		if err != nil {
			return err
		}
		size += n
	}
	postPath := filepath.Join(dir, postFile)
	if v.Post != nil {
		n, err := writeState(postPath, v.Post)
		if err != nil {
			return err
		}
		size += n
	} else if err := os.Remove(postPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "could not remove stale post state")
	}
	enc, err := yaml.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, "could not marshal meta")
	}
	if err := fileutil.WriteFile(filepath.Join(dir, metaFile), enc); err != nil {
		return errors.Wrap(err, "could not write meta")
	}
	log.WithFields(logrus.Fields{
		"dir":        dir,
		"blocks":     meta.BlocksCount,
		"incomplete": meta.Incomplete,
		"size":       humanize.Bytes(uint64(size)),
	}).Debug("Wrote vector")
	return nil
}

// ReadMeta loads meta.yaml from dir.
func ReadMeta(dir string) (*Meta, error) {
	data, err := fileutil.ReadFileAsBytes(filepath.Join(dir, metaFile))
	if err != nil {
		return nil, errors.Wrap(err, "could not read meta")
	}
	meta := &Meta{}
	if err := UnmarshalYaml(data, meta); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal meta")
	}
	return meta, nil
}

// Read loads a vector written by Write. The vector is named after dir.
func Read(dir string) (*scenario.Vector, *Meta, error) {
	meta, err := ReadMeta(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(meta.BlockTypes) != meta.BlocksCount {
		return nil, nil, errors.Errorf("meta lists %d block types for %d blocks", len(meta.BlockTypes), meta.BlocksCount)
	}
	mode, err := transition.SignatureModeFromBLSSetting(meta.BLSSetting)
	if err != nil {
		return nil, nil, err
	}
	v := &scenario.Vector{Name: filepath.Base(dir), BLS: mode}
	v.Pre, err = readState(filepath.Join(dir, preFile))
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not read pre state")
	}
	v.Blocks = make([]scenario.TaggedBlock, meta.BlocksCount)
	for i := range v.Blocks {
		blk, err := readBlock(filepath.Join(dir, blockFile(i)))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not read block %d", i)
		}
		v.Blocks[i] = scenario.TaggedBlock{Block: blk, Type: meta.BlockTypes[i]}
	}
	postPath := filepath.Join(dir, postFile)
	switch {
	case fileutil.FileExists(postPath):
		v.Post, err = readState(postPath)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not read post state")
		}
	case !meta.Incomplete:
		return nil, nil, errors.New("complete vector is missing its post state")
	}
	return v, meta, nil
}
