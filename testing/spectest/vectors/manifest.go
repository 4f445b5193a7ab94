package vectors

import (
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"gopkg.in/yaml.v2"
)

const manifestFile = "manifest.yaml"

// ManifestEntry describes one written vector.
type ManifestEntry struct {
	Name        string `yaml:"name"`
	Config      string `yaml:"config"`
	Path        string `yaml:"path"`
	BLSSetting  int    `yaml:"bls_setting"`
	BlocksCount int    `yaml:"blocks_count"`
	PreRoot     string `yaml:"pre_root"`
	PostRoot    string `yaml:"post_root,omitempty"`
	Incomplete  bool   `yaml:"incomplete,omitempty"`
}

// Manifest lists every vector under an output directory.
type Manifest struct {
	Scenarios []ManifestEntry `yaml:"scenarios"`
}

// NewManifestEntry describes v written at path, relative to the output directory.
func NewManifestEntry(config, path string, v *scenario.Vector) (ManifestEntry, error) {
	if v == nil || v.Pre == nil {
		return ManifestEntry{}, errors.New("vector has no pre state")
	}
	preRoot, err := v.Pre.HashTreeRoot()
	if err != nil {
		return ManifestEntry{}, errors.Wrap(err, "could not compute pre root")
	}
	entry := ManifestEntry{
		Name:        v.Name,
		Config:      config,
		Path:        filepath.ToSlash(path),
		BLSSetting:  v.BLS.BLSSetting(),
		BlocksCount: len(v.Blocks),
		PreRoot:     hexutil.Encode(preRoot[:]),
		Incomplete:  !v.Complete(),
	}
	if v.Post != nil {
		postRoot, err := v.Post.HashTreeRoot()
		if err != nil {
			return ManifestEntry{}, errors.Wrap(err, "could not compute post root")
		}
		entry.PostRoot = hexutil.Encode(postRoot[:])
	}
	return entry, nil
}

// WriteManifest writes manifest.yaml into out.
func WriteManifest(out string, m *Manifest) error {
	if err := fileutil.MkdirAll(out); err != nil {
		return err
	}
	enc, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "could not marshal manifest")
	}
	return fileutil.WriteFile(filepath.Join(out, manifestFile), enc)
}

// ReadManifest loads manifest.yaml from out.
func ReadManifest(out string) (*Manifest, error) {
	data, err := fileutil.ReadFileAsBytes(filepath.Join(out, manifestFile))
	if err != nil {
		return nil, errors.Wrap(err, "could not read manifest")
	}
	m := &Manifest{}
	if err := UnmarshalYaml(data, m); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal manifest")
	}
	return m, nil
}

// DecodeRoot parses a manifest root.
func DecodeRoot(root string) ([32]byte, error) {
	b, err := hexutil.Decode(root)
	if err != nil {
		return [32]byte{}, err
	}
	if len(b) != 32 {
		return [32]byte{}, errors.Errorf("root has %d bytes, want 32", len(b))
	}
	var r [32]byte
	copy(r[:], b)
	return r, nil
}
