package vectors

import (
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
)

type sszMarshaler interface {
	MarshalSSZ() ([]byte, error)
}

type sszUnmarshaler interface {
	UnmarshalSSZ(buf []byte) error
}

// EncodeSnappy serializes obj with SSZ and compresses it with the snappy block format.
func EncodeSnappy(obj sszMarshaler) ([]byte, error) {
	enc, err := obj.MarshalSSZ()
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal ssz")
	}
	return snappy.Encode(nil, enc), nil
}

// DecodeSnappy reverses EncodeSnappy into obj.
func DecodeSnappy(data []byte, obj sszUnmarshaler) error {
	dec, err := snappy.Decode(nil /*dst*/, data)
	if err != nil {
		return errors.Wrap(err, "could not decompress snappy")
	}
	return obj.UnmarshalSSZ(dec)
}

// writeSSZSnappy returns the number of bytes written to path.
func writeSSZSnappy(path string, obj sszMarshaler) (int, error) {
	enc, err := EncodeSnappy(obj)
	if err != nil {
		return 0, err
	}
	if err := fileutil.WriteFile(path, enc); err != nil {
		return 0, errors.Wrapf(err, "could not write %s", path)
	}
	return len(enc), nil
}

func readSSZSnappy(path string, obj sszUnmarshaler) error {
	data, err := fileutil.ReadFileAsBytes(path)
	if err != nil {
		return err
	}
	if err := DecodeSnappy(data, obj); err != nil {
		return errors.Wrapf(err, "could not decode %s", path)
	}
	return nil
}

func writeState(path string, st *state.BeaconState) (int, error) {
	return writeSSZSnappy(path, st.CloneInnerState())
}

func readState(path string) (*state.BeaconState, error) {
	inner := &pb.BeaconState{}
	if err := readSSZSnappy(path, inner); err != nil {
		return nil, err
	}
	return state.InitializeFromProtoUnsafe(inner)
}

func readBlock(path string) (*ethpb.SignedBeaconBlock, error) {
	blk := &ethpb.SignedBeaconBlock{}
	if err := readSSZSnappy(path, blk); err != nil {
		return nil, err
	}
	return blk, nil
}
