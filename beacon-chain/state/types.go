// Package state wraps the beacon state container with locked accessors and a
// cached merkle tree over its top level fields.
package state

import (
	"sync"

	"github.com/pkg/errors"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
)

// ErrNilInnerState returns when the inner state is nil and no copy set or get
// operations can be performed on state.
var ErrNilInnerState = errors.New("nil inner state")

// BeaconState defines a struct containing utilities for the beacon chain state, defining
// getters and setters for its respective values and helpful functions such as HashTreeRoot().
type BeaconState struct {
	state        *pb.BeaconState
	lock         sync.RWMutex
	dirtyFields  map[fieldIndex]bool
	merkleLayers [][][]byte
}

// InitializeFromProto the beacon state from a protobuf representation.
func InitializeFromProto(st *pb.BeaconState) (*BeaconState, error) {
	return InitializeFromProtoUnsafe(pb.CopyBeaconState(st))
}

// InitializeFromProtoUnsafe directly uses the beacon state protobuf pointer
// and sets it as the inner state of the BeaconState type.
func InitializeFromProtoUnsafe(st *pb.BeaconState) (*BeaconState, error) {
	if st == nil {
		return nil, ErrNilInnerState
	}
	b := &BeaconState{
		state:       st,
		dirtyFields: make(map[fieldIndex]bool, pb.BeaconStateFieldCount),
	}
	for i := 0; i < pb.BeaconStateFieldCount; i++ {
		b.dirtyFields[fieldIndex(i)] = true
	}
	return b, nil
}

// Copy returns a deep copy of the beacon state.
func (b *BeaconState) Copy() *BeaconState {
	if b == nil || b.state == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()

	dst := &BeaconState{
		state:       pb.CopyBeaconState(b.state),
		dirtyFields: make(map[fieldIndex]bool, len(b.dirtyFields)),
	}
	for k, v := range b.dirtyFields {
		dst.dirtyFields[k] = v
	}
	if b.merkleLayers != nil {
		dst.merkleLayers = make([][][]byte, len(b.merkleLayers))
		for i, layer := range b.merkleLayers {
			dst.merkleLayers[i] = make([][]byte, len(layer))
			for j, content := range layer {
				dst.merkleLayers[i][j] = make([]byte, len(content))
				copy(dst.merkleLayers[i][j], content)
			}
		}
	}
	return dst
}

// InnerStateUnsafe returns the pointer value of the underlying
// beacon state proto object, bypassing immutability. Use with care.
func (b *BeaconState) InnerStateUnsafe() *pb.BeaconState {
	if b == nil {
		return nil
	}
	return b.state
}

// CloneInnerState the beacon state into a protobuf for usage.
func (b *BeaconState) CloneInnerState() *pb.BeaconState {
	if b == nil || b.state == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return pb.CopyBeaconState(b.state)
}

// HashTreeRoot of the beacon state retrieves the Merkle root of the trie
// representation of the beacon state based on the SSZ specification. Only
// fields touched since the last call are rehashed.
func (b *BeaconState) HashTreeRoot() ([32]byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.state == nil {
		return [32]byte{}, ErrNilInnerState
	}
	if b.merkleLayers == nil {
		leaves := make([][]byte, pb.BeaconStateFieldCount)
		for i := range leaves {
			r, err := b.state.FieldRoot(i)
			if err != nil {
				return [32]byte{}, errors.Wrapf(err, "could not hash field %s", fieldIndex(i))
			}
			leaves[i] = r[:]
		}
		b.merkleLayers = merkleize(leaves)
		b.dirtyFields = make(map[fieldIndex]bool, pb.BeaconStateFieldCount)
	}
	for field := range b.dirtyFields {
		r, err := b.state.FieldRoot(int(field))
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "could not hash field %s", field)
		}
		b.merkleLayers[0][field] = r[:]
		b.recomputeRoot(int(field))
		delete(b.dirtyFields, field)
	}
	var root [32]byte
	copy(root[:], b.merkleLayers[len(b.merkleLayers)-1][0])
	return root, nil
}

func (b *BeaconState) markFieldAsDirty(field fieldIndex) {
	b.dirtyFields[field] = true
}

func (b *BeaconState) recomputeRoot(idx int) {
	layers := b.merkleLayers
	// The merkle tree structure looks as follows:
	// [[r1, r2, r3, r4], [parent1, parent2], [root]]
	// Using information about the index which changed, idx, we recompute
	// only its branch up the tree.
	currentIndex := idx
	root := layers[0][idx]
	for i := 0; i < len(layers)-1; i++ {
		isLeft := currentIndex%2 == 0
		neighborIdx := currentIndex ^ 1

		neighbor := make([]byte, 32)
		if neighborIdx < len(layers[i]) {
			neighbor = layers[i][neighborIdx]
		}
		var parentHash [32]byte
		if isLeft {
			parentHash = hashutil.Hash(append(append([]byte{}, root...), neighbor...))
		} else {
			parentHash = hashutil.Hash(append(append([]byte{}, neighbor...), root...))
		}
		root = parentHash[:]
		parentIdx := currentIndex / 2
		layers[i+1][parentIdx] = root
		currentIndex = parentIdx
	}
}

// merkleize builds every layer of the field tree from the leaves up to the single root.
// Leaves are padded with zero chunks to the next power of two.
func merkleize(leaves [][]byte) [][][]byte {
	size := 1
	for size < len(leaves) {
		size *= 2
	}
	currentLayer := make([][]byte, size)
	for i := range currentLayer {
		if i < len(leaves) {
			currentLayer[i] = leaves[i]
		} else {
			currentLayer[i] = make([]byte, 32)
		}
	}
	layers := [][][]byte{currentLayer}
	for len(currentLayer) > 1 {
		layer := make([][]byte, len(currentLayer)/2)
		for i := 0; i < len(currentLayer); i += 2 {
			hashedChunk := hashutil.Hash(append(append([]byte{}, currentLayer[i]...), currentLayer[i+1]...))
			layer[i/2] = hashedChunk[:]
		}
		currentLayer = layer
		layers = append(layers, currentLayer)
	}
	return layers
}
