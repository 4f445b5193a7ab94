package helpers

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

const seedSize = int8(32)
const roundSize = int8(1)
const positionWindowSize = int8(4)
const pivotViewSize = seedSize + roundSize
const totalSize = seedSize + roundSize + positionWindowSize

var maxShuffleListSize uint64 = 1 << 40

// ComputeShuffledIndex returns the shuffled validator index corresponding to seed and index count.
//
// Pseudocode definition:
//   def compute_shuffled_index(index: ValidatorIndex, index_count: uint64, seed: Hash) -> ValidatorIndex:
//    """
//    Return the shuffled validator index corresponding to ``seed`` (and ``index_count``).
//    """
//    assert index < index_count
//
//    # Swap or not (https://link.springer.com/content/pdf/10.1007%2F978-3-642-32009-5_1.pdf)
//    # See the 'generalized domain' algorithm on page 3
//    for current_round in range(SHUFFLE_ROUND_COUNT):
//        pivot = bytes_to_int(hash(seed + int_to_bytes(current_round, length=1))[0:8]) % index_count
//        flip = ValidatorIndex((pivot + index_count - index) % index_count)
//        position = max(index, flip)
//        source = hash(seed + int_to_bytes(current_round, length=1) + int_to_bytes(position // 256, length=4))
//        byte = source[(position % 256) // 8]
//        bit = (byte >> (position % 8)) % 2
//        index = flip if bit else index
//
//    return ValidatorIndex(index)
func ComputeShuffledIndex(index, indexCount uint64, seed [32]byte) (uint64, error) {
	if params.BeaconConfig().ShuffleRoundCount == 0 {
		return index, nil
	}
	if index >= indexCount {
		return 0, errors.Errorf("input index %d out of bounds: %d", index, indexCount)
	}
	if indexCount > maxShuffleListSize {
		return 0, errors.Errorf("list size %d out of bounds", indexCount)
	}
	rounds := params.BeaconConfig().ShuffleRoundCount
	buf := make([]byte, totalSize)
	posBuffer := make([]byte, 8)
	hashFunc := hashutil.CustomSHA256Hasher()

	// The seed occupies the first 32 bytes of every hash input.
	copy(buf[:32], seed[:])
	for round := uint64(0); round < rounds; round++ {
		buf[seedSize] = byte(round)
		h := hashFunc(buf[:pivotViewSize])
		pivot := bytesutil.FromBytes8(h[:8]) % indexCount
		flip := (pivot + indexCount - index) % indexCount
		position := index
		if flip > position {
			position = flip
		}
		binary.LittleEndian.PutUint64(posBuffer, position>>8)
		copy(buf[pivotViewSize:], posBuffer[:4])
		source := hashFunc(buf)
		byteV := source[(position&0xff)>>3]
		bitV := (byteV >> (position & 0x7)) & 0x1
		if bitV == 1 {
			index = flip
		}
	}
	return index, nil
}

// ShuffledIndices returns the full permutation of the input indices, such that
// out[i] == indices[ComputeShuffledIndex(i, len(indices), seed)].
func ShuffledIndices(indices []uint64, seed [32]byte) ([]uint64, error) {
	count := uint64(len(indices))
	shuffled := make([]uint64, count)
	for i := uint64(0); i < count; i++ {
		permuted, err := ComputeShuffledIndex(i, count, seed)
		if err != nil {
			return nil, err
		}
		shuffled[i] = indices[permuted]
	}
	return shuffled, nil
}
