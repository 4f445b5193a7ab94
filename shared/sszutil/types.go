// Package sszutil holds small SSZ helpers shared by the hand-written container codecs.
package sszutil

import (
	"encoding/binary"
	"fmt"

	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
)

// SSZUint64 is a uint64 type that satisfies the fast-ssz interface.
type SSZUint64 uint64

// SizeSSZ returns the size of the serialized representation.
func (s *SSZUint64) SizeSSZ() int {
	return 8
}

// MarshalSSZTo marshals the uint64 with the provided byte slice.
func (s *SSZUint64) MarshalSSZTo(dst []byte) ([]byte, error) {
	return ssz.MarshalUint64(dst, uint64(*s)), nil
}

// MarshalSSZ marshals uin64 into a serialized object.
func (s *SSZUint64) MarshalSSZ() ([]byte, error) {
	return s.MarshalSSZTo(make([]byte, 0, 8))
}

// UnmarshalSSZ deserializes the provided bytes buffer into the uint64 object.
func (s *SSZUint64) UnmarshalSSZ(buf []byte) error {
	if len(buf) != s.SizeSSZ() {
		return fmt.Errorf("expected buffer with length of %d but received length %d", s.SizeSSZ(), len(buf))
	}
	*s = SSZUint64(ssz.UnmarshallUint64(buf))
	return nil
}

// HashTreeRoot returns calculated hash root.
func (s *SSZUint64) HashTreeRoot() ([32]byte, error) {
	var root [32]byte
	binary.LittleEndian.PutUint64(root[:8], uint64(*s))
	return root, nil
}

// HashTreeRootWith hashes the uint64 object with the given hasher.
func (s *SSZUint64) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(*s))
	hh.Merkleize(indx)
	return nil
}

// SSZBytes is a bytes slice that satisfies the fast-ssz interface.
type SSZBytes []byte

// HashTreeRoot hashes the SSZBytes object.
func (b *SSZBytes) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith hashes the SSZBytes object with a hasher.
func (b *SSZBytes) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(*b)
	hh.Merkleize(indx)
	return nil
}

// ErrVectorLength reports a fixed-length field of the wrong size.
func ErrVectorLength(field string, got, want int) error {
	return errors.Wrapf(ssz.ErrBytesLength, "%s has length %d, want %d", field, got, want)
}

// ErrListTooBig reports a list field above its limit.
func ErrListTooBig(field string, got int, limit uint64) error {
	return errors.Wrapf(ssz.ErrListTooBig, "%s has %d items, limit %d", field, got, limit)
}

// MarshalFixedBytes appends b to dst after checking it has exactly size bytes.
func MarshalFixedBytes(dst, b []byte, size int, field string) ([]byte, error) {
	if len(b) != size {
		return nil, ErrVectorLength(field, len(b), size)
	}
	return append(dst, b...), nil
}

// CopyBytes returns an owned copy of buf so decoded objects never alias the input.
func CopyBytes(buf []byte) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

// MarshalRoots appends a sequence of 32 byte roots.
func MarshalRoots(dst []byte, roots [][]byte, field string) ([]byte, error) {
	for _, r := range roots {
		if len(r) != 32 {
			return nil, ErrVectorLength(field, len(r), 32)
		}
		dst = append(dst, r...)
	}
	return dst, nil
}

// UnmarshalRoots splits buf into 32 byte roots.
func UnmarshalRoots(buf []byte) ([][]byte, error) {
	if len(buf)%32 != 0 {
		return nil, ssz.ErrSize
	}
	roots := make([][]byte, len(buf)/32)
	for i := range roots {
		roots[i] = CopyBytes(buf[i*32 : (i+1)*32])
	}
	return roots, nil
}

// MarshalUint64s appends a sequence of little-endian uint64 values.
func MarshalUint64s(dst []byte, vals []uint64) []byte {
	for _, v := range vals {
		dst = ssz.MarshalUint64(dst, v)
	}
	return dst
}

// UnmarshalUint64s decodes a sequence of little-endian uint64 values.
func UnmarshalUint64s(buf []byte) ([]uint64, error) {
	if len(buf)%8 != 0 {
		return nil, ssz.ErrSize
	}
	vals := make([]uint64, len(buf)/8)
	for i := range vals {
		vals[i] = ssz.UnmarshallUint64(buf[i*8 : (i+1)*8])
	}
	return vals, nil
}

// PutRootVector merkleizes a vector of 32 byte roots of exactly length items.
func PutRootVector(hh *ssz.Hasher, roots [][]byte, length int, field string) error {
	if len(roots) != length {
		return ErrVectorLength(field, len(roots), length)
	}
	subIndx := hh.Index()
	for _, r := range roots {
		if len(r) != 32 {
			return ErrVectorLength(field, len(r), 32)
		}
		hh.Append(r)
	}
	hh.Merkleize(subIndx)
	return nil
}

// PutRootList merkleizes a list of 32 byte roots and mixes in its length.
func PutRootList(hh *ssz.Hasher, roots [][]byte, limit uint64, field string) error {
	if uint64(len(roots)) > limit {
		return ErrListTooBig(field, len(roots), limit)
	}
	subIndx := hh.Index()
	for _, r := range roots {
		if len(r) != 32 {
			return ErrVectorLength(field, len(r), 32)
		}
		hh.Append(r)
	}
	numItems := uint64(len(roots))
	hh.MerkleizeWithMixin(subIndx, numItems, limit)
	return nil
}

// PutUint64List merkleizes a packed list of uint64 values and mixes in its length.
func PutUint64List(hh *ssz.Hasher, vals []uint64, limit uint64, field string) error {
	if uint64(len(vals)) > limit {
		return ErrListTooBig(field, len(vals), limit)
	}
	subIndx := hh.Index()
	for _, v := range vals {
		hh.AppendUint64(v)
	}
	hh.FillUpTo32()
	numItems := uint64(len(vals))
	hh.MerkleizeWithMixin(subIndx, numItems, ssz.CalculateLimit(limit, numItems, 8))
	return nil
}

// PutUint64Vector merkleizes a packed vector of uint64 values of exactly length items.
func PutUint64Vector(hh *ssz.Hasher, vals []uint64, length int, field string) error {
	if len(vals) != length {
		return ErrVectorLength(field, len(vals), length)
	}
	subIndx := hh.Index()
	for _, v := range vals {
		hh.AppendUint64(v)
	}
	hh.FillUpTo32()
	hh.Merkleize(subIndx)
	return nil
}

// ReadOffsets reads n consecutive 4 byte offsets from buf and checks they are
// non-decreasing, start at expectedFirst and stay within size.
func ReadOffsets(buf []byte, n int, expectedFirst, size uint64) ([]uint64, error) {
	if len(buf) < 4*n {
		return nil, ssz.ErrSize
	}
	offsets := make([]uint64, n+1)
	for i := 0; i < n; i++ {
		offsets[i] = ssz.ReadOffset(buf[i*4 : (i+1)*4])
		if i == 0 && offsets[i] != expectedFirst {
			return nil, ssz.ErrOffset
		}
		if offsets[i] > size || (i > 0 && offsets[i] < offsets[i-1]) {
			return nil, ssz.ErrOffset
		}
	}
	offsets[n] = size
	return offsets, nil
}

// DecodeDynamicList splits buf holding offset-prefixed variable size elements and
// calls fn with each element's bytes.
func DecodeDynamicList(buf []byte, limit uint64, fn func(i int, b []byte) error) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) < 4 {
		return 0, ssz.ErrSize
	}
	first := ssz.ReadOffset(buf[0:4])
	if first%4 != 0 || first == 0 || first > uint64(len(buf)) {
		return 0, ssz.ErrOffset
	}
	num := int(first / 4)
	if uint64(num) > limit {
		return 0, ssz.ErrListTooBig
	}
	offsets, err := ReadOffsets(buf, num, first, uint64(len(buf)))
	if err != nil {
		return 0, err
	}
	for i := 0; i < num; i++ {
		if err := fn(i, buf[offsets[i]:offsets[i+1]]); err != nil {
			return 0, err
		}
	}
	return num, nil
}

// DecodeFixedList splits buf into elements of itemSize bytes and calls fn with each.
func DecodeFixedList(buf []byte, itemSize int, limit uint64, fn func(i int, b []byte) error) (int, error) {
	if len(buf)%itemSize != 0 {
		return 0, ssz.ErrSize
	}
	// DivideInt2 only fails on a count above limit once the size is a multiple of itemSize.
	num, err := ssz.DivideInt2(len(buf), itemSize, int(limit))
	if err != nil {
		return 0, ssz.ErrListTooBig
	}
	for i := 0; i < num; i++ {
		if err := fn(i, buf[i*itemSize:(i+1)*itemSize]); err != nil {
			return 0, err
		}
	}
	return num, nil
}
