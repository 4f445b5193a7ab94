// Package hashutil includes all hash-function related helpers for the beacon chain.
package hashutil

import (
	"hash"
	"sync"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gohashtree"
)

var sha256Pool = sync.Pool{New: func() interface{} {
	return sha256.New()
}}

// Hash defines a function that returns the sha256 checksum of the data passed in.
// https://github.com/ethereum/consensus-specs/blob/v0.12.1/specs/phase0/beacon-chain.md#hash
func Hash(data []byte) [32]byte {
	h, ok := sha256Pool.Get().(hash.Hash)
	if !ok {
		h = sha256.New()
	}
	defer sha256Pool.Put(h)
	h.Reset()

	var b [32]byte

	// The hash interface never returns an error, for that reason
	// we are not handling the error below. For reference, it is
	// stated here https://golang.org/pkg/hash/#Hash

	// #nosec G104
	h.Write(data)
	h.Sum(b[:0])

	return b
}

// CustomSHA256Hasher returns a hash function that uses
// an enclosed hasher. This is not safe for concurrent
// use as the same hasher is being called throughout.
//
// Note: that this method is only more performant over
// hashutil.Hash if the callback is used more than 5 times.
func CustomSHA256Hasher() func([]byte) [32]byte {
	hasher, ok := sha256Pool.Get().(hash.Hash)
	if !ok {
		hasher = sha256.New()
	} else {
		hasher.Reset()
	}
	var hash [32]byte

	return func(data []byte) [32]byte {
		// The hash interface never returns an error, for that reason
		// we are not handling the error below. For reference, it is
		// stated here https://golang.org/pkg/hash/#Hash
		// #nosec G104
		hasher.Write(data)
		hasher.Sum(hash[:0])
		hasher.Reset()

		return hash
	}
}

// HashLayer hashes every consecutive pair of chunks, producing the parent layer of a
// merkle tree. The number of chunks must be even.
func HashLayer(chunks [][32]byte) ([][32]byte, error) {
	if len(chunks)%2 != 0 {
		return nil, errors.Errorf("odd number of chunks: %d", len(chunks))
	}
	digests := make([][32]byte, len(chunks)/2)
	if len(chunks) == 0 {
		return digests, nil
	}
	if err := gohashtree.Hash(digests, chunks); err != nil {
		return nil, err
	}
	return digests, nil
}
