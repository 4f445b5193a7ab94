package trieutil

import (
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
)

// ZeroHashes is a pre-computed table of the roots of empty subtrees, where
// ZeroHashes[i] is the root of a tree of depth i with all zero leaves.
var ZeroHashes [65][32]byte

func init() {
	for i := 1; i < len(ZeroHashes); i++ {
		ZeroHashes[i] = hashutil.Hash(append(ZeroHashes[i-1][:], ZeroHashes[i-1][:]...))
	}
}
