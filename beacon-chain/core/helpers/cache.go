package helpers

import "github.com/prysmaticlabs/transition-vectors/beacon-chain/cache"

// ClearShuffledValidatorCache clears the shuffled indices cache from scratch.
func ClearShuffledValidatorCache() {
	shuffledIndicesCache = cache.NewShuffledIndicesCache()
}

// ClearCache clears every helpers cache from scratch.
func ClearCache() {
	ClearShuffledValidatorCache()
}
