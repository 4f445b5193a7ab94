// Package cache holds process-wide caches of derived data. Entries are
// immutable once inserted, so a cache hit can never change a result.
package cache

import (
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
)

var (
	// maxShuffledListSize defines the max number of shuffled lists the cache can hold.
	maxShuffledListSize = 16

	// Metrics.
	shuffledIndicesCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuffled_validators_cache_miss",
		Help: "The number of shuffled validators requests that aren't present in the cache.",
	})
	shuffledIndicesCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuffled_validators_cache_hit",
		Help: "The number of shuffled validators requests that are present in the cache.",
	})
)

// ShuffledIndicesCache maps a (seed, rounds, active indices) key to the shuffled permutation
// of those indices.
type ShuffledIndicesCache struct {
	lru *lru.Cache
}

// NewShuffledIndicesCache creates a new shuffled validators cache for storing/accessing shuffled validator indices.
func NewShuffledIndicesCache() *ShuffledIndicesCache {
	c, err := lru.New(maxShuffledListSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &ShuffledIndicesCache{lru: c}
}

// ShuffleKey derives the cache key of a shuffling from its seed, the number of
// shuffle rounds and the active indices it permutes.
func ShuffleKey(seed [32]byte, rounds uint64, indices []uint64) [32]byte {
	buf := make([]byte, 40+8*len(indices))
	copy(buf, seed[:])
	binary.LittleEndian.PutUint64(buf[32:], rounds)
	for i, idx := range indices {
		binary.LittleEndian.PutUint64(buf[40+8*i:], idx)
	}
	return hashutil.Hash(buf)
}

// ShuffledIndices fetches the shuffled list stored under key. It returns nil when
// the key is not present.
func (c *ShuffledIndicesCache) ShuffledIndices(key [32]byte) []uint64 {
	item, ok := c.lru.Get(key)
	if !ok {
		shuffledIndicesCacheMiss.Inc()
		return nil
	}
	shuffledIndicesCacheHit.Inc()
	return item.([]uint64)
}

// AddShuffledIndices adds a shuffled list to the cache. Callers must not mutate
// the list afterwards.
func (c *ShuffledIndicesCache) AddShuffledIndices(key [32]byte, shuffled []uint64) {
	c.lru.Add(key, shuffled)
}

// Len returns the number of cached shufflings.
func (c *ShuffledIndicesCache) Len() int {
	return c.lru.Len()
}
