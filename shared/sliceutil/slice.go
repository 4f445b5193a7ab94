// Package sliceutil implements set operations over validator index lists.
package sliceutil

// IntersectionUint64 returns the elements of b that also appear in a, keeping
// the order of b.
func IntersectionUint64(a []uint64, b []uint64) []uint64 {
	set := make([]uint64, 0)
	m := make(map[uint64]bool, len(a))
	for i := 0; i < len(a); i++ {
		m[a[i]] = true
	}
	for i := 0; i < len(b); i++ {
		if m[b[i]] {
			set = append(set, b[i])
		}
	}
	return set
}

// IsInUint64 returns true if a is in b.
func IsInUint64(a uint64, b []uint64) bool {
	for _, v := range b {
		if a == v {
			return true
		}
	}
	return false
}

// IsSortedUniqueUint64 returns true when every element is strictly greater than the one before it.
func IsSortedUniqueUint64(a []uint64) bool {
	for i := 1; i < len(a); i++ {
		if a[i-1] >= a[i] {
			return false
		}
	}
	return true
}
