// Package bitrev memoizes bit-reversal permutation tables by transform size.
//
// The common power-of-two sizes (8 through 4096, doubling) are precomputed
// at package initialization; other sizes are computed on first use and kept
// forever. Entries are never invalidated: the bit reversal of an index for
// a fixed size never changes.
package bitrev

import (
	"sync"

	m "github.com/hedoluna/fft-go/internal/math"
)

var commonSizes = []int{8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

var tables sync.Map // map[int][]int

func init() {
	for _, n := range commonSizes {
		tables.Store(n, m.ComputeBitReversalIndices(n))
	}
}

// Table returns the bit-reversal permutation for a size-n transform:
// entry k holds the reversal of k over log2(n) bits. The returned slice is
// shared and must not be mutated by callers.
func Table(n int) []int {
	if v, ok := tables.Load(n); ok {
		return v.([]int)
	}

	actual, _ := tables.LoadOrStore(n, m.ComputeBitReversalIndices(n))

	return actual.([]int)
}
