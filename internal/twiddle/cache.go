// Package twiddle memoizes the trigonometric factors used by the
// Cooley-Tukey butterfly stages.
//
// Tables for the common power-of-two sizes (8 through 4096, doubling) are
// computed once at package initialization so the transform hot path never
// calls math.Cos or math.Sin. Tables for other sizes are computed on first
// use and kept forever; entries are never invalidated. Memory grows with
// the number of distinct sizes actually transformed, O(size) per size and
// direction, which is the intended trade-off rather than a leak.
package twiddle

import (
	"math"
	"sync"

	m "github.com/hedoluna/fft-go/internal/math"
)

// commonSizes are precomputed eagerly at startup.
var commonSizes = []int{8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

type tableKey struct {
	size    int
	forward bool
}

// Table holds the cos/sin values for one (size, direction) pair.
// Entry p corresponds to the angle -2π·p/size for forward transforms
// and +2π·p/size for inverse transforms.
type Table struct {
	cos []float64
	sin []float64
}

// Cos returns the cosine factor for twiddle index p.
func (t *Table) Cos(p int) float64 {
	return t.cos[p]
}

// Sin returns the sine factor for twiddle index p, with the direction
// sign already applied.
func (t *Table) Sin(p int) float64 {
	return t.sin[p]
}

// Size returns the transform size the table was built for.
func (t *Table) Size() int {
	return len(t.cos)
}

var tables sync.Map // map[tableKey]*Table

func init() {
	for _, n := range commonSizes {
		tables.Store(tableKey{size: n, forward: true}, computeTable(n, true))
		tables.Store(tableKey{size: n, forward: false}, computeTable(n, false))
	}
}

func computeTable(n int, forward bool) *Table {
	constant := -m.TwoPi
	if !forward {
		constant = m.TwoPi
	}

	t := &Table{
		cos: make([]float64, n),
		sin: make([]float64, n),
	}

	for p := 0; p < n; p++ {
		angle := constant * float64(p) / float64(n)
		t.cos[p] = math.Cos(angle)
		t.sin[p] = math.Sin(angle)
	}

	return t
}

// ForSize returns the twiddle table for the given size and direction,
// computing and memoizing it on first use. Concurrent first access for the
// same key may compute the table more than once; LoadOrStore guarantees all
// callers observe the same published table.
func ForSize(n int, forward bool) *Table {
	key := tableKey{size: n, forward: forward}
	if v, ok := tables.Load(key); ok {
		return v.(*Table)
	}

	actual, _ := tables.LoadOrStore(key, computeTable(n, forward))

	return actual.(*Table)
}

// Cos returns cos of the twiddle angle for index p of a size-n transform.
func Cos(n, p int, forward bool) float64 {
	return ForSize(n, forward).Cos(p)
}

// Sin returns sin of the twiddle angle for index p of a size-n transform,
// negated for forward transforms.
func Sin(n, p int, forward bool) float64 {
	return ForSize(n, forward).Sin(p)
}
