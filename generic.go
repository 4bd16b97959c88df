package fft

import (
	"fmt"
	"math"

	"github.com/hedoluna/fft-go/internal/bitrev"
	m "github.com/hedoluna/fft-go/internal/math"
	"github.com/hedoluna/fft-go/internal/twiddle"
)

// GenericFFT is the reference decimation-in-frequency Cooley-Tukey kernel.
// It handles any power-of-two size >= 2 in O(n log n) and is the universal
// fallback for sizes without a specialized registration.
//
// The butterfly stages read precomputed twiddle factors and the final
// reordering uses the cached bit-reversal permutation, so after the first
// transform of a given size the kernel performs no trigonometry.
type GenericFFT struct{}

// NewGenericFFT returns the generic kernel.
func NewGenericFFT() GenericFFT {
	return GenericFFT{}
}

// SupportedSize returns SizeAny: the kernel is not bound to one size.
func (GenericFFT) SupportedSize() int {
	return SizeAny
}

// SupportsSize reports whether size is a power of two >= 2.
func (GenericFFT) SupportsSize(size int) bool {
	return size >= 2 && m.IsPowerOf2(size)
}

// Transform computes the forward or inverse DFT, scaled by 1/√N.
func (g GenericFFT) Transform(re, im []float64, forward bool) (*SpectralResult, error) {
	if len(re) != len(im) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(re), len(im))
	}

	n := len(re)
	if !g.SupportsSize(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	nu := m.Log2(n)

	// Work on copies; caller-owned memory is never mutated.
	xre := append([]float64(nil), re...)
	xim := append([]float64(nil), im...)

	tw := twiddle.ForSize(n, forward)
	rev := bitrev.Table(n)

	// Butterfly phase: log2(n) stages of n/2 butterflies. The twiddle
	// index for positions (k, k+n2) is the bit reversal of k >> nu1.
	n2 := n / 2
	nu1 := nu - 1

	for stage := 0; stage < nu; stage++ {
		for base := 0; base < n; base += 2 * n2 {
			for k := base; k < base+n2; k++ {
				p := rev[k>>uint(nu1)]
				c := tw.Cos(p)
				s := tw.Sin(p)

				zr := xre[k+n2]
				zi := xim[k+n2]
				tr := zr*c - zi*s
				ti := zr*s + zi*c

				xre[k+n2] = xre[k] - tr
				xim[k+n2] = xim[k] - ti
				xre[k] += tr
				xim[k] += ti
			}
		}

		nu1--
		n2 /= 2
	}

	// Permutation phase: undo the decimation ordering.
	for k, r := range rev {
		if r > k {
			xre[k], xre[r] = xre[r], xre[k]
			xim[k], xim[r] = xim[r], xim[k]
		}
	}

	// Same 1/√N scaling in both directions keeps forward∘inverse an
	// identity up to rounding.
	scale := 1 / math.Sqrt(float64(n))

	out := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = xre[i] * scale
		out[2*i+1] = xim[i] * scale
	}

	return newResultOwned(out), nil
}
