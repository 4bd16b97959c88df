package fft

import (
	"fmt"
	"math"
)

// size8Kernel computes 8-point transforms with a fully unrolled radix-2
// DIT network: two unrolled 4-point stages combined with hardcoded
// twiddle constants. No loops, no table lookups.
type size8Kernel struct{}

func (size8Kernel) SupportedSize() int {
	return 8
}

func (size8Kernel) SupportsSize(size int) bool {
	return size == 8
}

func (k size8Kernel) Transform(re, im []float64, forward bool) (*SpectralResult, error) {
	const n = 8

	if len(re) != len(im) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(re), len(im))
	}

	if len(re) != n {
		return nil, fmt.Errorf("%w: size-8 kernel got length %d", ErrInvalidLength, len(re))
	}

	var s [n]complex128
	for i := range s {
		s[i] = complex(re[i], im[i])
	}

	// W8^1 and W8^3 for the final combine stage; W8^2 is a plain
	// rotation by -i (conjugated for the inverse direction).
	const rt2 = math.Sqrt2 / 2

	w1 := complex(rt2, -rt2)
	w3 := complex(-rt2, -rt2)

	if !forward {
		w1 = complex(rt2, rt2)
		w3 = complex(-rt2, rt2)
	}

	// 4-point DFT of the even samples.
	a0 := s[0] + s[4]
	a1 := s[0] - s[4]
	a2 := s[2] + s[6]
	a3 := s[2] - s[6]

	e0 := a0 + a2
	e2 := a0 - a2

	var e1, e3 complex128
	if forward {
		e1 = a1 + complex(imag(a3), -real(a3))
		e3 = a1 + complex(-imag(a3), real(a3))
	} else {
		e1 = a1 + complex(-imag(a3), real(a3))
		e3 = a1 + complex(imag(a3), -real(a3))
	}

	// 4-point DFT of the odd samples.
	a0 = s[1] + s[5]
	a1 = s[1] - s[5]
	a2 = s[3] + s[7]
	a3 = s[3] - s[7]

	o0 := a0 + a2
	o2 := a0 - a2

	var o1, o3 complex128
	if forward {
		o1 = a1 + complex(imag(a3), -real(a3))
		o3 = a1 + complex(-imag(a3), real(a3))
	} else {
		o1 = a1 + complex(-imag(a3), real(a3))
		o3 = a1 + complex(imag(a3), -real(a3))
	}

	var x [n]complex128

	x[0] = e0 + o0
	x[4] = e0 - o0

	t := w1 * o1
	x[1] = e1 + t
	x[5] = e1 - t

	if forward {
		t = complex(imag(o2), -real(o2)) // -i * o2
	} else {
		t = complex(-imag(o2), real(o2)) // i * o2
	}

	x[2] = e2 + t
	x[6] = e2 - t

	t = w3 * o3
	x[3] = e3 + t
	x[7] = e3 - t

	// 1/√8, applied in both directions like the generic kernel.
	const scale = math.Sqrt2 / 4

	out := make([]float64, 2*n)
	for i := range x {
		out[2*i] = real(x[i]) * scale
		out[2*i+1] = imag(x[i]) * scale
	}

	return newResultOwned(out), nil
}
