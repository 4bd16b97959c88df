package fft

import (
	"math"
	"math/rand"
)

// Shared helpers for the transform and factory tests.

// naiveDFT computes the O(n²) reference DFT with the same 1/√N scaling
// the kernels use. Forward uses the negative exponent.
func naiveDFT(re, im []float64, forward bool) (outRe, outIm []float64) {
	n := len(re)
	outRe = make([]float64, n)
	outIm = make([]float64, n)

	sign := -1.0
	if !forward {
		sign = 1.0
	}

	for k := 0; k < n; k++ {
		var sumRe, sumIm float64

		for j := 0; j < n; j++ {
			angle := sign * 2 * math.Pi * float64(j) * float64(k) / float64(n)
			c := math.Cos(angle)
			s := math.Sin(angle)
			sumRe += re[j]*c - im[j]*s
			sumIm += re[j]*s + im[j]*c
		}

		scale := 1 / math.Sqrt(float64(n))
		outRe[k] = sumRe * scale
		outIm[k] = sumIm * scale
	}

	return outRe, outIm
}

// randomSignal returns deterministic pseudo-random real/imaginary slices
// in [-1, 1).
func randomSignal(n int, seed int64) (re, im []float64) {
	rnd := rand.New(rand.NewSource(seed))

	re = make([]float64, n)
	im = make([]float64, n)

	for i := 0; i < n; i++ {
		re[i] = 2*rnd.Float64() - 1
		im[i] = 2*rnd.Float64() - 1
	}

	return re, im
}

// maxError returns the largest absolute difference between the result's
// samples and the expected real/imaginary slices, or +Inf on a size
// mismatch. Safe to call from helper goroutines.
func maxError(got *SpectralResult, wantRe, wantIm []float64) float64 {
	if got.Size() != len(wantRe) {
		return math.Inf(1)
	}

	gotRe := got.Real()
	gotIm := got.Imaginary()

	var worst float64
	for i := range wantRe {
		if d := math.Abs(gotRe[i] - wantRe[i]); d > worst {
			worst = d
		}

		if d := math.Abs(gotIm[i] - wantIm[i]); d > worst {
			worst = d
		}
	}

	return worst
}

// signalNorm returns the max absolute sample value, used to turn absolute
// errors into relative ones.
func signalNorm(re, im []float64) float64 {
	var norm float64
	for i := range re {
		if v := math.Abs(re[i]); v > norm {
			norm = v
		}

		if v := math.Abs(im[i]); v > norm {
			norm = v
		}
	}

	if norm == 0 {
		return 1
	}

	return norm
}
