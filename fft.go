// Package fft computes discrete Fourier transforms of power-of-two length
// complex signals using the Cooley-Tukey algorithm.
//
// The package-level Transform and TransformReal functions cover the common
// case: they pick the best kernel for the input size from the default
// Factory and return an immutable SpectralResult. Callers that need control
// over kernel selection build their own Factory and register or unregister
// implementations per size.
//
// Transforms are pure functions of their inputs and allocate their own
// working buffers, so independent calls may run concurrently from any
// number of goroutines. The shared twiddle and bit-reversal caches behind
// the kernels are safe for unbounded concurrent access.
//
// Forward and inverse transforms are both scaled by 1/√N, so a forward
// transform followed by an inverse one reproduces the input up to
// floating-point error (below 1e-9 relative for this class of algorithm).
package fft

import "sync"

// SizeAny is returned by SupportedSize for kernels that handle any
// power-of-two size rather than one specific size.
const SizeAny = -1

// Kernel is one concrete transform implementation. Kernels are cheap
// stateless values; a Factory hands out a fresh one per NewFFT call.
type Kernel interface {
	// Transform computes the forward or inverse DFT of the signal given
	// as equal-length real and imaginary slices. The inputs are never
	// mutated. It fails with a usage error before any computation when
	// the lengths mismatch or the size is unsupported.
	Transform(re, im []float64, forward bool) (*SpectralResult, error)

	// SupportedSize returns the specific size this kernel targets, or
	// SizeAny for size-generic kernels.
	SupportedSize() int

	// SupportsSize reports whether the kernel can transform signals of
	// the given length.
	SupportsSize(size int) bool
}

var defaultFactory = sync.OnceValue(func() *Factory {
	return NewFactory()
})

// Default returns the process-wide factory used by the package-level
// functions. It is created on first use with the built-in registrations.
func Default() *Factory {
	return defaultFactory()
}

// Transform computes the forward (forward=true) or inverse DFT of the
// given complex signal using the best registered kernel for its size.
func Transform(re, im []float64, forward bool) (*SpectralResult, error) {
	if len(re) != len(im) {
		return nil, ErrLengthMismatch
	}

	k, err := Default().NewFFT(len(re))
	if err != nil {
		return nil, err
	}

	return k.Transform(re, im, forward)
}

// TransformReal is Transform with the imaginary part assumed zero.
func TransformReal(re []float64, forward bool) (*SpectralResult, error) {
	return Transform(re, make([]float64, len(re)), forward)
}

// NewFFT returns a kernel for the given size from the default factory.
func NewFFT(size int) (Kernel, error) {
	return Default().NewFFT(size)
}
