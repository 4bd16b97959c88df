package fft

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// SpectralResult is the immutable complex-valued output of one transform.
//
// The result owns a private copy of its samples: constructors copy their
// inputs and every accessor returns either a scalar or a fresh slice, so a
// transform's output can never be mutated after the fact. Derived
// quantities (magnitude, phase, power) are computed per call, never cached.
type SpectralResult struct {
	data []float64 // interleaved (re, im) pairs; never escapes
}

// NewResult builds a result from separate real and imaginary slices of
// equal length. Both slices are copied.
func NewResult(re, im []float64) (*SpectralResult, error) {
	if len(re) != len(im) {
		return nil, ErrLengthMismatch
	}

	data := make([]float64, 2*len(re))
	for i := range re {
		data[2*i] = re[i]
		data[2*i+1] = im[i]
	}

	return &SpectralResult{data: data}, nil
}

// NewResultFromInterleaved builds a result from interleaved (re, im) pairs.
// The slice length must be even; it is copied.
func NewResultFromInterleaved(interleaved []float64) (*SpectralResult, error) {
	if len(interleaved)%2 != 0 {
		return nil, ErrOddInterleaved
	}

	return &SpectralResult{data: append([]float64(nil), interleaved...)}, nil
}

// newResultOwned wraps an interleaved buffer the caller promises never to
// touch again. Kernels use it to hand over their freshly built output
// without a second copy.
func newResultOwned(interleaved []float64) *SpectralResult {
	return &SpectralResult{data: interleaved}
}

// Size returns the number of complex samples.
func (r *SpectralResult) Size() int {
	return len(r.data) / 2
}

func (r *SpectralResult) check(i int) error {
	if i < 0 || i >= r.Size() {
		return fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, r.Size())
	}

	return nil
}

// RealAt returns the real part of sample i.
func (r *SpectralResult) RealAt(i int) (float64, error) {
	if err := r.check(i); err != nil {
		return 0, err
	}

	return r.data[2*i], nil
}

// ImaginaryAt returns the imaginary part of sample i.
func (r *SpectralResult) ImaginaryAt(i int) (float64, error) {
	if err := r.check(i); err != nil {
		return 0, err
	}

	return r.data[2*i+1], nil
}

// MagnitudeAt returns sqrt(re²+im²) of sample i.
func (r *SpectralResult) MagnitudeAt(i int) (float64, error) {
	if err := r.check(i); err != nil {
		return 0, err
	}

	return math.Hypot(r.data[2*i], r.data[2*i+1]), nil
}

// PhaseAt returns atan2(im, re) of sample i.
func (r *SpectralResult) PhaseAt(i int) (float64, error) {
	if err := r.check(i); err != nil {
		return 0, err
	}

	return math.Atan2(r.data[2*i+1], r.data[2*i]), nil
}

// PowerAt returns re²+im² of sample i.
func (r *SpectralResult) PowerAt(i int) (float64, error) {
	if err := r.check(i); err != nil {
		return 0, err
	}

	re, im := r.data[2*i], r.data[2*i+1]

	return re*re + im*im, nil
}

// Real returns a copy of the real parts.
func (r *SpectralResult) Real() []float64 {
	out := make([]float64, r.Size())
	for i := range out {
		out[i] = r.data[2*i]
	}

	return out
}

// Imaginary returns a copy of the imaginary parts.
func (r *SpectralResult) Imaginary() []float64 {
	out := make([]float64, r.Size())
	for i := range out {
		out[i] = r.data[2*i+1]
	}

	return out
}

// Interleaved returns a copy of the interleaved (re, im) pairs.
func (r *SpectralResult) Interleaved() []float64 {
	return append([]float64(nil), r.data...)
}

// Magnitudes returns the magnitude of every sample.
func (r *SpectralResult) Magnitudes() []float64 {
	out := make([]float64, r.Size())
	for i := range out {
		out[i] = math.Hypot(r.data[2*i], r.data[2*i+1])
	}

	return out
}

// Phases returns the phase of every sample.
func (r *SpectralResult) Phases() []float64 {
	out := make([]float64, r.Size())
	for i := range out {
		out[i] = math.Atan2(r.data[2*i+1], r.data[2*i])
	}

	return out
}

// Powers returns the squared magnitude of every sample.
func (r *SpectralResult) Powers() []float64 {
	out := make([]float64, r.Size())
	for i := range out {
		re, im := r.data[2*i], r.data[2*i+1]
		out[i] = re*re + im*im
	}

	return out
}

// Equal reports whether both results hold bit-identical samples.
// Comparison is over the float bit patterns, so NaN samples compare equal
// to themselves and +0 differs from -0, consistent with Hash.
func (r *SpectralResult) Equal(other *SpectralResult) bool {
	if other == nil || len(r.data) != len(other.data) {
		return false
	}

	for i := range r.data {
		if math.Float64bits(r.data[i]) != math.Float64bits(other.data[i]) {
			return false
		}
	}

	return true
}

// Hash returns an FNV-1a hash of the interleaved samples.
// Two results that are Equal always hash identically.
func (r *SpectralResult) Hash() uint64 {
	h := fnv.New64a()

	var buf [8]byte
	for _, v := range r.data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	return h.Sum64()
}

// String returns a short diagnostic description.
func (r *SpectralResult) String() string {
	return fmt.Sprintf("SpectralResult(size=%d)", r.Size())
}
