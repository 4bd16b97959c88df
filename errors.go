package fft

import "errors"

// Sentinel errors returned by transform, result, and factory operations.
var (
	// ErrInvalidLength is returned when a transform size is not a
	// power of two >= 2.
	ErrInvalidLength = errors.New("fft: length is not a power of two >= 2")

	// ErrLengthMismatch is returned when the real and imaginary slices
	// passed to a transform or result constructor differ in length.
	ErrLengthMismatch = errors.New("fft: real/imaginary length mismatch")

	// ErrOddInterleaved is returned when an interleaved slice with an
	// odd number of elements is passed to NewResultFromInterleaved.
	ErrOddInterleaved = errors.New("fft: interleaved length must be even")

	// ErrIndexOutOfRange is returned by SpectralResult accessors for
	// indices outside [0, Size()).
	ErrIndexOutOfRange = errors.New("fft: index out of range")

	// ErrNilSupplier is returned when a nil kernel supplier is passed
	// to Factory.Register.
	ErrNilSupplier = errors.New("fft: nil kernel supplier")
)
