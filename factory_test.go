package fft

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markerKernel is a test double whose output identifies which registration
// produced it: every sample of the "transform" is the marker value.
type markerKernel struct {
	size   int
	marker float64
}

func (k markerKernel) SupportedSize() int {
	return k.size
}

func (k markerKernel) SupportsSize(size int) bool {
	return size == k.size
}

func (k markerKernel) Transform(re, im []float64, forward bool) (*SpectralResult, error) {
	if len(re) != len(im) {
		return nil, ErrLengthMismatch
	}

	out := make([]float64, 2*len(re))
	for i := range out {
		out[i] = k.marker
	}

	return newResultOwned(out), nil
}

func markerOf(t *testing.T, k Kernel, size int) float64 {
	t.Helper()

	res, err := k.Transform(make([]float64, size), make([]float64, size), true)
	require.NoError(t, err)

	v, err := res.RealAt(0)
	require.NoError(t, err)

	return v
}

func TestNewFFTValidatesSize(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	for _, size := range []int{-8, 0, 1, 3, 100} {
		k, err := f.NewFFT(size)
		assert.ErrorIs(t, err, ErrInvalidLength, "size %d", size)
		assert.Nil(t, k)
	}
}

func TestNewFFTNeverNilForValidSizes(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	for size := 2; size <= 1<<16; size *= 2 {
		k, err := f.NewFFT(size)
		require.NoError(t, err)
		require.NotNil(t, k)
		assert.True(t, k.SupportsSize(size))
	}
}

func TestBuiltinSize8Discovered(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	k, err := f.NewFFT(8)
	require.NoError(t, err)

	assert.Equal(t, 8, k.SupportedSize(), "size 8 should resolve to the unrolled kernel")
	assert.Contains(t, f.SupportedSizes(), 8)
}

func TestFactoryDeterminism(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	re, im := randomSignal(1024, 5)

	k1, err := f.NewFFT(1024)
	require.NoError(t, err)

	k2, err := f.NewFFT(1024)
	require.NoError(t, err)

	r1, err := k1.Transform(re, im, true)
	require.NoError(t, err)

	r2, err := k2.Transform(re, im, true)
	require.NoError(t, err)

	assert.True(t, r1.Equal(r2), "two kernels for the same size must agree bit-for-bit")
	assert.Equal(t, r1.Hash(), r2.Hash())
}

func TestPriorityRespected(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	const size = 64

	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 1}
	}, 10))

	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 2}
	}, 50))

	k, err := f.NewFFT(size)
	require.NoError(t, err)
	assert.Equal(t, 2.0, markerOf(t, k, size), "higher priority must win")

	// A later, even higher registration takes over.
	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 3}
	}, 99))

	k, err = f.NewFFT(size)
	require.NoError(t, err)
	assert.Equal(t, 3.0, markerOf(t, k, size))
}

func TestPriorityTiesKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	const size = 32

	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 1}
	}, 7))

	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 2}
	}, 7))

	k, err := f.NewFFT(size)
	require.NoError(t, err)
	assert.Equal(t, 1.0, markerOf(t, k, size), "stable sort keeps the first registrant ahead")
}

func TestUnregisterRevertsToFallback(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	const size = 16

	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 9}
	}, 100))

	assert.True(t, f.Unregister(size))
	assert.False(t, f.Unregister(size), "second unregister has nothing to remove")

	k, err := f.NewFFT(size)
	require.NoError(t, err)
	assert.Equal(t, SizeAny, k.SupportedSize(), "fallback should be the generic kernel")
}

func TestRegisterRejectsBadArguments(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	assert.ErrorIs(t, f.Register(16, nil, 1), ErrNilSupplier)
	assert.ErrorIs(t, f.Register(12, func() Kernel { return GenericFFT{} }, 1), ErrInvalidLength)
	assert.ErrorIs(t, f.Register(0, func() Kernel { return GenericFFT{} }, 1), ErrInvalidLength)
}

func TestFallbackMatchesGenericExactly(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	// No registration exists for 2048; the factory's kernel and a directly
	// constructed generic kernel must produce bit-identical results.
	re, im := randomSignal(2048, 77)

	k, err := f.NewFFT(2048)
	require.NoError(t, err)

	fromFactory, err := k.Transform(re, im, true)
	require.NoError(t, err)

	fromGeneric, err := NewGenericFFT().Transform(re, im, true)
	require.NoError(t, err)

	assert.True(t, fromFactory.Equal(fromGeneric))
}

func TestRegisteredKernelUnableToHandleSizeIsSkipped(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	const size = 128

	// Highest priority claims the size but rejects it at runtime; the
	// factory must skip it rather than hand out a broken kernel.
	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: 64, marker: 1} // wrong size on purpose
	}, 100))

	require.NoError(t, f.Register(size, func() Kernel {
		return markerKernel{size: size, marker: 2}
	}, 10))

	k, err := f.NewFFT(size)
	require.NoError(t, err)
	assert.Equal(t, 2.0, markerOf(t, k, size))
}

func TestSupportsSize(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	assert.True(t, f.SupportsSize(2))
	assert.True(t, f.SupportsSize(1<<20))
	assert.False(t, f.SupportsSize(0))
	assert.False(t, f.SupportsSize(1))
	assert.False(t, f.SupportsSize(24))
	assert.False(t, f.SupportsSize(-16))
}

func TestSupportedSizesSortedAndLive(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	require.NoError(t, f.Register(4096, func() Kernel {
		return markerKernel{size: 4096, marker: 1}
	}, 1))

	require.NoError(t, f.Register(64, func() Kernel {
		return markerKernel{size: 64, marker: 1}
	}, 1))

	sizes := f.SupportedSizes()
	assert.Equal(t, []int{8, 64, 4096}, sizes, "built-in size 8 plus the two manual ones, ascending")

	f.Unregister(64)
	assert.Equal(t, []int{8, 4096}, f.SupportedSizes())
}

func TestRegistrationCount(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	assert.Equal(t, 1, f.RegistrationCount(8), "built-in unrolled kernel")
	assert.Equal(t, 0, f.RegistrationCount(512), "fallback is not counted")

	require.NoError(t, f.Register(8, func() Kernel {
		return markerKernel{size: 8, marker: 1}
	}, 99))

	assert.Equal(t, 2, f.RegistrationCount(8))

	f.Unregister(8)
	assert.Equal(t, 0, f.RegistrationCount(8))
}

func TestInfo(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	info := f.Info(8)
	assert.Contains(t, info, "size 8")
	assert.Contains(t, info, "unrolled")
	assert.Contains(t, info, "fallback")

	assert.Contains(t, f.Info(24), "unsupported")

	// Sizes with no registrations still describe the fallback.
	assert.Contains(t, f.Info(512), "fallback")
}

func TestConcurrentRegistryUse(t *testing.T) {
	t.Parallel()

	f := NewFactory()

	var wg sync.WaitGroup

	// Mixed creates, registers, and unregisters across distinct sizes.
	for w := 0; w < 8; w++ {
		w := w
		wg.Add(1)

		go func() {
			defer wg.Done()

			size := 16 << uint(w%4) // 16, 32, 64, 128

			for i := 0; i < 100; i++ {
				switch i % 3 {
				case 0:
					err := f.Register(size, func() Kernel {
						return markerKernel{size: size, marker: float64(i)}
					}, i)
					if err != nil {
						t.Error(err)
						return
					}
				case 1:
					k, err := f.NewFFT(size)
					if err != nil || k == nil {
						t.Errorf("NewFFT(%d): %v", size, err)
						return
					}
				case 2:
					f.Unregister(size)
				}
			}
		}()
	}

	wg.Wait()
}

func TestDefaultFactoryIsShared(t *testing.T) {
	t.Parallel()

	assert.Same(t, Default(), Default())

	k, err := NewFFT(8)
	require.NoError(t, err)
	assert.Equal(t, 8, k.SupportedSize())
}

func ExampleFactory_Info() {
	f := NewFactory()

	fmt.Println(f.Info(24))
	// Output: size 24: unsupported (not a power of two >= 2)
}
