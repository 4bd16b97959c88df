package fft

import (
	"fmt"

	"go.uber.org/zap"
)

// builtinRegistrations lists the kernels shipped with the library.
// The factory discovers implementations from this table instead of any
// runtime scanning; adding a kernel means adding an entry here.
//
// Only genuinely specialized kernels are listed. Sizes without an entry
// fall back to GenericFFT transparently, which is correct for every power
// of two, so there is no point registering delegates that would only
// pretend to be specialized.
func builtinRegistrations() []Registration {
	return []Registration{
		{
			Size:        8,
			Priority:    20,
			Supplier:    func() Kernel { return size8Kernel{} },
			Description: "size-8 radix-2 DIT, fully unrolled",
			Tags:        []string{"unrolled", "radix-2"},
		},
	}
}

func (f *Factory) discover(regs []Registration) {
	for _, reg := range regs {
		reg.auto = true

		if err := f.tryRegister(reg); err != nil {
			f.log.Warn("kernel discovery failed",
				zap.Int("size", reg.Size),
				zap.String("description", reg.Description),
				zap.Error(err))
		}
	}
}

// tryRegister validates one discovered registration. A panicking supplier
// or predicate is reported as an error instead of tearing down factory
// construction; the factory keeps whatever it discovered so far.
func (f *Factory) tryRegister(reg Registration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fft: discovery panic: %v", r)
		}
	}()

	if reg.Supplier == nil {
		return ErrNilSupplier
	}

	if reg.Available != nil && !reg.Available(f.features) {
		f.log.Debug("kernel unavailable on this cpu",
			zap.Int("size", reg.Size),
			zap.String("description", reg.Description),
			zap.String("cpu", f.features.String()))

		return nil
	}

	k := reg.Supplier()
	if k == nil {
		return fmt.Errorf("fft: supplier for size %d returned nil", reg.Size)
	}

	if !k.SupportsSize(reg.Size) {
		return fmt.Errorf("fft: kernel %q rejects its declared size %d", reg.Description, reg.Size)
	}

	f.add(reg)

	return nil
}
