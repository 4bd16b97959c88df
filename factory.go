package fft

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hedoluna/fft-go/internal/cpu"
	m "github.com/hedoluna/fft-go/internal/math"
)

// Supplier produces a fresh kernel instance.
type Supplier func() Kernel

// Registration describes one kernel implementation known to a Factory.
type Registration struct {
	// Size the kernel targets. Must be a power of two >= 2.
	Size int

	// Priority orders implementations for the same size, highest first.
	// Ties keep registration order.
	Priority int

	// Supplier produces the kernel.
	Supplier Supplier

	// Description is diagnostic text for Info. Not parsed for behavior.
	Description string

	// Tags name performance characteristics ("unrolled", "radix-2", ...).
	// They must describe what the kernel actually does: a plain delegate
	// must not advertise itself as specialized.
	Tags []string

	// Available reports whether the kernel can run on the detected CPU.
	// nil means always available.
	Available func(cpu.Features) bool

	auto bool // discovered from the built-in table
}

// sizeSlot holds the priority-ordered registrations for one size.
// The regs slice is copy-on-write: writers publish a new slice under mu,
// readers grab the current one under RLock and iterate lock-free.
type sizeSlot struct {
	mu   sync.RWMutex
	regs []Registration
}

func (s *sizeSlot) snapshot() []Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.regs
}

// Factory resolves transform kernels by size.
//
// Per size it keeps a priority-ordered list of registrations, seeded from
// the built-in table at construction and extended or cleared at runtime.
// NewFFT returns the highest-priority kernel that accepts the requested
// size, falling back to GenericFFT when no registration matches, so a
// valid power-of-two size always yields a correct kernel.
//
// Each size has its own lock slot inside a sync.Map; registration or
// lookup for one size never blocks work on another.
type Factory struct {
	slots    sync.Map // map[int]*sizeSlot
	log      *zap.Logger
	features cpu.Features
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used to report discovery problems.
// The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(f *Factory) {
		f.log = log
	}
}

// NewFactory builds a factory and discovers the built-in kernel
// registrations. Discovery failures are logged and skipped; the generic
// fallback is always available regardless.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		log:      zap.NewNop(),
		features: cpu.DetectFeatures(),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.discover(builtinRegistrations())

	return f
}

func (f *Factory) slot(size int) *sizeSlot {
	if v, ok := f.slots.Load(size); ok {
		return v.(*sizeSlot)
	}

	actual, _ := f.slots.LoadOrStore(size, &sizeSlot{})

	return actual.(*sizeSlot)
}

func (f *Factory) add(reg Registration) {
	slot := f.slot(reg.Size)

	slot.mu.Lock()
	defer slot.mu.Unlock()

	next := make([]Registration, 0, len(slot.regs)+1)
	next = append(next, slot.regs...)
	next = append(next, reg)

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Priority > next[j].Priority
	})

	slot.regs = next
}

// NewFFT returns a kernel for the given transform size.
//
// The highest-priority registration whose kernel accepts the size wins;
// without one the generic kernel is returned. The error is non-nil only
// for sizes that are not a power of two >= 2.
func (f *Factory) NewFFT(size int) (Kernel, error) {
	if size < 2 || !m.IsPowerOf2(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}

	if v, ok := f.slots.Load(size); ok {
		for _, reg := range v.(*sizeSlot).snapshot() {
			k := reg.Supplier()
			if k != nil && k.SupportsSize(size) {
				return k, nil
			}
		}
	}

	return GenericFFT{}, nil
}

// Register adds an implementation for the given size with the given
// priority. Later NewFFT calls for that size prefer the highest priority.
func (f *Factory) Register(size int, supplier Supplier, priority int) error {
	if supplier == nil {
		return ErrNilSupplier
	}

	if size < 2 || !m.IsPowerOf2(size) {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}

	f.add(Registration{
		Size:        size,
		Priority:    priority,
		Supplier:    supplier,
		Description: "manually registered",
	})

	return nil
}

// Unregister removes every implementation registered for the given size,
// reverting it to the generic fallback. It reports whether any were
// removed.
func (f *Factory) Unregister(size int) bool {
	v, ok := f.slots.Load(size)
	if !ok {
		return false
	}

	slot := v.(*sizeSlot)

	slot.mu.Lock()
	defer slot.mu.Unlock()

	had := len(slot.regs) > 0
	slot.regs = nil

	return had
}

// SupportsSize reports whether NewFFT(size) will succeed. Every power of
// two >= 2 is supported through the generic fallback.
func (f *Factory) SupportsSize(size int) bool {
	return size >= 2 && m.IsPowerOf2(size)
}

// SupportedSizes returns the sizes with at least one explicit
// registration, ascending.
func (f *Factory) SupportedSizes() []int {
	var sizes []int

	f.slots.Range(func(key, value any) bool {
		if len(value.(*sizeSlot).snapshot()) > 0 {
			sizes = append(sizes, key.(int))
		}

		return true
	})

	sort.Ints(sizes)

	return sizes
}

// RegistrationCount returns the number of implementations registered
// for the given size. The generic fallback is not counted.
func (f *Factory) RegistrationCount(size int) int {
	v, ok := f.slots.Load(size)
	if !ok {
		return 0
	}

	return len(v.(*sizeSlot).snapshot())
}

// Info returns a human-readable description of the implementations
// registered for the given size. Diagnostic only; the format is not
// stable and must not be parsed.
func (f *Factory) Info(size int) string {
	if !f.SupportsSize(size) {
		return fmt.Sprintf("size %d: unsupported (not a power of two >= 2)", size)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "size %d [cpu: %s]\n", size, f.features)

	var regs []Registration
	if v, ok := f.slots.Load(size); ok {
		regs = v.(*sizeSlot).snapshot()
	}

	for i, reg := range regs {
		fmt.Fprintf(&b, "  %d. priority %d: %s", i+1, reg.Priority, reg.Description)

		if len(reg.Tags) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(reg.Tags, ", "))
		}

		if reg.auto {
			b.WriteString(" [auto]")
		}

		b.WriteByte('\n')
	}

	b.WriteString("  fallback: generic radix-2 kernel (any power of two)")

	return b.String()
}
