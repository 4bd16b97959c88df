// Package cpu detects the CPU features relevant to kernel selection.
package cpu

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features describes CPU capabilities a kernel registration may require.
type Features struct {
	HasSSE2   bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	Architecture string
}

// DetectFeatures inspects the running CPU once per call.
// Detection itself is cheap; callers that care keep the result around.
func DetectFeatures() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// String returns a human-readable summary, e.g. "amd64 (sse2, avx2)".
func (f Features) String() string {
	var caps []string

	if f.HasSSE2 {
		caps = append(caps, "sse2")
	}

	if f.HasAVX2 {
		caps = append(caps, "avx2")
	}

	if f.HasAVX512 {
		caps = append(caps, "avx512")
	}

	if f.HasNEON {
		caps = append(caps, "neon")
	}

	if len(caps) == 0 {
		return f.Architecture + " (generic)"
	}

	return f.Architecture + " (" + strings.Join(caps, ", ") + ")"
}
