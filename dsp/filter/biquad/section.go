//nolint:funcorder
package biquad

import (
	"sync"

	"github.com/cwbudde/algo-eq/dsp/core"
	archregistry "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns pass-through coefficients (H(z) = 1).
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// IsIdentity reports whether c passes its input through unchanged.
func (c Coefficients) IsIdentity() bool {
	return c == Identity()
}

// IsStable reports whether both poles lie strictly inside the unit circle
// and every coefficient is finite. It uses the stability triangle
// |A2| < 1, |A1| < 1 + A2 and therefore never allocates.
func (c Coefficients) IsStable() bool {
	if !core.IsFinite(c.B0) || !core.IsFinite(c.B1) || !core.IsFinite(c.B2) ||
		!core.IsFinite(c.A1) || !core.IsFinite(c.A2) {
		return false
	}

	if c.A2 >= 1 || c.A2 <= -1 {
		return false
	}

	a1 := c.A1
	if a1 < 0 {
		a1 = -a1
	}

	return a1 < 1+c.A2
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	kernel         archregistry.KernelFn
	kernelName     string
	kernelInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	kernelInitOnce.Do(initKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	s.d0, s.d1 = kernel(coeffs, s.d0, s.d1, buf)
}

func initKernel() {
	k := archregistry.Global.Select(cpu.DetectFeatures())
	if k == nil {
		panic("biquad: no block kernel registered (missing generic fallback?)")
	}

	if k.Run == nil {
		panic("biquad: selected kernel " + k.Name + " has no Run function")
	}

	kernel = k.Run
	kernelName = k.Name
}

// KernelName returns the name of the block kernel selected for this CPU.
func KernelName() string {
	kernelInitOnce.Do(initKernel)
	return kernelName
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}

// FlushDenormals zeroes delay-line values that have decayed into the
// subnormal range.
func (s *Section) FlushDenormals() {
	s.d0 = core.FlushDenormals(s.d0)
	s.d1 = core.FlushDenormals(s.d1)
}
