// Package registry selects the block biquad kernel for the running CPU.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Step runs x through one Direct Form II Transposed section with state
// (d0, d1) and returns the output and the next state. Kernels built on
// Step match Section.ProcessSample bit for bit.
func (c Coefficients) Step(x, d0, d1 float64) (y, nextD0, nextD1 float64) {
	y = c.B0*x + d0

	return y, c.B1*x - c.A1*y + d1, c.B2*x - c.A2*y
}

// KernelFn filters buf in-place with one Direct Form II Transposed section
// starting from delay-line state (d0, d1) and returns the updated state.
// Implementations must produce the same result as the per-sample recurrence.
type KernelFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Kernel is one registered block implementation.
type Kernel struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Run       KernelFn
}

// Registry keeps kernels ordered by descending priority.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Global is the registry populated by the arch packages' init functions.
var Global = &Registry{}

// Register inserts k, keeping the list ordered by descending priority.
// Kernels of equal priority keep their registration order.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := len(r.kernels)
	for i > 0 && r.kernels[i-1].Priority < k.Priority {
		i--
	}

	r.kernels = append(r.kernels, Kernel{})
	copy(r.kernels[i+1:], r.kernels[i:])
	r.kernels[i] = k
}

// Select returns the highest-priority kernel supported by features, or nil.
func (r *Registry) Select(features cpu.Features) *Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.kernels {
		if cpu.Supports(features, r.kernels[i].SIMDLevel) {
			k := r.kernels[i]
			return &k
		}
	}

	return nil
}

// Names lists registered kernel names in selection order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.kernels))
	for i := range r.kernels {
		names[i] = r.kernels[i].Name
	}
	return names
}
