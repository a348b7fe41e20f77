// Package generic registers the portable block biquad kernel.
package generic

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Run:       run,
	})
}

// run processes sample pairs, then the odd tail.
func run(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	n := len(buf) &^ 1

	for i := 0; i < n; i += 2 {
		buf[i], d0, d1 = c.Step(buf[i], d0, d1)
		buf[i+1], d0, d1 = c.Step(buf[i+1], d0, d1)
	}

	if n < len(buf) {
		buf[n], d0, d1 = c.Step(buf[n], d0, d1)
	}

	return d0, d1
}
