//go:build amd64 && !purego

// Package avx2 registers the wide-unrolled kernel picked on AVX2 machines.
package avx2

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Run:       run,
	})
}

// run advances four samples per iteration. The recurrence is serial, so
// the unrolling trims loop overhead rather than filling vector lanes.
func run(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	n := len(buf) &^ 3

	for i := 0; i < n; i += 4 {
		b := buf[i : i+4 : i+4]
		b[0], d0, d1 = c.Step(b[0], d0, d1)
		b[1], d0, d1 = c.Step(b[1], d0, d1)
		b[2], d0, d1 = c.Step(b[2], d0, d1)
		b[3], d0, d1 = c.Step(b[3], d0, d1)
	}

	for i := n; i < len(buf); i++ {
		buf[i], d0, d1 = c.Step(buf[i], d0, d1)
	}

	return d0, d1
}
