package eq

import (
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// Plan holds the coefficients designed from one snapshot. Each part
// carries its own error so a failed part can be skipped while the others
// are applied.
type Plan struct {
	Peak    biquad.Coefficients
	PeakErr error

	LowCut    design.Cascade
	LowCutErr error

	HighCut    design.Cascade
	HighCutErr error
}

// Err returns the first part error, or nil.
func (p *Plan) Err() error {
	switch {
	case p.PeakErr != nil:
		return p.PeakErr
	case p.LowCutErr != nil:
		return p.LowCutErr
	default:
		return p.HighCutErr
	}
}

// Design computes the peak, low-cut and high-cut coefficients for s at
// sampleRate. The low cut is a Butterworth highpass and the high cut a
// Butterworth lowpass, both of the order implied by their slope. Design
// is pure and allocation-free.
func Design(s Settings, sampleRate float64) Plan {
	var p Plan

	p.Peak, p.PeakErr = design.Peak(sampleRate, s.PeakFreq, s.PeakQuality, core.DBToLinear(s.PeakGainDB))
	p.LowCut, p.LowCutErr = design.ButterworthHP(s.LowCutFreq, sampleRate, s.LowCutSlope.Order())
	p.HighCut, p.HighCutErr = design.ButterworthLP(s.HighCutFreq, sampleRate, s.HighCutSlope.Order())

	return p
}
