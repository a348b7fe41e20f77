package eq

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// ChannelChain filters one channel: low-cut stages, then the peak section,
// then high-cut stages. A bypassed group is skipped, but its coefficients
// keep being updated so re-enabling it is seamless.
type ChannelChain struct {
	lowCut  biquad.StageChain
	peak    biquad.Section
	highCut biquad.StageChain

	lowCutBypassed  bool
	peakBypassed    bool
	highCutBypassed bool
}

// NewChannelChain returns a chain that passes its input through until it
// is configured.
func NewChannelChain() ChannelChain {
	return ChannelChain{peak: biquad.Section{Coefficients: biquad.Identity()}}
}

func (c *ChannelChain) setPeak(coeffs biquad.Coefficients) {
	c.peak.Coefficients = coeffs
}

func (c *ChannelChain) setLowCut(cascade *design.Cascade, stages int) {
	c.lowCut.Configure(cascade.Active(), stages)
}

func (c *ChannelChain) setHighCut(cascade *design.Cascade, stages int) {
	c.highCut.Configure(cascade.Active(), stages)
}

// SetBypass enables or disables the three stage groups.
func (c *ChannelChain) SetBypass(lowCut, peak, highCut bool) {
	c.lowCutBypassed = lowCut
	c.peakBypassed = peak
	c.highCutBypassed = highCut
}

// Bypassed reports the bypass state of the low-cut, peak and high-cut
// groups.
func (c *ChannelChain) Bypassed() (lowCut, peak, highCut bool) {
	return c.lowCutBypassed, c.peakBypassed, c.highCutBypassed
}

// ProcessSample filters one sample.
func (c *ChannelChain) ProcessSample(x float64) float64 {
	if !c.lowCutBypassed {
		x = c.lowCut.ProcessSample(x)
	}

	if !c.peakBypassed {
		x = c.peak.ProcessSample(x)
	}

	if !c.highCutBypassed {
		x = c.highCut.ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in-place. Zero-alloc.
func (c *ChannelChain) ProcessBlock(buf []float64) {
	if !c.lowCutBypassed {
		c.lowCut.ProcessBlock(buf)
	}

	if !c.peakBypassed {
		c.peak.ProcessBlock(buf)
		c.peak.FlushDenormals()
	}

	if !c.highCutBypassed {
		c.highCut.ProcessBlock(buf)
	}
}

// Reset clears all filter state. Coefficients and bypass flags are kept.
func (c *ChannelChain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// LowCut returns the low-cut stages for inspection.
func (c *ChannelChain) LowCut() *biquad.StageChain { return &c.lowCut }

// Peak returns the peak section for inspection.
func (c *ChannelChain) Peak() *biquad.Section { return &c.peak }

// HighCut returns the high-cut stages for inspection.
func (c *ChannelChain) HighCut() *biquad.StageChain { return &c.highCut }

// Response evaluates the complex frequency response of the non-bypassed
// groups at freqHz.
func (c *ChannelChain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)

	if !c.lowCutBypassed {
		h *= c.lowCut.Response(freqHz, sampleRate)
	}

	if !c.peakBypassed {
		h *= c.peak.Response(freqHz, sampleRate)
	}

	if !c.highCutBypassed {
		h *= c.highCut.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the chain magnitude in dB at freqHz.
func (c *ChannelChain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	mag := cmplx.Abs(c.Response(freqHz, sampleRate))
	if mag == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(mag)
}
