// Package eqflags registers the equalizer's command-line flags and applies
// them to a parameter store.
package eqflags

import (
	"flag"
	"strconv"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// Values holds the parsed equalizer flags.
type Values struct {
	LowCut        float64
	LowCutSlope   string
	HighCut       float64
	HighCutSlope  string
	PeakFreq      float64
	PeakGain      float64
	PeakQ         float64
	BypassLowCut  bool
	BypassPeak    bool
	BypassHighCut bool
}

// Register defines the equalizer flags on fs with the parameter store
// defaults.
func Register(fs *flag.FlagSet) *Values {
	d := eq.DefaultSettings()
	v := &Values{}

	fs.Float64Var(&v.LowCut, "lowcut", d.LowCutFreq, "Low-cut frequency in Hz (20..20000)")
	fs.StringVar(&v.LowCutSlope, "lowcut-slope", d.LowCutSlope.String(), "Low-cut slope: 12, 24, 36 or 48 dB/oct")
	fs.Float64Var(&v.HighCut, "highcut", d.HighCutFreq, "High-cut frequency in Hz (20..20000)")
	fs.StringVar(&v.HighCutSlope, "highcut-slope", d.HighCutSlope.String(), "High-cut slope: 12, 24, 36 or 48 dB/oct")
	fs.Float64Var(&v.PeakFreq, "peak-freq", d.PeakFreq, "Peak center frequency in Hz (20..20000)")
	fs.Float64Var(&v.PeakGain, "peak-gain", d.PeakGainDB, "Peak gain in dB (-24..24)")
	fs.Float64Var(&v.PeakQ, "peak-q", d.PeakQuality, "Peak quality (0.1..10)")
	fs.BoolVar(&v.BypassLowCut, "bypass-lowcut", false, "Bypass the low-cut stages")
	fs.BoolVar(&v.BypassPeak, "bypass-peak", false, "Bypass the peak stage")
	fs.BoolVar(&v.BypassHighCut, "bypass-highcut", false, "Bypass the high-cut stages")

	return v
}

// Apply writes the flag values into p. Numeric values are clamped and
// snapped by the store; malformed slopes are rejected.
func (v *Values) Apply(p *eq.Params) error {
	numeric := []struct {
		id    string
		value float64
	}{
		{eq.ParamLowCutFreq, v.LowCut},
		{eq.ParamHighCutFreq, v.HighCut},
		{eq.ParamPeakFreq, v.PeakFreq},
		{eq.ParamPeakGain, v.PeakGain},
		{eq.ParamPeakQuality, v.PeakQ},
	}
	for _, n := range numeric {
		if err := p.Set(n.id, n.value); err != nil {
			return err
		}
	}

	text := []struct {
		id    string
		value string
	}{
		{eq.ParamLowCutSlope, v.LowCutSlope},
		{eq.ParamHighCutSlope, v.HighCutSlope},
		{eq.ParamLowCutBypassed, strconv.FormatBool(v.BypassLowCut)},
		{eq.ParamPeakBypassed, strconv.FormatBool(v.BypassPeak)},
		{eq.ParamHighCutBypassed, strconv.FormatBool(v.BypassHighCut)},
	}
	for _, t := range text {
		if err := p.SetText(t.id, t.value); err != nil {
			return err
		}
	}

	return nil
}
