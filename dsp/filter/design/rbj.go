package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

var errInvalidSampleRate = fmt.Errorf("design: %w", core.ErrInvalidSampleRate)

// Lowpass designs an RBJ second-order lowpass at freq (Hz) with quality
// factor q. Degenerate input yields Identity.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * normalizedQ(q))

	b1 := 1 - cw

	return normalizeBiquad(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs an RBJ second-order highpass at freq (Hz) with quality
// factor q. Degenerate input yields Identity.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * normalizedQ(q))

	b0 := (1 + cw) / 2

	return normalizeBiquad(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

// Peak designs an RBJ peaking (bell) biquad centered at freq (Hz).
// linearGain is the amplitude gain at the center, 10^(dB/20); a gain of 1
// yields a flat response for any q.
//
// An invalid sample rate returns Identity and an error wrapping
// core.ErrInvalidSampleRate. A degenerate frequency or gain returns
// Identity with a nil error.
func Peak(sampleRate, freq, q, linearGain float64) (biquad.Coefficients, error) {
	if !validSampleRate(sampleRate) {
		return biquad.Identity(), errInvalidSampleRate
	}

	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || !(linearGain > 0) || math.IsInf(linearGain, 0) {
		return biquad.Identity(), nil
	}

	// A = 10^(dB/40) is the square root of the linear amplitude gain.
	a := math.Sqrt(linearGain)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * normalizedQ(q))

	return normalizeBiquad(
		1+alpha*a, -2*cw, 1-alpha*a,
		1+alpha/a, -2*cw, 1-alpha/a,
	), nil
}

// PeakDB is Peak with the center gain given in decibels.
func PeakDB(sampleRate, freq, q, gainDB float64) (biquad.Coefficients, error) {
	return Peak(sampleRate, freq, q, core.DBToLinear(gainDB))
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && core.IsFinite(sampleRate)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if !validSampleRate(sampleRate) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || !core.IsFinite(freq) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || !core.IsFinite(q) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !core.IsFinite(a0) {
		return biquad.Identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
