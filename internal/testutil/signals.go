// Package testutil holds deterministic test signals and comparison helpers
// shared by the EQ packages.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*f*n/sr).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos. Out-of-range positions yield silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Ones returns n samples of 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}

// StereoSines returns independent left/right tone buffers, used to check
// that the two channels of an engine never bleed into each other.
func StereoSines(leftHz, rightHz, sampleRate, amplitude float64, length int) (left, right []float64) {
	return DeterministicSine(leftHz, sampleRate, amplitude, length),
		DeterministicSine(rightHz, sampleRate, amplitude, length)
}

// CyclesLength returns the smallest length >= minLen that holds a whole
// number of periods of freqHz at sampleRate, or minLen if none exists
// within 64 extra periods.
func CyclesLength(freqHz, sampleRate float64, minLen int) int {
	period := sampleRate / freqHz
	cycles := math.Ceil(float64(minLen) / period)

	for extra := 0.0; extra < 64; extra++ {
		n := (cycles + extra) * period
		if math.Abs(n-math.Round(n)) < 1e-9 {
			return int(math.Round(n))
		}
	}

	return minLen
}
