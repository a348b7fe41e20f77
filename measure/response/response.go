package response

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidFFTSize reports an FFT size that is not a power of two >= 2.
	ErrInvalidFFTSize = errors.New("response: fft size must be a power of two >= 2")

	// ErrInvalidFrequency reports a probe frequency outside (0, Nyquist).
	ErrInvalidFrequency = errors.New("response: frequency must be in (0, nyquist)")
)

// Processor filters a block in-place.
type Processor interface {
	ProcessBlock(buf []float64)
}

// ProcessorFunc adapts a function to Processor, e.g. to drive one channel
// of a stereo engine.
type ProcessorFunc func(buf []float64)

// ProcessBlock calls f(buf).
func (f ProcessorFunc) ProcessBlock(buf []float64) { f(buf) }

// Options control the tone probe.
type Options struct {
	// Settle is the number of samples discarded while the filter reaches
	// steady state.
	Settle int
	// Measure is the number of samples analyzed after settling.
	Measure int
	// Amplitude of the probe tone.
	Amplitude float64
}

// DefaultOptions suit filters whose transients decay within 4096 samples.
func DefaultOptions() Options {
	return Options{Settle: 4096, Measure: 4096, Amplitude: 0.5}
}

// ToneAmplitude returns the amplitude of the freqHz component of buf from
// a least-squares fit of a*cos(wn) + b*sin(wn). The fit is exact for a
// pure tone at freqHz over any length, not only whole periods.
func ToneAmplitude(buf []float64, freqHz, sampleRate float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	w := 2 * math.Pi * freqHz / sampleRate

	var scc, sss, scs, sxc, sxs float64
	for n, x := range buf {
		s, c := math.Sincos(w * float64(n))
		scc += c * c
		sss += s * s
		scs += c * s
		sxc += x * c
		sxs += x * s
	}

	det := scc*sss - scs*scs
	if det <= 1e-12*scc*sss {
		// The sine basis vanishes at DC, Nyquist and for a single sample.
		if scc == 0 {
			return 0
		}

		return math.Abs(sxc / scc)
	}

	a := (sxc*sss - sxs*scs) / det
	b := (sxs*scc - sxc*scs) / det

	return math.Hypot(a, b)
}

// ToneGain drives p with a sine at freqHz and returns the steady-state
// linear gain.
func ToneGain(p Processor, freqHz, sampleRate float64, opts Options) (float64, error) {
	if sampleRate <= 0 || freqHz <= 0 || freqHz >= sampleRate/2 {
		return 0, fmt.Errorf("%w: %v Hz at %v Hz", ErrInvalidFrequency, freqHz, sampleRate)
	}

	if opts.Amplitude <= 0 {
		opts.Amplitude = DefaultOptions().Amplitude
	}

	measure := max(opts.Measure, 1)
	settle := max(opts.Settle, 0)

	buf := make([]float64, settle+measure)
	w := 2 * math.Pi * freqHz / sampleRate
	for n := range buf {
		buf[n] = opts.Amplitude * math.Sin(w*float64(n))
	}

	p.ProcessBlock(buf)

	// The fitted amplitude does not depend on the tail's phase origin.
	return ToneAmplitude(buf[settle:], freqHz, sampleRate) / opts.Amplitude, nil
}

// ToneGainDB is ToneGain in decibels with DefaultOptions. Invalid
// frequencies yield NaN.
func ToneGainDB(p Processor, freqHz, sampleRate float64) float64 {
	g, err := ToneGain(p, freqHz, sampleRate, DefaultOptions())
	if err != nil {
		return math.NaN()
	}

	if g == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(g)
}

// ImpulseResponse feeds a unit impulse of length n through p and returns
// the output. p's state is advanced.
func ImpulseResponse(p Processor, n int) []float64 {
	if n <= 0 {
		return nil
	}

	buf := make([]float64, n)
	buf[0] = 1
	p.ProcessBlock(buf)

	return buf
}

type fftScratch struct {
	in, out []complex128
	re, im  []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &fftScratch{} },
}

func (s *fftScratch) resize(n int) {
	if cap(s.in) < n {
		s.in = make([]complex128, n)
		s.out = make([]complex128, n)
		s.re = make([]float64, n)
		s.im = make([]float64, n)
	}

	s.in, s.out = s.in[:n], s.out[:n]
	s.re, s.im = s.re[:n], s.im[:n]
}

// MagnitudeResponse zero-pads ir to fftSize, transforms it and returns
// |H[k]| for bins 0..fftSize/2. Bin k lies at k*sampleRate/fftSize Hz.
// ir is truncated to fftSize samples.
func MagnitudeResponse(ir []float64, fftSize int) ([]float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	s := scratchPool.Get().(*fftScratch)
	defer scratchPool.Put(s)

	s.resize(fftSize)
	clear(s.in)

	for i, v := range ir[:min(len(ir), fftSize)] {
		s.in[i] = complex(v, 0)
	}

	if err := plan.Forward(s.out, s.in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	for k := 0; k < bins; k++ {
		s.re[k] = real(s.out[k])
		s.im[k] = imag(s.out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, s.re[:bins], s.im[:bins])

	return mag, nil
}

// MagnitudeResponseDB is MagnitudeResponse in decibels. Zero bins map to
// -Inf.
func MagnitudeResponseDB(ir []float64, fftSize int) ([]float64, error) {
	mag, err := MagnitudeResponse(ir, fftSize)
	if err != nil {
		return nil, err
	}

	for k, m := range mag {
		if m == 0 {
			mag[k] = math.Inf(-1)
			continue
		}

		mag[k] = 20 * math.Log10(m)
	}

	return mag, nil
}

// BinFrequency returns the center frequency of bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// NearestBin returns the bin closest to freqHz.
func NearestBin(freqHz float64, fftSize int, sampleRate float64) int {
	return int(math.Round(freqHz * float64(fftSize) / sampleRate))
}
