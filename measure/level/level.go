// Package level accumulates block-wise signal levels: peak, RMS, DC offset
// and the number of samples beyond full scale.
package level

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/tphakala/simd/f64"
)

// Levels is the result of metering a signal. dB fields are -Inf for
// silence.
type Levels struct {
	Length        int
	DC            float64
	RMS           float64
	RMSDB         float64
	Peak          float64
	PeakDB        float64
	CrestFactorDB float64
	Clipped       int64
}

func silence() Levels {
	return Levels{
		RMSDB:  math.Inf(-1),
		PeakDB: math.Inf(-1),
	}
}

// Meter accumulates levels across blocks. Feeding a signal in any block
// partition yields the same result, up to rounding, as one call with the
// whole signal.
//
// The zero value is ready to use.
type Meter struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	clipped int64
}

// Update adds samples to the running levels. It does not allocate.
func (m *Meter) Update(samples []float64) {
	if len(samples) == 0 {
		return
	}

	m.n += len(samples)
	m.sum += f64.Sum(samples)
	m.sumSq += f64.DotProduct(samples, samples)

	for _, x := range samples {
		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
		}

		if a > 1 {
			m.clipped++
		}
	}
}

// Result returns the levels accumulated so far.
func (m *Meter) Result() Levels {
	if m.n == 0 {
		return silence()
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))

	crest := 0.0
	if rms > 0 {
		crest = core.LinearToDB(m.peak / rms)
	}

	return Levels{
		Length:        m.n,
		DC:            m.sum / float64(m.n),
		RMS:           rms,
		RMSDB:         core.LinearToDB(rms),
		Peak:          m.peak,
		PeakDB:        core.LinearToDB(m.peak),
		CrestFactorDB: crest,
		Clipped:       m.clipped,
	}
}

// Reset clears the accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Measure meters a whole signal in one call.
func Measure(signal []float64) Levels {
	var m Meter
	m.Update(signal)

	return m.Result()
}
