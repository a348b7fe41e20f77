package design

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// MaxOrder is the highest Butterworth order a Cascade can hold.
const MaxOrder = 2 * biquad.MaxStages

// ErrInvalidOrder reports a Butterworth order that is odd, non-positive
// or above MaxOrder.
var ErrInvalidOrder = errors.New("design: butterworth order must be even and in [2, 8]")

// Cascade is a fixed-capacity list of biquad sections. Only the first Len
// entries are meaningful.
type Cascade struct {
	Sections [biquad.MaxStages]biquad.Coefficients
	Len      int
}

// Active returns the meaningful sections. The slice aliases c.
func (c *Cascade) Active() []biquad.Coefficients {
	return c.Sections[:c.Len]
}

// ButterworthHP designs an order-N Butterworth highpass as N/2 biquad
// sections ordered lowest-Q first.
func ButterworthHP(freq, sampleRate float64, order int) (Cascade, error) {
	return butterworth(freq, sampleRate, order, Highpass)
}

// ButterworthLP designs an order-N Butterworth lowpass as N/2 biquad
// sections ordered lowest-Q first.
func ButterworthLP(freq, sampleRate float64, order int) (Cascade, error) {
	return butterworth(freq, sampleRate, order, Lowpass)
}

func butterworth(freq, sampleRate float64, order int, section func(freq, q, sampleRate float64) biquad.Coefficients) (Cascade, error) {
	var c Cascade

	if order <= 0 || order > MaxOrder || order%2 != 0 {
		return c, ErrInvalidOrder
	}

	if !validSampleRate(sampleRate) {
		return c, errInvalidSampleRate
	}

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		// Degenerate cutoffs fall through to Identity inside section.
		c.Sections[c.Len] = section(freq, ButterworthQ(order, i), sampleRate)
		c.Len++
	}

	return c, nil
}

// ButterworthQ returns the quality factor of pole pair index of an
// order-N Butterworth filter: 1 / (2 sin((2k+1)pi / 2N)).
func ButterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}
