package biquad

import "github.com/cwbudde/algo-eq/dsp/core"

// MaxStages is the slot capacity of a StageChain. Four second-order
// sections realize up to an 8th-order (48 dB/oct) Butterworth cut.
const MaxStages = 4

// StageChain is a fixed-capacity cascade of biquad sections. The first
// ActiveCount slots are processed in slot order; the remaining slots are
// bypassed and never executed.
//
// The zero value has no active slots and passes its input through.
type StageChain struct {
	stages [MaxStages]Section
	active int
}

// Configure writes coeffs[i] into slot i for every i in [0, activeCount),
// marks exactly those slots active and bypasses the rest.
//
// activeCount must be in [1, MaxStages]. Out-of-range values panic in
// eqdebug builds and are clamped otherwise; missing coefficient sets are
// filled with Identity.
//
// Slots that were already active keep their delay-line state so a
// frequency or slope change does not click. Slots that become active start
// from zero state.
func (c *StageChain) Configure(coeffs []Coefficients, activeCount int) {
	if activeCount < 1 || activeCount > MaxStages {
		assertf("biquad: activeCount %d outside [1, %d]", activeCount, MaxStages)
		activeCount = core.ClampInt(activeCount, 1, MaxStages)
	}

	if len(coeffs) < activeCount {
		assertf("biquad: %d coefficient sets for %d active stages", len(coeffs), activeCount)
	}

	for i := 0; i < activeCount; i++ {
		if i >= c.active {
			c.stages[i].Reset()
		}

		if i < len(coeffs) {
			c.stages[i].Coefficients = coeffs[i]
		} else {
			c.stages[i].Coefficients = Identity()
		}
	}

	c.active = activeCount
}

// ProcessSample runs x through the active slots in order.
func (c *StageChain) ProcessSample(x float64) float64 {
	for i := 0; i < c.active; i++ {
		x = c.stages[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in-place through the active slots. Each slot
// runs over the whole block before the next one, which produces the same
// samples as calling ProcessSample for every element. Zero-alloc.
func (c *StageChain) ProcessBlock(buf []float64) {
	for i := 0; i < c.active; i++ {
		c.stages[i].ProcessBlock(buf)
		c.stages[i].FlushDenormals()
	}
}

// ActiveCount returns the number of active slots.
func (c *StageChain) ActiveCount() int {
	return c.active
}

// Active reports whether slot i is active.
func (c *StageChain) Active(i int) bool {
	return i >= 0 && i < c.active
}

// Coefficients returns the coefficients held by slot i. Inactive slots
// report whatever they held when they were last active.
func (c *StageChain) Coefficients(i int) Coefficients {
	return c.stages[i].Coefficients
}

// Stage returns a pointer to slot i for inspection.
func (c *StageChain) Stage(i int) *Section {
	return &c.stages[i]
}

// Reset clears the state of every slot, active or not.
func (c *StageChain) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// State returns the delay-line state of every slot.
func (c *StageChain) State() [MaxStages][2]float64 {
	var states [MaxStages][2]float64
	for i := range c.stages {
		states[i] = c.stages[i].State()
	}

	return states
}

// SetState restores delay-line states captured by State.
func (c *StageChain) SetState(states [MaxStages][2]float64) {
	for i := range c.stages {
		c.stages[i].SetState(states[i])
	}
}
