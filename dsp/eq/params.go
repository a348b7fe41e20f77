package eq

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

var (
	// ErrUnknownParam reports a parameter ID that is not in the layout.
	ErrUnknownParam = errors.New("eq: unknown parameter")

	// ErrInvalidValue reports a NaN parameter value.
	ErrInvalidValue = errors.New("eq: invalid parameter value")
)

// Parameter IDs.
const (
	ParamLowCutFreq      = "LowCut Freq"
	ParamHighCutFreq     = "HighCut Freq"
	ParamPeakFreq        = "Peak Freq"
	ParamPeakGain        = "Peak Gain"
	ParamPeakQuality     = "Peak Quality"
	ParamLowCutSlope     = "LowCut Slope"
	ParamHighCutSlope    = "HighCut Slope"
	ParamLowCutBypassed  = "LowCut Bypassed"
	ParamPeakBypassed    = "Peak Bypassed"
	ParamHighCutBypassed = "HighCut Bypassed"
)

// ParamKind distinguishes continuous, choice and toggle parameters.
type ParamKind int

const (
	KindFloat ParamKind = iota
	KindChoice
	KindBool
)

// ParamSpec describes one parameter. For KindChoice the value is the
// choice index; for KindBool it is 0 or 1.
type ParamSpec struct {
	ID      string
	Kind    ParamKind
	Min     float64
	Max     float64
	Step    float64
	Skew    float64
	Default float64
	Choices []string
}

const (
	idxLowCutFreq = iota
	idxHighCutFreq
	idxPeakFreq
	idxPeakGain
	idxPeakQuality
	idxLowCutSlope
	idxHighCutSlope
	idxLowCutBypassed
	idxPeakBypassed
	idxHighCutBypassed

	numParams
)

var specs = [numParams]ParamSpec{
	idxLowCutFreq:      {ID: ParamLowCutFreq, Kind: KindFloat, Min: 20, Max: 20000, Step: 1, Skew: 0.25, Default: 20},
	idxHighCutFreq:     {ID: ParamHighCutFreq, Kind: KindFloat, Min: 20, Max: 20000, Step: 1, Skew: 0.25, Default: 20000},
	idxPeakFreq:        {ID: ParamPeakFreq, Kind: KindFloat, Min: 20, Max: 20000, Step: 1, Skew: 0.25, Default: 750},
	idxPeakGain:        {ID: ParamPeakGain, Kind: KindFloat, Min: -24, Max: 24, Step: 0.5, Skew: 1, Default: 0},
	idxPeakQuality:     {ID: ParamPeakQuality, Kind: KindFloat, Min: 0.1, Max: 10, Step: 0.05, Skew: 1, Default: 1},
	idxLowCutSlope:     {ID: ParamLowCutSlope, Kind: KindChoice, Max: 3, Step: 1, Skew: 1, Choices: slopeChoices},
	idxHighCutSlope:    {ID: ParamHighCutSlope, Kind: KindChoice, Max: 3, Step: 1, Skew: 1, Choices: slopeChoices},
	idxLowCutBypassed:  {ID: ParamLowCutBypassed, Kind: KindBool, Max: 1, Step: 1, Skew: 1},
	idxPeakBypassed:    {ID: ParamPeakBypassed, Kind: KindBool, Max: 1, Step: 1, Skew: 1},
	idxHighCutBypassed: {ID: ParamHighCutBypassed, Kind: KindBool, Max: 1, Step: 1, Skew: 1},
}

func indexOf(id string) (int, error) {
	for i := range specs {
		if specs[i].ID == id {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, id)
}

// Lookup returns the spec for id.
func Lookup(id string) (ParamSpec, bool) {
	i, err := indexOf(id)
	if err != nil {
		return ParamSpec{}, false
	}

	return specs[i], true
}

// Specs returns every parameter spec in layout order.
func Specs() []ParamSpec {
	out := make([]ParamSpec, numParams)
	copy(out, specs[:])

	return out
}

// Params is a lock-free parameter store. Each value is held as float64
// bits in an atomic word, so writers on any goroutine never block the
// audio goroutine reading snapshots. A snapshot is coherent per field, not
// across fields.
//
// The zero value is not usable; construct with NewParams.
type Params struct {
	values [numParams]atomic.Uint64
}

// NewParams returns a store holding the default value of every parameter.
func NewParams() *Params {
	p := &Params{}
	p.Reset()

	return p
}

// Reset restores every parameter to its default.
func (p *Params) Reset() {
	for i := range specs {
		p.store(i, specs[i].Default)
	}
}

func (p *Params) store(i int, v float64) {
	p.values[i].Store(math.Float64bits(v))
}

func (p *Params) load(i int) float64 {
	return math.Float64frombits(p.values[i].Load())
}

// Set stores v for id. Continuous values are clamped to the range and
// snapped to the step. A choice value must be an integral index into the
// choices, otherwise ErrInvalidSlope is returned. Any non-zero value turns
// a toggle on.
func (p *Params) Set(id string, v float64) error {
	i, err := indexOf(id)
	if err != nil {
		return err
	}

	if math.IsNaN(v) {
		return fmt.Errorf("%w: %s is NaN", ErrInvalidValue, id)
	}

	spec := &specs[i]

	switch spec.Kind {
	case KindChoice:
		if v != math.Trunc(v) || v < 0 || int(v) >= len(spec.Choices) {
			return fmt.Errorf("%w: %s choice %v", ErrInvalidSlope, id, v)
		}
	case KindBool:
		if v != 0 {
			v = 1
		}
	default:
		v = spec.snap(v)
	}

	p.store(i, v)

	return nil
}

// snap clamps v to the range and rounds it to the nearest step.
func (s *ParamSpec) snap(v float64) float64 {
	v = core.Clamp(v, s.Min, s.Max)
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}

	return core.Clamp(v, s.Min, s.Max)
}

// SetText parses text for id: a number for continuous values, a slope
// such as "24 dB/oct" for choices, and a boolean for toggles.
func (p *Params) SetText(id, text string) error {
	i, err := indexOf(id)
	if err != nil {
		return err
	}

	switch specs[i].Kind {
	case KindChoice:
		s, err := ParseSlope(text)
		if err != nil {
			return err
		}

		return p.Set(id, float64(s))
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidValue, id, err)
		}

		v := 0.0
		if b {
			v = 1
		}

		return p.Set(id, v)
	default:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidValue, id, err)
		}

		return p.Set(id, v)
	}
}

// Get returns the stored value for id.
func (p *Params) Get(id string) (float64, error) {
	i, err := indexOf(id)
	if err != nil {
		return 0, err
	}

	return p.load(i), nil
}

// SetNormalized sets id from a 0..1 control position. Continuous values
// follow the skewed mapping min + (max-min) * n^(1/skew); choices and
// toggles map linearly onto their values.
func (p *Params) SetNormalized(id string, n float64) error {
	i, err := indexOf(id)
	if err != nil {
		return err
	}

	if math.IsNaN(n) {
		return fmt.Errorf("%w: %s is NaN", ErrInvalidValue, id)
	}

	return p.Set(id, specs[i].fromNormalized(core.Clamp(n, 0, 1)))
}

// Normalized returns the 0..1 control position of id.
func (p *Params) Normalized(id string) (float64, error) {
	i, err := indexOf(id)
	if err != nil {
		return 0, err
	}

	return specs[i].toNormalized(p.load(i)), nil
}

func (s *ParamSpec) fromNormalized(n float64) float64 {
	switch s.Kind {
	case KindChoice:
		return math.Round(n * float64(len(s.Choices)-1))
	case KindBool:
		if n >= 0.5 {
			return 1
		}

		return 0
	}

	if n > 0 && s.Skew != 1 {
		n = math.Exp(math.Log(n) / s.Skew)
	}

	return s.Min + (s.Max-s.Min)*n
}

func (s *ParamSpec) toNormalized(v float64) float64 {
	if s.Max == s.Min {
		return 0
	}

	n := core.Clamp((v-s.Min)/(s.Max-s.Min), 0, 1)
	if s.Kind == KindFloat && s.Skew != 1 {
		n = math.Pow(n, s.Skew)
	}

	return n
}

// Settings reads every parameter once and returns the snapshot. It does
// not allocate or lock.
func (p *Params) Settings() Settings {
	return Settings{
		PeakFreq:        p.load(idxPeakFreq),
		PeakGainDB:      p.load(idxPeakGain),
		PeakQuality:     p.load(idxPeakQuality),
		LowCutFreq:      p.load(idxLowCutFreq),
		HighCutFreq:     p.load(idxHighCutFreq),
		LowCutSlope:     Slope(p.load(idxLowCutSlope)),
		HighCutSlope:    Slope(p.load(idxHighCutSlope)),
		LowCutBypassed:  p.load(idxLowCutBypassed) != 0,
		PeakBypassed:    p.load(idxPeakBypassed) != 0,
		HighCutBypassed: p.load(idxHighCutBypassed) != 0,
	}
}

// Apply stores every field of s, clamping and snapping like Set. Invalid
// slopes are rejected before anything is written.
func (p *Params) Apply(s Settings) error {
	if !s.LowCutSlope.Valid() || !s.HighCutSlope.Valid() {
		return fmt.Errorf("%w: %v / %v", ErrInvalidSlope, s.LowCutSlope, s.HighCutSlope)
	}

	values := [numParams]float64{
		idxLowCutFreq:      s.LowCutFreq,
		idxHighCutFreq:     s.HighCutFreq,
		idxPeakFreq:        s.PeakFreq,
		idxPeakGain:        s.PeakGainDB,
		idxPeakQuality:     s.PeakQuality,
		idxLowCutSlope:     float64(s.LowCutSlope),
		idxHighCutSlope:    float64(s.HighCutSlope),
		idxLowCutBypassed:  boolValue(s.LowCutBypassed),
		idxPeakBypassed:    boolValue(s.PeakBypassed),
		idxHighCutBypassed: boolValue(s.HighCutBypassed),
	}

	for i, v := range values {
		if err := p.Set(specs[i].ID, v); err != nil {
			return err
		}
	}

	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
