package eq

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Engine is the dual-channel equalizer. One goroutine calls ProcessBlock;
// parameters arrive through the SettingsSource.
type Engine struct {
	src SettingsSource

	left  ChannelChain
	right ChannelChain

	cfg      core.ProcessorConfig
	prepared bool

	applied     Settings
	appliedRate float64
	haveApplied bool

	failures atomic.Uint64
}

// NewEngine returns an unprepared engine reading parameters from src. A
// nil src uses DefaultSettings.
func NewEngine(src SettingsSource) *Engine {
	if src == nil {
		src = StaticSettings(DefaultSettings())
	}

	return &Engine{
		src:   src,
		left:  NewChannelChain(),
		right: NewChannelChain(),
	}
}

// Prepare validates the processing setup, clears both channels' filter
// state and applies the current snapshot so the first block is already
// configured. On error the engine is left unprepared and the error wraps
// core.ErrInvalidSampleRate or core.ErrInvalidBlockSize.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	return e.PrepareConfig(core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize})
}

// PrepareConfig is Prepare taking a core.ProcessorConfig, typically built
// with core.ApplyProcessorOptions.
func (e *Engine) PrepareConfig(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		e.prepared = false
		return fmt.Errorf("eq: prepare: %w", err)
	}

	e.cfg = cfg
	e.left.Reset()
	e.right.Reset()
	e.haveApplied = false

	if err := e.Reconfigure(e.src.Settings(), cfg.SampleRate); err != nil {
		e.prepared = false
		return fmt.Errorf("eq: prepare: %w", err)
	}

	e.prepared = true

	return nil
}

// Reconfigure designs coefficients for s at sampleRate and applies them to
// both channels. A part whose design fails keeps its previous coefficients
// on both channels; a cascade is applied whole or not at all. The call is
// skipped when s and sampleRate equal the last fully applied pair.
//
// Reconfigure never allocates. Errors are package sentinels and are
// counted in ReconfigureFailures.
func (e *Engine) Reconfigure(s Settings, sampleRate float64) error {
	if e.haveApplied && s == e.applied && sampleRate == e.appliedRate {
		return nil
	}

	plan := Design(s, sampleRate)

	if plan.PeakErr == nil {
		e.left.setPeak(plan.Peak)
		e.right.setPeak(plan.Peak)
	}

	if plan.LowCutErr == nil {
		stages := s.LowCutSlope.StageCount()
		e.left.setLowCut(&plan.LowCut, stages)
		e.right.setLowCut(&plan.LowCut, stages)
	}

	if plan.HighCutErr == nil {
		stages := s.HighCutSlope.StageCount()
		e.left.setHighCut(&plan.HighCut, stages)
		e.right.setHighCut(&plan.HighCut, stages)
	}

	e.left.SetBypass(s.LowCutBypassed, s.PeakBypassed, s.HighCutBypassed)
	e.right.SetBypass(s.LowCutBypassed, s.PeakBypassed, s.HighCutBypassed)

	if err := plan.Err(); err != nil {
		e.haveApplied = false
		e.failures.Add(1)

		return err
	}

	e.applied = s
	e.appliedRate = sampleRate
	e.haveApplied = true

	return nil
}

// ProcessBlock reconfigures from the latest snapshot and filters left and
// right in-place, each through its own channel. A nil right selects the
// mono layout. Only the common length of the two buffers is processed.
//
// Buffers longer than the prepared maximum block size are split, and each
// sub-block is reconfigured like a block of its own. An unprepared engine
// leaves the buffers untouched.
func (e *Engine) ProcessBlock(left, right []float64) {
	if !e.prepared {
		return
	}

	n := len(left)
	mono := right == nil
	if !mono && len(right) < n {
		n = len(right)
	}

	for start := 0; start < n; start += e.cfg.BlockSize {
		end := min(start+e.cfg.BlockSize, n)

		// Failures are counted; the chains keep their last good coefficients.
		_ = e.Reconfigure(e.src.Settings(), e.cfg.SampleRate)

		e.left.ProcessBlock(left[start:end])
		if !mono {
			e.right.ProcessBlock(right[start:end])
		}
	}
}

// Reset clears both channels' filter state without touching coefficients.
func (e *Engine) Reset() {
	e.left.Reset()
	e.right.Reset()
}

// Prepared reports whether Prepare succeeded.
func (e *Engine) Prepared() bool { return e.prepared }

// SampleRate returns the prepared sample rate, or 0.
func (e *Engine) SampleRate() float64 {
	if !e.prepared {
		return 0
	}

	return e.cfg.SampleRate
}

// MaxBlockSize returns the prepared maximum block size, or 0.
func (e *Engine) MaxBlockSize() int {
	if !e.prepared {
		return 0
	}

	return e.cfg.BlockSize
}

// Applied returns the last fully applied snapshot.
func (e *Engine) Applied() (Settings, bool) {
	return e.applied, e.haveApplied
}

// Left returns the left (or mono) channel chain.
func (e *Engine) Left() *ChannelChain { return &e.left }

// Right returns the right channel chain.
func (e *Engine) Right() *ChannelChain { return &e.right }

// ReconfigureFailures returns how many reconfigurations failed since the
// engine was created. Safe to call from any goroutine.
func (e *Engine) ReconfigureFailures() uint64 {
	return e.failures.Load()
}
