// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. A [StageChain] cascades up
// to [MaxStages] sections in a fixed array with an explicit active count, so
// steeper or shallower slopes are selected by enabling or bypassing slots
// rather than by resizing anything.
//
// Block processing dispatches to the fastest kernel registered for the
// running CPU. Coefficient design lives in dsp/filter/design.
//
// Building with the eqdebug tag turns StageChain contract violations into
// panics:
//
//	go test -tags eqdebug ./dsp/filter/biquad
package biquad
