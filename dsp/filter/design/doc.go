// Package design turns frequency, Q, gain and order into biquad
// coefficients for the equalizer stages.
//
// Every designer is a pure function that never allocates. Cascades are
// returned as a fixed-size [Cascade] value so they can be computed at the
// top of an audio block.
//
// Degenerate requests (cutoff at or above Nyquist, non-positive frequency)
// yield identity sections with a nil error: a pass-through filter is
// preferred over a failed block. Only an invalid sample rate or an
// unsupported order is reported as an error.
package design
