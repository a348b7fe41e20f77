// Package eq implements a real-time stereo three-band equalizer: an
// adjustable-slope low-cut, a parametric peak (bell) and an adjustable-slope
// high-cut, each realized as biquad sections.
//
// An [Engine] owns one [ChannelChain] per channel. At the top of every
// block it reads a [Settings] snapshot from its [SettingsSource], designs
// the coefficients once and applies them to both channels, then filters the
// audio. Block processing never allocates, locks or blocks.
//
// [Params] is a lock-free parameter store that control code may write from
// any goroutine while the audio goroutine reads snapshots from it.
package eq
