//go:build !eqdebug

package biquad

const debugAsserts = false

// assertf is a no-op in release builds; callers clamp instead.
func assertf(string, ...any) {}
