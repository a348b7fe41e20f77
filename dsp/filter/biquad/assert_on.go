//go:build eqdebug

package biquad

import "fmt"

const debugAsserts = true

// assertf panics in eqdebug builds so contract violations surface early.
func assertf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
