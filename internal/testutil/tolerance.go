package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first index where got and want
// differ by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBitIdentical fails t unless got and want hold the same float64 bit
// patterns.
func RequireBitIdentical(t *testing.T, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
			t.Fatalf("index %d: got %v, want %v (bit patterns differ)", i, got[i], want[i])
		}
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireNearDB fails t if got is more than tolDB away from want, both
// in decibels.
func RequireNearDB(t *testing.T, label string, got, want, tolDB float64) {
	t.Helper()

	if math.IsNaN(got) || math.Abs(got-want) > tolDB {
		t.Fatalf("%s: got %.3f dB, want %.3f dB (tolerance %.3f dB)", label, got, want, tolDB)
	}
}

// MaxAbsDiff returns the largest absolute element difference over the
// common prefix of a and b.
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))

	maxDiff := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff
}
