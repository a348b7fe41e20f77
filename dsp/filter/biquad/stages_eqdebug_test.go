//go:build eqdebug

package biquad

import (
	"strings"
	"testing"
)

func requirePanic(t *testing.T, wantSubstr string, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", wantSubstr)
		}

		if msg, ok := r.(string); !ok || !strings.Contains(msg, wantSubstr) {
			t.Fatalf("panic %v, want message containing %q", r, wantSubstr)
		}
	}()

	fn()
}

func TestStageChain_ConfigurePanicsOnActiveCountInDebug(t *testing.T) {
	if !debugAsserts {
		t.Fatal("eqdebug build must enable debugAsserts")
	}

	for _, k := range []int{-1, 0, MaxStages + 1} {
		var c StageChain
		requirePanic(t, "activeCount", func() { c.Configure(fourStages(), k) })
	}
}

func TestStageChain_ConfigurePanicsOnShortCoefficientsInDebug(t *testing.T) {
	var c StageChain
	requirePanic(t, "coefficient sets", func() { c.Configure(fourStages()[:1], 3) })
}

func TestStageChain_ConfigureValidInDebug(t *testing.T) {
	var c StageChain
	c.Configure(fourStages(), MaxStages)

	if c.ActiveCount() != MaxStages {
		t.Fatalf("ActiveCount = %d, want %d", c.ActiveCount(), MaxStages)
	}
}
