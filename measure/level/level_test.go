package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/internal/testutil"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const tolerance = 1e-10

func TestEmpty(t *testing.T) {
	l := Measure(nil)

	if l.Length != 0 || l.Peak != 0 || l.Clipped != 0 {
		t.Fatalf("expected zero levels, got %+v", l)
	}

	if !math.IsInf(l.RMSDB, -1) || !math.IsInf(l.PeakDB, -1) {
		t.Fatalf("expected -Inf dB for silence, got rms=%v peak=%v", l.RMSDB, l.PeakDB)
	}
}

func TestSilence(t *testing.T) {
	l := Measure(make([]float64, 64))

	if l.Length != 64 {
		t.Fatalf("length = %d, want 64", l.Length)
	}

	if !math.IsInf(l.PeakDB, -1) || l.CrestFactorDB != 0 {
		t.Fatalf("unexpected silence levels %+v", l)
	}
}

func TestSine(t *testing.T) {
	const amp = 0.5

	// 100 whole periods of 480 Hz at 48 kHz.
	sig := testutil.DeterministicSine(480, 48000, amp, 10000)
	l := Measure(sig)

	if math.Abs(l.Peak-amp) > 1e-9 {
		t.Fatalf("peak = %v, want %v", l.Peak, amp)
	}

	if math.Abs(l.RMS-amp/math.Sqrt2) > 1e-9 {
		t.Fatalf("rms = %v, want %v", l.RMS, amp/math.Sqrt2)
	}

	if math.Abs(l.CrestFactorDB-20*math.Log10(math.Sqrt2)) > 1e-6 {
		t.Fatalf("crest = %v dB, want 3.01 dB", l.CrestFactorDB)
	}

	if math.Abs(l.DC) > 1e-9 {
		t.Fatalf("dc = %v, want 0", l.DC)
	}
}

func TestDCAndClipping(t *testing.T) {
	l := Measure([]float64{1.5, -2, 0.5, 1})

	if l.Clipped != 2 {
		t.Fatalf("clipped = %d, want 2", l.Clipped)
	}

	if l.Peak != 2 {
		t.Fatalf("peak = %v, want 2", l.Peak)
	}

	if math.Abs(l.DC-0.25) > tolerance {
		t.Fatalf("dc = %v, want 0.25", l.DC)
	}
}

func TestBlockPartitionMatchesWhole(t *testing.T) {
	sig := testutil.DeterministicNoise(3, 0.8, 1000)
	want := Measure(sig)

	var m Meter
	for start := 0; start < len(sig); start += 77 {
		m.Update(sig[start:min(start+77, len(sig))])
	}

	got := m.Result()
	if got.Length != want.Length || got.Peak != want.Peak || got.Clipped != want.Clipped {
		t.Fatalf("partitioned result %+v differs from %+v", got, want)
	}

	if math.Abs(got.RMS-want.RMS) > tolerance || math.Abs(got.DC-want.DC) > tolerance {
		t.Fatalf("partitioned rms/dc %v/%v, want %v/%v", got.RMS, got.DC, want.RMS, want.DC)
	}
}

func TestMatchesReference(t *testing.T) {
	sig := testutil.DeterministicNoise(11, 1.2, 4097)
	for i := range sig {
		sig[i] += 0.1
	}

	l := Measure(sig)

	wantDC := stat.Mean(sig, nil)
	wantRMS := math.Sqrt(floats.Dot(sig, sig) / float64(len(sig)))
	wantPeak := math.Max(math.Abs(floats.Max(sig)), math.Abs(floats.Min(sig)))

	if math.Abs(l.DC-wantDC) > 1e-9 {
		t.Fatalf("dc = %v, want %v", l.DC, wantDC)
	}

	if math.Abs(l.RMS-wantRMS) > 1e-9 {
		t.Fatalf("rms = %v, want %v", l.RMS, wantRMS)
	}

	if l.Peak != wantPeak {
		t.Fatalf("peak = %v, want %v", l.Peak, wantPeak)
	}

	var clipped int64
	for _, x := range sig {
		if math.Abs(x) > 1 {
			clipped++
		}
	}

	if l.Clipped != clipped {
		t.Fatalf("clipped = %d, want %d", l.Clipped, clipped)
	}
}

func TestReset(t *testing.T) {
	var m Meter
	m.Update([]float64{0.5, 2})
	m.Reset()

	if l := m.Result(); l.Length != 0 || l.Clipped != 0 {
		t.Fatalf("reset meter reports %+v", l)
	}
}

func TestUpdateZeroAlloc(t *testing.T) {
	sig := testutil.DeterministicNoise(1, 0.5, 256)
	var m Meter

	if allocs := testing.AllocsPerRun(100, func() { m.Update(sig) }); allocs != 0 {
		t.Fatalf("Update allocated %.1f times", allocs)
	}
}

func BenchmarkMeterUpdate(b *testing.B) {
	sig := testutil.DeterministicNoise(1, 0.5, 4096)
	var m Meter

	b.ReportAllocs()
	b.SetBytes(int64(len(sig) * 8))

	for i := 0; i < b.N; i++ {
		m.Update(sig)
	}
}
