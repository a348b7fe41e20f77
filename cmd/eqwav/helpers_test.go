package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/level"
	"github.com/cwbudde/algo-eq/measure/response"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = 44100

// writeToneWAV writes a 16-bit file holding a sine at freq on every
// channel and returns its path.
func writeToneWAV(t *testing.T, channels int, freq, amplitude float64, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, testRate, 16, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: testRate, NumChannels: channels},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}

	w := 2 * math.Pi * freq / testRate
	for i := 0; i < frames; i++ {
		v := int(math.Round(amplitude * math.Sin(w*float64(i)) * maxInt16))
		for ch := 0; ch < channels; ch++ {
			buf.Data[i*channels+ch] = v
		}
	}

	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

// readChannel decodes path and returns channel ch normalized to [-1, 1].
func readChannel(t *testing.T, path string, ch int) []float64 {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	channels := buf.Format.NumChannels
	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		out[i] = float64(buf.Data[i*channels+ch]) / maxInt16
	}

	return out
}

func toneLevelDB(buf []float64, freq float64) float64 {
	// Skip the settling region, then analyze 4410 samples: 100 periods of 1 kHz.
	tail := buf[8192 : 8192+4410]
	return core.LinearToDB(response.ToneAmplitude(tail, freq, testRate))
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_RejectsSurround(t *testing.T) {
	path := writeToneWAV(t, 3, 1000, 0.1, 64)

	_, err := openWAVInput(path, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnsupportedLayout))
}

func TestOpenWAVInput_Stereo(t *testing.T) {
	path := writeToneWAV(t, 2, 1000, 0.1, 441)

	in, err := openWAVInput(path, false)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	assert.Equal(t, testRate, in.rate)
	assert.Equal(t, 2, in.channels)
	assert.Equal(t, 16, in.bitDepth)
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestChannelBuffers_StereoRoundTrip(t *testing.T) {
	b := newChannelBuffers(4)
	data := []int{100, -100, 200, -200, 300, -300}

	frames := b.load(data, 2, 1/maxInt16)
	require.Equal(t, 3, frames)
	assert.InDelta(t, 200/maxInt16, b.left[1], 1e-12)
	assert.InDelta(t, -200/maxInt16, b.right[1], 1e-12)

	out := make([]int, 6)
	b.store(out, 2, frames, maxInt16)
	assert.Equal(t, data, out)

	var m level.Meter
	b.meter(&m, 2, frames)
	l := m.Result()
	assert.Equal(t, 6, l.Length)
	assert.InDelta(t, 300/maxInt16, l.Peak, 1e-12)
}

func TestChannelBuffers_StoreClips(t *testing.T) {
	b := newChannelBuffers(2)
	b.left[0], b.left[1] = 1.5, -0.5

	out := make([]int, 2)
	b.store(out, 1, 2, maxInt16)
	assert.Equal(t, []int{32767, -16384}, out)

	var m level.Meter
	b.meter(&m, 1, 2)
	assert.Equal(t, int64(1), m.Result().Clipped)
	assert.InDelta(t, 1.5, m.Result().Peak, 1e-12)
}

func TestEqualizeWAV_DefaultsAreTransparent(t *testing.T) {
	in := writeToneWAV(t, 2, 1000, 0.5, 16384)
	out := filepath.Join(t.TempDir(), "out.wav")

	stats, err := equalizeWAV(in, out, eq.NewParams(), options{blockSize: 512, outputGain: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(16384), stats.frames)
	assert.Equal(t, 2, stats.channels)
	assert.Zero(t, stats.out.Clipped)
	assert.Equal(t, 2*16384, stats.out.Length)

	for ch := 0; ch < 2; ch++ {
		outCh := readChannel(t, out, ch)
		got := toneLevelDB(outCh, 1000)
		assert.InDelta(t, core.LinearToDB(0.5), got, 0.1, "channel %d", ch)

		// Whole-file peaks include the start-up transient; compare the
		// settled region only.
		settledIn := level.Measure(readChannel(t, in, ch)[8192:])
		settledOut := level.Measure(outCh[8192:])
		assert.InDelta(t, settledIn.PeakDB, settledOut.PeakDB, 0.1, "channel %d", ch)
	}
}

func TestEqualizeWAV_HighCutAttenuates(t *testing.T) {
	in := writeToneWAV(t, 1, 5000, 0.5, 16384)
	out := filepath.Join(t.TempDir(), "out.wav")

	params := eq.NewParams()
	require.NoError(t, params.SetText(eq.ParamHighCutSlope, "48"))
	require.NoError(t, params.Set(eq.ParamHighCutFreq, 1000))

	_, err := equalizeWAV(in, out, params, options{blockSize: 256, outputGain: 1})
	require.NoError(t, err)

	// 16-bit quantization floors the measurement near -100 dBFS.
	got := toneLevelDB(readChannel(t, out, 0), 5000)
	assert.Less(t, got, core.LinearToDB(0.5)-40)
}

func TestEqualizeWAV_OutputGain(t *testing.T) {
	in := writeToneWAV(t, 1, 1000, 0.5, 16384)
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := equalizeWAV(in, out, eq.NewParams(), options{blockSize: 512, outputGain: core.DBToLinear(-6)})
	require.NoError(t, err)

	got := toneLevelDB(readChannel(t, out, 0), 1000)
	assert.InDelta(t, core.LinearToDB(0.5)-6, got, 0.1)
}

func TestEqualizeWAV_InvalidBlockSizeFallsBack(t *testing.T) {
	in := writeToneWAV(t, 1, 1000, 0.5, 1024)
	out := filepath.Join(t.TempDir(), "out.wav")

	// Non-positive block sizes keep the default from core.ApplyProcessorOptions.
	stats, err := equalizeWAV(in, out, eq.NewParams(), options{blockSize: 0, outputGain: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1024), stats.frames)
}
