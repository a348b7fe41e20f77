package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/level"
	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1

	// Frames read from the decoder per iteration.
	chunkFrames = 16384

	progressInterval = 10
	percentScale     = 100
)

var errUnsupportedLayout = errors.New("unsupported channel layout")

type options struct {
	blockSize  int
	outputGain float64
	verbose    bool
}

type eqStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	in         level.Levels
	out        level.Levels
}

// wavInput holds a validated, opened input file.
type wavInput struct {
	file        *os.File
	decoder     *wav.Decoder
	format      *audio.Format
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
}

func openWAVInput(path string, verbose bool) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if !eq.SupportsChannels(format.NumChannels) {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %d channels (mono or stereo only)", errUnsupportedLayout, format.NumChannels)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInput{
		file:        f,
		decoder:     decoder,
		format:      format,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: int64(duration.Seconds() * float64(format.SampleRate)),
	}, nil
}

func (w *wavInput) Close() error {
	return w.file.Close()
}

// wavOutput wraps the output file and its go-audio encoder.
type wavOutput struct {
	file    *os.File
	encoder *wav.Encoder
}

func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutput{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
	}, nil
}

func (w *wavOutput) Write(buf *audio.IntBuffer) error {
	return w.encoder.Write(buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutput) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}

	return w.file.Close()
}

func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// channelBuffers are the per-channel float buffers fed to the engine.
type channelBuffers struct {
	left, right []float64
	frames      []float64
}

func newChannelBuffers(frames int) *channelBuffers {
	return &channelBuffers{
		left:   make([]float64, frames),
		right:  make([]float64, frames),
		frames: make([]float64, 2*frames),
	}
}

// load normalizes interleaved PCM into left (and right for stereo) and
// returns the frame count.
func (b *channelBuffers) load(data []int, channels int, invMax float64) int {
	if channels == 1 {
		for i, v := range data {
			b.left[i] = float64(v) * invMax
		}

		return len(data)
	}

	n := len(data) / 2
	for i := 0; i < 2*n; i++ {
		b.frames[i] = float64(data[i]) * invMax
	}

	return core.Deinterleave(b.left[:n], b.right[:n], b.frames[:2*n])
}

// meter feeds the first n frames of every channel to m.
func (b *channelBuffers) meter(m *level.Meter, channels, n int) {
	m.Update(b.left[:n])
	if channels == 2 {
		m.Update(b.right[:n])
	}
}

// store converts the processed channels back to interleaved PCM, clamping
// to full scale.
func (b *channelBuffers) store(dst []int, channels, n int, maxVal float64) {
	src := b.left[:n]
	if channels == 2 {
		core.Interleave(b.frames[:2*n], b.left[:n], b.right[:n])
		src = b.frames[:2*n]
	}

	for i, x := range src {
		dst[i] = int(math.Round(core.Clamp(x, -1, 1) * maxVal))
	}
}

// equalizeWAV filters inputPath through an engine driven by params and
// writes the result to outputPath.
func equalizeWAV(inputPath, outputPath string, params *eq.Params, opts options) (stats *eqStats, err error) {
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(input.rate)),
		core.WithBlockSize(opts.blockSize),
	)

	engine := eq.NewEngine(params)
	if err := engine.PrepareConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to prepare equalizer: %w", err)
	}

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := output.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to finalize output: %w", closeErr)
		}
	}()

	maxVal := maxValue(input.bitDepth)
	bufs := newChannelBuffers(chunkFrames)
	inBuf := &audio.IntBuffer{
		Data:           make([]int, chunkFrames*input.channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}
	outBuf := &audio.IntBuffer{
		Data:           make([]int, chunkFrames*input.channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}

	stats = &eqStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
	}
	lastProgress := 0

	var inMeter, outMeter level.Meter

	for {
		inBuf.Data = inBuf.Data[:cap(inBuf.Data)]

		n, err := input.decoder.PCMBuffer(inBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}

		// n counts samples across all channels; drop a trailing partial frame.
		n -= n % input.channels
		if n == 0 {
			break
		}

		frames := bufs.load(inBuf.Data[:n], input.channels, 1/maxVal)
		bufs.meter(&inMeter, input.channels, frames)

		if input.channels == 1 {
			engine.ProcessBlock(bufs.left[:frames], nil)
		} else {
			engine.ProcessBlock(bufs.left[:frames], bufs.right[:frames])
		}

		if opts.outputGain != 1 {
			vecmath.ScaleBlock(bufs.left[:frames], bufs.left[:frames], opts.outputGain)
			if input.channels == 2 {
				vecmath.ScaleBlock(bufs.right[:frames], bufs.right[:frames], opts.outputGain)
			}
		}

		bufs.meter(&outMeter, input.channels, frames)

		outBuf.Data = outBuf.Data[:frames*input.channels]
		bufs.store(outBuf.Data, input.channels, frames, maxVal)

		if err := output.Write(outBuf); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.frames += int64(frames)

		if opts.verbose && input.totalFrames > 0 {
			progress := int(float64(stats.frames) / float64(input.totalFrames) * percentScale)
			if progress >= lastProgress+progressInterval {
				log.Printf("Progress: %d%%", progress)
				lastProgress = progress
			}
		}
	}

	stats.in = inMeter.Result()
	stats.out = outMeter.Result()

	if failures := engine.ReconfigureFailures(); failures > 0 {
		log.Printf("warning: %d equalizer reconfigurations failed", failures)
	}

	return stats, nil
}
