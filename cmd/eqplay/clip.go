package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/go-audio/wav"
)

var errUnsupportedLayout = errors.New("unsupported channel layout")

// clip is a fully decoded WAV file, normalized to [-1, 1] per channel.
// right is nil for mono files.
type clip struct {
	rate     int
	channels int
	left     []float64
	right    []float64
}

func (c *clip) frames() int { return len(c.left) }

func loadClip(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := buf.Format.NumChannels
	if !eq.SupportsChannels(channels) {
		return nil, fmt.Errorf("%w: %d channels (mono or stereo only)", errUnsupportedLayout, channels)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}

	scale := 1 / float64(int64(1)<<(bitDepth-1))
	frames := len(buf.Data) / channels
	samples := make([]float64, frames*channels)

	for i := range samples {
		samples[i] = float64(buf.Data[i]) * scale
	}

	c := &clip{
		rate:     buf.Format.SampleRate,
		channels: channels,
	}

	if channels == 1 {
		c.left = samples
		return c, nil
	}

	c.left = make([]float64, frames)
	c.right = make([]float64, frames)
	core.Deinterleave(c.left, c.right, samples)

	return c, nil
}
