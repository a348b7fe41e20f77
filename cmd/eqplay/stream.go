package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

const bytesPerSample = 4

// stream feeds a clip through the equalizer and renders interleaved
// float32 little-endian frames for the audio device. Read runs on the
// device goroutine; parameters may change concurrently through the
// engine's settings source.
type stream struct {
	clip   *clip
	engine *eq.Engine
	loop   bool

	pos     int
	played  int64
	left    []float64
	right   []float64
}

func newStream(c *clip, engine *eq.Engine, loop bool) *stream {
	block := engine.MaxBlockSize()

	s := &stream{
		clip:   c,
		engine: engine,
		loop:   loop,
		left:   make([]float64, block),
	}
	if c.channels == 2 {
		s.right = make([]float64, block)
	}

	return s
}

func (s *stream) frameBytes() int { return bytesPerSample * s.clip.channels }

// Read fills p with whole frames. It returns io.EOF once a non-looping
// clip is exhausted.
func (s *stream) Read(p []byte) (int, error) {
	frameBytes := s.frameBytes()
	want := len(p) / frameBytes
	written := 0

	for written < want {
		n := s.fill(min(want-written, len(s.left)))
		if n == 0 {
			break
		}

		left := s.left[:n]
		var right []float64
		if s.right != nil {
			right = s.right[:n]
		}

		s.engine.ProcessBlock(left, right)
		encodeFloat32(p[written*frameBytes:], left, right)

		written += n
		s.played += int64(n)
	}

	if written == 0 && want > 0 {
		return 0, io.EOF
	}

	return written * frameBytes, nil
}

// fill copies up to n frames of the clip into the block buffers, wrapping
// to the start when looping. It returns the frames copied.
func (s *stream) fill(n int) int {
	total := s.clip.frames()
	if total == 0 {
		return 0
	}

	copied := 0
	for copied < n {
		if s.pos == total {
			if !s.loop {
				break
			}
			s.pos = 0
		}

		k := copy(s.left[copied:n], s.clip.left[s.pos:])
		if s.right != nil {
			copy(s.right[copied:copied+k], s.clip.right[s.pos:])
		}

		copied += k
		s.pos += k
	}

	return copied
}

// encodeFloat32 interleaves left and right into dst as float32 LE. right
// is nil for mono.
func encodeFloat32(dst []byte, left, right []float64) {
	if right == nil {
		for i, x := range left {
			binary.LittleEndian.PutUint32(dst[i*bytesPerSample:], math.Float32bits(float32(x)))
		}

		return
	}

	for i := range left {
		o := 2 * i * bytesPerSample
		binary.LittleEndian.PutUint32(dst[o:], math.Float32bits(float32(left[i])))
		binary.LittleEndian.PutUint32(dst[o+bytesPerSample:], math.Float32bits(float32(right[i])))
	}
}
