package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Deinterleave splits interleaved stereo frames into left and right.
// Frames beyond the shorter destination are ignored; it returns the number
// of frames written.
func Deinterleave(left, right, frames []float64) int {
	n := min(len(frames)/2, len(left), len(right))
	for i := 0; i < n; i++ {
		left[i] = frames[2*i]
		right[i] = frames[2*i+1]
	}
	return n
}

// Interleave writes left and right into interleaved stereo frames and
// returns the number of frames written.
func Interleave(frames, left, right []float64) int {
	n := min(len(frames)/2, len(left), len(right))
	for i := 0; i < n; i++ {
		frames[2*i] = left[i]
		frames[2*i+1] = right[i]
	}
	return n
}
