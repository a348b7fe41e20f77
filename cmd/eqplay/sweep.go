package main

import (
	"context"
	"math"
	"time"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

const sweepTick = 20 * time.Millisecond

// sweep moves one parameter back and forth across its control range,
// the way a host automation lane would. Writes go through the lock-free
// store while the device goroutine is rendering.
type sweep struct {
	params *eq.Params
	id     string
	period time.Duration
}

// position returns the 0..1 control position after elapsed: a triangle
// wave rising over the first half period and falling over the second.
func (s *sweep) position(elapsed time.Duration) float64 {
	if s.period <= 0 {
		return 0
	}

	phase := math.Mod(elapsed.Seconds()/s.period.Seconds(), 1)
	if phase < 0.5 {
		return 2 * phase
	}

	return 2 - 2*phase
}

// run updates the parameter every tick until ctx is cancelled.
func (s *sweep) run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := s.params.SetNormalized(s.id, s.position(now.Sub(start))); err != nil {
				return err
			}
		}
	}
}
