// Command eqplay plays a WAV file through the three-band equalizer on the
// default audio device.
//
// Usage:
//
//	eqplay -peak-freq 1000 -peak-gain 9 input.wav
//	eqplay -highcut 4000 -highcut-slope 48 -loop input.wav
//	eqplay -peak-gain 12 -peak-q 4 -sweep 8s input.wav
//
// With -sweep the peak frequency is swept across its range while the file
// plays. Interrupt with Ctrl-C.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/eqflags"
	"github.com/ebitengine/oto/v3"
)

const pollInterval = 50 * time.Millisecond

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	eqFlags := eqflags.Register(flag.CommandLine)
	loop := flag.Bool("loop", false, "Loop the file until interrupted")
	sweepPeriod := flag.Duration("sweep", 0, "Sweep the peak frequency with this period (0 disables)")
	block := flag.Int("block", core.DefaultProcessorConfig().BlockSize, "Processing block size in frames")
	latency := flag.Duration("latency", 0, "Device buffer duration (0 uses the driver default)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("missing input file")
	}

	params := eq.NewParams()
	if err := eqFlags.Apply(params); err != nil {
		return err
	}

	c, err := loadClip(flag.Arg(0))
	if err != nil {
		return err
	}

	engine := eq.NewEngine(params)
	if err := engine.PrepareConfig(core.ApplyProcessorOptions(
		core.WithSampleRate(float64(c.rate)),
		core.WithBlockSize(*block),
	)); err != nil {
		return fmt.Errorf("failed to prepare equalizer: %w", err)
	}

	if *verbose {
		log.Printf("Input: %s, %d Hz, %d channels, %d frames", flag.Arg(0), c.rate, c.channels, c.frames())
		log.Printf("Settings: %+v", params.Settings())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   c.rate,
		ChannelCount: c.channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   *latency,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	s := newStream(c, engine, *loop)
	player := otoCtx.NewPlayer(s)
	defer func() { _ = player.Close() }()

	if *sweepPeriod > 0 {
		sw := &sweep{params: params, id: eq.ParamPeakFreq, period: *sweepPeriod}
		go func() {
			if err := sw.run(ctx, sweepTick); err != nil {
				log.Printf("sweep stopped: %v", err)
			}
		}()
	}

	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			log.Printf("Interrupted")
			return nil
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	if failures := engine.ReconfigureFailures(); failures > 0 {
		log.Printf("warning: %d equalizer reconfigurations failed", failures)
	}

	return nil
}
