package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/iburimskiy/audio-reactor/internal/audio"
	"github.com/iburimskiy/audio-reactor/internal/config"
	"github.com/iburimskiy/audio-reactor/internal/engine"
	"github.com/iburimskiy/audio-reactor/internal/game"
	"github.com/iburimskiy/audio-reactor/internal/render"
)

func main() {
	fs := flag.NewFlagSet("audio-reactor", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	headless := fs.Bool("headless", false, "Run without a window and log frame statistics")
	frames := fs.Int("frames", 0, "Stop a headless run after this many frames (0 runs until interrupted)")
	listPresets := fs.Bool("presets", false, "List the presets and exit")
	_ = fs.Parse(os.Args[1:])

	logger := log.New(os.Stdout, "", log.LstdFlags)

	if *listPresets {
		for _, name := range config.Presets() {
			cfg, _ := config.Preset(name)
			fmt.Printf("%-13s %s\n", name, cfg.Window.Title)
		}
		return
	}

	cfg, err := config.FromFlags(fs, flags)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	cfg.Log = logger

	src, err := openSource(cfg)
	if err != nil {
		logger.Fatalf("audio: %v", err)
	}

	eng, err := engine.New(cfg, src, nil, logger)
	if err != nil {
		_ = src.Close()
		logger.Fatalf("engine: %v", err)
	}

	if *headless {
		err = runHeadless(eng, *frames, logger)
	} else {
		err = game.Run(game.New(eng, logger))
	}
	if stopErr := eng.Stop(); stopErr != nil {
		logger.Printf("audio: close: %v", stopErr)
	}
	if err != nil {
		logger.Fatal(err)
	}
}

func openSource(cfg config.Config) (audio.Source, error) {
	a := cfg.Audio
	switch a.Source {
	case audio.KindMic:
		return audio.OpenMic(a.SampleRate, a.BlockSize)
	case audio.KindFile:
		path := a.File
		if path == "" {
			var err error
			if path, err = audio.ChooseFile(); err != nil {
				return nil, err
			}
			if path == "" {
				return nil, errors.New("no file selected")
			}
		}
		return audio.OpenFile(path, a.SampleRate, a.BlockSize)
	case audio.KindTone:
		return audio.NewTone(audio.ToneConfig{
			SampleRate: a.SampleRate,
			BlockSize:  a.BlockSize,
			Freqs:      []float64{55, 110, 220, 330},
			Amplitude:  0.2,
			Beat:       a.SampleRate,
		}), nil
	}
	return nil, fmt.Errorf("unknown audio source %q", a.Source)
}

// frameLimit stops a headless run after a fixed number of frames.
type frameLimit struct {
	render.Stats
	limit  int
	cancel context.CancelFunc
}

func (f *frameLimit) FillRect(x, y, w, h float64, clr color.RGBA) {
	f.Stats.FillRect(x, y, w, h, clr)
	if f.limit > 0 && f.Frames >= f.limit {
		f.cancel()
	}
}

func runHeadless(eng *engine.Engine, frames int, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(time.Second / time.Duration(eng.Config().Window.TPS))
	defer ticker.Stop()

	canvas := &frameLimit{limit: frames, cancel: cancel}
	start := time.Now()
	err := eng.Run(ctx, canvas, ticker.C)

	s := canvas.Stats
	logger.Printf("headless: %d frames in %s, %d polylines (%d segments), %d circles, %d capture faults",
		s.Frames, time.Since(start).Round(time.Millisecond), s.Polylines, s.Segments, s.Circles, eng.Faults())
	return err
}
