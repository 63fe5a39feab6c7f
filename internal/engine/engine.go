// Package engine runs the per-frame pipeline: read a block, analyze it,
// update the features, particles and ring, and emit the frame's draw
// commands in a fixed order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/iburimskiy/audio-reactor/internal/audio"
	"github.com/iburimskiy/audio-reactor/internal/config"
	"github.com/iburimskiy/audio-reactor/internal/features"
	"github.com/iburimskiy/audio-reactor/internal/particles"
	"github.com/iburimskiy/audio-reactor/internal/render"
	"github.com/iburimskiy/audio-reactor/internal/ring"
	"github.com/iburimskiy/audio-reactor/internal/spectrum"
)

// faultLogEvery rate-limits capture fault messages.
const faultLogEvery = 300

var ErrStopped = errors.New("engine stopped")

// Engine is single-threaded: Tick, Stop and SetSource must be called from
// the goroutine that drives the frame loop.
type Engine struct {
	cfg config.Config
	src audio.Source
	log *log.Logger

	analyzer  *spectrum.Analyzer
	extractor *features.Extractor
	ring      *ring.Generator
	state     State

	center  render.Point
	block   []int16
	points  []render.Point
	scratch []render.Point
	frame   render.Frame

	status Status
	ticks  uint64
	faults uint64
}

// New validates cfg and builds an engine reading from src. A nil rng is
// seeded from cfg.Seed and a nil logger falls back to cfg.Log.
func New(cfg config.Config, src audio.Source, rng *rand.Rand, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("engine: nil audio source")
	}
	if rate := src.SampleRate(); rate != cfg.Audio.SampleRate {
		return nil, fmt.Errorf("%w: source rate %d Hz, configured %d Hz", config.ErrInvalid, rate, cfg.Audio.SampleRate)
	}

	analyzer, err := spectrum.NewAnalyzer(cfg.Audio.BlockSize, cfg.Analysis.Bars, cfg.Analysis.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if logger == nil {
		logger = cfg.Log
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	gen := ring.NewGenerator(cfg.Ring)
	extractor := features.NewExtractor(cfg.Features, cfg.Analysis.Bars)
	cx, cy := cfg.Center()

	e := &Engine{
		cfg:       cfg,
		src:       src,
		log:       logger,
		analyzer:  analyzer,
		extractor: extractor,
		ring:      gen,
		state: State{
			Smoothed: extractor.Smoothed(),
			Ring:     gen.NewState(),
			Field:    particles.NewField(cfg.Particles, rng),
		},
		center: render.Point{X: cx, Y: cy},
		block:  make([]int16, cfg.Audio.BlockSize),
	}
	e.log.Printf("engine: preset=%s source=%T rate=%d block=%d bars=%d fft=%s",
		cfg.Name, src, cfg.Audio.SampleRate, cfg.Audio.BlockSize, cfg.Analysis.Bars, backendName(cfg.Analysis.Backend))
	return e, nil
}

func backendName(b spectrum.Backend) spectrum.Backend {
	if b == "" {
		return spectrum.BackendGonum
	}
	return b
}

func (e *Engine) Config() config.Config { return e.cfg }
func (e *Engine) Status() Status        { return e.status }
func (e *Engine) Source() audio.Source  { return e.src }
func (e *Engine) Bands() features.Bands { return e.state.Bands }

// State exposes the persisted accumulators. Callers must not modify them.
func (e *Engine) State() *State { return &e.state }

// Ticks is the number of frames produced so far.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Faults is the number of ticks whose block could not be read.
func (e *Engine) Faults() uint64 { return e.faults }

// Tick advances one frame and returns its draw commands. The frame is
// reused by the next Tick. After Stop it returns nil.
func (e *Engine) Tick() *render.Frame {
	if e.status == Stopped {
		return nil
	}
	e.ticks++

	if err := e.src.Read(e.block); err != nil {
		e.fault(err)
		e.state.Bands = e.extractor.Silence()
	} else {
		e.state.Bands = e.extractor.Update(e.analyzer.Analyze(e.block))
	}
	bass, treble := e.state.Bands.Bass, e.state.Bands.Treble

	e.state.Field.Update(bass, treble)
	e.ring.Advance(&e.state.Ring, bass, treble)
	e.points = e.ring.Generate(e.points, e.state.Smoothed, bass, e.state.Ring.Rotation, e.state.Ring.Lobes)

	f := &e.frame
	f.Reset()
	f.Fade(float64(e.cfg.Window.Width), float64(e.cfg.Window.Height), e.cfg.Window.Fade)
	e.scratch = e.ring.Draw(f, e.scratch, e.points, e.center, bass)
	e.ring.DrawGlow(f, e.state.Ring.Glow, e.center, bass)
	e.state.Field.Render(f, e.center)

	if e.cfg.Verbose && e.ticks%uint64(5*e.cfg.Window.TPS) == 0 {
		e.log.Printf("engine: tick=%d bass=%.3f treble=%.3f lobes=%.2f faults=%d",
			e.ticks, bass, treble, e.state.Ring.Lobes, e.faults)
	}
	return f
}

func (e *Engine) fault(err error) {
	e.faults++
	if e.faults == 1 || e.faults%faultLogEvery == 0 {
		e.log.Printf("engine: audio read failed (%d so far), rendering silence: %v", e.faults, err)
	}
}

// SetSource replaces the audio source and closes the previous one.
func (e *Engine) SetSource(src audio.Source) error {
	if e.status == Stopped {
		return ErrStopped
	}
	if rate := src.SampleRate(); rate != e.cfg.Audio.SampleRate {
		return fmt.Errorf("%w: source rate %d Hz, configured %d Hz", config.ErrInvalid, rate, e.cfg.Audio.SampleRate)
	}
	old := e.src
	e.src = src
	e.log.Printf("engine: switched source to %T", src)
	return old.Close()
}

// Stop releases the audio source. Only the first call has any effect.
func (e *Engine) Stop() error {
	if e.status == Stopped {
		return nil
	}
	e.status = Stopped
	e.log.Printf("engine: stopped after %d ticks (%d capture faults)", e.ticks, e.faults)
	return e.src.Close()
}

// Run drives the engine without a window: one Tick per clock value,
// replayed onto canvas. Cancellation is checked once per tick. A nil
// clock runs as fast as the source allows; a closed clock ends the run.
func (e *Engine) Run(ctx context.Context, canvas render.Canvas, clock <-chan time.Time) error {
	for {
		if ctx.Err() != nil {
			return e.Stop()
		}
		frame := e.Tick()
		if frame == nil {
			return ErrStopped
		}
		frame.Replay(canvas)

		if clock == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return e.Stop()
		case _, ok := <-clock:
			if !ok {
				return e.Stop()
			}
		}
	}
}
