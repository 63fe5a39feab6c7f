// Package config holds the engine configuration and its named presets.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/iburimskiy/audio-reactor/internal/audio"
	"github.com/iburimskiy/audio-reactor/internal/features"
	"github.com/iburimskiy/audio-reactor/internal/particles"
	"github.com/iburimskiy/audio-reactor/internal/ring"
	"github.com/iburimskiy/audio-reactor/internal/spectrum"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 1024
	DefaultBars       = 180

	WindowWidth  = 800
	WindowHeight = 800
	TPS          = 60
)

type Audio struct {
	SampleRate int
	BlockSize  int
	Source     audio.Kind
	// File is played when Source is file; empty opens a file dialog.
	File string
}

type Analysis struct {
	Bars    int
	Backend spectrum.Backend
}

type Window struct {
	Width  int
	Height int
	TPS    int
	Title  string
	// Fade is painted over the previous frame every tick; its alpha sets
	// the trail length.
	Fade color.RGBA
}

// Config is everything needed to build and run an engine.
type Config struct {
	Name string

	Audio     Audio
	Analysis  Analysis
	Features  features.Config
	Particles particles.Config
	Ring      ring.Config
	Window    Window

	Seed    int64
	Verbose bool
	// Log receives engine messages; nil discards them.
	Log *log.Logger
}

// Center is the middle of the window, where the ring and particles orbit.
func (c Config) Center() (float64, float64) {
	return float64(c.Window.Width) / 2, float64(c.Window.Height) / 2
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	a := c.Audio
	if a.SampleRate <= 0 {
		return invalid("audio.sample-rate %d must be positive", a.SampleRate)
	}
	if a.BlockSize < 2 {
		return invalid("audio.block-size %d must be at least 2", a.BlockSize)
	}
	if _, err := audio.ParseKind(string(a.Source)); err != nil {
		return invalid("%v", err)
	}

	bins := a.BlockSize / 2
	if c.Analysis.Bars < 1 || c.Analysis.Bars > bins {
		return invalid("analysis.bars %d outside [1,%d] for block size %d", c.Analysis.Bars, bins, a.BlockSize)
	}
	if !validBackend(c.Analysis.Backend) {
		return invalid("analysis.backend %q unknown", c.Analysis.Backend)
	}

	f := c.Features
	if f.Alpha <= 0 || f.Alpha >= 1 {
		return invalid("features.alpha %v outside (0,1)", f.Alpha)
	}
	if f.DBRange <= 0 {
		return invalid("features.db-range %v must be positive", f.DBRange)
	}
	if err := checkBand("bass", f.Bass, c.Analysis.Bars); err != nil {
		return err
	}
	if err := checkBand("treble", f.Treble, c.Analysis.Bars); err != nil {
		return err
	}

	p := c.Particles
	if p.Count < 0 {
		return invalid("particles.count %d is negative", p.Count)
	}
	for name, r := range map[string]particles.Range{
		"distance": p.Distance,
		"size":     p.Size,
		"speed":    p.Speed,
		"rebound":  p.Rebound,
	} {
		if r.Min > r.Max {
			return invalid("particles.%s range [%v,%v] is reversed", name, r.Min, r.Max)
		}
	}
	if p.Rebound.Min < 0 {
		return invalid("particles.rebound must not be negative")
	}
	outer := p.BaseRadius + p.Slack
	if p.InnerCoreRadius < 0 || p.InnerCoreRadius+p.Rebound.Max > outer {
		return invalid("particles.core %v plus rebound %v exceeds outer limit %v",
			p.InnerCoreRadius, p.Rebound.Max, outer)
	}
	if p.Count > 0 && (p.Distance.Min < p.InnerCoreRadius || p.Distance.Max > outer) {
		return invalid("particles.distance [%v,%v] outside [%v,%v]",
			p.Distance.Min, p.Distance.Max, p.InnerCoreRadius, outer)
	}

	r := c.Ring
	if r.Points < 3 {
		return invalid("ring.points %d must be at least 3", r.Points)
	}
	if r.BaseRadius <= 0 {
		return invalid("ring.radius %v must be positive", r.BaseRadius)
	}
	if r.LobeSmoothing < 0 || r.LobeSmoothing >= 1 {
		return invalid("ring.lobe-smoothing %v outside [0,1)", r.LobeSmoothing)
	}
	if len(r.Strokes) == 0 {
		return invalid("ring needs at least one stroke")
	}

	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("window size %dx%d", w.Width, w.Height)
	}
	if w.TPS <= 0 {
		return invalid("window.tps %d must be positive", w.TPS)
	}
	return nil
}

func checkBand(name string, b features.Band, bars int) error {
	if b.Lo < 0 || b.Hi <= b.Lo || b.Hi > bars {
		return invalid("features.%s band [%d,%d) outside %d bars", name, b.Lo, b.Hi, bars)
	}
	return nil
}

func validBackend(b spectrum.Backend) bool {
	if b == "" {
		return true
	}
	for _, known := range spectrum.Backends() {
		if b == known {
			return true
		}
	}
	return false
}
