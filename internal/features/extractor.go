// Package features reduces a dB spectrum to a smoothed, normalized spectrum
// and the scalar bass/treble energies that drive the visuals.
package features

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Band is a half-open bin index range [Lo, Hi).
type Band struct {
	Lo, Hi int
}

// Config holds the smoothing and normalization parameters.
type Config struct {
	// Alpha is the weight kept from the previous frame, in (0,1).
	Alpha   float64
	DBFloor float64
	DBRange float64
	Bass    Band
	Treble  Band
}

// Bands are the per-tick scalar energies, each in [0,1].
type Bands struct {
	Bass   float64
	Treble float64
}

// Extractor owns the smoothed spectrum persisted across ticks.
type Extractor struct {
	cfg      Config
	smoothed []float64
	norm     []float64
	bands    Bands
}

// NewExtractor allocates a smoothed spectrum of bars bins, all zero.
func NewExtractor(cfg Config, bars int) *Extractor {
	return &Extractor{
		cfg:      cfg,
		smoothed: make([]float64, bars),
		norm:     make([]float64, bars),
	}
}

// Smoothed returns the persisted spectrum. Callers must not modify it.
func (e *Extractor) Smoothed() []float64 { return e.smoothed }

// Bands returns the energies computed by the last update.
func (e *Extractor) Bands() Bands { return e.bands }

// Update folds one raw dB spectrum into the smoothed spectrum and
// recomputes the energy bands. Extra raw bins are ignored and missing ones
// count as silence.
func (e *Extractor) Update(raw []float64) Bands {
	for i := range e.norm {
		if i < len(raw) {
			e.norm[i] = Normalize(raw[i], e.cfg.DBFloor, e.cfg.DBRange)
		} else {
			e.norm[i] = 0
		}
	}
	return e.fold()
}

// Silence folds an all-zero frame, letting the spectrum decay.
func (e *Extractor) Silence() Bands {
	for i := range e.norm {
		e.norm[i] = 0
	}
	return e.fold()
}

func (e *Extractor) fold() Bands {
	Smooth(e.smoothed, e.norm, e.cfg.Alpha)
	e.bands = Bands{
		Bass:   Mean(e.smoothed, e.cfg.Bass),
		Treble: Mean(e.smoothed, e.cfg.Treble),
	}
	return e.bands
}

// Smooth updates prev in place: prev = prev*alpha + next*(1-alpha).
func Smooth(prev, next []float64, alpha float64) {
	if len(prev) != len(next) {
		panic("features: smoothing length mismatch")
	}
	floats.Scale(alpha, prev)
	floats.AddScaled(prev, 1-alpha, next)
}

// Normalize maps a dB value into [0,1].
func Normalize(db, floor, rng float64) float64 {
	if rng <= 0 {
		return 0
	}
	return clamp01((db - floor) / rng)
}

// Mean averages s over band, clipped to the slice. Empty ranges are zero.
func Mean(s []float64, b Band) float64 {
	lo, hi := b.Lo, b.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > len(s) {
		hi = len(s)
	}
	if hi <= lo {
		return 0
	}
	return clamp01(stat.Mean(s[lo:hi], nil))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
