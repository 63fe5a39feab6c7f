// Package particles animates a fixed set of points orbiting a center.
//
// Each tick a particle is either dormant (silence), orbiting and imploding
// toward the core on strong bass, or drifting back out. Particles that hit
// the inner core rebound into a band just outside it; the outer limit is
// either a clamp or, when configured, a full reset.
package particles

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/audio-reactor/internal/render"
)

// OuterPolicy decides what happens when a particle passes the outer limit.
type OuterPolicy int

const (
	OuterClamp OuterPolicy = iota
	OuterReset
)

func (p OuterPolicy) String() string {
	if p == OuterReset {
		return "reset"
	}
	return "clamp"
}

// Range is an inclusive uniform sampling interval.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Config enumerates the gains and thresholds of every regime.
type Config struct {
	Count int

	// initial attributes
	Distance Range
	Size     Range
	Speed    Range

	// dormant
	SilenceThreshold float64

	// orbit: angle += speed * SpinScale * (1 + SpinGain/(d+1))
	SpinGain  float64
	SpinScale float64

	// implosion
	PullThreshold float64
	PullGain      float64
	Tiers         []render.Tier
	BaseColor     color.RGBA

	// drift, or easing toward anchor+bass*AnchorPulse when AnchorPulse > 0
	Drift       float64
	AnchorPulse float64

	// core collision
	InnerCoreRadius float64
	Rebound         Range
	AngleJitter     float64
	CoreColor       color.RGBA // zero alpha keeps the tier color

	// outer limit at BaseRadius + Slack
	BaseRadius float64
	Slack      float64
	Outer      OuterPolicy

	// treble chaos, disabled when ChaosThreshold is zero
	ChaosThreshold float64
	ChaosAmount    float64
	ChaosColor     color.RGBA

	// Highlight draws a white core of Highlight*size on top of each particle.
	Highlight float64
}

// Particle is owned by a Field.
type Particle struct {
	Angle    float64
	Distance float64
	Size     float64
	Speed    float64
	Anchor   float64
	Color    color.RGBA

	offset render.Point
}

// Field is the fixed-size particle collection.
type Field struct {
	cfg       Config
	ramp      render.Ramp
	rng       *rand.Rand
	particles []Particle
}

// NewField creates cfg.Count particles with randomized attributes. Sampled
// distances are clamped to [InnerCoreRadius, OuterLimit].
func NewField(cfg Config, rng *rand.Rand) *Field {
	f := &Field{
		cfg:       cfg,
		ramp:      render.NewRamp(cfg.BaseColor, cfg.Tiers...),
		rng:       rng,
		particles: make([]Particle, cfg.Count),
	}
	for i := range f.particles {
		f.reset(&f.particles[i])
	}
	return f
}

// Particles exposes the particle slice for inspection.
func (f *Field) Particles() []Particle { return f.particles }

// OuterLimit is the largest distance a particle may have.
func (f *Field) OuterLimit() float64 { return f.cfg.BaseRadius + f.cfg.Slack }

func (f *Field) reset(p *Particle) {
	p.Angle = f.rng.Float64() * 2 * math.Pi
	p.Distance = math.Min(math.Max(f.cfg.Distance.sample(f.rng), f.cfg.InnerCoreRadius), f.OuterLimit())
	p.Size = f.cfg.Size.sample(f.rng)
	p.Speed = f.cfg.Speed.sample(f.rng)
	p.Anchor = p.Distance
	p.Color = f.cfg.BaseColor
	p.offset = render.Point{}
}

// Update advances every particle by one tick.
func (f *Field) Update(bass, treble float64) {
	if bass < f.cfg.SilenceThreshold {
		return
	}
	for i := range f.particles {
		f.step(&f.particles[i], bass, treble)
	}
}

func (f *Field) step(p *Particle, bass, treble float64) {
	cfg := &f.cfg

	spin := 1 + cfg.SpinGain/(p.Distance+1)
	p.Angle += p.Speed * cfg.SpinScale * spin

	switch {
	case bass > cfg.PullThreshold:
		p.Distance -= bass * cfg.PullGain
		p.Color = f.ramp.Pick(bass)
	case cfg.AnchorPulse > 0:
		target := p.Anchor + bass*cfg.AnchorPulse
		p.Distance = p.Distance*0.9 + target*0.1
		p.Color = cfg.BaseColor
	default:
		p.Distance += cfg.Drift
		p.Color = cfg.BaseColor
	}

	if p.Distance < cfg.InnerCoreRadius {
		p.Distance = cfg.InnerCoreRadius + cfg.Rebound.sample(f.rng)
		if cfg.AngleJitter > 0 {
			p.Angle += (f.rng.Float64()*2 - 1) * cfg.AngleJitter
		}
		if cfg.CoreColor.A != 0 {
			p.Color = cfg.CoreColor
		}
	}

	if limit := f.OuterLimit(); p.Distance > limit {
		if cfg.Outer == OuterReset {
			f.reset(p)
		} else {
			p.Distance = limit
		}
	}

	p.offset = render.Point{}
	if cfg.ChaosThreshold > 0 && treble > cfg.ChaosThreshold {
		p.offset.X = (f.rng.Float64()*2 - 1) * cfg.ChaosAmount * treble
		p.offset.Y = (f.rng.Float64()*2 - 1) * cfg.ChaosAmount * treble
		if cfg.ChaosColor.A != 0 {
			p.Color = cfg.ChaosColor
		}
	}

	p.Angle = math.Mod(p.Angle, 2*math.Pi)
}

// Position is the particle's screen position around center.
func (p *Particle) Position(center render.Point) render.Point {
	return render.Point{
		X: center.X + math.Cos(p.Angle)*p.Distance + p.offset.X,
		Y: center.Y + math.Sin(p.Angle)*p.Distance + p.offset.Y,
	}
}

var highlight = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Render appends one filled circle per particle to frame.
func (f *Field) Render(frame *render.Frame, center render.Point) {
	for i := range f.particles {
		p := &f.particles[i]
		pos := p.Position(center)
		frame.Circle(pos, p.Size, p.Color)
		if f.cfg.Highlight > 0 {
			frame.Circle(pos, math.Max(1, p.Size*f.cfg.Highlight), highlight)
		}
	}
}
