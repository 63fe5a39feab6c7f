// Package ring builds the containment ring: a closed polyline whose radius
// at each angle follows the spectrum and whose outline morphs from a circle
// toward a polygon or star as bass energy rises.
package ring

import (
	"image/color"
	"math"
	"sort"

	"github.com/iburimskiy/audio-reactor/internal/render"
)

// LobeTier selects a target lobe count for bass strictly above Above.
type LobeTier struct {
	Above float64
	Lobes float64
}

// Stroke is one pass of the ring outline. Scale and Offset transform the
// points around the center; a zero Color.A takes the color from the ramp.
type Stroke struct {
	Width  float64
	Scale  float64
	Offset render.Point
	Dim    int
	Color  color.RGBA
}

// Config holds the ring geometry, motion and style parameters.
type Config struct {
	Points     int
	BaseRadius float64
	DeformGain float64
	MorphGain  float64

	RotFloor float64
	RotGain  float64
	// Gate stops rotation and deformation below this bass energy.
	Gate float64

	// snare jerk, disabled when SnareThreshold is zero
	SnareThreshold float64
	SnareSpeed     float64

	// Lobes is the fixed lobe count, or the fallback target when LobeTiers
	// is set.
	Lobes         float64
	LobeTiers     []LobeTier
	LobeSmoothing float64

	// glitch twist of the drawing angle for loud bins
	TwistThreshold float64
	TwistGain      float64

	Tiers     []render.Tier
	BaseColor color.RGBA
	Strokes   []Stroke

	Glow Glow
}

// State is the ring's share of the engine state.
type State struct {
	Rotation float64
	Lobes    float64
	Glow     GlowState
}

// Generator is the stateless part of the ring; the accumulators it
// advances live in State.
type Generator struct {
	cfg   Config
	tiers []LobeTier
	ramp  render.Ramp
}

// NewGenerator sorts the lobe tiers high to low.
func NewGenerator(cfg Config) *Generator {
	tiers := make([]LobeTier, len(cfg.LobeTiers))
	copy(tiers, cfg.LobeTiers)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Above > tiers[j].Above })
	return &Generator{
		cfg:   cfg,
		tiers: tiers,
		ramp:  render.NewRamp(cfg.BaseColor, cfg.Tiers...),
	}
}

// NewState returns the initial accumulators.
func (g *Generator) NewState() State {
	return State{Lobes: g.cfg.Lobes, Glow: g.cfg.Glow.NewState()}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// RotationSpeed is the per-tick rotation step for the given energies.
func (g *Generator) RotationSpeed(bass, treble float64) float64 {
	if bass < g.cfg.Gate {
		return 0
	}
	if g.cfg.SnareThreshold > 0 && treble > g.cfg.SnareThreshold {
		return g.cfg.SnareSpeed
	}
	return g.cfg.RotFloor + bass*g.cfg.RotGain
}

// TargetLobes picks the lobe count the ring is morphing toward.
func (g *Generator) TargetLobes(bass float64) float64 {
	for _, t := range g.tiers {
		if bass > t.Above {
			return t.Lobes
		}
	}
	return g.cfg.Lobes
}

// Advance moves the rotation and lobe accumulators forward one tick.
func (g *Generator) Advance(st *State, bass, treble float64) {
	st.Rotation = math.Mod(st.Rotation+g.RotationSpeed(bass, treble), 2*math.Pi)
	if len(g.tiers) > 0 {
		k := g.cfg.LobeSmoothing
		st.Lobes = st.Lobes*k + g.TargetLobes(bass)*(1-k)
	}
	g.cfg.Glow.advance(&st.Glow, bass)
}

// Generate fills dst with exactly Points ring points around the origin and
// returns it. Drawn closed, the last point connects back to the first.
func (g *Generator) Generate(dst []render.Point, spectrum []float64, bass, rotation, lobes float64) []render.Point {
	n := g.cfg.Points
	if cap(dst) < n {
		dst = make([]render.Point, n)
	}
	dst = dst[:n]

	deform := g.cfg.DeformGain
	if bass < g.cfg.Gate {
		deform = 0
	}
	morph := bass * g.cfg.MorphGain

	for i := range dst {
		angle := 2*math.Pi*float64(i)/float64(n) + rotation

		var level float64
		if len(spectrum) > 0 {
			level = spectrum[i*len(spectrum)/n]
		}

		r := g.cfg.BaseRadius + level*deform
		if morph != 0 {
			r += math.Sin(angle*lobes) * morph
		}

		draw := angle
		if g.cfg.TwistGain != 0 && level > g.cfg.TwistThreshold {
			draw += math.Sin(float64(i)) * g.cfg.TwistGain
		}
		dst[i] = render.Point{X: math.Cos(draw) * r, Y: math.Sin(draw) * r}
	}
	return dst
}

// Color is the ramp color for the given bass energy.
func (g *Generator) Color(bass float64) color.RGBA { return g.ramp.Pick(bass) }

// Draw appends every configured stroke of pts, translated to center.
// scratch is reused for the transformed points and returned.
func (g *Generator) Draw(frame *render.Frame, scratch, pts []render.Point, center render.Point, bass float64) []render.Point {
	if cap(scratch) < len(pts) {
		scratch = make([]render.Point, len(pts))
	}
	scratch = scratch[:len(pts)]

	base := g.Color(bass)
	for _, s := range g.cfg.Strokes {
		scale := s.Scale
		if scale == 0 {
			scale = 1
		}
		for i, p := range pts {
			scratch[i] = render.Point{
				X: center.X + p.X*scale + s.Offset.X,
				Y: center.Y + p.Y*scale + s.Offset.Y,
			}
		}
		clr := s.Color
		if clr.A == 0 {
			clr = base
		}
		frame.Polyline(scratch, true, s.Width, render.Dim(clr, s.Dim))
	}
	return scratch
}
