package particles

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/audio-reactor/internal/render"
)

var (
	purple = color.RGBA{R: 100, B: 150, A: 255}
	cyan   = color.RGBA{G: 255, B: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	red    = color.RGBA{R: 255, G: 50, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func testConfig() Config {
	return Config{
		Count:            220,
		Distance:         Range{190, 210},
		Size:             Range{2, 4},
		Speed:            Range{0.01, 0.03},
		SilenceThreshold: 0.05,
		SpinGain:         100,
		SpinScale:        1,
		PullThreshold:    0.3,
		PullGain:         12,
		Tiers: []render.Tier{
			{Above: 0.8, Color: white},
			{Above: 0.6, Color: red},
			{Above: 0.4, Color: yellow},
			{Above: 0, Color: cyan},
		},
		BaseColor:       purple,
		Drift:           2,
		InnerCoreRadius: 90,
		Rebound:         Range{10, 50},
		AngleJitter:     0.1,
		BaseRadius:      200,
		Slack:           40,
	}
}

func newTestField(cfg Config) *Field {
	return NewField(cfg, rand.New(rand.NewSource(1)))
}

func TestInitialAttributesWithinRanges(t *testing.T) {
	cfg := testConfig()
	f := newTestField(cfg)
	if len(f.Particles()) != cfg.Count {
		t.Fatalf("got %d particles, want %d", len(f.Particles()), cfg.Count)
	}
	for i, p := range f.Particles() {
		if p.Distance < 190 || p.Distance > 210 {
			t.Errorf("particle %d distance %v outside init range", i, p.Distance)
		}
		if p.Size < 2 || p.Size > 4 || p.Speed < 0.01 || p.Speed > 0.03 {
			t.Errorf("particle %d size/speed out of range: %+v", i, p)
		}
		if p.Angle < 0 || p.Angle >= 2*math.Pi {
			t.Errorf("particle %d angle %v out of range", i, p.Angle)
		}
		if p.Anchor != p.Distance {
			t.Errorf("particle %d anchor %v != distance %v", i, p.Anchor, p.Distance)
		}
	}
}

func TestDistanceBounds(t *testing.T) {
	for _, policy := range []OuterPolicy{OuterClamp, OuterReset} {
		cfg := testConfig()
		cfg.Outer = policy
		f := newTestField(cfg)
		energy := rand.New(rand.NewSource(42))

		for tick := 0; tick < 5000; tick++ {
			f.Update(energy.Float64(), energy.Float64())
			for i, p := range f.Particles() {
				if p.Distance < cfg.InnerCoreRadius || p.Distance > cfg.BaseRadius+cfg.Slack {
					t.Fatalf("%v: tick %d particle %d distance %v outside [%v, %v]",
						policy, tick, i, p.Distance, cfg.InnerCoreRadius, cfg.BaseRadius+cfg.Slack)
				}
			}
		}
	}
}

func TestDormantFreezes(t *testing.T) {
	f := newTestField(testConfig())
	f.Update(0.9, 0)
	before := append([]Particle(nil), f.Particles()...)

	for _, bass := range []float64{0, 0.01, 0.049} {
		f.Update(bass, 1)
		for i, p := range f.Particles() {
			if p.Angle != before[i].Angle || p.Distance != before[i].Distance || p.Color != before[i].Color {
				t.Fatalf("bass %v: particle %d moved: %+v -> %+v", bass, i, before[i], p)
			}
		}
	}
}

func TestImplosionPullsInward(t *testing.T) {
	f := newTestField(testConfig())
	before := append([]Particle(nil), f.Particles()...)

	f.Update(0.9, 0)

	decreased := 0
	for i, p := range f.Particles() {
		if p.Distance < before[i].Distance {
			decreased++
		}
		if p.Color != white {
			t.Fatalf("particle %d color %v, want hottest tier", i, p.Color)
		}
	}
	if decreased == 0 {
		t.Fatalf("no particle moved inward at bass 0.9")
	}
}

func TestColorTiersAndDrift(t *testing.T) {
	tests := []struct {
		bass  float64
		color color.RGBA
		delta float64
	}{
		{0.2, purple, 2},
		{0.35, cyan, -0.35 * 12},
		{0.5, yellow, -0.5 * 12},
		{0.7, red, -0.7 * 12},
		{0.85, white, -0.85 * 12},
	}
	for _, tt := range tests {
		f := newTestField(testConfig())
		// start mid field so neither limit fires
		for i := range f.particles {
			f.particles[i].Distance = 150
		}
		f.Update(tt.bass, 0)
		for i, p := range f.Particles() {
			if p.Color != tt.color {
				t.Fatalf("bass %v particle %d: color %v, want %v", tt.bass, i, p.Color, tt.color)
			}
			if math.Abs(p.Distance-(150+tt.delta)) > 1e-9 {
				t.Fatalf("bass %v particle %d: distance %v, want %v", tt.bass, i, p.Distance, 150+tt.delta)
			}
		}
	}
}

func TestSpinBoostNearCenter(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 2
	cfg.AngleJitter = 0
	f := newTestField(cfg)
	f.particles[0] = Particle{Distance: 100, Speed: 0.02}
	f.particles[1] = Particle{Distance: 230, Speed: 0.02}

	f.Update(0.2, 0)

	inner, outer := f.particles[0].Angle, f.particles[1].Angle
	if !(inner > outer) {
		t.Fatalf("inner angle step %v not larger than outer %v", inner, outer)
	}
	want := 0.02 * (1 + 100/101.0)
	if math.Abs(inner-want) > 1e-12 {
		t.Fatalf("inner angle = %v, want %v", inner, want)
	}
}

func TestCoreCollisionRebounds(t *testing.T) {
	cfg := testConfig()
	cfg.CoreColor = color.RGBA{R: 50, G: 100, B: 255, A: 255}
	f := newTestField(cfg)
	for i := range f.particles {
		f.particles[i].Distance = 95
	}
	f.Update(1, 0)
	for i, p := range f.Particles() {
		if p.Distance < 100 || p.Distance > 140 {
			t.Fatalf("particle %d distance %v outside rebound band [100,140]", i, p.Distance)
		}
		if p.Color != cfg.CoreColor {
			t.Fatalf("particle %d color %v, want core flash", i, p.Color)
		}
	}
}

func TestOuterResetReRandomizes(t *testing.T) {
	cfg := testConfig()
	cfg.Outer = OuterReset
	cfg.Drift = 100
	f := newTestField(cfg)
	f.Update(0.1, 0)
	for i, p := range f.Particles() {
		if p.Distance < 190 || p.Distance > 210 {
			t.Fatalf("particle %d distance %v, want a fresh init distance", i, p.Distance)
		}
		if p.Anchor != p.Distance {
			t.Fatalf("particle %d anchor not reset", i)
		}
	}
}

func TestSpawnOutsideBoundsIsClamped(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 50
	cfg.Distance = Range{400, 500}
	cfg.Outer = OuterReset
	f := newTestField(cfg)
	for tick := 0; tick < 3; tick++ {
		for i, p := range f.Particles() {
			if p.Distance < cfg.InnerCoreRadius || p.Distance > f.OuterLimit() {
				t.Fatalf("tick %d particle %d distance %v outside [%v, %v]",
					tick, i, p.Distance, cfg.InnerCoreRadius, f.OuterLimit())
			}
		}
		f.Update(0.1, 0)
	}

	cfg.Distance = Range{0, 20}
	f = newTestField(cfg)
	for i, p := range f.Particles() {
		if p.Distance != cfg.InnerCoreRadius {
			t.Fatalf("particle %d distance %v, want core radius %v", i, p.Distance, cfg.InnerCoreRadius)
		}
	}
}

func TestAnchorPulseEases(t *testing.T) {
	cfg := testConfig()
	cfg.SilenceThreshold = 0
	cfg.PullThreshold = 2
	cfg.AnchorPulse = 150
	cfg.Slack = 200
	f := newTestField(cfg)

	for tick := 0; tick < 200; tick++ {
		f.Update(0.5, 0)
	}
	for i, p := range f.Particles() {
		want := p.Anchor + 75
		if math.Abs(p.Distance-want) > 1e-3 {
			t.Fatalf("particle %d distance %v, want ~%v", i, p.Distance, want)
		}
	}
}

func TestTrebleChaosIsRenderOnly(t *testing.T) {
	cfg := testConfig()
	cfg.ChaosThreshold = 0.4
	cfg.ChaosAmount = 10
	cfg.ChaosColor = red
	f := newTestField(cfg)
	for i := range f.particles {
		f.particles[i].Distance = 150
	}

	f.Update(0.2, 0.9)

	center := render.Point{X: 400, Y: 400}
	moved := 0
	for i := range f.particles {
		p := &f.particles[i]
		if p.Distance != 152 {
			t.Fatalf("chaos changed distance: %v", p.Distance)
		}
		if p.Color != red {
			t.Fatalf("particle %d color %v, want chaos color", i, p.Color)
		}
		pos := p.Position(center)
		ideal := render.Point{X: center.X + math.Cos(p.Angle)*p.Distance, Y: center.Y + math.Sin(p.Angle)*p.Distance}
		dx, dy := pos.X-ideal.X, pos.Y-ideal.Y
		if math.Abs(dx) > 9 || math.Abs(dy) > 9 {
			t.Fatalf("jitter (%v,%v) beyond amount*treble", dx, dy)
		}
		if dx != 0 || dy != 0 {
			moved++
		}
	}
	if moved == 0 {
		t.Fatalf("no particle jittered")
	}
}

func TestRenderOneCirclePerParticle(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 17
	f := newTestField(cfg)

	var frame render.Frame
	center := render.Point{X: 400, Y: 300}
	f.Render(&frame, center)

	if len(frame.Commands) != 17 {
		t.Fatalf("got %d commands, want 17", len(frame.Commands))
	}
	for i, cmd := range frame.Commands {
		p := f.Particles()[i]
		if cmd.Kind != render.KindCircle || cmd.Radius != p.Size || cmd.Color != p.Color {
			t.Fatalf("command %d does not match particle: %+v", i, cmd)
		}
		r := math.Hypot(cmd.Center.X-center.X, cmd.Center.Y-center.Y)
		if math.Abs(r-p.Distance) > 1e-9 {
			t.Fatalf("command %d at radius %v, want %v", i, r, p.Distance)
		}
	}

	cfg.Highlight = 0.4
	f = newTestField(cfg)
	frame.Reset()
	f.Render(&frame, center)
	if len(frame.Commands) != 34 {
		t.Fatalf("highlight: got %d commands, want 34", len(frame.Commands))
	}
}
