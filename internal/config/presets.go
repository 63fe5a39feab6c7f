package config

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/iburimskiy/audio-reactor/internal/audio"
	"github.com/iburimskiy/audio-reactor/internal/features"
	"github.com/iburimskiy/audio-reactor/internal/particles"
	"github.com/iburimskiy/audio-reactor/internal/render"
	"github.com/iburimskiy/audio-reactor/internal/ring"
	"github.com/iburimskiy/audio-reactor/internal/spectrum"
)

// Palette
var (
	purple       = rgb(100, 0, 150)
	deepPurple   = rgb(50, 0, 100)
	cyan         = rgb(0, 255, 255)
	softCyan     = rgb(0, 200, 255)
	red          = rgb(255, 50, 0)
	coreRed      = rgb(255, 50, 50)
	white        = rgb(255, 255, 255)
	yellow       = rgb(255, 255, 0)
	neonGreen    = rgb(50, 255, 50)
	electricBlue = rgb(50, 100, 255)
	deepBlue     = rgb(0, 50, 150)
	slateBlue    = rgb(80, 80, 200)
	duskBlue     = rgb(50, 50, 150)
	nightBlue    = rgb(50, 50, 100)
	void         = rgb(5, 5, 10)
	black        = rgb(0, 0, 0)
)

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

func fade(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha
	return c
}

var presets = map[string]func() Config{
	"shapeshifter": shapeShifter,
	"spectrum":     spectrumReactor,
	"glitch":       glitch,
	"polygon":      polygon,
	"fusion":       fusion,
	"orbs":         orbs,
	"collider":     collider,
	"smasher":      smasher,
	"pulse":        pulse,
	"vortex":       vortex,
}

// DefaultPreset is used when no preset is named.
const DefaultPreset = "shapeshifter"

// Default returns the default preset.
func Default() Config { return shapeShifter() }

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (Config, error) {
	if name == "" {
		name = DefaultPreset
	}
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q (have %v)", ErrInvalid, name, Presets())
	}
	return build(), nil
}

// base is shared by every preset: microphone input, 180 bars of a 1024
// sample block, bass in the first ten bars.
func base(name, title string) Config {
	return Config{
		Name: name,
		Audio: Audio{
			SampleRate: DefaultSampleRate,
			BlockSize:  DefaultBlockSize,
			Source:     audio.KindMic,
		},
		Analysis: Analysis{
			Bars:    DefaultBars,
			Backend: spectrum.BackendGonum,
		},
		Features: features.Config{
			Alpha:   0.7,
			DBFloor: 30,
			DBRange: 100,
			Bass:    features.Band{Lo: 0, Hi: 10},
			Treble:  features.Band{Lo: 100, Hi: DefaultBars},
		},
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			TPS:    TPS,
			Title:  title,
			Fade:   fade(void, 80),
		},
		Seed: 1,
	}
}

// atom is the heat-mapped particle cloud with a thick collision band.
func atom(radius float64, baseColor color.RGBA) particles.Config {
	return particles.Config{
		Count:            220,
		Distance:         particles.Range{Min: radius - 10, Max: radius + 10},
		Size:             particles.Range{Min: 2, Max: 4},
		Speed:            particles.Range{Min: 0.01, Max: 0.03},
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
		BaseColor:       baseColor,
		Drift:           2,
		InnerCoreRadius: 90,
		Rebound:         particles.Range{Min: 10, Max: 50},
		AngleJitter:     0.1,
		BaseRadius:      radius,
		Slack:           40,
	}
}

func heatTiers() []render.Tier {
	return []render.Tier{{Above: 0.6, Color: red}, {Above: 0.4, Color: cyan}}
}

func shapeShifter() Config {
	c := base("shapeshifter", "Shape Shifter")
	c.Particles = atom(200, purple)
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 200,
		DeformGain: 50,
		MorphGain:  60,
		RotFloor:   0.005,
		RotGain:    0.05,
		LobeTiers: []ring.LobeTier{
			{Above: 0.75, Lobes: 5},
			{Above: 0.5, Lobes: 4},
			{Above: 0.2, Lobes: 3},
		},
		LobeSmoothing: 0.9,
		Tiers:         heatTiers(),
		BaseColor:     slateBlue,
		Strokes: []ring.Stroke{
			{Width: 4},
			{Width: 2, Scale: 1.05, Dim: 2},
		},
	}
	return c
}

func polygon() Config {
	c := shapeShifter()
	c.Name = "polygon"
	c.Window.Title = "Morphing Polygon"
	c.Ring.DeformGain = 60
	c.Ring.MorphGain = 50
	c.Ring.RotGain = 0.1
	c.Ring.Lobes = 5
	c.Ring.LobeTiers = nil
	return c
}

func glitch() Config {
	c := base("glitch", "Glitch Reactor")
	c.Features.Alpha = 0.6
	c.Particles = atom(220, deepPurple)
	c.Ring = ring.Config{
		Points:         DefaultBars,
		BaseRadius:     220,
		DeformGain:     100,
		RotFloor:       0.005,
		RotGain:        0.02,
		SnareThreshold: 0.5,
		SnareSpeed:     -0.05,
		TwistThreshold: 0.5,
		TwistGain:      0.2,
		Tiers:          heatTiers(),
		BaseColor:      duskBlue,
		Strokes: []ring.Stroke{
			{Width: 3},
			{Width: 1, Offset: render.Point{X: 5, Y: 5}, Dim: 2},
		},
	}
	return c
}

func spectrumReactor() Config {
	c := base("spectrum", "Spectrum Reactor")
	c.Features.Alpha = 0.85
	c.Particles = atom(220, deepPurple)
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 220,
		DeformGain: 60,
		RotFloor:   0.005,
		RotGain:    0.01,
		Gate:       0.05,
		Tiers:      heatTiers(),
		BaseColor:  nightBlue,
		Strokes:    []ring.Stroke{{Width: 3}},
	}
	return c
}

func fusion() Config {
	c := base("fusion", "Controlled Fusion")
	c.Features.Alpha = 0.85
	c.Particles = particles.Config{
		Count:            180,
		Distance:         particles.Range{Min: 210, Max: 230},
		Size:             particles.Range{Min: 1, Max: 2.5},
		Speed:            particles.Range{Min: 0.01, Max: 0.03},
		SilenceThreshold: 0.05,
		SpinGain:         100,
		SpinScale:        1,
		PullThreshold:    0.3,
		PullGain:         12,
		Tiers:            []render.Tier{{Above: 0.6, Color: white}},
		BaseColor:        cyan,
		Drift:            2,
		InnerCoreRadius:  50,
		Rebound:          particles.Range{Min: 2, Max: 10},
		CoreColor:        electricBlue,
		BaseRadius:       220,
		Slack:            40,
	}
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 220,
		DeformGain: 50,
		RotFloor:   0.005,
		RotGain:    0.01,
		Gate:       0.05,
		BaseColor:  electricBlue,
		Strokes:    []ring.Stroke{{Width: 2}},
	}
	return c
}

func orbs() Config {
	c := base("orbs", "Macro Atom Smasher")
	c.Window.Fade = fade(rgb(10, 10, 15), 90)
	c.Particles = particles.Config{
		Count:            100,
		Distance:         particles.Range{Min: 210, Max: 230},
		Size:             particles.Range{Min: 4, Max: 9},
		Speed:            particles.Range{Min: 0.01, Max: 0.03},
		SilenceThreshold: 0.05,
		SpinGain:         150,
		SpinScale:        1,
		PullThreshold:    0.3,
		PullGain:         20,
		BaseColor:        softCyan,
		Drift:            2.5,
		InnerCoreRadius:  20,
		Rebound:          particles.Range{Min: 10, Max: 30},
		CoreColor:        yellow,
		BaseRadius:       220,
		Slack:            40,
		Highlight:        0.4,
	}
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 220,
		DeformGain: 60,
		RotFloor:   0.005,
		RotGain:    0.02,
		Gate:       0.05,
		BaseColor:  softCyan,
		Strokes: []ring.Stroke{
			{Width: 5, Color: deepBlue},
			{Width: 2},
		},
	}
	return c
}

func collider() Config {
	c := base("collider", "Atom Collider")
	c.Particles = particles.Config{
		Count:            150,
		Distance:         particles.Range{Min: 210, Max: 230},
		Size:             particles.Range{Min: 1, Max: 2.5},
		Speed:            particles.Range{Min: 0.02, Max: 0.04},
		SilenceThreshold: 0.05,
		SpinGain:         200,
		SpinScale:        0.5,
		PullThreshold:    0.3,
		PullGain:         25,
		Tiers:            []render.Tier{{Above: 0, Color: white}},
		BaseColor:        cyan,
		Drift:            3,
		InnerCoreRadius:  10,
		Rebound:          particles.Range{Min: 5, Max: 20},
		CoreColor:        electricBlue,
		BaseRadius:       220,
		Slack:            40,
	}
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 220,
		DeformGain: 60,
		RotFloor:   0.005,
		RotGain:    0.02,
		Gate:       0.05,
		BaseColor:  electricBlue,
		Strokes:    []ring.Stroke{{Width: 2}},
	}
	return c
}

func smasher() Config {
	c := base("smasher", "Atom Smasher")
	c.Features.Bass = features.Band{Lo: 0, Hi: 15}
	c.Window.Fade = fade(black, 60)
	c.Particles = particles.Config{
		Count:            200,
		Distance:         particles.Range{Min: 180, Max: 220},
		Size:             particles.Range{Min: 2, Max: 4},
		Speed:            particles.Range{Min: 0.02, Max: 0.05},
		SilenceThreshold: 0.05,
		SpinScale:        1,
		PullThreshold:    0.3,
		PullGain:         20,
		Tiers:            []render.Tier{{Above: 0, Color: coreRed}},
		BaseColor:        neonGreen,
		Drift:            2,
		InnerCoreRadius:  15,
		AngleJitter:      0.5,
		CoreColor:        white,
		BaseRadius:       200,
		Slack:            50,
	}
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 200,
		DeformGain: 50,
		RotFloor:   0.01,
		RotGain:    0.05,
		Gate:       0.05,
		BaseColor:  cyan,
		Strokes:    []ring.Stroke{{Width: 2}},
		Glow: ring.Glow{
			Radius:    30,
			Above:     0.4,
			Color:     rgb(30, 0, 0),
			FPS:       TPS,
			Frequency: 6,
			Damping:   1,
		},
	}
	return c
}

// pulse is the radial bar reactor: no particles, a bright ring of spikes
// around a core that swells with the bass.
func pulse() Config {
	c := base("pulse", "Pulse Reactor")
	c.Analysis.Bars = 120
	c.Features.Alpha = 0.6
	c.Features.Bass = features.Band{Lo: 0, Hi: 5}
	c.Features.Treble = features.Band{Lo: 80, Hi: 120}
	c.Window.Fade = rgb(10, 10, 15)
	c.Particles = particles.Config{
		BaseRadius: 120,
		Slack:      40,
	}
	c.Ring = ring.Config{
		Points:     120,
		BaseRadius: 120,
		DeformGain: 250,
		BaseColor:  rgb(50, 50, 255),
		Strokes:    []ring.Stroke{{Width: 2}},
		Glow: ring.Glow{
			Radius:    120,
			Pulse:     30,
			Above:     -1,
			Color:     rgb(20, 20, 40),
			FPS:       TPS,
			Frequency: 8,
			Damping:   1,
		},
	}
	return c
}

// vortex pulses particles outward from their anchors and shakes them on
// treble hits.
func vortex() Config {
	c := base("vortex", "Reactive Chaos Vortex")
	c.Features.Treble = features.Band{Lo: 80, Hi: DefaultBars}
	c.Window.Fade = fade(black, 40)
	c.Particles = particles.Config{
		Count:          150,
		Distance:       particles.Range{Min: 20, Max: 80},
		Size:           particles.Range{Min: 2, Max: 6},
		Speed:          particles.Range{Min: 0.01, Max: 0.03},
		SpinScale:      1,
		PullThreshold:  1,
		BaseColor:      cyan,
		AnchorPulse:    150,
		BaseRadius:     150,
		Slack:          100,
		ChaosThreshold: 0.4,
		ChaosAmount:    10,
		ChaosColor:     coreRed,
	}
	c.Ring = ring.Config{
		Points:     DefaultBars,
		BaseRadius: 150,
		DeformGain: 120,
		RotFloor:   0.008,
		RotGain:    0.017,
		BaseColor:  cyan,
		Strokes: []ring.Stroke{
			{Width: 2},
			{Width: 1, Scale: 1.05, Color: nightBlue},
		},
	}
	return c
}
