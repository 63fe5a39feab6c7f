package ring

import (
	"image/color"

	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/audio-reactor/internal/render"
)

// Glow is the pulsing core drawn at the ring center. Its radius springs
// toward Radius + bass*Pulse and it is only drawn while bass > Above.
// A zero Color.A disables it.
type Glow struct {
	Radius    float64
	Pulse     float64
	Above     float64
	Color     color.RGBA
	FPS       int
	Frequency float64
	Damping   float64
}

// GlowState is the spring position and velocity.
type GlowState struct {
	Radius   float64
	Velocity float64

	spring harmonica.Spring
	ready  bool
}

// Enabled reports whether the glow is drawn at all.
func (g Glow) Enabled() bool { return g.Color.A != 0 }

// NewState starts the spring at rest on the base radius.
func (g Glow) NewState() GlowState {
	fps := g.FPS
	if fps <= 0 {
		fps = 60
	}
	return GlowState{
		Radius: g.Radius,
		spring: harmonica.NewSpring(harmonica.FPS(fps), g.Frequency, g.Damping),
		ready:  true,
	}
}

func (g Glow) advance(st *GlowState, bass float64) {
	if !g.Enabled() || !st.ready {
		return
	}
	target := g.Radius + bass*g.Pulse
	st.Radius, st.Velocity = st.spring.Update(st.Radius, st.Velocity, target)
	if st.Radius < 0 {
		st.Radius = 0
	}
}

// DrawGlow appends the core circle when the glow is active.
func (g *Generator) DrawGlow(frame *render.Frame, st GlowState, center render.Point, bass float64) {
	glow := g.cfg.Glow
	if !glow.Enabled() || bass <= glow.Above || st.Radius <= 0 {
		return
	}
	frame.Circle(center, st.Radius, glow.Color)
}
