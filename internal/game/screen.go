package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-reactor/internal/render"
)

// screen replays frame commands onto an ebiten image. Command colors are
// straight alpha; ebiten wants premultiplied, so they go through NRGBA.
type screen struct {
	img *ebiten.Image
}

func (s screen) FillRect(x, y, w, h float64, clr color.RGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), color.NRGBA(clr), false)
}

func (s screen) StrokePolyline(pts []render.Point, closed bool, width float64, clr color.RGBA) {
	if len(pts) < 2 {
		return
	}
	c := color.NRGBA(clr)
	w := float32(width)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, c, true)
	}
	if closed && len(pts) > 2 {
		a, b := pts[len(pts)-1], pts[0]
		vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, c, true)
	}
}

func (s screen) FillCircle(cx, cy, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), color.NRGBA(clr), true)
}
