package render

import "image/color"

// Point is a 2D position in screen space.
type Point struct {
	X, Y float64
}

// Kind identifies a draw primitive.
type Kind uint8

const (
	KindFade Kind = iota
	KindPolyline
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindFade:
		return "fade"
	case KindPolyline:
		return "polyline"
	case KindCircle:
		return "circle"
	}
	return "unknown"
}

// Command is one immediate-mode draw call.
//
// Fade uses Rect (X, Y, W, H) and Color including alpha.
// Polyline uses Points, Width, Closed and Color.
// Circle uses Center, Radius and Color.
type Command struct {
	Kind   Kind
	Color  color.RGBA
	Rect   [4]float64
	Points []Point
	Closed bool
	Width  float64
	Center Point
	Radius float64
}

// Canvas is the presentation surface the commands are replayed on.
type Canvas interface {
	FillRect(x, y, w, h float64, clr color.RGBA)
	StrokePolyline(pts []Point, closed bool, width float64, clr color.RGBA)
	FillCircle(cx, cy, r float64, clr color.RGBA)
}

// Frame is the ordered command list produced by one tick.
// Its buffers are reused between ticks.
type Frame struct {
	Commands []Command

	points [][]Point
	used   int
}

// Reset empties the frame but keeps its backing storage.
func (f *Frame) Reset() {
	f.Commands = f.Commands[:0]
	f.used = 0
}

// Fade appends a translucent background rect.
func (f *Frame) Fade(w, h float64, clr color.RGBA) {
	f.Commands = append(f.Commands, Command{Kind: KindFade, Rect: [4]float64{0, 0, w, h}, Color: clr})
}

// Polyline appends a polyline. The points are copied into frame owned storage.
func (f *Frame) Polyline(pts []Point, closed bool, width float64, clr color.RGBA) {
	buf := f.pointBuf(len(pts))
	copy(buf, pts)
	f.Commands = append(f.Commands, Command{Kind: KindPolyline, Points: buf, Closed: closed, Width: width, Color: clr})
}

// Circle appends a filled circle.
func (f *Frame) Circle(c Point, r float64, clr color.RGBA) {
	f.Commands = append(f.Commands, Command{Kind: KindCircle, Center: c, Radius: r, Color: clr})
}

func (f *Frame) pointBuf(n int) []Point {
	if f.used == len(f.points) {
		f.points = append(f.points, nil)
	}
	buf := f.points[f.used]
	if cap(buf) < n {
		buf = make([]Point, n)
	}
	buf = buf[:n]
	f.points[f.used] = buf
	f.used++
	return buf
}

// Replay draws every command onto c in order.
func (f *Frame) Replay(c Canvas) {
	for i := range f.Commands {
		cmd := &f.Commands[i]
		switch cmd.Kind {
		case KindFade:
			c.FillRect(cmd.Rect[0], cmd.Rect[1], cmd.Rect[2], cmd.Rect[3], cmd.Color)
		case KindPolyline:
			c.StrokePolyline(cmd.Points, cmd.Closed, cmd.Width, cmd.Color)
		case KindCircle:
			c.FillCircle(cmd.Center.X, cmd.Center.Y, cmd.Radius, cmd.Color)
		}
	}
}
