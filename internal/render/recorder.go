package render

import "image/color"

// Recorder is a Canvas that keeps every call, in order.
type Recorder struct {
	Calls []Command
}

func (r *Recorder) FillRect(x, y, w, h float64, clr color.RGBA) {
	r.Calls = append(r.Calls, Command{Kind: KindFade, Rect: [4]float64{x, y, w, h}, Color: clr})
}

func (r *Recorder) StrokePolyline(pts []Point, closed bool, width float64, clr color.RGBA) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.Calls = append(r.Calls, Command{Kind: KindPolyline, Points: cp, Closed: closed, Width: width, Color: clr})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, clr color.RGBA) {
	r.Calls = append(r.Calls, Command{Kind: KindCircle, Center: Point{cx, cy}, Radius: radius, Color: clr})
}

// Stats is a Canvas that only counts primitives. Headless runs use it.
type Stats struct {
	Frames    int
	Rects     int
	Polylines int
	Segments  int
	Circles   int
}

func (s *Stats) FillRect(x, y, w, h float64, clr color.RGBA) {
	s.Rects++
	s.Frames++
}

func (s *Stats) StrokePolyline(pts []Point, closed bool, width float64, clr color.RGBA) {
	s.Polylines++
	n := len(pts) - 1
	if closed {
		n++
	}
	if n > 0 {
		s.Segments += n
	}
}

func (s *Stats) FillCircle(cx, cy, r float64, clr color.RGBA) {
	s.Circles++
}
