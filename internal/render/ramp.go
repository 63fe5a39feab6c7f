package render

import (
	"image/color"
	"sort"
)

// Tier maps energies strictly above Above to Color.
type Tier struct {
	Above float64
	Color color.RGBA
}

// Ramp is an ordered cool to hot color ramp. Tiers are evaluated from the
// highest threshold down so the highest matching tier wins.
type Ramp struct {
	tiers []Tier
	base  color.RGBA
}

// NewRamp builds a ramp. base is returned when no tier matches.
func NewRamp(base color.RGBA, tiers ...Tier) Ramp {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Above > sorted[j].Above })
	return Ramp{tiers: sorted, base: base}
}

// Pick returns the color for energy e.
func (r Ramp) Pick(e float64) color.RGBA {
	for _, t := range r.tiers {
		if e > t.Above {
			return t.Color
		}
	}
	return r.base
}

// Dim divides each color channel by d, keeping alpha.
func Dim(c color.RGBA, d int) color.RGBA {
	if d <= 1 {
		return c
	}
	return color.RGBA{R: c.R / uint8(d), G: c.G / uint8(d), B: c.B / uint8(d), A: c.A}
}
