// Package drawutil provides the vector primitives used to rasterise a graph:
// edge exit-point geometry, arrowheads, grid placement, and convenience
// functions that draw into a gg.Context.
package drawutil

import (
	"math"

	"github.com/gogpu/gg"
)

// Box is an axis-aligned rectangle in drawing coordinates.
type Box struct {
	X, Y, W, H float64
}

// Center returns the box centre.
func (b Box) Center() gg.Point {
	return gg.Pt(b.X+b.W/2, b.Y+b.H/2)
}

// EdgeExit returns the point on the border of box where the ray from the
// box centre toward target leaves it.
//
// If the box has zero size or target equals the centre, the centre is
// returned.
func EdgeExit(box Box, target gg.Point) gg.Point {
	c := box.Center()
	d := target.Sub(c)
	hw, hh := box.W/2, box.H/2

	if d.X == 0 && d.Y == 0 {
		return c
	}
	if hw <= 0 && hh <= 0 {
		return c
	}

	// Scale the direction until it touches the nearer of the two sides.
	t := math.Inf(1)
	if d.X != 0 {
		t = math.Min(t, hw/math.Abs(d.X))
	}
	if d.Y != 0 {
		t = math.Min(t, hh/math.Abs(d.Y))
	}
	return c.Add(d.Mul(t))
}

// ArrowHead returns the two base corners of an arrowhead of the given size
// whose tip sits at tip and which points away from from.
func ArrowHead(tip, from gg.Point, size float64) (left, right gg.Point) {
	dir := tip.Sub(from)
	if dir.Length() == 0 {
		return tip, tip
	}
	back := dir.Normalize().Mul(-size)
	base := tip.Add(back)
	side := gg.Pt(-back.Y, back.X).Mul(0.5)
	return base.Add(side), base.Sub(side)
}

// GridOffsets returns the screen positions in [0, length) of grid lines
// spaced every spacing world units, for a view whose left (or top) edge
// sits at world coordinate start and which draws scale pixels per unit.
func GridOffsets(start, spacing, scale, length float64) []float64 {
	if spacing <= 0 || scale <= 0 || length <= 0 {
		return nil
	}
	step := spacing * scale
	first := mod(-start, spacing) * scale
	var out []float64
	for p := first; p < length; p += step {
		out = append(out, p)
	}
	return out
}

// mod returns a non-negative modulus (math.Mod can return negative for
// negative operands).
func mod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}
