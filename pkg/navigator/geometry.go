package navigator

import "math"

// Point is a position in whichever space the caller is working in (graph,
// main view, or panel).
type Point struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Center returns the geometric centre of a surface of this size.
func (s Size) Center() Point { return Point{X: s.W / 2, Y: s.H / 2} }

// BoundingBox is the axis-aligned extent of all graph content in graph
// coordinates.
type BoundingBox struct {
	X1, Y1, X2, Y2 float64
	W, H           float64
}

// Unbounded is the sentinel that replaces an empty or degenerate extent.
// It collapses the thumbnail transform and hides the view rectangle.
var Unbounded = BoundingBox{
	X1: 0, Y1: 0,
	X2: math.Inf(1), Y2: math.Inf(1),
	W: math.Inf(1), H: math.Inf(1),
}

// Unbounded reports whether b is the degenerate sentinel.
func (b BoundingBox) Unbounded() bool {
	return math.IsInf(b.W, 1) || math.IsInf(b.H, 1)
}

// NormalizeBounds swaps a zero-width or zero-height extent for Unbounded.
func NormalizeBounds(b BoundingBox) BoundingBox {
	if b.W == 0 || b.H == 0 {
		return Unbounded
	}
	return b
}

// ComputeBoundingBox queries the host's content extent.
func ComputeBoundingBox(h Host) BoundingBox {
	return NormalizeBounds(h.ContentBounds())
}

// Transform maps graph coordinates into panel coordinates:
// panel = graph*Zoom + Pan.
type Transform struct {
	Zoom float64
	Pan  Point
}

// ComputeTransform fits bb into the panel, centred. The sentinel collapses
// to zero zoom at the panel centre.
func ComputeTransform(bb BoundingBox, panel Size) Transform {
	if bb.Unbounded() {
		return Transform{Zoom: 0, Pan: panel.Center()}
	}
	zoom := math.Min(panel.H/bb.H, panel.W/bb.W)
	return Transform{
		Zoom: zoom,
		Pan: Point{
			X: (panel.W - zoom*(bb.X1+bb.X2)) / 2,
			Y: (panel.H - zoom*(bb.Y1+bb.Y2)) / 2,
		},
	}
}

// RasterScale is the scale requested from the host's raster export. It is
// the same quantity as the transform zoom.
func RasterScale(bb BoundingBox, panel Size) float64 {
	if bb.Unbounded() {
		return 0
	}
	return math.Min(panel.W/bb.W, panel.H/bb.H)
}

// ImageOffset is the translation that centres a raster of the whole content
// at RasterScale inside the panel.
func ImageOffset(bb BoundingBox, panel Size) Point {
	if bb.Unbounded() {
		return Point{}
	}
	s := RasterScale(bb, panel)
	return Point{
		X: (panel.W - s*bb.W) / 2,
		Y: (panel.H - s*bb.H) / 2,
	}
}
