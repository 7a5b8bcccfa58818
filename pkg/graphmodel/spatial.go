// Package graphmodel provides a generic spatial graph with positioned nodes,
// labeled edges, stable iteration order, hit testing and extent queries.
package graphmodel

import "image"

// Spatial is the minimal interface for a positioned, sized element.
type Spatial interface {
	Pos() image.Point
	Size() image.Point
}

// CenterOf returns the center point of a Spatial element.
func CenterOf(s Spatial) image.Point {
	p := s.Pos()
	sz := s.Size()
	return image.Pt(p.X+sz.X/2, p.Y+sz.Y/2)
}

// BoundsOf returns the bounding rectangle of a Spatial element.
func BoundsOf(s Spatial) image.Rectangle {
	p := s.Pos()
	sz := s.Size()
	return image.Rect(p.X, p.Y, p.X+sz.X, p.Y+sz.Y)
}

// Union returns the smallest rectangle containing a and b. Unlike
// image.Rectangle.Union it keeps zero-area rectangles, so a single point
// element still contributes to the extent.
func Union(a, b image.Rectangle) image.Rectangle {
	return image.Rect(
		min(a.Min.X, b.Min.X), min(a.Min.Y, b.Min.Y),
		max(a.Max.X, b.Max.X), max(a.Max.Y, b.Max.Y),
	)
}
