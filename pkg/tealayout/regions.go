// Package tealayout provides declarative layout computation and common
// chrome layer builders for Bubbletea v2 + Lipgloss v2 apps.
package tealayout

import "image"

// Region is a named rectangular area of the terminal.
type Region struct {
	Name string
	Rect image.Rectangle
}

// Layout holds the computed regions for a given terminal size.
type Layout struct {
	TermW, TermH int
	Regions      map[string]Region
}

// Get returns the region with the given name, or a zero Region.
func (l Layout) Get(name string) Region {
	return l.Regions[name]
}

// Contains reports whether the terminal cell (x, y) lies in the region.
func (r Region) Contains(x, y int) bool {
	return image.Pt(x, y).In(r.Rect)
}

// Local converts terminal coordinates to region-local ones.
func (r Region) Local(x, y int) image.Point {
	return image.Pt(x-r.Rect.Min.X, y-r.Rect.Min.Y)
}

// LayoutBuilder accumulates fixed regions and computes the remainder.
type LayoutBuilder struct {
	termW, termH int
	top, bottom  int // rows consumed from top/bottom
	right        int // columns consumed from right
	regions      []Region
}

// NewLayoutBuilder creates a builder for the given terminal size.
func NewLayoutBuilder(termW, termH int) *LayoutBuilder {
	return &LayoutBuilder{termW: termW, termH: termH}
}

// TopFixed reserves rows from the top. Returns the builder for chaining.
func (b *LayoutBuilder) TopFixed(name string, height int) *LayoutBuilder {
	y := b.top
	b.regions = append(b.regions, Region{
		Name: name,
		Rect: image.Rect(0, y, b.termW, y+height),
	})
	b.top += height
	return b
}

// BottomFixed reserves rows from the bottom. Returns the builder for chaining.
func (b *LayoutBuilder) BottomFixed(name string, height int) *LayoutBuilder {
	y := b.termH - b.bottom - height
	b.regions = append(b.regions, Region{
		Name: name,
		Rect: image.Rect(0, y, b.termW, y+height),
	})
	b.bottom += height
	return b
}

// RightFixed reserves columns from the right, spanning the area between
// top and bottom fixed regions. Returns the builder for chaining.
func (b *LayoutBuilder) RightFixed(name string, width int) *LayoutBuilder {
	x := b.termW - b.right - width
	b.regions = append(b.regions, Region{
		Name: name,
		Rect: image.Rect(x, b.top, x+width, b.termH-b.bottom),
	})
	b.right += width
	return b
}

// Remaining assigns whatever rectangle is left after fixed allocations.
// If the remaining area is degenerate (negative width or height), an
// empty rectangle is used.
func (b *LayoutBuilder) Remaining(name string) *LayoutBuilder {
	x1 := b.termW - b.right
	y1 := b.termH - b.bottom
	var rect image.Rectangle
	if x1 > 0 && y1 > b.top {
		rect = image.Rect(0, b.top, x1, y1)
	}
	b.regions = append(b.regions, Region{
		Name: name,
		Rect: rect,
	})
	return b
}

// SplitTop divides an already-reserved region in two: the first height
// rows become top, the rest become rest. The parent region is replaced.
// Splitting an unknown region is a no-op.
func (b *LayoutBuilder) SplitTop(parent, top string, height int, rest string) *LayoutBuilder {
	for i, r := range b.regions {
		if r.Name != parent {
			continue
		}
		if height > r.Rect.Dy() {
			height = r.Rect.Dy()
		}
		if height < 0 {
			height = 0
		}
		mid := r.Rect.Min.Y + height
		b.regions[i] = Region{Name: top, Rect: image.Rect(r.Rect.Min.X, r.Rect.Min.Y, r.Rect.Max.X, mid)}
		b.regions = append(b.regions, Region{Name: rest, Rect: image.Rect(r.Rect.Min.X, mid, r.Rect.Max.X, r.Rect.Max.Y)})
		return b
	}
	return b
}

// Build computes and returns the final Layout.
func (b *LayoutBuilder) Build() Layout {
	l := Layout{
		TermW:   b.termW,
		TermH:   b.termH,
		Regions: make(map[string]Region, len(b.regions)),
	}
	for _, r := range b.regions {
		// Clamp degenerate regions (where min > max on either axis) to empty
		if r.Rect.Min.X >= r.Rect.Max.X || r.Rect.Min.Y >= r.Rect.Max.Y {
			r.Rect = image.Rectangle{}
		}
		l.Regions[r.Name] = r
	}
	return l
}
