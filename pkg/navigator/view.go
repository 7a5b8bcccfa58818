package navigator

// Rect is an axis-aligned rectangle in panel coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the offset of the rectangle's centre from its origin.
func (r Rect) Center() Point { return Point{X: r.W / 2, Y: r.H / 2} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Insets are the border widths drawn around the view rectangle.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns Left+Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top+Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// ViewRectFor projects the host's visible region into panel coordinates.
// host is the main view size, hostZoom and hostPan its current state.
func ViewRectFor(host Size, hostZoom float64, hostPan Point, t Transform, border Insets) Rect {
	var r Rect
	r.W = host.W / hostZoom * t.Zoom
	r.X = -hostPan.X*r.W/host.W + t.Pan.X - border.Left
	r.H = host.H / hostZoom * t.Zoom
	r.Y = -hostPan.Y*r.H/host.H + t.Pan.Y - border.Top
	return r
}

// HostPanFor is the inverse of ViewRectFor: the host pan that would place
// the view rectangle at r. ok is false for a zero-sized rectangle.
func HostPanFor(r Rect, host Size, t Transform, border Insets) (Point, bool) {
	if r.W == 0 || r.H == 0 {
		return Point{}, false
	}
	return Point{
		X: -(r.X + border.Left - t.Pan.X) * host.W / r.W,
		Y: -(r.Y + border.Top - t.Pan.Y) * host.H / r.H,
	}, true
}

// hovering reports whether p is over the rectangle including its border.
// The test is strict on every edge.
func hovering(r Rect, border Insets, p Point) bool {
	return p.X > r.X && p.X < r.X+border.Horizontal()+r.W &&
		p.Y > r.Y && p.Y < r.Y+border.Vertical()+r.H
}
