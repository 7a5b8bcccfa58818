package navigator

import "math"

// Event is the union of raw platform input events the panel can deliver:
// PointerEvent, TouchEvent and WheelEvent.
type Event interface {
	isEvent()
}

// PointerType is the phase of a mouse/pen event.
type PointerType int

const (
	PointerDown PointerType = iota
	PointerMove
	PointerUp
	PointerOut
)

// PointerEvent is a mouse-style event. Offset is relative to the target
// element's origin and may be nil when the platform does not supply it.
type PointerEvent struct {
	Type   PointerType
	Page   Point
	Offset *Point
	Target Point // page origin of the element the event was dispatched to
}

// TouchType is the phase of a touch event.
type TouchType int

const (
	TouchStart TouchType = iota
	TouchMove
	TouchEnd
)

// TouchEvent carries page coordinates of active touches. Only the first
// touch is considered.
type TouchEvent struct {
	Type    TouchType
	Touches []Point
}

// WheelEvent is a scroll event. Platforms report the amount in one of three
// fields (zero means absent), sometimes only on a nested original event.
type WheelEvent struct {
	WheelDeltaY float64
	WheelDelta  float64
	Detail      float64

	Page   Point
	Offset *Point
	Target Point

	Original *WheelEvent
}

func (PointerEvent) isEvent() {}
func (TouchEvent) isEvent()   {}
func (WheelEvent) isEvent()   {}

// Kind is the canonical input kind consumed by the state machine.
type Kind int

const (
	InputPointerDown Kind = iota
	InputPointerMove
	InputPointerUp
	InputWheel
)

func (k Kind) String() string {
	switch k {
	case InputPointerDown:
		return "pointer-down"
	case InputPointerMove:
		return "pointer-move"
	case InputPointerUp:
		return "pointer-up"
	case InputWheel:
		return "wheel"
	}
	return "unknown"
}

// Input is a platform-independent input in panel coordinates.
type Input struct {
	Kind      Kind
	X, Y      float64
	ZoomDelta float64 // signed, only for InputWheel
}

// Point returns the input position.
func (in Input) Point() Point { return Point{X: in.X, Y: in.Y} }

// Frame is the geometry Normalize needs to map page coordinates into the
// panel.
type Frame struct {
	Origin Point // panel origin in page coordinates
	View   Rect  // current view rectangle, used for touch start/end
}

// Normalize maps a raw platform event into an Input. The event is never
// modified. ok is false for events the navigator ignores (pointer out,
// touch move without touches, unknown types).
func Normalize(ev Event, f Frame) (Input, bool) {
	switch e := ev.(type) {
	case PointerEvent:
		var kind Kind
		switch e.Type {
		case PointerDown:
			kind = InputPointerDown
		case PointerMove:
			kind = InputPointerMove
		case PointerUp:
			kind = InputPointerUp
		default:
			return Input{}, false
		}
		p := local(e.Page, e.Offset, e.Target, f.Origin)
		return Input{Kind: kind, X: p.X, Y: p.Y}, true

	case TouchEvent:
		// Start and end count as the middle of the view rectangle.
		mid := Point{X: f.View.X + f.View.W/2, Y: f.View.Y + f.View.H/2}
		switch e.Type {
		case TouchStart:
			return Input{Kind: InputPointerDown, X: mid.X, Y: mid.Y}, true
		case TouchEnd:
			return Input{Kind: InputPointerUp, X: mid.X, Y: mid.Y}, true
		case TouchMove:
			if len(e.Touches) == 0 {
				return Input{}, false
			}
			p := local(e.Touches[0], nil, Point{}, f.Origin)
			return Input{Kind: InputPointerMove, X: p.X, Y: p.Y}, true
		}
		return Input{}, false

	case WheelEvent:
		p := local(e.Page, e.Offset, e.Target, f.Origin)
		return Input{Kind: InputWheel, X: p.X, Y: p.Y, ZoomDelta: WheelDelta(e)}, true
	}
	return Input{}, false
}

// WheelDelta extracts a single signed zoom magnitude from a wheel event:
// the first non-zero of WheelDeltaY/1000, WheelDelta/1000 and Detail/-32,
// searching the event and then its nested originals.
func WheelDelta(e WheelEvent) float64 {
	for ev := &e; ev != nil; ev = ev.Original {
		for _, d := range [...]float64{ev.WheelDeltaY / 1000, ev.WheelDelta / 1000, ev.Detail / -32} {
			if d != 0 && !math.IsNaN(d) {
				return d
			}
		}
	}
	return 0
}

// ZoomRate converts a normalised wheel delta into a multiplicative factor.
func ZoomRate(delta float64) float64 {
	return math.Pow(10, delta)
}

func local(page Point, offset *Point, target, origin Point) Point {
	if offset != nil {
		return Point{X: target.X + offset.X - origin.X, Y: target.Y + offset.Y - origin.Y}
	}
	return Point{X: page.X - origin.X, Y: page.Y - origin.Y}
}
