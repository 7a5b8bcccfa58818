package navigator

// Topic names a host event feed.
type Topic string

const (
	TopicResize Topic = "resize"
	TopicPan    Topic = "pan"
	TopicZoom   Topic = "zoom"
	TopicRender Topic = "render"
)

// ListenerID identifies a subscription so it can be removed later.
type ListenerID int

// SnapshotOptions parameterise a raster export of the host's content.
type SnapshotOptions struct {
	Full      bool // export the whole content extent, not just the visible part
	Scale     float64
	MaxWidth  float64
	MaxHeight float64
}

// Host is the graph engine the navigator observes and commands. The
// navigator never changes the graph itself.
type Host interface {
	// ContentBounds returns the extent of all elements in graph coordinates.
	ContentBounds() BoundingBox

	On(topic Topic, fn func()) ListenerID
	Off(topic Topic, id ListenerID)

	Pan() Point
	SetPan(p Point)
	Zoom() float64
	// ZoomAt sets the zoom level keeping the rendered (main view) point fixed.
	ZoomAt(level float64, rendered Point)
	ZoomingEnabled() bool

	// Snapshot renders the content to an encoded raster. A payload that is
	// not a recognised raster (including nil) means nothing was renderable.
	Snapshot(opts SnapshotOptions) []byte

	// Size is the size of the host's main view container.
	Size() Size
}

// Channel selects which platform listener set an input handler joins.
type Channel int

const (
	// ChannelLocal receives events that start on the panel overlay:
	// pointer down, wheel and touch start.
	ChannelLocal Channel = iota
	// ChannelGlobal receives window-level events: pointer move/up/out and
	// touch move/end, wherever they happen.
	ChannelGlobal
)

// Panel is the surface that hosts the thumbnail and the view rectangle.
type Panel interface {
	Size() Size
	// Origin is the panel's top-left corner in page coordinates.
	Origin() Point

	SetImage(payload []byte, offset Point)
	ClearImage()
	SetView(r Rect, visible bool)
	SetHover(on bool)

	Listen(ch Channel, fn func(Event)) ListenerID
	Unlisten(ch Channel, id ListenerID)

	// Clear empties the panel's content but leaves it in place.
	Clear()
	// Remove detaches the panel from its parent.
	Remove()
}

// Platform creates or locates panels.
type Platform interface {
	CreatePanel() Panel
	// LookupPanel resolves a "#id" or ".class" selector.
	LookupPanel(selector string) (Panel, bool)
}
