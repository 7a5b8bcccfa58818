// Package navigator implements a minimap for a pannable, zoomable graph
// view: a panel showing a scaled raster of the whole graph plus a rectangle
// marking the visible viewport, which can be dragged to pan and scrolled to
// zoom the main view.
//
// The navigator is single-threaded. Host events, panel events and Clock
// callbacks must all be delivered from the same goroutine (or otherwise
// serialised); timers never run navigator code concurrently with input.
package navigator

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/wesen/grailnav/pkg/throttle"
)

var (
	ErrNilHost     = errors.New("navigator: nil host")
	ErrNilPlatform = errors.New("navigator: nil platform and no container")
)

// State is the interaction state. Dragging doubles as the tracking lock:
// while it holds, host pan/zoom events do not move the view rectangle.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Controller is the public surface of a navigator instance.
type Controller interface {
	// Resize re-reads host and panel sizes and rebuilds geometry.
	Resize()
	// HandleEvent consumes a raw platform event.
	HandleEvent(ev Event)
	// HandleInput consumes an already-normalised input.
	HandleInput(in Input)
	// RequestRender asks for a thumbnail refresh through the throttle.
	RequestRender()

	State() State
	View() Rect
	Transform() Transform
	BoundingBox() BoundingBox

	// Destroy unsubscribes everything, cancels timers and removes or
	// clears the panel.
	Destroy()
}

type hostSub struct {
	topic Topic
	id    ListenerID
}

type panelSub struct {
	ch Channel
	id ListenerID
}

// Navigator is a minimap bound to one host and one panel.
type Navigator struct {
	host   Host
	panel  Panel
	opts   options
	log    *slog.Logger
	custom bool // panel was supplied by the caller

	bb        BoundingBox
	hostSize  Size
	panelSize Size
	transform Transform

	view        Rect
	viewVisible bool
	hover       bool

	state     State
	hook      Point
	lastDown  time.Time
	moveTimer throttle.Timer

	renderer *throttle.Throttle

	hostSubs  []hostSub
	panelSubs []panelSub
	destroyed bool
}

var _ Controller = (*Navigator)(nil)

// New creates a navigator for host. platform supplies the panel unless
// WithContainer is given.
func New(host Host, platform Platform, opts ...Option) (*Navigator, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if platform == nil && o.container == nil {
		return nil, ErrNilPlatform
	}

	n := &Navigator{
		host: host,
		opts: o,
		log:  o.logger.With("component", "navigator"),
	}
	n.bb = ComputeBoundingBox(host)
	n.hostSize = host.Size()

	n.initPanel(platform)
	n.initThumbnail()
	n.initView()
	n.initOverlay()

	n.log.Info("created",
		"live", o.liveRate.String(),
		"rerender", o.rerenderDelay,
		"custom_container", n.custom)
	return n, nil
}

func (n *Navigator) initPanel(platform Platform) {
	switch {
	case n.opts.container != nil:
		n.panel, n.custom = n.opts.container, true
	case n.opts.selector != "":
		if p, ok := platform.LookupPanel(n.opts.selector); ok && p != nil {
			n.panel, n.custom = p, true
			break
		}
		n.log.Warn("container selector matched nothing, creating panel", "selector", n.opts.selector)
		n.panel = platform.CreatePanel()
	default:
		n.panel = platform.CreatePanel()
	}
	n.panelSize = n.panel.Size()
	n.on(TopicResize, n.Resize)
}

func (n *Navigator) initThumbnail() {
	n.setupThumbnailSizes()
	n.renderer = throttle.New(n.opts.rerenderDelay, n.render, throttle.WithClock(n.opts.clock))
	n.on(TopicRender, n.renderer.Call)
}

func (n *Navigator) initView() {
	n.setupView()
	n.on(TopicZoom, n.setupView)
	n.on(TopicPan, n.setupView)
}

func (n *Navigator) initOverlay() {
	n.listen(ChannelLocal, n.HandleEvent)
	n.listen(ChannelGlobal, n.HandleEvent)
}

func (n *Navigator) on(t Topic, fn func()) {
	n.hostSubs = append(n.hostSubs, hostSub{topic: t, id: n.host.On(t, fn)})
}

func (n *Navigator) listen(ch Channel, fn func(Event)) {
	n.panelSubs = append(n.panelSubs, panelSub{ch: ch, id: n.panel.Listen(ch, fn)})
}

// setupThumbnailSizes re-derives the bounding box and transform.
func (n *Navigator) setupThumbnailSizes() {
	n.bb = ComputeBoundingBox(n.host)
	n.transform = ComputeTransform(n.bb, n.panelSize)
}

// checkThumbnailSizes re-derives geometry and, when the transform moved,
// rebuilds the view rectangle. It reports whether anything changed.
func (n *Navigator) checkThumbnailSizes() bool {
	prev := n.transform
	n.setupThumbnailSizes()
	if prev == n.transform {
		return false
	}
	n.log.Debug("thumbnail transform changed",
		"zoom", n.transform.Zoom, "pan_x", n.transform.Pan.X, "pan_y", n.transform.Pan.Y)
	n.setupView()
	return true
}

// setupView derives the view rectangle from the host's pan and zoom. It is
// a no-op while a drag holds the tracking lock.
func (n *Navigator) setupView() {
	if n.state == StateDragging {
		return
	}
	n.view = ViewRectFor(n.hostSize, n.host.Zoom(), n.host.Pan(), n.transform, n.opts.border)
	n.viewVisible = !n.bb.Unbounded() && finiteRect(n.view) && n.view.W > 0 && n.view.H > 0
	n.panel.SetView(n.view, n.viewVisible)
}

// Resize implements Controller.
func (n *Navigator) Resize() {
	if n.destroyed {
		return
	}
	n.hostSize = n.host.Size()
	n.panelSize = n.panel.Size()
	if n.checkThumbnailSizes() {
		n.renderer.Call()
	}
	n.setupView()
}

// State implements Controller.
func (n *Navigator) State() State { return n.state }

// View implements Controller.
func (n *Navigator) View() Rect { return n.view }

// ViewVisible reports whether the rectangle is currently shown.
func (n *Navigator) ViewVisible() bool { return n.viewVisible }

// Hovering reports whether the pointer was last seen over the rectangle.
func (n *Navigator) Hovering() bool { return n.hover }

// Transform implements Controller.
func (n *Navigator) Transform() Transform { return n.transform }

// BoundingBox implements Controller.
func (n *Navigator) BoundingBox() BoundingBox { return n.bb }

// Panel returns the panel the navigator draws into.
func (n *Navigator) Panel() Panel { return n.panel }

// Destroy implements Controller. It is safe to call more than once.
func (n *Navigator) Destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true

	for _, s := range n.hostSubs {
		n.host.Off(s.topic, s.id)
	}
	n.hostSubs = nil
	for _, s := range n.panelSubs {
		n.panel.Unlisten(s.ch, s.id)
	}
	n.panelSubs = nil

	n.renderer.Cancel()
	if n.moveTimer != nil {
		n.moveTimer.Stop()
		n.moveTimer = nil
	}
	n.state = StateIdle

	if n.custom && !n.opts.removeCustomContainer {
		n.panel.Clear()
	} else {
		n.panel.Remove()
	}
	n.log.Info("destroyed")
}

func finiteRect(r Rect) bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
