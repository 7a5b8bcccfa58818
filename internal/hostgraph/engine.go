package hostgraph

import (
	"image"
	"log/slog"
	"math"
	"sort"

	"github.com/wesen/grailnav/pkg/navigator"
)

// Limits bound the engine's zoom.
type Limits struct {
	MinZoom        float64
	MaxZoom        float64
	ZoomingEnabled bool
}

// DefaultLimits returns the zoom range used when none is configured.
func DefaultLimits() Limits {
	return Limits{MinZoom: 0.1, MaxZoom: 8, ZoomingEnabled: true}
}

func (l Limits) clamp(z float64) float64 {
	if l.MinZoom > 0 && z < l.MinZoom {
		return l.MinZoom
	}
	if l.MaxZoom > 0 && z > l.MaxZoom {
		return l.MaxZoom
	}
	return z
}

// Engine is a pannable, zoomable view over a Graph. It implements
// navigator.Host. Like the navigator it is not safe for concurrent use;
// the terminal front end drives it from its update loop.
type Engine struct {
	graph    *Graph
	limits   Limits
	pan      navigator.Point
	zoom     float64
	size     navigator.Size
	selected string
	log      *slog.Logger

	nextID navigator.ListenerID
	subs   map[navigator.Topic]map[navigator.ListenerID]func()
}

var _ navigator.Host = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithLimits sets the zoom range.
func WithLimits(l Limits) Option {
	return func(e *Engine) { e.limits = l }
}

// WithSize sets the initial main view size.
func WithSize(s navigator.Size) Option {
	return func(e *Engine) { e.size = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates an engine showing g at zoom 1 with zero pan.
func NewEngine(g *Graph, opts ...Option) *Engine {
	if g == nil {
		g = NewGraph()
	}
	e := &Engine{
		graph:  g,
		limits: DefaultLimits(),
		zoom:   1,
		log:    slog.New(slog.DiscardHandler),
		subs:   make(map[navigator.Topic]map[navigator.ListenerID]func()),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.zoom = e.limits.clamp(e.zoom)
	return e
}

// ── Topics ──

// On implements navigator.Host.
func (e *Engine) On(t navigator.Topic, fn func()) navigator.ListenerID {
	e.nextID++
	if e.subs[t] == nil {
		e.subs[t] = make(map[navigator.ListenerID]func())
	}
	e.subs[t][e.nextID] = fn
	return e.nextID
}

// Off implements navigator.Host.
func (e *Engine) Off(t navigator.Topic, id navigator.ListenerID) {
	delete(e.subs[t], id)
}

// ListenerCount returns the number of live subscriptions across topics.
func (e *Engine) ListenerCount() int {
	n := 0
	for _, m := range e.subs {
		n += len(m)
	}
	return n
}

// emit calls the topic's listeners in subscription order. Listeners added
// or removed during emission take effect on the next emit.
func (e *Engine) emit(topics ...navigator.Topic) {
	for _, t := range topics {
		ids := make([]navigator.ListenerID, 0, len(e.subs[t]))
		for id := range e.subs[t] {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			if fn, ok := e.subs[t][id]; ok {
				fn()
			}
		}
	}
}

// ── Graph ──

// Graph returns the current graph.
func (e *Engine) Graph() *Graph { return e.graph }

// Replace swaps in a new graph and announces a render.
func (e *Engine) Replace(g *Graph) {
	if g == nil {
		g = NewGraph()
	}
	e.graph = g
	if e.graph.Node(e.selected) == nil {
		e.selected = ""
	}
	e.log.Debug("graph replaced", "nodes", g.Len(), "edges", len(g.Edges()))
	e.emit(navigator.TopicRender)
}

// MoveNode moves a node to pos in graph coordinates.
func (e *Engine) MoveNode(id string, pos image.Point) bool {
	if !e.graph.MoveNode(id, pos, SetPos) {
		return false
	}
	e.emit(navigator.TopicRender)
	return true
}

// RemoveNode deletes a node and its edges.
func (e *Engine) RemoveNode(id string) bool {
	if !e.graph.RemoveNode(id) {
		return false
	}
	if e.selected == id {
		e.selected = ""
	}
	e.emit(navigator.TopicRender)
	return true
}

// Select highlights a node; "" clears the selection.
func (e *Engine) Select(id string) {
	if id != "" && e.graph.Node(id) == nil {
		id = ""
	}
	e.selected = id
}

// Selected returns the highlighted node ID.
func (e *Engine) Selected() string { return e.selected }

// NodeAt returns the topmost node under a rendered (main view) point.
func (e *Engine) NodeAt(rendered navigator.Point) *Node {
	p := e.ToGraph(rendered)
	n := e.graph.HitTest(image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y))))
	if n == nil {
		return nil
	}
	return &n.Data
}

// ContentBounds implements navigator.Host. An empty graph has a zero
// extent.
func (e *Engine) ContentBounds() navigator.BoundingBox {
	r, ok := e.graph.Extent()
	if !ok {
		return navigator.BoundingBox{}
	}
	return navigator.BoundingBox{
		X1: float64(r.Min.X), Y1: float64(r.Min.Y),
		X2: float64(r.Max.X), Y2: float64(r.Max.Y),
		W: float64(r.Dx()), H: float64(r.Dy()),
	}
}

// ── Viewport ──

// Size implements navigator.Host.
func (e *Engine) Size() navigator.Size { return e.size }

// Resize sets the main view size.
func (e *Engine) Resize(s navigator.Size) {
	if s == e.size {
		return
	}
	e.size = s
	e.emit(navigator.TopicResize, navigator.TopicRender)
}

// Pan implements navigator.Host.
func (e *Engine) Pan() navigator.Point { return e.pan }

// SetPan implements navigator.Host.
func (e *Engine) SetPan(p navigator.Point) {
	if !finite(p.X) || !finite(p.Y) {
		return
	}
	e.pan = p
	e.emit(navigator.TopicPan, navigator.TopicRender)
}

// PanBy shifts the pan by d rendered pixels.
func (e *Engine) PanBy(d navigator.Point) {
	e.SetPan(navigator.Point{X: e.pan.X + d.X, Y: e.pan.Y + d.Y})
}

// Zoom implements navigator.Host.
func (e *Engine) Zoom() float64 { return e.zoom }

// ZoomingEnabled implements navigator.Host.
func (e *Engine) ZoomingEnabled() bool { return e.limits.ZoomingEnabled }

// ZoomAt implements navigator.Host. level is clamped to the limits and
// the rendered point stays fixed on screen.
func (e *Engine) ZoomAt(level float64, rendered navigator.Point) {
	if !finite(level) || level <= 0 {
		return
	}
	level = e.limits.clamp(level)
	k := level / e.zoom
	e.pan = navigator.Point{
		X: rendered.X - (rendered.X-e.pan.X)*k,
		Y: rendered.Y - (rendered.Y-e.pan.Y)*k,
	}
	e.zoom = level
	e.emit(navigator.TopicZoom, navigator.TopicPan, navigator.TopicRender)
}

// ZoomBy multiplies the zoom around the view centre when zooming is
// enabled.
func (e *Engine) ZoomBy(factor float64) {
	if !e.limits.ZoomingEnabled {
		return
	}
	e.ZoomAt(e.zoom*factor, e.size.Center())
}

// Fit zooms and pans so the whole graph is visible with padding rendered
// pixels on every side.
func (e *Engine) Fit(padding float64) {
	bb := e.ContentBounds()
	w, h := e.size.W-2*padding, e.size.H-2*padding
	if bb.W <= 0 || bb.H <= 0 || w <= 0 || h <= 0 {
		return
	}
	z := e.limits.clamp(math.Min(w/bb.W, h/bb.H))
	e.zoom = z
	e.pan = navigator.Point{
		X: (e.size.W - z*(bb.X1+bb.X2)) / 2,
		Y: (e.size.H - z*(bb.Y1+bb.Y2)) / 2,
	}
	e.emit(navigator.TopicZoom, navigator.TopicPan, navigator.TopicRender)
}

// ToGraph converts a rendered (main view) point to graph coordinates.
func (e *Engine) ToGraph(rendered navigator.Point) navigator.Point {
	return navigator.Point{
		X: (rendered.X - e.pan.X) / e.zoom,
		Y: (rendered.Y - e.pan.Y) / e.zoom,
	}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
