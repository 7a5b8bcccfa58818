package navigator

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/wesen/grailnav/pkg/throttle"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// ── fakeHost ──

type zoomCall struct {
	level    float64
	rendered Point
}

type fakeHost struct {
	bounds      BoundingBox
	pan         Point
	zoom        float64
	size        Size
	zoomEnabled bool
	payload     []byte

	nextID    ListenerID
	subs      map[Topic]map[ListenerID]func()
	setPans   []Point
	zooms     []zoomCall
	snapshots []SnapshotOptions
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		bounds:      BoundingBox{X1: 0, Y1: 0, X2: 800, Y2: 600, W: 800, H: 600},
		zoom:        2,
		size:        Size{W: 800, H: 600},
		zoomEnabled: true,
		subs:        make(map[Topic]map[ListenerID]func()),
	}
}

func (h *fakeHost) ContentBounds() BoundingBox { return h.bounds }

func (h *fakeHost) On(t Topic, fn func()) ListenerID {
	h.nextID++
	if h.subs[t] == nil {
		h.subs[t] = make(map[ListenerID]func())
	}
	h.subs[t][h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) Off(t Topic, id ListenerID) { delete(h.subs[t], id) }

func (h *fakeHost) emit(t Topic) {
	ids := make([]int, 0, len(h.subs[t]))
	for id := range h.subs[t] {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := h.subs[t][ListenerID(id)]; ok {
			fn()
		}
	}
}

func (h *fakeHost) listenerCount() int {
	n := 0
	for _, m := range h.subs {
		n += len(m)
	}
	return n
}

func (h *fakeHost) Pan() Point { return h.pan }

func (h *fakeHost) SetPan(p Point) {
	h.pan = p
	h.setPans = append(h.setPans, p)
	h.emit(TopicPan)
}

func (h *fakeHost) Zoom() float64 { return h.zoom }

func (h *fakeHost) ZoomAt(level float64, rendered Point) {
	h.zooms = append(h.zooms, zoomCall{level: level, rendered: rendered})
	h.pan.X = rendered.X - (rendered.X-h.pan.X)*level/h.zoom
	h.pan.Y = rendered.Y - (rendered.Y-h.pan.Y)*level/h.zoom
	h.zoom = level
	h.emit(TopicZoom)
}

func (h *fakeHost) ZoomingEnabled() bool { return h.zoomEnabled }

func (h *fakeHost) Snapshot(opts SnapshotOptions) []byte {
	h.snapshots = append(h.snapshots, opts)
	return h.payload
}

func (h *fakeHost) Size() Size { return h.size }

// ── fakePanel / fakePlatform ──

type fakePanel struct {
	size   Size
	origin Point

	image       []byte
	imageOffset Point
	imageClears int
	view        Rect
	visible     bool
	hover       bool
	viewWrites  int

	nextID    ListenerID
	listeners map[Channel]map[ListenerID]func(Event)
	cleared   bool
	removed   bool
}

func newFakePanel() *fakePanel {
	return &fakePanel{
		size:      Size{W: 200, H: 150},
		listeners: make(map[Channel]map[ListenerID]func(Event)),
	}
}

func (p *fakePanel) Size() Size    { return p.size }
func (p *fakePanel) Origin() Point { return p.origin }

func (p *fakePanel) SetImage(payload []byte, offset Point) {
	p.image, p.imageOffset = payload, offset
}

func (p *fakePanel) ClearImage() {
	p.image = nil
	p.imageClears++
}

func (p *fakePanel) SetView(r Rect, visible bool) {
	p.view, p.visible = r, visible
	p.viewWrites++
}

func (p *fakePanel) SetHover(on bool) { p.hover = on }

func (p *fakePanel) Listen(ch Channel, fn func(Event)) ListenerID {
	p.nextID++
	if p.listeners[ch] == nil {
		p.listeners[ch] = make(map[ListenerID]func(Event))
	}
	p.listeners[ch][p.nextID] = fn
	return p.nextID
}

func (p *fakePanel) Unlisten(ch Channel, id ListenerID) { delete(p.listeners[ch], id) }

func (p *fakePanel) dispatch(ch Channel, ev Event) {
	for _, fn := range p.listeners[ch] {
		fn(ev)
	}
}

func (p *fakePanel) listenerCount() int {
	n := 0
	for _, m := range p.listeners {
		n += len(m)
	}
	return n
}

func (p *fakePanel) Clear()  { p.cleared = true }
func (p *fakePanel) Remove() { p.removed = true }

type fakePlatform struct {
	created  []*fakePanel
	byName   map[string]*fakePanel
	template *fakePanel
}

func (f *fakePlatform) CreatePanel() Panel {
	p := f.template
	if p == nil {
		p = newFakePanel()
	}
	f.template = nil
	f.created = append(f.created, p)
	return p
}

func (f *fakePlatform) LookupPanel(sel string) (Panel, bool) {
	p, ok := f.byName[sel]
	return p, ok
}

// ── helpers ──

type fixture struct {
	host     *fakeHost
	panel    *fakePanel
	platform *fakePlatform
	clock    *throttle.FakeClock
	nav      *Navigator
}

// newFixture builds a navigator over an 800x600 host at zoom 2 with a
// 200x150 panel. The thumbnail transform is zoom 0.25 with zero pan, so
// the view rectangle starts at (0,0,100,75).
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		host:  newFakeHost(),
		panel: newFakePanel(),
		clock: throttle.NewFakeClock(epoch),
	}
	f.platform = &fakePlatform{template: f.panel}
	opts = append([]Option{WithClock(f.clock)}, opts...)
	nav, err := New(f.host, f.platform, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.nav = nav
	return f
}

func (f *fixture) down(x, y float64) { f.nav.HandleInput(Input{Kind: InputPointerDown, X: x, Y: y}) }
func (f *fixture) move(x, y float64) { f.nav.HandleInput(Input{Kind: InputPointerMove, X: x, Y: y}) }
func (f *fixture) up(x, y float64)   { f.nav.HandleInput(Input{Kind: InputPointerUp, X: x, Y: y}) }

func pngPayload(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearRect(a, b Rect) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.W, b.W) && near(a.H, b.H)
}
