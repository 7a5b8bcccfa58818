package grailui

import (
	"bytes"
	"image"
	_ "image/png" // thumbnail payloads are PNG
	"log/slog"
	"math"
	"sort"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/wesen/grailnav/pkg/cellbuf"
	"github.com/wesen/grailnav/pkg/navigator"
)

// MinimapSelector names the sidebar slot a configured container can point
// at.
const MinimapSelector = "#minimap"

// termPanel is a navigator.Panel drawn with half blocks. The navigator
// sees pixels: one terminal cell is one pixel wide and two tall.
type termPanel struct {
	origin     image.Point // top-left cell on screen
	cols, rows int

	thumb     image.Image
	offset    navigator.Point
	thumbSize navigator.Size // panel size when the thumbnail arrived

	view    navigator.Rect
	visible bool
	hover   bool
	removed bool

	nextID    navigator.ListenerID
	listeners map[navigator.Channel]map[navigator.ListenerID]func(navigator.Event)

	log *slog.Logger
}

var _ navigator.Panel = (*termPanel)(nil)

func newTermPanel(bounds image.Rectangle, log *slog.Logger) *termPanel {
	p := &termPanel{
		listeners: make(map[navigator.Channel]map[navigator.ListenerID]func(navigator.Event)),
		log:       log,
	}
	p.place(bounds)
	return p
}

// place moves the panel to a screen rectangle in cells.
func (p *termPanel) place(r image.Rectangle) {
	p.origin = r.Min
	p.cols, p.rows = max(0, r.Dx()), max(0, r.Dy())
}

func (p *termPanel) bounds() image.Rectangle {
	return image.Rect(p.origin.X, p.origin.Y, p.origin.X+p.cols, p.origin.Y+p.rows)
}

// Size implements navigator.Panel.
func (p *termPanel) Size() navigator.Size {
	w, h := cellbuf.PixelSize(p.cols, p.rows)
	return navigator.Size{W: float64(w), H: float64(h)}
}

// Origin implements navigator.Panel.
func (p *termPanel) Origin() navigator.Point {
	return navigator.Point{X: float64(p.origin.X), Y: float64(p.origin.Y * 2)}
}

// SetImage implements navigator.Panel.
func (p *termPanel) SetImage(payload []byte, offset navigator.Point) {
	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		p.log.Debug("thumbnail decode failed", "err", err)
		p.ClearImage()
		return
	}
	p.thumb = img
	p.offset = offset
	p.thumbSize = p.Size()
}

// ClearImage implements navigator.Panel.
func (p *termPanel) ClearImage() { p.thumb = nil }

// SetView implements navigator.Panel.
func (p *termPanel) SetView(r navigator.Rect, visible bool) {
	p.view, p.visible = r, visible
}

// SetHover implements navigator.Panel.
func (p *termPanel) SetHover(on bool) { p.hover = on }

// Listen implements navigator.Panel.
func (p *termPanel) Listen(ch navigator.Channel, fn func(navigator.Event)) navigator.ListenerID {
	p.nextID++
	if p.listeners[ch] == nil {
		p.listeners[ch] = make(map[navigator.ListenerID]func(navigator.Event))
	}
	p.listeners[ch][p.nextID] = fn
	return p.nextID
}

// Unlisten implements navigator.Panel.
func (p *termPanel) Unlisten(ch navigator.Channel, id navigator.ListenerID) {
	delete(p.listeners[ch], id)
}

// Clear implements navigator.Panel.
func (p *termPanel) Clear() {
	p.thumb = nil
	p.visible = false
	p.hover = false
}

// Remove implements navigator.Panel.
func (p *termPanel) Remove() {
	p.Clear()
	p.removed = true
}

func (p *termPanel) listenerCount() int {
	n := 0
	for _, m := range p.listeners {
		n += len(m)
	}
	return n
}

// dispatch delivers ev to the channel's listeners in subscription order.
func (p *termPanel) dispatch(ch navigator.Channel, ev navigator.Event) {
	ids := make([]navigator.ListenerID, 0, len(p.listeners[ch]))
	for id := range p.listeners[ch] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if fn, ok := p.listeners[ch][id]; ok {
			fn(ev)
		}
	}
}

// cellPoint maps a terminal cell to page pixels, at the cell's centre.
func cellPoint(x, y int) navigator.Point {
	return navigator.Point{X: float64(x) + 0.5, Y: float64(2*y) + 1}
}

// raster draws the thumbnail and the view rectangle at pixel resolution.
// A thumbnail made for a different panel size is rescaled until the next
// render replaces it.
func (p *termPanel) raster() image.Image {
	pw, ph := cellbuf.PixelSize(p.cols, p.rows)
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(colorBG), image.Point{}, xdraw.Src)

	if p.thumb != nil {
		sb := p.thumb.Bounds()
		k := 1.0
		size := p.Size()
		if size != p.thumbSize && p.thumbSize.W > 0 && p.thumbSize.H > 0 {
			k = math.Min(size.W/p.thumbSize.W, size.H/p.thumbSize.H)
		}
		at := image.Pt(int(math.Round(p.offset.X*k)), int(math.Round(p.offset.Y*k)))
		if k == 1 {
			xdraw.Copy(dst, at, p.thumb, sb, xdraw.Over, nil)
		} else {
			dr := image.Rectangle{Min: at, Max: at.Add(image.Pt(
				int(math.Round(float64(sb.Dx())*k)),
				int(math.Round(float64(sb.Dy())*k)),
			))}
			xdraw.ApproxBiLinear.Scale(dst, dr, p.thumb, sb, xdraw.Over, nil)
		}
	}

	if !p.visible || pw == 0 || ph == 0 {
		return dst
	}
	dc := gg.NewContextForImage(dst)
	defer dc.Close()
	v := p.view
	dc.SetRGBA(0, 1, 0.8, 0.12)
	dc.DrawRectangle(v.X, v.Y, v.W, v.H)
	if err := dc.Fill(); err != nil {
		p.log.Debug("view fill failed", "err", err)
	}
	stroke := viewStroke
	if p.hover {
		stroke = viewStrokeHover
	}
	dc.SetHexColor(stroke)
	dc.SetLineWidth(1)
	dc.DrawRectangle(v.X+0.5, v.Y+0.5, math.Max(0, v.W-1), math.Max(0, v.H-1))
	if err := dc.Stroke(); err != nil {
		p.log.Debug("view stroke failed", "err", err)
	}
	return dc.Image()
}

// Render returns the panel as styled text, one line per row.
func (p *termPanel) Render() string {
	return cellbuf.FromImage(p.raster(), p.cols, p.rows).Render()
}

// termPlatform hands out panels in the sidebar's minimap slot.
type termPlatform struct {
	slot    *termPanel // addressable as MinimapSelector
	current *termPanel // last panel given to a navigator
	log     *slog.Logger
}

var _ navigator.Platform = (*termPlatform)(nil)

func newTermPlatform(log *slog.Logger) *termPlatform {
	return &termPlatform{slot: newTermPanel(image.Rectangle{}, log), log: log}
}

// CreatePanel implements navigator.Platform.
func (tp *termPlatform) CreatePanel() navigator.Panel {
	p := newTermPanel(tp.slot.bounds(), tp.log)
	tp.current = p
	return p
}

// LookupPanel implements navigator.Platform.
func (tp *termPlatform) LookupPanel(selector string) (navigator.Panel, bool) {
	if selector != MinimapSelector || tp.slot.removed {
		return nil, false
	}
	tp.current = tp.slot
	return tp.slot, true
}

// place moves the minimap slot and any live panel to r.
func (tp *termPlatform) place(r image.Rectangle) {
	tp.slot.place(r)
	if tp.current != nil {
		tp.current.place(r)
	}
}

// panel returns the panel on screen, or nil once it has been removed.
func (tp *termPlatform) panel() *termPanel {
	if tp.current == nil || tp.current.removed {
		return nil
	}
	return tp.current
}
