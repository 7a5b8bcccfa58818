package hostgraph

import (
	"bytes"
	"hash/fnv"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/wesen/grailnav/pkg/drawutil"
	"github.com/wesen/grailnav/pkg/graphmodel"
	"github.com/wesen/grailnav/pkg/navigator"
)

// Colour palette, CRT green.
const (
	colorBG       = "#080e0b"
	colorGrid     = "#0e2e20"
	colorEdge     = "#00d4a0"
	colorSelected = "#00ffee"
	gridSpacing   = 10
)

type nodeColors struct{ fill, border string }

var classColors = map[string]nodeColors{
	"process":   {fill: "#0c3a2c", border: "#00d4a0"},
	"decision":  {fill: "#0a3340", border: "#00ccee"},
	"terminal":  {fill: "#103d22", border: "#44ff88"},
	"io":        {fill: "#3a2c0c", border: "#ddaa44"},
	"connector": {fill: "#0b2219", border: "#1a6a4a"},
}

// fallbackColors are assigned to unknown classes by hash so a class keeps
// its colour across renders.
var fallbackColors = []nodeColors{
	{fill: "#1c2f3a", border: "#5fb3e6"},
	{fill: "#2f1c3a", border: "#b07de0"},
	{fill: "#3a1c24", border: "#e6788f"},
	{fill: "#2a3a1c", border: "#a6d65c"},
	{fill: "#1c3a35", border: "#5ce0c8"},
}

// ColorsFor returns the fill and border colours used for a node class. Nodes
// without a class are drawn as processes.
func ColorsFor(class string) (fill, border string) {
	if class == "" {
		class = "process"
	}
	c, ok := classColors[class]
	if !ok {
		h := fnv.New32a()
		_, _ = h.Write([]byte(class))
		c = fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
	}
	return c.fill, c.border
}

// draw paints edges then nodes, mapping graph point p to p*scale+origin.
func (e *Engine) draw(dc *gg.Context, scale float64, origin gg.Point) error {
	box := func(n Node) drawutil.Box {
		return drawutil.Box{
			X: float64(n.X)*scale + origin.X,
			Y: float64(n.Y)*scale + origin.Y,
			W: float64(n.W) * scale,
			H: float64(n.H) * scale,
		}
	}
	line := math.Max(0.5, scale/2)

	dc.SetLineWidth(line)
	dc.SetHexColor(colorEdge)
	for _, edge := range e.graph.Edges() {
		from, to := e.graph.Node(edge.FromID), e.graph.Node(edge.ToID)
		if from == nil || to == nil {
			continue
		}
		if err := drawutil.DrawEdge(dc, box(from.Data), box(to.Data), 2*scale); err != nil {
			return err
		}
	}

	for _, n := range e.graph.Nodes() {
		b := box(n.Data)
		fill, border := ColorsFor(n.Data.Class)
		if n.ID == e.selected {
			border = colorSelected
		}
		r := math.Min(scale, math.Min(b.W, b.H)/4)

		dc.SetHexColor(fill)
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, r)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetHexColor(border)
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, r)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot implements navigator.Host. It exports the whole content (or
// only the visible region when opts.Full is false) as PNG at opts.Scale,
// shrinking uniformly to fit MaxWidth×MaxHeight. It returns nil when there
// is nothing to draw.
func (e *Engine) Snapshot(opts navigator.SnapshotOptions) []byte {
	s := opts.Scale
	if !finite(s) || s <= 0 {
		return nil
	}
	region, ok := e.snapshotRegion(opts.Full)
	if !ok {
		return nil
	}

	w, h := region.W*s, region.H*s
	fit := 1.0
	if opts.MaxWidth > 0 && w > opts.MaxWidth {
		fit = math.Min(fit, opts.MaxWidth/w)
	}
	if opts.MaxHeight > 0 && h > opts.MaxHeight {
		fit = math.Min(fit, opts.MaxHeight/h)
	}
	s *= fit
	pw := max(1, int(math.Ceil(region.W*s)))
	ph := max(1, int(math.Ceil(region.H*s)))

	dc := gg.NewContext(pw, ph)
	defer dc.Close()
	if err := e.draw(dc, s, gg.Pt(-region.X*s, -region.Y*s)); err != nil {
		e.log.Warn("snapshot draw failed", "err", err)
		return nil
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		e.log.Warn("snapshot encode failed", "err", err)
		return nil
	}
	e.log.Debug("snapshot", "width", pw, "height", ph, "scale", s, "bytes", buf.Len())
	return buf.Bytes()
}

func (e *Engine) snapshotRegion(full bool) (drawutil.Box, bool) {
	if full {
		r, ok := e.graph.Extent()
		if !ok || r.Dx() <= 0 || r.Dy() <= 0 {
			return drawutil.Box{}, false
		}
		return drawutil.Box{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}, true
	}
	if e.graph.Len() == 0 || e.size.W <= 0 || e.size.H <= 0 {
		return drawutil.Box{}, false
	}
	tl := e.ToGraph(navigator.Point{})
	return drawutil.Box{X: tl.X, Y: tl.Y, W: e.size.W / e.zoom, H: e.size.H / e.zoom}, true
}

// RenderView rasterises the main view at the current pan and zoom,
// background grid included.
func (e *Engine) RenderView(w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(colorBG))

	cam := e.ToGraph(navigator.Point{})
	dc.SetHexColor(colorGrid)
	if err := drawutil.DrawGrid(dc, gg.Pt(cam.X, cam.Y), gridSpacing, e.zoom, float64(w), float64(h), 0.6); err != nil {
		return nil, err
	}
	if err := e.draw(dc, e.zoom, gg.Pt(e.pan.X, e.pan.Y)); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Label is a node caption placed in rendered coordinates.
type Label struct {
	ID    string
	Text  string
	At    navigator.Point // centre of the node on screen
	Width float64         // node width on screen
}

// Labels returns captions for nodes visible in the main view.
func (e *Engine) Labels() []Label {
	tl := e.ToGraph(navigator.Point{})
	br := e.ToGraph(navigator.Point{X: e.size.W, Y: e.size.H})
	view := image.Rect(
		int(math.Floor(tl.X)), int(math.Floor(tl.Y)),
		int(math.Ceil(br.X)), int(math.Ceil(br.Y)),
	)
	var out []Label
	for _, n := range e.graph.NodesInRect(view) {
		c := graphmodel.CenterOf(n.Data)
		out = append(out, Label{
			ID:   n.ID,
			Text: n.Data.Label,
			At: navigator.Point{
				X: float64(c.X)*e.zoom + e.pan.X,
				Y: float64(c.Y)*e.zoom + e.pan.Y,
			},
			Width: float64(n.Data.W) * e.zoom,
		})
	}
	return out
}
