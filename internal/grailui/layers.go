package grailui

import (
	"image"
	"math"

	"charm.land/lipgloss/v2"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/cellbuf"
	"github.com/wesen/grailnav/pkg/tealayout"
)

// canvasPixels is the rendered size of a canvas of cols×rows cells.
func canvasPixels(cols, rows int) (int, int) {
	return cellbuf.PixelSize(max(0, cols), max(0, rows))
}

// minimapRect leaves the sidebar's first column to the separator.
func minimapRect(l tealayout.Layout) image.Rectangle {
	r := l.Get("minimap").Rect
	if r.Dx() > 1 {
		r.Min.X++
	}
	return r
}

// buildCanvasLayer rasterises the main view into half blocks and writes
// node captions on top as text.
func buildCanvasLayer(e *hostgraph.Engine, r tealayout.Region) (*lipgloss.Layer, error) {
	cols, rows := r.Rect.Dx(), r.Rect.Dy()
	if cols <= 0 || rows <= 0 {
		return tealayout.RegionLayer(r, "", "canvas", 0), nil
	}
	img, err := e.RenderView(canvasPixels(cols, rows))
	if err != nil {
		return nil, err
	}
	buf := cellbuf.FromImage(img, cols, rows)
	drawLabels(buf, e.Labels(), e.Selected())
	return tealayout.RegionLayer(r, buf.Render(), "canvas", 0), nil
}

// drawLabels centres each caption on its node, truncating to the node's
// inner width. Nodes too small for a single character stay unlabelled.
func drawLabels(buf *cellbuf.Buffer, labels []hostgraph.Label, selected string) {
	for _, l := range labels {
		text := []rune(l.Text)
		room := int(math.Floor(l.Width)) - 2
		if room < 1 || len(text) == 0 {
			continue
		}
		if len(text) > room {
			text = text[:room]
		}
		x := int(math.Round(l.At.X - float64(len(text))/2))
		y := int(math.Floor(l.At.Y / 2))
		fg := labelText
		if l.ID == selected {
			fg = labelSelText
		}
		buf.SetString(x, y, string(text), fg)
	}
}
