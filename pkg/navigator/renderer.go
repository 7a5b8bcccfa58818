package navigator

import (
	"bytes"
	"image"
	_ "image/png" // registers the PNG decoder for IsRaster
)

// RequestRender implements Controller.
func (n *Navigator) RequestRender() {
	if n.destroyed {
		return
	}
	n.renderer.Call()
}

// render regenerates the thumbnail. It runs behind the throttle.
func (n *Navigator) render() {
	if n.destroyed {
		return
	}
	n.checkThumbnailSizes()
	n.setupView()

	scale := RasterScale(n.bb, n.panelSize)
	payload := n.host.Snapshot(SnapshotOptions{
		Full:      true,
		Scale:     scale,
		MaxWidth:  n.panelSize.W,
		MaxHeight: n.panelSize.H,
	})
	if !IsRaster(payload) {
		n.log.Debug("snapshot not renderable, clearing thumbnail", "bytes", len(payload))
		n.panel.ClearImage()
		return
	}
	offset := ImageOffset(n.bb, n.panelSize)
	n.panel.SetImage(payload, offset)
	n.log.Debug("thumbnail rendered", "scale", scale, "bytes", len(payload))
}

// IsRaster reports whether payload is an encoded PNG image.
func IsRaster(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(payload))
	return err == nil && format == "png"
}
