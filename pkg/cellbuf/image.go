package cellbuf

import (
	"image"
	"image/color"
)

// PixelSize returns the raster size that fills a w×h cell buffer.
func PixelSize(w, h int) (pw, ph int) {
	return w, h * 2
}

// SetPixel paints one half of the cell containing pixel (px, py). Even rows
// are the upper half, odd rows the lower half.
func (b *Buffer) SetPixel(px, py int, c color.Color) {
	x, y := px, py/2
	if py < 0 || !b.InBounds(x, y) {
		return
	}
	cell := &b.Cells[y][x]
	if cell.Ch != UpperHalf {
		// Promote a text or blank cell to a pixel cell; its background
		// becomes both halves.
		cell.Ch = UpperHalf
		cell.FG = cell.BG
	}
	if py%2 == 0 {
		cell.FG = normalize(c)
	} else {
		cell.BG = normalize(c)
	}
}

// DrawImage paints img into the buffer with its top-left pixel at
// (px, py) in pixel coordinates. Transparent pixels leave cells untouched.
func (b *Buffer) DrawImage(img image.Image, px, py int) {
	if img == nil {
		return
	}
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			b.SetPixel(px+x-r.Min.X, py+y-r.Min.Y, c)
		}
	}
}

// FromImage builds a buffer of w×h cells from img, one pixel per
// half-cell. img is read from its top-left corner; pixels it does not
// cover stay on the terminal default.
func FromImage(img image.Image, w, h int) *Buffer {
	b := New(w, h, nil)
	b.DrawImage(img, 0, 0)
	return b
}
