// Package cellbuf provides a 2D terminal cell buffer with per-cell colours
// and efficient Lipgloss-based rendering.
//
// Each cell holds a rune plus a foreground and background colour. A buffer
// can also be filled from a raster image, two pixels per cell: the upper
// pixel becomes the foreground of an upper-half block and the lower pixel
// its background. Text written on top keeps the cell's background, so
// labels stay legible over the image.
//
// Limitation: all runes are assumed to be single-width. CJK or other
// double-width characters are not handled correctly.
package cellbuf

import "image/color"

// UpperHalf is the glyph used for pixel cells.
const UpperHalf = '▀'

// Cell is a single character in the buffer. A nil colour means the
// terminal default.
type Cell struct {
	Ch rune
	FG color.Color
	BG color.Color
}

// Buffer is a 2D grid of coloured cells.
type Buffer struct {
	W, H  int
	Cells [][]Cell // [row][col]
}

// New creates a Buffer of the given size, filled with spaces on bg.
func New(w, h int, bg color.Color) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	bg = normalize(bg)
	for y := range b.Cells {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', BG: bg}
		}
		b.Cells[y] = row
	}
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes a single character at (x, y) in fg, keeping the cell's
// background. Out-of-bounds writes are silently ignored.
func (b *Buffer) Set(x, y int, ch rune, fg color.Color) {
	if b.InBounds(x, y) {
		c := &b.Cells[y][x]
		c.Ch = ch
		c.FG = normalize(fg)
	}
}

// SetString writes a string starting at (x, y), advancing x for each
// rune. Characters that fall outside the buffer are silently skipped.
func (b *Buffer) SetString(x, y int, s string, fg color.Color) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, fg)
		i++
	}
}

// Fill resets every cell to a space on bg.
func (b *Buffer) Fill(bg color.Color) {
	bg = normalize(bg)
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', BG: bg}
		}
	}
}

// normalize converts c to color.RGBA so cells compare by value, and maps
// fully transparent colours to nil.
func normalize(c color.Color) color.Color {
	if c == nil {
		return nil
	}
	r, g, bl, a := c.RGBA()
	if a == 0 {
		return nil
	}
	// Un-premultiply: the terminal has no alpha.
	return color.RGBA{
		R: uint8(r * 0xff / a),
		G: uint8(g * 0xff / a),
		B: uint8(bl * 0xff / a),
		A: 0xff,
	}
}
