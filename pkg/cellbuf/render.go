package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render converts the buffer into a styled string.
//
// Consecutive cells with the same colours are merged into runs and
// rendered with a single Style.Render() call per run. Cells with no
// colours at all are written as plain text.
//
// Rows are joined with "\n". An empty buffer (W==0 or H==0) returns "".
func (b *Buffer) Render() string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	lines := make([]string, b.H)
	chunk := make([]rune, 0, b.W)

	for y := 0; y < b.H; y++ {
		var sb strings.Builder
		row := b.Cells[y]

		runStart := 0
		for x := 1; x <= b.W; x++ {
			if x < b.W && sameColors(row[x], row[runStart]) {
				continue
			}
			chunk = chunk[:0]
			for i := runStart; i < x; i++ {
				chunk = append(chunk, row[i].Ch)
			}
			sb.WriteString(styleFor(row[runStart]).Render(string(chunk)))
			runStart = x
		}

		lines[y] = sb.String()
	}

	return strings.Join(lines, "\n")
}

func sameColors(a, b Cell) bool {
	return a.FG == b.FG && a.BG == b.BG
}

func styleFor(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.FG != nil {
		s = s.Foreground(c.FG)
	}
	if c.BG != nil {
		s = s.Background(c.BG)
	}
	return s
}
