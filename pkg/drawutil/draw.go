package drawutil

import "github.com/gogpu/gg"

// DrawArrow strokes a line from from to to and fills an arrowhead of
// size head at to. Colour and line width come from the context.
func DrawArrow(dc *gg.Context, from, to gg.Point, head float64) error {
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	if err := dc.Stroke(); err != nil {
		return err
	}
	if head <= 0 {
		return nil
	}
	l, r := ArrowHead(to, from, head)
	dc.MoveTo(to.X, to.Y)
	dc.LineTo(l.X, l.Y)
	dc.LineTo(r.X, r.Y)
	dc.ClosePath()
	return dc.Fill()
}

// DrawEdge draws an arrow between two boxes, leaving and entering at
// their borders.
func DrawEdge(dc *gg.Context, from, to Box, head float64) error {
	start := EdgeExit(from, to.Center())
	end := EdgeExit(to, from.Center())
	return DrawArrow(dc, start, end, head)
}

// DrawGrid places a dot of radius r at every grid intersection visible in
// a w×h view whose top-left corner is world point cam, drawn at scale.
func DrawGrid(dc *gg.Context, cam gg.Point, spacing, scale, w, h, r float64) error {
	xs := GridOffsets(cam.X, spacing, scale, w)
	ys := GridOffsets(cam.Y, spacing, scale, h)
	if len(xs) == 0 || len(ys) == 0 {
		return nil
	}
	for _, y := range ys {
		for _, x := range xs {
			dc.DrawCircle(x, y, r)
		}
	}
	return dc.Fill()
}
