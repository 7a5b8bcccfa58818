package grailui

import (
	"image"
	"math"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/grailnav/pkg/navigator"
	"github.com/wesen/grailnav/pkg/tealayout"
)

// wheelNotch is the platform wheel delta of one scroll step.
const wheelNotch = 120

// handleMouse processes mouse events and returns updated model + command.
func handleMouse(m Model, msg tea.MouseMsg, l tealayout.Layout) (Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.MouseX = mouse.X
	m.MouseY = mouse.Y

	// A canvas drag keeps the pointer until release, even over the minimap.
	if p := m.platform.panel(); p != nil && m.nav != nil && m.drag.kind == dragNone {
		if routeMinimap(p, msg, mouse) {
			return m, nil
		}
	}

	canvas := l.Get("canvas")
	at := canvasPoint(canvas, mouse.X, mouse.Y)

	switch msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft || !canvas.Contains(mouse.X, mouse.Y) {
			return m, nil
		}
		m = startCanvasDrag(m, at)

	case tea.MouseMotionMsg:
		switch m.drag.kind {
		case dragPan:
			m.engine.PanBy(navigator.Point{X: at.X - m.drag.lastX, Y: at.Y - m.drag.lastY})
			m.drag.lastX, m.drag.lastY = at.X, at.Y
		case dragNode:
			g := m.engine.ToGraph(at)
			pos := image.Pt(int(math.Round(g.X-m.drag.offX)), int(math.Round(g.Y-m.drag.offY)))
			m.engine.MoveNode(m.drag.nodeID, pos)
		}

	case tea.MouseReleaseMsg:
		m.drag = dragState{}

	case tea.MouseWheelMsg:
		if !canvas.Contains(mouse.X, mouse.Y) || !m.engine.ZoomingEnabled() {
			return m, nil
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.engine.ZoomAt(m.engine.Zoom()*zoomStep, at)
		case tea.MouseWheelDown:
			m.engine.ZoomAt(m.engine.Zoom()/zoomStep, at)
		}
	}

	return m, nil
}

// routeMinimap turns terminal mouse messages into navigator events. Presses
// and wheel steps count only over the panel; motion and release are
// window-wide so drags continue outside it. It reports whether the message
// was consumed.
func routeMinimap(p *termPanel, msg tea.MouseMsg, mouse tea.Mouse) bool {
	over := image.Pt(mouse.X, mouse.Y).In(p.bounds())
	page := cellPoint(mouse.X, mouse.Y)

	switch msg.(type) {
	case tea.MouseClickMsg:
		if !over || mouse.Button != tea.MouseLeft {
			return false
		}
		p.dispatch(navigator.ChannelLocal, navigator.PointerEvent{Type: navigator.PointerDown, Page: page})
		return true

	case tea.MouseMotionMsg:
		p.dispatch(navigator.ChannelGlobal, navigator.PointerEvent{Type: navigator.PointerMove, Page: page})
		return over

	case tea.MouseReleaseMsg:
		p.dispatch(navigator.ChannelGlobal, navigator.PointerEvent{Type: navigator.PointerUp, Page: page})
		return over

	case tea.MouseWheelMsg:
		if !over {
			return false
		}
		ev := navigator.WheelEvent{Page: page}
		switch mouse.Button {
		case tea.MouseWheelUp:
			ev.WheelDeltaY = wheelNotch
		case tea.MouseWheelDown:
			ev.WheelDeltaY = -wheelNotch
		default:
			return true
		}
		p.dispatch(navigator.ChannelLocal, ev)
		return true
	}
	return false
}

// startCanvasDrag selects the node under the pointer and grabs it, or
// starts panning when the press hits empty canvas.
func startCanvasDrag(m Model, at navigator.Point) Model {
	n := m.engine.NodeAt(at)
	if n == nil {
		m.engine.Select("")
		m.drag = dragState{kind: dragPan, lastX: at.X, lastY: at.Y}
		return m
	}
	m.engine.Select(n.ID)
	g := m.engine.ToGraph(at)
	m.drag = dragState{
		kind:   dragNode,
		nodeID: n.ID,
		offX:   g.X - float64(n.X),
		offY:   g.Y - float64(n.Y),
	}
	return m
}

// canvasPoint maps a terminal cell to rendered canvas pixels.
func canvasPoint(canvas tealayout.Region, x, y int) navigator.Point {
	local := canvas.Local(x, y)
	return cellPoint(local.X, local.Y)
}
