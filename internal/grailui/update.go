package grailui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/navigator"
	"github.com/wesen/grailnav/pkg/tealayout"
)

const (
	zoomStep   = 1.25
	fitPadding = 4
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()

	case tea.KeyPressMsg:
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return handleMouse(m, msg, m.layout())

	case timerMsg:
		msg()
		return m, waitTimer(m.timers)

	case reloadMsg:
		m.applyReload(msg.graph, msg.err)
		return m, waitReload(m.reloads)

	case watchDoneMsg:
		if msg.err != nil {
			m.log.Warn("file watcher stopped", "err", msg.err)
			m.status = "watch stopped: " + msg.err.Error()
		}
	}

	return m, nil
}

// handleKeys processes keyboard input.
func (m Model) handleKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	step := float64(m.cfg.View.PanStep)

	switch {
	case key.Matches(msg, keys.Quit):
		m.hideMinimap()
		return m, tea.Quit

	// Camera panning: the content moves the other way.
	case key.Matches(msg, keys.Up):
		m.engine.PanBy(navigator.Point{Y: 2 * step})
	case key.Matches(msg, keys.Down):
		m.engine.PanBy(navigator.Point{Y: -2 * step})
	case key.Matches(msg, keys.Left):
		m.engine.PanBy(navigator.Point{X: step})
	case key.Matches(msg, keys.Right):
		m.engine.PanBy(navigator.Point{X: -step})

	case key.Matches(msg, keys.ZoomIn):
		m.engine.ZoomBy(zoomStep)
	case key.Matches(msg, keys.ZoomOut):
		m.engine.ZoomBy(1 / zoomStep)
	case key.Matches(msg, keys.Fit):
		m.engine.Fit(fitPadding)

	case key.Matches(msg, keys.Minimap):
		if m.nav != nil {
			m.hideMinimap()
			m.status = "minimap hidden"
			break
		}
		if err := m.showMinimap(); err != nil {
			m.status = err.Error()
			break
		}
		m.nav.RequestRender()
		m.status = "minimap shown"

	case key.Matches(msg, keys.Reload):
		m.reload()

	case key.Matches(msg, keys.Delete):
		if id := m.engine.Selected(); id != "" {
			m.engine.RemoveNode(id)
			m.status = "deleted " + id
		}

	case key.Matches(msg, keys.Cancel):
		m.engine.Select("")
		m.showHelp = false

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// layout computes the screen regions. It must match View.
func (m Model) layout() tealayout.Layout {
	sidebarW := min(m.cfg.View.MinimapWidth, m.Width/2)
	// Half-block pixels are square: half the width in rows gives a
	// square minimap. Stay within half the sidebar.
	mmH := min(sidebarW/2+1, max(0, m.Height-2)/2)
	return tealayout.NewLayoutBuilder(m.Width, m.Height).
		TopFixed("toolbar", 1).
		BottomFixed("footer", 1).
		RightFixed("sidebar", sidebarW).
		Remaining("canvas").
		SplitTop("sidebar", "minimap", mmH, "info").
		Build()
}

// resize pushes the new geometry to the minimap slot and the engine.
func (m *Model) resize() {
	l := m.layout()
	m.platform.place(minimapRect(l))

	cv := l.Get("canvas").Rect
	w, h := canvasPixels(cv.Dx(), cv.Dy())
	m.engine.Resize(navigator.Size{W: float64(w), H: float64(h)})
	if m.nav != nil {
		m.nav.Resize()
	}
	if !m.fitted && w > 0 && h > 0 {
		m.engine.Fit(fitPadding)
		m.fitted = true
	}
}

// reload re-reads the graph file.
func (m *Model) reload() {
	if m.source == "" {
		m.applyReload(hostgraph.Demo(), nil)
		return
	}
	g, err := hostgraph.LoadFile(m.source)
	m.applyReload(g, err)
}

func (m *Model) applyReload(g *hostgraph.Graph, err error) {
	if err != nil {
		m.log.Warn("reload failed", "source", m.source, "err", err)
		m.status = "reload failed: " + err.Error()
		return
	}
	m.engine.Replace(g)
	m.status = fmt.Sprintf("reloaded %d nodes", g.Len())
	m.log.Info("graph reloaded", "source", m.source, "nodes", g.Len())
}
