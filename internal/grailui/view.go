package grailui

import (
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/grailnav/pkg/tealayout"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	layout := m.layout()
	canvasRegion := layout.Get("canvas")
	sidebar := layout.Get("minimap").Rect.Union(layout.Get("info").Rect)

	var layers []*lipgloss.Layer

	// Background
	layers = append(layers,
		tealayout.FillLayer(layout.Get("toolbar"), tbStyle, "toolbar-bg", 0),
		tealayout.FillLayer(layout.Get("footer"), ftStyle, "footer-bg", 0),
		tealayout.FillLayer(tealayout.Region{Name: "sidebar", Rect: sidebar}, bgStyle, "sidebar-bg", 0),
	)

	// Toolbar content
	source := "demo"
	if m.source != "" {
		source = filepath.Base(m.source)
	}
	tbContent := fmt.Sprintf(" grailnav  │  %s  │  zoom %.2f  │  [m]inimap [f]it [?]help [q]uit", source, m.engine.Zoom())
	layers = append(layers, tealayout.ToolbarLayer(tbContent, m.Width, tbStyle))

	// Footer content: status message, else pointer and camera.
	ftContent := m.help.ShortHelpView(keys.ShortHelp())
	style := ftStyle
	if m.status != "" {
		ftContent, style = " "+m.status, statusStyle
	} else {
		pan := m.engine.Pan()
		ftContent = fmt.Sprintf(" Mouse: (%d,%d)  Pan: (%.0f,%.0f)  ", m.MouseX, m.MouseY, pan.X, pan.Y) + ftContent
	}
	layers = append(layers, tealayout.FooterLayer(ftContent, m.Width, m.Height-1, style))

	// Canvas
	canvasLayer, err := buildCanvasLayer(m.engine, canvasRegion)
	if err != nil {
		m.log.Warn("canvas render failed", "err", err)
		canvasLayer = tealayout.FillLayer(canvasRegion, bgStyle, "canvas", 0)
	}
	layers = append(layers, canvasLayer)

	// Sidebar: separator, minimap, info
	if sidebar.Dx() > 0 && sidebar.Dy() > 0 {
		layers = append(layers, tealayout.VerticalSeparator(sidebar.Min.X, sidebar.Min.Y, sidebar.Dy(), panelSepStyle))

		mm := minimapRect(layout)
		if p := m.platform.panel(); p != nil && m.nav != nil {
			layers = append(layers, lipgloss.NewLayer(p.Render()).X(mm.Min.X).Y(mm.Min.Y).Z(1).ID("minimap"))
		}

		info := layout.Get("info").Rect
		st := infoState{nav: m.nav, live: m.cfg.Navigator.LiveFramerate.Rate().String()}
		if p := m.platform.panel(); p != nil {
			st.visible = p.visible
		}
		content := buildInfoPanel(m.engine, st, m.source, info.Dx()-2, info.Dy())
		layers = append(layers, lipgloss.NewLayer(content).X(info.Min.X+1).Y(info.Min.Y).Z(1).ID("info"))
	}

	if m.showHelp {
		layers = append(layers, tealayout.ModalLayer(m.help.FullHelpView(keys.FullHelp()), m.Width, m.Height, helpBoxStyle))
	}

	// Compose
	comp := lipgloss.NewCompositor(layers...)
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(comp)

	v := tea.NewView(canvas.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
