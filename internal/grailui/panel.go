package grailui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/navigator"
)

// panelBG is the panel background color, defined inline to avoid init-order issues.
var panelBG = c("#1a2a20") // slightly lighter than canvas bg for visible distinction

// Panel styles, all on the same background.
var (
	panelTitleStyle = lipgloss.NewStyle().
			Foreground(c("#00ffc8")).
			Background(panelBG).
			Bold(true)

	panelDimStyle = lipgloss.NewStyle().
			Foreground(c("#336655")).
			Background(panelBG)

	panelTextStyle = lipgloss.NewStyle().
			Foreground(c("#00d4a0")).
			Background(panelBG)

	panelKeyStyle = lipgloss.NewStyle().
			Foreground(c("#ddaa44")).
			Background(panelBG)

	panelSepStyle = lipgloss.NewStyle().
			Foreground(c("#1a4a3a")).
			Background(panelBG)

	// panelLineStyle wraps padding with consistent background.
	panelLineStyle = lipgloss.NewStyle().
			Background(panelBG)
)

// padLine right-pads and renders a line with consistent background to the given width.
func padLine(s string, width int) string {
	// Measure visible width of the already-styled string
	vis := lipgloss.Width(s)
	pad := width - vis
	if pad > 0 {
		s += panelLineStyle.Render(strings.Repeat(" ", pad))
	}
	return s
}

// fitLines pads or cuts lines to exactly height rows of width columns.
func fitLines(lines []string, width, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:max(0, height)]
	for i, l := range lines {
		lines[i] = padLine(l, width)
	}
	return strings.Join(lines, "\n")
}

func section(title string, width int) []string {
	return []string{
		panelTitleStyle.Render(title),
		panelDimStyle.Render(strings.Repeat("─", max(0, width-2))),
	}
}

func field(name string, value any) string {
	return panelKeyStyle.Render(fmt.Sprintf("  %-8s", name)) +
		panelTextStyle.Render(fmt.Sprintf("%v", value))
}

// infoState is what the info panel shows about the minimap.
type infoState struct {
	nav     navigator.Controller
	live    string
	visible bool
}

// buildInfoPanel renders the minimap status, the selection and graph
// totals.
func buildInfoPanel(e *hostgraph.Engine, st infoState, source string, width, height int) string {
	var lines []string

	lines = append(lines, section("MINIMAP", width)...)
	if st.nav == nil {
		lines = append(lines, panelDimStyle.Render("  hidden, press m"))
	} else {
		v := st.nav.View()
		lines = append(lines,
			field("state", st.nav.State()),
			field("live", st.live),
			field("scale", fmt.Sprintf("%.3f", st.nav.Transform().Zoom)),
		)
		if st.visible {
			lines = append(lines, field("view", fmt.Sprintf("%.0f,%.0f %.0fx%.0f", v.X, v.Y, v.W, v.H)))
		} else {
			lines = append(lines, field("view", "(none)"))
		}
	}
	lines = append(lines, "")

	lines = append(lines, section("SELECTION", width)...)
	if n := e.Graph().Node(e.Selected()); n == nil {
		lines = append(lines, panelDimStyle.Render("  (none)"))
	} else {
		d := n.Data
		lines = append(lines,
			field("id", d.ID),
			field("label", d.Label),
			field("pos", fmt.Sprintf("%d,%d", d.X, d.Y)),
			field("edges", fmt.Sprintf("%d in, %d out", len(e.Graph().InEdges(d.ID)), len(e.Graph().OutEdges(d.ID)))),
		)
		if d.Class != "" {
			lines = append(lines, field("class", d.Class))
		}
		if d.Parent != "" {
			lines = append(lines, field("parent", d.Parent))
		}
	}
	lines = append(lines, "")

	lines = append(lines, section("GRAPH", width)...)
	if source == "" {
		source = "(demo)"
	}
	lines = append(lines,
		field("source", source),
		field("nodes", e.Graph().Len()),
		field("edges", len(e.Graph().Edges())),
		field("zoom", fmt.Sprintf("%.2f", e.Zoom())),
	)

	return fitLines(lines, width, height)
}
