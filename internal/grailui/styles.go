package grailui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// Color palette, CRT green terminal aesthetic.
var (
	colorBG = c("#080e0b")

	// Canvas captions
	labelText    = c("#00ffc8")
	labelSelText = c("#00ffee")

	// Minimap view rectangle
	viewStroke      = "#00d4a0"
	viewStrokeHover = "#ffcc00"

	// Chrome colors
	toolbarColor = c("#00ffc8")
	footerColor  = c("#666666")
	statusColor  = c("#ddaa44")
)

var (
	tbStyle = lipgloss.NewStyle().
		Background(c("#0a1510")).
		Foreground(toolbarColor).
		Bold(true)

	ftStyle = lipgloss.NewStyle().
		Foreground(footerColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(statusColor)

	bgStyle = lipgloss.NewStyle().
		Background(colorBG)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("#00d4a0")).
			Background(colorBG).
			Padding(0, 1)
)
