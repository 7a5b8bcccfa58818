// Package hostgraph is the graph engine the minimap observes: a positioned
// graph with pan and zoom state, event topics, and raster export.
package hostgraph

import (
	"image"

	"github.com/wesen/grailnav/pkg/graphmodel"
)

// Node is a positioned graph vertex. Coordinates are graph units; the
// terminal front end draws one unit per pixel at zoom 1.
type Node struct {
	ID     string
	Label  string
	Parent string
	Class  string
	X, Y   int
	W, H   int
}

// Pos implements graphmodel.Spatial.
func (n Node) Pos() image.Point { return image.Pt(n.X, n.Y) }

// Size implements graphmodel.Spatial.
func (n Node) Size() image.Point { return image.Pt(n.W, n.H) }

// SetPos is the setter for graphmodel.MoveNode.
func SetPos(n *Node, p image.Point) {
	n.X = p.X
	n.Y = p.Y
}

// Edge holds edge metadata.
type Edge struct {
	ID    string
	Label string
}

// Graph is the concrete graph type the engine renders.
type Graph = graphmodel.Graph[Node, Edge]

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return graphmodel.New[Node, Edge]()
}

// Default node geometry in graph units.
const (
	nodeHeight   = 6
	nodeMinWidth = 7
	nodePadding  = 4
)

// nodeWidth sizes a node to fit its label.
func nodeWidth(label string) int {
	w := len([]rune(label)) + nodePadding
	if w < nodeMinWidth {
		w = nodeMinWidth
	}
	return w
}
