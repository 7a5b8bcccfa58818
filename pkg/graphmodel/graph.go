package graphmodel

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("unknown node id")
)

// Node wraps a user-supplied data value with its element ID.
type Node[N Spatial] struct {
	ID   string
	Data N
}

// Edge connects two nodes with a user-supplied label/data.
type Edge[E any] struct {
	FromID string
	ToID   string
	Data   E
}

// Graph is a generic spatial graph keyed by string IDs, with stable
// insertion-order iteration.
type Graph[N Spatial, E any] struct {
	nodes map[string]*Node[N]
	edges []Edge[E]
	order []string // insertion order for deterministic iteration
}

// New creates an empty graph.
func New[N Spatial, E any]() *Graph[N, E] {
	return &Graph[N, E]{
		nodes: make(map[string]*Node[N]),
	}
}

// ── Node operations ──

// AddNode inserts a node under id.
func (g *Graph[N, E]) AddNode(id string, data N) error {
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%q: %w", id, ErrDuplicateNode)
	}
	g.nodes[id] = &Node[N]{ID: id, Data: data}
	g.order = append(g.order, id)
	return nil
}

// Node returns a pointer to the node with the given ID, or nil.
func (g *Graph[N, E]) Node(id string) *Node[N] {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph[N, E]) Len() int {
	return len(g.order)
}

// Nodes returns all nodes in insertion order.
func (g *Graph[N, E]) Nodes() []*Node[N] {
	result := make([]*Node[N], 0, len(g.order))
	for _, id := range g.order {
		result = append(result, g.nodes[id])
	}
	return result
}

// RemoveNode deletes the node and all connected edges. It reports whether
// the node existed.
func (g *Graph[N, E]) RemoveNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)

	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	filtered := g.edges[:0]
	for _, e := range g.edges {
		if e.FromID != id && e.ToID != id {
			filtered = append(filtered, e)
		}
	}
	g.edges = filtered
	return true
}

// MoveNode updates the position of a node. The caller provides a setter
// function since Go generics don't support interface setters cleanly.
func (g *Graph[N, E]) MoveNode(id string, pos image.Point, setPos func(*N, image.Point)) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	setPos(&n.Data, pos)
	return true
}

// ── Edge operations ──

// AddEdge adds an edge between two existing nodes. Duplicate
// (fromID, toID) pairs are silently ignored.
func (g *Graph[N, E]) AddEdge(fromID, toID string, data E) error {
	for _, id := range [...]string{fromID, toID} {
		if _, ok := g.nodes[id]; !ok {
			return fmt.Errorf("%q: %w", id, ErrUnknownNode)
		}
	}
	for _, e := range g.edges {
		if e.FromID == fromID && e.ToID == toID {
			return nil
		}
	}
	g.edges = append(g.edges, Edge[E]{FromID: fromID, ToID: toID, Data: data})
	return nil
}

// Edges returns all edges.
func (g *Graph[N, E]) Edges() []Edge[E] {
	return g.edges
}

// OutEdges returns edges originating from the given node.
func (g *Graph[N, E]) OutEdges(fromID string) []Edge[E] {
	var result []Edge[E]
	for _, e := range g.edges {
		if e.FromID == fromID {
			result = append(result, e)
		}
	}
	return result
}

// InEdges returns edges terminating at the given node.
func (g *Graph[N, E]) InEdges(toID string) []Edge[E] {
	var result []Edge[E]
	for _, e := range g.edges {
		if e.ToID == toID {
			result = append(result, e)
		}
	}
	return result
}

// ── Spatial queries ──

// HitTest returns the topmost (last-inserted) node containing the point,
// or nil if no node contains it.
func (g *Graph[N, E]) HitTest(pt image.Point) *Node[N] {
	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.nodes[g.order[i]]
		if pt.In(BoundsOf(n.Data)) {
			return n
		}
	}
	return nil
}

// NodesInRect returns all nodes whose bounds intersect the given rectangle,
// in insertion order.
func (g *Graph[N, E]) NodesInRect(r image.Rectangle) []*Node[N] {
	var result []*Node[N]
	for _, id := range g.order {
		n := g.nodes[id]
		if BoundsOf(n.Data).Overlaps(r) {
			result = append(result, n)
		}
	}
	return result
}

// Extent returns the union of all node bounds. ok is false for a graph
// with no nodes.
func (g *Graph[N, E]) Extent() (r image.Rectangle, ok bool) {
	for i, id := range g.order {
		b := BoundsOf(g.nodes[id].Data)
		if i == 0 {
			r = b
			continue
		}
		r = Union(r, b)
	}
	return r, len(g.order) > 0
}
