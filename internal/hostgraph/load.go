package hostgraph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var (
	// ErrEmptyGraph is returned when a graph file holds no vertices.
	ErrEmptyGraph = errors.New("graph has no vertices")
	errMissingID  = errors.New("vertex without id")
)

// element is one entry of a cytoscape elements list.
type element struct {
	Data struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Label  string `json:"label"`
		Parent string `json:"parent"`
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"data"`
	Position *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Classes string `json:"classes"`
}

func (e element) isEdge() bool {
	return e.Data.Source != "" && e.Data.Target != ""
}

// Grid used for vertices that carry no position.
const (
	gridCellW = 28
	gridCellH = 12
)

// Load reads a graph in the cytoscape element format: either
// {"elements": [...]} or a bare array of elements. Edges that reference
// unknown vertices are dropped. Vertices without a position are laid out
// on a grid in file order.
func Load(r io.Reader) (*Graph, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	elems, err := decodeElements(raw)
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	var unplaced []string
	for _, e := range elems {
		if e.isEdge() {
			continue
		}
		if e.Data.ID == "" {
			return nil, errMissingID
		}
		label := e.Data.Name
		if label == "" {
			label = e.Data.Label
		}
		if label == "" {
			label = e.Data.ID
		}
		n := Node{
			ID:     e.Data.ID,
			Label:  label,
			Parent: e.Data.Parent,
			Class:  e.Classes,
			W:      nodeWidth(label),
			H:      nodeHeight,
		}
		if e.Position != nil {
			// Cytoscape positions are node centres.
			n.X = int(math.Round(e.Position.X)) - n.W/2
			n.Y = int(math.Round(e.Position.Y)) - n.H/2
		} else {
			unplaced = append(unplaced, n.ID)
		}
		if err := g.AddNode(n.ID, n); err != nil {
			return nil, fmt.Errorf("load graph: %w", err)
		}
	}
	if g.Len() == 0 {
		return nil, ErrEmptyGraph
	}
	placeOnGrid(g, unplaced)

	for _, e := range elems {
		if !e.isEdge() {
			continue
		}
		// Unknown endpoints are skipped, not fatal.
		_ = g.AddEdge(e.Data.Source, e.Data.Target, Edge{ID: e.Data.ID, Label: e.Data.Name})
	}
	return g, nil
}

// LoadFile reads a graph from path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func decodeElements(raw []byte) ([]element, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmptyGraph
	}
	if trimmed[0] == '[' {
		var elems []element
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, fmt.Errorf("decode elements: %w", err)
		}
		return elems, nil
	}
	var doc struct {
		Elements []element `json:"elements"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return doc.Elements, nil
}

func placeOnGrid(g *Graph, ids []string) {
	if len(ids) == 0 {
		return
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(ids)))))
	for i, id := range ids {
		col, row := i%cols, i/cols
		n := g.Node(id)
		n.Data.X = col * gridCellW
		n.Data.Y = row * gridCellH
	}
}
