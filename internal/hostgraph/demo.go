package hostgraph

// Demo builds the built-in flowchart (sum 1..5), spread out enough that
// the main view never shows all of it at zoom 1.
func Demo() *Graph {
	g := NewGraph()

	add := func(id, class, label string, x, y int) {
		_ = g.AddNode(id, Node{
			ID: id, Label: label, Class: class,
			X: x, Y: y, W: max(nodeWidth(label), 22), H: nodeHeight,
		})
	}
	add("start", "terminal", "START", 10, 2)
	add("init", "process", "INIT i=1 sum=0", 8, 26)
	add("cond", "decision", "i <= 5?", 8, 50)
	add("accum", "process", "ACCUMULATE", 8, 98)
	add("conn", "connector", "+", 70, 74)
	add("print", "io", "PRINT SUM", 120, 50)
	add("end", "terminal", "END", 124, 86)
	add("note", "comment", "sum of 1..5 = 15", 150, 140)

	edge := func(from, to, label string) {
		_ = g.AddEdge(from, to, Edge{ID: from + "-" + to, Label: label})
	}
	edge("start", "init", "")
	edge("init", "cond", "")
	edge("cond", "accum", "Y")
	edge("accum", "conn", "")
	edge("conn", "cond", "")
	edge("cond", "print", "N")
	edge("print", "end", "")

	return g
}
