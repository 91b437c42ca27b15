package dag

import "github.com/matzehuels/taxocheck/pkg/code"

// DetectCycle reports whether g contains a directed cycle and returns one
// witness as a closed edge sequence.
//
// DetectCycle uses depth-first search with white/gray/black coloring and keeps
// the current path on an explicit stack. Roots are tried in [code.Compare]
// order and children in edge insertion order, so the same input always yields
// the same witness. When an edge reaches a gray node, the witness is the stack
// suffix starting at that node followed by the closing edge. A self-loop
// yields a single-edge witness.
//
// Which cycle is reported when several exist is a property of the traversal
// order only; callers should not rely on it being the shortest.
//
// Time complexity is O(V + E).
func DetectCycle(g *Graph) (bool, []Edge) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[code.Code]int, g.NodeCount())
	var stack []code.Code
	var witness []Edge

	var dfs func(id code.Code) bool
	dfs = func(id code.Code) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				witness = closeCycle(stack, child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range g.Nodes() {
		if color[id] == white && dfs(id) {
			return true, witness
		}
	}
	return false, nil
}

// closeCycle turns the stack suffix starting at start into edges and appends
// the back-edge from the top of the stack to start.
func closeCycle(stack []code.Code, start code.Code) []Edge {
	i := len(stack) - 1
	for i > 0 && stack[i] != start {
		i--
	}
	path := stack[i:]
	edges := make([]Edge, 0, len(path))
	for j := 0; j+1 < len(path); j++ {
		edges = append(edges, Edge{From: path[j], To: path[j+1]})
	}
	return append(edges, Edge{From: path[len(path)-1], To: start})
}
