package dag

import (
	"slices"

	"github.com/matzehuels/taxocheck/pkg/code"
)

// Component is one weakly connected component: its nodes, sorted, and the
// subgraph they induce.
type Component struct {
	Nodes []code.Code
	Graph *Graph
}

// Size returns the number of nodes in the component.
func (c Component) Size() int { return len(c.Nodes) }

// Components partitions g into weakly connected components, treating every
// edge as undirected.
//
// Components are ordered by size, largest first. Equal sizes are ordered by
// their smallest code under [code.Compare], which makes the order independent
// of edge input order. An empty graph has no components.
func Components(g *Graph) []Component {
	seen := make(map[code.Code]bool, g.NodeCount())
	var comps []Component

	for _, start := range g.Nodes() {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []code.Code{start}
		var members []code.Code

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			members = append(members, u)
			for _, nbrs := range [][]code.Code{g.Children(u), g.Parents(u)} {
				for _, v := range nbrs {
					if !seen[v] {
						seen[v] = true
						queue = append(queue, v)
					}
				}
			}
		}

		code.Sort(members)
		comps = append(comps, Component{Nodes: members, Graph: g.Subgraph(members)})
	}

	slices.SortStableFunc(comps, func(a, b Component) int {
		if a.Size() != b.Size() {
			return b.Size() - a.Size()
		}
		return code.Compare(a.Nodes[0], b.Nodes[0])
	})
	return comps
}

// FindDisconnected returns the subgraphs of every component except the
// largest. An empty result means g is a single connected structure or empty.
func FindDisconnected(g *Graph) []*Graph {
	comps := Components(g)
	if len(comps) <= 1 {
		return nil
	}
	out := make([]*Graph, 0, len(comps)-1)
	for _, c := range comps[1:] {
		out = append(out, c.Graph)
	}
	return out
}
