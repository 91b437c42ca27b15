package dag

import (
	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/errors"
)

// Tree is a spanning tree rooted at Root. Every node other than the root has
// exactly one parent inside the tree.
type Tree struct {
	*Graph
	Root code.Code
}

// Depth returns the number of edges between the root and every tree node.
func (t *Tree) Depth() map[code.Code]int {
	depth := map[code.Code]int{t.Root: 0}
	queue := []code.Code{t.Root}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, v := range t.Children(u) {
			if _, ok := depth[v]; !ok {
				depth[v] = depth[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return depth
}

// Parent returns the tree parent of id, or false for the root and unknown codes.
func (t *Tree) Parent(id code.Code) (code.Code, bool) {
	ps := t.Parents(id)
	if len(ps) == 0 {
		return "", false
	}
	return ps[0], true
}

// ToTree builds the breadth-first spanning tree of g rooted at root, following
// outgoing edges only.
//
// Each node reachable from root contributes exactly one tree edge: the edge
// through which BFS discovered it first. Discovery follows BFS levels and,
// within a node, edge insertion order, so a node reachable by several paths is
// attached along a shortest one with ties broken by input order.
//
// If root is not a node of g, ToTree returns an error wrapping
// [ErrNodeNotFound] and no tree.
func ToTree(g *Graph, root code.Code) (*Tree, error) {
	if !g.HasNode(root) {
		return nil, errors.Wrap(errors.ErrCodeNodeNotFound, ErrNodeNotFound, "root %q is not in the graph", root)
	}

	t := &Tree{Graph: New(), Root: root}
	_ = t.AddNode(root)

	visited := map[code.Code]bool{root: true}
	queue := []code.Code{root}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, v := range g.Children(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			_ = t.AddEdge(u, v)
			queue = append(queue, v)
		}
	}
	return t, nil
}

// Subtree extracts the hierarchy below node. It is [ToTree] rooted at an
// arbitrary node.
func Subtree(g *Graph, node code.Code) (*Tree, error) {
	return ToTree(g, node)
}
