package dag

import (
	"errors"
	"slices"

	"github.com/matzehuels/taxocheck/pkg/code"
)

var (
	// ErrNodeNotFound is returned by [ToTree] and [Subtree] when the requested
	// root is not a node of the graph. It signals caller misuse, not bad data.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.AddEdge] when
	// a code is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")
)

// Edge is a directed parent -> child relation between two codes.
type Edge struct {
	From code.Code `json:"from"`
	To   code.Code `json:"to"`
}

// Pair is one raw composition row before canonicalization. Parent and Child
// may hold strings, integers or floats; [Build] passes them through [code.Of].
type Pair struct {
	Parent any `json:"parent"`
	Child  any `json:"child"`
}

// Graph is a directed graph over taxonomy codes.
//
// Nodes are kept in insertion order and each node's children in edge insertion
// order, so every traversal in this package is reproducible for identical
// input. Duplicate edges are ignored.
//
// The zero value is not usable - use [New] or [Build]. A Graph is not safe for
// concurrent mutation; concurrent reads of a fully built graph are fine.
type Graph struct {
	order    []code.Code
	nodes    map[code.Code]struct{}
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[code.Code][]code.Code
	incoming map[code.Code][]code.Code
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[code.Code]struct{}),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[code.Code][]code.Code),
		incoming: make(map[code.Code][]code.Code),
	}
}

// Build creates a graph from composition pairs in order. Both sides of each
// pair are canonicalized with [code.Of]. Pairs with an empty side are skipped.
func Build(pairs []Pair) *Graph {
	g := New()
	for _, p := range pairs {
		_ = g.AddEdge(code.Of(p.Parent), code.Of(p.Child))
	}
	return g
}

// FromEdges creates a graph from already canonical edges.
func FromEdges(edges []Edge) *Graph {
	g := New()
	for _, e := range edges {
		_ = g.AddEdge(e.From, e.To)
	}
	return g
}

// AddNode adds an isolated node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id code.Code) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = struct{}{}
		g.order = append(g.order, id)
	}
	return nil
}

// AddEdge adds from -> to, creating missing endpoints. A repeated edge is
// ignored and keeps its original position.
func (g *Graph) AddEdge(from, to code.Code) error {
	if from == "" || to == "" {
		return ErrInvalidNodeID
	}
	if g.HasEdge(from, to) {
		return nil
	}
	e := Edge{From: from, To: to}
	_ = g.AddNode(from)
	_ = g.AddNode(to)
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id code.Code) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether from -> to is an edge of the graph.
func (g *Graph) HasEdge(from, to code.Code) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Nodes returns all nodes sorted by [code.Compare].
func (g *Graph) Nodes() []code.Code { return code.Sorted(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the direct children of id in edge insertion order.
// The returned slice must not be modified.
func (g *Graph) Children(id code.Code) []code.Code { return g.outgoing[id] }

// Parents returns the direct parents of id in edge insertion order.
// The returned slice must not be modified.
func (g *Graph) Parents(id code.Code) []code.Code { return g.incoming[id] }

// OutDegree returns the number of children of id.
func (g *Graph) OutDegree(id code.Code) int { return len(g.outgoing[id]) }

// InDegree returns the number of parents of id.
func (g *Graph) InDegree(id code.Code) int { return len(g.incoming[id]) }

// Sources returns nodes with no parents, sorted.
func (g *Graph) Sources() []code.Code {
	var out []code.Code
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	code.Sort(out)
	return out
}

// Subgraph returns the graph induced by nodes: every listed node plus every
// edge of g whose endpoints are both listed. Edge order follows g.
func (g *Graph) Subgraph(nodes []code.Code) *Graph {
	keep := code.NewSet(nodes...)
	sub := New()
	for _, id := range g.order {
		if keep.Has(id) {
			_ = sub.AddNode(id)
		}
	}
	for _, e := range g.edges {
		if keep.Has(e.From) && keep.Has(e.To) {
			_ = sub.AddEdge(e.From, e.To)
		}
	}
	return sub
}

// Leaves returns every node with zero out-degree, sorted.
func Leaves(g *Graph) []code.Code {
	var out []code.Code
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			out = append(out, id)
		}
	}
	code.Sort(out)
	return out
}
