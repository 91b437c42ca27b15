package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
)

// EdgeSeparator joins rendered edges and codes.
const EdgeSeparator = ", "

// Edge renders a single edge as "A -> B".
func Edge(e dag.Edge) string {
	return code.Format(e.From) + " -> " + code.Format(e.To)
}

// Edges renders edges as a sorted, comma-separated list.
// The order of the input never affects the output.
func Edges(edges []dag.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = Edge(e)
	}
	slices.Sort(parts)
	return strings.Join(parts, EdgeSeparator)
}

// Codes renders codes formatted and sorted with [code.Compare].
func Codes(codes []code.Code) string {
	sorted := code.Sorted(codes)
	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = code.Format(c)
	}
	return strings.Join(parts, EdgeSeparator)
}

// Outline writes t as an indented outline, two spaces per level. Siblings are
// ordered with [code.Compare].
func Outline(w io.Writer, t *dag.Tree) error {
	var walk func(id code.Code, depth int) error
	walk = func(id code.Code, depth int) error {
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), code.Format(id)); err != nil {
			return err
		}
		for _, child := range code.Sorted(t.Children(id)) {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t.Root, 0)
}
