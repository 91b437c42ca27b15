// Package integrity cross-checks the indicator catalog against the
// composition table.
//
// The composition table encodes the intended hierarchy and the description
// table is the catalog of indicators. The two must agree exactly, ignoring the
// root sentinel: a composition code missing from the catalog references an
// undefined indicator, and a catalog code never used in the composition is an
// orphan entry no computation will reach.
package integrity

import (
	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
)

// Result holds both referential differences, each sorted with [code.Compare].
type Result struct {
	// Orphaned lists codes used as parent or child in the composition table
	// but absent from the description table.
	Orphaned []code.Code `json:"orphaned,omitempty"`

	// Undeclared lists codes present in the description table but never used
	// as parent or child in the composition table.
	Undeclared []code.Code `json:"undeclared,omitempty"`
}

// OK reports whether both differences are empty.
func (r Result) OK() bool { return len(r.Orphaned) == 0 && len(r.Undeclared) == 0 }

// Check compares the description codes against every code used in edges.
// The root sentinel never appears in either difference.
func Check(description []code.Code, edges []dag.Edge) Result {
	declared := code.NewSet(description...)
	used := code.NewSet()
	for _, e := range edges {
		used.Add(e.From)
		used.Add(e.To)
	}
	return Result{
		Orphaned:   difference(used, declared),
		Undeclared: difference(declared, used),
	}
}

// CheckGraph is [Check] over the edges of g.
func CheckGraph(description []code.Code, g *dag.Graph) Result {
	return Check(description, g.Edges())
}

// difference returns a \ b without the root sentinel, sorted.
func difference(a, b code.Set) []code.Code {
	var out []code.Code
	for c := range a {
		if c.IsRoot() || b.Has(c) {
			continue
		}
		out = append(out, c)
	}
	code.Sort(out)
	return out
}
