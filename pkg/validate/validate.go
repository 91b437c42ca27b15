package validate

import (
	"fmt"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/integrity"
	"github.com/matzehuels/taxocheck/pkg/render"
)

// Default table names used in finding messages.
const (
	DefaultDescriptionName = "description"
	DefaultCompositionName = "composition"
)

// Input is the pair of code collections to validate.
type Input struct {
	// Description is the indicator catalog.
	Description []code.Code `json:"description"`
	// Composition holds raw parent/child rows, canonicalized by [dag.Build].
	Composition []dag.Pair `json:"composition"`
}

// Names labels the two tables in finding messages, usually with their file
// names. Empty fields fall back to the defaults.
type Names struct {
	Description string `json:"description,omitempty"`
	Composition string `json:"composition,omitempty"`
}

func (n Names) withDefaults() Names {
	if n.Description == "" {
		n.Description = DefaultDescriptionName
	}
	if n.Composition == "" {
		n.Composition = DefaultCompositionName
	}
	return n
}

// Validate runs every structural check over in. It is pure and safe for
// concurrent use.
func Validate(in Input, names Names) *Report {
	return ValidateGraph(dag.Build(in.Composition), in.Description, names)
}

// ValidateGraph is [Validate] over an already built composition graph.
// g is only read.
func ValidateGraph(g *dag.Graph, description []code.Code, names Names) *Report {
	names = names.withDefaults()
	rep := &Report{Names: names, Findings: []Finding{}}

	if found, witness := dag.DetectCycle(g); found {
		rep.add(Finding{
			Severity: SeverityError,
			Rule:     RuleCycle,
			Message:  fmt.Sprintf("cycle detected in %s: %s", names.Composition, render.Edges(witness)),
			Edges:    witness,
		})
	}

	comps := dag.Components(g)
	for _, c := range comps[min(1, len(comps)):] {
		edges := c.Graph.Edges()
		rep.add(Finding{
			Severity: SeverityError,
			Rule:     RuleDisconnected,
			Message:  fmt.Sprintf("disconnected structure in %s: %s", names.Composition, render.Edges(edges)),
			Edges:    edges,
			Codes:    c.Nodes,
		})
	}

	res := integrity.CheckGraph(description, g)
	if len(res.Orphaned) > 0 {
		rep.add(Finding{
			Severity: SeverityError,
			Rule:     RuleOrphanedCodes,
			Message: fmt.Sprintf("codes used in %s are missing from %s: %s",
				names.Composition, names.Description, render.Codes(res.Orphaned)),
			Codes: res.Orphaned,
		})
	}
	if len(res.Undeclared) > 0 {
		rep.add(Finding{
			Severity: SeverityError,
			Rule:     RuleUndeclaredCodes,
			Message: fmt.Sprintf("codes declared in %s are not used in %s: %s",
				names.Description, names.Composition, render.Codes(res.Undeclared)),
			Codes: res.Undeclared,
		})
	}

	rep.Summary = Summary{
		Declared:   len(code.NewSet(description...)),
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Leaves:     len(dag.Leaves(g)),
		Components: len(comps),
		Errors:     rep.count(SeverityError),
		Warnings:   rep.count(SeverityWarning),
	}

	if len(rep.Findings) == 0 && g.HasNode(code.Root) {
		// Cannot fail: the root is a node.
		rep.Tree, _ = dag.ToTree(g, code.Root)
		rep.Hierarchy = rep.Tree.Edges()
	}
	return rep
}
