package validate

import (
	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names the check that produced a finding.
type Rule string

// Rules in the order their findings appear in a report.
const (
	RuleCycle           Rule = "cycle"
	RuleDisconnected    Rule = "disconnected"
	RuleOrphanedCodes   Rule = "orphaned-codes"
	RuleUndeclaredCodes Rule = "undeclared-codes"
)

// Finding is one reported structural defect.
type Finding struct {
	Severity Severity    `json:"severity"`
	Rule     Rule        `json:"rule"`
	Message  string      `json:"message"`
	Edges    []dag.Edge  `json:"edges,omitempty"`
	Codes    []code.Code `json:"codes,omitempty"`
}

// Summary holds counts describing the validated taxonomy.
type Summary struct {
	Declared   int `json:"declared"`
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	Leaves     int `json:"leaves"`
	Components int `json:"components"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
}

// Report is the outcome of validating one taxonomy.
type Report struct {
	Names    Names     `json:"names"`
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`

	// Hierarchy lists the edges of Tree in breadth-first order. It is set
	// only when the structure is sound.
	Hierarchy []dag.Edge `json:"hierarchy,omitempty"`

	// Tree is the hierarchy rooted at [code.Root]. It is nil when any finding
	// exists or the composition has no root rows.
	Tree *dag.Tree `json:"-"`
}

// OK reports whether no error-level finding exists.
func (r *Report) OK() bool { return r.count(SeverityError) == 0 }

// ByRule returns the findings produced by rule, in report order.
func (r *Report) ByRule(rule Rule) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

// Messages returns the message of every finding in report order.
func (r *Report) Messages() []string {
	out := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		out[i] = f.Message
	}
	return out
}

func (r *Report) add(f Finding) { r.Findings = append(r.Findings, f) }

func (r *Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}
