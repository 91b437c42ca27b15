package render

import (
	"bytes"
	"testing"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
)

func TestEdges(t *testing.T) {
	tests := []struct {
		name  string
		edges []dag.Edge
		want  string
	}{
		{"integral floats", []dag.Edge{{From: "2.0", To: "3.0"}}, "2 -> 3"},
		{"fraction kept", []dag.Edge{{From: "1", To: "1.5"}}, "1 -> 1.5"},
		{"sorted lexicographically", []dag.Edge{{From: "2", To: "3"}, {From: "10", To: "11"}, {From: "1", To: "2"}}, "1 -> 2, 10 -> 11, 2 -> 3"},
		{"text codes", []dag.Edge{{From: "B", To: "C"}, {From: "A", To: "B"}}, "A -> B, B -> C"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Edges(tt.edges); got != tt.want {
				t.Errorf("Edges() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdgesOrderIndependent(t *testing.T) {
	a := []dag.Edge{{From: "C", To: "A"}, {From: "A", To: "B"}, {From: "B", To: "C"}}
	b := []dag.Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "A"}}
	if Edges(a) != Edges(b) {
		t.Errorf("Edges() differs by input order: %q vs %q", Edges(a), Edges(b))
	}
}

func TestCodes(t *testing.T) {
	got := Codes([]code.Code{"10", "2.0", "1"})
	if want := "1, 2, 10"; got != want {
		t.Errorf("Codes() = %q, want %q", got, want)
	}
}

func TestOutline(t *testing.T) {
	g := dag.FromEdges([]dag.Edge{{From: "0", To: "2"}, {From: "0", To: "1"}, {From: "1", To: "11"}})
	tree, err := dag.ToTree(g, "0")
	if err != nil {
		t.Fatalf("ToTree() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Outline(&buf, tree); err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	want := "0\n  1\n    11\n  2\n"
	if buf.String() != want {
		t.Errorf("Outline() = %q, want %q", buf.String(), want)
	}
}
