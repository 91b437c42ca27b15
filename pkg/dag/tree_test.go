package dag

import (
	stderrors "errors"
	"slices"
	"testing"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/errors"
)

func TestToTree_Chain(t *testing.T) {
	g := FromEdges([]Edge{{"0", "1"}, {"1", "2"}})

	tree, err := ToTree(g, "0")
	if err != nil {
		t.Fatalf("ToTree() error = %v", err)
	}
	if tree.Root != "0" {
		t.Errorf("Root = %q, want 0", tree.Root)
	}
	if got, want := tree.Edges(), []Edge{{"0", "1"}, {"1", "2"}}; !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestToTree_ShortestPathWins(t *testing.T) {
	// 3 is reachable as 0->1->2->3 and 0->3; BFS keeps the direct edge.
	g := FromEdges([]Edge{{"0", "1"}, {"1", "2"}, {"2", "3"}, {"0", "3"}})

	tree, err := ToTree(g, "0")
	if err != nil {
		t.Fatalf("ToTree() error = %v", err)
	}
	if p, _ := tree.Parent("3"); p != "0" {
		t.Errorf("Parent(3) = %q, want 0", p)
	}
	if tree.EdgeCount() != tree.NodeCount()-1 {
		t.Errorf("tree has %d edges for %d nodes", tree.EdgeCount(), tree.NodeCount())
	}
}

func TestToTree_TieBrokenByInputOrder(t *testing.T) {
	// 3 is two hops away through both 1 and 2; edge 1->3 comes first.
	g := FromEdges([]Edge{{"0", "1"}, {"0", "2"}, {"2", "3"}, {"1", "3"}})

	tree, err := ToTree(g, "0")
	if err != nil {
		t.Fatalf("ToTree() error = %v", err)
	}
	if p, _ := tree.Parent("3"); p != "1" {
		t.Errorf("Parent(3) = %q, want 1", p)
	}
}

func TestToTree_CycleTerminates(t *testing.T) {
	g := FromEdges([]Edge{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	tree, err := ToTree(g, "b")
	if err != nil {
		t.Fatalf("ToTree() error = %v", err)
	}
	if got, want := tree.Edges(), []Edge{{"b", "c"}, {"c", "a"}}; !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestToTree_MissingRoot(t *testing.T) {
	g := FromEdges([]Edge{{"0", "1"}})

	tree, err := ToTree(g, "9")
	if err == nil {
		t.Fatal("ToTree() error = nil, want error")
	}
	if tree != nil {
		t.Errorf("ToTree() tree = %v, want nil", tree)
	}
	if !stderrors.Is(err, ErrNodeNotFound) {
		t.Errorf("errors.Is(err, ErrNodeNotFound) = false for %v", err)
	}
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNodeNotFound)
	}
}

func TestSubtree(t *testing.T) {
	g := FromEdges([]Edge{{"0", "1"}, {"1", "11"}, {"1", "12"}, {"12", "121"}, {"0", "2"}})

	sub, err := Subtree(g, "1")
	if err != nil {
		t.Fatalf("Subtree() error = %v", err)
	}
	if got, want := sub.Nodes(), []code.Code{"1", "11", "12", "121"}; !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
	depth := sub.Depth()
	if depth["121"] != 2 || depth["1"] != 0 {
		t.Errorf("Depth() = %v, want 121 at 2 and 1 at 0", depth)
	}
}

func TestSubtree_Leaf(t *testing.T) {
	g := FromEdges([]Edge{{"0", "1"}})

	sub, err := Subtree(g, "1")
	if err != nil {
		t.Fatalf("Subtree() error = %v", err)
	}
	if sub.NodeCount() != 1 || sub.EdgeCount() != 0 {
		t.Errorf("Subtree(leaf) = %d nodes, %d edges, want 1, 0", sub.NodeCount(), sub.EdgeCount())
	}
	if _, ok := sub.Parent("1"); ok {
		t.Error("Parent(root) should report false")
	}
}
