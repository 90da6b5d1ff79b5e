package depgraph

import (
	"testing"

	"github.com/symtrace/lintric/internal/ir"
)

func TestAddEdgeTracksWeightAndDirection(t *testing.T) {
	g := New([]ir.Dependency{
		{SourceLine: 10, TargetLine: 3, Symbol: "foo", DependencyType: ir.FunctionCall},
	})

	succ := g.Successors(10)
	if len(succ) != 1 || succ[0].Target != 3 || succ[0].Weight != 7 {
		t.Fatalf("unexpected successors of line 10: %+v", succ)
	}
	pred := g.Predecessors(3)
	if len(pred) != 1 || pred[0].Target != 10 {
		t.Fatalf("unexpected predecessors of line 3: %+v", pred)
	}
}

func TestBFSFromVisitsEachLineOnce(t *testing.T) {
	g := New([]ir.Dependency{
		{SourceLine: 1, TargetLine: 2},
		{SourceLine: 2, TargetLine: 3},
		{SourceLine: 1, TargetLine: 3},
		{SourceLine: 3, TargetLine: 1}, // cycle back to the start
	})

	reachable := g.BFSFrom(1)
	seen := map[int]int{}
	for _, l := range reachable {
		seen[l]++
	}
	if seen[2] != 1 || seen[3] != 1 {
		t.Fatalf("expected each reachable line exactly once, got %v", seen)
	}
	if seen[1] != 0 {
		t.Fatalf("did not expect the start line to be reported as reachable from itself")
	}
}
