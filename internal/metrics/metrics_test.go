package metrics

import (
	"testing"

	"github.com/symtrace/lintric/internal/depgraph"
	"github.com/symtrace/lintric/internal/ir"
)

func TestComputeSimpleChain(t *testing.T) {
	// line 1 depends on 2, which depends on 3. Depth(1) = 2, Depth(2) = 1,
	// Depth(3) = 0.
	g := depgraph.New([]ir.Dependency{
		{SourceLine: 1, TargetLine: 2},
		{SourceLine: 2, TargetLine: 3},
	})
	lines := New(g).Compute()

	byLine := map[int]Line{}
	for _, l := range lines {
		byLine[l.Line] = l
	}

	if d := byLine[1].Depth; d != 2 {
		t.Fatalf("depth(1) = %d, want 2", d)
	}
	if d := byLine[2].Depth; d != 1 {
		t.Fatalf("depth(2) = %d, want 1", d)
	}
	if total := byLine[1].TotalDependencies; total != 1 {
		t.Fatalf("total_dependencies(1) = %d, want 1", total)
	}
	if transitive := byLine[1].TransitiveDependencies; transitive != 2 {
		t.Fatalf("transitive_dependencies(1) = %d, want 2", transitive)
	}
}

func TestOverallComplexityScoreSatisfiesInvariant(t *testing.T) {
	// line 1 -> 2 (distance 1), line 1 -> 3 (distance 2): distance cost sums
	// to 1 + 2 = 3 across a 6-line file.
	g := depgraph.New([]ir.Dependency{
		{SourceLine: 1, TargetLine: 2},
		{SourceLine: 1, TargetLine: 3},
	})
	e := New(g)
	e.Compute()

	const totalLines = 6
	score := e.OverallComplexityScore(totalLines)
	if got, want := score*float64(totalLines), 3.0; got != want {
		t.Fatalf("score * total_lines = %v, want %v (invariant 6)", got, want)
	}
}

func TestOverallComplexityScoreZeroForEmptyFile(t *testing.T) {
	e := New(depgraph.New(nil))
	if score := e.OverallComplexityScore(0); score != 0 {
		t.Fatalf("expected a zero score for a zero-line file, got %v", score)
	}
}

func TestComputeHandlesCycleWithoutInfiniteRecursion(t *testing.T) {
	g := depgraph.New([]ir.Dependency{
		{SourceLine: 1, TargetLine: 2},
		{SourceLine: 2, TargetLine: 1},
	})

	lines := New(g).Compute()
	if len(lines) != 2 {
		t.Fatalf("expected metrics for both lines in the cycle, got %d", len(lines))
	}
	for _, l := range lines {
		if l.Depth < 0 {
			t.Fatalf("expected a non-negative depth for a cyclic line, got %d", l.Depth)
		}
	}
}
