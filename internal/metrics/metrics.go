// Package metrics implements the Metric Engine (spec §4.I): per-line
// complexity figures derived from the Dependency Graph, memoizing the
// recursive depth computation and guarding against the cycles a
// non-acyclic source dependency graph can legitimately contain.
package metrics

import "github.com/symtrace/lintric/internal/depgraph"

// Line holds every per-line metric computed for a single source line.
// overall_complexity_score is deliberately absent here: spec §4.I step 5
// defines it as a single file-level scalar, not a per-line figure (see
// Engine.OverallComplexityScore).
type Line struct {
	Line                   int `json:"line" yaml:"line"`
	TotalDependencies      int `json:"total_dependencies" yaml:"totalDependencies"`
	DependencyDistanceCost int `json:"dependency_distance_cost" yaml:"dependencyDistanceCost"`
	Depth                  int `json:"depth" yaml:"depth"`
	TransitiveDependencies int `json:"transitive_dependencies" yaml:"transitiveDependencies"`
}

// depthState tracks a line's memoized depth plus whether it's currently on
// the recursion stack, so a cycle in the dependency graph resolves to a
// finite depth (the cycle contributes no further depth past the point it's
// re-entered) instead of recursing forever.
type depthState struct {
	value      int
	computed   bool
	inProgress bool
}

// Engine computes metrics over a single file's Dependency Graph.
type Engine struct {
	graph  *depgraph.Graph
	depths map[int]*depthState
}

// New builds an Engine over g.
func New(g *depgraph.Graph) *Engine {
	return &Engine{graph: g, depths: map[int]*depthState{}}
}

// Compute returns one Line record per line that appears in the graph, in
// the order the graph first encountered them (stable, but not necessarily
// numeric order).
func (e *Engine) Compute() []Line {
	lines := e.graph.Lines()
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, e.computeLine(l))
	}
	return out
}

func (e *Engine) computeLine(line int) Line {
	return Line{
		Line:                   line,
		TotalDependencies:      e.totalDependencies(line),
		DependencyDistanceCost: e.dependencyDistanceCost(line),
		Depth:                  e.depth(line),
		TransitiveDependencies: e.transitiveDependencies(line),
	}
}

// totalDependencies is the line's direct out-degree (spec §4.I step 1).
func (e *Engine) totalDependencies(line int) int {
	return len(e.graph.Successors(line))
}

// dependencyDistanceCost sums the weight (line distance) of every direct
// outgoing edge (spec §4.I step 2): dependencies on far-away lines cost more
// than ones on adjacent lines.
func (e *Engine) dependencyDistanceCost(line int) int {
	sum := 0
	for _, edge := range e.graph.Successors(line) {
		sum += edge.Weight
	}
	return sum
}

// depth is the longest dependency chain starting at line, memoized per
// line and guarded against cycles: a line re-entered while already on the
// current recursion stack contributes zero further depth (spec §4.I step 3).
func (e *Engine) depth(line int) int {
	state, ok := e.depths[line]
	if !ok {
		state = &depthState{}
		e.depths[line] = state
	}
	if state.computed {
		return state.value
	}
	if state.inProgress {
		return 0 // cycle: don't recurse further
	}
	state.inProgress = true

	best := 0
	for _, edge := range e.graph.Successors(line) {
		if d := 1 + e.depth(edge.Target); d > best {
			best = d
		}
	}

	state.inProgress = false
	state.computed = true
	state.value = best
	return best
}

// transitiveDependencies is the count of distinct lines reachable from line
// by following the dependency chain to its end (spec §4.I step 4).
func (e *Engine) transitiveDependencies(line int) int {
	return len(e.graph.BFSFrom(line))
}

// OverallComplexityScore is the file-level aggregate spec §4.I step 5 and
// invariant 6 define: the sum of every line's dependency distance cost
// divided by the file's total line count, so that
// OverallComplexityScore(totalLines) * totalLines == the same sum. Lines
// absent from the graph contribute a distance cost of zero, so summing over
// only the lines the graph knows about already equals the sum over every
// line in [1, totalLines].
func (e *Engine) OverallComplexityScore(totalLines int) float64 {
	if totalLines <= 0 {
		return 0
	}
	sum := 0
	for _, l := range e.graph.Lines() {
		sum += e.dependencyDistanceCost(l)
	}
	return float64(sum) / float64(totalLines)
}
