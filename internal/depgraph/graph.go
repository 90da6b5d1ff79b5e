// Package depgraph implements the Dependency Graph (spec §4.H): a directed
// multigraph over line numbers built from the resolver's Dependency edges,
// weighted by line distance, with the traversal primitives the Metric Engine
// drives.
package depgraph

import "github.com/symtrace/lintric/internal/ir"

// Edge is one directed, weighted graph edge: from source line to target
// line, weight = the absolute line distance between them.
type Edge struct {
	Target int
	Weight int
}

// Graph is a directed multigraph keyed by line number; parallel edges
// between the same two lines (e.g. two separate usages on one line of the
// same callee) are kept distinct, matching the resolver's 1:1 usage->edge
// output.
type Graph struct {
	out map[int][]Edge
	in  map[int][]Edge
	// lines holds every line number that appears as a source or target,
	// insertion order, so callers can iterate deterministically.
	lines []int
	seen  map[int]bool
}

// New builds a Graph from a resolved dependency list.
func New(deps []ir.Dependency) *Graph {
	g := &Graph{
		out:  map[int][]Edge{},
		in:   map[int][]Edge{},
		seen: map[int]bool{},
	}
	for _, d := range deps {
		g.addEdge(d.SourceLine, d.TargetLine)
	}
	return g
}

func (g *Graph) addEdge(source, target int) {
	weight := source - target
	if weight < 0 {
		weight = -weight
	}
	g.out[source] = append(g.out[source], Edge{Target: target, Weight: weight})
	g.in[target] = append(g.in[target], Edge{Target: source, Weight: weight})
	g.markSeen(source)
	g.markSeen(target)
}

func (g *Graph) markSeen(line int) {
	if !g.seen[line] {
		g.seen[line] = true
		g.lines = append(g.lines, line)
	}
}

// Successors returns the lines source directly depends on.
func (g *Graph) Successors(source int) []Edge {
	return g.out[source]
}

// Predecessors returns the lines that directly depend on target.
func (g *Graph) Predecessors(target int) []Edge {
	return g.in[target]
}

// Lines returns every line participating in at least one edge, in the order
// first encountered while building the graph.
func (g *Graph) Lines() []int {
	out := make([]int, len(g.lines))
	copy(out, g.lines)
	return out
}

// BFSFrom returns every line reachable from start by following outgoing
// edges, start excluded, each visited exactly once regardless of how many
// parallel paths reach it.
func (g *Graph) BFSFrom(start int) []int {
	visited := map[int]bool{start: true}
	queue := []int{start}
	var order []int
	for len(queue) > 0 {
		line := queue[0]
		queue = queue[1:]
		for _, e := range g.out[line] {
			if visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			order = append(order, e.Target)
			queue = append(queue, e.Target)
		}
	}
	return order
}
