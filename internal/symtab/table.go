// Package symtab implements the Symbol Table (spec §4.F): for each scope, a
// map from name to its ordered shadowing chain of definitions, plus the
// scoped, position-sensitive lookup the resolver drives.
package symtab

import (
	"sort"

	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/scope"
)

// Candidate is a resolution candidate as defined in spec §4.F step 3: a
// definition reachable from a lookup, annotated with how far it is (in
// scope hops) and how thoroughly it is shadowed.
type Candidate struct {
	Definition     ir.Definition
	ScopeDistance  int
	ShadowingLevel int
	PriorityScore  float64
}

// Table answers name lookups against a scope tree and its definitions.
type Table struct {
	tree *scope.Tree
	defs []ir.Definition
	// byScope maps scope id -> definition ids declared directly in it, in
	// source order (the order the traverser appended them).
	byScope map[int][]int
}

// New builds a symbol table over the given scope tree and definition list.
// defs[i].ID must equal i (the traverser's invariant).
func New(tree *scope.Tree, defs []ir.Definition) *Table {
	t := &Table{tree: tree, defs: defs, byScope: map[int][]int{}}
	for i, d := range defs {
		t.byScope[d.ScopeID] = append(t.byScope[d.ScopeID], i)
	}
	return t
}

// Lookup returns every in-lexical-scope candidate for name visible from
// scopeID at source position at, across scopeID and every ancestor, ranked
// by descending priority score (spec §4.F steps 1-4). The returned slice is
// never nil but may be empty.
func (t *Table) Lookup(name string, scopeID int, at ir.Position) []Candidate {
	candidates := []Candidate{}

	distance := 0
	for current, ok := scopeID, true; ok; {
		for _, sameName := range t.sameNameInScope(current, name) {
			d := t.defs[sameName.defID]
			if !d.Hoistable && !visibleFrom(d).Before(at) {
				continue // not yet visible: non-hoistable, used before declaration
			}
			shadowingLevel := 0
			for _, later := range t.sameNameInScope(current, name) {
				ld := t.defs[later.defID]
				if ld.Position.Before(at) && d.Position.Before(ld.Position) {
					shadowingLevel++
				}
			}
			candidates = append(candidates, Candidate{
				Definition:     d,
				ScopeDistance:  distance,
				ShadowingLevel: shadowingLevel,
				PriorityScore:  priorityScore(distance, shadowingLevel),
			})
		}
		parent, hasParent := t.tree.Parent(current)
		if !hasParent {
			break
		}
		current = parent
		distance++
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].PriorityScore != candidates[j].PriorityScore {
			return candidates[i].PriorityScore > candidates[j].PriorityScore
		}
		return candidates[i].Definition.Position.Before(candidates[j].Definition.Position)
	})
	return candidates
}

// Best returns the winning candidate for name at position at in scopeID, or
// false if none resolves.
func (t *Table) Best(name string, scopeID int, at ir.Position) (Candidate, bool) {
	candidates := t.Lookup(name, scopeID, at)
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// visibleFrom is the position from which d becomes visible to a
// non-hoistable lookup: its explicit VisibleFrom (end of its declaring
// statement) when the extractor set one, falling back to the binding
// identifier's own position otherwise (spec §3).
func visibleFrom(d ir.Definition) ir.Position {
	if d.VisibleFrom != (ir.Position{}) {
		return d.VisibleFrom
	}
	return d.Position
}

type namedDef struct{ defID int }

func (t *Table) sameNameInScope(scopeID int, name string) []namedDef {
	var out []namedDef
	for _, id := range t.byScope[scopeID] {
		if t.defs[id].Name == name {
			out = append(out, namedDef{defID: id})
		}
	}
	return out
}

// priorityScore implements spec §4.F step 4: the shadowing term dominates
// so the innermost shadow always outranks an outer-scope definition.
func priorityScore(scopeDistance, shadowingLevel int) float64 {
	return 1.0/(float64(scopeDistance)+1.0) + 100.0/(float64(shadowingLevel)+1.0)
}
