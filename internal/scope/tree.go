// Package scope implements the hierarchical lexical scope tree (spec §4.B):
// an arena of scopes addressed by integer id, with parent links and an
// enclosing-scope query used by the traverser, symbol table and resolver.
package scope

import "github.com/symtrace/lintric/internal/ir"

// Tree is the scope arena for one file. Scope 0 is always the root Global
// scope, spanning the whole file (spec §3).
type Tree struct {
	scopes []ir.Scope
}

// NewTree creates a tree with the root Global scope already in place.
func NewTree(fileSpan ir.Position) *Tree {
	t := &Tree{}
	t.scopes = append(t.scopes, ir.Scope{
		ID:            0,
		Kind:          ir.ScopeGlobal,
		StartPosition: fileSpan,
		EndPosition:   fileSpan,
	})
	return t
}

// Root returns the id of the root scope (always 0).
func (t *Tree) Root() int { return 0 }

// CreateChild adds a new scope as a child of parent and returns its id.
func (t *Tree) CreateChild(parent int, kind ir.ScopeKind, start, end ir.Position) int {
	id := len(t.scopes)
	t.scopes = append(t.scopes, ir.Scope{
		ID:            id,
		ParentID:      parent,
		HasParent:     true,
		Kind:          kind,
		StartPosition: start,
		EndPosition:   end,
	})
	t.scopes[parent].Children = append(t.scopes[parent].Children, id)
	return id
}

// SetTypeTarget records the type name a scope holds members for (a Rust
// impl/trait block's target type, a TypeScript class/interface's own
// name), consumed by the resolver's member lookup (spec §4.G).
func (t *Tree) SetTypeTarget(id int, name string) {
	t.scopes[id].TypeTarget = name
}

// Get returns a snapshot of the scope with the given id.
func (t *Tree) Get(id int) ir.Scope {
	return t.scopes[id]
}

// AddDefinition records a definition id against the given scope.
func (t *Tree) AddDefinition(scopeID, definitionID int) {
	t.scopes[scopeID].Definitions = append(t.scopes[scopeID].Definitions, definitionID)
}

// Parent returns (parentID, true) if id has a parent, or (0, false) at the
// root.
func (t *Tree) Parent(id int) (int, bool) {
	s := t.scopes[id]
	return s.ParentID, s.HasParent
}

// Enclosing returns the id of the innermost scope whose span contains pos.
// It walks down from the root; the root always matches because its span
// covers the whole file (spec §4.B).
func (t *Tree) Enclosing(pos ir.Position) int {
	current := 0
	for {
		best := -1
		for _, childID := range t.scopes[current].Children {
			if t.scopes[childID].Contains(pos) {
				best = childID
				break
			}
		}
		if best == -1 {
			return current
		}
		current = best
	}
}

// All returns the full set of scopes in id order, suitable for serialization.
func (t *Tree) All() []ir.Scope {
	out := make([]ir.Scope, len(t.scopes))
	copy(out, t.scopes)
	return out
}

// Len reports the number of scopes in the tree.
func (t *Tree) Len() int { return len(t.scopes) }
