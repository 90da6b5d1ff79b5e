// Package traverse implements the Unified Traverser (spec §4.E): a single
// iterative depth-first walk over a parsed syntax tree that co-produces the
// scope tree, the definition list and the usage list in one source-order
// pass, driven by a language's extract.Extractor.
package traverse

import (
	"github.com/symtrace/lintric/internal/cst"
	"github.com/symtrace/lintric/internal/extract"
	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/scope"
)

// Result bundles the scope tree plus the flat definition/usage lists built
// in one pass over a file's syntax tree.
type Result struct {
	Scopes      *scope.Tree
	Definitions []ir.Definition
	Usages      []ir.Usage
}

type frame struct {
	node    cst.Node
	scopeID int
	isRoot  bool
}

// Walk drives ex over root's subtree with an explicit stack (no recursion,
// so arbitrarily deep trees don't risk stack overflow), visiting nodes in
// source (pre-)order. The root node is always scope 0 (spec §4.B); any other
// node the extractor reports as scope-opening gets a fresh child scope
// spanning its own position.
func Walk(root cst.Node, ex extract.Extractor) Result {
	tree := scope.NewTree(root.Position())
	var defs []ir.Definition
	var usages []ir.Usage

	stack := []frame{{node: root, scopeID: tree.Root(), isRoot: true}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		enclosingScopeID := top.scopeID
		scopeID := enclosingScopeID

		if !top.isRoot {
			if kind, opens := ex.OpensScope(n); opens {
				scopeID = tree.CreateChild(enclosingScopeID, kind, n.Position(), n.Position())
				if target, ok := ex.TypeTarget(n); ok {
					tree.SetTypeTarget(scopeID, target)
				}
			}
		}

		// A node's own definitions belong to the scope it was declared in,
		// not to the (possibly new) scope it opens for its descendants: a
		// function's name is visible to its caller, not just inside its own
		// body.
		for _, d := range ex.Definitions(n) {
			d.ID = len(defs)
			d.ScopeID = enclosingScopeID
			defs = append(defs, d)
			tree.AddDefinition(enclosingScopeID, d.ID)
		}

		for _, u := range ex.Usages(n) {
			u.ScopeID = scopeID
			usages = append(usages, u)
		}

		// Push children in reverse so they pop off the stack, and so get
		// visited, in source order.
		count := n.NamedChildCount()
		for i := count - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.NamedChild(i), scopeID: scopeID})
		}
	}

	return Result{Scopes: tree, Definitions: defs, Usages: usages}
}
