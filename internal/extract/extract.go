// Package extract declares the per-language capability the Unified
// Traverser (internal/traverse) depends on: given a node, whether it opens a
// scope, and the zero-or-more definitions/usages it introduces (spec §4.C,
// §4.D). Concrete languages live in the rust and typescript subpackages.
package extract

import (
	"github.com/symtrace/lintric/internal/cst"
	"github.com/symtrace/lintric/internal/ir"
)

// Extractor is the per-language capability pair the traverser drives: scope
// discovery plus the definition/usage predicates (spec §9 "Polymorphism
// over language" design note).
type Extractor interface {
	// OpensScope reports whether n introduces a new lexical scope and, if
	// so, its kind (spec §4.E's scope-opening node table).
	OpensScope(n cst.Node) (ir.ScopeKind, bool)

	// Definitions returns the zero or more definitions n directly
	// introduces (e.g. one per binding identifier in a destructuring
	// pattern). Position/Kind/Name/Hoistable are populated; ScopeID/ID are
	// assigned by the traverser.
	Definitions(n cst.Node) []ir.Definition

	// Usages returns the zero or more usage references n directly
	// introduces. ScopeID is assigned by the traverser.
	Usages(n cst.Node) []ir.Usage

	// IsDefinitionSite reports whether n is itself the naming node of some
	// definition (its own identifier, or an identifier nested in a Rust let
	// pattern or a TypeScript variable declarator's binding pattern), so the
	// traverser's generic identifier fallback doesn't double-count it as a
	// usage. Identifiers bound by for-loop, match-arm, if-let/while-let or
	// parameter patterns are neither definitions nor definition sites.
	IsDefinitionSite(n cst.Node) bool

	// TypeTarget reports the type name a scope-opening node's new scope
	// holds members for: a Rust impl/trait block's target/trait name, a
	// TypeScript class/interface declaration's own name. Most
	// scope-opening nodes return ("", false). Consumed by the resolver's
	// member/impl/trait lookup (spec §4.G).
	TypeTarget(n cst.Node) (string, bool)
}
