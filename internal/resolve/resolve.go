// Package resolve implements the Dependency Resolver (spec §4.G): turning
// each usage into zero or one Dependency edge by looking it up in the
// Symbol Table, classifying the edge's DependencyType, dropping self-edges,
// and surfacing shadowing diagnostics as warnings rather than errors.
package resolve

import (
	"strings"

	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/scope"
	"github.com/symtrace/lintric/internal/symtab"
)

// Resolve runs the resolution pass over every usage in source order,
// returning the dependency edges and any shadowing warnings observed. A
// usage that resolves to nothing (an external symbol, a builtin, an
// unresolved import) silently produces no edge, matching spec §4.G's
// "best-effort, never fatal" resolution stance.
func Resolve(tree *scope.Tree, defs []ir.Definition, usages []ir.Usage) ([]ir.Dependency, []ir.ShadowingWarning) {
	table := symtab.New(tree, defs)
	types := buildTypeIndex(tree, defs)

	var deps []ir.Dependency
	var warnings []ir.ShadowingWarning

	for _, u := range usages {
		resolved, candidates, ok := resolveUsage(table, types, u)
		if !ok {
			continue
		}

		if warning, ok := shadowingWarning(u, candidates); ok {
			warnings = append(warnings, warning)
		}

		if resolved.Position.StartLine == u.Position.StartLine {
			continue // self-edge: a definition's own naming site never depends on itself
		}

		deps = append(deps, ir.Dependency{
			SourceLine:     u.Position.StartLine,
			TargetLine:     resolved.Position.StartLine,
			Symbol:         u.Name,
			DependencyType: classify(u, resolved),
			Context:        ir.NewContext(u.Kind, u.Position),
		})
	}

	return deps, warnings
}

// resolveUsage is spec §4.G's full lookup ladder: a qualified usage first
// tries member/impl/trait resolution against the owning type (step "resolve
// obj; look up m among its Property/Method defs"); any usage then falls back
// to the ordinary flat, position-sensitive symbol table lookup; and, failing
// both, to the nearest visible glob-import proxy, so a `use foo::*;` still
// accounts for an otherwise-dangling reference instead of silently dropping
// it. candidates is non-nil only when the flat lookup produced the result,
// since shadowing warnings only make sense for that path.
func resolveUsage(table *symtab.Table, types *typeIndex, u ir.Usage) (ir.Definition, []symtab.Candidate, bool) {
	if len(u.Qualifier) > 0 {
		if d, ok := resolveQualified(table, types, u); ok {
			return d, nil, true
		}
	}

	if candidates := table.Lookup(u.Name, u.ScopeID, u.Position); len(candidates) > 0 {
		return candidates[0].Definition, candidates, true
	}

	if proxy, ok := table.Best("*", u.ScopeID, u.Position); ok {
		return proxy.Definition, nil, true
	}

	return ir.Definition{}, nil, false
}

// resolveQualified implements spec §4.G's member/impl/trait step: "resolve
// obj; look up m among its Property/Method defs; for Rust consider methods
// in any impl block whose target type matches, then trait methods." obj is
// whatever the qualifier's last (innermost) segment names — either a typed
// local binding (`calc.add(5)`: resolve `calc`, read its TypeHint) or the
// type/trait/module name itself (`Calculator::new`, `Self::helper`).
func resolveQualified(table *symtab.Table, types *typeIndex, u ir.Usage) (ir.Definition, bool) {
	qualifier := rewriteAliasedQualifier(table, u)
	if len(qualifier) == 0 {
		return ir.Definition{}, false
	}
	head := qualifier[len(qualifier)-1]

	if owner, ok := table.Best(head, u.ScopeID, u.Position); ok && owner.Definition.TypeHint != "" {
		if d, ok := types.memberOfType(owner.Definition.TypeHint, u.Name); ok {
			return d, true
		}
	}
	return types.memberOfType(head, u.Name)
}

// rewriteAliasedQualifier expands a `use foo::bar as X;` alias at the head of
// a qualified path back to its real path, so `X::Y` resolves the same as
// `foo::bar::Y` would (spec §4.G's import pre-pass). Qualifiers that don't
// start with a known alias pass through unchanged.
func rewriteAliasedQualifier(table *symtab.Table, u ir.Usage) []string {
	if len(u.Qualifier) == 0 {
		return u.Qualifier
	}
	alias, ok := table.Best(u.Qualifier[0], u.ScopeID, u.Position)
	if !ok || alias.Definition.Kind != ir.KindImport || alias.Definition.TypeHint == "" {
		return u.Qualifier
	}
	rewritten := strings.Split(alias.Definition.TypeHint, "::")
	rewritten = append(rewritten, u.Qualifier[1:]...)
	return rewritten
}

// typeIndex maps a type/trait name to the scopes that hold its members
// (spec §4.G), built once per file from every TypeTarget-tagged scope the
// extractor recorded: Rust impl/trait blocks, TypeScript class/interface
// declarations.
type typeIndex struct {
	tree         *scope.Tree
	defs         []ir.Definition
	scopesByType map[string][]int
	traitScopes  []int
}

func buildTypeIndex(tree *scope.Tree, defs []ir.Definition) *typeIndex {
	idx := &typeIndex{tree: tree, defs: defs, scopesByType: map[string][]int{}}
	for id := 0; id < tree.Len(); id++ {
		s := tree.Get(id)
		if s.TypeTarget == "" {
			continue
		}
		idx.scopesByType[s.TypeTarget] = append(idx.scopesByType[s.TypeTarget], id)
		if s.Kind == ir.ScopeTrait {
			idx.traitScopes = append(idx.traitScopes, id)
		}
	}
	return idx
}

// memberOfType looks up name among typeName's own impl/class member scopes
// first, falling back to every trait scope in the file (spec §4.G: "then
// trait methods"). The trait fallback is best-effort — it isn't restricted
// to traits typeName actually implements, since that relationship isn't
// tracked — but only fires once the type's own members have already missed.
func (idx *typeIndex) memberOfType(typeName, name string) (ir.Definition, bool) {
	for _, scopeID := range idx.scopesByType[typeName] {
		if d, ok := idx.memberIn(scopeID, name); ok {
			return d, true
		}
	}
	for _, scopeID := range idx.traitScopes {
		if d, ok := idx.memberIn(scopeID, name); ok {
			return d, true
		}
	}
	return ir.Definition{}, false
}

func (idx *typeIndex) memberIn(scopeID int, name string) (ir.Definition, bool) {
	for _, defID := range idx.tree.Get(scopeID).Definitions {
		if d := idx.defs[defID]; d.Name == name {
			return d, true
		}
	}
	return ir.Definition{}, false
}

// classify refines the usage-kind-based mapping of spec §4.G step 1 with the
// resolved definition's kind, for cases where the usage shape alone is
// ambiguous: a call that actually targets a macro, a qualified reference
// that actually targets a module, and a fallback to a glob-import proxy.
func classify(u ir.Usage, d ir.Definition) ir.DependencyType {
	switch {
	case d.Kind == ir.KindImport && d.Name == "*":
		return ir.ModuleReference
	case u.Kind == ir.CallExpression && d.Kind == ir.KindMacro:
		return ir.MacroInvocation
	case len(u.Qualifier) > 0 && d.Kind == ir.KindModule:
		return ir.ModuleReference
	default:
		return ir.DependencyTypeFor(u.Kind)
	}
}

// shadowingWarning reports a diagnostic when the winning candidate shares its
// scope with the runner-up: two definitions of the same name in the same
// scope both satisfied this lookup, and source-order priority broke the tie
// (spec §4.G "Shadowing warnings"). It never changes which edge is emitted.
func shadowingWarning(u ir.Usage, candidates []symtab.Candidate) (ir.ShadowingWarning, bool) {
	if len(candidates) < 2 {
		return ir.ShadowingWarning{}, false
	}
	best, runnerUp := candidates[0], candidates[1]
	if best.Definition.ScopeID != runnerUp.Definition.ScopeID {
		return ir.ShadowingWarning{}, false
	}
	if best.ShadowingLevel == 0 && runnerUp.ShadowingLevel == 0 {
		return ir.ShadowingWarning{}, false
	}
	return ir.ShadowingWarning{
		Message:      "reference to \"" + u.Name + "\" is ambiguous between multiple same-scope definitions; resolved to the most recent one",
		ShadowingDef: best.Definition,
		ShadowedDef:  runnerUp.Definition,
	}, true
}
