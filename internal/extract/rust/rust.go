// Package rust implements the Rust Definition/Usage Extractor (spec §4.C,
// §4.D) against the tree-sitter-rust grammar.
package rust

import (
	"github.com/symtrace/lintric/internal/cst"
	"github.com/symtrace/lintric/internal/ir"
)

// Extractor implements extract.Extractor for Rust.
type Extractor struct{}

// New returns a Rust extractor.
func New() *Extractor { return &Extractor{} }

// OpensScope implements the Rust half of spec §4.E's scope-opening table.
func (e *Extractor) OpensScope(n cst.Node) (ir.ScopeKind, bool) {
	switch n.Kind() {
	case "source_file":
		return ir.ScopeGlobal, true
	case "mod_item":
		return ir.ScopeModule, true
	case "function_item":
		return ir.ScopeFunc, true
	case "closure_expression":
		return ir.ScopeClosure, true
	case "impl_item":
		return ir.ScopeImpl, true
	case "trait_item":
		return ir.ScopeTrait, true
	case "block":
		return ir.ScopeBlock, true
	case "match_arm":
		return ir.ScopeMatch, true
	case "for_expression", "while_expression", "loop_expression":
		return ir.ScopeLoop, true
	default:
		return "", false
	}
}

// Definitions implements spec §4.C's Rust rule table.
func (e *Extractor) Definitions(n cst.Node) []ir.Definition {
	switch n.Kind() {
	case "function_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			kind := ir.KindFunction
			if isMethodContext(n) {
				kind = ir.KindMethod
			}
			return []ir.Definition{def(name, kind)}
		}
	case "struct_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindStruct)}
		}
	case "enum_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindEnum)}
		}
	case "type_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindType)}
		}
	case "mod_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindModule)}
		}
	case "const_item", "static_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindConst)}
		}
	case "let_declaration":
		pattern := n.ChildByField("pattern")
		if pattern.IsNil() {
			return nil
		}
		defs := patternBindings(pattern, n.Position().End())
		if len(defs) == 1 && pattern.Kind() == "identifier" {
			if hint := inferTypeHint(n); hint != "" {
				defs[0].TypeHint = hint
			}
		}
		return defs
	case "macro_definition":
		if name := n.ChildByField("name"); !name.IsNil() {
			defs := []ir.Definition{def(name, ir.KindMacro)}
			defs = append(defs, macroMatcherVariables(n)...)
			return defs
		}
	case "use_declaration":
		return importBindings(n)
	case "field_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindProperty)}
		}
	case "function_signature_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindMethod)}
		}
	}
	return nil
}

// isMethodContext reports whether n (a function_item) sits directly in an
// impl or trait block's body, so it's classified as a Method rather than a
// bare Function (spec §4.G method resolution keys off this distinction).
func isMethodContext(n cst.Node) bool {
	parent := n.Parent()
	if parent.Kind() == "declaration_list" {
		parent = parent.Parent()
	}
	return parent.Kind() == "impl_item" || parent.Kind() == "trait_item"
}

// TypeTarget implements the Rust half of the resolver's member/impl/trait
// lookup (spec §4.G): an impl block's target type, or a trait's own name.
func (e *Extractor) TypeTarget(n cst.Node) (string, bool) {
	switch n.Kind() {
	case "impl_item":
		if typeNode := n.ChildByField("type"); !typeNode.IsNil() {
			return typeName(typeNode), true
		}
	case "trait_item":
		if name := n.ChildByField("name"); !name.IsNil() {
			return ir.NormalizeName(name.Text()), true
		}
	}
	return "", false
}

// typeName strips generics and reference markers down to a type node's bare
// name, e.g. "&mut Calculator<T>" -> "Calculator".
func typeName(n cst.Node) string {
	switch n.Kind() {
	case "generic_type":
		if base := n.ChildByField("type"); !base.IsNil() {
			return typeName(base)
		}
	case "reference_type":
		if inner := n.ChildByField("type"); !inner.IsNil() {
			return typeName(inner)
		}
	case "scoped_type_identifier":
		if name := n.ChildByField("name"); !name.IsNil() {
			return name.Text()
		}
	}
	return ir.NormalizeName(n.Text())
}

// inferTypeHint reads a best-effort type name off a let binding: its
// explicit type annotation if present, else a struct-literal or
// associated-function-call initializer (`let c = Calculator::new()` ->
// "Calculator"). Never real type inference (spec §1 non-goal) — purely
// syntactic, and only attempted for single bare-identifier bindings.
func inferTypeHint(letDecl cst.Node) string {
	if typeNode := letDecl.ChildByField("type"); !typeNode.IsNil() {
		return typeName(typeNode)
	}
	value := letDecl.ChildByField("value")
	if value.IsNil() {
		return ""
	}
	switch value.Kind() {
	case "struct_expression":
		if name := value.ChildByField("name"); !name.IsNil() {
			n, _ := lastSegment(name)
			return n
		}
	case "call_expression":
		fn := value.ChildByField("function")
		if !fn.IsNil() && fn.Kind() == "scoped_identifier" {
			_, qualifier := lastSegment(fn)
			if len(qualifier) > 0 {
				return qualifier[len(qualifier)-1]
			}
		}
	}
	return ""
}

// Usages implements spec §4.D's Rust rule table.
func (e *Extractor) Usages(n cst.Node) []ir.Usage {
	switch n.Kind() {
	case "call_expression":
		fn := n.ChildByField("function")
		if fn.IsNil() {
			return nil
		}
		name, qualifier := lastSegment(fn)
		if name == "" {
			return nil
		}
		return []ir.Usage{{Name: name, Kind: ir.CallExpression, Position: fn.Position(), Qualifier: qualifier}}
	case "field_expression":
		field := n.ChildByField("field")
		if field.IsNil() {
			return nil
		}
		base := n.ChildByField("value")
		var qualifier []string
		if !base.IsNil() {
			qualifier = []string{base.Text()}
		}
		return []ir.Usage{{Name: field.Text(), Kind: ir.FieldExpression, Position: field.Position(), Qualifier: qualifier}}
	case "struct_expression":
		typeNode := n.ChildByField("name")
		if typeNode.IsNil() {
			return nil
		}
		name, qualifier := lastSegment(typeNode)
		return []ir.Usage{{Name: name, Kind: ir.StructExpression, Position: typeNode.Position(), Qualifier: qualifier}}
	case "type_identifier":
		if isDefinitionNamingSite(n) {
			return nil
		}
		return []ir.Usage{{Name: n.Text(), Kind: ir.TypeIdentifier, Position: n.Position()}}
	case "metavariable":
		if e.IsDefinitionSite(n) {
			return nil
		}
		return []ir.Usage{{Name: n.Text(), Kind: ir.Metavariable, Position: n.Position()}}
	case "identifier":
		if e.IsDefinitionSite(n) || isPartOfHandledParent(n) {
			return nil
		}
		return []ir.Usage{{Name: n.Text(), Kind: ir.Identifier, Position: n.Position()}}
	case "scoped_identifier":
		name, qualifier := lastSegment(n)
		if name == "" {
			return nil
		}
		return []ir.Usage{{Name: name, Kind: ir.Identifier, Position: n.Position(), Qualifier: qualifier}}
	case "macro_invocation":
		macroNode := n.ChildByField("macro")
		if macroNode.IsNil() {
			return nil
		}
		return []ir.Usage{{Name: macroNode.Text(), Kind: ir.CallExpression, Position: macroNode.Position()}}
	}
	return nil
}

// IsDefinitionSite reports whether n is itself a naming node consumed above
// as part of a definition, so the generic identifier fallback skips it.
func (e *Extractor) IsDefinitionSite(n cst.Node) bool {
	return isDefinitionNamingSite(n)
}

// def builds a Definition, deriving Hoistable from the kind's own rule
// (spec §3) rather than a literal the caller could get out of sync with
// ir.DefinitionKind.Hoistable's table. Rust has no `var`-style kind-independent
// hoisting exception, so isVar is always false here.
func def(name cst.Node, kind ir.DefinitionKind) ir.Definition {
	return ir.Definition{
		Name:      ir.NormalizeName(name.Text()),
		Position:  name.Position(),
		Kind:      kind,
		Hoistable: kind.Hoistable(false),
	}
}

// patternBindings recursively extracts identifier bindings from a let
// pattern: bare identifiers, tuple/struct destructuring, references, and
// `mut` bindings, one Variable definition per bound name. visibleFrom is the
// end of the enclosing let_declaration, the point spec §3 says a
// non-hoistable binding first becomes visible.
func patternBindings(pattern cst.Node, visibleFrom ir.Position) []ir.Definition {
	var out []ir.Definition
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		switch n.Kind() {
		case "identifier":
			d := def(n, ir.KindVariable)
			d.VisibleFrom = visibleFrom
			out = append(out, d)
		case "mut_pattern", "ref_pattern", "reference_pattern":
			for i := 0; i < n.NamedChildCount(); i++ {
				walk(n.NamedChild(i))
			}
		default:
			for i := 0; i < n.NamedChildCount(); i++ {
				walk(n.NamedChild(i))
			}
		}
	}
	walk(pattern)
	return out
}

// macroMatcherVariables collects $name metavariable definitions from the
// matcher (left-hand) side of each macro_rule in a macro_definition.
func macroMatcherVariables(macroDef cst.Node) []ir.Definition {
	var out []ir.Definition
	for i := 0; i < macroDef.NamedChildCount(); i++ {
		rule := macroDef.NamedChild(i)
		if rule.Kind() != "macro_rule" {
			continue
		}
		matcher := rule.ChildByField("left")
		if matcher.IsNil() {
			matcher = rule.NamedChild(0)
		}
		if matcher.IsNil() {
			continue
		}
		collectMetavariables(matcher, &out)
	}
	return out
}

func collectMetavariables(n cst.Node, out *[]ir.Definition) {
	if n.Kind() == "metavariable" {
		*out = append(*out, def(n, ir.KindMacroVariable))
		return
	}
	for i := 0; i < n.NamedChildCount(); i++ {
		collectMetavariables(n.NamedChild(i), out)
	}
}

// importBindings handles use_declaration: simple paths, renames via `as`,
// grouped use lists, and glob imports. A glob yields a single "*" proxy
// Import definition; it is not expanded into the names it brings in, so
// those names only reach the resolver through its last-resort fallback to
// the proxy.
func importBindings(useDecl cst.Node) []ir.Definition {
	arg := useDecl.ChildByField("argument")
	if arg.IsNil() {
		// fall back: first named child after the `use` keyword token
		for i := 0; i < useDecl.NamedChildCount(); i++ {
			arg = useDecl.NamedChild(i)
			break
		}
	}
	if arg.IsNil() {
		return nil
	}
	var out []ir.Definition
	collectUseBindings(arg, &out)
	return out
}

func collectUseBindings(n cst.Node, out *[]ir.Definition) {
	switch n.Kind() {
	case "use_as_clause":
		alias := n.ChildByField("alias")
		if !alias.IsNil() {
			d := def(alias, ir.KindImport)
			// Record the real path behind the alias so a later `X::Y`
			// usage can be rewritten back to `foo::bar::Y` (spec §4.G's
			// import pre-pass).
			if path := n.ChildByField("path"); !path.IsNil() {
				d.TypeHint = joinPath(splitPath(path))
			}
			*out = append(*out, d)
		}
	case "use_list":
		for i := 0; i < n.NamedChildCount(); i++ {
			collectUseBindings(n.NamedChild(i), out)
		}
	case "scoped_use_list":
		list := n.ChildByField("list")
		if !list.IsNil() {
			collectUseBindings(list, out)
		} else {
			for i := 0; i < n.NamedChildCount(); i++ {
				collectUseBindings(n.NamedChild(i), out)
			}
		}
	case "use_wildcard":
		// A glob import introduces no single nameable binding, but the
		// resolver needs a local proxy to fall an otherwise-unresolved
		// usage back to, so it doesn't silently disappear. The proxy's
		// position is the glob's own path prefix, e.g.
		// `use std::collections::*;` proxies as "*" with TypeHint
		// "std::collections".
		path := n.NamedChild(0)
		proxy := ir.Definition{
			Name:      "*",
			Kind:      ir.KindImport,
			Hoistable: ir.KindImport.Hoistable(false),
		}
		if !path.IsNil() {
			proxy.Position = path.Position()
			proxy.TypeHint = joinPath(splitPath(path))
		} else {
			proxy.Position = n.Position()
		}
		*out = append(*out, proxy)
	case "identifier":
		*out = append(*out, def(n, ir.KindImport))
	case "scoped_identifier":
		_, lastNode := lastIdentifierNode(n)
		if !lastNode.IsNil() {
			*out = append(*out, def(lastNode, ir.KindImport))
		}
	default:
		for i := 0; i < n.NamedChildCount(); i++ {
			collectUseBindings(n.NamedChild(i), out)
		}
	}
}

func joinPath(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "::"
		}
		out += s
	}
	return out
}

// lastSegment splits a (possibly qualified) path/expression node into its
// final segment name and the preceding segments as a qualifier.
func lastSegment(n cst.Node) (string, []string) {
	switch n.Kind() {
	case "scoped_identifier", "scoped_type_identifier":
		path := n.ChildByField("path")
		name := n.ChildByField("name")
		if name.IsNil() {
			name = n.NamedChild(n.NamedChildCount() - 1)
		}
		var qualifier []string
		if !path.IsNil() {
			qualifier = append(qualifier, splitPath(path)...)
		}
		return name.Text(), qualifier
	case "field_expression":
		field := n.ChildByField("field")
		base := n.ChildByField("value")
		var qualifier []string
		if !base.IsNil() {
			qualifier = []string{base.Text()}
		}
		return field.Text(), qualifier
	default:
		return n.Text(), nil
	}
}

func splitPath(n cst.Node) []string {
	switch n.Kind() {
	case "scoped_identifier":
		path := n.ChildByField("path")
		name := n.ChildByField("name")
		var out []string
		if !path.IsNil() {
			out = append(out, splitPath(path)...)
		}
		if !name.IsNil() {
			out = append(out, name.Text())
		}
		return out
	default:
		return []string{n.Text()}
	}
}

func lastIdentifierNode(n cst.Node) (string, cst.Node) {
	if n.Kind() == "identifier" {
		return n.Text(), n
	}
	name := n.ChildByField("name")
	if !name.IsNil() {
		return name.Text(), name
	}
	return "", cst.Node{}
}

// isDefinitionNamingSite reports whether n is the naming child of a node
// handled by Definitions above, so the generic identifier/type_identifier
// usage fallback doesn't also record it as a usage.
func isDefinitionNamingSite(n cst.Node) bool {
	parent := n.Parent()
	if parent.IsNil() {
		return false
	}
	switch parent.Kind() {
	case "function_item", "struct_item", "enum_item", "type_item", "mod_item",
		"const_item", "static_item", "macro_definition", "field_declaration",
		"function_signature_item":
		return sameNode(parent.ChildByField("name"), n)
	case "use_as_clause":
		return sameNode(parent.ChildByField("alias"), n)
	case "let_declaration":
		return sameNode(parent.ChildByField("pattern"), n) || isWithin(parent.ChildByField("pattern"), n)
	}
	return false
}

func isPartOfHandledParent(n cst.Node) bool {
	parent := n.Parent()
	if parent.IsNil() {
		return false
	}
	switch parent.Kind() {
	case "field_expression":
		return sameNode(parent.ChildByField("field"), n)
	case "call_expression":
		return sameNode(parent.ChildByField("function"), n) && parent.ChildByField("function").Kind() == "identifier"
	case "struct_expression":
		return sameNode(parent.ChildByField("name"), n)
	case "use_declaration", "use_list", "use_as_clause", "scoped_use_list", "use_wildcard":
		return true
	}
	return false
}

func sameNode(a, b cst.Node) bool {
	if a.IsNil() || b.IsNil() {
		return false
	}
	return a.Position() == b.Position() && a.Kind() == b.Kind()
}

func isWithin(container, n cst.Node) bool {
	if container.IsNil() {
		return false
	}
	return container.Position().Contains(n.Position())
}
