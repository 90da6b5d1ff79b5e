// Package typescript implements the shared TypeScript/TSX Definition/Usage
// Extractor (spec §4.C, §4.D) against the tree-sitter-typescript grammar. TSX
// differs only in its handling of JSX element tags as component references.
package typescript

import (
	"strings"

	"github.com/symtrace/lintric/internal/cst"
	"github.com/symtrace/lintric/internal/ir"
)

// Extractor implements extract.Extractor for TypeScript and TSX.
type Extractor struct {
	// TSX enables JSX tag handling. The grammar is otherwise identical.
	TSX bool
}

// New returns a plain TypeScript extractor.
func New() *Extractor { return &Extractor{} }

// NewTSX returns an extractor with JSX component-tag handling enabled.
func NewTSX() *Extractor { return &Extractor{TSX: true} }

// OpensScope implements the TypeScript/TSX half of spec §4.E's scope-opening
// table.
func (e *Extractor) OpensScope(n cst.Node) (ir.ScopeKind, bool) {
	switch n.Kind() {
	case "program":
		return ir.ScopeGlobal, true
	case "class_declaration", "class":
		return ir.ScopeClass, true
	case "interface_declaration":
		return ir.ScopeClass, true
	case "function_declaration", "generator_function_declaration",
		"method_definition", "arrow_function", "function_expression":
		return ir.ScopeFunc, true
	case "statement_block":
		return ir.ScopeBlock, true
	case "for_statement", "for_in_statement", "while_statement", "do_statement":
		return ir.ScopeLoop, true
	default:
		return "", false
	}
}

// Definitions implements spec §4.C's TypeScript/TSX rule table.
func (e *Extractor) Definitions(n cst.Node) []ir.Definition {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindFunction, false)}
		}
	case "class_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindClass, false)}
		}
	case "interface_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindInterface, false)}
		}
	case "type_alias_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindType, false)}
		}
	case "enum_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindEnum, false)}
		}
	case "variable_declarator":
		nameNode := n.ChildByField("name")
		if nameNode.IsNil() {
			return nil
		}
		isVar := declarationKeyword(n) == "var"
		defs := bindingNames(nameNode, isVar)
		if !isVar {
			// let/const become visible only from the end of their own
			// declarator's statement onward (spec §3); var keeps its
			// function-wide hoisted visibility.
			visibleFrom := declaringStatement(n).Position().End()
			for i := range defs {
				defs[i].VisibleFrom = visibleFrom
			}
		}
		if len(defs) == 1 && nameNode.Kind() == "identifier" {
			if hint := inferTypeHint(n); hint != "" {
				defs[0].TypeHint = hint
			}
		}
		return defs
	case "method_definition":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindMethod, false)}
		}
	case "public_field_definition":
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindProperty, false)}
		}
	case "import_specifier":
		if alias := n.ChildByField("alias"); !alias.IsNil() {
			return []ir.Definition{def(alias, ir.KindImport, false)}
		}
		if name := n.ChildByField("name"); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindImport, false)}
		}
	case "namespace_import":
		if name := lastNamedChild(n); !name.IsNil() {
			return []ir.Definition{def(name, ir.KindImport, false)}
		}
	case "import_clause":
		// default import: `import Foo from "..."` — the bare identifier
		// child (not wrapped in named_imports/namespace_import).
		for i := 0; i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child.Kind() == "identifier" {
				return []ir.Definition{def(child, ir.KindImport, false)}
			}
		}
	}
	return nil
}

// TypeTarget implements the TypeScript/TSX half of the resolver's
// member/impl/trait lookup (spec §4.G): a class or interface declaration's
// own name, the scope its members resolve against.
func (e *Extractor) TypeTarget(n cst.Node) (string, bool) {
	switch n.Kind() {
	case "class_declaration", "interface_declaration":
		if name := n.ChildByField("name"); !name.IsNil() {
			return ir.NormalizeName(name.Text()), true
		}
	}
	return "", false
}

// declaringStatement walks up from a variable_declarator to the enclosing
// variable_declaration/lexical_declaration statement, whose end marks where
// every declarator it contains becomes visible (spec §3).
func declaringStatement(declarator cst.Node) cst.Node {
	parent := declarator.Parent()
	switch parent.Kind() {
	case "variable_declaration", "lexical_declaration":
		return parent
	}
	return declarator
}

// inferTypeHint reads a best-effort type name off a variable declarator: its
// explicit type annotation if present, else a `new Foo()` constructor-call
// initializer. Purely syntactic, never real type inference (spec §1
// non-goal), and only attempted for single bare-identifier bindings.
func inferTypeHint(declarator cst.Node) string {
	if typeNode := declarator.ChildByField("type"); !typeNode.IsNil() {
		return typeAnnotationName(typeNode)
	}
	value := declarator.ChildByField("value")
	if value.IsNil() || value.Kind() != "new_expression" {
		return ""
	}
	ctor := value.ChildByField("constructor")
	if ctor.IsNil() {
		return ""
	}
	name, _ := lastSegment(ctor)
	return name
}

// typeAnnotationName strips a `: Foo<T> | null`-style annotation node down to
// its leading type name.
func typeAnnotationName(n cst.Node) string {
	if n.Kind() == "type_annotation" {
		if inner := lastNamedChild(n); !inner.IsNil() {
			return typeAnnotationName(inner)
		}
		return ""
	}
	switch n.Kind() {
	case "generic_type":
		if base := n.ChildByField("name"); !base.IsNil() {
			return base.Text()
		}
	case "union_type":
		if first := n.NamedChild(0); !first.IsNil() {
			return typeAnnotationName(first)
		}
	case "type_identifier", "predefined_type":
		return n.Text()
	}
	return n.Text()
}

// Usages implements spec §4.D's TypeScript/TSX rule table.
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
	case "new_expression":
		ctor := n.ChildByField("constructor")
		if ctor.IsNil() {
			return nil
		}
		name, qualifier := lastSegment(ctor)
		return []ir.Usage{{Name: name, Kind: ir.StructExpression, Position: ctor.Position(), Qualifier: qualifier}}
	case "member_expression":
		property := n.ChildByField("property")
		if property.IsNil() {
			return nil
		}
		object := n.ChildByField("object")
		var qualifier []string
		if !object.IsNil() {
			qualifier = []string{object.Text()}
		}
		return []ir.Usage{{Name: property.Text(), Kind: ir.FieldExpression, Position: property.Position(), Qualifier: qualifier}}
	case "type_identifier":
		if isDefinitionNamingSite(n) {
			return nil
		}
		return []ir.Usage{{Name: n.Text(), Kind: ir.TypeIdentifier, Position: n.Position()}}
	case "identifier", "property_identifier":
		if isDefinitionNamingSite(n) || isPartOfHandledParent(n) {
			return nil
		}
		return []ir.Usage{{Name: n.Text(), Kind: ir.Identifier, Position: n.Position()}}
	case "jsx_opening_element", "jsx_self_closing_element":
		if !e.TSX {
			return nil
		}
		nameNode := n.ChildByField("name")
		if nameNode.IsNil() || !isUppercaseLeading(nameNode.Text()) {
			return nil
		}
		return []ir.Usage{{Name: nameNode.Text(), Kind: ir.StructExpression, Position: nameNode.Position()}}
	}
	return nil
}

// IsDefinitionSite reports whether n is itself a naming node consumed above
// as part of a definition.
func (e *Extractor) IsDefinitionSite(n cst.Node) bool {
	return isDefinitionNamingSite(n)
}

// def builds a Definition, deriving Hoistable from the kind's own rule
// (spec §3) rather than a literal the caller could get out of sync with
// ir.DefinitionKind.Hoistable's table. isVar is TypeScript's one
// kind-independent hoisting exception (`var` hoists regardless of kind).
func def(name cst.Node, kind ir.DefinitionKind, isVar bool) ir.Definition {
	return ir.Definition{
		Name:      ir.NormalizeName(name.Text()),
		Position:  name.Position(),
		Kind:      kind,
		Hoistable: kind.Hoistable(isVar),
	}
}

// declarationKeyword walks up from a variable_declarator to the enclosing
// lexical_declaration/variable_declaration and returns its leading keyword
// token text ("var", "let", or "const"); the grammar exposes it as the
// first child token rather than a named field.
func declarationKeyword(declarator cst.Node) string {
	parent := declarator.Parent()
	if parent.IsNil() {
		return ""
	}
	switch parent.Kind() {
	case "variable_declaration", "lexical_declaration":
		first := parent.Child(0)
		return first.Text()
	}
	return ""
}

// bindingNames recursively extracts bound identifiers from a variable
// declarator's name node: bare identifiers, array/object destructuring.
func bindingNames(name cst.Node, isVar bool) []ir.Definition {
	var out []ir.Definition
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		switch n.Kind() {
		case "identifier":
			out = append(out, def(n, ir.KindVariable, isVar))
		case "shorthand_property_identifier_pattern":
			out = append(out, def(n, ir.KindVariable, isVar))
		case "pair_pattern":
			if value := n.ChildByField("value"); !value.IsNil() {
				walk(value)
			}
		default:
			for i := 0; i < n.NamedChildCount(); i++ {
				walk(n.NamedChild(i))
			}
		}
	}
	walk(name)
	return out
}

func lastSegment(n cst.Node) (string, []string) {
	switch n.Kind() {
	case "member_expression":
		property := n.ChildByField("property")
		object := n.ChildByField("object")
		var qualifier []string
		if !object.IsNil() {
			qualifier = []string{object.Text()}
		}
		return property.Text(), qualifier
	default:
		return n.Text(), nil
	}
}

func lastNamedChild(n cst.Node) cst.Node {
	count := n.NamedChildCount()
	if count == 0 {
		return cst.Node{}
	}
	return n.NamedChild(count - 1)
}

// isDefinitionNamingSite reports whether n is the naming child of a node
// handled by Definitions above.
func isDefinitionNamingSite(n cst.Node) bool {
	parent := n.Parent()
	if parent.IsNil() {
		return false
	}
	switch parent.Kind() {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "interface_declaration", "type_alias_declaration",
		"enum_declaration", "method_definition", "public_field_definition":
		return sameNode(parent.ChildByField("name"), n)
	case "variable_declarator":
		nameNode := parent.ChildByField("name")
		return sameNode(nameNode, n) || isWithin(nameNode, n)
	case "import_specifier":
		alias := parent.ChildByField("alias")
		name := parent.ChildByField("name")
		return sameNode(alias, n) || (alias.IsNil() && sameNode(name, n))
	case "namespace_import":
		return sameNode(lastNamedChild(parent), n)
	case "import_clause":
		return n.Kind() == "identifier"
	}
	return false
}

func isPartOfHandledParent(n cst.Node) bool {
	parent := n.Parent()
	if parent.IsNil() {
		return false
	}
	switch parent.Kind() {
	case "member_expression":
		return sameNode(parent.ChildByField("property"), n)
	case "jsx_opening_element", "jsx_self_closing_element", "jsx_closing_element":
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

func isUppercaseLeading(s string) bool {
	if s == "" {
		return false
	}
	r := s[0:1]
	return strings.ToUpper(r) == r && strings.ToLower(r) != r
}
