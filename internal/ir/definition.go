package ir

import "strings"

// DefinitionKind tags the syntactic category of a Definition. Other carries
// a free-form string for grammar nodes that don't fit a known category yet,
// so an unrecognised construct degrades gracefully instead of being dropped
// (grounded on the reference's DefinitionType::Other / DependencyType::Other).
type DefinitionKind string

const (
	KindFunction       DefinitionKind = "Function"
	KindVariable       DefinitionKind = "Variable"
	KindStruct         DefinitionKind = "Struct"
	KindEnum           DefinitionKind = "Enum"
	KindType           DefinitionKind = "Type"
	KindModule         DefinitionKind = "Module"
	KindClass          DefinitionKind = "Class"
	KindInterface      DefinitionKind = "Interface"
	KindConst          DefinitionKind = "Const"
	KindMacro          DefinitionKind = "Macro"
	KindMacroVariable  DefinitionKind = "MacroVariable"
	KindProperty       DefinitionKind = "Property"
	KindMethod         DefinitionKind = "Method"
	KindImport         DefinitionKind = "Import"
)

// OtherKind builds the Other(string) escape-hatch variant.
func OtherKind(label string) DefinitionKind {
	return DefinitionKind("Other(" + label + ")")
}

// Hoistable reports whether definitions of this kind are visible throughout
// their declaring scope regardless of source order (spec §3: "functions,
// structs/enums/types/classes/interfaces/modules/macros in both languages;
// var in TypeScript"). Imports are deliberately absent: spec §3's
// enumeration doesn't list them, and treating an import as non-hoistable is
// harmless since a use/import declaration always precedes its references in
// the same scope in practice. The caller additionally passes whether this
// is a TypeScript `var` binding, the one kind-independent hoisting rule.
func (k DefinitionKind) Hoistable(isVar bool) bool {
	if isVar {
		return true
	}
	switch k {
	case KindFunction, KindStruct, KindEnum, KindType, KindModule, KindClass,
		KindInterface, KindMacro:
		return true
	default:
		return false
	}
}

// Definition is a named symbol introduced by a source construct.
type Definition struct {
	ID       int            `json:"-" yaml:"-"` // index into the owning IR.Definitions slice
	Name     string         `json:"name" yaml:"name"`
	Position Position       `json:"position" yaml:"position"`
	Kind     DefinitionKind `json:"kind" yaml:"kind"`

	// ScopeID is the scope this definition is declared in. Not part of the
	// spec's bare {name, position, kind} triple, but required internally to
	// run the symbol table; it is dropped from the on-disk IR (see report).
	ScopeID int `json:"-" yaml:"-"`
	// Hoistable caches the hoisting rule's outcome for this definition.
	Hoistable bool `json:"-" yaml:"-"`

	// VisibleFrom is the position a non-hoistable definition becomes
	// visible from: the end of its full declaring statement (spec §3:
	// "visible only from the end of their declaration onward"), not the
	// binding identifier's own, earlier start position. The zero value
	// means "same as Position" (the common case for bindings without a
	// separate declaration span). Ignored when Hoistable is true.
	VisibleFrom Position `json:"-" yaml:"-"`

	// TypeHint is a best-effort, purely syntactic type name for a value
	// definition — read off an explicit type annotation, or inferred from
	// a struct-literal/constructor-call initializer — used by the
	// resolver's member/impl lookup (spec §4.G). Never the product of real
	// type inference (spec §1 non-goal); empty when nothing could be read
	// off the syntax.
	TypeHint string `json:"-" yaml:"-"`
}

// NormalizeName trims whitespace and normalizes line endings, per spec §3.
func NormalizeName(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return s
}
