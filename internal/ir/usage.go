package ir

// UsageKind tags the syntactic shape of a usage site.
type UsageKind string

const (
	Identifier       UsageKind = "Identifier"
	TypeIdentifier   UsageKind = "TypeIdentifier"
	CallExpression   UsageKind = "CallExpression"
	FieldExpression  UsageKind = "FieldExpression"
	StructExpression UsageKind = "StructExpression"
	Metavariable     UsageKind = "Metavariable"
)

// Usage is a textual reference to a symbol that may resolve to a Definition.
type Usage struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     UsageKind `json:"kind" yaml:"kind"`
	Position Position  `json:"position" yaml:"position"`

	// ScopeID is the innermost scope this usage is lexically contained in
	// (spec §3 invariant: exactly one). Internal only, dropped from the IR.
	ScopeID int `json:"-" yaml:"-"`

	// Qualifier, when non-empty, holds the segments of a qualified path or
	// member access preceding the final name (e.g. ["my_module"] for
	// my_module::MyStruct, or the object identifier for obj.m). Populated
	// by the per-language usage extractor, consumed by the resolver.
	Qualifier []string `json:"-" yaml:"-"`
}

// DependencyTypeFor maps a usage kind to its dependency type per spec §4.G
// step 1.
func DependencyTypeFor(kind UsageKind) DependencyType {
	switch kind {
	case Identifier:
		return VariableUse
	case TypeIdentifier:
		return TypeReference
	case CallExpression:
		return FunctionCall
	case FieldExpression:
		return StructFieldAccess
	case StructExpression:
		return TypeReference
	case Metavariable:
		return MacroVariableDep
	default:
		return VariableUse
	}
}
