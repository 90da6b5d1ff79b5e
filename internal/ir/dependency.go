package ir

import "fmt"

// DependencyType classifies a Dependency edge. ModuleReference and the
// Other escape hatch are additions from the reference implementation
// (crates/core/src/models/dependency.rs) layered onto spec §4.G's mapping.
type DependencyType string

const (
	FunctionCall      DependencyType = "FunctionCall"
	VariableUse       DependencyType = "VariableUse"
	ImportDep         DependencyType = "Import"
	StructFieldAccess DependencyType = "StructFieldAccess"
	TypeReference     DependencyType = "TypeReference"
	ModuleReference   DependencyType = "ModuleReference"
	MacroInvocation   DependencyType = "MacroInvocation"
	MacroVariableDep  DependencyType = "MacroVariable"
)

// OtherDependencyType builds the Other(string) escape-hatch variant.
func OtherDependencyType(label string) DependencyType {
	return DependencyType("Other(" + label + ")")
}

// Dependency is a directed edge from a usage site to the definition it
// resolves to.
type Dependency struct {
	SourceLine     int            `json:"source_line" yaml:"sourceLine"`
	TargetLine     int            `json:"target_line" yaml:"targetLine"`
	Symbol         string         `json:"symbol" yaml:"symbol"`
	DependencyType DependencyType `json:"dependency_type" yaml:"dependencyType"`
	Context        string         `json:"context,omitempty" yaml:"context,omitempty"`
}

// NewContext formats the "<kind>:<line>:<col>" locator spec §3/§4.G require.
func NewContext(kind UsageKind, pos Position) string {
	return fmt.Sprintf("%s:%d:%d", kind, pos.StartLine, pos.StartColumn)
}

// ShadowingWarning is an optional diagnostic emitted when two same-scope
// definitions both satisfy a lookup; it never affects edge emission
// (spec §4.G "Shadowing warnings"; reference:
// dependency_resolver/resolution_candidate.rs).
type ShadowingWarning struct {
	Message        string
	ShadowingDef   Definition
	ShadowedDef    Definition
}
