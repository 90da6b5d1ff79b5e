package resolve

import (
	"testing"

	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/scope"
)

func pos(line, col int) ir.Position {
	return ir.Position{StartLine: line, StartColumn: col, EndLine: line, EndColumn: col + 1}
}

func TestResolveEmitsEdgeForSimpleUsage(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 20})
	root := tree.Root()

	defs := []ir.Definition{
		{ID: 0, Name: "helper", Kind: ir.KindFunction, Position: pos(1, 0), ScopeID: root, Hoistable: true},
	}
	usages := []ir.Usage{
		{Name: "helper", Kind: ir.CallExpression, Position: pos(5, 4), ScopeID: root},
	}

	deps, warnings := Resolve(tree, defs, usages)
	if len(warnings) != 0 {
		t.Fatalf("did not expect shadowing warnings, got %v", warnings)
	}
	if len(deps) != 1 {
		t.Fatalf("expected exactly one dependency edge, got %d", len(deps))
	}
	d := deps[0]
	if d.SourceLine != 5 || d.TargetLine != 1 || d.Symbol != "helper" || d.DependencyType != ir.FunctionCall {
		t.Fatalf("unexpected dependency edge: %+v", d)
	}
}

func TestResolveDropsSelfEdge(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 5})
	root := tree.Root()

	defs := []ir.Definition{
		{ID: 0, Name: "x", Kind: ir.KindVariable, Position: pos(2, 0), ScopeID: root, Hoistable: false},
	}
	usages := []ir.Usage{
		{Name: "x", Kind: ir.Identifier, Position: pos(2, 8), ScopeID: root},
	}

	deps, _ := Resolve(tree, defs, usages)
	if len(deps) != 0 {
		t.Fatalf("expected a same-line self-reference to be dropped, got %+v", deps)
	}
}

func TestResolveSkipsUnresolvedUsage(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 5})
	usages := []ir.Usage{
		{Name: "undeclared", Kind: ir.Identifier, Position: pos(1, 0), ScopeID: tree.Root()},
	}

	deps, warnings := Resolve(tree, nil, usages)
	if len(deps) != 0 || len(warnings) != 0 {
		t.Fatalf("expected no edges or warnings for an unresolved usage, got deps=%v warnings=%v", deps, warnings)
	}
}

func TestResolveResolvesMethodCallThroughImplBlock(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 20})
	root := tree.Root()
	implScope := tree.CreateChild(root, ir.ScopeImpl, pos(3, 0), pos(5, 1))
	tree.SetTypeTarget(implScope, "Calculator")

	defs := []ir.Definition{
		{ID: 0, Name: "calc", Kind: ir.KindVariable, Position: pos(8, 4), ScopeID: root, Hoistable: false, TypeHint: "Calculator"},
		{ID: 1, Name: "add", Kind: ir.KindMethod, Position: pos(4, 4), ScopeID: implScope, Hoistable: false},
	}
	tree.AddDefinition(implScope, 1)
	usages := []ir.Usage{
		{Name: "add", Kind: ir.CallExpression, Position: pos(9, 9), ScopeID: root, Qualifier: []string{"calc"}},
	}

	deps, _ := Resolve(tree, defs, usages)
	if len(deps) != 1 {
		t.Fatalf("expected exactly one dependency edge, got %d", len(deps))
	}
	if d := deps[0]; d.TargetLine != 4 || d.DependencyType != ir.FunctionCall {
		t.Fatalf("unexpected dependency edge: %+v", d)
	}
}

func TestResolveFallsBackToGlobImportProxy(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 10})
	root := tree.Root()

	defs := []ir.Definition{
		{ID: 0, Name: "*", Kind: ir.KindImport, Position: pos(1, 0), ScopeID: root, Hoistable: true},
	}
	usages := []ir.Usage{
		{Name: "helper", Kind: ir.CallExpression, Position: pos(5, 0), ScopeID: root},
	}

	deps, _ := Resolve(tree, defs, usages)
	if len(deps) != 1 {
		t.Fatalf("expected the unresolved call to fall back to the glob-import proxy, got %d edges", len(deps))
	}
	if d := deps[0]; d.TargetLine != 1 || d.DependencyType != ir.ModuleReference {
		t.Fatalf("unexpected dependency edge: %+v", d)
	}
}

func TestResolveWarnsOnSameScopeShadowing(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 10})
	root := tree.Root()

	defs := []ir.Definition{
		{ID: 0, Name: "x", Kind: ir.KindVariable, Position: pos(1, 0), ScopeID: root},
		{ID: 1, Name: "x", Kind: ir.KindVariable, Position: pos(2, 0), ScopeID: root},
	}
	usages := []ir.Usage{
		{Name: "x", Kind: ir.Identifier, Position: pos(4, 0), ScopeID: root},
	}

	deps, warnings := Resolve(tree, defs, usages)
	if len(deps) != 1 || deps[0].TargetLine != 2 {
		t.Fatalf("expected the edge to target the latest redeclaration, got %+v", deps)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one shadowing warning, got %d", len(warnings))
	}
}
