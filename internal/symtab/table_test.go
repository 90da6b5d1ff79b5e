package symtab

import (
	"testing"

	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/scope"
)

func pos(line, col int) ir.Position {
	return ir.Position{StartLine: line, StartColumn: col, EndLine: line, EndColumn: col + 1}
}

func TestLookupPrefersInnerScopeOverOuter(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 100})
	inner := tree.CreateChild(tree.Root(), ir.ScopeBlock, pos(2, 0), pos(8, 0))

	defs := []ir.Definition{
		{Name: "x", Kind: ir.KindVariable, Position: pos(1, 0), ScopeID: tree.Root(), Hoistable: false},
		{Name: "x", Kind: ir.KindVariable, Position: pos(3, 0), ScopeID: inner, Hoistable: false},
	}
	for i := range defs {
		defs[i].ID = i
	}
	table := New(tree, defs)

	best, ok := table.Best("x", inner, pos(5, 0))
	if !ok {
		t.Fatalf("expected a resolution for x")
	}
	if best.Definition.Position != pos(3, 0) {
		t.Fatalf("expected the inner-scope definition to win, got %v", best.Definition.Position)
	}
}

func TestLookupPrefersLatestShadowInSameScope(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 100})
	root := tree.Root()

	defs := []ir.Definition{
		{Name: "x", Kind: ir.KindVariable, Position: pos(1, 0), ScopeID: root},
		{Name: "x", Kind: ir.KindVariable, Position: pos(2, 0), ScopeID: root},
	}
	for i := range defs {
		defs[i].ID = i
	}
	table := New(tree, defs)

	best, ok := table.Best("x", root, pos(3, 0))
	if !ok {
		t.Fatalf("expected a resolution for x")
	}
	if best.Definition.Position != pos(2, 0) {
		t.Fatalf("expected the later redeclaration to win, got %v", best.Definition.Position)
	}
	if best.ShadowingLevel != 0 {
		t.Fatalf("expected the winning (latest) definition to have shadowing level 0, got %d", best.ShadowingLevel)
	}

	candidates := table.Lookup("x", root, pos(3, 0))
	if len(candidates) != 2 {
		t.Fatalf("expected both same-name definitions as candidates, got %d", len(candidates))
	}
	if candidates[1].ShadowingLevel != 1 {
		t.Fatalf("expected the earlier definition to carry shadowing level 1, got %d", candidates[1].ShadowingLevel)
	}
}

func TestLookupSkipsNonHoistableDefinitionUsedBeforeDeclaration(t *testing.T) {
	tree := scope.NewTree(ir.Position{EndLine: 100})
	root := tree.Root()

	defs := []ir.Definition{
		{Name: "x", Kind: ir.KindVariable, Position: pos(5, 0), ScopeID: root, Hoistable: false},
	}
	table := New(tree, defs)

	if _, ok := table.Best("x", root, pos(1, 0)); ok {
		t.Fatalf("did not expect a non-hoistable binding to resolve before its declaration")
	}
	if _, ok := table.Best("x", root, pos(10, 0)); !ok {
		t.Fatalf("expected the binding to resolve after its declaration")
	}
}
