package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootFindsNearestCargoToml(t *testing.T) {
	root := t.TempDir()
	must(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[package]\n"), 0o644))

	sub := filepath.Join(root, "src", "inner")
	must(t, os.MkdirAll(sub, 0o755))

	gotRoot, ecosystem, ok := Root(sub)
	if !ok {
		t.Fatalf("expected to find a project root")
	}
	if ecosystem != "rust" {
		t.Fatalf("ecosystem = %q, want rust", ecosystem)
	}
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedGot, _ := filepath.EvalSymlinks(gotRoot)
	if resolvedGot != resolvedRoot {
		t.Fatalf("root = %q, want %q", gotRoot, resolvedRoot)
	}
}

func TestRootReturnsFalseWithNoMarker(t *testing.T) {
	dir := t.TempDir()
	if _, _, ok := Root(dir); ok {
		t.Fatalf("did not expect a marker in an empty temp dir tree")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
