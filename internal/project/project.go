// Package project locates a source tree's root by walking upward from a
// file looking for an ecosystem marker, the same marker-file strategy the
// teacher's repository detector uses, adapted to this system's two
// ecosystems (spec §5 "per-project batch analysis").
package project

import (
	"os"
	"path/filepath"
)

// Marker names a file whose presence identifies a project root.
type Marker struct {
	File     string
	Ecosystem string
}

// Markers is the ordered list of files checked at each directory level.
// Cargo.toml is checked first so a Rust workspace root wins over an
// incidental package.json (e.g. a docs site) living alongside it.
var Markers = []Marker{
	{File: "Cargo.toml", Ecosystem: "rust"},
	{File: "tsconfig.json", Ecosystem: "typescript"},
	{File: "package.json", Ecosystem: "typescript"},
	{File: ".git", Ecosystem: ""},
}

// Root walks upward from startDir, returning the first directory containing
// one of Markers, its ecosystem tag, and true. If no marker is found before
// reaching the filesystem root, it returns startDir unchanged and false.
func Root(startDir string) (dir string, ecosystem string, ok bool) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		current = startDir
	}
	for {
		for _, m := range Markers {
			if _, err := os.Stat(filepath.Join(current, m.File)); err == nil {
				return current, m.Ecosystem, true
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return startDir, "", false
		}
		current = parent
	}
}
