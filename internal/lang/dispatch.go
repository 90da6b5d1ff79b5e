// Package lang implements the Language Dispatch (spec §4.J): selecting the
// matched Extractor and tree-sitter grammar for a Language tag, the single
// place new languages are wired in.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	tssitter "github.com/smacker/go-tree-sitter/typescript/typescript"
	tstsx "github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/symtrace/lintric/internal/extract"
	exrust "github.com/symtrace/lintric/internal/extract/rust"
	extypescript "github.com/symtrace/lintric/internal/extract/typescript"
	"github.com/symtrace/lintric/internal/ir"
)

// Binding is the matched pair a language contributes: the tree-sitter
// grammar used to parse it, and the extractor used to walk it.
type Binding struct {
	Grammar   *sitter.Language
	Extractor extract.Extractor
}

// For returns the Binding for lang, or false if lang isn't registered.
func For(language ir.Language) (Binding, bool) {
	switch language {
	case ir.Rust:
		return Binding{Grammar: rustGrammar(), Extractor: exrust.New()}, true
	case ir.TypeScript:
		return Binding{Grammar: tssitter.GetLanguage(), Extractor: extypescript.New()}, true
	case ir.TSX:
		return Binding{Grammar: tstsx.GetLanguage(), Extractor: extypescript.NewTSX()}, true
	default:
		return Binding{}, false
	}
}
