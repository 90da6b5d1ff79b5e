package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsrust "github.com/smacker/go-tree-sitter/rust"
)

func rustGrammar() *sitter.Language {
	return tsrust.GetLanguage()
}
