// Package cst provides a uniform view over the external tree-sitter parser's
// nodes, so the rest of the system (scope tree, extractors, resolver) never
// imports github.com/smacker/go-tree-sitter directly. This is the Position &
// Node Adapter component: kind, text, byte/line span, named children.
package cst

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/symtrace/lintric/internal/ir"
)

// Node wraps a tree-sitter node together with the source buffer it was
// parsed from, so text extraction never outlives the buffer it borrows from
// (spec §9 "Borrowed text").
type Node struct {
	n   *sitter.Node
	src []byte
}

// Wrap adapts a tree-sitter node. Returns the zero Node (IsNil() true) for a
// nil input, so callers can chain ChildByField without nil checks.
func Wrap(n *sitter.Node, src []byte) Node {
	return Node{n: n, src: src}
}

// IsNil reports whether this Node wraps no underlying tree-sitter node.
func (n Node) IsNil() bool { return n.n == nil }

// Kind returns the grammar node type, e.g. "function_item".
func (n Node) Kind() string {
	if n.n == nil {
		return ""
	}
	return n.n.Type()
}

// Text extracts the node's UTF-8 source text.
func (n Node) Text() string {
	if n.n == nil {
		return ""
	}
	return n.n.Content(n.src)
}

// Position reports the node's line/column span, 1-indexed lines and
// 0-indexed columns per spec §3.
func (n Node) Position() ir.Position {
	if n.n == nil {
		return ir.Position{}
	}
	start := n.n.StartPoint()
	end := n.n.EndPoint()
	return ir.Position{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column),
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column),
	}
}

// ChildByField returns the named field child, or the nil Node if absent.
func (n Node) ChildByField(field string) Node {
	if n.n == nil {
		return Node{}
	}
	return Wrap(n.n.ChildByFieldName(field), n.src)
}

// Child returns the i'th child (by ordinal, including anonymous tokens).
func (n Node) Child(i int) Node {
	if n.n == nil || i < 0 || i >= int(n.n.ChildCount()) {
		return Node{}
	}
	return Wrap(n.n.Child(i), n.src)
}

// ChildCount returns the number of direct children, named or not.
func (n Node) ChildCount() int {
	if n.n == nil {
		return 0
	}
	return int(n.n.ChildCount())
}

// NamedChild returns the i'th named child.
func (n Node) NamedChild(i int) Node {
	if n.n == nil || i < 0 || i >= int(n.n.NamedChildCount()) {
		return Node{}
	}
	return Wrap(n.n.NamedChild(i), n.src)
}

// NamedChildCount returns the number of named children.
func (n Node) NamedChildCount() int {
	if n.n == nil {
		return 0
	}
	return int(n.n.NamedChildCount())
}

// Children returns all direct children in source order.
func (n Node) Children() []Node {
	count := n.ChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// Parent returns the node's syntactic parent, or the nil Node at the root.
func (n Node) Parent() Node {
	if n.n == nil {
		return Node{}
	}
	return Wrap(n.n.Parent(), n.src)
}

// Source returns the underlying source buffer this node was parsed from.
func (n Node) Source() []byte { return n.src }

// Raw exposes the underlying tree-sitter node for language packages that
// need grammar-specific queries the adapter doesn't generalize.
func (n Node) Raw() *sitter.Node { return n.n }
