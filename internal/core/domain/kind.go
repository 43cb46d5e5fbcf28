// Package domain contains the core types of the diagram pipeline.
package domain

import "github.com/yuin/goldmark/ast"

// Kind tells how a fragment's source has to be wrapped before compilation.
type Kind uint8

const (
	// KindBlock is a self-contained diagram taken from a fenced code block.
	KindBlock Kind = iota
	// KindInline is a diagram embedded in inline math.
	KindInline
	// KindDisplay is a diagram embedded in display math.
	KindDisplay
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindInline:
		return "inline"
	case KindDisplay:
		return "display"
	default:
		return "unknown"
	}
}

// Fragment is a span of document source recognized as diagram content.
//
// Parent and Node locate the fragment in the document tree. Index is the
// position of Node among Parent's children at the time it was discovered.
type Fragment struct {
	Kind   Kind
	Source string
	Parent ast.Node
	Node   ast.Node
	Index  int
}
