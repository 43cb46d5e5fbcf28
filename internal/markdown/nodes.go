// Package markdown extends goldmark with TeX math syntax and the nodes that
// report diagram failures inside a rendered document.
package markdown

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
)

var (
	// KindInlineMath is the NodeKind of InlineMath.
	KindInlineMath = ast.NewNodeKind("InlineMath")
	// KindMathBlock is the NodeKind of MathBlock.
	KindMathBlock = ast.NewNodeKind("MathBlock")
	// KindDiagramError is the NodeKind of DiagramError.
	KindDiagramError = ast.NewNodeKind("DiagramError")
	// KindDiagramErrorSpan is the NodeKind of DiagramErrorSpan.
	KindDiagramErrorSpan = ast.NewNodeKind("DiagramErrorSpan")
)

// InlineMath is `$...$` math, or `$$...$$` math written inside a paragraph.
type InlineMath struct {
	ast.BaseInline

	// Value is the math text between the delimiters.
	Value []byte
	// Display is set for the `$$` delimiter.
	Display bool
}

// NewInlineMath returns a new InlineMath node holding a copy of value.
func NewInlineMath(value []byte, display bool) *InlineMath {
	return &InlineMath{
		Value:   bytes.Clone(value),
		Display: display,
	}
}

// Kind implements ast.Node.
func (n *InlineMath) Kind() ast.NodeKind {
	return KindInlineMath
}

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Value":   string(n.Value),
		"Display": strconv.FormatBool(n.Display),
	}, nil)
}

// MathBlock is a display math block fenced by `$$` lines.
type MathBlock struct {
	ast.BaseBlock
}

// NewMathBlock returns a new, empty MathBlock.
func NewMathBlock() *MathBlock {
	return &MathBlock{}
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind {
	return KindMathBlock
}

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Content returns the block body without surrounding whitespace.
func (n *MathBlock) Content(source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return bytes.TrimSpace(buf.Bytes())
}

// Diagnostic describes a diagram that could not be produced.
type Diagnostic struct {
	// FailureKind is CompileError, MissingArtifact or ConversionError.
	FailureKind string
	Fingerprint string
	Source      string
	// Log is the tail of the toolchain log.
	Log string
}

// DiagramError replaces a block diagram that failed to build.
type DiagramError struct {
	ast.BaseBlock
	Diagnostic
}

// NewDiagramError returns a block-level failure placeholder.
func NewDiagramError(d Diagnostic) *DiagramError {
	return &DiagramError{Diagnostic: d}
}

// Kind implements ast.Node.
func (n *DiagramError) Kind() ast.NodeKind {
	return KindDiagramError
}

// Dump implements ast.Node.
func (n *DiagramError) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, n.Diagnostic.dumpFields(), nil)
}

// DiagramErrorSpan replaces an inline diagram that failed to build.
type DiagramErrorSpan struct {
	ast.BaseInline
	Diagnostic
}

// NewDiagramErrorSpan returns an inline failure placeholder.
func NewDiagramErrorSpan(d Diagnostic) *DiagramErrorSpan {
	return &DiagramErrorSpan{Diagnostic: d}
}

// Kind implements ast.Node.
func (n *DiagramErrorSpan) Kind() ast.NodeKind {
	return KindDiagramErrorSpan
}

// Dump implements ast.Node.
func (n *DiagramErrorSpan) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, n.Diagnostic.dumpFields(), nil)
}

func (d Diagnostic) dumpFields() map[string]string {
	return map[string]string{
		"FailureKind": d.FailureKind,
		"Fingerprint": d.Fingerprint,
		"Source":      d.Source,
	}
}
