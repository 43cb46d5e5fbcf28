package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type mathBlockParser struct{}

var defaultMathBlockParser = &mathBlockParser{}

var mathBlockInfoKey = parser.NewContextKey()

type mathFence struct {
	indent int
	node   ast.Node
}

// NewMathBlockParser returns a BlockParser for display math fenced by lines
// holding only `$$`.
func NewMathBlockParser() parser.BlockParser {
	return defaultMathBlockParser
}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !isFenceLine(line[pos:]) {
		return nil, parser.NoChildren
	}

	node := NewMathBlock()
	pc.Set(mathBlockInfoKey, &mathFence{indent: pos, node: node})
	reader.AdvanceToEOL()
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	fence := pc.Get(mathBlockInfoKey).(*mathFence)

	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 && isFenceLine(line[pos:]) {
		reader.AdvanceToEOL()
		return parser.Close
	}

	pos, padding := util.IndentPositionPadding(line, reader.LineOffset(), segment.Padding, fence.indent)
	if pos < 0 {
		pos = max(0, util.FirstNonSpacePosition(line)) - segment.Padding
		padding = 0
	}
	seg := text.NewSegmentPadding(segment.Start+pos, segment.Stop, padding)
	seg.ForceNewline = true
	node.Lines().Append(seg)
	reader.AdvanceAndSetPadding(segment.Stop-segment.Start-pos-1, padding)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, _ text.Reader, pc parser.Context) {
	if fence, ok := pc.Get(mathBlockInfoKey).(*mathFence); ok && fence.node == node {
		pc.Set(mathBlockInfoKey, nil)
	}
}

func (b *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

func isFenceLine(line []byte) bool {
	return len(line) >= 2 && line[0] == '$' && line[1] == '$' && util.IsBlank(line[2:])
}
