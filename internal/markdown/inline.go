package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type inlineMathParser struct{}

var defaultInlineMathParser = &inlineMathParser{}

// NewInlineMathParser returns an InlineParser for `$...$` and `$$...$$` on a
// single line.
func NewInlineMathParser() parser.InlineParser {
	return defaultInlineMathParser
}

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *inlineMathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()

	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	if opener > 2 {
		return nil
	}

	body := line[opener:]
	if len(body) == 0 || (opener == 1 && isMathSpace(body[0])) {
		return nil
	}

	end := closingDelimiter(body, opener)
	if end <= 0 {
		return nil
	}
	value := body[:end]

	if opener == 1 {
		// "$5 and $6" is currency, not math.
		if isMathSpace(value[len(value)-1]) {
			return nil
		}
		if after := end + opener; after < len(body) && isDigit(body[after]) {
			return nil
		}
	}

	block.Advance(opener + end + opener)
	return NewInlineMath(value, opener == 2)
}

// closingDelimiter returns the offset of the first unescaped run of exactly n
// dollar signs in body, or -1 when the line ends first.
func closingDelimiter(body []byte, n int) int {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '\n', '\r':
			return -1
		case '$':
			start := i
			for i < len(body) && body[i] == '$' {
				i++
			}
			if i-start == n {
				return start
			}
			i--
		}
	}
	return -1
}

func isMathSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
