package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

type mathExtension struct{}

// Math is a goldmark extension adding `$` and `$$` math syntax together with
// renderers for the diagram failure nodes.
var Math = &mathExtension{}

// Extend implements goldmark.Extender.
func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewMathBlockParser(), 701),
		),
		parser.WithInlineParsers(
			util.Prioritized(NewInlineMathParser(), 501),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewHTMLRenderer(), 500),
		),
	)
}
