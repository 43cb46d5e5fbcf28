// Package extractor finds diagram fragments in a parsed Markdown document.
package extractor

import (
	"bytes"
	"iter"
	"regexp"
	"slices"

	"github.com/yuin/goldmark/ast"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/markdown"
)

// Extractor classifies document nodes into diagram fragments.
type Extractor struct {
	languages     []string
	mathLanguages []string
	macro         *regexp.Regexp
}

// New creates an Extractor from the markdown section of the configuration.
// Empty values fall back to the defaults.
func New(cfg *domain.Config) *Extractor {
	e := &Extractor{
		languages:     []string{domain.DefaultLanguage},
		mathLanguages: []string{domain.DefaultMathLanguage},
		macro:         regexp.MustCompile(domain.DefaultMacroPattern),
	}
	if cfg == nil {
		return e
	}
	if len(cfg.Languages) > 0 {
		e.languages = cfg.Languages
	}
	if cfg.MathLanguages != nil {
		e.mathLanguages = cfg.MathLanguages
	}
	if cfg.MacroPattern != nil {
		e.macro = cfg.MacroPattern
	}
	return e
}

// Extract walks doc once and yields every fragment in document order.
// The walk stops as soon as the consumer stops ranging.
func (e *Extractor) Extract(doc ast.Node, source []byte) iter.Seq[domain.Fragment] {
	return func(yield func(domain.Fragment) bool) {
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			f, ok := e.classify(n, source)
			if !ok {
				return ast.WalkContinue, nil
			}
			if !yield(f) {
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		})
	}
}

func (e *Extractor) classify(n ast.Node, source []byte) (domain.Fragment, bool) {
	var (
		kind domain.Kind
		src  []byte
	)

	switch node := n.(type) {
	case *ast.FencedCodeBlock:
		lang := string(node.Language(source))
		switch {
		case slices.Contains(e.languages, lang):
			kind, src = domain.KindBlock, blockBody(node, source)
		case slices.Contains(e.mathLanguages, lang):
			body := bytes.TrimSpace(blockBody(node, source))
			if !e.macro.Match(body) {
				return domain.Fragment{}, false
			}
			kind, src = domain.KindDisplay, body
		default:
			return domain.Fragment{}, false
		}
	case *markdown.MathBlock:
		body := node.Content(source)
		if !e.macro.Match(body) {
			return domain.Fragment{}, false
		}
		kind, src = domain.KindDisplay, body
	case *markdown.InlineMath:
		if !e.macro.Match(node.Value) {
			return domain.Fragment{}, false
		}
		kind, src = domain.KindInline, node.Value
		if node.Display {
			kind = domain.KindDisplay
		}
	default:
		return domain.Fragment{}, false
	}

	return domain.Fragment{
		Kind:   kind,
		Source: string(src),
		Parent: n.Parent(),
		Node:   n,
		Index:  childIndex(n),
	}, true
}

func blockBody(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}

func childIndex(n ast.Node) int {
	i := 0
	for s := n.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		i++
	}
	return i
}
