package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// HTMLRenderer renders math nodes that were not turned into diagrams, and the
// diagram failure placeholders.
type HTMLRenderer struct{}

// NewHTMLRenderer returns a new HTMLRenderer.
func NewHTMLRenderer() renderer.NodeRenderer {
	return &HTMLRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMath, r.renderInlineMath)
	reg.Register(KindMathBlock, r.renderMathBlock)
	reg.Register(KindDiagramError, r.renderDiagramError)
	reg.Register(KindDiagramErrorSpan, r.renderDiagramErrorSpan)
}

func (r *HTMLRenderer) renderInlineMath(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*InlineMath)
	if n.Display {
		_, _ = w.WriteString(`<span class="math math-display">`)
	} else {
		_, _ = w.WriteString(`<span class="math math-inline">`)
	}
	_, _ = w.Write(util.EscapeHTML(n.Value))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

func (r *HTMLRenderer) renderMathBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathBlock)
	_, _ = w.WriteString(`<div class="math math-display">`)
	_, _ = w.Write(util.EscapeHTML(n.Content(source)))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *HTMLRenderer) renderDiagramError(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*DiagramError)
	_, _ = w.WriteString(`<div class="qworld-error" data-kind="`)
	writeEscaped(w, n.FailureKind)
	_, _ = w.WriteString(`" data-fingerprint="`)
	writeEscaped(w, n.Fingerprint)
	_, _ = w.WriteString("\">\n<p>QWorld diagram failed: ")
	writeEscaped(w, n.FailureKind)
	_, _ = w.WriteString("</p>\n<pre><code>")
	writeEscaped(w, n.Source)
	_, _ = w.WriteString("</code></pre>\n")
	if n.Log != "" {
		_, _ = w.WriteString(`<pre class="qworld-log">`)
		writeEscaped(w, n.Log)
		_, _ = w.WriteString("</pre>\n")
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *HTMLRenderer) renderDiagramErrorSpan(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*DiagramErrorSpan)
	_, _ = w.WriteString(`<span class="qworld-error" data-kind="`)
	writeEscaped(w, n.FailureKind)
	_, _ = w.WriteString(`" title="`)
	writeEscaped(w, n.FailureKind+" "+n.Fingerprint)
	_, _ = w.WriteString(`"><code>`)
	writeEscaped(w, n.Source)
	_, _ = w.WriteString("</code>")
	if n.Log != "" {
		_, _ = w.WriteString(`<code class="qworld-log">`)
		writeEscaped(w, n.Log)
		_, _ = w.WriteString("</code>")
	}
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

func writeEscaped(w util.BufWriter, s string) {
	_, _ = w.Write(util.EscapeHTML([]byte(s)))
}
