package rewriter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/engine/extractor"
	"go.trai.ch/qworld/internal/engine/rewriter"
	"go.trai.ch/qworld/internal/markdown"
)

func render(t *testing.T, src string, resolve func(i int, f domain.Fragment) domain.Resolution) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(markdown.Math))
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var frags []domain.Fragment
	for f := range extractor.New(nil).Extract(doc, source) {
		frags = append(frags, f)
	}

	rw := rewriter.New()
	for i, f := range frags {
		rw.Apply(f, resolve(i, f))
	}

	var buf bytes.Buffer
	require.NoError(t, md.Renderer().Render(&buf, source, doc))
	return buf.String()
}

func success(fp string) domain.Resolution {
	return domain.Resolution{Entry: domain.CacheEntry{
		Fingerprint: domain.Fingerprint(fp),
		PublicPath:  "/img/qworld-diagrams/" + fp + ".svg",
	}}
}

func TestApply_MixedOutcomes(t *testing.T) {
	t.Parallel()

	src := "```qworld\nA\n```\n\nText $\\q{a}$ end.\n\n$$\n\\q{c}\n$$\n"

	got := render(t, src, func(i int, _ domain.Fragment) domain.Resolution {
		switch i {
		case 0:
			return success("aaaa")
		case 1:
			return success("bbbb")
		default:
			return domain.Resolution{
				Entry: domain.CacheEntry{Fingerprint: "cccc"},
				Failure: &domain.Failure{
					Kind: domain.FailureCompile,
					Log:  "line1\nline2\n",
				},
			}
		}
	})

	want := `<p><img src="/img/qworld-diagrams/aaaa.svg" alt="QWorld Diagram" class="qworld-diagram" style="vertical-align: middle;"></p>
<p>Text <img src="/img/qworld-diagrams/bbbb.svg" alt="QWorld Diagram" class="qworld-diagram" style="vertical-align: middle;"> end.</p>
<div class="qworld-error" data-kind="CompileError" data-fingerprint="cccc">
<p>QWorld diagram failed: CompileError</p>
<pre><code>\q{c}</code></pre>
<pre class="qworld-log">line1
line2</pre>
</div>
`
	assert.Equal(t, want, got)
}

func TestApply_DisplayImage(t *testing.T) {
	t.Parallel()

	got := render(t, "$$\\q{x}$$\n", func(int, domain.Fragment) domain.Resolution {
		return success("dddd")
	})

	assert.Equal(t,
		`<p><img src="/img/qworld-diagrams/dddd.svg" alt="QWorld Diagram" class="qworld-diagram qworld-display" style="vertical-align: middle;"></p>`+"\n",
		got)
}

func TestApply_InlineFailure(t *testing.T) {
	t.Parallel()

	got := render(t, "x $\\q{y}$\n", func(int, domain.Fragment) domain.Resolution {
		return domain.Resolution{
			Entry:   domain.CacheEntry{Fingerprint: "eeee"},
			Failure: &domain.Failure{Kind: domain.FailureConversion, Log: "Syntax Error: bad xref\n"},
		}
	})

	assert.Equal(t,
		`<p>x <span class="qworld-error" data-kind="ConversionError" title="ConversionError eeee"><code>\q{y}</code>`+
			`<code class="qworld-log">Syntax Error: bad xref</code></span></p>`+"\n",
		got)
}

func TestApply_LogTail(t *testing.T) {
	t.Parallel()

	var log bytes.Buffer
	for i := range 100 {
		log.WriteString("l")
		log.WriteByte(byte('0' + i%10))
		log.WriteByte('\n')
	}

	doc := ast.NewDocument()
	block := ast.NewFencedCodeBlock(nil)
	doc.AppendChild(doc, block)

	rewriter.New().Apply(
		domain.Fragment{Kind: domain.KindBlock, Parent: doc, Node: block},
		domain.Resolution{Failure: &domain.Failure{Kind: domain.FailureCompile, Log: log.String()}},
	)

	placeholder, ok := doc.FirstChild().(*markdown.DiagramError)
	require.True(t, ok)
	assert.Len(t, bytes.Split([]byte(placeholder.Log), []byte("\n")), rewriter.LogTailLines)
}

func TestApply_DetachedNodeIsIgnored(t *testing.T) {
	t.Parallel()

	doc := ast.NewDocument()
	block := ast.NewFencedCodeBlock(nil)
	doc.AppendChild(doc, block)
	f := domain.Fragment{Kind: domain.KindBlock, Parent: doc, Node: block}

	rw := rewriter.New()
	rw.Apply(f, success("ffff"))
	first := doc.FirstChild()
	rw.Apply(f, success("ffff"))

	assert.Same(t, first, doc.FirstChild())
	assert.Equal(t, 1, doc.ChildCount())
}
