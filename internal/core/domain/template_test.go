package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/qworld/internal/core/domain"
)

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name string
		kind domain.Kind
		src  string
		want string
	}{
		{name: "block is verbatim", kind: domain.KindBlock, src: `\q{X -- Y}`, want: `\q{X -- Y}`},
		{name: "inline math", kind: domain.KindInline, src: `\q{A}`, want: `$\q{A}$`},
		{name: "display math", kind: domain.KindDisplay, src: `\q{A}`, want: `$\displaystyle \q{A}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Envelope(tt.kind, tt.src))
		})
	}
}

func TestRenderDocument(t *testing.T) {
	doc := domain.RenderDocument(domain.DefaultTemplate, domain.KindInline, `\q{A}`)

	assert.Contains(t, doc, `\usepackage{qworld}`)
	assert.Contains(t, doc, "\\begin{document}\n$\\q{A}$\n\\end{document}")
	assert.NotContains(t, doc, domain.TemplatePlaceholder)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "block", domain.KindBlock.String())
	assert.Equal(t, "inline", domain.KindInline.String())
	assert.Equal(t, "display", domain.KindDisplay.String())
	assert.Equal(t, "unknown", domain.Kind(42).String())
}
