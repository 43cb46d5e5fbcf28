package domain

import "strings"

// TemplatePlaceholder marks where the wrapped diagram source goes in a template.
const TemplatePlaceholder = "%DIAGRAM%"

// DefaultTemplate is the standalone document every fragment is compiled in.
const DefaultTemplate = `\documentclass{standalone}
\usepackage{tikz}
\usepackage{qworld}
\begin{document}
` + TemplatePlaceholder + `
\end{document}
`

// Envelope wraps a fragment's source according to its kind.
// Block sources are already self-contained.
func Envelope(kind Kind, source string) string {
	switch kind {
	case KindInline:
		return "$" + source + "$"
	case KindDisplay:
		return `$\displaystyle ` + source + "$"
	default:
		return source
	}
}

// RenderDocument embeds the enveloped source in the template.
func RenderDocument(template string, kind Kind, source string) string {
	return strings.Replace(template, TemplatePlaceholder, Envelope(kind, source), 1)
}
