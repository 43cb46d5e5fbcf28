// Package rewriter replaces diagram fragments in a document tree with image
// references or failure placeholders.
package rewriter

import (
	"github.com/yuin/goldmark/ast"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/markdown"
)

const (
	// AltText is the alternative text of every diagram image.
	AltText = "QWorld Diagram"
	// ClassDiagram is set on every diagram image.
	ClassDiagram = "qworld-diagram"
	// ClassDisplay is added for display math diagrams.
	ClassDisplay = "qworld-display"
	// ImageStyle keeps inline diagrams on the text baseline.
	ImageStyle = "vertical-align: middle;"
	// LogTailLines is the number of log lines kept in a failure placeholder.
	LogTailLines = 40
)

// Rewriter mutates a document tree after a build pass has settled.
type Rewriter struct{}

// New creates a Rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// Apply replaces the fragment's node according to its resolution.
// A fragment whose node has already been detached is left alone.
func (r *Rewriter) Apply(f domain.Fragment, res domain.Resolution) {
	parent := f.Node.Parent()
	if parent == nil {
		return
	}

	block := f.Node.Type() == ast.TypeBlock

	var replacement ast.Node
	switch {
	case res.OK() && block:
		p := ast.NewParagraph()
		p.AppendChild(p, newImage(f.Kind, res.Entry.PublicPath))
		replacement = p
	case res.OK():
		replacement = newImage(f.Kind, res.Entry.PublicPath)
	case block:
		replacement = markdown.NewDiagramError(diagnostic(f, res))
	default:
		replacement = markdown.NewDiagramErrorSpan(diagnostic(f, res))
	}

	parent.ReplaceChild(parent, f.Node, replacement)
}

func newImage(kind domain.Kind, dest string) *ast.Image {
	link := ast.NewLink()
	link.Destination = []byte(dest)
	img := ast.NewImage(link)
	img.AppendChild(img, ast.NewString([]byte(AltText)))

	class := ClassDiagram
	if kind == domain.KindDisplay {
		class += " " + ClassDisplay
	}
	img.SetAttributeString("class", []byte(class))
	img.SetAttributeString("style", []byte(ImageStyle))
	return img
}

func diagnostic(f domain.Fragment, res domain.Resolution) markdown.Diagnostic {
	d := markdown.Diagnostic{
		Fingerprint: res.Entry.Fingerprint.String(),
		Source:      f.Source,
	}
	if res.Failure != nil {
		d.FailureKind = string(res.Failure.Kind)
		d.Log = res.Failure.LogTail(LogTailLines)
	}
	return d
}
