package ports

import "iter"

// DocumentWalker discovers Markdown source documents.
//
//go:generate mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type DocumentWalker interface {
	// WalkMarkdown yields every Markdown document below root, or root itself
	// when it names a single file.
	WalkMarkdown(root string) iter.Seq[string]
}
