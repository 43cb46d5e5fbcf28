package domain

import "path/filepath"

const (
	// QworldDirName is the name of the internal workspace directory.
	QworldDirName = ".qworld"

	// ScratchDirName is the name of the scratch directory inside the workspace.
	ScratchDirName = "tmp"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "qworld.yaml"

	// EnvFileName is the name of the optional environment override file.
	EnvFileName = ".env"

	// DefaultOutputDir is where artifacts are written, relative to the project root.
	DefaultOutputDir = "static/img/qworld-diagrams"

	// DefaultAssetDir is the URL path segment under which artifacts are served.
	DefaultAssetDir = "img/qworld-diagrams"

	// DefaultMacroResourceDir holds qworld.sty, relative to the project root.
	DefaultMacroResourceDir = "latex"

	// DefaultBaseURL is the site base URL.
	DefaultBaseURL = "/"

	// DefaultEngine is the stage-1 typesetting program.
	DefaultEngine = "lualatex"

	// DefaultConverter is the stage-2 vector converter.
	DefaultConverter = "pdf2svg"

	// DefaultLanguage is the fenced code block language of diagram blocks.
	DefaultLanguage = "qworld"

	// DefaultMathLanguage is the fenced code block language of math blocks.
	DefaultMathLanguage = "math"

	// DefaultMacroPattern matches a diagram macro invocation inside math.
	DefaultMacroPattern = `\\q\{.*\}`

	// DefaultSourceDir is the default directory of Markdown sources.
	DefaultSourceDir = "docs"

	// DefaultSiteDir is the default directory for rendered HTML.
	DefaultSiteDir = "build"

	// MarkdownExt is the extension of source documents.
	MarkdownExt = ".md"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultScratchPath returns the default scratch workspace.
// It joins .qworld and tmp.
func DefaultScratchPath() string {
	return filepath.Join(QworldDirName, ScratchDirName)
}
