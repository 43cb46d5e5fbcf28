package domain

import (
	"regexp"
	"time"
)

// Config is the resolved pipeline configuration.
// All paths are absolute once returned by the loader.
type Config struct {
	// Root is the directory containing qworld.yaml.
	Root string

	BaseURL          string
	OutputDir        string
	AssetDir         string
	ScratchDir       string
	MacroResourceDir string
	ConcurrencyLimit int

	Engine      string
	Converter   string
	TaskTimeout time.Duration

	Languages     []string
	MathLanguages []string
	MacroPattern  *regexp.Regexp

	// Template is the document template text with a TemplatePlaceholder.
	Template string
	// TemplateLabel is mixed into the template version.
	TemplateLabel string

	SourceDir string
	SiteDir   string
}
