package config

// File represents the structure of the qworld.yaml configuration file.
type File struct {
	Version          string `yaml:"version"`
	BaseURL          string `yaml:"baseUrl"`
	OutputDir        string `yaml:"outputDir"`
	AssetDir         string `yaml:"assetDir"`
	ScratchDir       string `yaml:"scratchDir"`
	MacroResourceDir string `yaml:"macroResourceDir"`
	ConcurrencyLimit *int   `yaml:"concurrencyLimit"`

	Toolchain ToolchainDTO `yaml:"toolchain"`
	Markdown  MarkdownDTO  `yaml:"markdown"`
	Template  TemplateDTO  `yaml:"template"`
	Docs      DocsDTO      `yaml:"docs"`
}

// ToolchainDTO names the external programs of the two compile stages.
type ToolchainDTO struct {
	Engine      string `yaml:"engine"`
	Converter   string `yaml:"converter"`
	TaskTimeout string `yaml:"taskTimeout"`
}

// MarkdownDTO controls which fragments are recognized as diagrams.
type MarkdownDTO struct {
	Languages     []string `yaml:"languages"`
	MathLanguages []string `yaml:"mathLanguages"`
	MacroPattern  string   `yaml:"macroPattern"`
}

// TemplateDTO selects the document template.
type TemplateDTO struct {
	File    string `yaml:"file"`
	Version string `yaml:"version"`
}

// DocsDTO locates the Markdown sources and the rendered site.
type DocsDTO struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}
