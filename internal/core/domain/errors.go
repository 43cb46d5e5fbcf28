package domain

import "go.trai.ch/zerr"

// Configuration errors. They are fatal to a build.
var (
	// ErrConfigNotFound is returned when no qworld.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find qworld.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingConfigValue is returned when a required configuration value is empty.
	ErrMissingConfigValue = zerr.New("missing required configuration value")

	// ErrInvalidConcurrency is returned when the concurrency limit is not positive.
	ErrInvalidConcurrency = zerr.New("concurrency limit must be greater than zero")

	// ErrInvalidMacroPattern is returned when the diagram macro pattern does not compile.
	ErrInvalidMacroPattern = zerr.New("invalid diagram macro pattern")

	// ErrInvalidTimeout is returned when the task timeout cannot be parsed.
	ErrInvalidTimeout = zerr.New("invalid task timeout")

	// ErrMacroResourceMissing is returned when the macro resource directory does not exist.
	ErrMacroResourceMissing = zerr.New("macro resource directory not found")

	// ErrToolchainNotFound is returned when a toolchain program cannot be resolved.
	ErrToolchainNotFound = zerr.New("toolchain program not found")

	// ErrEmptyCommand is returned when a command names no program to run.
	ErrEmptyCommand = zerr.New("command has no program path")

	// ErrTemplateReadFailed is returned when a custom template cannot be read.
	ErrTemplateReadFailed = zerr.New("failed to read document template")

	// ErrInvalidOutputMode is returned when --output-mode names an unknown mode.
	ErrInvalidOutputMode = zerr.New("invalid output mode")

	// ErrTemplatePlaceholderMissing is returned when a template lacks the diagram placeholder.
	ErrTemplatePlaceholderMissing = zerr.New("document template has no " + TemplatePlaceholder + " placeholder")
)

// I/O errors on shared roots. They abort the build pass.
var (
	// ErrCacheDirCreateFailed is returned when the artifact directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create artifact directory")

	// ErrCacheWriteFailed is returned when an artifact cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write artifact")

	// ErrCacheReadFailed is returned when the artifact directory cannot be listed.
	ErrCacheReadFailed = zerr.New("failed to read artifact directory")

	// ErrScratchCreateFailed is returned when a scratch workspace cannot be created.
	ErrScratchCreateFailed = zerr.New("failed to create scratch workspace")

	// ErrScratchWriteFailed is returned when a file cannot be materialized in the scratch workspace.
	ErrScratchWriteFailed = zerr.New("failed to write scratch file")

	// ErrDocumentReadFailed is returned when a source document cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrDocumentWriteFailed is returned when a rendered document cannot be written.
	ErrDocumentWriteFailed = zerr.New("failed to write rendered document")

	// ErrRenderFailed is returned when goldmark fails to render a document.
	ErrRenderFailed = zerr.New("failed to render document")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics textfile")

	// ErrWatcherStartFailed is returned when watch mode cannot register its directories.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrFileOpenFailed is returned when a file cannot be opened for hashing.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)

// Build outcome errors.
var (
	// ErrCompileTimeout is the cause of a CompileError when a diagram exceeds the task timeout.
	ErrCompileTimeout = zerr.New("diagram compilation timed out")

	// ErrNoDocuments is returned when the given paths contain no Markdown documents.
	ErrNoDocuments = zerr.New("no markdown documents found")

	// ErrBuildFailed is returned in strict mode when at least one diagram failed to compile.
	ErrBuildFailed = zerr.New("diagram build failed")

	// ErrCleanFailed is returned when a clean operation could not remove a directory.
	ErrCleanFailed = zerr.New("failed to clean directory")
)
