// Package config provides the configuration loader for qworld.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override qworld.yaml.
const (
	EnvBaseURL     = "QWORLD_BASE_URL"
	EnvOutputDir   = "QWORLD_OUTPUT_DIR"
	EnvScratchDir  = "QWORLD_SCRATCH_DIR"
	EnvMacroDir    = "QWORLD_MACRO_DIR"
	EnvConcurrency = "QWORLD_CONCURRENCY"
	EnvEngine      = "QWORLD_ENGINE"
	EnvConverter   = "QWORLD_CONVERTER"
)

// SupportedVersion is the only configuration schema version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// LookupEnv reads the process environment.
	LookupEnv func(key string) (string, bool)
}

// NewLoader creates a new Loader with the given logger backed by the OS.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS(), LookupEnv: os.LookupEnv}
}

// Load reads the configuration and returns it with every path made absolute.
func (l *Loader) Load(cwd, explicitPath string) (*domain.Config, error) {
	configPath, err := l.resolveConfigPath(cwd, explicitPath)
	if err != nil {
		return nil, err
	}

	var file File
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn("unsupported config version " + strconv.Quote(file.Version) + " in " + configPath)
	}

	root := filepath.Dir(configPath)

	overrides, err := l.environment(root)
	if err != nil {
		return nil, err
	}

	cfg, err := l.buildConfig(root, &file, overrides)
	if err != nil {
		return nil, err
	}

	l.Logger.Debug("loaded configuration from " + configPath)
	return cfg, nil
}

// DiscoverRoot walks up from cwd to find the directory containing qworld.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) resolveConfigPath(cwd, explicitPath string) (string, error) {
	if explicitPath == "" {
		root, err := l.DiscoverRoot(cwd)
		if err != nil {
			return "", err
		}
		return filepath.Join(root, domain.ConfigFileName), nil
	}

	configPath := explicitPath
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}
	configPath = filepath.Clean(configPath)

	if _, err := l.FS.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(domain.ErrConfigNotFound, "path", configPath)
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}
	return configPath, nil
}

// environment merges the optional .env file with the process environment.
// Process variables win.
func (l *Loader) environment(root string) (map[string]string, error) {
	values := make(map[string]string)

	envPath := filepath.Join(root, domain.EnvFileName)
	data, err := l.FS.ReadFile(envPath)
	switch {
	case err == nil:
		parsed, parseErr := godotenv.Parse(bytes.NewReader(data))
		if parseErr != nil {
			parseErr = zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
			return nil, zerr.With(parseErr, "path", envPath)
		}
		for key, value := range parsed {
			if strings.HasPrefix(key, "QWORLD_") {
				values[key] = value
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", envPath)
	}

	if l.LookupEnv != nil {
		for _, key := range []string{
			EnvBaseURL, EnvOutputDir, EnvScratchDir, EnvMacroDir, EnvConcurrency, EnvEngine, EnvConverter,
		} {
			if value, ok := l.LookupEnv(key); ok {
				values[key] = value
			}
		}
	}

	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			return nil, zerr.With(domain.ErrMissingConfigValue, "env", key)
		}
	}

	return values, nil
}

func (l *Loader) buildConfig(root string, file *File, env map[string]string) (*domain.Config, error) {
	cfg := &domain.Config{
		Root:             root,
		BaseURL:          pick(env[EnvBaseURL], file.BaseURL, domain.DefaultBaseURL),
		AssetDir:         pick(file.AssetDir, domain.DefaultAssetDir),
		OutputDir:        resolvePath(root, pick(env[EnvOutputDir], file.OutputDir, domain.DefaultOutputDir)),
		ScratchDir:       resolvePath(root, pick(env[EnvScratchDir], file.ScratchDir, domain.DefaultScratchPath())),
		MacroResourceDir: resolvePath(root, pick(env[EnvMacroDir], file.MacroResourceDir, domain.DefaultMacroResourceDir)),
		Engine:           resolveProgram(root, pick(env[EnvEngine], file.Toolchain.Engine, domain.DefaultEngine)),
		Converter:        resolveProgram(root, pick(env[EnvConverter], file.Toolchain.Converter, domain.DefaultConverter)),
		Languages:        file.Markdown.Languages,
		MathLanguages:    file.Markdown.MathLanguages,
		TemplateLabel:    file.Template.Version,
		SourceDir:        resolvePath(root, pick(file.Docs.Source, domain.DefaultSourceDir)),
		SiteDir:          resolvePath(root, pick(file.Docs.Output, domain.DefaultSiteDir)),
	}

	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{domain.DefaultLanguage}
	}
	if cfg.MathLanguages == nil {
		cfg.MathLanguages = []string{domain.DefaultMathLanguage}
	}

	var err error
	if cfg.ConcurrencyLimit, err = concurrency(file.ConcurrencyLimit, env[EnvConcurrency]); err != nil {
		return nil, err
	}
	if cfg.TaskTimeout, err = taskTimeout(file.Toolchain.TaskTimeout); err != nil {
		return nil, err
	}
	if cfg.MacroPattern, err = macroPattern(file.Markdown.MacroPattern); err != nil {
		return nil, err
	}
	if err = l.checkMacroResourceDir(cfg.MacroResourceDir); err != nil {
		return nil, err
	}
	if cfg.Template, err = l.template(root, file.Template.File); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) checkMacroResourceDir(dir string) error {
	isDir, err := l.FS.IsDir(dir)
	if err != nil || !isDir {
		return zerr.With(domain.ErrMacroResourceMissing, "path", dir)
	}
	return nil
}

func (l *Loader) template(root, file string) (string, error) {
	if file == "" {
		return domain.DefaultTemplate, nil
	}

	templatePath := resolvePath(root, file)
	data, err := l.FS.ReadFile(templatePath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTemplateReadFailed.Error()), "path", templatePath)
	}

	text := string(data)
	if !strings.Contains(text, domain.TemplatePlaceholder) {
		return "", zerr.With(domain.ErrTemplatePlaceholderMissing, "path", templatePath)
	}
	return text, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	configFile, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func concurrency(configured *int, override string) (int, error) {
	if override != "" {
		n, err := strconv.Atoi(strings.TrimSpace(override))
		if err != nil || n <= 0 {
			return 0, zerr.With(domain.ErrInvalidConcurrency, "value", override)
		}
		return n, nil
	}

	if configured == nil {
		return runtime.GOMAXPROCS(0), nil
	}
	if *configured <= 0 {
		return 0, zerr.With(domain.ErrInvalidConcurrency, "value", *configured)
	}
	return *configured, nil
}

func taskTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, zerr.With(domain.ErrInvalidTimeout, "value", raw)
	}
	return d, nil
}

func macroPattern(raw string) (*regexp.Regexp, error) {
	if raw == "" {
		raw = domain.DefaultMacroPattern
	}
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidMacroPattern.Error()), "pattern", raw)
	}
	return re, nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(root, p))
}

// resolveProgram anchors relative program paths at the root.
// Bare names are left for a PATH lookup.
func resolveProgram(root, program string) string {
	if !strings.ContainsRune(program, filepath.Separator) || filepath.IsAbs(program) {
		return program
	}
	return resolvePath(root, program)
}
