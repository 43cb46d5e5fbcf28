package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler runs the two toolchain stages: the typesetting engine produces a
// PDF which the converter turns into SVG.
type Compiler struct {
	runner      ports.CommandRunner
	engine      string
	converter   string
	template    string
	scratchDir  string
	resourceDir string
}

// NewCompiler resolves the configured toolchain and prepares the scratch directory.
func NewCompiler(runner ports.CommandRunner, cfg *domain.Config) (*Compiler, error) {
	env := os.Environ()

	engine, err := lookPath(cfg.Engine, env)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrToolchainNotFound.Error()), "program", cfg.Engine)
	}
	converter, err := lookPath(cfg.Converter, env)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrToolchainNotFound.Error()), "program", cfg.Converter)
	}

	if err := os.MkdirAll(cfg.ScratchDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()), "path", cfg.ScratchDir)
	}

	template := cfg.Template
	if template == "" {
		template = domain.DefaultTemplate
	}

	return &Compiler{
		runner:      runner,
		engine:      engine,
		converter:   converter,
		template:    template,
		scratchDir:  cfg.ScratchDir,
		resourceDir: cfg.MacroResourceDir,
	}, nil
}

// Compile typesets one fragment. Everything written to the scratch directory
// is named after fp and removed before Compile returns.
func (c *Compiler) Compile(
	ctx context.Context,
	kind domain.Kind,
	source string,
	fp domain.Fingerprint,
	output io.Writer,
) (domain.CompileOutcome, error) {
	defer c.cleanup(fp)

	ws := filepath.Join(c.scratchDir, fp.String())
	if err := c.prepare(ws, fp, kind, source); err != nil {
		return domain.CompileOutcome{}, err
	}

	out := &lockedWriter{w: output}
	name := fp.String()

	var stderr bytes.Buffer
	err := c.runner.Run(ctx, ports.Command{
		Path: c.engine,
		Args: []string{
			"-output-directory=" + ws,
			"-interaction=nonstopmode",
			"-halt-on-error",
			name + ".tex",
		},
		Dir: ws,
		Env: []string{"TEXINPUTS=" + c.texInputs()},
	}, out, io.MultiWriter(out, &stderr))
	if err != nil {
		log := readLog(filepath.Join(ws, name+".log"))
		if log == "" {
			log = stderr.String()
		}
		return failed(domain.FailureCompile, log, err), nil
	}

	pdf := filepath.Join(ws, name+".pdf")
	if _, err := os.Stat(pdf); err != nil {
		return failed(domain.FailureMissingArtifact, readLog(filepath.Join(ws, name+".log")), err), nil
	}

	stderr.Reset()
	err = c.runner.Run(ctx, ports.Command{
		Path: c.converter,
		Args: []string{name + ".pdf", name + domain.ArtifactExt},
		Dir:  ws,
	}, out, io.MultiWriter(out, &stderr))
	if err != nil {
		return failed(domain.FailureConversion, stderr.String(), err), nil
	}

	svg, err := os.ReadFile(filepath.Join(ws, fp.FileName())) //nolint:gosec // scratch path built from fingerprint
	if err != nil {
		return failed(domain.FailureConversion, stderr.String(), err), nil
	}
	if len(svg) == 0 {
		return failed(domain.FailureConversion, stderr.String(), errors.New("converter wrote an empty file")), nil
	}

	return domain.CompileOutcome{Artifact: svg}, nil
}

// prepare creates the workspace holding the wrapped document and a copy of
// every macro resource file.
func (c *Compiler) prepare(ws string, fp domain.Fingerprint, kind domain.Kind, source string) error {
	if err := os.MkdirAll(ws, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()), "path", ws)
	}

	doc := domain.RenderDocument(c.template, kind, source)
	tex := filepath.Join(ws, fp.String()+".tex")
	if err := os.WriteFile(tex, []byte(doc), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScratchWriteFailed.Error()), "path", tex)
	}

	if c.resourceDir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.resourceDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScratchWriteFailed.Error()), "path", c.resourceDir)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := copyFile(filepath.Join(c.resourceDir, e.Name()), filepath.Join(ws, e.Name())); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrScratchWriteFailed.Error()), "path", e.Name())
		}
	}
	return nil
}

// cleanup removes every scratch entry belonging to fp and nothing else.
func (c *Compiler) cleanup(fp domain.Fingerprint) {
	entries, err := os.ReadDir(c.scratchDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), fp.String()) {
			_ = os.RemoveAll(filepath.Join(c.scratchDir, e.Name()))
		}
	}
}

// texInputs ends with an empty path element so kpathsea appends the
// default TeX tree after the workspace and the macro resources.
func (c *Compiler) texInputs() string {
	sep := string(os.PathListSeparator)
	if c.resourceDir == "" {
		return "." + sep
	}
	return "." + sep + c.resourceDir + "//" + sep
}

func failed(kind domain.FailureKind, log string, cause error) domain.CompileOutcome {
	return domain.CompileOutcome{Failure: &domain.Failure{
		Kind:  kind,
		Log:   log,
		Cause: cause,
	}}
}

func readLog(path string) string {
	data, err := os.ReadFile(path) //nolint:gosec // scratch path built from fingerprint
	if err != nil {
		return ""
	}
	return string(data)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // macro resource directory from configuration
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // read-only

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // scratch path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// String describes the resolved toolchain.
func (c *Compiler) String() string {
	return fmt.Sprintf("%s -> %s", filepath.Base(c.engine), filepath.Base(c.converter))
}
