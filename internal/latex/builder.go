// Package latex compiles TeX sources into PDFs through the external
// document compiler.
package latex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ghup/internal/errors"
	"ghup/internal/logger"
	"ghup/internal/runner"
)

// DefaultTool is the document compiler invoked per source file.
const DefaultTool = "pdflatex"

// buildTimeout bounds a single compiler run; the original pipeline used the
// same limit.
const buildTimeout = 60 * time.Second

// auxExtensions are the byproducts removed after a successful build.
var auxExtensions = []string{".aux", ".log", ".out", ".toc"}

// Artifact describes one produced PDF.
type Artifact struct {
	Source string `json:"source" yaml:"source"`
	Path   string `json:"path" yaml:"path"`
	Size   int64  `json:"size_bytes" yaml:"size_bytes"`
}

// Builder compiles TeX documents.
type Builder struct {
	run  *runner.Runner
	tool string
}

// NewBuilder creates a Builder using the default compiler.
func NewBuilder(run *runner.Runner) *Builder {
	return &Builder{run: run, tool: DefaultTool}
}

// NewBuilderWithTool creates a Builder invoking a specific compiler binary.
func NewBuilderWithTool(run *runner.Runner, tool string) *Builder {
	return &Builder{run: run, tool: tool}
}

// FindSources returns every .tex file under dir, sorted by path.
func (b *Builder) FindSources(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, errors.NewWithDetails(errors.ErrDocsNotFound,
			"docs directory not found", dir)
	}

	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".tex") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDocsNotFound, "failed to scan docs directory", err)
	}
	return sources, nil
}

// Build compiles one source file. The compiler runs twice so references and
// tables of contents settle, then aux byproducts are removed. A nonzero
// compiler exit or a missing output PDF fails with ErrDocBuildFailed
// carrying the compiler's captured output.
func (b *Builder) Build(ctx context.Context, source string) (Artifact, error) {
	dir := filepath.Dir(source)
	name := filepath.Base(source)

	log := logger.WithFields(logger.Fields{"source": source, "tool": b.tool})
	for pass := 1; pass <= 2; pass++ {
		log.WithField("pass", pass).Debug("compiling document")
		res, err := b.run.Run(ctx, runner.Command{
			Name:    b.tool,
			Args:    []string{"-interaction=nonstopmode", name},
			Dir:     dir,
			Timeout: buildTimeout,
		})
		if err != nil {
			if errors.HasCode(err, errors.ErrToolMissing) || errors.HasCode(err, errors.ErrToolTimedOut) {
				return Artifact{}, err
			}
			return Artifact{}, errors.WrapWithDetails(errors.ErrDocBuildFailed,
				fmt.Sprintf("failed to build %s", name),
				compilerOutput(res), err)
		}
	}

	b.removeAuxFiles(source)

	pdf := strings.TrimSuffix(source, filepath.Ext(source)) + ".pdf"
	info, err := os.Stat(pdf)
	if err != nil {
		return Artifact{}, errors.NewWithDetails(errors.ErrDocBuildFailed,
			fmt.Sprintf("compiler succeeded but produced no %s", filepath.Base(pdf)),
			source)
	}

	return Artifact{Source: source, Path: pdf, Size: info.Size()}, nil
}

// BuildAll compiles every source under dir, aborting on the first failure.
func (b *Builder) BuildAll(ctx context.Context, dir string) ([]Artifact, error) {
	sources, err := b.FindSources(dir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, errors.NewWithDetails(errors.ErrDocsNotFound,
			"no .tex files found", dir)
	}

	artifacts := make([]Artifact, 0, len(sources))
	for _, source := range sources {
		artifact, err := b.Build(ctx, source)
		if err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func (b *Builder) removeAuxFiles(source string) {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	for _, ext := range auxExtensions {
		if err := os.Remove(base + ext); err != nil && !os.IsNotExist(err) {
			logger.WithError(err).Debug("failed to remove aux file")
		}
	}
}

// compilerOutput prefers stderr but falls back to the tail of stdout; TeX
// compilers report most errors on stdout.
func compilerOutput(res runner.Result) string {
	out := strings.TrimSpace(res.Stderr)
	if out == "" {
		out = strings.TrimSpace(res.Stdout)
	}
	const maxLen = 2000
	if len(out) > maxLen {
		out = "..." + out[len(out)-maxLen:]
	}
	return out
}
