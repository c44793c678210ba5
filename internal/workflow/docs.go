package workflow

import (
	"context"
	"fmt"
	"path/filepath"

	"ghup/internal/config"
	"ghup/internal/latex"
)

// DocsOptions are the per-run knobs of the docs workflow.
type DocsOptions struct {
	// Push controls whether built PDFs are committed and pushed.
	Push bool
}

// DocsSummary reports what a docs run built and pushed.
type DocsSummary struct {
	Artifacts []latex.Artifact
	Push      *PushSummary
}

// TotalSize returns the combined size of the built PDFs in bytes.
func (s *DocsSummary) TotalSize() int64 {
	var total int64
	for _, a := range s.Artifacts {
		total += a.Size
	}
	return total
}

// DocsPusher builds the LaTeX documentation and feeds the produced PDFs
// into the push workflow.
type DocsPusher struct {
	project config.Project
	builder *latex.Builder
	pusher  *Pusher
	path    string
}

// NewDocsPusher creates a DocsPusher for the configured working tree.
func NewDocsPusher(project config.Project, builder *latex.Builder, pusher *Pusher, repoPath string) *DocsPusher {
	return &DocsPusher{project: project, builder: builder, pusher: pusher, path: repoPath}
}

// Run builds every document and, when opts.Push is set, stages the produced
// PDFs and runs the push workflow with an auto-generated message. A build
// failure aborts before any push step runs.
func (d *DocsPusher) Run(ctx context.Context, opts DocsOptions) (*DocsSummary, error) {
	summary := &DocsSummary{}

	docsDir := d.project.Docs.Directory
	if !filepath.IsAbs(docsDir) {
		docsDir = filepath.Join(d.path, docsDir)
	}

	artifacts, err := d.builder.BuildAll(ctx, docsDir)
	summary.Artifacts = artifacts
	if err != nil {
		return summary, err
	}

	if !opts.Push {
		return summary, nil
	}

	// git pathspec globs cross directory boundaries, so one pattern
	// covers PDFs anywhere in the tree.
	pushSummary, err := d.pusher.Run(ctx, PushOptions{
		Message:  fmt.Sprintf("Auto-build: generated %d PDF(s)", len(artifacts)),
		Patterns: []string{"*.pdf"},
	})
	summary.Push = pushSummary
	if err != nil {
		return summary, err
	}
	return summary, nil
}
