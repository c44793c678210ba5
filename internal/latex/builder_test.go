package latex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghup/internal/errors"
	"ghup/internal/runner"
)

// fakeCompiler installs a shell script standing in for pdflatex. The script
// writes the .pdf and the usual byproducts next to its input, like the real
// compiler does.
func fakeCompiler(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fakelatex")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`\documentclass{article}`), 0o644))
	return path
}

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "manual.tex")
	writeSource(t, dir, "chapters/intro.tex")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	sources, err := NewBuilder(runner.New()).FindSources(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "chapters/intro.tex"),
		filepath.Join(dir, "manual.tex"),
	}, sources)
}

func TestFindSourcesMissingDir(t *testing.T) {
	_, err := NewBuilder(runner.New()).FindSources(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDocsNotFound))
}

func TestBuildProducesArtifactAndCleansAux(t *testing.T) {
	tool := fakeCompiler(t, `
base="${2%.tex}"
printf 'pdf' > "$base.pdf"
touch "$base.aux" "$base.log"
`)
	dir := t.TempDir()
	source := writeSource(t, dir, "manual.tex")

	artifact, err := NewBuilderWithTool(runner.New(), tool).Build(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, source, artifact.Source)
	assert.Equal(t, filepath.Join(dir, "manual.pdf"), artifact.Path)
	assert.Equal(t, int64(3), artifact.Size)

	_, err = os.Stat(filepath.Join(dir, "manual.aux"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "manual.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildCompilerFailure(t *testing.T) {
	tool := fakeCompiler(t, `
echo '! Undefined control sequence.'
exit 1
`)
	source := writeSource(t, t.TempDir(), "manual.tex")

	_, err := NewBuilderWithTool(runner.New(), tool).Build(context.Background(), source)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDocBuildFailed))
	assert.Contains(t, err.Error(), "Undefined control sequence")
}

func TestBuildNoOutputPDF(t *testing.T) {
	tool := fakeCompiler(t, "exit 0")
	source := writeSource(t, t.TempDir(), "manual.tex")

	_, err := NewBuilderWithTool(runner.New(), tool).Build(context.Background(), source)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDocBuildFailed))
}

func TestBuildMissingCompiler(t *testing.T) {
	source := writeSource(t, t.TempDir(), "manual.tex")

	_, err := NewBuilderWithTool(runner.New(), "ghup-no-such-compiler").Build(context.Background(), source)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrToolMissing))
}

func TestBuildAll(t *testing.T) {
	tool := fakeCompiler(t, `
base="${2%.tex}"
printf 'pdf' > "$base.pdf"
`)
	dir := t.TempDir()
	writeSource(t, dir, "a.tex")
	writeSource(t, dir, "b.tex")

	artifacts, err := NewBuilderWithTool(runner.New(), tool).BuildAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), artifacts[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.pdf"), artifacts[1].Path)
}

func TestBuildAllEmptyDir(t *testing.T) {
	_, err := NewBuilder(runner.New()).BuildAll(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDocsNotFound))
}

func TestBuildAllAbortsOnFirstFailure(t *testing.T) {
	// The fake succeeds for a.tex and fails for b.tex; c.tex never builds.
	tool := fakeCompiler(t, `
case "$2" in
  b.tex) exit 1 ;;
esac
base="${2%.tex}"
printf 'pdf' > "$base.pdf"
`)
	dir := t.TempDir()
	writeSource(t, dir, "a.tex")
	writeSource(t, dir, "b.tex")
	writeSource(t, dir, "c.tex")

	artifacts, err := NewBuilderWithTool(runner.New(), tool).BuildAll(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDocBuildFailed))
	require.Len(t, artifacts, 1)
	_, statErr := os.Stat(filepath.Join(dir, "c.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}
