package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghup/internal/errors"
)

func TestLoadProjectDefaultsWhenAbsent(t *testing.T) {
	p, err := LoadProject(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultProject(), p)
	assert.Equal(t, []string{"."}, p.Push.Patterns)
	assert.Equal(t, "origin", p.Push.Remote)
	assert.Equal(t, PolicySucceed, p.Push.OnClean)
	assert.Equal(t, "docs", p.Docs.Directory)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	content := `
[push]
patterns = ["*.pdf", "docs/**"]
remote = "upstream"
branch = "release"
on_clean = "fail"

[docs]
directory = "tex"

[tag]
message_prefix = "Version "
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0o644))

	p, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.pdf", "docs/**"}, p.Push.Patterns)
	assert.Equal(t, "upstream", p.Push.Remote)
	assert.Equal(t, "release", p.Push.Branch)
	assert.Equal(t, PolicyFail, p.Push.OnClean)
	assert.Equal(t, "tex", p.Docs.Directory)
	assert.Equal(t, "Version ", p.Tag.MessagePrefix)
}

func TestLoadProjectPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[push]
branch = "main"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0o644))

	p, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "main", p.Push.Branch)
	assert.Equal(t, []string{"."}, p.Push.Patterns)
	assert.Equal(t, "origin", p.Push.Remote)
	assert.Equal(t, PolicySucceed, p.Push.OnClean)
}

func TestLoadProjectInvalidOnClean(t *testing.T) {
	dir := t.TempDir()
	content := `
[push]
on_clean = "explode"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0o644))

	_, err := LoadProject(dir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigParse))
}

func TestLoadProjectUnparsable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte("[push\n"), 0o644))

	_, err := LoadProject(dir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigParse))
}
