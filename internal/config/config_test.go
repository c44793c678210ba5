package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghup/internal/errors"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeEnv(t, `
GITHUB_USERNAME=octocat
GITHUB_TOKEN=ghp_secret
GITHUB_REPO=octocat/hello
LOCAL_REPO_PATH=/tmp/hello
COMMIT_MESSAGE=Routine update
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, "ghp_secret", cfg.Token)
	assert.Equal(t, "octocat/hello", cfg.Repo)
	assert.Equal(t, "/tmp/hello", cfg.LocalPath)
	assert.Equal(t, "Routine update", cfg.CommitMessage)
}

func TestLoadDefaultsCommitMessage(t *testing.T) {
	path := writeEnv(t, `
GITHUB_USERNAME=octocat
GITHUB_TOKEN=ghp_secret
GITHUB_REPO=hello
LOCAL_REPO_PATH=/tmp/hello
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCommitMessage, cfg.CommitMessage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigNotFound))
}

func TestLoadMissingKeys(t *testing.T) {
	path := writeEnv(t, `
GITHUB_USERNAME=octocat
LOCAL_REPO_PATH=/tmp/hello
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigMissingKeys))
	// The message names every missing key, sorted.
	assert.Contains(t, err.Error(), "GITHUB_REPO")
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	assert.NotContains(t, err.Error(), "GITHUB_USERNAME")
}

func TestLoadBlankValueCountsAsMissing(t *testing.T) {
	path := writeEnv(t, `
GITHUB_USERNAME=octocat
GITHUB_TOKEN="   "
GITHUB_REPO=hello
LOCAL_REPO_PATH=/tmp/hello
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigMissingKeys))
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeEnv(t, `
GITHUB_USERNAME=octocat
GITHUB_TOKEN=ghp_secret
GITHUB_REPO=hello
LOCAL_REPO_PATH=/tmp/hello
`)

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStringRedactsToken(t *testing.T) {
	cfg := Config{
		Username:      "octocat",
		Token:         "ghp_secret",
		Repo:          "hello",
		LocalPath:     "/tmp/hello",
		CommitMessage: "msg",
	}

	s := cfg.String()
	assert.NotContains(t, s, "ghp_secret")
	assert.Contains(t, s, "octocat")
}
