package git_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghup/internal/errors"
	"ghup/internal/git"
	"ghup/internal/runner"
	"ghup/internal/testutil"
)

func TestIsRepository(t *testing.T) {
	m, _ := newManager(t)
	assert.True(t, m.IsRepository())

	notRepo := git.New(t.TempDir(), runner.New())
	assert.False(t, notRepo.IsRepository())
}

func TestQueriesOnMissingRepository(t *testing.T) {
	m := git.New(t.TempDir(), runner.New())

	_, err := m.CurrentBranch()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrGitRepoNotFound))
}

func TestCurrentBranch(t *testing.T) {
	m, _ := newManager(t)

	branch, err := m.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestRemoteURL(t *testing.T) {
	m, dir := newManager(t)
	remote := testutil.InitBareRemote(t, dir)

	url, err := m.RemoteURL("origin")
	require.NoError(t, err)
	assert.Equal(t, remote, url)

	url, err = m.RemoteURL("upstream")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestWorkingTreeChanges(t *testing.T) {
	m, dir := newManager(t)

	modified, untracked, err := m.WorkingTreeChanges()
	require.NoError(t, err)
	assert.Empty(t, modified)
	assert.Empty(t, untracked)

	dirty, err := m.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	testutil.WriteFile(t, dir, "README.md", "# changed\n")
	testutil.WriteFile(t, dir, "new.txt", "new\n")

	modified, untracked, err = m.WorkingTreeChanges()
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, modified)
	assert.Equal(t, []string{"new.txt"}, untracked)

	dirty, err = m.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestRecentCommits(t *testing.T) {
	m, dir := newManager(t)

	testutil.WriteFile(t, dir, "a.txt", "a\n")
	testutil.Commit(t, dir, "second")
	testutil.WriteFile(t, dir, "b.txt", "b\n")
	testutil.Commit(t, dir, "third")

	commits, err := m.RecentCommits(2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "third", commits[0].Subject)
	assert.Equal(t, "second", commits[1].Subject)
	assert.Equal(t, "test", commits[0].Author)
	assert.Len(t, commits[0].Hash, 7)

	// Asking for more than exist returns everything.
	commits, err = m.RecentCommits(50)
	require.NoError(t, err)
	assert.Len(t, commits, 3)
}
