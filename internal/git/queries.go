package git

import (
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"ghup/internal/errors"
)

// CommitInfo is a flattened view of a commit for reports and listings.
type CommitInfo struct {
	Hash    string    `json:"hash" yaml:"hash"`
	Subject string    `json:"subject" yaml:"subject"`
	Author  string    `json:"author" yaml:"author"`
	Date    time.Time `json:"date" yaml:"date"`
}

// BranchInfo describes a local branch.
type BranchInfo struct {
	Name    string `json:"name" yaml:"name"`
	Hash    string `json:"hash" yaml:"hash"`
	Current bool   `json:"current" yaml:"current"`
}

// IsRepository reports whether the manager's path is a git repository.
func (m *Manager) IsRepository() bool {
	_, err := gogit.PlainOpen(m.path)
	return err == nil
}

func (m *Manager) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(m.path)
	if err != nil {
		return nil, errors.WrapWithDetails(errors.ErrGitRepoNotFound,
			"not a git repository", m.path, err)
	}
	return repo, nil
}

// CurrentBranch returns the branch HEAD points at.
func (m *Manager) CurrentBranch() (string, error) {
	repo, err := m.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", errors.Wrap(errors.ErrGitRepoNotFound, "failed to resolve HEAD", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New(errors.ErrGitRepoNotFound, "repository is in detached HEAD state")
	}
	return head.Name().Short(), nil
}

// RemoteURL returns the first URL of the named remote, or "" when the
// remote does not exist.
func (m *Manager) RemoteURL(name string) (string, error) {
	repo, err := m.open()
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote(name)
	if err != nil {
		return "", nil
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// WorkingTreeChanges returns the modified (tracked, changed) and untracked
// paths, both sorted for stable output.
func (m *Manager) WorkingTreeChanges() (modified, untracked []string, err error) {
	repo, err := m.open()
	if err != nil {
		return nil, nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrGitRepoNotFound, "failed to open worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrGitRepoNotFound, "failed to read worktree status", err)
	}

	for path, st := range status {
		switch {
		case st.Worktree == gogit.Untracked:
			untracked = append(untracked, path)
		case st.Worktree != gogit.Unmodified || st.Staging != gogit.Unmodified:
			modified = append(modified, path)
		}
	}
	sort.Strings(modified)
	sort.Strings(untracked)
	return modified, untracked, nil
}

// IsDirty reports whether the working tree has any uncommitted change.
func (m *Manager) IsDirty() (bool, error) {
	modified, untracked, err := m.WorkingTreeChanges()
	if err != nil {
		return false, err
	}
	return len(modified)+len(untracked) > 0, nil
}

// LastCommit returns the commit HEAD points at.
func (m *Manager) LastCommit() (CommitInfo, error) {
	repo, err := m.open()
	if err != nil {
		return CommitInfo{}, err
	}
	head, err := repo.Head()
	if err != nil {
		return CommitInfo{}, errors.Wrap(errors.ErrGitRepoNotFound, "failed to resolve HEAD", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return CommitInfo{}, errors.Wrap(errors.ErrGitRepoNotFound, "failed to read HEAD commit", err)
	}
	return commitInfo(commit), nil
}

// RecentCommits returns up to limit commits from HEAD, newest first.
func (m *Manager) RecentCommits(limit int) ([]CommitInfo, error) {
	repo, err := m.open()
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&gogit.LogOptions{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrGitRepoNotFound, "failed to read commit log", err)
	}
	defer iter.Close()

	commits := make([]CommitInfo, 0, limit)
	for len(commits) < limit {
		commit, err := iter.Next()
		if err != nil {
			break
		}
		commits = append(commits, commitInfo(commit))
	}
	return commits, nil
}

// Branches lists the local branches with their head commits, marking the
// one HEAD points at.
func (m *Manager) Branches() ([]BranchInfo, error) {
	repo, err := m.open()
	if err != nil {
		return nil, err
	}

	var current string
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		current = head.Name().Short()
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, errors.Wrap(errors.ErrGitRepoNotFound, "failed to list branches", err)
	}
	defer iter.Close()

	var branches []BranchInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, BranchInfo{
			Name:    ref.Name().Short(),
			Hash:    shortHash(ref.Hash().String()),
			Current: ref.Name().Short() == current,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrGitRepoNotFound, "failed to list branches", err)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

func commitInfo(c *object.Commit) CommitInfo {
	return CommitInfo{
		Hash:    shortHash(c.Hash.String()),
		Subject: firstLine(c.Message),
		Author:  c.Author.Name,
		Date:    c.Author.When,
	}
}
