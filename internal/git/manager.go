// Package git wraps the repository operations ghup needs. Mutations shell
// out to the git binary through the command runner; read-only queries use
// go-git so the monitor never spawns a process it does not have to.
package git

import (
	"context"
	"regexp"
	"strings"

	"ghup/internal/errors"
	"ghup/internal/runner"
)

// Manager handles operations on a single working tree.
type Manager struct {
	path string
	run  *runner.Runner
}

// New creates a Manager for the working tree at path.
func New(path string, run *runner.Runner) *Manager {
	return &Manager{path: path, run: run}
}

// Path returns the working tree path the manager operates on.
func (m *Manager) Path() string {
	return m.path
}

// git runs the git binary inside the working tree. Prompting is disabled so
// a missing credential fails instead of hanging the workflow.
func (m *Manager) git(ctx context.Context, args ...string) (runner.Result, error) {
	return m.run.Run(ctx, runner.Command{
		Name: "git",
		Args: args,
		Dir:  m.path,
		Env:  []string{"GIT_TERMINAL_PROMPT=0"},
	})
}

// StageByPatterns stages every change matching the given pathspecs. A
// pattern that matches nothing is not an error; staging zero files is the
// legitimate "nothing to commit" outcome.
func (m *Manager) StageByPatterns(ctx context.Context, patterns []string) error {
	for _, pattern := range patterns {
		res, err := m.git(ctx, "add", "--all", "--", pattern)
		if err != nil {
			if errors.HasCode(err, errors.ErrToolFailed) &&
				strings.Contains(res.Stderr, "did not match any files") {
				continue
			}
			return err
		}
	}
	return nil
}

// StagedFiles returns the paths currently staged for commit.
func (m *Manager) StagedFiles(ctx context.Context) ([]string, error) {
	res, err := m.git(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return parseLines(res.Stdout), nil
}

// Commit records the staged changes and returns the new commit's short hash.
func (m *Manager) Commit(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.New(errors.ErrInvalidInput, "commit message cannot be empty")
	}
	if _, err := m.git(ctx, "commit", "-m", message); err != nil {
		return "", err
	}
	res, err := m.git(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// TagExists reports whether a tag with the given name already exists.
func (m *Manager) TagExists(ctx context.Context, name string) (bool, error) {
	res, err := m.git(ctx, "tag", "--list", name)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// CreateAnnotatedTag creates an annotated tag pointing at HEAD. Creating a
// tag whose name is already taken fails with ErrTagExists.
func (m *Manager) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "tag name cannot be empty")
	}
	exists, err := m.TagExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewWithDetails(errors.ErrTagExists,
			"tag already exists", name)
	}
	_, err = m.git(ctx, "tag", "--annotate", name, "--message", message)
	return err
}

// Push pushes the given refspecs to target, which is either a remote name
// or a (possibly credentialed) URL. The target never appears in the error:
// it may embed the access token.
func (m *Manager) Push(ctx context.Context, target string, refspecs ...string) error {
	args := append([]string{"push", target}, refspecs...)
	if _, err := m.git(ctx, args...); err != nil {
		if ge, ok := err.(*errors.GhupError); ok {
			ge.Details = redactToken(ge.Details)
		}
		return err
	}
	return nil
}

// PushTarget resolves where a push should go: the named remote's https URL
// with the credential embedded when one is available, or the remote name so
// git falls back to its own authentication. The credential policy lives here
// next to the redaction it depends on.
func (m *Manager) PushTarget(remote, username, token string) string {
	remoteURL, err := m.RemoteURL(remote)
	if err != nil || remoteURL == "" {
		return remote
	}
	if authenticated, ok := AuthenticatedRemote(remoteURL, username, token); ok {
		return authenticated
	}
	return remote
}

// Pull fast-forwards the current branch from the remote.
func (m *Manager) Pull(ctx context.Context, remote, branch string) error {
	_, err := m.git(ctx, "pull", "--ff-only", remote, branch)
	return err
}

// CreateBranch creates a new branch pointing at HEAD without switching to it.
func (m *Manager) CreateBranch(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "branch name cannot be empty")
	}
	_, err := m.git(ctx, "branch", name)
	return err
}

// SwitchBranch checks out an existing branch.
func (m *Manager) SwitchBranch(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "branch name cannot be empty")
	}
	_, err := m.git(ctx, "switch", name)
	return err
}

// AheadBehind returns how many commits HEAD is ahead of and behind its
// upstream tracking branch. hasUpstream is false when no upstream is
// configured, which callers treat as "counts unknown", not an error.
func (m *Manager) AheadBehind(ctx context.Context) (ahead, behind int, hasUpstream bool, err error) {
	res, runErr := m.git(ctx, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if runErr != nil {
		if errors.HasCode(runErr, errors.ErrToolFailed) &&
			(strings.Contains(res.Stderr, "no upstream") ||
				strings.Contains(res.Stderr, "upstream configured")) {
			return 0, 0, false, nil
		}
		return 0, 0, false, runErr
	}
	ahead, behind, err = parseAheadBehind(res.Stdout)
	if err != nil {
		return 0, 0, false, err
	}
	return ahead, behind, true, nil
}

// TotalCommits counts the commits reachable from HEAD.
func (m *Manager) TotalCommits(ctx context.Context) (int, error) {
	res, err := m.git(ctx, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	return parseCount(res.Stdout)
}

// Fetch updates remote tracking refs so ahead/behind counts are current.
func (m *Manager) Fetch(ctx context.Context, remote string) error {
	_, err := m.git(ctx, "fetch", remote)
	return err
}

// userinfoPattern matches credentials embedded in https URLs.
var userinfoPattern = regexp.MustCompile(`https://[^@/\s]+@`)

// redactToken strips userinfo out of https URLs that leaked into tool output.
func redactToken(s string) string {
	return userinfoPattern.ReplaceAllString(s, "https://<redacted>@")
}
