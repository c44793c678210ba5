// Package status assembles the read-only repository report behind
// `ghup monitor`. Collecting a report never mutates the working tree.
package status

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ghup/internal/config"
	"ghup/internal/git"
	"ghup/internal/github"
	"ghup/internal/logger"
)

// DefaultHistoryLimit is how many recent commits a report includes.
const DefaultHistoryLimit = 5

// RemoteInfo is the GitHub-side metadata section. It is optional: reports
// degrade gracefully when the API is unreachable.
type RemoteInfo struct {
	FullName      string    `json:"full_name" yaml:"full_name"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultBranch string    `json:"default_branch" yaml:"default_branch"`
	Private       bool      `json:"private" yaml:"private"`
	Stargazers    int       `json:"stargazers" yaml:"stargazers"`
	Forks         int       `json:"forks" yaml:"forks"`
	OpenIssues    int       `json:"open_issues" yaml:"open_issues"`
	PushedAt      time.Time `json:"pushed_at" yaml:"pushed_at"`
}

// Report is a snapshot of a repository's state.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Path      string `json:"path" yaml:"path"`
	RemoteURL string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`

	Branch      string `json:"branch" yaml:"branch"`
	Ahead       int    `json:"ahead" yaml:"ahead"`
	Behind      int    `json:"behind" yaml:"behind"`
	HasUpstream bool   `json:"has_upstream" yaml:"has_upstream"`

	Dirty     bool     `json:"dirty" yaml:"dirty"`
	Modified  []string `json:"modified_files" yaml:"modified_files"`
	Untracked []string `json:"untracked_files" yaml:"untracked_files"`

	TotalCommits int              `json:"total_commits" yaml:"total_commits"`
	LastCommit   git.CommitInfo   `json:"last_commit" yaml:"last_commit"`
	Branches     []git.BranchInfo `json:"branches" yaml:"branches"`
	Commits      []git.CommitInfo `json:"recent_commits" yaml:"recent_commits"`

	Remote *RemoteInfo `json:"github,omitempty" yaml:"github,omitempty"`
}

// Collector builds reports from a git manager and, when configured, the
// GitHub API.
type Collector struct {
	git *git.Manager
	api *github.Client
	cfg config.Config
}

// NewCollector creates a Collector. api may be nil to skip the remote
// metadata section entirely.
func NewCollector(gm *git.Manager, api *github.Client, cfg config.Config) *Collector {
	return &Collector{git: gm, api: api, cfg: cfg}
}

// Collect runs the read-only query battery and assembles a Report.
func (c *Collector) Collect(ctx context.Context, historyLimit int) (*Report, error) {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Path:        c.git.Path(),
	}

	branch, err := c.git.CurrentBranch()
	if err != nil {
		return nil, err
	}
	report.Branch = branch

	report.RemoteURL, err = c.git.RemoteURL("origin")
	if err != nil {
		return nil, err
	}

	report.Ahead, report.Behind, report.HasUpstream, err = c.git.AheadBehind(ctx)
	if err != nil {
		return nil, err
	}

	report.Modified, report.Untracked, err = c.git.WorkingTreeChanges()
	if err != nil {
		return nil, err
	}
	report.Dirty = len(report.Modified)+len(report.Untracked) > 0

	report.TotalCommits, err = c.git.TotalCommits(ctx)
	if err != nil {
		return nil, err
	}

	report.LastCommit, err = c.git.LastCommit()
	if err != nil {
		return nil, err
	}

	report.Branches, err = c.git.Branches()
	if err != nil {
		return nil, err
	}

	report.Commits, err = c.git.RecentCommits(historyLimit)
	if err != nil {
		return nil, err
	}

	report.Remote = c.remoteInfo(ctx, report.RemoteURL)
	return report, nil
}

// remoteInfo fetches the GitHub metadata section. Failures degrade to a
// warning: monitoring has to work offline.
func (c *Collector) remoteInfo(ctx context.Context, remoteURL string) *RemoteInfo {
	if c.api == nil {
		return nil
	}

	owner, repo := c.cfg.Username, c.cfg.Repo
	if remoteURL != "" {
		if o, r, err := git.SplitOwnerRepo(remoteURL); err == nil {
			owner, repo = o, r
		}
	}
	if owner == "" || repo == "" {
		return nil
	}

	meta, err := c.api.GetRepository(ctx, owner, repo)
	if err != nil {
		logger.WithError(err).Warn("skipping GitHub metadata section")
		return nil
	}
	return &RemoteInfo{
		FullName:      meta.FullName,
		Description:   meta.Description,
		DefaultBranch: meta.DefaultBranch,
		Private:       meta.Private,
		Stargazers:    meta.Stargazers,
		Forks:         meta.Forks,
		OpenIssues:    meta.OpenIssues,
		PushedAt:      meta.PushedAt,
	}
}
