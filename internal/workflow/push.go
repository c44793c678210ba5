package workflow

import (
	"context"
	"fmt"

	"ghup/internal/config"
	"ghup/internal/errors"
	"ghup/internal/git"
)

// PushOptions are the per-run knobs of the push workflow.
type PushOptions struct {
	// Message overrides the configured default commit message.
	Message string
	// Tag, when set, creates an annotated tag after the commit and pushes
	// it alongside the branch.
	Tag string
	// Patterns overrides the configured staging patterns.
	Patterns []string
}

// PushSummary reports what a push run did.
type PushSummary struct {
	CleanTree  bool
	Staged     []string
	CommitHash string
	Branch     string
	Tag        string
	Pushed     bool
}

// Pusher runs the stage→commit→tag→push workflow.
type Pusher struct {
	cfg     config.Config
	project config.Project
	git     *git.Manager
}

// NewPusher creates a Pusher for the configured working tree.
func NewPusher(cfg config.Config, project config.Project, gm *git.Manager) *Pusher {
	return &Pusher{cfg: cfg, project: project, git: gm}
}

// Run executes the push workflow. A clean tree terminates successfully with
// CleanTree set (unless the project policy says otherwise); every other
// outcome either pushed or returned the first failing step's error. Steps
// that already ran are not rolled back.
func (p *Pusher) Run(ctx context.Context, opts PushOptions) (*PushSummary, error) {
	summary := &PushSummary{}

	if !p.git.IsRepository() {
		return nil, errors.NewWithDetails(errors.ErrGitRepoNotFound,
			"not a git repository", p.git.Path())
	}

	lock, err := lockTree(p.git.Path())
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = p.project.Push.Patterns
	}
	message := opts.Message
	if message == "" {
		message = p.cfg.CommitMessage
	}

	log := newRun("push")
	steps := []Step{
		{Name: "stage", Run: func(ctx context.Context) error {
			return p.git.StageByPatterns(ctx, patterns)
		}},
		{Name: "check staged", Run: func(ctx context.Context) error {
			staged, err := p.git.StagedFiles(ctx)
			if err != nil {
				return err
			}
			summary.Staged = staged
			if len(staged) == 0 {
				summary.CleanTree = true
			}
			return nil
		}},
	}
	if err := run(ctx, log, steps); err != nil {
		return nil, err
	}

	if summary.CleanTree {
		if p.project.Push.OnClean == config.PolicyFail {
			return nil, errors.New(errors.ErrNothingToCommit,
				"nothing to commit and push.on_clean is \"fail\"")
		}
		return summary, nil
	}

	steps = []Step{
		{Name: "commit", Run: func(ctx context.Context) error {
			hash, err := p.git.Commit(ctx, message)
			if err != nil {
				return err
			}
			summary.CommitHash = hash
			return nil
		}},
		{Name: "tag", Run: func(ctx context.Context) error {
			if opts.Tag == "" {
				return nil
			}
			tagMessage := p.project.Tag.MessagePrefix + opts.Tag
			if err := p.git.CreateAnnotatedTag(ctx, opts.Tag, tagMessage); err != nil {
				return err
			}
			summary.Tag = opts.Tag
			return nil
		}},
		{Name: "push", Run: func(ctx context.Context) error {
			branch := p.project.Push.Branch
			if branch == "" {
				current, err := p.git.CurrentBranch()
				if err != nil {
					return err
				}
				branch = current
			}
			summary.Branch = branch

			refspecs := []string{branch}
			if summary.Tag != "" {
				refspecs = append(refspecs, fmt.Sprintf("refs/tags/%s", summary.Tag))
			}
			target := p.git.PushTarget(p.project.Push.Remote, p.cfg.Username, p.cfg.Token)
			if err := p.git.Push(ctx, target, refspecs...); err != nil {
				return err
			}
			summary.Pushed = true
			return nil
		}},
	}
	if err := run(ctx, log, steps); err != nil {
		return summary, err
	}
	return summary, nil
}
