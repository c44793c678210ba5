// Package workflow runs the fixed step sequences behind ghup's commands.
// A workflow is a linear list of named steps executed with
// abort-on-first-failure semantics; there is no rollback of steps that
// already ran.
package workflow

import (
	"context"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"ghup/internal/errors"
	"ghup/internal/logger"
)

// Step is one named unit of work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// newRun creates the log entry for one workflow run. The correlation id is
// generated once here so every step of a run, however it is batched, logs
// under the same id.
func newRun(name string) *logrus.Entry {
	return logger.WithFields(logger.Fields{
		"workflow": name,
		"run_id":   xid.New().String(),
	})
}

// run executes the steps in order, stopping at the first failure.
func run(ctx context.Context, log *logrus.Entry, steps []Step) error {
	for _, step := range steps {
		log.WithField("step", step.Name).Debug("running step")
		if err := step.Run(ctx); err != nil {
			log.WithFields(logger.Fields{"step": step.Name, "error": err}).
				Debug("step failed, aborting workflow")
			return err
		}
	}
	return nil
}

// lockTree takes an exclusive file lock scoped to the working tree for the
// duration of a mutating workflow. Concurrent git operations on one tree
// are unsafe, so exactly one ghup process mutates a tree at a time.
func lockTree(repoPath string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(repoPath, ".git", "ghup.lock"))
	if err := lock.Lock(); err != nil {
		return nil, errors.Wrap(errors.ErrGitRepoNotFound,
			"failed to lock working tree", err)
	}
	return lock, nil
}
