package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"ghup/internal/cli/ui"
	"ghup/internal/workflow"
)

// NewPushCommand creates the push command: stage, commit, optionally tag,
// and push in one shot.
func NewPushCommand(envPath func() string) *cobra.Command {
	var (
		message  string
		tag      string
		patterns []string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Stage, commit and push the configured repository",
		Long: `Stages the configured file patterns, commits them with the configured
(or given) message, optionally creates an annotated tag, and pushes the
branch (and tag) to the remote. A clean working tree is a successful
no-op unless the project configuration says otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := OpenSession(envPath())
			if err != nil {
				return err
			}

			pusher := workflow.NewPusher(session.Config, session.Project, session.Git)
			summary, err := pusher.Run(cmd.Context(), workflow.PushOptions{
				Message:  message,
				Tag:      tag,
				Patterns: patterns,
			})
			if err != nil {
				return err
			}

			printPushSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message (overrides the configured default)")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "create and push an annotated tag")
	cmd.Flags().StringSliceVarP(&patterns, "pattern", "p", nil, "file patterns to stage (overrides the configured patterns)")

	return cmd
}

func printPushSummary(summary *workflow.PushSummary) {
	if summary.CleanTree {
		ui.Info("Working tree clean, nothing to push")
		return
	}
	ui.Success("Committed %s (%d file(s): %s)", summary.CommitHash,
		len(summary.Staged), strings.Join(summary.Staged, ", "))
	if summary.Tag != "" {
		ui.Success("Tagged %s", summary.Tag)
	}
	if summary.Pushed {
		ui.Success("Pushed %s", summary.Branch)
	}
}
