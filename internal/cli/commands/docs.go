package commands

import (
	"github.com/spf13/cobra"

	"ghup/internal/cli/ui"
	"ghup/internal/latex"
	"ghup/internal/workflow"
)

// NewDocsCommand creates the docs command: compile the LaTeX sources in
// the configured docs directory and push the resulting PDFs.
func NewDocsCommand(envPath func() string) *cobra.Command {
	var (
		noPush bool
		tool   string
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Build LaTeX documentation and push the PDFs",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := OpenSession(envPath())
			if err != nil {
				return err
			}

			builder := latex.NewBuilderWithTool(session.Runner, tool)
			pusher := workflow.NewPusher(session.Config, session.Project, session.Git)
			docs := workflow.NewDocsPusher(session.Project, builder, pusher, session.Config.LocalPath)

			summary, err := docs.Run(cmd.Context(), workflow.DocsOptions{Push: !noPush})
			if err != nil {
				return err
			}

			for _, artifact := range summary.Artifacts {
				ui.Success("Built %s (%d bytes)", artifact.Path, artifact.Size)
			}
			if summary.Push != nil {
				if summary.Push.CleanTree {
					ui.Info("PDFs unchanged, nothing to push")
				} else {
					ui.Success("Pushed %s", summary.Push.Branch)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPush, "no-push", false, "build the PDFs without committing or pushing them")
	cmd.Flags().StringVar(&tool, "tool", latex.DefaultTool, "LaTeX compiler to use")

	return cmd
}
