package cli

import (
	"github.com/spf13/cobra"

	"ghup/internal/config"
	"ghup/internal/logger"
)

// createRootCommand creates the root command with global flags.
func createRootCommand() *cobra.Command {
	var (
		envPath string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "ghup",
		Short: "Git and GitHub automation for a single repository",
		Long: `ghup automates the everyday git workflow of one repository: staging,
committing, tagging and pushing in one command, an interactive menu for
individual operations, a read-only status report, and a LaTeX docs
build-and-push. Credentials and the repository location come from a
KEY=VALUE settings file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envPath, "env", config.DefaultEnvFile, "path to the settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return rootCmd
}
