package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghup/internal/cli/ui"
	"ghup/internal/status"
)

// NewMonitorCommand creates the monitor command: a read-only snapshot of
// the repository, printed as text or exported as JSON/YAML.
func NewMonitorCommand(envPath func() string) *cobra.Command {
	var (
		asJSON     bool
		asYAML     bool
		exportPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show a read-only status report of the repository",
		Long: `Collects the current branch, upstream divergence, working tree changes,
branches, recent commits and GitHub metadata into a single report.
The report never mutates the repository, so running it twice in a row
yields the same state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := OpenSession(envPath())
			if err != nil {
				return err
			}

			collector := status.NewCollector(session.Git, session.API, session.Config)
			report, err := collector.Collect(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := status.Export(report, exportPath); err != nil {
					return err
				}
				ui.Success("Report written to %s", exportPath)
				return nil
			}

			switch {
			case asJSON:
				data, err := status.MarshalJSON(report)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			case asYAML:
				data, err := status.MarshalYAML(report)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			default:
				fmt.Fprint(cmd.OutOrStdout(), ui.RenderReport(report))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the report as YAML")
	cmd.Flags().StringVarP(&exportPath, "export", "o", "", "write the report to a .json/.yaml file")
	cmd.Flags().IntVarP(&limit, "limit", "n", status.DefaultHistoryLimit, "number of recent commits to include")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml", "export")

	return cmd
}
