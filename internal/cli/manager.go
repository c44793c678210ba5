package cli

import (
	"context"

	"github.com/spf13/cobra"

	"ghup/internal/cli/commands"
	"ghup/internal/config"
)

// Manager owns the command tree and executes it.
type Manager struct {
	rootCmd *cobra.Command
}

// New creates a CLI manager with all commands registered.
func New() *Manager {
	m := &Manager{rootCmd: createRootCommand()}
	m.setupCommands()
	return m
}

// Execute executes the CLI with the given arguments.
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context.
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands registers all subcommands. They share the --env flag and
// load their configuration lazily inside RunE, after flags are parsed.
func (m *Manager) setupCommands() {
	envPath := func() string {
		path, err := m.rootCmd.PersistentFlags().GetString("env")
		if err != nil || path == "" {
			return config.DefaultEnvFile
		}
		return path
	}

	m.rootCmd.AddCommand(
		commands.NewPushCommand(envPath),
		commands.NewManageCommand(envPath),
		commands.NewMonitorCommand(envPath),
		commands.NewDocsCommand(envPath),
		commands.NewSetupCommand(envPath),
	)
}
