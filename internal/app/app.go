package app

import (
	"context"

	"ghup/internal/cli"
)

// App represents the main application.
type App struct {
	CLI *cli.Manager
}

// New creates a new application instance.
func New() *App {
	return &App{CLI: cli.New()}
}

// Run executes the CLI with the given arguments.
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext executes the CLI with a context for cancellation.
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	return a.CLI.ExecuteWithContext(ctx, args)
}
