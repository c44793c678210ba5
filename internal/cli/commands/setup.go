package commands

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ghup/internal/cli/ui"
	"ghup/internal/config"
	"ghup/internal/errors"
	"ghup/internal/latex"
	"ghup/internal/runner"
)

// NewSetupCommand creates the setup command: check the external tools and
// write a fresh settings file. It deliberately does not load the existing
// configuration, so it works on a machine with nothing set up yet.
func NewSetupCommand(envPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Check external tools and create the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			run := runner.New()
			ctx := cmd.Context()

			ui.Section("Tools")
			checkTool(ctx, run, "git")
			checkTool(ctx, run, latex.DefaultTool)

			path := envPath()
			if path == "" {
				path = config.DefaultEnvFile
			}

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil {
				if !confirm(in, out, "Settings file "+path+" exists, overwrite?") {
					ui.Info("Keeping the existing settings file")
					return nil
				}
			}

			ui.Section("Settings")
			username, err := prompt(in, out, "GitHub username")
			if err != nil {
				return err
			}
			token, err := prompt(in, out, "GitHub token")
			if err != nil {
				return err
			}
			repo, err := prompt(in, out, "GitHub repository (owner/name or name)")
			if err != nil {
				return err
			}
			wd, _ := os.Getwd()
			localPath, err := promptDefault(in, out, "Local repository path", wd)
			if err != nil {
				return err
			}
			message, err := promptDefault(in, out, "Default commit message", config.DefaultCommitMessage)
			if err != nil {
				return err
			}

			if username == "" || token == "" || repo == "" {
				return errors.New(errors.ErrInvalidInput,
					"username, token and repository must not be empty")
			}

			values := map[string]string{
				config.KeyUsername:      username,
				config.KeyToken:         token,
				config.KeyRepo:          repo,
				config.KeyLocalPath:     localPath,
				config.KeyCommitMessage: message,
			}
			content, err := godotenv.Marshal(values)
			if err != nil {
				return errors.Wrap(errors.ErrConfigParse, "failed to encode settings", err)
			}
			// The file holds a credential; it must never exist with
			// group/other access, so it is created 0600 rather than
			// tightened afterwards.
			if err := os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
				return errors.Wrap(errors.ErrConfigParse, "failed to write settings file", err)
			}
			// WriteFile keeps the mode of a pre-existing file.
			if err := os.Chmod(path, 0o600); err != nil {
				return errors.Wrap(errors.ErrConfigParse, "failed to restrict settings file permissions", err)
			}

			ui.Success("Wrote %s", path)
			return nil
		},
	}
}

// checkTool probes an external tool and reports the result. Setup keeps
// going on a missing tool so the user sees the whole picture at once.
func checkTool(ctx context.Context, run *runner.Runner, name string) {
	res, err := run.Run(ctx, runner.Command{Name: name, Args: []string{"--version"}})
	if err != nil {
		if errors.HasCode(err, errors.ErrToolMissing) {
			ui.Warning("%s: not found on PATH", name)
		} else {
			ui.Warning("%s: %v", name, err)
		}
		return
	}
	ui.Success("%s: %s", name, firstLine(res.Stdout))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
