package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ghup/internal/config"
	"ghup/internal/git"
	"ghup/internal/github"
	"ghup/internal/logger"
	"ghup/internal/runner"
)

// Session bundles the managers a command needs once the settings file
// has been loaded. Commands build it lazily inside RunE so that
// commands which do not need credentials (setup, help) still work
// without a settings file.
type Session struct {
	Config  config.Config
	Project config.Project
	Runner  *runner.Runner
	Git     *git.Manager
	API     *github.Client
}

// OpenSession loads the settings file and wires up the managers.
func OpenSession(envPath string) (*Session, error) {
	cfg, err := config.Load(envPath)
	if err != nil {
		return nil, err
	}

	project, err := config.LoadProject(cfg.LocalPath)
	if err != nil {
		return nil, err
	}

	run := runner.New()
	logger.WithField("repo", cfg.LocalPath).Debug("session opened")

	return &Session{
		Config:  cfg,
		Project: project,
		Runner:  run,
		Git:     git.New(cfg.LocalPath, run),
		API:     github.New(cfg.Token),
	}, nil
}

// prompt writes a label and reads a single trimmed line from r.
func prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptDefault reads a line and falls back to def when the input is empty.
func promptDefault(r *bufio.Reader, w io.Writer, label, def string) (string, error) {
	fmt.Fprintf(w, "%s [%s]: ", label, def)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// confirm asks a yes/no question; anything but y/yes counts as no.
func confirm(r *bufio.Reader, w io.Writer, label string) bool {
	answer, err := prompt(r, w, label+" (y/N)")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
