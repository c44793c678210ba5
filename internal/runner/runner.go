// Package runner executes external tools synchronously, capturing their
// streams and exit status. Every mutation ghup performs on a repository
// ultimately goes through a Runner, so the failure taxonomy for external
// processes lives here.
package runner

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"ghup/internal/errors"
	"ghup/internal/logger"
)

// DefaultTimeout bounds a single external invocation when the caller does
// not set one.
const DefaultTimeout = 60 * time.Second

// Command describes one external invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
	// Env entries are appended to the inherited environment.
	Env []string
}

// Result captures what an external tool did.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
}

// Runner runs external commands.
type Runner struct {
	defaultTimeout time.Duration
}

// credentialPattern matches userinfo embedded in https URLs. Push targets
// can carry the access token that way, and arguments get logged.
var credentialPattern = regexp.MustCompile(`https://[^@/\s]+@`)

// redactArgs joins the arguments for logging with any embedded URL
// credential stripped.
func redactArgs(args []string) string {
	return credentialPattern.ReplaceAllString(strings.Join(args, " "), "https://<redacted>@")
}

// New creates a Runner with the default per-command timeout.
func New() *Runner {
	return &Runner{defaultTimeout: DefaultTimeout}
}

// NewWithTimeout creates a Runner whose commands default to the given timeout.
func NewWithTimeout(timeout time.Duration) *Runner {
	return &Runner{defaultTimeout: timeout}
}

// Run executes the command synchronously and returns its Result. The Result
// is populated even when an error is returned, so callers can surface the
// captured stderr. Errors carry one of the ErrToolMissing, ErrToolFailed,
// or ErrToolTimedOut codes with the tool name in context.
func (r *Runner) Run(ctx context.Context, cmd Command) (Result, error) {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	proc.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		proc.Env = append(proc.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	start := time.Now()
	err := proc.Run()
	result := Result{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Elapsed:  time.Since(start),
	}
	if proc.ProcessState != nil {
		result.ExitCode = proc.ProcessState.ExitCode()
	}

	logger.WithFields(logger.Fields{
		"tool":    cmd.Name,
		"args":    redactArgs(cmd.Args),
		"exit":    result.ExitCode,
		"elapsed": result.Elapsed.String(),
	}).Debug("external command finished")

	if err == nil {
		return result, nil
	}

	switch {
	case goerrors.Is(err, exec.ErrNotFound):
		return result, errors.Wrap(errors.ErrToolMissing,
			fmt.Sprintf("%s not found in PATH", cmd.Name), err).
			WithContext("tool", cmd.Name)
	case ctx.Err() == context.DeadlineExceeded:
		return result, errors.NewWithDetails(errors.ErrToolTimedOut,
			fmt.Sprintf("%s timed out after %s", cmd.Name, timeout),
			strings.TrimSpace(result.Stderr)).
			WithContext("tool", cmd.Name)
	default:
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			return result, errors.NewWithDetails(errors.ErrToolFailed,
				fmt.Sprintf("%s exited with status %d", cmd.Name, result.ExitCode),
				strings.TrimSpace(result.Stderr)).
				WithContext("tool", cmd.Name).
				WithContext("exit_code", result.ExitCode).
				WithCause(err)
		}
		return result, errors.Wrap(errors.ErrToolFailed,
			fmt.Sprintf("failed to run %s", cmd.Name), err).
			WithContext("tool", cmd.Name)
	}
}
