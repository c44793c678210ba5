package commands

import (
	"fmt"
	"os"

	"ghup/internal/errors"
	"ghup/internal/logger"
)

// ExitCode maps an error to the process exit status. Git failures get
// their own code so scripts can distinguish a broken repository from an
// ordinary application error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.HasCode(err, errors.ErrToolFailed) {
		if tool, ok := errors.GetContext(err, "tool"); ok && tool == "git" {
			return 2
		}
	}
	return 1
}

// HandleError prints an error with a hint where one helps, then returns
// the exit code the process should use.
func HandleError(err error) int {
	if err == nil {
		return 0
	}

	logger.WithError(err).Debug("command failed")
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	switch {
	case errors.HasCode(err, errors.ErrConfigNotFound):
		fmt.Fprintln(os.Stderr, "\nTip: run 'ghup setup' to create a settings file.")
	case errors.HasCode(err, errors.ErrConfigMissingKeys):
		fmt.Fprintln(os.Stderr, "\nTip: run 'ghup setup' to fill in the missing values.")
	case errors.HasCode(err, errors.ErrToolMissing):
		fmt.Fprintln(os.Stderr, "\nTip: check that the tool is installed and on your PATH.")
	case errors.HasCode(err, errors.ErrTagExists):
		fmt.Fprintln(os.Stderr, "\nTip: pick a new tag name or delete the existing one first.")
	}

	return ExitCode(err)
}
