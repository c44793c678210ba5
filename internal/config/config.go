// Package config loads the ghup credential file (.env) and the optional
// per-repository project file (ghup.toml).
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"ghup/internal/errors"
)

// Required .env keys. COMMIT_MESSAGE is optional and defaults to
// DefaultCommitMessage.
const (
	KeyUsername      = "GITHUB_USERNAME"
	KeyToken         = "GITHUB_TOKEN"
	KeyRepo          = "GITHUB_REPO"
	KeyLocalPath     = "LOCAL_REPO_PATH"
	KeyCommitMessage = "COMMIT_MESSAGE"
)

// DefaultCommitMessage is used when COMMIT_MESSAGE is not set and no
// message is supplied on the command line.
const DefaultCommitMessage = "Update documentation"

// DefaultEnvFile is the settings file ghup reads when no path is given.
const DefaultEnvFile = ".env"

// Config holds the credentials and defaults loaded from the settings file.
// It is constructed once per run and passed by value; nothing mutates it
// after Load returns.
type Config struct {
	Username      string
	Token         string
	Repo          string
	LocalPath     string
	CommitMessage string
}

// String renders the configuration with the token redacted. The token must
// never appear in logs or reports.
func (c Config) String() string {
	return fmt.Sprintf("Config{Username: %s, Token: <redacted>, Repo: %s, LocalPath: %s, CommitMessage: %q}",
		c.Username, c.Repo, c.LocalPath, c.CommitMessage)
}

// Load reads a line-oriented KEY=VALUE settings file and validates that all
// required keys are present. It has no side effects beyond reading the file;
// in particular it does not modify the process environment.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, errors.NewWithDetails(errors.ErrConfigNotFound,
			"settings file not found",
			fmt.Sprintf("%s does not exist; run 'ghup setup' to create it", path))
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrConfigParse,
			fmt.Sprintf("failed to parse settings file %s", path), err)
	}

	cfg := Config{
		Username:      values[KeyUsername],
		Token:         values[KeyToken],
		Repo:          values[KeyRepo],
		LocalPath:     values[KeyLocalPath],
		CommitMessage: values[KeyCommitMessage],
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = DefaultCommitMessage
	}

	if missing := cfg.missingKeys(); len(missing) > 0 {
		return Config{}, errors.NewWithDetails(errors.ErrConfigMissingKeys,
			"settings file is incomplete",
			fmt.Sprintf("missing required keys: %s", strings.Join(missing, ", ")))
	}

	return cfg, nil
}

// missingKeys returns the required keys that are absent or empty, sorted for
// stable error messages.
func (c Config) missingKeys() []string {
	var missing []string
	for key, value := range map[string]string{
		KeyUsername:  c.Username,
		KeyToken:     c.Token,
		KeyRepo:      c.Repo,
		KeyLocalPath: c.LocalPath,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
