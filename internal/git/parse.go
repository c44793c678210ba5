package git

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"ghup/internal/errors"
)

// This file holds every translation from git's text output into structured
// values, so the brittle format coupling stays in one place.

// parseLines splits tool output into trimmed, non-empty lines.
func parseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseAheadBehind parses `git rev-list --left-right --count HEAD...@{upstream}`
// output: two tab-separated counts, ahead first.
func parseAheadBehind(out string) (ahead, behind int, err error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) != 2 {
		return 0, 0, errors.NewWithDetails(errors.ErrToolFailed,
			"unexpected rev-list output", strings.TrimSpace(out))
	}
	ahead, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrToolFailed, "unexpected rev-list output", err)
	}
	behind, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrToolFailed, "unexpected rev-list output", err)
	}
	return ahead, behind, nil
}

// parseCount parses a single decimal count such as `git rev-list --count HEAD`.
func parseCount(out string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, errors.Wrap(errors.ErrToolFailed, "unexpected count output", err)
	}
	return n, nil
}

// shortHash abbreviates a full object hash for display.
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// firstLine returns the subject line of a commit message.
func firstLine(message string) string {
	message = strings.TrimSpace(message)
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return strings.TrimSpace(message[:i])
	}
	return message
}

// AuthenticatedRemote rewrites an https remote URL to embed the username and
// token, so pushes authenticate without a credential helper. Non-https
// remotes (ssh, local paths) are returned unchanged with ok=false; they
// authenticate through their own channels.
func AuthenticatedRemote(remoteURL, username, token string) (string, bool) {
	if username == "" || token == "" {
		return remoteURL, false
	}
	u, err := url.Parse(remoteURL)
	if err != nil || u.Scheme != "https" {
		return remoteURL, false
	}
	u.User = url.UserPassword(username, token)
	return u.String(), true
}

// SplitOwnerRepo extracts "owner" and "repo" from a GitHub remote URL,
// accepting both https and ssh forms.
func SplitOwnerRepo(remoteURL string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(remoteURL, ".git")

	var path string
	switch {
	case strings.HasPrefix(trimmed, "git@"):
		if _, after, found := strings.Cut(trimmed, ":"); found {
			path = after
		}
	default:
		u, perr := url.Parse(trimmed)
		if perr != nil {
			return "", "", errors.Wrap(errors.ErrInvalidInput,
				fmt.Sprintf("cannot parse remote URL %q", remoteURL), perr)
		}
		path = strings.TrimPrefix(u.Path, "/")
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.NewWithDetails(errors.ErrInvalidInput,
			"remote URL does not look like owner/repo", remoteURL)
	}
	return parts[0], parts[1], nil
}
