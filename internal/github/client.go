// Package github is a minimal client for the GitHub REST API. ghup only
// reads repository metadata; everything that mutates a repository goes
// through git itself.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ghup/internal/errors"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client represents the HTTP client for the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client against the public API.
func New(token string) *Client {
	return NewWithBaseURL(DefaultBaseURL, token)
}

// NewWithBaseURL creates a client against a custom endpoint (GitHub
// Enterprise, or a test server).
func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Repository is the subset of repository metadata the monitor reports.
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	DefaultBranch string    `json:"default_branch"`
	Private       bool      `json:"private"`
	Stargazers    int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	OpenIssues    int       `json:"open_issues_count"`
	PushedAt      time.Time `json:"pushed_at"`
}

// GetRepository fetches metadata for owner/repo.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var repository Repository
	if err := json.NewDecoder(resp.Body).Decode(&repository); err != nil {
		return nil, errors.Wrap(errors.ErrAPICall, "failed to decode repository response", err)
	}
	return &repository, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrAPICall, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrAPICall, "request failed", err)
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, errors.NewWithDetails(errors.ErrAPICall,
			fmt.Sprintf("GitHub API returned status %d", resp.StatusCode),
			string(body))
	}
	return resp, nil
}
