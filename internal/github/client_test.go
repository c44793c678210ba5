package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghup/internal/errors"
)

func TestGetRepository(t *testing.T) {
	var gotPath, gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "hello",
			"full_name": "octocat/hello",
			"description": "Example repo",
			"default_branch": "main",
			"private": true,
			"stargazers_count": 42,
			"forks_count": 7,
			"open_issues_count": 3
		}`))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "ghp_secret")
	repo, err := client.GetRepository(context.Background(), "octocat", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/hello", gotPath)
	assert.Equal(t, "Bearer ghp_secret", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
	assert.Equal(t, "hello", repo.Name)
	assert.Equal(t, "octocat/hello", repo.FullName)
	assert.Equal(t, "main", repo.DefaultBranch)
	assert.True(t, repo.Private)
	assert.Equal(t, 42, repo.Stargazers)
}

func TestGetRepositoryWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"name": "hello"}`))
	}))
	defer server.Close()

	_, err := NewWithBaseURL(server.URL, "").GetRepository(context.Background(), "octocat", "hello")
	require.NoError(t, err)
}

func TestGetRepositoryNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "ghp_secret")
	_, err := client.GetRepository(context.Background(), "octocat", "nope")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAPICall))
	assert.Contains(t, err.Error(), "404")
}

func TestGetRepositoryBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL, "ghp_secret")
	_, err := client.GetRepository(context.Background(), "octocat", "hello")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAPICall))
}
