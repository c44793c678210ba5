package status_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ghup/internal/errors"
	"ghup/internal/git"
	"ghup/internal/status"
)

func sampleReport() *status.Report {
	return &status.Report{
		ID:          "report-1",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Path:        "/tmp/hello",
		Branch:      "main",
		LastCommit:  git.CommitInfo{Hash: "0123456", Subject: "initial commit"},
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	data, err := status.MarshalJSON(sampleReport())
	require.NoError(t, err)

	var decoded status.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "report-1", decoded.ID)
	assert.Equal(t, "main", decoded.Branch)
	assert.Equal(t, "initial commit", decoded.LastCommit.Subject)
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	data, err := status.MarshalYAML(sampleReport())
	require.NoError(t, err)

	var decoded status.Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "report-1", decoded.ID)
	assert.Equal(t, "0123456", decoded.LastCommit.Hash)
}

func TestExportByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, status.Export(sampleReport(), jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "report-1"`)

	yamlPath := filepath.Join(dir, "report.yml")
	require.NoError(t, status.Export(sampleReport(), yamlPath))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id: report-1")
}

func TestExportUnsupportedExtension(t *testing.T) {
	err := status.Export(sampleReport(), filepath.Join(t.TempDir(), "report.xml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrExportFailed))
}
