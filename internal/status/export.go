package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ghup/internal/errors"
)

// MarshalJSON renders the report as indented JSON for machine consumption.
func MarshalJSON(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrExportFailed, "failed to encode report as JSON", err)
	}
	return append(data, '\n'), nil
}

// MarshalYAML renders the report as YAML.
func MarshalYAML(r *Report) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrExportFailed, "failed to encode report as YAML", err)
	}
	return data, nil
}

// Export writes the report to path, choosing the encoding from the file
// extension (.json, .yaml/.yml).
func Export(r *Report, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = MarshalJSON(r)
	case ".yaml", ".yml":
		data, err = MarshalYAML(r)
	default:
		return errors.NewWithDetails(errors.ErrExportFailed,
			"unsupported export format",
			fmt.Sprintf("%s: expected a .json, .yaml, or .yml extension", path))
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrExportFailed,
			fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
