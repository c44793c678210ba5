package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"ghup/internal/errors"
)

// ProjectFile is the optional per-repository configuration file, looked up
// in the root of the working tree.
const ProjectFile = "ghup.toml"

// Clean-tree policies for the push workflow. With PolicySucceed a run that
// stages nothing terminates successfully; with PolicyFail it is an error.
const (
	PolicySucceed = "succeed"
	PolicyFail    = "fail"
)

// Project holds repository-level settings. Credentials never live here;
// ghup.toml is committed alongside the code it configures.
type Project struct {
	Push struct {
		Patterns []string `toml:"patterns"`
		Remote   string   `toml:"remote"`
		Branch   string   `toml:"branch"`
		OnClean  string   `toml:"on_clean"`
	} `toml:"push"`
	Docs struct {
		Directory string `toml:"directory"`
	} `toml:"docs"`
	Tag struct {
		MessagePrefix string `toml:"message_prefix"`
	} `toml:"tag"`
}

// DefaultProject returns the settings used when no ghup.toml exists: stage
// everything, push to origin on the current branch, clean tree is success.
func DefaultProject() Project {
	var p Project
	p.Push.Patterns = []string{"."}
	p.Push.Remote = "origin"
	p.Push.OnClean = PolicySucceed
	p.Docs.Directory = "docs"
	p.Tag.MessagePrefix = "Release "
	return p
}

// LoadProject reads ghup.toml from the repository root, returning defaults
// when the file is absent. A present but unparsable file is an error.
func LoadProject(repoPath string) (Project, error) {
	path := filepath.Join(repoPath, ProjectFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultProject(), nil
	}
	if err != nil {
		return Project{}, errors.Wrap(errors.ErrConfigParse,
			fmt.Sprintf("failed to read %s", path), err)
	}

	p := DefaultProject()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Project{}, errors.Wrap(errors.ErrConfigParse,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	if len(p.Push.Patterns) == 0 {
		p.Push.Patterns = []string{"."}
	}
	if p.Push.Remote == "" {
		p.Push.Remote = "origin"
	}
	switch p.Push.OnClean {
	case PolicySucceed, PolicyFail:
	case "":
		p.Push.OnClean = PolicySucceed
	default:
		return Project{}, errors.NewWithDetails(errors.ErrConfigParse,
			"invalid push.on_clean value",
			fmt.Sprintf("%q is not one of %q, %q", p.Push.OnClean, PolicySucceed, PolicyFail))
	}

	return p, nil
}
