package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/webpulse/internal/types"
)

type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// ParsePnpmWorkspace returns the package globs of a pnpm-workspace.yaml.
func ParsePnpmWorkspace(content string) ([]string, error) {
	var workspace pnpmWorkspace
	if err := yaml.Unmarshal([]byte(content), &workspace); err != nil {
		return nil, err
	}

	var globs []string
	for _, glob := range workspace.Packages {
		if glob != "" {
			globs = types.AppendCapped(globs, types.MaxWorkspaceGlobs, glob)
		}
	}
	return globs, nil
}
