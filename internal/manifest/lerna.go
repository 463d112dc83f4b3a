package manifest

import "github.com/conneroisu/webpulse/internal/types"

// Lerna is the content of a lerna.json.
type Lerna struct {
	Version             string
	Packages            []string
	NpmClient           string
	UseWorkspaces       bool
	ConventionalCommits bool
	CreateRelease       bool
	Hoist               bool
}

// VersionStrategy returns "independent" for independently versioned
// repositories and "fixed" otherwise.
func (l *Lerna) VersionStrategy() string {
	if l.Version == types.VersionIndependent {
		return types.VersionIndependent
	}
	return types.VersionFixed
}

// ParseLerna decodes a lerna.json.
func ParseLerna(content string) (*Lerna, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}

	publish := path(root, "command", "publish")
	lerna := &Lerna{
		Version:             stringValue(root, "version"),
		NpmClient:           stringValue(root, "npmClient"),
		UseWorkspaces:       boolValue(root, "useWorkspaces"),
		ConventionalCommits: boolValue(publish, "conventionalCommits"),
		CreateRelease:       lookup(publish, "createRelease") != nil,
		Hoist:               boolValue(path(root, "command", "bootstrap"), "hoist"),
	}
	for _, glob := range stringList(lookup(root, "packages")) {
		lerna.Packages = types.AppendCapped(lerna.Packages, types.MaxWorkspaceGlobs, glob)
	}

	return lerna, nil
}
