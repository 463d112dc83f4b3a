package manifest

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

// RushProject is one entry of the rush.json projects array.
type RushProject struct {
	PackageName       string
	ProjectFolder     string
	VersionPolicyName string
}

// Rush is the content of a rush.json.
type Rush struct {
	RushVersion       string
	Projects          []RushProject
	VersionPolicy     string
	BuildCacheEnabled bool
	CacheFolder       string
}

// VersionStrategy returns "fixed" when the first version policy is a
// lock-step policy, "independent" for any other policy and "" when no
// project names one.
func (r *Rush) VersionStrategy() string {
	switch {
	case r.VersionPolicy == "":
		return ""
	case strings.HasPrefix(r.VersionPolicy, "lock-step"):
		return types.VersionFixed
	default:
		return types.VersionIndependent
	}
}

// ParseRush decodes a rush.json.
func ParseRush(content string) (*Rush, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}

	rush := &Rush{RushVersion: stringValue(root, "rushVersion")}
	if projects := lookup(root, "projects"); projects != nil {
		for _, item := range projects.Content {
			project := RushProject{
				PackageName:       stringValue(item, "packageName"),
				ProjectFolder:     stringValue(item, "projectFolder"),
				VersionPolicyName: stringValue(item, "versionPolicyName"),
			}
			if project.PackageName == "" && project.ProjectFolder == "" {
				continue
			}
			if rush.VersionPolicy == "" {
				rush.VersionPolicy = project.VersionPolicyName
			}
			rush.Projects = types.AppendCapped(rush.Projects, types.MaxPackages, project)
		}
	}

	if enabled, ok := findKey(root, "buildCacheEnabled"); ok && enabled == "true" {
		rush.BuildCacheEnabled = true
		rush.CacheFolder, _ = findKey(root, "cacheFolder")
	}

	return rush, nil
}
