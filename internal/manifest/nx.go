package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/webpulse/internal/types"
)

// NxProject is one entry of an Nx projects map.
type NxProject struct {
	Name string
	Root string
}

// Nx is the content of an nx.json.
type Nx struct {
	NpmScope       string
	Projects       []NxProject
	TargetDefaults []string
}

// NxWorkspace is the content of an Nx workspace.json.
type NxWorkspace struct {
	// Version is only set when the version field is a string.
	Version  string
	Projects []NxProject
}

// ParseNx decodes an nx.json.
func ParseNx(content string) (*Nx, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}

	nx := &Nx{
		NpmScope: stringValue(root, "npmScope"),
		Projects: nxProjects(lookup(root, "projects")),
	}
	eachPair(lookup(root, "targetDefaults"), func(target string, _ *yaml.Node) {
		nx.TargetDefaults = types.AppendCapped(nx.TargetDefaults, types.MaxTaskGroups, target)
	})

	return nx, nil
}

// ParseNxWorkspace decodes an Nx workspace.json.
func ParseNxWorkspace(content string) (*NxWorkspace, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}
	return &NxWorkspace{
		Version:  quotedValue(root, "version"),
		Projects: nxProjects(lookup(root, "projects")),
	}, nil
}

// nxProjects reads a projects map. A string value is the project root, an
// object value carries it in "root", anything else uses the key itself.
func nxProjects(node *yaml.Node) []NxProject {
	var projects []NxProject
	eachPair(node, func(name string, value *yaml.Node) {
		project := NxProject{Name: name, Root: name}
		if root, ok := scalar(value); ok && root != "" {
			project.Root = root
		} else if root := stringValue(value, "root"); root != "" {
			project.Root = root
		}
		projects = types.AppendCapped(projects, types.MaxPackages, project)
	})
	return projects
}
