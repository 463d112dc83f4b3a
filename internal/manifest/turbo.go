package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/webpulse/internal/types"
)

// TurboTask is a pipeline task that declares dependsOn.
type TurboTask struct {
	Name      string
	DependsOn []string
}

// GlobalDependency is an entry of turbo.json globalDependencies. The array
// form yields entries whose Value equals their Name.
type GlobalDependency struct {
	Name  string
	Value string
}

// Turbo is the content of a turbo.json.
type Turbo struct {
	Tasks              []TurboTask
	GlobalDependencies []GlobalDependency
}

// ParseTurbo decodes a turbo.json. Tasks are read from "pipeline" and, for
// turbo 2 configurations, from "tasks".
func ParseTurbo(content string) (*Turbo, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}

	turbo := &Turbo{}
	for _, key := range []string{"pipeline", "tasks"} {
		eachPair(lookup(root, key), func(name string, value *yaml.Node) {
			dependsOn := lookup(value, "dependsOn")
			if dependsOn == nil || dependsOn.Kind != yaml.SequenceNode {
				return
			}
			turbo.Tasks = types.AppendCapped(turbo.Tasks, types.MaxTaskGroups,
				TurboTask{Name: name, DependsOn: stringList(dependsOn)})
		})
	}

	globals := lookup(root, "globalDependencies")
	switch {
	case globals == nil:
	case globals.Kind == yaml.MappingNode:
		eachPair(globals, func(name string, value *yaml.Node) {
			v, _ := scalar(value)
			turbo.GlobalDependencies = append(turbo.GlobalDependencies, GlobalDependency{Name: name, Value: v})
		})
	case globals.Kind == yaml.SequenceNode:
		for _, item := range stringList(globals) {
			turbo.GlobalDependencies = append(turbo.GlobalDependencies, GlobalDependency{Name: item, Value: item})
		}
	}

	return turbo, nil
}
