package manifest

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/types"
)

// Dependency sections of package.json.
const (
	SectionDependencies    = "dependencies"
	SectionDevDependencies = "devDependencies"
)

// Package is the subset of a package.json the analyzer cares about.
type Package struct {
	Name       string
	Version    string
	ModuleType string

	// Dependencies holds dependencies followed by devDependencies, unique
	// by name with versions normalised.
	Dependencies types.DependencyList
	Scripts      []types.PackageScript

	// Workspaces is set when the manifest has a workspaces field. Both the
	// array form and the {"packages": [...]} form are read.
	Workspaces    []string
	HasWorkspaces bool

	BuildOutputPath string
	TestOutputPath  string

	UsesTypeScript bool
	UsesJest       bool
	UsesESLint     bool
	UsesPrettier   bool
}

// IsESM reports whether the package declares "type": "module".
func (p *Package) IsESM() bool {
	return p.ModuleType == "module"
}

var testRunners = []string{"jest", "mocha", "jasmine", "karma"}

// ParsePackage decodes a package.json. Every dependency found is also
// recorded in cache with its raw version; cache may be nil.
func ParsePackage(content string, cache *DependencyCache) (*Package, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Name:       stringValue(root, "name"),
		Version:    stringValue(root, "version"),
		ModuleType: stringValue(root, "type"),
	}

	for _, dep := range dependencySection(root, SectionDependencies, false, cache) {
		pkg.Dependencies = pkg.Dependencies.Add(dep)
	}
	for _, dep := range dependencySection(root, SectionDevDependencies, true, cache) {
		pkg.Dependencies = pkg.Dependencies.Add(dep)
	}

	eachPair(lookup(root, "scripts"), func(name string, value *yaml.Node) {
		if command, ok := scalar(value); ok && name != "" {
			pkg.Scripts = types.AppendCapped(pkg.Scripts, types.MaxScripts,
				types.PackageScript{Name: name, Command: command})
		}
	})

	if workspaces := lookup(root, "workspaces"); workspaces != nil {
		pkg.HasWorkspaces = true
		if workspaces.Kind == yaml.MappingNode {
			workspaces = lookup(workspaces, "packages")
		}
		for _, glob := range stringList(workspaces) {
			pkg.Workspaces = types.AppendCapped(pkg.Workspaces, types.MaxWorkspaceGlobs, glob)
		}
	}

	if strings.Contains(content, `"build"`) {
		if outDir, ok := findKey(root, "outDir"); ok {
			pkg.BuildOutputPath = outDir
		}
	}

	pkg.TestOutputPath, _ = findKey(root, "coverageDirectory")

	pkg.UsesTypeScript = strings.Contains(content, `"typescript"`) || strings.Contains(content, `"@types/`)
	pkg.UsesJest = strings.Contains(content, `"jest"`)
	pkg.UsesESLint = strings.Contains(content, `"eslint"`)
	pkg.UsesPrettier = strings.Contains(content, `"prettier"`)
	for _, dep := range pkg.Dependencies {
		if containsAny(dep.Name, testRunners...) {
			pkg.UsesJest = true
		}
	}

	return pkg, nil
}

// ParseDependencySection returns the entries of one dependency section.
// Entries with an empty name or version are skipped.
func ParseDependencySection(content, section string, cache *DependencyCache) (types.DependencyList, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}
	var list types.DependencyList
	for _, dep := range dependencySection(root, section, section == SectionDevDependencies, cache) {
		list = list.Add(dep)
	}
	return list, nil
}

func dependencySection(root *yaml.Node, section string, dev bool, cache *DependencyCache) []types.Dependency {
	var deps []types.Dependency
	eachPair(lookup(root, section), func(name string, value *yaml.Node) {
		version, ok := scalar(value)
		if !ok || name == "" || version == "" {
			return
		}
		cache.Add(name, version)
		deps = append(deps, types.Dependency{
			Name:    name,
			Version: detect.NormalizeVersion(version),
			Dev:     dev,
		})
	})
	return deps
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
