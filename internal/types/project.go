// Package types holds the data model shared by the scanners, the workspace
// resolver and the project aggregator. Everything an analysis run produces
// hangs off a single ProjectRecord.
package types

import "strings"

// Dependency is one entry of a dependencies or devDependencies section.
type Dependency struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Dev     bool   `json:"dev" yaml:"dev"`
}

// DependencyList is an ordered list of dependencies, unique by name.
type DependencyList []Dependency

// Add appends dep unless a dependency with the same name is already present
// or the list holds MaxDependencies entries. The first entry for a name
// wins, including its dev flag.
func (l DependencyList) Add(dep Dependency) DependencyList {
	if dep.Name == "" || len(l) >= MaxDependencies || l.Contains(dep.Name) {
		return l
	}
	return append(l, dep)
}

// Contains reports whether a dependency called name is present.
func (l DependencyList) Contains(name string) bool {
	_, ok := l.Find(name)
	return ok
}

// Find returns the dependency called name.
func (l DependencyList) Find(name string) (Dependency, bool) {
	for _, dep := range l {
		if dep.Name == name {
			return dep, true
		}
	}
	return Dependency{}, false
}

// DevCount returns how many entries are development dependencies.
func (l DependencyList) DevCount() int {
	n := 0
	for _, dep := range l {
		if dep.Dev {
			n++
		}
	}
	return n
}

// PackageReference is a directed edge of the workspace dependency graph:
// Source depends on Target.
type PackageReference struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// PackageScript is one entry of a package.json scripts section.
type PackageScript struct {
	Name    string `json:"name" yaml:"name"`
	Command string `json:"command" yaml:"command"`
}

// PackageConfig captures build related settings of a workspace package.
type PackageConfig struct {
	References       []PackageReference `json:"references,omitempty" yaml:"references,omitempty"`
	Scripts          []PackageScript    `json:"scripts,omitempty" yaml:"scripts,omitempty"`
	BuildOutputPath  string             `json:"build_output_path,omitempty" yaml:"build_output_path,omitempty"`
	TestOutputPath   string             `json:"test_output_path,omitempty" yaml:"test_output_path,omitempty"`
	HasSharedConfigs bool               `json:"has_shared_configs" yaml:"has_shared_configs"`
	UsesTypeScript   bool               `json:"uses_typescript" yaml:"uses_typescript"`
	UsesESLint       bool               `json:"uses_eslint" yaml:"uses_eslint"`
	UsesPrettier     bool               `json:"uses_prettier" yaml:"uses_prettier"`
	UsesJest         bool               `json:"uses_jest" yaml:"uses_jest"`
	NodeVersion      string             `json:"node_version,omitempty" yaml:"node_version,omitempty"`
}

// PackageRecord describes one member package of a monorepo.
type PackageRecord struct {
	Name          string         `json:"name" yaml:"name"`
	Version       string         `json:"version" yaml:"version"`
	Path          string         `json:"path" yaml:"path"`
	Dependencies  DependencyList `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	FrameworkInfo FrameworkInfo  `json:"framework_info" yaml:"framework_info"`
	Config        PackageConfig  `json:"config" yaml:"config"`
}

// Task group types.
const (
	TaskGroupBuild    = "build"
	TaskGroupNxTarget = "nx-target"
)

// TaskGroup is a named set of package (or task) names: one tier of the
// computed build order, a turbo pipeline task or an Nx target default.
type TaskGroup struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Packages []string `json:"packages,omitempty" yaml:"packages,omitempty"`
}

// Version strategies.
const (
	VersionFixed       = "fixed"
	VersionIndependent = "independent"
)

// WorkspaceInfo describes monorepo topology. It is only meaningful when
// ProjectRecord.IsMonorepo is set.
type WorkspaceInfo struct {
	RootPath           string          `json:"root_path" yaml:"root_path"`
	Name               string          `json:"name,omitempty" yaml:"name,omitempty"`
	Packages           []PackageRecord `json:"packages,omitempty" yaml:"packages,omitempty"`
	SharedDependencies DependencyList  `json:"shared_dependencies,omitempty" yaml:"shared_dependencies,omitempty"`
	WorkspaceGlobs     []string        `json:"workspace_globs,omitempty" yaml:"workspace_globs,omitempty"`

	// Flavors. Several can be set at once.
	IsLerna         bool `json:"is_lerna" yaml:"is_lerna"`
	IsYarnWorkspace bool `json:"is_yarn_workspace" yaml:"is_yarn_workspace"`
	IsPnpmWorkspace bool `json:"is_pnpm_workspace" yaml:"is_pnpm_workspace"`
	IsNxWorkspace   bool `json:"is_nx_workspace" yaml:"is_nx_workspace"`
	IsRush          bool `json:"is_rush" yaml:"is_rush"`

	HasHoisting             bool `json:"has_hoisting" yaml:"has_hoisting"`
	UsesNpmWorkspaces       bool `json:"uses_npm_workspaces" yaml:"uses_npm_workspaces"`
	UsesChangesets          bool `json:"uses_changesets" yaml:"uses_changesets"`
	UsesTurborepo           bool `json:"uses_turborepo" yaml:"uses_turborepo"`
	HasSharedConfigs        bool `json:"has_shared_configs" yaml:"has_shared_configs"`
	UsesConventionalCommits bool `json:"uses_conventional_commits" yaml:"uses_conventional_commits"`
	UsesGitTags             bool `json:"uses_git_tags" yaml:"uses_git_tags"`
	UsesSemanticRelease     bool `json:"uses_semantic_release" yaml:"uses_semantic_release"`

	TaskGroups     []TaskGroup `json:"task_groups,omitempty" yaml:"task_groups,omitempty"`
	BuildCachePath string      `json:"build_cache_path,omitempty" yaml:"build_cache_path,omitempty"`

	TSConfigPath       string `json:"tsconfig_path,omitempty" yaml:"tsconfig_path,omitempty"`
	ESLintConfigPath   string `json:"eslint_config_path,omitempty" yaml:"eslint_config_path,omitempty"`
	PrettierConfigPath string `json:"prettier_config_path,omitempty" yaml:"prettier_config_path,omitempty"`
	JestConfigPath     string `json:"jest_config_path,omitempty" yaml:"jest_config_path,omitempty"`
	BabelConfigPath    string `json:"babel_config_path,omitempty" yaml:"babel_config_path,omitempty"`

	// VersionStrategy is "fixed", "independent" or a raw workspace.json
	// version string.
	VersionStrategy string `json:"version_strategy,omitempty" yaml:"version_strategy,omitempty"`
}

// AddTaskGroup appends group while fewer than MaxTaskGroups exist.
func (w *WorkspaceInfo) AddTaskGroup(group TaskGroup) bool {
	if len(w.TaskGroups) >= MaxTaskGroups {
		return false
	}
	w.TaskGroups = append(w.TaskGroups, group)
	return true
}

// ProjectRecord is the root aggregate of one analysis run. It is created
// empty, filled during traversal and workspace resolution, and finalised by
// the statistics pass.
type ProjectRecord struct {
	RunID string `json:"run_id" yaml:"run_id"`
	Root  string `json:"root" yaml:"root"`

	FrameworkInfo FrameworkInfo `json:"framework_info" yaml:"framework_info"`
	// Framework is the primary framework, "" when none was detected.
	Framework         string `json:"framework" yaml:"framework"`
	RequiredLibraries string `json:"required_libraries" yaml:"required_libraries"`

	TotalDependencies     int `json:"total_dependencies" yaml:"total_dependencies"`
	DevDependencies       int `json:"dev_dependencies" yaml:"dev_dependencies"`
	ProdDependencies      int `json:"prod_dependencies" yaml:"prod_dependencies"`
	FrameworkDependencies int `json:"framework_dependencies" yaml:"framework_dependencies"`

	HTMLFileCount  int `json:"html_file_count" yaml:"html_file_count"`
	CSSFileCount   int `json:"css_file_count" yaml:"css_file_count"`
	JSFileCount    int `json:"js_file_count" yaml:"js_file_count"`
	JSONFileCount  int `json:"json_file_count" yaml:"json_file_count"`
	TSFileCount    int `json:"ts_file_count" yaml:"ts_file_count"`
	JSXFileCount   int `json:"jsx_file_count" yaml:"jsx_file_count"`
	VueFileCount   int `json:"vue_file_count" yaml:"vue_file_count"`
	XMLFileCount   int `json:"xml_file_count" yaml:"xml_file_count"`
	ImageFileCount int `json:"image_file_count" yaml:"image_file_count"`

	ReactComponentCount int                `json:"react_component_count" yaml:"react_component_count"`
	CustomElements      []CustomElement    `json:"custom_elements,omitempty" yaml:"custom_elements,omitempty"`
	ExternalResources   []ExternalResource `json:"external_resources,omitempty" yaml:"external_resources,omitempty"`
	FrameworkComponents []string           `json:"framework_components,omitempty" yaml:"framework_components,omitempty"`

	// HTML, CSS, JS and JSON totals accumulate across files. TS, JSX, Vue
	// and XML hold the metrics of the last file processed.
	TotalHTMLInfo HTMLInfo `json:"total_html_info" yaml:"total_html_info"`
	TotalCSSInfo  CSSInfo  `json:"total_css_info" yaml:"total_css_info"`
	TotalJSInfo   JSInfo   `json:"total_js_info" yaml:"total_js_info"`
	TotalJSONInfo JSONInfo `json:"total_json_info" yaml:"total_json_info"`
	TotalTSInfo   TSInfo   `json:"total_ts_info" yaml:"total_ts_info"`
	TotalJSXInfo  JSXInfo  `json:"total_jsx_info" yaml:"total_jsx_info"`
	TotalVueInfo  VueInfo  `json:"total_vue_info" yaml:"total_vue_info"`
	TotalXMLInfo  XMLInfo  `json:"total_xml_info" yaml:"total_xml_info"`

	SalesforceMetadata []string `json:"salesforce_metadata,omitempty" yaml:"salesforce_metadata,omitempty"`
	Issues             []Issue  `json:"potential_issues,omitempty" yaml:"potential_issues,omitempty"`

	Dependencies DependencyList `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	ModulePaths  []string       `json:"module_paths,omitempty" yaml:"module_paths,omitempty"`

	UsesCommonJS  bool `json:"uses_commonjs" yaml:"uses_commonjs"`
	UsesESModules bool `json:"uses_esmodules" yaml:"uses_esmodules"`
	HasWebpack    bool `json:"has_webpack" yaml:"has_webpack"`
	HasVite       bool `json:"has_vite" yaml:"has_vite"`
	HasBabel      bool `json:"has_babel" yaml:"has_babel"`
	HasCI         bool `json:"has_ci" yaml:"has_ci"`
	HasEnvConfig  bool `json:"has_env_config" yaml:"has_env_config"`
	HasTypeScript bool `json:"has_typescript" yaml:"has_typescript"`

	Workspace  WorkspaceInfo `json:"workspace" yaml:"workspace"`
	IsMonorepo bool          `json:"is_monorepo" yaml:"is_monorepo"`

	// SkippedFiles counts files that could not be read or were too large.
	SkippedFiles int `json:"skipped_files" yaml:"skipped_files"`
}

// NewProjectRecord returns an empty record for root.
func NewProjectRecord(root string) *ProjectRecord {
	return &ProjectRecord{Root: root}
}

// AddIssue appends an advisory issue while fewer than MaxProjectIssues are
// recorded. It reports whether the issue was kept.
func (p *ProjectRecord) AddIssue(description, location string) bool {
	if len(p.Issues) >= MaxProjectIssues {
		return false
	}
	p.Issues = append(p.Issues, Issue{Description: description, Location: location})
	return true
}

// AddModulePath records an import specifier. Specifiers mentioning
// node_modules, empty ones and duplicates are ignored.
func (p *ProjectRecord) AddModulePath(path string) {
	if path == "" || strings.Contains(path, "node_modules") {
		return
	}
	p.ModulePaths = AppendUnique(p.ModulePaths, MaxImportPaths, path)
}

// MarkMonorepo sets IsMonorepo. It is never cleared once set.
func (p *ProjectRecord) MarkMonorepo() {
	p.IsMonorepo = true
}

// ResourceEstimation is the heuristic runtime cost of a project.
type ResourceEstimation struct {
	JSHeapSize             uint64 `json:"js_heap_size" yaml:"js_heap_size"`
	TransferredData        uint64 `json:"transferred_data" yaml:"transferred_data"`
	ResourceSize           uint64 `json:"resource_size" yaml:"resource_size"`
	DOMContentLoaded       int    `json:"dom_content_loaded" yaml:"dom_content_loaded"`
	LargestContentfulPaint int    `json:"largest_contentful_paint" yaml:"largest_contentful_paint"`
}
