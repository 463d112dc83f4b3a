package workspace

import (
	"path/filepath"
	"strings"

	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
)

func (r *resolution) turbo() {
	r.ws.UsesTurborepo = true

	content, ok := r.read(manifest.TurboJSON, r.limits.Manifest)
	if !ok {
		return
	}
	turbo, err := manifest.ParseTurbo(content)
	if err != nil {
		r.logger.Debug(r.ctx, "Invalid turbo.json", "error", err)
		return
	}

	for _, task := range turbo.Tasks {
		r.ws.AddTaskGroup(types.TaskGroup{
			Name:     task.Name,
			Type:     types.TaskGroupBuild,
			Packages: task.DependsOn,
		})
	}

	for _, global := range turbo.GlobalDependencies {
		r.applyGlobal(global)
		if !r.globals.Contains(global.Name) {
			r.globals = r.globals.Add(types.Dependency{Name: global.Name, Version: global.Value})
		}
	}
}

// applyGlobal interprets a turbo global dependency that names a well known
// configuration file.
func (r *resolution) applyGlobal(global manifest.GlobalDependency) {
	name, value := global.Name, global.Value
	switch {
	case name == "tsconfig.json":
		r.ws.TSConfigPath = value
		r.ws.HasSharedConfigs = true
	case strings.HasPrefix(name, ".eslintrc"):
		r.ws.ESLintConfigPath = value
		r.ws.HasSharedConfigs = true
	case strings.HasPrefix(name, ".prettierrc"):
		r.ws.PrettierConfigPath = value
		r.ws.HasSharedConfigs = true
	case strings.Contains(name, "jest.config"):
		r.ws.JestConfigPath = value
	case name == manifest.PackageJSON:
		r.globalPackage(value)
	case strings.Contains(name, "webpack.config"):
		r.project.HasWebpack = true
	case strings.Contains(name, "vite.config"):
		r.project.HasVite = true
	case strings.Contains(name, "babel.config"):
		r.project.HasBabel = true
		r.ws.BabelConfigPath = value
	case strings.Contains(name, ".github/workflows"):
		r.project.HasCI = true
	case strings.HasPrefix(name, ".env"):
		r.project.HasEnvConfig = true
	}
}

// globalPackage reads the package.json a turbo global points at. Its
// workspaces make the repository a Yarn workspace and its dependencies are
// shared by every task.
func (r *resolution) globalPackage(path string) {
	if path == "" {
		path = manifest.PackageJSON
	}
	content, err := manifest.ReadFile(r.fs, filepath.Join(r.root, filepath.FromSlash(path)), r.limits.Manifest)
	if err != nil {
		return
	}
	pkg, err := manifest.ParsePackage(content, nil)
	if err != nil {
		return
	}

	if pkg.HasWorkspaces && !r.ws.IsYarnWorkspace {
		r.ws.IsYarnWorkspace = true
		r.project.MarkMonorepo()
		r.addGlobs(pkg.Workspaces)
		r.scanGlobs(pkg.Workspaces)
	}
	for _, dep := range pkg.Dependencies {
		r.globals = r.globals.Add(dep)
	}
}
