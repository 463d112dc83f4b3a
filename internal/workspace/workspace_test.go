package workspace

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func resolve(t *testing.T, fs afero.Fs, root string) (*types.ProjectRecord, *manifest.DependencyCache, bool) {
	t.Helper()
	cache := manifest.NewDependencyCache()
	project := types.NewProjectRecord(root)
	ok := NewResolver(fs, cache).Resolve(context.Background(), root, project)
	return project, cache, ok
}

func packageNames(ws types.WorkspaceInfo) []string {
	var names []string
	for _, pkg := range ws.Packages {
		names = append(names, pkg.Name)
	}
	return names
}

func TestResolveSkipsRecordedManifests(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/package.json":            `{"name":"root","workspaces":["packages/*"]}`,
		"/repo/packages/a/package.json": `{"name":"a","dependencies":{"react":"^18.2.0"}}`,
		"/repo/packages/b/package.json": `{"name":"b","dependencies":{"react":"^18.2.0","zod":"3.22.0"}}`,
	})

	cache := manifest.NewDependencyCache()
	cache.Add("react", "^18.2.0")
	recorded := func(path string) bool { return path == filepath.Join("/repo", "packages", "a", "package.json") }

	project := types.NewProjectRecord("/repo")
	ok := NewResolver(fs, cache, WithRecorded(recorded)).Resolve(context.Background(), "/repo", project)
	require.True(t, ok)
	require.Len(t, project.Workspace.Packages, 2)

	react, found := cache.Get("react")
	require.True(t, found)
	assert.Equal(t, 2, react.Count)
	assert.Equal(t, 2, cache.Len())
}

func TestResolveLerna(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/lerna.json":                  `{"version":"independent","packages":["packages/*"]}`,
		"/repo/package.json":                `{"name":"root","private":true}`,
		"/repo/commitlint.config.js":        `module.exports = {}`,
		"/repo/packages/a/package.json":     `{"name":"a","version":"1.0.0","dependencies":{"b":"^1.0.0","react":"^18.2.0"}}`,
		"/repo/packages/b/package.json":     `{"name":"b","version":"1.0.0","dependencies":{"react":"^17.0.0"}}`,
		"/repo/packages/README.md":          `docs`,
		"/repo/packages/empty/src/index.js": `export {}`,
	})

	project, cache, ok := resolve(t, fs, "/repo")
	require.True(t, ok)

	ws := project.Workspace
	assert.True(t, project.IsMonorepo)
	assert.True(t, ws.IsLerna)
	assert.False(t, ws.IsYarnWorkspace)
	assert.Equal(t, types.VersionIndependent, ws.VersionStrategy)
	assert.True(t, ws.UsesConventionalCommits)
	assert.Equal(t, "root", ws.Name)
	assert.Equal(t, []string{"packages/*"}, ws.WorkspaceGlobs)

	require.Len(t, ws.Packages, 2)
	assert.Equal(t, []string{"a", "b"}, packageNames(ws))
	assert.Equal(t, "packages/a", ws.Packages[0].Path)
	assert.True(t, ws.Packages[0].FrameworkInfo.HasReact)
	assert.Equal(t, []types.PackageReference{{Source: "a", Target: "b"}}, ws.Packages[0].Config.References)
	assert.Empty(t, ws.Packages[1].Config.References)

	assert.Equal(t, []types.TaskGroup{
		{Name: "build-level-1", Type: types.TaskGroupBuild, Packages: []string{"b"}},
		{Name: "build-level-2", Type: types.TaskGroupBuild, Packages: []string{"a"}},
	}, ws.TaskGroups)

	assert.Equal(t, types.DependencyList{{Name: "react", Version: "18.2.0"}}, ws.SharedDependencies)

	react, ok := cache.Get("react")
	require.True(t, ok)
	assert.Equal(t, 2, react.Count)
	assert.Equal(t, "^18.2.0", react.Version)
	assert.Empty(t, project.Issues)
}

func TestResolveLernaAndYarnShareGlobs(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/lerna.json":              `{"version":"1.0.0","npmClient":"yarn","useWorkspaces":true,"packages":["packages/*"],"command":{"bootstrap":{"hoist":true}}}`,
		"/repo/package.json":            `{"name":"root","workspaces":["packages/*"]}`,
		"/repo/.changeset/config.json":  `{}`,
		"/repo/packages/a/package.json": `{"name":"a"}`,
		"/repo/packages/b/package.json": `{"name":"b"}`,
	})

	project, _, ok := resolve(t, fs, "/repo")
	require.True(t, ok)

	ws := project.Workspace
	assert.True(t, ws.IsLerna)
	assert.True(t, ws.IsYarnWorkspace)
	assert.True(t, ws.UsesNpmWorkspaces)
	assert.True(t, ws.HasHoisting)
	assert.True(t, ws.UsesChangesets)
	assert.Equal(t, types.VersionFixed, ws.VersionStrategy)
	assert.Len(t, ws.Packages, 2)
	assert.Equal(t, []string{"packages/*"}, ws.WorkspaceGlobs)
}

func TestResolvePnpmCycle(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/pnpm-workspace.yaml": "packages:\n  - 'libs/*'\n  - '!libs/ignored'\n",
		"/repo/libs/x/package.json": `{"name":"x","dependencies":{"y":"workspace:*"}}`,
		"/repo/libs/y/package.json": `{"name":"y","dependencies":{"x":"workspace:*"}}`,
		"/repo/libs/z/package.json": `{"name":"z"}`,
		"/repo/libs/w/package.json": `{"name":"w","dependencies":{"x":"1.0.0"}}`,
	})

	project, _, ok := resolve(t, fs, "/repo")
	require.True(t, ok)

	ws := project.Workspace
	assert.True(t, ws.IsPnpmWorkspace)
	assert.Equal(t, []string{"w", "x", "y", "z"}, packageNames(ws))
	assert.Equal(t, []types.TaskGroup{
		{Name: "build-level-1", Type: types.TaskGroupBuild, Packages: []string{"z"}},
	}, ws.TaskGroups)

	require.Len(t, project.Issues, 1)
	assert.Equal(t, "Dependency cycle prevents build ordering for packages: x, y", project.Issues[0].Description)
	assert.Equal(t, "/repo", project.Issues[0].Location)
}

func TestResolveNx(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/nx.json": `{
  "npmScope": "acme",
  "projects": {"web": "apps/web", "api": {"root": "apps/api"}},
  "targetDefaults": {"build": {}, "test": {}}
}`,
		"/repo/workspace.json":        `{"version": "2", "projects": {"ui": "libs/ui"}}`,
		"/repo/apps/web/package.json": `{"name":"@acme/web","dependencies":{"vue":"^3.3.0"}}`,
		"/repo/apps/api/package.json": `{"name":"@acme/api","dependencies":{"express":"^4.18.0"}}`,
		"/repo/libs/ui/package.json":  `{"name":"@acme/ui","dependencies":{"@angular/core":"16.0.0"}}`,
	})

	project, _, ok := resolve(t, fs, "/repo")
	require.True(t, ok)

	ws := project.Workspace
	assert.True(t, ws.IsNxWorkspace)
	assert.Equal(t, "2", ws.VersionStrategy)
	assert.Equal(t, []string{"@acme/web", "@acme/api", "@acme/ui"}, packageNames(ws))
	assert.True(t, ws.Packages[0].FrameworkInfo.HasVue)
	assert.True(t, ws.Packages[1].FrameworkInfo.HasNodeJS)
	assert.True(t, ws.Packages[2].FrameworkInfo.HasAngular)

	require.GreaterOrEqual(t, len(ws.TaskGroups), 2)
	assert.Equal(t, types.TaskGroup{Name: "build", Type: types.TaskGroupNxTarget}, ws.TaskGroups[0])
	assert.Equal(t, types.TaskGroup{Name: "test", Type: types.TaskGroupNxTarget}, ws.TaskGroups[1])
	assert.Equal(t, "build-level-1", ws.TaskGroups[2].Name)
}

func TestResolveRush(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/rush.json": `{
  "projects": [
    {"packageName": "@acme/core", "projectFolder": "libraries/core", "versionPolicyName": "lock-step"},
    {"packageName": "@acme/tool", "projectFolder": "tools/tool"}
  ],
  "buildCacheEnabled": true,
  "cacheFolder": "common/temp/build-cache"
}`,
		"/repo/libraries/core/package.json": `{"version":"2.0.0"}`,
	})

	project, _, ok := resolve(t, fs, "/repo")
	require.True(t, ok)

	ws := project.Workspace
	assert.True(t, ws.IsRush)
	assert.Equal(t, []string{"@acme/core", "@acme/tool"}, packageNames(ws))
	assert.Equal(t, "2.0.0", ws.Packages[0].Version)
	assert.Equal(t, types.VersionFixed, ws.VersionStrategy)
	assert.Equal(t, "common/temp/build-cache", ws.BuildCachePath)
}

func TestResolveTurbo(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/turbo.json": `{
  "globalDependencies": {
    "tsconfig.json": "tsconfig.base.json",
    ".eslintrc.js": ".eslintrc.js",
    "jest.config.js": "jest.config.js",
    "package.json": "package.json",
    "vite.config.ts": "vite.config.ts",
    ".github/workflows": "ci.yml",
    ".env": ".env"
  },
  "pipeline": {"build": {"dependsOn": ["^build"]}, "lint": {}}
}`,
		"/repo/package.json":          `{"name":"root","workspaces":["apps/*"],"dependencies":{"zod":"3.22.0"}}`,
		"/repo/apps/web/package.json": `{"name":"web"}`,
	})

	project, _, ok := resolve(t, fs, "/repo")
	require.True(t, ok)

	ws := project.Workspace
	assert.True(t, ws.UsesTurborepo)
	assert.True(t, ws.IsYarnWorkspace)
	assert.True(t, ws.HasSharedConfigs)
	assert.Equal(t, "tsconfig.base.json", ws.TSConfigPath)
	assert.Equal(t, ".eslintrc.js", ws.ESLintConfigPath)
	assert.Equal(t, "jest.config.js", ws.JestConfigPath)
	assert.True(t, project.HasVite)
	assert.True(t, project.HasCI)
	assert.True(t, project.HasEnvConfig)

	assert.Equal(t, types.TaskGroup{Name: "build", Type: types.TaskGroupBuild, Packages: []string{"^build"}}, ws.TaskGroups[0])
	assert.Equal(t, []string{"web"}, packageNames(ws))

	assert.True(t, ws.SharedDependencies.Contains("zod"))
	assert.True(t, ws.SharedDependencies.Contains("tsconfig.json"))
	for i := 1; i < len(ws.SharedDependencies); i++ {
		assert.LessOrEqual(t, ws.SharedDependencies[i-1].Name, ws.SharedDependencies[i].Name)
	}
}

func TestResolveTurboAloneIsNotMonorepo(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/turbo.json": `{"pipeline": {}}`,
	})

	project, _, ok := resolve(t, fs, "/repo")
	assert.False(t, ok)
	assert.False(t, project.IsMonorepo)
	assert.True(t, project.Workspace.UsesTurborepo)
}

func TestResolveNoMarkers(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/package.json": `{"name":"single","dependencies":{"react":"18.2.0"}}`,
	})

	project, cache, ok := resolve(t, fs, "/repo")
	assert.False(t, ok)
	assert.False(t, project.IsMonorepo)
	assert.Empty(t, project.Workspace.RootPath)
	assert.Zero(t, cache.Len())
}

func TestResolveMalformedConfig(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/repo/lerna.json": `{"version": `,
	})

	project, _, ok := resolve(t, fs, "/repo")
	assert.True(t, ok)
	assert.True(t, project.Workspace.IsLerna)
	assert.Empty(t, project.Workspace.Packages)
	assert.Empty(t, project.Workspace.TaskGroups)
}

func TestDetectMarkers(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/a/rush.json":           `{}`,
		"/a/turbo.json":          `{}`,
		"/b/package.json":        `{"workspaces":["x/*"]}`,
		"/c/package.json":        `{"name":"c"}`,
		"/d/pnpm-workspace.yaml": `packages: []`,
	})

	assert.Equal(t, Markers{Rush: true, Turbo: true}, DetectMarkers(fs, "/a"))
	assert.Equal(t, Markers{YarnWorkspaces: true}, DetectMarkers(fs, "/b"))
	assert.False(t, DetectMarkers(fs, "/c").Any())
	assert.True(t, DetectMarkers(fs, "/d").Any())
}

func TestBuildOrder(t *testing.T) {
	packages := []types.PackageRecord{
		{Name: "app", Dependencies: types.DependencyList{{Name: "ui"}, {Name: "utils"}}},
		{Name: "ui", Dependencies: types.DependencyList{{Name: "utils"}, {Name: "react"}}},
		{Name: "utils"},
		{Name: "self", Dependencies: types.DependencyList{{Name: "self"}}},
	}
	LinkPackages(packages)

	levels, unplaced := BuildOrder(packages)
	assert.Equal(t, [][]string{{"utils", "self"}, {"ui"}, {"app"}}, levels)
	assert.Empty(t, unplaced)
}

func TestCycleMembers(t *testing.T) {
	packages := []types.PackageRecord{
		{Name: "a", Dependencies: types.DependencyList{{Name: "b"}}},
		{Name: "b", Dependencies: types.DependencyList{{Name: "c"}}},
		{Name: "c", Dependencies: types.DependencyList{{Name: "a"}}},
		{Name: "d", Dependencies: types.DependencyList{{Name: "a"}}},
	}
	LinkPackages(packages)

	levels, unplaced := BuildOrder(packages)
	assert.Empty(t, levels)
	assert.Equal(t, []string{"a", "b", "c", "d"}, unplaced)
	assert.Equal(t, []string{"a", "b", "c"}, CycleMembers(packages, unplaced))
}

func TestSharedDependencies(t *testing.T) {
	packages := []types.PackageRecord{
		{Name: "a", Dependencies: types.DependencyList{{Name: "lodash", Version: "4.17.21"}, {Name: "zod", Version: "3.0.0"}}},
		{Name: "b", Dependencies: types.DependencyList{{Name: "lodash", Version: "4.0.0", Dev: true}}},
		{Name: "c", Dependencies: types.DependencyList{{Name: "react", Version: "18.2.0"}}},
	}

	assert.Equal(t, types.DependencyList{{Name: "lodash", Version: "4.17.21"}}, SharedDependencies(packages))
}

func TestPackageFramework(t *testing.T) {
	deps := types.DependencyList{{Name: "vue"}, {Name: "svelte"}, {Name: "koa"}}
	info := PackageFramework(deps, `{"dependencies":{"vue":"^3.0.0","@vue/composition-api":"1.0.0"}}`)

	assert.True(t, info.HasVue)
	assert.True(t, info.VueCompositionAPI)
	assert.True(t, info.HasSvelte)
	assert.True(t, info.HasNodeJS)
	assert.False(t, info.HasReact)
}
