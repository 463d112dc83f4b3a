// Package workspace resolves monorepo topology: which workspace tools are
// in use, which member packages exist, how they depend on each other and in
// which order they can be built.
//
// Flavors are independent. Every marker found at the workspace root is
// handled in a fixed order (Lerna, pnpm, Yarn/npm workspaces, Nx, Rush,
// Turborepo) and all of them contribute packages to the same record.
package workspace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
)

// Markers records which workspace marker files exist in a directory.
type Markers struct {
	Lerna          bool
	Pnpm           bool
	Nx             bool
	Rush           bool
	Turbo          bool
	YarnWorkspaces bool
}

// Any reports whether any marker that makes a repository a monorepo was
// found. Turborepo alone does not.
func (m Markers) Any() bool {
	return m.Lerna || m.Pnpm || m.Nx || m.Rush || m.YarnWorkspaces
}

// DetectMarkers inspects dir for workspace marker files. A package.json
// counts when it declares workspaces.
func DetectMarkers(fs afero.Fs, dir string) Markers {
	markers := Markers{
		Lerna: manifest.Exists(fs, filepath.Join(dir, manifest.LernaJSON)),
		Pnpm:  manifest.Exists(fs, filepath.Join(dir, manifest.PnpmWorkspace)),
		Nx:    manifest.Exists(fs, filepath.Join(dir, manifest.NxJSON)),
		Rush:  manifest.Exists(fs, filepath.Join(dir, manifest.RushJSON)),
		Turbo: manifest.Exists(fs, filepath.Join(dir, manifest.TurboJSON)),
	}
	if content, err := manifest.ReadFile(fs, filepath.Join(dir, manifest.PackageJSON), manifest.MaxManifestSize); err == nil {
		if pkg, err := manifest.ParsePackage(content, nil); err == nil {
			markers.YarnWorkspaces = pkg.HasWorkspaces
		}
	}
	return markers
}

// Limits are the file size caps applied to manifests.
type Limits struct {
	Manifest int64
	Rush     int64
}

// Resolver fills the workspace part of a ProjectRecord.
type Resolver struct {
	fs     afero.Fs
	cache  *manifest.DependencyCache
	limits Limits
	logger logging.Logger
	// recorded reports manifests whose dependencies are already in cache.
	recorded func(path string) bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLimits overrides the manifest size caps. Zero values keep the
// defaults.
func WithLimits(limits Limits) Option {
	return func(r *Resolver) {
		if limits.Manifest > 0 {
			r.limits.Manifest = limits.Manifest
		}
		if limits.Rush > 0 {
			r.limits.Rush = limits.Rush
		}
	}
}

// WithRecorded skips the dependency cache for member manifests for which
// recorded returns true, so a package.json already parsed by the caller is
// counted once.
func WithRecorded(recorded func(path string) bool) Option {
	return func(r *Resolver) {
		r.recorded = recorded
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger.WithComponent("workspace")
		}
	}
}

// NewResolver creates a resolver. Dependencies of every member package are
// recorded in cache.
func NewResolver(fs afero.Fs, cache *manifest.DependencyCache, opts ...Option) *Resolver {
	r := &Resolver{
		fs:     fs,
		cache:  cache,
		limits: Limits{Manifest: manifest.MaxManifestSize, Rush: manifest.MaxRushSize},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve inspects the workspace rooted at root and records what it finds
// in project. It reports whether root is a monorepo root. Unreadable or
// malformed configuration files contribute nothing.
func (r *Resolver) Resolve(ctx context.Context, root string, project *types.ProjectRecord) bool {
	markers := DetectMarkers(r.fs, root)
	if !markers.Any() && !markers.Turbo {
		return false
	}

	run := &resolution{Resolver: r, ctx: ctx, root: root, project: project, ws: &project.Workspace}
	run.ws.RootPath = root

	if rootPkg := run.readPackage(root); rootPkg != nil {
		run.ws.Name = rootPkg.Name
	}

	if markers.Lerna {
		run.lerna()
	}
	if markers.Pnpm {
		run.pnpm()
	}
	if markers.YarnWorkspaces {
		run.yarn()
	}
	if markers.Nx {
		run.nx()
	}
	if markers.Rush {
		run.rush()
	}
	if markers.Turbo {
		run.turbo()
	}

	run.finish()

	r.logger.Debug(ctx, "Workspace resolved",
		"root", root,
		"lerna", run.ws.IsLerna,
		"pnpm", run.ws.IsPnpmWorkspace,
		"yarn", run.ws.IsYarnWorkspace,
		"nx", run.ws.IsNxWorkspace,
		"rush", run.ws.IsRush,
		"turborepo", run.ws.UsesTurborepo,
		"packages", len(run.ws.Packages))

	return project.IsMonorepo
}

// resolution holds the state of one Resolve call.
type resolution struct {
	*Resolver
	ctx     context.Context
	root    string
	project *types.ProjectRecord
	ws      *types.WorkspaceInfo
	// globals are turbo global dependencies, added to the shared
	// dependencies after the package ones.
	globals types.DependencyList
}

func (r *resolution) read(name string, limit int64) (string, bool) {
	path := filepath.Join(r.root, name)
	content, err := manifest.ReadFile(r.fs, path, limit)
	if err != nil {
		r.logger.Debug(r.ctx, "Skipping workspace file", "path", path, "error", err)
		return "", false
	}
	return content, true
}

// readPackage parses dir/package.json without touching the dependency
// cache.
func (r *resolution) readPackage(dir string) *manifest.Package {
	content, err := manifest.ReadFile(r.fs, filepath.Join(dir, manifest.PackageJSON), r.limits.Manifest)
	if err != nil {
		return nil
	}
	pkg, err := manifest.ParsePackage(content, nil)
	if err != nil {
		return nil
	}
	return pkg
}

func (r *resolution) addGlobs(globs []string) {
	for _, glob := range globs {
		r.ws.WorkspaceGlobs = types.AppendUnique(r.ws.WorkspaceGlobs, types.MaxWorkspaceGlobs, glob)
	}
}

func (r *resolution) lerna() {
	r.ws.IsLerna = true
	r.project.MarkMonorepo()

	if content, ok := r.read(manifest.LernaJSON, r.limits.Manifest); ok {
		lerna, err := manifest.ParseLerna(content)
		if err != nil {
			r.logger.Debug(r.ctx, "Invalid lerna.json", "error", err)
		} else {
			r.ws.VersionStrategy = lerna.VersionStrategy()
			switch lerna.NpmClient {
			case "yarn":
				r.ws.IsYarnWorkspace = true
			case "pnpm":
				r.ws.IsPnpmWorkspace = true
			}
			r.ws.UsesNpmWorkspaces = r.ws.UsesNpmWorkspaces || lerna.UseWorkspaces
			r.ws.UsesConventionalCommits = r.ws.UsesConventionalCommits || lerna.ConventionalCommits
			r.ws.UsesGitTags = r.ws.UsesGitTags || lerna.CreateRelease
			r.ws.HasHoisting = r.ws.HasHoisting || lerna.Hoist

			r.addGlobs(lerna.Packages)
			r.scanGlobs(lerna.Packages)
		}
	}

	if manifest.Exists(r.fs, filepath.Join(r.root, "commitlint.config.js")) {
		r.ws.UsesConventionalCommits = true
	}
	if manifest.Exists(r.fs, filepath.Join(r.root, ".changeset")) {
		r.ws.UsesChangesets = true
	}
}

func (r *resolution) pnpm() {
	r.ws.IsPnpmWorkspace = true
	r.project.MarkMonorepo()

	content, ok := r.read(manifest.PnpmWorkspace, r.limits.Manifest)
	if !ok {
		return
	}
	globs, err := manifest.ParsePnpmWorkspace(content)
	if err != nil {
		r.logger.Debug(r.ctx, "Invalid pnpm-workspace.yaml", "error", err)
		return
	}
	r.addGlobs(globs)
	r.scanGlobs(globs)
}

func (r *resolution) yarn() {
	r.ws.IsYarnWorkspace = true
	r.project.MarkMonorepo()

	if pkg := r.readPackage(r.root); pkg != nil {
		r.addGlobs(pkg.Workspaces)
		r.scanGlobs(pkg.Workspaces)
	}
}

func (r *resolution) nx() {
	r.ws.IsNxWorkspace = true
	r.project.MarkMonorepo()

	if content, ok := r.read(manifest.NxJSON, r.limits.Manifest); ok {
		nx, err := manifest.ParseNx(content)
		if err != nil {
			r.logger.Debug(r.ctx, "Invalid nx.json", "error", err)
		} else {
			for _, project := range nx.Projects {
				r.addPackage(project.Root, project.Name)
			}
			for _, target := range nx.TargetDefaults {
				r.ws.AddTaskGroup(types.TaskGroup{Name: target, Type: types.TaskGroupNxTarget})
			}
		}
	}

	if content, ok := r.read(manifest.WorkspaceJSON, r.limits.Manifest); ok {
		workspace, err := manifest.ParseNxWorkspace(content)
		if err != nil {
			return
		}
		if workspace.Version != "" {
			r.ws.VersionStrategy = workspace.Version
		}
		for _, project := range workspace.Projects {
			r.addPackage(project.Root, project.Name)
		}
	}
}

func (r *resolution) rush() {
	r.ws.IsRush = true
	r.project.MarkMonorepo()

	content, ok := r.read(manifest.RushJSON, r.limits.Rush)
	if !ok {
		return
	}
	rush, err := manifest.ParseRush(content)
	if err != nil {
		r.logger.Debug(r.ctx, "Invalid rush.json", "error", err)
		return
	}

	for _, project := range rush.Projects {
		folder := project.ProjectFolder
		if folder == "" {
			continue
		}
		r.addPackage(folder, project.PackageName)
	}
	if strategy := rush.VersionStrategy(); strategy != "" {
		r.ws.VersionStrategy = strategy
	}
	if rush.BuildCacheEnabled && rush.CacheFolder != "" {
		r.ws.BuildCachePath = rush.CacheFolder
	}
}

// scanGlobs adds every directory matching one of globs that holds a
// package.json. Negated globs are ignored and ** matches a single level.
func (r *resolution) scanGlobs(globs []string) {
	for _, glob := range globs {
		if glob == "" || strings.HasPrefix(glob, "!") {
			continue
		}
		pattern := strings.ReplaceAll(strings.TrimSuffix(glob, "/"), "**", "*")
		matches, err := afero.Glob(r.fs, filepath.Join(r.root, filepath.FromSlash(pattern)))
		if err != nil {
			r.logger.Debug(r.ctx, "Invalid workspace glob", "glob", glob, "error", err)
			continue
		}
		for _, match := range matches {
			rel, err := filepath.Rel(r.root, match)
			if err != nil {
				continue
			}
			r.addPackage(filepath.ToSlash(rel), "")
		}
	}
}
