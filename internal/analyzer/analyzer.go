// Package analyzer runs a complete project analysis.
//
// AnalyzeProjectType walks the project tree, scans every recognised file
// with the matching content scanner, folds the per-file metrics into one
// ProjectRecord, resolves monorepo topology and finally derives dependency
// statistics, the primary framework and resource advisories. Files are
// scanned in parallel and folded in walk order, so results (including
// which entries are dropped once a collection is full) are deterministic.
package analyzer

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
	"github.com/conneroisu/webpulse/internal/walker"
	"github.com/conneroisu/webpulse/internal/workspace"
)

// Options tune an analysis run.
type Options struct {
	// Workers is the number of concurrent file scanners.
	Workers int

	MaxFileSize     int64
	MaxManifestSize int64
	MaxRushSize     int64

	// Salesforce enables the CustomObject check on XML files.
	Salesforce bool

	// SkipDirs are excluded in addition to the default skip list.
	SkipDirs []string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	return Options{
		Workers:         workers,
		MaxFileSize:     manifest.MaxFileSize,
		MaxManifestSize: manifest.MaxManifestSize,
		MaxRushSize:     manifest.MaxRushSize,
	}
}

// Analyzer analyses project trees on a filesystem.
type Analyzer struct {
	fs      afero.Fs
	options Options
	logger  logging.Logger
}

// New creates an Analyzer. Zero option values fall back to the defaults and
// a nil logger discards output.
func New(fs afero.Fs, options Options, logger logging.Logger) *Analyzer {
	defaults := DefaultOptions()
	if options.Workers <= 0 {
		options.Workers = defaults.Workers
	}
	if options.MaxFileSize <= 0 {
		options.MaxFileSize = defaults.MaxFileSize
	}
	if options.MaxManifestSize <= 0 {
		options.MaxManifestSize = defaults.MaxManifestSize
	}
	if options.MaxRushSize <= 0 {
		options.MaxRushSize = defaults.MaxRushSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Analyzer{
		fs:      fs,
		options: options,
		logger:  logger.WithComponent("analyzer"),
	}
}

// Options returns the effective options.
func (a *Analyzer) Options() Options {
	return a.options
}

// run is the state of one analysis.
type run struct {
	*Analyzer
	project   *types.ProjectRecord
	cache     *manifest.DependencyCache
	collector *errors.Collector
	handler   *errors.ErrorHandler
	logger    logging.Logger

	// workspaceCandidates are directories below the root holding a
	// workspace marker, in walk order.
	workspaceCandidates []string
	// manifests are the package.json paths whose dependencies are in cache.
	manifests map[string]struct{}
}

func (a *Analyzer) newRun(project *types.ProjectRecord) *run {
	if project.RunID == "" {
		project.RunID = uuid.NewString()
	}
	logger := a.logger.With("run_id", project.RunID)
	return &run{
		Analyzer:  a,
		project:   project,
		cache:     manifest.NewDependencyCache(),
		collector: errors.NewCollector(),
		handler:   errors.NewErrorHandler(logger),
		logger:    logger,
		manifests: make(map[string]struct{}),
	}
}

// AnalyzeProjectType analyses the project rooted at root. It fails only
// when root cannot be read or ctx is cancelled; unreadable files are
// skipped and counted in SkippedFiles.
func (a *Analyzer) AnalyzeProjectType(ctx context.Context, root string) (*types.ProjectRecord, error) {
	project := types.NewProjectRecord(root)
	r := a.newRun(project)

	if err := r.traverse(ctx, root); err != nil {
		return nil, err
	}

	r.resolveWorkspace(ctx, root)
	GenerateDependencyStatistics(project, r.cache)
	DeterminePrimaryFramework(project)
	AnalyzeExternalResources(project)

	r.logger.Info(ctx, "Analysis complete",
		"root", root,
		"framework", project.Framework,
		"monorepo", project.IsMonorepo,
		"issues", len(project.Issues),
		"skipped", project.SkippedFiles)

	return project, nil
}

// TraverseDirectory walks root and folds every recognised file into
// project. It returns an error only when root cannot be read or ctx is
// cancelled.
func (a *Analyzer) TraverseDirectory(ctx context.Context, root string, project *types.ProjectRecord) error {
	return a.newRun(project).traverse(ctx, root)
}

func (r *run) traverse(ctx context.Context, root string) error {
	perf := logging.StartOperation(r.logger, "traverse")

	w := walker.New(r.fs,
		walker.WithSkipDirs(r.options.SkipDirs...),
		walker.WithMarkerFiles(manifest.PnpmWorkspace),
		walker.WithLogger(r.logger))

	var entries []walker.Entry
	stats, err := w.Walk(ctx, root, func(entry walker.Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		r.handler.Handle(ctx, err)
		perf.EndWithError(ctx, err)
		return err
	}

	results, err := newWorkerPool(r.options.Workers, r.scanFile).process(ctx, entries)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	for i, entry := range entries {
		r.fold(ctx, entry, results[i])
	}

	perf.End(ctx,
		"directories", stats.Directories,
		"files", stats.Files,
		"visited", stats.Visited,
		"skipped_files", r.project.SkippedFiles,
		"skipped_dirs", stats.SkippedDirs)

	for _, summary := range r.collector.Summary() {
		r.logger.Debug(ctx, "Skipped files", "code", summary.Code, "count", summary.Count)
	}

	return nil
}

// resolveWorkspace resolves the root as a workspace, falling back to the
// shallowest subdirectory that holds a workspace marker.
func (r *run) resolveWorkspace(ctx context.Context, root string) {
	resolver := workspace.NewResolver(r.fs, r.cache,
		workspace.WithLimits(workspace.Limits{Manifest: r.options.MaxManifestSize, Rush: r.options.MaxRushSize}),
		workspace.WithRecorded(func(path string) bool {
			_, ok := r.manifests[filepath.Clean(path)]
			return ok
		}),
		workspace.WithLogger(r.logger))

	if resolver.Resolve(ctx, root, r.project) {
		return
	}

	candidates := r.workspaceCandidates
	sort.SliceStable(candidates, func(i, j int) bool {
		return strings.Count(candidates[i], "/") < strings.Count(candidates[j], "/")
	})
	for _, dir := range candidates {
		if resolver.Resolve(ctx, filepath.Join(root, filepath.FromSlash(dir)), r.project) {
			return
		}
	}
}

// addWorkspaceCandidate records the directory of a marker file found
// below the root.
func (r *run) addWorkspaceCandidate(relPath string) {
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(relPath)))
	if dir == "." {
		return
	}
	for _, existing := range r.workspaceCandidates {
		if existing == dir {
			return
		}
	}
	r.workspaceCandidates = append(r.workspaceCandidates, dir)
}
