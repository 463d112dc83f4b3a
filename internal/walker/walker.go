// Package walker enumerates the files of a project tree.
//
// The walk is an explicit-stack pre-order traversal: each directory's files
// are visited in name order before any of its subdirectories. Dependency,
// build output and tooling directories are skipped by name, and only files
// with a recognised extension or a registered marker name reach the visitor.
package walker

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/conneroisu/webpulse/internal/errors"
	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/types"
)

// DefaultSkipDirs are never descended into.
var DefaultSkipDirs = []string{
	"node_modules", ".git", ".github", "dist", "build", "coverage", "bin",
	".next", ".nuxt", ".cache", "docs", ".vscode", ".idea",
}

// Entry is a visited file.
type Entry struct {
	// Path is the file path as passed to the filesystem.
	Path string
	// RelPath is Path relative to the walk root, slash separated.
	RelPath string
	Name    string
	Kind    Kind
	Size    int64
}

// Stats summarises a walk.
type Stats struct {
	Directories int
	Files       int
	Visited     int
	SkippedDirs int
	// Truncated counts directories that were not descended into because
	// the stack was full.
	Truncated int
}

// VisitFunc is called for each recognised file. Returning an error stops
// the walk and Walk returns that error.
type VisitFunc func(entry Entry) error

// Walker walks directory trees on an afero filesystem.
type Walker struct {
	fs        afero.Fs
	skip      map[string]struct{}
	markers   map[string]struct{}
	stackSize int
	logger    logging.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithSkipDirs adds directory names to the skip list.
func WithSkipDirs(names ...string) Option {
	return func(w *Walker) {
		for _, name := range names {
			if name != "" {
				w.skip[name] = struct{}{}
			}
		}
	}
}

// WithMarkerFiles makes files with one of names visible to the visitor as
// KindMarker when their extension is not otherwise recognised.
func WithMarkerFiles(names ...string) Option {
	return func(w *Walker) {
		for _, name := range names {
			if name != "" {
				w.markers[name] = struct{}{}
			}
		}
	}
}

// WithStackSize bounds the number of pending directories.
func WithStackSize(size int) Option {
	return func(w *Walker) {
		if size > 0 {
			w.stackSize = size
		}
	}
}

// WithLogger sets the logger used for skipped directories.
func WithLogger(logger logging.Logger) Option {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger.WithComponent("walker")
		}
	}
}

// New creates a Walker over fs.
func New(fs afero.Fs, opts ...Option) *Walker {
	w := &Walker{
		fs:        fs,
		skip:      make(map[string]struct{}, len(DefaultSkipDirs)),
		markers:   make(map[string]struct{}),
		stackSize: types.DirStackSize,
		logger:    logging.NewNop(),
	}
	for _, name := range DefaultSkipDirs {
		w.skip[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ShouldSkipDir reports whether a directory called name is excluded.
func (w *Walker) ShouldSkipDir(name string) bool {
	if name == "." || name == ".." {
		return true
	}
	_, ok := w.skip[name]
	return ok
}

// Walk visits every recognised file below root. It fails only when root
// itself cannot be read, when ctx is cancelled or when visit returns an
// error. Unreadable subdirectories are skipped.
func (w *Walker) Walk(ctx context.Context, root string, visit VisitFunc) (Stats, error) {
	var stats Stats

	entries, err := afero.ReadDir(w.fs, root)
	if err != nil {
		return stats, errors.ErrRootUnreadable(root, err).WithComponent("walker")
	}

	stack := make([]string, 0, 64)
	dir := root
	for {
		stats.Directories++

		var subdirs []string
		for _, info := range entries {
			name := info.Name()
			path := filepath.Join(dir, name)

			if info.IsDir() {
				if !w.ShouldSkipDir(name) {
					subdirs = append(subdirs, path)
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}

			stats.Files++
			kind := w.classify(name)
			if kind == KindUnknown {
				continue
			}

			stats.Visited++
			if err := visit(Entry{
				Path:    path,
				RelPath: relPath(root, path),
				Name:    name,
				Kind:    kind,
				Size:    info.Size(),
			}); err != nil {
				return stats, err
			}
		}

		if free := w.stackSize - len(stack); len(subdirs) > free {
			stats.Truncated += len(subdirs) - free
			subdirs = subdirs[:free]
		}
		// Pushed in reverse so they pop in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}

		for {
			if len(stack) == 0 {
				return stats, nil
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			dir = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err = afero.ReadDir(w.fs, dir)
			if err == nil {
				break
			}
			stats.SkippedDirs++
			w.logger.Debug(ctx, "Skipping unreadable directory", "path", dir, "error", err)
		}
	}
}

func (w *Walker) classify(name string) Kind {
	kind := Classify(name)
	if kind == KindUnknown {
		if _, ok := w.markers[name]; ok {
			return KindMarker
		}
	}
	return kind
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// IsDir reports whether path is an existing directory.
func IsDir(fs afero.Fs, path string) bool {
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}
