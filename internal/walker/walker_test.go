package walker

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webpulse/internal/errors"
)

func newTree(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, file := range files {
		require.NoError(t, afero.WriteFile(fs, file, []byte("x"), 0o644))
	}
	return fs
}

func collect(t *testing.T, w *Walker, root string) ([]string, Stats) {
	t.Helper()
	var visited []string
	stats, err := w.Walk(context.Background(), root, func(entry Entry) error {
		visited = append(visited, entry.RelPath)
		return nil
	})
	require.NoError(t, err)
	return visited, stats
}

func TestWalkOrderAndSkips(t *testing.T) {
	fs := newTree(t,
		"/proj/index.html",
		"/proj/package.json",
		"/proj/README.md",
		"/proj/logo.PNG",
		"/proj/src/app.js",
		"/proj/src/components/Button.jsx",
		"/proj/lib/a.ts",
		"/proj/node_modules/react/index.js",
		"/proj/dist/out.js",
		"/proj/.git/config",
		"/proj/.next/cache.json",
	)

	visited, stats := collect(t, New(fs), "/proj")

	assert.Equal(t, []string{
		"index.html",
		"logo.PNG",
		"package.json",
		"lib/a.ts",
		"src/app.js",
		"src/components/Button.jsx",
	}, visited)
	assert.Equal(t, 4, stats.Directories)
	assert.Equal(t, 7, stats.Files)
	assert.Equal(t, 6, stats.Visited)
	assert.Zero(t, stats.Truncated)
}

func TestWalkEntryFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/src/view.vue", []byte("<template></template>"), 0o644))

	var entries []Entry
	_, err := New(fs).Walk(context.Background(), "/p", func(entry Entry) error {
		entries = append(entries, entry)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{
		Path:    "/p/src/view.vue",
		RelPath: "src/view.vue",
		Name:    "view.vue",
		Kind:    KindVue,
		Size:    21,
	}, entries[0])
}

func TestWalkMarkerFiles(t *testing.T) {
	fs := newTree(t, "/p/web/pnpm-workspace.yaml", "/p/web/other.yaml", "/p/web/a.js")

	var kinds []Kind
	visited := []string{}
	_, err := New(fs, WithMarkerFiles("pnpm-workspace.yaml")).Walk(context.Background(), "/p", func(entry Entry) error {
		visited = append(visited, entry.RelPath)
		kinds = append(kinds, entry.Kind)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"web/a.js", "web/pnpm-workspace.yaml"}, visited)
	assert.Equal(t, []Kind{KindJS, KindMarker}, kinds)
	assert.False(t, KindMarker.Scanned())

	plain, _ := collect(t, New(fs), "/p")
	assert.Equal(t, []string{"web/a.js"}, plain)
}

func TestWalkExtraSkipDirs(t *testing.T) {
	fs := newTree(t, "/p/a.js", "/p/vendor/b.js", "/p/tmp/c.js")

	visited, _ := collect(t, New(fs, WithSkipDirs("vendor", "tmp")), "/p")
	assert.Equal(t, []string{"a.js"}, visited)
}

func TestWalkStackCapacityKeepsFirstDirectories(t *testing.T) {
	fs := newTree(t, "/p/a/1.js", "/p/b/2.js", "/p/c/3.js")

	visited, stats := collect(t, New(fs, WithStackSize(2)), "/p")
	assert.Equal(t, []string{"a/1.js", "b/2.js"}, visited)
	assert.Equal(t, 1, stats.Truncated)
}

func TestWalkRootUnreadable(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Walk(context.Background(), "/missing", func(Entry) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRootUnreadable))
	assert.False(t, errors.IsRecoverable(err))
}

func TestWalkStopsOnVisitError(t *testing.T) {
	fs := newTree(t, "/p/a.js", "/p/b.js")
	stop := fmt.Errorf("stop")

	calls := 0
	_, err := New(fs).Walk(context.Background(), "/p", func(Entry) error {
		calls++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestWalkCancelled(t *testing.T) {
	fs := newTree(t, "/p/a.js", "/p/sub/b.js")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fs).Walk(ctx, "/p", func(Entry) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShouldSkipDir(t *testing.T) {
	w := New(afero.NewMemMapFs())
	for _, name := range DefaultSkipDirs {
		assert.True(t, w.ShouldSkipDir(name), name)
	}
	assert.True(t, w.ShouldSkipDir(".."))
	assert.False(t, w.ShouldSkipDir("src"))
	assert.False(t, w.ShouldSkipDir(".changeset"))
}

func TestClassify(t *testing.T) {
	testCases := map[string]Kind{
		"index.html":     KindHTML,
		"page.HTM":       KindHTML,
		"site.css":       KindCSS,
		"app.mjs":        KindJS,
		"app.cjs":        KindJS,
		"main.ts":        KindTS,
		"App.tsx":        KindTS,
		"App.jsx":        KindJSX,
		"View.vue":       KindVue,
		"pom.xml":        KindXML,
		"Account.object": KindXML,
		"package.json":   KindJSON,
		"logo.svg":       KindImage,
		"photo.JPEG":     KindImage,
		"README.md":      KindUnknown,
		"Makefile":       KindUnknown,
	}
	for name, expected := range testCases {
		assert.Equal(t, expected, Classify(name), name)
	}

	assert.True(t, KindJSON.Scanned())
	assert.False(t, KindImage.Scanned())
	assert.Equal(t, "jsx", KindJSX.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
