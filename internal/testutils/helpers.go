// Package testutils builds project fixtures for tests.
package testutils

import (
	"os"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WriteTree writes files, keyed by slash separated relative path, below a
// fresh temporary directory and returns that directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
	return root
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// MemTree returns an in-memory filesystem holding files, keyed by absolute
// slash separated path.
func MemTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(path.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

// CreateTempProject writes a small static site: one page, one stylesheet
// and one script, plus a node_modules directory that analysis must skip.
func CreateTempProject(t *testing.T) string {
	t.Helper()
	return WriteTree(t, map[string]string{
		"index.html": `<html><head><link rel="stylesheet" href="style.css"></head>` +
			`<body><div id="root"></div><script src="app.js"></script></body></html>`,
		"style.css":                      `body { margin: 0; } .card { padding: 4px; }`,
		"app.js":                         "import { render } from './render.js';\nrender();",
		"node_modules/left-pad/index.js": `module.exports = function () {};`,
	})
}

// Eventually polls cond every 10ms until it holds or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("condition not met within %v: %s", timeout, msg)
}
