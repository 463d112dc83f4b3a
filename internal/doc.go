// Package internal contains the core implementation packages for webpulse.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the webpulse CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - types: The project record and the per-file metric records
//   - walker: Bounded iterative directory traversal and file classification
//   - parsers: Heuristic content scanners for HTML, CSS, JS, TS, JSX, Vue,
//     XML and JSON
//   - detect: Framework fingerprints and version normalisation
//   - manifest: package.json, lerna.json, nx.json, rush.json, turbo.json
//     and pnpm-workspace.yaml readers
//   - workspace: Monorepo topology resolution
//   - analyzer: The analysis pipeline, worker pool, statistics and estimation
//   - report: Text, JSON, YAML and HTML rendering
//   - config: Viper backed configuration with validation
//   - logging: Structured slog logging with optional rotating files
//   - errors: Typed analysis errors and error collection
//   - watcher: Debounced fsnotify watching
//   - server: Live dashboard with websocket updates
//   - middleware, validation: HTTP middleware and origin checks for the
//     dashboard
//   - version: Build information
//   - testutils: Fixtures shared by tests
//
// # Data Flow
//
// The walker feeds recognised files to the analyzer's worker pool. Each
// worker runs the matching parser and returns a per-file result, which a
// single goroutine folds into the ProjectRecord. Workspace resolution and
// the statistics pass finish the record, and the report package renders it.
// In watch mode the watcher triggers a new analysis after each burst of
// changes and the server pushes the new report to connected browsers.
//
// For detailed documentation, see the individual package documentation.
package internal
