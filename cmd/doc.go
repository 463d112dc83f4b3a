// Package cmd provides the command-line interface for webpulse.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - analyze: Analyze a project tree and print the full report
//   - workspace: Show monorepo topology only
//   - metadata: Check explicit files for Salesforce CustomObject metadata
//   - watch: Re-run the analysis whenever the tree changes, optionally
//     serving a live dashboard
//   - version: Show build information
//
// # Command Examples
//
//	// Full text report for the current directory
//	webpulse analyze
//
//	// JSON report written to a file
//	webpulse analyze ./site --format json --output report.json
//
//	// Only the estimated DOMContentLoaded time
//	webpulse analyze --only value:dom_content_loaded
//
//	// Monorepo packages as YAML
//	webpulse workspace ./mono -f yaml
//
//	// Live dashboard on port 7070
//	webpulse watch --serve localhost:7070
package cmd
