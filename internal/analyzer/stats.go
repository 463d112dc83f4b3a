package analyzer

import (
	"fmt"
	"strings"

	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
)

// Advisory thresholds applied after traversal.
const (
	maxHealthyDependencies  = 100
	maxHealthyFrameworkDeps = 1
	maxExternalScripts      = 10
	maxExternalStylesheets  = 5
	maxExternalBytes        = 5000000
)

var frameworkDependencyMarkers = []string{"react", "vue", "angular", "svelte"}

// GenerateDependencyStatistics fills the dependency counters of project
// from the run's dependency cache and its dependency list, and records the
// dependency advisories.
func GenerateDependencyStatistics(project *types.ProjectRecord, cache *manifest.DependencyCache) {
	if project == nil {
		return
	}

	project.TotalDependencies = 0
	project.FrameworkDependencies = 0
	var entries []manifest.CachedDependency
	if cache != nil {
		project.TotalDependencies = cache.Len()
		entries = cache.Entries()
	}
	for _, entry := range entries {
		for _, marker := range frameworkDependencyMarkers {
			if strings.Contains(entry.Name, marker) {
				project.FrameworkDependencies++
				break
			}
		}
	}

	project.DevDependencies = project.Dependencies.DevCount()
	project.ProdDependencies = len(project.Dependencies) - project.DevDependencies

	if project.TotalDependencies > maxHealthyDependencies {
		project.AddIssue(fmt.Sprintf("High number of dependencies (%d) may impact maintenance and security",
			project.TotalDependencies), "")
	}
	if project.FrameworkDependencies > maxHealthyFrameworkDeps {
		project.AddIssue(fmt.Sprintf("Multiple framework dependencies detected (%d) - consider consolidating",
			project.FrameworkDependencies), "")
	}
}

// DeterminePrimaryFramework sets Framework and RequiredLibraries from the
// project's framework fingerprint.
func DeterminePrimaryFramework(project *types.ProjectRecord) {
	if project == nil {
		return
	}

	project.Framework = project.FrameworkInfo.PrimaryFramework()
	if names := project.FrameworkInfo.FrameworkNames(); len(names) > 0 {
		project.RequiredLibraries = strings.Join(names, ", ")
	} else {
		project.RequiredLibraries = "No framework detected"
	}
}

// AnalyzeExternalResources records advisories about the number and total
// size of the project's external scripts and stylesheets.
func AnalyzeExternalResources(project *types.ProjectRecord) {
	if project == nil {
		return
	}

	var scripts, stylesheets int
	var total int64
	for _, resource := range project.ExternalResources {
		switch resource.Type {
		case types.ResourceJS:
			scripts++
		case types.ResourceCSS:
			stylesheets++
		}
		total += resource.Size
	}

	if scripts > maxExternalScripts {
		project.AddIssue(fmt.Sprintf("High number of external JavaScript resources (%d) may impact load time", scripts), "")
	}
	if stylesheets > maxExternalStylesheets {
		project.AddIssue(fmt.Sprintf("High number of external CSS resources (%d) may impact load time", stylesheets), "")
	}
	if total > maxExternalBytes {
		project.AddIssue(fmt.Sprintf("Large total size of external resources (%.2f MB) may slow down page load",
			float64(total)/1000000.0), "")
	}
}
