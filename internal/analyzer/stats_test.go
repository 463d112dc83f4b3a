package analyzer

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/types"
)

func TestGenerateDependencyStatistics(t *testing.T) {
	cache := manifest.NewDependencyCache()
	for _, name := range []string{"react", "react-dom", "vue", "lodash"} {
		cache.Add(name, "1.0.0")
	}
	project := types.NewProjectRecord("/p")
	project.Dependencies = types.DependencyList{
		{Name: "react", Version: "1.0.0"},
		{Name: "lodash", Version: "1.0.0"},
		{Name: "jest", Version: "29.0.0", Dev: true},
	}

	GenerateDependencyStatistics(project, cache)

	assert.Equal(t, 4, project.TotalDependencies)
	assert.Equal(t, 3, project.FrameworkDependencies)
	assert.Equal(t, 1, project.DevDependencies)
	assert.Equal(t, 2, project.ProdDependencies)
	assert.Equal(t, []types.Issue{
		{Description: "Multiple framework dependencies detected (3) - consider consolidating"},
	}, project.Issues)
}

func TestGenerateDependencyStatisticsManyDependencies(t *testing.T) {
	cache := manifest.NewDependencyCache()
	for i := 0; i < 101; i++ {
		cache.Add(fmt.Sprintf("dep-%d", i), "1.0.0")
	}
	project := types.NewProjectRecord("/p")

	GenerateDependencyStatistics(project, cache)

	require.Len(t, project.Issues, 1)
	assert.Equal(t, "High number of dependencies (101) may impact maintenance and security", project.Issues[0].Description)

	GenerateDependencyStatistics(nil, cache)
}

func TestDeterminePrimaryFramework(t *testing.T) {
	none := types.NewProjectRecord("/p")
	DeterminePrimaryFramework(none)
	assert.Equal(t, "", none.Framework)
	assert.Equal(t, "No framework detected", none.RequiredLibraries)

	mixed := types.NewProjectRecord("/p")
	mixed.FrameworkInfo.HasVue = true
	mixed.FrameworkInfo.HasNuxtJS = true
	mixed.FrameworkInfo.HasSvelte = true
	DeterminePrimaryFramework(mixed)
	assert.Equal(t, types.FrameworkVue, mixed.Framework)
	assert.Equal(t, "Vue.js (Nuxt.js), Svelte", mixed.RequiredLibraries)

	node := types.NewProjectRecord("/p")
	node.FrameworkInfo.HasNodeJS = true
	DeterminePrimaryFramework(node)
	assert.Equal(t, types.FrameworkNode, node.Framework)
	assert.Equal(t, "No framework detected", node.RequiredLibraries)
}

func TestAnalyzeExternalResources(t *testing.T) {
	project := types.NewProjectRecord("/p")
	for i := 0; i < 11; i++ {
		project.ExternalResources = append(project.ExternalResources,
			types.ExternalResource{URL: fmt.Sprintf("https://cdn.example/%d.js", i), Type: types.ResourceJS})
	}
	for i := 0; i < 6; i++ {
		project.ExternalResources = append(project.ExternalResources,
			types.ExternalResource{URL: fmt.Sprintf("https://cdn.example/%d.css", i), Type: types.ResourceCSS, Size: 1000000})
	}

	AnalyzeExternalResources(project)

	assert.Equal(t, []types.Issue{
		{Description: "High number of external JavaScript resources (11) may impact load time"},
		{Description: "High number of external CSS resources (6) may impact load time"},
		{Description: "Large total size of external resources (6.00 MB) may slow down page load"},
	}, project.Issues)
}

func TestAnalyzeExternalResourcesBelowThresholds(t *testing.T) {
	project := types.NewProjectRecord("/p")
	for i := 0; i < 10; i++ {
		project.ExternalResources = append(project.ExternalResources,
			types.ExternalResource{URL: "https://cdn.example/x.js", Type: types.ResourceJS, Size: 500000})
	}

	AnalyzeExternalResources(project)
	assert.Empty(t, project.Issues)
}

func TestAnalyzeSalesforceMetadata(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sf/Account.object",
		[]byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<CustomObject xmlns=\"http://soap.sforce.com/2006/04/metadata\">\n</CustomObject>\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/sf/Layout.xml", []byte("<Layout>\n</Layout>\n"), 0o644))

	project := types.NewProjectRecord("/sf")

	assert.True(t, AnalyzeSalesforceMetadata(fs, "/sf/Account.object", project))
	assert.False(t, AnalyzeSalesforceMetadata(fs, "/sf/Layout.xml", project))
	assert.False(t, AnalyzeSalesforceMetadata(fs, "/sf/missing.object", project))
	assert.Equal(t, []string{"/sf/Account.object"}, project.SalesforceMetadata)

	assert.True(t, AnalyzeSalesforceMetadata(fs, "/sf/Account.object", nil))
}

func TestAnalyzeSalesforceMetadataCap(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.object", []byte("<CustomObject/>"), 0o644))

	project := types.NewProjectRecord("/")
	project.SalesforceMetadata = make([]string, types.MaxSalesforceMetadata)

	assert.True(t, AnalyzeSalesforceMetadata(fs, "/a.object", project))
	assert.Len(t, project.SalesforceMetadata, types.MaxSalesforceMetadata)
}
