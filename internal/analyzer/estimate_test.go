package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conneroisu/webpulse/internal/types"
)

func estimationFixture(framework string) *types.ProjectRecord {
	p := types.NewProjectRecord("/p")
	p.Framework = framework
	p.TotalHTMLInfo.TagCount = 100
	p.TotalCSSInfo.RuleCount = 50
	p.TotalJSInfo.FunctionCount = 20
	p.TotalJSInfo.VariableCount = 40
	p.TotalJSONInfo.ObjectCount = 10
	p.TotalJSONInfo.ArrayCount = 4
	p.ImageFileCount = 2
	p.HTMLFileCount = 1
	p.CSSFileCount = 2
	p.JSFileCount = 3
	p.JSONFileCount = 1
	for i := 0; i < 3; i++ {
		p.CustomElements = append(p.CustomElements, types.CustomElement{Name: fmt.Sprintf("x-%d", i), Count: 1})
	}
	p.ExternalResources = []types.ExternalResource{
		{URL: "https://a.example/a.js", Type: types.ResourceJS},
		{URL: "https://a.example/a.css", Type: types.ResourceCSS},
	}
	return p
}

func TestEstimateResources(t *testing.T) {
	testCases := []struct {
		name      string
		framework string
		expected  types.ResourceEstimation
	}{
		{
			name:      "with framework",
			framework: types.FrameworkReact,
			expected: types.ResourceEstimation{
				JSHeapSize:             1647244,
				TransferredData:        22400,
				ResourceSize:           656300,
				DOMContentLoaded:       25,
				LargestContentfulPaint: 40,
			},
		},
		{
			name:      "without framework",
			framework: "",
			expected: types.ResourceEstimation{
				JSHeapSize:             2047244,
				TransferredData:        20400,
				ResourceSize:           586300,
				DOMContentLoaded:       21,
				LargestContentfulPaint: 28,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EstimateResources(estimationFixture(tc.framework)))
		})
	}
}

func TestEstimateResourcesEmptyProject(t *testing.T) {
	estimation := EstimateResources(types.NewProjectRecord("/empty"))

	assert.Equal(t, uint64(2000000), estimation.JSHeapSize)
	assert.Zero(t, estimation.TransferredData)
	assert.Zero(t, estimation.ResourceSize)
	assert.Equal(t, 7, estimation.DOMContentLoaded)
	assert.Equal(t, 7, estimation.LargestContentfulPaint)

	assert.Equal(t, types.ResourceEstimation{}, EstimateResources(nil))
}

func TestCalculatePerformanceImpact(t *testing.T) {
	testCases := []struct {
		name      string
		framework string
		expected  float64
	}{
		{"react bonus", "React", 20.52 / 30},
		{"angular bonus", "Angular", 20.52 / 30},
		{"detected vue name has no bonus", types.FrameworkVue, 10.52 / 30},
		{"no framework", "", 10.52 / 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, CalculatePerformanceImpact(estimationFixture(tc.framework)), 1e-9)
		})
	}
}

func TestCalculatePerformanceImpactIsNotClamped(t *testing.T) {
	p := types.NewProjectRecord("/huge")
	p.TotalJSInfo.FunctionCount = 10000

	impact := CalculatePerformanceImpact(p)
	assert.Greater(t, impact, 5.0)
	assert.InDelta(t, 1000.0/30, impact, 1e-9)
}

func TestCalculatePerformanceImpactNil(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePerformanceImpact(nil))
}

func TestCalculatePerformanceImpactCountsSalesforce(t *testing.T) {
	p := types.NewProjectRecord("/sf")
	p.SalesforceMetadata = []string{"a.object", "b.object", "c.object"}

	assert.InDelta(t, 0.6/30, CalculatePerformanceImpact(p), 1e-12)
}
