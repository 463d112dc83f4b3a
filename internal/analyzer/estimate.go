package analyzer

import "github.com/conneroisu/webpulse/internal/types"

// frameworkImpactBonus is added to the impact sum for these primary
// framework names. "Vue.js", the name produced by detection, is not one of
// them.
var frameworkImpactBonus = map[string]bool{
	"ZephyrJS": true,
	"React":    true,
	"Vue":      true,
	"Angular":  true,
}

// EstimateResources derives a heuristic runtime cost from the counters of
// an analysed project. It is a pure function of project.
func EstimateResources(project *types.ProjectRecord) types.ResourceEstimation {
	if project == nil {
		return types.ResourceEstimation{}
	}

	hasFramework := project.Framework != ""
	framework := func(value float64) float64 {
		if hasFramework {
			return value
		}
		return 0
	}

	tags := float64(project.TotalHTMLInfo.TagCount)
	rules := float64(project.TotalCSSInfo.RuleCount)
	funcs := float64(project.TotalJSInfo.FunctionCount)
	vars := float64(project.TotalJSInfo.VariableCount)
	objects := float64(project.TotalJSONInfo.ObjectCount)
	arrays := float64(project.TotalJSONInfo.ArrayCount)
	images := float64(project.ImageFileCount)
	elements := float64(len(project.CustomElements))
	external := float64(len(project.ExternalResources))

	html := float64(project.HTMLFileCount)
	css := float64(project.CSSFileCount)
	js := float64(project.JSFileCount)
	json := float64(project.JSONFileCount)

	baseHeap := 2000000.0
	if hasFramework {
		baseHeap = 1000000.0
	}
	heap := baseHeap +
		tags*60 +
		rules*30 +
		vars*30 + funcs*120 +
		objects*12 + arrays*6 +
		images*12000 +
		elements*4000 +
		framework(600000)

	transferred := html*1200 + css*3000 + js*3000 + json*600 + images*300 + external*1500 + framework(2000)
	size := html*4500 + css*45000 + js*90000 + json*1800 + images*75000 + external*35000 + framework(70000)

	dcl := int(7 + tags*0.07 + rules*0.03 + funcs*0.14 + elements*0.4 + external*0.8 + framework(4))
	lcp := int(float64(dcl) + images*0.35 + rules*0.07 + external*1.7 + framework(8))

	return types.ResourceEstimation{
		JSHeapSize:             uint64(heap),
		TransferredData:        uint64(transferred),
		ResourceSize:           uint64(size),
		DOMContentLoaded:       dcl,
		LargestContentfulPaint: lcp,
	}
}

// CalculatePerformanceImpact scores a project on a nominal 0 to 5 scale.
// The score is not clamped: large projects exceed 5. A nil project scores 0.
func CalculatePerformanceImpact(project *types.ProjectRecord) float64 {
	if project == nil {
		return 0
	}

	impact := float64(project.TotalJSInfo.FunctionCount)*0.1 +
		float64(project.TotalCSSInfo.RuleCount)*0.05 +
		float64(project.TotalHTMLInfo.TagCount)*0.02 +
		float64(len(project.CustomElements))*0.5 +
		float64(len(project.ExternalResources))*1.0 +
		float64(len(project.SalesforceMetadata))*0.2 +
		float64(project.TotalJSONInfo.ObjectCount)*0.01 +
		float64(project.TotalJSONInfo.ArrayCount)*0.005 +
		float64(project.ImageFileCount)*0.2

	if frameworkImpactBonus[project.Framework] {
		impact += 10
	}

	return impact / 150 * 5
}
