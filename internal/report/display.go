package report

import (
	"fmt"
	"io"

	"github.com/conneroisu/webpulse/internal/types"
)

// Units accepted by DisplaySpecificValue.
const (
	UnitMB = "MB"
	UnitKB = "KB"
	UnitMS = "ms"
)

// DisplayResourceUsage prints the estimated resource usage block.
func DisplayResourceUsage(w io.Writer, estimation types.ResourceEstimation) error {
	_, err := fmt.Fprintf(w, "Estimated Resource Usage:\n"+
		"Total JS Heap Size: %.2f MB (%.0f bytes)\n"+
		"Transferred Data: %.2f KB (%.0f bytes)\n"+
		"Resource Size: %.2f KB (%.0f bytes)\n"+
		"DOMContentLoaded: %d ms\n"+
		"Largest Contentful Paint (LCP): %d ms\n",
		float64(estimation.JSHeapSize)/1000000.0, float64(estimation.JSHeapSize),
		float64(estimation.TransferredData)/1000.0, float64(estimation.TransferredData),
		float64(estimation.ResourceSize)/1000.0, float64(estimation.ResourceSize),
		estimation.DOMContentLoaded,
		estimation.LargestContentfulPaint)
	return err
}

// DisplayPotentialIssues prints a numbered list of issues.
func DisplayPotentialIssues(w io.Writer, issues []types.Issue) error {
	if _, err := fmt.Fprint(w, "\nPotential Issues:\n"); err != nil {
		return err
	}
	for i, issue := range issues {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, issue.Description); err != nil {
			return err
		}
		if issue.Location != "" {
			if _, err := fmt.Fprintf(w, "   Location: %s\n", issue.Location); err != nil {
				return err
			}
		}
	}
	return nil
}

// DisplaySpecificValue prints one named value. unit selects the rendering:
// MB and KB show the scaled value and the raw byte count, ms truncates to
// whole milliseconds and anything else prints two decimals.
func DisplaySpecificValue(w io.Writer, name string, value float64, unit string) error {
	var err error
	switch unit {
	case UnitMB:
		_, err = fmt.Fprintf(w, "%s: %.2f MB (%.0f bytes)\n", name, value/1000000.0, value)
	case UnitKB:
		_, err = fmt.Fprintf(w, "%s: %.2f KB (%.0f bytes)\n", name, value/1000.0, value)
	case UnitMS:
		_, err = fmt.Fprintf(w, "%s: %d ms\n", name, int(value))
	default:
		_, err = fmt.Fprintf(w, "%s: %.2f\n", name, value)
	}
	return err
}

// Value is a named scalar of a report.
type Value struct {
	Key   string
	Label string
	Unit  string
	Get   func(*Report) float64
}

// Values are the scalars selectable with Lookup, in display order.
var Values = []Value{
	{Key: "js_heap_size", Label: "Total JS Heap Size", Unit: UnitMB,
		Get: func(r *Report) float64 { return float64(r.Estimation.JSHeapSize) }},
	{Key: "transferred_data", Label: "Transferred Data", Unit: UnitKB,
		Get: func(r *Report) float64 { return float64(r.Estimation.TransferredData) }},
	{Key: "resource_size", Label: "Resource Size", Unit: UnitKB,
		Get: func(r *Report) float64 { return float64(r.Estimation.ResourceSize) }},
	{Key: "dom_content_loaded", Label: "DOMContentLoaded", Unit: UnitMS,
		Get: func(r *Report) float64 { return float64(r.Estimation.DOMContentLoaded) }},
	{Key: "largest_contentful_paint", Label: "Largest Contentful Paint (LCP)", Unit: UnitMS,
		Get: func(r *Report) float64 { return float64(r.Estimation.LargestContentfulPaint) }},
	{Key: "performance_impact", Label: "Performance Impact Score",
		Get: func(r *Report) float64 { return r.Impact }},
}

// Lookup finds a value by key.
func Lookup(key string) (Value, bool) {
	for _, v := range Values {
		if v.Key == key {
			return v, true
		}
	}
	return Value{}, false
}

// DisplayValue prints the value called key.
func DisplayValue(w io.Writer, r *Report, key string) error {
	v, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown value %q", key)
	}
	return DisplaySpecificValue(w, v.Label, v.Get(r), v.Unit)
}
