// Package report renders analysis results.
//
// A Report bundles a ProjectRecord with its resource estimation and
// performance impact score. It can be written as a styled text summary,
// JSON, YAML or a standalone HTML page. The Display helpers print the
// individual blocks of the text summary.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/webpulse/internal/analyzer"
	"github.com/conneroisu/webpulse/internal/types"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatHTML}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Report is the complete result of one analysis run.
type Report struct {
	Project     *types.ProjectRecord     `json:"project" yaml:"project"`
	Estimation  types.ResourceEstimation `json:"estimation" yaml:"estimation"`
	Impact      float64                  `json:"performance_impact" yaml:"performance_impact"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
}

// New derives the estimation and impact score of project.
func New(project *types.ProjectRecord) *Report {
	return &Report{
		Project:     project,
		Estimation:  analyzer.EstimateResources(project),
		Impact:      analyzer.CalculatePerformanceImpact(project),
		GeneratedAt: time.Now().UTC(),
	}
}

// Options control rendering.
type Options struct {
	// Color enables terminal styling in text output.
	Color bool
}

// Write renders r to w in format.
func Write(ctx context.Context, w io.Writer, r *Report, format Format, opts Options) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatHTML:
		return Page(r).Render(ctx, w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
