//go:build property
// +build property

package parsers

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/webpulse/internal/types"
)

// TestJSONProperties checks that string contents never influence the
// structural counts.
func TestJSONProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("brackets inside strings are ignored", prop.ForAll(
		func(noise string) bool {
			escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(noise)
			doc := `{"a": "` + escaped + `", "b": [1, 2]}`
			info := ParseJSON(doc)
			return info.ObjectCount == 1 && info.ArrayCount == 1 && info.MaxNestingLevel == 2 && info.KeyCount == 2
		},
		gen.RegexMatch(`[\{\}\[\]:"\\a-z ]{0,40}`),
	))

	properties.Property("nested objects report their depth", prop.ForAll(
		func(depth int) bool {
			doc := strings.Repeat(`{"k":`, depth) + "0" + strings.Repeat("}", depth)
			return ParseJSON(doc).MaxNestingLevel == depth
		},
		gen.IntRange(1, 40),
	))

	properties.Property("nested arrays report their depth", prop.ForAll(
		func(depth int) bool {
			doc := strings.Repeat("[", depth) + "0" + strings.Repeat("]", depth)
			return ParseJSON(doc).MaxNestingLevel == depth
		},
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}

// TestScannerCapProperties checks that bounded collections never exceed
// their capacity.
func TestScannerCapProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("html collections respect their caps", prop.ForAll(
		func(tags []string) bool {
			info := ParseHTML(strings.Join(tags, ""))
			return len(info.CustomElements) <= types.MaxCustomElements &&
				len(info.ExternalResources) <= types.MaxExternalResources &&
				len(info.FrameworkComponents) <= types.MaxFrameworkComponents &&
				len(info.Issues) <= types.MaxScannerIssues
		},
		gen.SliceOfN(200, gen.OneConstOf(
			`<app-a>`, `<zephyr-b>`, `<ng-c>`, `<x-d>`,
			`<script src="https://cdn.example.com/a.js">`,
			`<link rel="stylesheet" href="https://cdn.example.com/a.css">`,
		)),
	))

	properties.Property("xml depth never goes negative", prop.ForAll(
		func(parts []string) bool {
			info := ParseXML(strings.Join(parts, ""))
			return info.MaxNestingLevel >= 0 && info.MaxNestingLevel <= info.ElementCount
		},
		gen.SliceOfN(50, gen.OneConstOf("<a>", "</a>", "<b/>", "<?xml ?>", "<!-- c -->")),
	))

	properties.Property("scanning is idempotent", prop.ForAll(
		func(content string) bool {
			first := ParseJSX(content)
			second := ParseJSX(content)
			return first.CustomComponentCount == second.CustomComponentCount &&
				first.MaxComponentNesting == second.MaxComponentNesting &&
				first.HookCount == second.HookCount
		},
		gen.RegexMatch(`(<[A-Za-z]{1,5}( \{\.\.\.p\})? ?/?>|</[A-Z][a-z]{0,3}>|useState\(\)){0,20}`),
	))

	properties.TestingRun(t)
}
