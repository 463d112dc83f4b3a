package parsers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webpulse/internal/types"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
<script src="https://unpkg.com/react@18/umd/react.js"></script>
<script src="/local.js"></script>
<script data-src="https://cdn.example.com/lazy.js"></script>
<link rel="stylesheet" href="https://cdn.example.com/site.css">
<link rel="icon" href="https://cdn.example.com/favicon.ico">
<style>body{}</style>
</head>
<body>
<app-root></app-root>
<zephyr-button></zephyr-button>
<zephyr-button></zephyr-button>
<my-widget data-x="1"></my-widget>
<!-- comment -->
</body>
</html>
`

func TestParseHTML(t *testing.T) {
	info := ParseHTML(sampleHTML)

	assert.Equal(t, 26, info.TagCount)
	assert.Equal(t, 3, info.ScriptCount)
	assert.Equal(t, 2, info.LinkCount)
	assert.Equal(t, 1, info.StyleCount)
	assert.True(t, info.IsReact)
	assert.True(t, info.IsAngular)
	assert.True(t, info.IsZephyr)
	assert.False(t, info.IsVue)

	assert.Equal(t, []types.ExternalResource{
		{URL: "https://unpkg.com/react@18/umd/react.js", Type: types.ResourceJS},
		{URL: "https://cdn.example.com/site.css", Type: types.ResourceCSS},
	}, info.ExternalResources)

	assert.Equal(t, []types.CustomElement{
		{Name: "app-root", Count: 1},
		{Name: "zephyr-button", Count: 2},
		{Name: "my-widget", Count: 1},
	}, info.CustomElements)
	assert.Equal(t, []string{"app-root", "zephyr-button", "zephyr-button"}, info.FrameworkComponents)
	assert.Empty(t, info.Issues)
}

func TestParseHTMLIssues(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 22; i++ {
		fmt.Fprintf(&b, `<script src="https://cdn.example.com/%d.js"></script>`, i)
	}

	info := ParseHTML(b.String())
	require.Len(t, info.Issues, 2)
	assert.Equal(t, "High number of script tags (22) may impact performance", info.Issues[0].Description)
	assert.Equal(t, "High number of external resources (22) may slow down page load", info.Issues[1].Description)
}

func TestParseHTMLCustomElementCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < types.MaxCustomElements+10; i++ {
		fmt.Fprintf(&b, "<x-el%d></x-el%d>", i, i)
	}

	info := ParseHTML(b.String())
	assert.Len(t, info.CustomElements, types.MaxCustomElements)
	assert.Equal(t, "x-el0", info.CustomElements[0].Name)
}

func TestParseHTMLEmptyAndTruncated(t *testing.T) {
	assert.Equal(t, types.HTMLInfo{}, ParseHTML(""))

	info := ParseHTML(`<script src="https://a.example.com/x.js`)
	assert.Equal(t, 1, info.ScriptCount)
	require.Len(t, info.ExternalResources, 1)
	assert.Equal(t, "https://a.example.com/x.js", info.ExternalResources[0].URL)
}

func TestParseCSS(t *testing.T) {
	css := "a, b { color: red; }\n@media (max-width: 100px) { .c { margin: 0; } }\n@keyframes spin { from { top: 0 } }"
	info := ParseCSS(css)

	assert.Equal(t, 5, info.RuleCount)
	assert.Equal(t, 6, info.SelectorCount)
	assert.Equal(t, 4, info.PropertyCount)
	assert.Equal(t, 1, info.MediaQueryCount)
	assert.Equal(t, 1, info.KeyframeCount)
	assert.Empty(t, info.Issues)
}

func TestParseCSSIssues(t *testing.T) {
	css := strings.Repeat("@media print { .a { } }\n", 51)
	info := ParseCSS(css)

	require.Len(t, info.Issues, 1)
	assert.Equal(t, "High number of media queries (51) may complicate responsive design", info.Issues[0].Description)

	many := ParseCSS(strings.Repeat(".a{}", 4001))
	require.Len(t, many.Issues, 1)
	assert.Equal(t, "High number of selectors (4001) may cause performance issues", many.Issues[0].Description)
}

func TestParseJavaScript(t *testing.T) {
	js := `const a = 1;
let b = () => 2;
async function load() {
  return new Promise((resolve) => resolve(1));
}
class App extends React.Component {
  render() { return React.createElement('div'); }
}
class Plain {}
document.addEventListener('click', function () {});
new Vue({});
angular.module('x', []);
`
	info := ParseJavaScript(js)

	assert.Equal(t, 4, info.FunctionCount)
	assert.Equal(t, 2, info.VariableCount)
	assert.Equal(t, 2, info.ClassCount)
	assert.Equal(t, 2, info.ReactComponentCount)
	assert.Equal(t, 1, info.VueInstanceCount)
	assert.Equal(t, 1, info.AngularModuleCount)
	assert.Equal(t, 1, info.EventListenerCount)
	assert.Equal(t, 1, info.AsyncFunctionCount)
	assert.Equal(t, 1, info.PromiseCount)
	assert.Equal(t, 0, info.ClosureCount)
	assert.True(t, info.Framework.HasReact)
	assert.Empty(t, info.Issues)
}

func TestParseJavaScriptClosures(t *testing.T) {
	js := "function outer() { function inner() { function deepest() {} } }"
	assert.Equal(t, 2, ParseJavaScript(js).ClosureCount)

	// Stray braces never push the depth below zero.
	assert.Equal(t, 1, ParseJavaScript("}}} function a() { function b() {} }").ClosureCount)
}

func TestParseJavaScriptIssues(t *testing.T) {
	js := strings.Repeat("el.addEventListener('x', function () {});\n", 51)
	info := ParseJavaScript(js)

	require.Len(t, info.Issues, 1)
	assert.Equal(t, "High number of event listeners (51) may cause memory leaks if not properly managed",
		info.Issues[0].Description)
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.JSONInfo
	}{
		{
			name:     "braces inside strings are ignored",
			input:    `{"a": "{not a brace}", "b": [1,2]}`,
			expected: types.JSONInfo{ObjectCount: 1, ArrayCount: 1, KeyCount: 2, MaxNestingLevel: 2},
		},
		{
			name:     "escaped quotes and backslashes",
			input:    `{"a": "say \"{hi}\"", "b": "c:\\", "d": {"e": 1}}`,
			expected: types.JSONInfo{ObjectCount: 2, KeyCount: 4, MaxNestingLevel: 2},
		},
		{
			name:     "objects inside arrays",
			input:    `{"items": [{"id": 1}, {"id": 2}]}`,
			expected: types.JSONInfo{ObjectCount: 3, ArrayCount: 1, KeyCount: 3, MaxNestingLevel: 3},
		},
		{
			name:     "arrays add depth",
			input:    `[[[1]]]`,
			expected: types.JSONInfo{ArrayCount: 3, MaxNestingLevel: 3},
		},
		{
			name:     "object inside root array",
			input:    `[{"a":1}]`,
			expected: types.JSONInfo{ObjectCount: 1, ArrayCount: 1, KeyCount: 1, MaxNestingLevel: 2},
		},
		{
			name:  "deep array nest",
			input: `{"a":[[[[[[[[[[[[1]]]]]]]]]]]]}`,
			expected: types.JSONInfo{ObjectCount: 1, ArrayCount: 12, KeyCount: 1, MaxNestingLevel: 13,
				Issues: []types.Issue{{Description: "Deep nesting level (13) may cause performance issues when parsing"}}},
		},
		{
			name:     "unbalanced closers",
			input:    `]]}} {"a": 1}`,
			expected: types.JSONInfo{ObjectCount: 1, KeyCount: 1, MaxNestingLevel: 1},
		},
		{
			name:     "colon outside containers",
			input:    `: "x:y"`,
			expected: types.JSONInfo{},
		},
		{
			name:     "empty",
			input:    "",
			expected: types.JSONInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseJSON(tt.input))
		})
	}
}

func TestParseJSONIssues(t *testing.T) {
	deep := strings.Repeat(`{"a":`, 11) + "1" + strings.Repeat("}", 11)
	info := ParseJSON(deep)
	assert.Equal(t, 11, info.MaxNestingLevel)
	require.Len(t, info.Issues, 1)
	assert.Equal(t, "Deep nesting level (11) may cause performance issues when parsing", info.Issues[0].Description)

	wide := "[" + strings.Repeat("{},", 1000) + "{}]"
	info = ParseJSON(wide)
	require.Len(t, info.Issues, 1)
	assert.Equal(t, "Large number of objects and arrays (1002) may indicate overly complex data structure",
		info.Issues[0].Description)
}

func TestParseTypeScript(t *testing.T) {
	ts := `interface User {
  id: number;
  name: string;
}
type ID = string | number;
type Handler = (u: User) => void;
enum Color { Red, Green }
function first<T>(items: Array<T>): T { return items[0]; }
`
	info := ParseTypeScript(ts)

	assert.Equal(t, 1, info.InterfaceCount)
	assert.Equal(t, 2, info.TypeDefinitionCount)
	assert.Equal(t, 2, info.TypeAliasCount)
	assert.Equal(t, 2, info.GenericTypeCount)
	assert.Equal(t, 1, info.EnumCount)
	assert.False(t, info.Framework.HasReact)
	assert.Empty(t, info.Issues)
}

func TestParseTypeScriptEdgeCases(t *testing.T) {
	// An alias without '=' on its own line is not counted.
	assert.Equal(t, 0, ParseTypeScript("type \nX = 1").TypeAliasCount)

	// A '<' whose '>' is too far away is a comparison, not a generic.
	far := "if (a <b" + strings.Repeat(" ", 60) + ">"
	assert.Equal(t, 0, ParseTypeScript(far).GenericTypeCount)

	var b strings.Builder
	for i := 0; i < 51; i++ {
		fmt.Fprintf(&b, "interface I%d { a: string }\n", i)
	}
	info := ParseTypeScript(b.String())
	require.Len(t, info.Issues, 1)
	assert.Equal(t, "High number of interfaces (51) may indicate over-engineering", info.Issues[0].Description)
	assert.Equal(t, 51, info.TypeDefinitionCount)
}

func TestParseJSX(t *testing.T) {
	jsx := `function App() {
  const [count, setCount] = useState(0);
  useEffect(() => {}, []);
  return (
    <Layout title="x">
      <Header {...props} />
      <div className="main">
        <Card onClick={() => setCount(count + 1)}>
          <Button {...rest} label="b" />
        </Card>
      </div>
    </Layout>
  );
}
`
	info := ParseJSX(jsx)

	assert.Equal(t, 4, info.CustomComponentCount)
	assert.Equal(t, 3, info.MaxComponentNesting)
	assert.Equal(t, 2, info.HookCount)
	assert.Equal(t, 2, info.PropSpreadingCount)
	assert.True(t, info.Framework.HasReact)
	assert.Equal(t, 2, info.Framework.ReactHooksCount)
	assert.Empty(t, info.Issues)
}

func TestParseJSXIssues(t *testing.T) {
	info := ParseJSX("<A><B><C><D><E><F></F></E></D></C></B></A>")
	assert.Equal(t, 6, info.MaxComponentNesting)
	require.Len(t, info.Issues, 1)
	assert.Equal(t, "Deep component nesting (depth: 6) may impact performance", info.Issues[0].Description)

	spreads := ParseJSX(strings.Repeat("<div {...p} />", 11))
	assert.Equal(t, 0, spreads.CustomComponentCount)
	require.Len(t, spreads.Issues, 1)
	assert.Equal(t, "Heavy use of prop spreading (11 occurrences) may make props harder to track",
		spreads.Issues[0].Description)
}

func TestParseJSXSiblingsDoNotNest(t *testing.T) {
	info := ParseJSX("<List><Item /><Item /><Item /></List>")
	assert.Equal(t, 4, info.CustomComponentCount)
	assert.Equal(t, 2, info.MaxComponentNesting)
}

const sampleVue = `<template>
  <div :class="cls" v-if="show" @click="toggle">
    <template v-for="item in items">
      <span v-bind:title="item">{{ item }}</span>
    </template>
    <input v-model="text" v-on:input="log">
  </div>
</template>

<script setup>
const props = defineProps(['a'])
const emit = defineEmits(['change'])
emit('change')
provide('key', 1)
const x = inject('key')
</script>

<style scoped>
.a { color: red; }
</style>
`

func TestParseVue(t *testing.T) {
	info := ParseVue(sampleVue)

	assert.True(t, info.HasTemplate)
	assert.True(t, info.HasScript)
	assert.True(t, info.HasStyle)
	assert.True(t, info.UsesScriptSetup)
	assert.True(t, info.UsesScopedStyles)
	assert.Equal(t, 3, info.DirectiveCount)
	assert.Equal(t, 2, info.EventBindingCount)
	assert.Equal(t, 2, info.PropBindingCount)
	assert.Equal(t, 1, info.EmitCount)
	assert.Equal(t, 2, info.ProvideInjectCount)
	assert.Equal(t, 0, info.ComputedPropertyCount)
	assert.True(t, info.Framework.HasVue)
	assert.Empty(t, info.Issues)
}

func TestParseVueOptionsAPI(t *testing.T) {
	sfc := "<script>\nexport default {\n  computed: {},\n  watch: {},\n}\n</script>\n<style>\n.a { color: red }\n</style>"
	info := ParseVue(sfc)

	assert.False(t, info.HasTemplate)
	assert.False(t, info.UsesScriptSetup)
	assert.False(t, info.UsesScopedStyles)
	assert.Equal(t, 1, info.ComputedPropertyCount)
	assert.Equal(t, 1, info.WatcherCount)
	// Colons in the style section are not prop bindings.
	assert.Equal(t, 0, info.PropBindingCount)
}

func TestParseVueMarkersOutsideSections(t *testing.T) {
	info := ParseVue(`v-if="a" computed: emit(`)
	assert.Equal(t, types.VueInfo{Framework: info.Framework}, info)
}

func TestVueSectionTransitions(t *testing.T) {
	var v vueScanner
	v.transition("<template>")
	assert.Equal(t, sectionTemplate, v.section)
	v.transition("<template #header>")
	assert.Equal(t, 2, v.templateDepth)
	v.transition("<script>")
	assert.Equal(t, sectionTemplate, v.section, "script tags inside a template do not switch sections")
	v.transition("</template>")
	assert.Equal(t, sectionTemplate, v.section)
	v.transition("</template>")
	assert.Equal(t, sectionNone, v.section)
	v.transition("<styles>")
	assert.Equal(t, sectionNone, v.section)
	v.transition("<style lang=\"scss\" scoped>")
	assert.Equal(t, sectionStyle, v.section)
	assert.Equal(t, "style", v.section.String())
}

func TestParseVueIssues(t *testing.T) {
	sfc := "<template>\n" + strings.Repeat(`<p v-if="a"></p>`, 51) + "\n</template>\n<script>\n" +
		strings.Repeat("watch: {},\n", 21) + "</script>"
	info := ParseVue(sfc)

	require.Len(t, info.Issues, 2)
	assert.Equal(t, "High number of directives (51) may indicate complex template logic", info.Issues[0].Description)
	assert.Equal(t, "High number of watchers (21) may impact performance", info.Issues[1].Description)
}

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<CustomObject xmlns="http://soap.sforce.com/2006/04/metadata">
  <fields>
    <fullName>Name__c</fullName>
    <sf:label type="text"/>
  </fields>
  <x:meta/>
</CustomObject>
`

func TestParseXML(t *testing.T) {
	info := ParseXML(sampleXML)

	assert.True(t, info.HasXMLDeclaration)
	assert.Equal(t, 5, info.ElementCount)
	assert.Equal(t, 3, info.MaxNestingLevel)
	assert.Equal(t, 2, info.NamespaceCount)
	assert.Equal(t, 4, info.AttributeCount)
	assert.Empty(t, info.Issues)
}

func TestParseXMLIssues(t *testing.T) {
	deep := strings.Repeat("<a>", 11) + strings.Repeat("</a>", 11)
	info := ParseXML(deep)
	require.Len(t, info.Issues, 1)
	assert.Equal(t, "Deep XML nesting (depth: 11) may impact readability and processing", info.Issues[0].Description)

	var b strings.Builder
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "<ns%d:e/><ns%d:f/>", i, i)
	}
	info = ParseXML(b.String())
	assert.Equal(t, 6, info.NamespaceCount)
	assert.Equal(t, 1, info.MaxNestingLevel)
	require.Len(t, info.Issues, 1)
	assert.Equal(t, "High number of namespaces (6) may complicate maintenance", info.Issues[0].Description)
}

func TestAddIssueCap(t *testing.T) {
	var issues []types.Issue
	for i := 0; i < types.MaxScannerIssues+5; i++ {
		issues = addIssue(issues, "issue %d", i)
	}
	require.Len(t, issues, types.MaxScannerIssues)
	assert.Equal(t, "issue 0", issues[0].Description)
	assert.Equal(t, "issue 19", issues[types.MaxScannerIssues-1].Description)
}

func TestScannersAreIdempotent(t *testing.T) {
	assert.Equal(t, ParseHTML(sampleHTML), ParseHTML(sampleHTML))
	assert.Equal(t, ParseVue(sampleVue), ParseVue(sampleVue))
	assert.Equal(t, ParseXML(sampleXML), ParseXML(sampleXML))
}
