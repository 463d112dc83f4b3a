package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/types"
)

// impactWarning is the score from which the text report flags the project.
const impactWarning = 4.0

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	warn    lipgloss.Style
	good    lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, section: plain, label: plain, warn: plain, good: plain}
	}
	re := lipgloss.NewRenderer(w)
	return styles{
		title:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("#33A1FF")),
		section: re.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		label:   re.NewStyle().Foreground(lipgloss.Color("245")),
		warn:    re.NewStyle().Foreground(lipgloss.Color("#FF5555")),
		good:    re.NewStyle().Foreground(lipgloss.Color("#22C55E")),
	}
}

// textWriter keeps the first write error so sections can be written
// without checking every line.
type textWriter struct {
	w      io.Writer
	err    error
	styles styles
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) heading(text string, underline string) {
	t.printf("\n%s\n%s\n", t.styles.section.Render(text), strings.Repeat(underline, len(text)))
}

func (t *textWriter) field(label string, value interface{}) {
	t.printf("%s %v\n", t.styles.label.Render(label+":"), value)
}

var titleCase = cases.Title(language.English)

// WriteText writes the human readable report.
func WriteText(w io.Writer, r *Report, opts Options) error {
	t := &textWriter{w: w, styles: newStyles(w, opts.Color)}
	p := r.Project

	t.printf("%s\n%s\n", t.styles.title.Render("Project Analysis Summary"), strings.Repeat("=", len("Project Analysis Summary")))
	t.field("Root", p.Root)
	if p.RunID != "" {
		t.field("Run", p.RunID)
	}
	framework := p.Framework
	if framework == "" {
		framework = "None"
	}
	t.field("Primary Framework", framework)
	t.field("Required Libraries", p.RequiredLibraries)

	writeFileStatistics(t, p)
	writeFrameworks(t, p.FrameworkInfo)

	if p.UsesCommonJS || p.UsesESModules || p.HasWebpack || p.HasBabel || p.HasTypeScript || p.HasVite {
		writeNodeAnalysis(t, p)
	}
	if p.TSFileCount > 0 {
		writeTypeScript(t, p.TotalTSInfo)
	}
	if p.JSXFileCount > 0 {
		writeJSX(t, p.TotalJSXInfo)
	}
	if p.VueFileCount > 0 {
		writeVue(t, p.TotalVueInfo)
	}
	if p.IsMonorepo {
		writeMonorepo(t, p.Workspace)
	}

	writeComponents(t, p)

	if p.JSONFileCount > 0 {
		t.heading("JSON Analysis:", "-")
		t.field("Total Objects", p.TotalJSONInfo.ObjectCount)
		t.field("Total Arrays", p.TotalJSONInfo.ArrayCount)
		t.field("Total Keys", p.TotalJSONInfo.KeyCount)
		t.field("Maximum Nesting Level", p.TotalJSONInfo.MaxNestingLevel)
	}

	if len(p.SalesforceMetadata) > 0 {
		t.heading("Salesforce Metadata:", "-")
		for _, path := range p.SalesforceMetadata {
			t.printf("  - %s\n", path)
		}
	}

	t.heading("Performance Analysis", "=")
	if t.err == nil {
		t.err = DisplayResourceUsage(w, r.Estimation)
	}
	t.printf("\nPerformance Impact Score: %.2f out of 5.0\n", r.Impact)
	if r.Impact >= impactWarning {
		t.printf("%s\n", t.styles.warn.Render("Warning: High performance impact detected"))
	}

	if len(p.Issues) > 0 && t.err == nil {
		t.err = DisplayPotentialIssues(w, p.Issues)
	}

	return t.err
}

func writeFileStatistics(t *textWriter, p *types.ProjectRecord) {
	t.heading("File Statistics:", "-")
	t.field("HTML Files", p.HTMLFileCount)
	t.field("CSS Files", p.CSSFileCount)
	t.field("JavaScript Files", p.JSFileCount)
	t.field("TypeScript Files", p.TSFileCount)
	t.field("JSX Files", p.JSXFileCount)
	t.field("Vue Files", p.VueFileCount)
	t.field("XML Files", p.XMLFileCount)
	t.field("JSON Files", p.JSONFileCount)
	t.field("Image Files", p.ImageFileCount)
	if p.SkippedFiles > 0 {
		t.field("Skipped Files", t.styles.warn.Render(fmt.Sprint(p.SkippedFiles)))
	}
}

func writeFrameworks(t *textWriter, info types.FrameworkInfo) {
	t.heading("Framework Detection:", "-")

	var names []string
	if info.HasReact {
		name := "React"
		if info.ReactHooksCount > 0 {
			name += fmt.Sprintf(" (Hooks: %d)", info.ReactHooksCount)
		}
		names = append(names, name)
	}
	if info.HasVue {
		name := "Vue.js"
		if info.VueCompositionAPI {
			name += " (Composition API)"
		}
		names = append(names, name)
	}
	if info.HasAngular {
		names = append(names, "Angular")
	}
	if info.HasSvelte {
		names = append(names, "Svelte")
	}
	if info.HasNodeJS {
		names = append(names, "Node.js")
	}
	if len(names) == 0 {
		t.printf("No major frameworks detected\n")
	} else {
		t.printf("%s\n", strings.Join(names, ", "))
	}

	var tooling []string
	if info.HasNextJS {
		tooling = append(tooling, "Next.js")
	}
	if info.HasNuxtJS {
		tooling = append(tooling, "Nuxt.js")
	}
	if info.PrimaryBundler != "" {
		tooling = append(tooling, info.PrimaryBundler)
	}
	if info.PrimaryUILibrary != "" {
		tooling = append(tooling, info.PrimaryUILibrary)
	}
	if info.CSSSolution != "" {
		tooling = append(tooling, info.CSSSolution)
	}
	if info.TypeScriptVersion != "" {
		tooling = append(tooling, "typescript "+info.TypeScriptVersion)
	}
	if len(tooling) > 0 {
		t.field("Tooling", strings.Join(tooling, ", "))
	}
}

func moduleSystem(p *types.ProjectRecord) string {
	switch {
	case p.UsesCommonJS && p.UsesESModules:
		return "Mixed (CommonJS and ES Modules)"
	case p.UsesCommonJS:
		return "CommonJS"
	case p.UsesESModules:
		return "ES Modules"
	default:
		return "Not detected"
	}
}

func writeNodeAnalysis(t *textWriter, p *types.ProjectRecord) {
	t.heading("Node.js Environment Analysis:", "-")
	t.field("Module System", moduleSystem(p))

	var tools []string
	if p.HasWebpack {
		tools = append(tools, "Webpack")
	}
	if p.HasVite {
		tools = append(tools, "Vite")
	}
	if p.HasBabel {
		tools = append(tools, "Babel")
	}
	if p.HasTypeScript {
		tools = append(tools, "TypeScript")
	}
	if len(tools) > 0 {
		t.printf("\nBuild Tools:\n")
		for _, tool := range tools {
			t.printf("- %s\n", tool)
		}
	}

	if len(p.Dependencies) > 0 {
		t.printf("\nDependencies Analysis:\n")
		t.field("Total Dependencies", p.TotalDependencies)
		t.field("Development Dependencies", p.DevDependencies)
		t.field("Production Dependencies", p.ProdDependencies)

		t.printf("\nNotable Dependencies:\n")
		for _, dep := range p.Dependencies {
			t.printf("- %s\n", dependencyLabel(dep, t.styles))
		}
	}

	if len(p.ModulePaths) > 0 {
		t.printf("\nLocal Modules:\n")
		for _, path := range p.ModulePaths {
			t.printf("- %s\n", path)
		}
	}
}

// dependencyLabel renders name@version and flags versions that are not
// plain semantic versions.
func dependencyLabel(dep types.Dependency, s styles) string {
	label := dep.Name + "@" + dep.Version
	if !detect.IsValidVersion(dep.Version) {
		label += " " + s.warn.Render("(unpinned)")
	}
	if dep.Dev {
		label += " (dev)"
	}
	return label
}

func writeTypeScript(t *textWriter, info types.TSInfo) {
	t.heading("TypeScript Analysis:", "-")
	t.field("Interfaces", info.InterfaceCount)
	t.field("Type Aliases", info.TypeAliasCount)
	t.field("Type Definitions", info.TypeDefinitionCount)
	t.field("Generic Types", info.GenericTypeCount)
	t.field("Enums", info.EnumCount)
}

func writeJSX(t *textWriter, info types.JSXInfo) {
	t.heading("JSX Analysis:", "-")
	t.field("Custom Components", info.CustomComponentCount)
	t.field("React Hooks Used", info.HookCount)
	t.printf("%s %d instances\n", t.styles.label.Render("Prop Spreading Found:"), info.PropSpreadingCount)
	t.printf("%s %d levels\n", t.styles.label.Render("Maximum Component Nesting:"), info.MaxComponentNesting)
}

func writeVue(t *textWriter, info types.VueInfo) {
	t.heading("Vue.js Analysis:", "-")
	t.field("Template", yesNo(info.HasTemplate))
	t.field("Script", yesNo(info.HasScript))
	t.field("Style", yesNo(info.HasStyle))
	t.field("Directives Used", info.DirectiveCount)
	t.field("Computed Properties", info.ComputedPropertyCount)
	t.field("Watchers", info.WatcherCount)
	t.field("Event Bindings", info.EventBindingCount)
	t.field("Prop Bindings", info.PropBindingCount)
	t.field("Emit Calls", info.EmitCount)
	t.field("Provide/Inject Uses", info.ProvideInjectCount)
	if info.UsesScriptSetup {
		t.printf("%s\n", t.styles.good.Render("Using Composition API with <script setup>"))
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Flavors lists the workspace tools in use, in display form.
func Flavors(ws types.WorkspaceInfo) []string {
	var flavors []string
	if ws.IsLerna {
		flavors = append(flavors, "Lerna")
	}
	if ws.IsYarnWorkspace {
		flavors = append(flavors, "Yarn Workspaces")
	}
	if ws.IsPnpmWorkspace {
		flavors = append(flavors, "pnpm Workspaces")
	}
	if ws.IsNxWorkspace {
		flavors = append(flavors, "Nx")
	}
	if ws.IsRush {
		flavors = append(flavors, "Rush")
	}
	if ws.UsesTurborepo {
		flavors = append(flavors, "Turborepo")
	}
	return flavors
}

func writeMonorepo(t *textWriter, ws types.WorkspaceInfo) {
	t.heading("Monorepo Analysis", "=")
	if ws.Name != "" {
		t.field("Name", ws.Name)
	}
	t.field("Type", strings.Join(Flavors(ws), ", "))
	if ws.VersionStrategy != "" {
		t.field("Version Strategy", titleCase.String(ws.VersionStrategy))
	}
	if ws.UsesChangesets {
		t.printf("Version Management: Changesets\n")
	}
	if ws.UsesSemanticRelease {
		t.printf("Version Management: Semantic Release\n")
	}
	if ws.BuildCachePath != "" {
		t.field("Build Cache", ws.BuildCachePath)
	}

	var table bytes.Buffer
	if err := WriteWorkspaceTable(&table, ws, false); err == nil && len(ws.Packages) > 0 {
		t.printf("\n%s", table.String())
	}

	if len(ws.SharedDependencies) > 0 {
		t.printf("\nShared Dependencies: %d\n", len(ws.SharedDependencies))
		for _, dep := range ws.SharedDependencies {
			t.printf("  - %s@%s\n", dep.Name, dep.Version)
		}
	}

	if len(ws.TaskGroups) > 0 {
		t.printf("\nTask Groups: %d\n", len(ws.TaskGroups))
		for _, group := range ws.TaskGroups {
			t.printf("%s (%s): %s\n", group.Name, group.Type, strings.Join(group.Packages, ", "))
		}
	}

	configs := []struct{ label, path string }{
		{"TypeScript", ws.TSConfigPath},
		{"ESLint", ws.ESLintConfigPath},
		{"Prettier", ws.PrettierConfigPath},
		{"Jest", ws.JestConfigPath},
		{"Babel", ws.BabelConfigPath},
	}
	header := false
	for _, c := range configs {
		if c.path == "" {
			continue
		}
		if !header {
			t.printf("\nShared Configuration:\n")
			header = true
		}
		t.field(c.label, c.path)
	}
}

func writeComponents(t *textWriter, p *types.ProjectRecord) {
	if len(p.FrameworkComponents) == 0 && len(p.CustomElements) == 0 && len(p.ExternalResources) == 0 {
		return
	}
	t.heading("Component Analysis:", "-")
	if len(p.FrameworkComponents) > 0 {
		t.printf("Framework Components:\n")
		for _, name := range p.FrameworkComponents {
			t.printf("  - %s\n", name)
		}
	}
	if len(p.CustomElements) > 0 {
		t.printf("Custom Elements:\n")
		for _, element := range p.CustomElements {
			t.printf("  - %s (used %d times)\n", element.Name, element.Count)
		}
	}
	if len(p.ExternalResources) > 0 {
		t.printf("External Resources:\n")
		for _, resource := range p.ExternalResources {
			t.printf("  - %s: %s\n", resource.Type, resource.URL)
		}
	}
}
