package types

// FrameworkInfo is the framework fingerprint of a file, package or project.
// Every field is set independently; several frameworks can be present at once.
type FrameworkInfo struct {
	// Core frameworks
	HasReact   bool `json:"has_react" yaml:"has_react"`
	HasVue     bool `json:"has_vue" yaml:"has_vue"`
	HasAngular bool `json:"has_angular" yaml:"has_angular"`
	HasSvelte  bool `json:"has_svelte" yaml:"has_svelte"`
	HasNodeJS  bool `json:"has_nodejs" yaml:"has_nodejs"`

	// Meta frameworks
	HasNextJS bool `json:"has_nextjs" yaml:"has_nextjs"`
	HasNuxtJS bool `json:"has_nuxtjs" yaml:"has_nuxtjs"`

	ReactHooksCount   int  `json:"react_hooks_count" yaml:"react_hooks_count"`
	VueCompositionAPI bool `json:"vue_composition_api" yaml:"vue_composition_api"`

	UsesTypeScript     bool `json:"uses_typescript" yaml:"uses_typescript"`
	HasBundler         bool `json:"has_bundler" yaml:"has_bundler"`
	HasTesting         bool `json:"has_testing" yaml:"has_testing"`
	HasStateManagement bool `json:"has_state_management" yaml:"has_state_management"`
	HasRouting         bool `json:"has_routing" yaml:"has_routing"`
	HasCSSFramework    bool `json:"has_css_framework" yaml:"has_css_framework"`
	HasUILibrary       bool `json:"has_ui_library" yaml:"has_ui_library"`
	HasFormLibrary     bool `json:"has_form_library" yaml:"has_form_library"`

	TypeScriptVersion string `json:"typescript_version,omitempty" yaml:"typescript_version,omitempty"`
	NodeVersion       string `json:"node_version,omitempty" yaml:"node_version,omitempty"`
	// PrimaryBundler is "webpack <version>" or "vite <version>".
	PrimaryBundler   string `json:"primary_bundler,omitempty" yaml:"primary_bundler,omitempty"`
	PrimaryUILibrary string `json:"primary_ui_library,omitempty" yaml:"primary_ui_library,omitempty"`
	CSSSolution      string `json:"css_solution,omitempty" yaml:"css_solution,omitempty"`

	UsesCSSModules bool `json:"uses_css_modules" yaml:"uses_css_modules"`
	UsesCSSInJS    bool `json:"uses_css_in_js" yaml:"uses_css_in_js"`
	UsesTailwind   bool `json:"uses_tailwind" yaml:"uses_tailwind"`
	UsesSass       bool `json:"uses_sass" yaml:"uses_sass"`
	UsesLess       bool `json:"uses_less" yaml:"uses_less"`

	HasE2ETesting       bool `json:"has_e2e_testing" yaml:"has_e2e_testing"`
	HasUnitTesting      bool `json:"has_unit_testing" yaml:"has_unit_testing"`
	HasComponentTesting bool `json:"has_component_testing" yaml:"has_component_testing"`
	HasLinting          bool `json:"has_linting" yaml:"has_linting"`
	HasFormatting       bool `json:"has_formatting" yaml:"has_formatting"`

	HasCICD             bool `json:"has_ci_cd" yaml:"has_ci_cd"`
	HasDocker           bool `json:"has_docker" yaml:"has_docker"`
	HasDeploymentConfig bool `json:"has_deployment_config" yaml:"has_deployment_config"`

	HasHotReload   bool `json:"has_hot_reload" yaml:"has_hot_reload"`
	HasDevServer   bool `json:"has_dev_server" yaml:"has_dev_server"`
	HasDebugConfig bool `json:"has_debug_config" yaml:"has_debug_config"`

	UsesNPM  bool `json:"uses_npm" yaml:"uses_npm"`
	UsesYarn bool `json:"uses_yarn" yaml:"uses_yarn"`
	UsesPnpm bool `json:"uses_pnpm" yaml:"uses_pnpm"`
}

// MergeCore ORs the five core framework flags of other into f.
func (f *FrameworkInfo) MergeCore(other FrameworkInfo) {
	f.HasReact = f.HasReact || other.HasReact
	f.HasVue = f.HasVue || other.HasVue
	f.HasAngular = f.HasAngular || other.HasAngular
	f.HasSvelte = f.HasSvelte || other.HasSvelte
	f.HasNodeJS = f.HasNodeJS || other.HasNodeJS
}

// Merge folds other into f: flags are ORed, hook counts are summed and
// non-empty strings of other replace those of f.
func (f *FrameworkInfo) Merge(other FrameworkInfo) {
	f.MergeCore(other)
	f.HasNextJS = f.HasNextJS || other.HasNextJS
	f.HasNuxtJS = f.HasNuxtJS || other.HasNuxtJS
	f.ReactHooksCount += other.ReactHooksCount
	f.VueCompositionAPI = f.VueCompositionAPI || other.VueCompositionAPI

	f.UsesTypeScript = f.UsesTypeScript || other.UsesTypeScript
	f.HasBundler = f.HasBundler || other.HasBundler
	f.HasTesting = f.HasTesting || other.HasTesting
	f.HasStateManagement = f.HasStateManagement || other.HasStateManagement
	f.HasRouting = f.HasRouting || other.HasRouting
	f.HasCSSFramework = f.HasCSSFramework || other.HasCSSFramework
	f.HasUILibrary = f.HasUILibrary || other.HasUILibrary
	f.HasFormLibrary = f.HasFormLibrary || other.HasFormLibrary

	replaceIfSet(&f.TypeScriptVersion, other.TypeScriptVersion)
	replaceIfSet(&f.NodeVersion, other.NodeVersion)
	replaceIfSet(&f.PrimaryBundler, other.PrimaryBundler)
	replaceIfSet(&f.PrimaryUILibrary, other.PrimaryUILibrary)
	replaceIfSet(&f.CSSSolution, other.CSSSolution)

	f.UsesCSSModules = f.UsesCSSModules || other.UsesCSSModules
	f.UsesCSSInJS = f.UsesCSSInJS || other.UsesCSSInJS
	f.UsesTailwind = f.UsesTailwind || other.UsesTailwind
	f.UsesSass = f.UsesSass || other.UsesSass
	f.UsesLess = f.UsesLess || other.UsesLess

	f.HasE2ETesting = f.HasE2ETesting || other.HasE2ETesting
	f.HasUnitTesting = f.HasUnitTesting || other.HasUnitTesting
	f.HasComponentTesting = f.HasComponentTesting || other.HasComponentTesting
	f.HasLinting = f.HasLinting || other.HasLinting
	f.HasFormatting = f.HasFormatting || other.HasFormatting

	f.HasCICD = f.HasCICD || other.HasCICD
	f.HasDocker = f.HasDocker || other.HasDocker
	f.HasDeploymentConfig = f.HasDeploymentConfig || other.HasDeploymentConfig

	f.HasHotReload = f.HasHotReload || other.HasHotReload
	f.HasDevServer = f.HasDevServer || other.HasDevServer
	f.HasDebugConfig = f.HasDebugConfig || other.HasDebugConfig

	f.UsesNPM = f.UsesNPM || other.UsesNPM
	f.UsesYarn = f.UsesYarn || other.UsesYarn
	f.UsesPnpm = f.UsesPnpm || other.UsesPnpm
}

func replaceIfSet(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// FrameworkNames lists the detected UI frameworks in display form, with
// meta frameworks in parentheses, e.g. "React (Next.js)".
func (f FrameworkInfo) FrameworkNames() []string {
	var names []string
	if f.HasReact {
		name := "React"
		if f.HasNextJS {
			name += " (Next.js)"
		}
		names = append(names, name)
	}
	if f.HasVue {
		name := "Vue.js"
		if f.HasNuxtJS {
			name += " (Nuxt.js)"
		}
		names = append(names, name)
	}
	if f.HasAngular {
		names = append(names, "Angular")
	}
	if f.HasSvelte {
		names = append(names, "Svelte")
	}
	return names
}

// Primary framework names, in priority order.
const (
	FrameworkReact   = "React"
	FrameworkVue     = "Vue.js"
	FrameworkAngular = "Angular"
	FrameworkSvelte  = "Svelte"
	FrameworkNode    = "Node.js"
)

// PrimaryFramework picks a single framework by fixed priority: React, Vue,
// Angular, Svelte, Node. It returns "" when none is detected.
func (f FrameworkInfo) PrimaryFramework() string {
	switch {
	case f.HasReact:
		return FrameworkReact
	case f.HasVue:
		return FrameworkVue
	case f.HasAngular:
		return FrameworkAngular
	case f.HasSvelte:
		return FrameworkSvelte
	case f.HasNodeJS:
		return FrameworkNode
	default:
		return ""
	}
}
