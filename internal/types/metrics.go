package types

// HTMLInfo holds the metrics of one HTML document, or the accumulated
// totals of every HTML file in a project.
type HTMLInfo struct {
	TagCount    int  `json:"tag_count" yaml:"tag_count"`
	ScriptCount int  `json:"script_count" yaml:"script_count"`
	StyleCount  int  `json:"style_count" yaml:"style_count"`
	LinkCount   int  `json:"link_count" yaml:"link_count"`
	IsZephyr    bool `json:"is_zephyr" yaml:"is_zephyr"`
	IsReact     bool `json:"is_react" yaml:"is_react"`
	IsVue       bool `json:"is_vue" yaml:"is_vue"`
	IsAngular   bool `json:"is_angular" yaml:"is_angular"`
	IsSvelte    bool `json:"is_svelte" yaml:"is_svelte"`

	CustomElements      []CustomElement    `json:"custom_elements,omitempty" yaml:"custom_elements,omitempty"`
	ExternalResources   []ExternalResource `json:"external_resources,omitempty" yaml:"external_resources,omitempty"`
	FrameworkComponents []string           `json:"framework_components,omitempty" yaml:"framework_components,omitempty"`
	Issues              []Issue            `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Accumulate adds the counters and flags of other to h. Collections are
// folded at project level, not here.
func (h *HTMLInfo) Accumulate(other HTMLInfo) {
	h.TagCount += other.TagCount
	h.ScriptCount += other.ScriptCount
	h.StyleCount += other.StyleCount
	h.LinkCount += other.LinkCount
	h.IsZephyr = h.IsZephyr || other.IsZephyr
	h.IsReact = h.IsReact || other.IsReact
	h.IsVue = h.IsVue || other.IsVue
	h.IsAngular = h.IsAngular || other.IsAngular
	h.IsSvelte = h.IsSvelte || other.IsSvelte
}

// CSSInfo holds stylesheet metrics.
type CSSInfo struct {
	RuleCount       int     `json:"rule_count" yaml:"rule_count"`
	SelectorCount   int     `json:"selector_count" yaml:"selector_count"`
	PropertyCount   int     `json:"property_count" yaml:"property_count"`
	MediaQueryCount int     `json:"media_query_count" yaml:"media_query_count"`
	KeyframeCount   int     `json:"keyframe_count" yaml:"keyframe_count"`
	Issues          []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Accumulate adds the counters of other to c.
func (c *CSSInfo) Accumulate(other CSSInfo) {
	c.RuleCount += other.RuleCount
	c.SelectorCount += other.SelectorCount
	c.PropertyCount += other.PropertyCount
	c.MediaQueryCount += other.MediaQueryCount
	c.KeyframeCount += other.KeyframeCount
}

// JSInfo holds JavaScript metrics.
type JSInfo struct {
	FunctionCount       int           `json:"function_count" yaml:"function_count"`
	VariableCount       int           `json:"variable_count" yaml:"variable_count"`
	ClassCount          int           `json:"class_count" yaml:"class_count"`
	ReactComponentCount int           `json:"react_component_count" yaml:"react_component_count"`
	VueInstanceCount    int           `json:"vue_instance_count" yaml:"vue_instance_count"`
	AngularModuleCount  int           `json:"angular_module_count" yaml:"angular_module_count"`
	EventListenerCount  int           `json:"event_listener_count" yaml:"event_listener_count"`
	AsyncFunctionCount  int           `json:"async_function_count" yaml:"async_function_count"`
	PromiseCount        int           `json:"promise_count" yaml:"promise_count"`
	ClosureCount        int           `json:"closure_count" yaml:"closure_count"`
	Framework           FrameworkInfo `json:"framework" yaml:"framework"`
	Issues              []Issue       `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Accumulate adds the counters of other to j. The framework fingerprint is
// merged into the project fingerprint by the caller.
func (j *JSInfo) Accumulate(other JSInfo) {
	j.FunctionCount += other.FunctionCount
	j.VariableCount += other.VariableCount
	j.ClassCount += other.ClassCount
	j.ReactComponentCount += other.ReactComponentCount
	j.VueInstanceCount += other.VueInstanceCount
	j.AngularModuleCount += other.AngularModuleCount
	j.EventListenerCount += other.EventListenerCount
	j.AsyncFunctionCount += other.AsyncFunctionCount
	j.PromiseCount += other.PromiseCount
	j.ClosureCount += other.ClosureCount
}

// JSONInfo holds JSON document metrics.
type JSONInfo struct {
	ObjectCount     int     `json:"object_count" yaml:"object_count"`
	ArrayCount      int     `json:"array_count" yaml:"array_count"`
	KeyCount        int     `json:"key_count" yaml:"key_count"`
	MaxNestingLevel int     `json:"max_nesting_level" yaml:"max_nesting_level"`
	Issues          []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Accumulate sums the counters of other into j and keeps the deepest
// nesting level.
func (j *JSONInfo) Accumulate(other JSONInfo) {
	j.ObjectCount += other.ObjectCount
	j.ArrayCount += other.ArrayCount
	j.KeyCount += other.KeyCount
	if other.MaxNestingLevel > j.MaxNestingLevel {
		j.MaxNestingLevel = other.MaxNestingLevel
	}
}

// TSInfo holds TypeScript metrics. Project totals keep the last file only.
type TSInfo struct {
	InterfaceCount      int           `json:"interface_count" yaml:"interface_count"`
	TypeDefinitionCount int           `json:"type_definition_count" yaml:"type_definition_count"`
	TypeAliasCount      int           `json:"type_alias_count" yaml:"type_alias_count"`
	GenericTypeCount    int           `json:"generic_type_count" yaml:"generic_type_count"`
	EnumCount           int           `json:"enum_count" yaml:"enum_count"`
	Framework           FrameworkInfo `json:"framework" yaml:"framework"`
	Issues              []Issue       `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// JSXInfo holds JSX metrics. Project totals keep the last file only.
type JSXInfo struct {
	CustomComponentCount int           `json:"custom_component_count" yaml:"custom_component_count"`
	HookCount            int           `json:"hook_count" yaml:"hook_count"`
	PropSpreadingCount   int           `json:"prop_spreading_count" yaml:"prop_spreading_count"`
	MaxComponentNesting  int           `json:"max_component_nesting" yaml:"max_component_nesting"`
	Framework            FrameworkInfo `json:"framework" yaml:"framework"`
	Issues               []Issue       `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// VueInfo holds single file component metrics. Project totals keep the last
// file only.
type VueInfo struct {
	HasTemplate           bool          `json:"has_template" yaml:"has_template"`
	HasScript             bool          `json:"has_script" yaml:"has_script"`
	HasStyle              bool          `json:"has_style" yaml:"has_style"`
	UsesScriptSetup       bool          `json:"uses_script_setup" yaml:"uses_script_setup"`
	UsesScopedStyles      bool          `json:"uses_scoped_styles" yaml:"uses_scoped_styles"`
	DirectiveCount        int           `json:"directive_count" yaml:"directive_count"`
	ComputedPropertyCount int           `json:"computed_property_count" yaml:"computed_property_count"`
	WatcherCount          int           `json:"watcher_count" yaml:"watcher_count"`
	EventBindingCount     int           `json:"event_binding_count" yaml:"event_binding_count"`
	PropBindingCount      int           `json:"prop_binding_count" yaml:"prop_binding_count"`
	EmitCount             int           `json:"emit_count" yaml:"emit_count"`
	ProvideInjectCount    int           `json:"provide_inject_count" yaml:"provide_inject_count"`
	Framework             FrameworkInfo `json:"framework" yaml:"framework"`
	Issues                []Issue       `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// XMLInfo holds XML metrics. Project totals keep the last file only.
type XMLInfo struct {
	ElementCount      int     `json:"element_count" yaml:"element_count"`
	AttributeCount    int     `json:"attribute_count" yaml:"attribute_count"`
	NamespaceCount    int     `json:"namespace_count" yaml:"namespace_count"`
	MaxNestingLevel   int     `json:"max_nesting_level" yaml:"max_nesting_level"`
	HasXMLDeclaration bool    `json:"has_xml_declaration" yaml:"has_xml_declaration"`
	Issues            []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}
