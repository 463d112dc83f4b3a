package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/types"
)

const (
	vueDirectiveThreshold = 50
	vueWatcherThreshold   = 20
)

type vueSection int

const (
	sectionNone vueSection = iota
	sectionTemplate
	sectionScript
	sectionStyle
)

func (s vueSection) String() string {
	switch s {
	case sectionTemplate:
		return "template"
	case sectionScript:
		return "script"
	case sectionStyle:
		return "style"
	default:
		return "none"
	}
}

// vueScanner is the section state machine of a single file component.
// templateDepth counts nested <template> elements so that only the outer
// closing tag leaves the template section.
type vueScanner struct {
	section       vueSection
	templateDepth int
	info          types.VueInfo
}

// transition applies the section tag starting at rest, if any.
func (v *vueScanner) transition(rest string) {
	switch {
	case strings.HasPrefix(rest, "</template>"):
		if v.section == sectionTemplate {
			v.templateDepth--
			if v.templateDepth <= 0 {
				v.section = sectionNone
				v.templateDepth = 0
			}
		}
	case strings.HasPrefix(rest, "<template") && isTagBoundary(rest, len("<template")):
		switch v.section {
		case sectionNone:
			if strings.HasPrefix(rest, "<template>") {
				v.section = sectionTemplate
				v.templateDepth = 1
				v.info.HasTemplate = true
			}
		case sectionTemplate:
			v.templateDepth++
		}
	case v.section == sectionTemplate:
		return
	case strings.HasPrefix(rest, "</script>"):
		if v.section == sectionScript {
			v.section = sectionNone
		}
	case strings.HasPrefix(rest, "<script") && isTagBoundary(rest, len("<script")):
		if v.section == sectionNone {
			v.section = sectionScript
			v.info.HasScript = true
			if strings.Contains(attributeRegion(rest), "setup") {
				v.info.UsesScriptSetup = true
			}
		}
	case strings.HasPrefix(rest, "</style>"):
		if v.section == sectionStyle {
			v.section = sectionNone
		}
	case strings.HasPrefix(rest, "<style") && isTagBoundary(rest, len("<style")):
		if v.section == sectionNone {
			v.section = sectionStyle
			v.info.HasStyle = true
			if strings.Contains(attributeRegion(rest), "scoped") {
				v.info.UsesScopedStyles = true
			}
		}
	}
}

func (v *vueScanner) scanTemplate(content string, i int) {
	rest := content[i:]
	switch {
	case hasAnyPrefix(rest, "v-if", "v-for", "v-model"):
		v.info.DirectiveCount++
	case hasAnyPrefix(rest, "@", "v-on:"):
		v.info.EventBindingCount++
	case strings.HasPrefix(rest, "v-bind:"):
		v.info.PropBindingCount++
	case rest[0] == ':' && isBindingShorthand(content, i):
		v.info.PropBindingCount++
	}
}

func (v *vueScanner) scanScript(rest string) {
	switch {
	case strings.HasPrefix(rest, "computed:"):
		v.info.ComputedPropertyCount++
	case strings.HasPrefix(rest, "watch:"):
		v.info.WatcherCount++
	case strings.HasPrefix(rest, "emit("):
		v.info.EmitCount++
	case hasAnyPrefix(rest, "provide(", "inject("):
		v.info.ProvideInjectCount++
	}
}

// ParseVue scans a single file component. Template markers are only
// counted inside <template>, script markers only inside <script>.
func ParseVue(content string) types.VueInfo {
	var v vueScanner

	for i := 0; i < len(content); i++ {
		if content[i] == '<' {
			v.transition(content[i:])
		}

		switch v.section {
		case sectionTemplate:
			v.scanTemplate(content, i)
		case sectionScript:
			v.scanScript(content[i:])
		}
	}

	info := v.info
	info.Framework = detect.DetectSource(content)

	if info.DirectiveCount > vueDirectiveThreshold {
		info.Issues = addIssue(info.Issues, "High number of directives (%d) may indicate complex template logic",
			info.DirectiveCount)
	}
	if info.WatcherCount > vueWatcherThreshold {
		info.Issues = addIssue(info.Issues, "High number of watchers (%d) may impact performance", info.WatcherCount)
	}

	return info
}

// isTagBoundary reports whether the tag name ending at n is complete, so
// that "<styles" is not read as "<style".
func isTagBoundary(s string, n int) bool {
	return n >= len(s) || s[n] == '>' || isSpace(s[n])
}

// isBindingShorthand reports whether the ':' at i starts a ":prop" binding:
// whitespace before it and a letter after it.
func isBindingShorthand(content string, i int) bool {
	if i == 0 || i+1 >= len(content) {
		return false
	}
	return isSpace(content[i-1]) && isLetter(content[i+1])
}
