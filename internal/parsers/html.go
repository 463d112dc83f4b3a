package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

const (
	htmlScriptThreshold   = 15
	htmlExternalThreshold = 20
)

// ParseHTML scans an HTML document. Every '<' counts as a tag. Script,
// link and style tags are classified by the name that follows the '<';
// any other hyphenated name is a custom element.
func ParseHTML(content string) types.HTMLInfo {
	var info types.HTMLInfo

	for i := 0; i < len(content); i++ {
		if content[i] != '<' {
			continue
		}
		info.TagCount++

		rest := content[i+1:]
		if rest == "" || !isLetter(rest[0]) {
			// Closing tags, comments and doctypes are counted but never
			// classified.
			continue
		}

		name := readName(rest, func(b byte) bool { return isSpace(b) || b == '>' || b == '/' })
		attrs := attributeRegion(rest[len(name):])

		switch strings.ToLower(name) {
		case "script":
			info.ScriptCount++
			if src, ok := attributeValue(attrs, "src"); ok && isURL(src) {
				info.ExternalResources = types.AppendCapped(info.ExternalResources, types.MaxExternalResources,
					types.ExternalResource{URL: src, Type: types.ResourceJS})
			}
			info.IsReact = info.IsReact || strings.Contains(attrs, "react")
			info.IsVue = info.IsVue || strings.Contains(attrs, "vue")
			info.IsAngular = info.IsAngular || strings.Contains(attrs, "angular")
			info.IsSvelte = info.IsSvelte || strings.Contains(attrs, "svelte")
		case "link":
			info.LinkCount++
			if strings.Contains(attrs, "stylesheet") {
				if href, ok := attributeValue(attrs, "href"); ok && isURL(href) {
					info.ExternalResources = types.AppendCapped(info.ExternalResources, types.MaxExternalResources,
						types.ExternalResource{URL: href, Type: types.ResourceCSS})
				}
			}
		case "style":
			info.StyleCount++
		default:
			if strings.Contains(name, "-") {
				classifyCustomElement(&info, name)
			}
		}
	}

	if info.ScriptCount > htmlScriptThreshold {
		info.Issues = addIssue(info.Issues, "High number of script tags (%d) may impact performance", info.ScriptCount)
	}
	if len(info.ExternalResources) > htmlExternalThreshold {
		info.Issues = addIssue(info.Issues, "High number of external resources (%d) may slow down page load",
			len(info.ExternalResources))
	}

	return info
}

func classifyCustomElement(info *types.HTMLInfo, name string) {
	info.CustomElements = types.MergeCustomElements(info.CustomElements, types.CustomElement{Name: name, Count: 1})

	switch {
	case strings.HasPrefix(name, "zephyr-"):
		info.IsZephyr = true
	case strings.HasPrefix(name, "app-"), strings.HasPrefix(name, "ng-"):
		info.IsAngular = true
	default:
		return
	}
	info.FrameworkComponents = types.AppendCapped(info.FrameworkComponents, types.MaxFrameworkComponents, name)
}

// attributeRegion returns the text of a tag after its name, up to the
// closing '>' or the end of input.
func attributeRegion(s string) string {
	if end := strings.IndexByte(s, '>'); end >= 0 {
		return s[:end]
	}
	return s
}

// attributeValue extracts the value of name="..." (or single quoted, or
// unquoted) from an attribute region.
func attributeValue(attrs, name string) (string, bool) {
	key := name + "="
	for offset := 0; ; {
		idx := strings.Index(attrs[offset:], key)
		if idx < 0 {
			return "", false
		}
		start := offset + idx
		offset = start + len(key)
		if start > 0 && !isSpace(attrs[start-1]) {
			continue
		}

		value := attrs[offset:]
		if value == "" {
			return "", false
		}
		if quote := value[0]; quote == '"' || quote == '\'' {
			value = value[1:]
			if end := strings.IndexByte(value, quote); end >= 0 {
				return value[:end], true
			}
			return value, true
		}
		end := 0
		for end < len(value) && !isSpace(value[end]) {
			end++
		}
		return value[:end], true
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
