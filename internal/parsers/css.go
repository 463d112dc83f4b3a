package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

const (
	cssSelectorThreshold   = 4000
	cssMediaQueryThreshold = 50
)

// ParseCSS scans a stylesheet. A '{' counts as a rule and also closes a
// selector, so a rule with a single selector adds one selector and a list
// "a, b {" adds two.
func ParseCSS(content string) types.CSSInfo {
	var info types.CSSInfo

	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			info.RuleCount++
			info.SelectorCount++
		case ',':
			info.SelectorCount++
		case ':':
			info.PropertyCount++
		case '@':
			rest := content[i:]
			if strings.HasPrefix(rest, "@media") {
				info.MediaQueryCount++
			} else if strings.HasPrefix(rest, "@keyframes") {
				info.KeyframeCount++
			}
		}
	}

	if info.SelectorCount > cssSelectorThreshold {
		info.Issues = addIssue(info.Issues, "High number of selectors (%d) may cause performance issues", info.SelectorCount)
	}
	if info.MediaQueryCount > cssMediaQueryThreshold {
		info.Issues = addIssue(info.Issues, "High number of media queries (%d) may complicate responsive design",
			info.MediaQueryCount)
	}

	return info
}
