package parsers

import "github.com/conneroisu/webpulse/internal/types"

const (
	jsonDepthThreshold     = 10
	jsonContainerThreshold = 1000
)

type jsonState int

const (
	jsonOutside jsonState = iota
	jsonInString
	jsonEscape
)

// next returns the state after reading b.
func (s jsonState) next(b byte) jsonState {
	switch s {
	case jsonInString:
		switch b {
		case '\\':
			return jsonEscape
		case '"':
			return jsonOutside
		}
		return jsonInString
	case jsonEscape:
		return jsonInString
	default:
		if b == '"' {
			return jsonInString
		}
		return jsonOutside
	}
}

// ParseJSON scans a JSON document. Brackets inside string literals are
// ignored. Objects and arrays both add a level of depth, and the nesting
// level is the deepest level reached by either.
func ParseJSON(content string) types.JSONInfo {
	var info types.JSONInfo
	depth := 0
	state := jsonOutside

	for i := 0; i < len(content); i++ {
		b := content[i]
		if state != jsonOutside || b == '"' {
			state = state.next(b)
			continue
		}

		switch b {
		case '{':
			info.ObjectCount++
			depth++
			if depth > info.MaxNestingLevel {
				info.MaxNestingLevel = depth
			}
		case '[':
			info.ArrayCount++
			depth++
			if depth > info.MaxNestingLevel {
				info.MaxNestingLevel = depth
			}
		case '}', ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth > 0 {
				info.KeyCount++
			}
		}
	}

	if info.MaxNestingLevel > jsonDepthThreshold {
		info.Issues = addIssue(info.Issues, "Deep nesting level (%d) may cause performance issues when parsing",
			info.MaxNestingLevel)
	}
	if total := info.ObjectCount + info.ArrayCount; total > jsonContainerThreshold {
		info.Issues = addIssue(info.Issues,
			"Large number of objects and arrays (%d) may indicate overly complex data structure", total)
	}

	return info
}
