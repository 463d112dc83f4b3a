package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/types"
)

const (
	jsxNestingThreshold = 5
	jsxSpreadThreshold  = 10
)

var jsxHookCalls = []string{
	"useState(", "useEffect(", "useContext(",
	"useReducer(", "useCallback(", "useMemo(",
}

// componentStack tracks the open Capitalized elements of a JSX tree.
type componentStack struct {
	names []string
	max   int
}

func (s *componentStack) push(name string) {
	if len(s.names) >= types.MaxComponentStack {
		return
	}
	s.names = append(s.names, name)
	if len(s.names) > s.max {
		s.max = len(s.names)
	}
}

func (s *componentStack) pop() {
	if len(s.names) > 0 {
		s.names = s.names[:len(s.names)-1]
	}
}

// jsxTag is the opening tag being read. braces counts '{' inside the tag
// so that an arrow function in an attribute does not end it.
type jsxTag struct {
	open        bool
	isComponent bool
	braces      int
}

// ParseJSX scans JSX source. Capitalized elements are custom components;
// they are pushed when opened and popped by their closing tag or by a
// self-closing "/>".
func ParseJSX(content string) types.JSXInfo {
	var info types.JSXInfo
	var stack componentStack
	var tag jsxTag

	for i := 0; i < len(content); i++ {
		b := content[i]
		rest := content[i:]

		switch {
		case b == '<' && len(rest) > 1 && isLetter(rest[1]):
			name := readName(rest[1:], func(c byte) bool { return !isIdentByte(c) })
			tag = jsxTag{open: true, isComponent: isUpper(name[0])}
			if tag.isComponent {
				info.CustomComponentCount++
				stack.push(name)
			}
			i += len(name)
			continue
		case strings.HasPrefix(rest, "</") && len(rest) > 2 && isUpper(rest[2]):
			stack.pop()
		case tag.open && b == '{':
			tag.braces++
		case tag.open && b == '}' && tag.braces > 0:
			tag.braces--
		case tag.open && b == '>' && tag.braces == 0:
			if i > 0 && content[i-1] == '/' && tag.isComponent {
				stack.pop()
			}
			tag = jsxTag{}
		}

		if b == 'u' && hasAnyPrefix(rest, jsxHookCalls...) {
			info.HookCount++
		}
		if strings.HasPrefix(rest, "{...") {
			info.PropSpreadingCount++
		}
	}

	info.MaxComponentNesting = stack.max
	info.Framework = detect.DetectSource(content)

	if info.MaxComponentNesting > jsxNestingThreshold {
		info.Issues = addIssue(info.Issues, "Deep component nesting (depth: %d) may impact performance",
			info.MaxComponentNesting)
	}
	if info.PropSpreadingCount > jsxSpreadThreshold {
		info.Issues = addIssue(info.Issues,
			"Heavy use of prop spreading (%d occurrences) may make props harder to track", info.PropSpreadingCount)
	}

	return info
}
