package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/types"
)

const (
	jsFunctionThreshold = 200
	jsListenerThreshold = 50
	jsClosureThreshold  = 100
)

// ParseJavaScript scans JavaScript source. Each position is classified by
// the first matching literal in a fixed priority order; a second pass
// estimates closures from nested function keywords.
func ParseJavaScript(content string) types.JSInfo {
	var info types.JSInfo

	for i := 0; i < len(content); i++ {
		rest := content[i:]
		switch {
		case hasAnyPrefix(rest, "function", "=>"):
			info.FunctionCount++
		case hasAnyPrefix(rest, "var ", "let ", "const "):
			info.VariableCount++
		case strings.HasPrefix(rest, "class"):
			info.ClassCount++
			if extendsReactComponent(rest) {
				info.ReactComponentCount++
			}
		case strings.HasPrefix(rest, "React.createElement("):
			info.ReactComponentCount++
		case strings.HasPrefix(rest, "new Vue("):
			info.VueInstanceCount++
		case strings.HasPrefix(rest, "angular.module("):
			info.AngularModuleCount++
		case strings.HasPrefix(rest, "addEventListener("):
			info.EventListenerCount++
		case strings.HasPrefix(rest, "async "):
			info.AsyncFunctionCount++
		case strings.HasPrefix(rest, "new Promise("):
			info.PromiseCount++
		}
	}

	info.ClosureCount = countClosures(content)
	info.Framework = detect.DetectSource(content)

	if info.FunctionCount > jsFunctionThreshold {
		info.Issues = addIssue(info.Issues, "High number of functions (%d) may indicate overly complex code",
			info.FunctionCount)
	}
	if info.EventListenerCount > jsListenerThreshold {
		info.Issues = addIssue(info.Issues,
			"High number of event listeners (%d) may cause memory leaks if not properly managed",
			info.EventListenerCount)
	}
	if info.ClosureCount > jsClosureThreshold {
		info.Issues = addIssue(info.Issues,
			"High number of potential closures (%d) may lead to memory leaks if not handled correctly",
			info.ClosureCount)
	}

	return info
}

// extendsReactComponent looks for "extends React.Component" in the class
// header, before the class body opens.
func extendsReactComponent(class string) bool {
	header := class
	if end := strings.IndexByte(class, '{'); end >= 0 {
		header = class[:end]
	}
	return strings.Contains(header, "extends React.Component")
}

// countClosures treats every function keyword as one level deeper and
// every '}' as one level out. A function opened at depth > 1 counts.
func countClosures(content string) int {
	closures, depth := 0, 0
	for i := 0; i < len(content); i++ {
		switch {
		case strings.HasPrefix(content[i:], "function"):
			depth++
			if depth > 1 {
				closures++
			}
		case content[i] == '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return closures
}
