package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/detect"
	"github.com/conneroisu/webpulse/internal/types"
)

const tsInterfaceThreshold = 50

// ParseTypeScript scans TypeScript source for interfaces, type aliases,
// generic parameter lists and enums. An interface's property count is the
// number of ':' between its first '{' and the first '}' after it, which
// undercounts interfaces with nested object types.
func ParseTypeScript(content string) types.TSInfo {
	var info types.TSInfo

	for i := 0; i < len(content); i++ {
		rest := content[i:]

		if strings.HasPrefix(rest, "interface ") {
			info.InterfaceCount++
			info.TypeDefinitionCount += interfaceProperties(rest)
		}

		if strings.HasPrefix(rest, "type ") && aliasHasAssignment(rest) {
			info.TypeAliasCount++
		}

		if rest[0] == '<' && len(rest) > 1 && isLetter(rest[1]) {
			if end := strings.IndexByte(rest, '>'); end >= 0 && end < maxGenericSpan {
				info.GenericTypeCount++
			}
		}

		if strings.HasPrefix(rest, "enum ") {
			info.EnumCount++
		}
	}

	info.Framework = detect.DetectSource(content)

	if info.InterfaceCount > tsInterfaceThreshold {
		info.Issues = addIssue(info.Issues, "High number of interfaces (%d) may indicate over-engineering",
			info.InterfaceCount)
	}

	return info
}

func interfaceProperties(decl string) int {
	open := strings.IndexByte(decl, '{')
	if open < 0 {
		return 0
	}
	body := decl[open:]
	end := strings.IndexByte(body, '}')
	if end < 0 {
		return 0
	}
	return strings.Count(body[:end], ":")
}

// aliasHasAssignment reports whether the statement starting at "type "
// contains an '=' before its terminating ';' or newline.
func aliasHasAssignment(stmt string) bool {
	end := strings.IndexAny(stmt, ";\n")
	if end < 0 {
		end = len(stmt)
	}
	return strings.IndexByte(stmt[:end], '=') >= 0
}
