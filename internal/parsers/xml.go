package parsers

import (
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

const (
	xmlDepthThreshold     = 10
	xmlNamespaceThreshold = 5
)

// ParseXML scans an XML document. Depth is count based: every opening tag
// goes one level deeper and every closing or self-closing tag one level
// out, without checking that names match.
func ParseXML(content string) types.XMLInfo {
	var info types.XMLInfo
	var namespaces []string
	depth := 0

	for i := 0; i < len(content); i++ {
		rest := content[i:]

		switch {
		case strings.HasPrefix(rest, "<?xml"):
			info.HasXMLDeclaration = true
		case strings.HasPrefix(rest, "</"):
			if depth > 0 {
				depth--
			}
		case strings.HasPrefix(rest, "/>"):
			if depth > 0 {
				depth--
			}
		case rest[0] == '<' && len(rest) > 1 && rest[1] != '?' && rest[1] != '!':
			info.ElementCount++
			depth++
			if depth > info.MaxNestingLevel {
				info.MaxNestingLevel = depth
			}
			name := readName(rest[1:], func(b byte) bool { return isSpace(b) || b == '>' || b == '/' })
			if prefix, _, ok := strings.Cut(name, ":"); ok && prefix != "" {
				namespaces = types.AppendUnique(namespaces, types.MaxNamespaces, prefix)
			}
		case strings.HasPrefix(rest, `="`):
			info.AttributeCount++
		}
	}

	info.NamespaceCount = len(namespaces)

	if info.MaxNestingLevel > xmlDepthThreshold {
		info.Issues = addIssue(info.Issues, "Deep XML nesting (depth: %d) may impact readability and processing",
			info.MaxNestingLevel)
	}
	if info.NamespaceCount > xmlNamespaceThreshold {
		info.Issues = addIssue(info.Issues, "High number of namespaces (%d) may complicate maintenance",
			info.NamespaceCount)
	}

	return info
}
