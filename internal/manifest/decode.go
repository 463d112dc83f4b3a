package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StripComments removes // line comments and /* */ block comments that
// appear outside string literals, and turns tabs outside strings into
// spaces so the result decodes as YAML flow syntax.
func StripComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	inString, escaped := false, false
	for i := 0; i < len(content); i++ {
		c := content[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 3
		case c == '\t':
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// decodeObject decodes JSON-like text and returns its top-level mapping.
func decodeObject(content string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(StripComments(content)), &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level value is not an object")
	}
	return root, nil
}

// lookup returns the value of key in a mapping node, or nil.
func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// path follows a chain of keys through nested mappings.
func path(node *yaml.Node, keys ...string) *yaml.Node {
	for _, key := range keys {
		node = lookup(node, key)
	}
	return node
}

func scalar(node *yaml.Node) (string, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false
	}
	return node.Value, true
}

// stringValue returns the scalar value of key, or "".
func stringValue(node *yaml.Node, key string) string {
	value, _ := scalar(lookup(node, key))
	return value
}

// quotedValue returns the value of key only when it is a string scalar.
func quotedValue(node *yaml.Node, key string) string {
	value := lookup(node, key)
	if value == nil || value.Kind != yaml.ScalarNode || value.Tag != "!!str" {
		return ""
	}
	return value.Value
}

func boolValue(node *yaml.Node, key string) bool {
	value, ok := scalar(lookup(node, key))
	return ok && value == "true"
}

// stringList returns the scalar items of a sequence node.
func stringList(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if value, ok := scalar(item); ok {
			items = append(items, value)
		}
	}
	return items
}

// eachPair calls fn for every key/value pair of a mapping node in
// document order.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i].Value, node.Content[i+1])
	}
}

// findKey searches the tree depth first for key and returns its first
// scalar value.
func findKey(node *yaml.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				if value, ok := scalar(node.Content[i+1]); ok {
					return value, true
				}
			}
			if value, ok := findKey(node.Content[i+1], key); ok {
				return value, true
			}
		}
	case yaml.SequenceNode, yaml.DocumentNode:
		for _, child := range node.Content {
			if value, ok := findKey(child, key); ok {
				return value, true
			}
		}
	}
	return "", false
}
