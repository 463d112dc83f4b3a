package analyzer

import "strings"

// Imports is the module usage found in one source file.
type Imports struct {
	// Paths are the quoted specifiers, in order of appearance.
	Paths     []string
	CommonJS  bool
	ESModules bool
}

// ExtractImports finds require(...), import ... from, bare import and
// dynamic import(...) statements in JavaScript or TypeScript source. Only
// string literal specifiers are returned; require calls come first, then
// static imports, then dynamic imports.
func ExtractImports(content string) Imports {
	var im Imports

	for _, pos := range occurrences(content, "require(") {
		im.CommonJS = true
		if spec, ok := callSpecifier(content[pos:]); ok {
			im.Paths = append(im.Paths, spec)
		}
	}

	for _, pos := range occurrences(content, "import ") {
		if pos > 0 && isIdentChar(content[pos-1]) {
			continue
		}
		im.ESModules = true
		if spec, ok := importSpecifier(content[pos+len("import "):]); ok {
			im.Paths = append(im.Paths, spec)
		}
	}

	for _, pos := range occurrences(content, "import(") {
		if pos > 0 && isIdentChar(content[pos-1]) {
			continue
		}
		im.ESModules = true
		if spec, ok := callSpecifier(content[pos:]); ok {
			im.Paths = append(im.Paths, spec)
		}
	}

	return im
}

func occurrences(content, pattern string) []int {
	var positions []int
	for offset := 0; ; {
		i := strings.Index(content[offset:], pattern)
		if i < 0 {
			return positions
		}
		positions = append(positions, offset+i)
		offset += i + len(pattern)
	}
}

// callSpecifier reads the string literal argument of a call starting at s.
func callSpecifier(s string) (string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", false
	}
	return quoted(strings.TrimLeft(s[open+1:], " \t\r\n"))
}

// importSpecifier reads the specifier of a static import whose keyword has
// already been consumed.
func importSpecifier(s string) (string, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return "", false
	}
	if s[0] == '\'' || s[0] == '"' {
		return quoted(s)
	}

	from := fromKeyword(s)
	if from < 0 {
		return "", false
	}
	// Stop at the next statement.
	if next := strings.Index(s, "import "); next >= 0 && next < from {
		return "", false
	}
	return quoted(strings.TrimLeft(s[from+len("from"):], " \t\r\n"))
}

// fromKeyword returns the offset of the first standalone "from" in s, or
// -1.
func fromKeyword(s string) int {
	for _, pos := range occurrences(s, "from") {
		end := pos + len("from")
		if pos > 0 && isIdentChar(s[pos-1]) {
			continue
		}
		if end < len(s) && isIdentChar(s[end]) {
			continue
		}
		return pos
	}
	return -1
}

// quoted returns the contents of the single or double quoted string at the
// start of s. Literals spanning lines are rejected.
func quoted(s string) (string, bool) {
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return "", false
	}
	end := strings.IndexByte(s[1:], s[0])
	if end < 0 {
		return "", false
	}
	spec := s[1 : 1+end]
	if strings.ContainsAny(spec, "\r\n") {
		return "", false
	}
	return spec, true
}

func isIdentChar(b byte) bool {
	return b == '_' || b == '$' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
