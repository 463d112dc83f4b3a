package detect

import (
	"strings"
	"unicode"

	"golang.org/x/mod/semver"
)

// NormalizeVersion reduces a semver range to its first concrete version
// token: "^1.2.3" becomes "1.2.3", ">=2.0.0 <3.0.0" becomes "2.0.0",
// "1.x" becomes "1" and "1.2.3 || 2.0.0" becomes "1.2.3".
func NormalizeVersion(version string) string {
	v := strings.TrimSpace(version)

	if strings.HasPrefix(v, "^") || strings.HasPrefix(v, "~") {
		v = v[1:]
	}

	if idx := strings.Index(v, " - "); idx >= 0 {
		v = v[:idx]
	}

	if trimmed := strings.TrimLeft(v, "<>="); trimmed != v {
		v = strings.TrimLeftFunc(trimmed, unicode.IsSpace)
		if fields := strings.Fields(v); len(fields) > 0 {
			v = fields[0]
		}
	}

	if idx := wildcardIndex(v); idx >= 0 {
		v = strings.TrimSuffix(v[:idx], ".")
	}

	if idx := strings.Index(v, "||"); idx >= 0 {
		v = v[:idx]
	}

	return strings.TrimSpace(v)
}

// wildcardIndex finds the first "*", or the first "x"/"X" that starts a
// dot separated component, so that tags such as "next" survive.
func wildcardIndex(v string) int {
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '*':
			return i
		case 'x', 'X':
			if i == 0 || v[i-1] == '.' {
				return i
			}
		}
	}
	return -1
}

// IsValidVersion accepts an optional "v" followed by digits with at most
// two dots, the shapes semver.IsValid accepts for "v1", "v1.2" and "v1.2.3".
func IsValidVersion(version string) bool {
	v := strings.TrimPrefix(version, "v")
	if v == "" || !unicode.IsDigit(rune(v[0])) {
		return false
	}

	dots := 0
	for _, r := range v {
		switch {
		case r == '.':
			dots++
		case !unicode.IsDigit(r):
			return false
		}
	}
	if dots > 2 {
		return false
	}

	return semver.IsValid("v" + v)
}

// Canonical returns the canonical "vMAJOR.MINOR.PATCH" form of a
// normalised version, or "" when it is not a plain release version.
func Canonical(version string) string {
	if !IsValidVersion(version) {
		return ""
	}
	return semver.Canonical("v" + strings.TrimPrefix(version, "v"))
}

// ExtractVersion finds `"name": "value"` in manifest text and returns the
// normalised value, or "" when the dependency is not listed.
func ExtractVersion(content, name string) string {
	key := `"` + name + `"`
	for offset := 0; offset < len(content); {
		idx := strings.Index(content[offset:], key)
		if idx < 0 {
			return ""
		}
		pos := offset + idx + len(key)
		offset = pos

		rest := strings.TrimLeftFunc(content[pos:], unicode.IsSpace)
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		rest = strings.TrimLeftFunc(rest[1:], unicode.IsSpace)
		if !strings.HasPrefix(rest, `"`) {
			continue
		}
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return ""
		}
		return NormalizeVersion(rest[1 : 1+end])
	}
	return ""
}
