// Package parsers holds the single-pass content scanners, one per web
// content type.
//
// Every scanner takes the full text of one file and returns a metrics
// record. Scanners never fail: malformed input only skews the counts. They
// keep no state between calls, so scanning the same text twice yields the
// same record, and they are safe to call from concurrent workers.
package parsers

import (
	"fmt"
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

// maxNameLength bounds tag, component and namespace names read by the
// scanners.
const maxNameLength = 49

// maxGenericSpan is how far a closing '>' may be from its '<' for the span
// to count as a type parameter list or a namespace prefix.
const maxGenericSpan = 50

func addIssue(issues []types.Issue, format string, args ...interface{}) []types.Issue {
	return types.AppendCapped(issues, types.MaxScannerIssues, types.Issue{
		Description: fmt.Sprintf(format, args...),
	})
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isIdentByte(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_'
}

// readName reads bytes from s until stop returns true or maxNameLength
// bytes have been read.
func readName(s string, stop func(byte) bool) string {
	end := 0
	for end < len(s) && end < maxNameLength && !stop(s[end]) {
		end++
	}
	return s[:end]
}

// hasAnyPrefix reports whether s starts with one of prefixes.
func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
