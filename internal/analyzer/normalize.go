package analyzer

import (
	"strings"
	"unicode"
)

// NormalizeLine reduces a raw source line to its comparison form: everything
// from the first "//" is dropped, then everything from the first "#", then
// all whitespace. The result may be empty, which marks the line as excluded
// from any window.
//
// This is syntax-unaware on purpose: a comment marker inside a string
// literal still truncates the line. Renamed identifiers or reordered
// statements defeat the comparison, which is the accepted tradeoff for a
// language-independent detector.
func NormalizeLine(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}

	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
