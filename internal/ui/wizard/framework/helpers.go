package framework

import (
	"strings"
	"unicode"
)

// RuneFilter determines which runes are allowed in input.
type RuneFilter func(r rune) bool

// RuneFilterNone allows all printable characters.
func RuneFilterNone(r rune) bool {
	return unicode.IsPrint(r)
}

// RuneFilterIdentifier allows the characters of registry item names:
// letters, digits, '-' and '_'.
func RuneFilterIdentifier(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// FilterText returns the characters of text that pass the filter.
// If filter is nil, defaults to RuneFilterNone (all printable).
func FilterText(text string, filter RuneFilter) string {
	if filter == nil {
		filter = RuneFilterNone
	}
	var result strings.Builder
	for _, r := range text {
		if filter(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// DeleteLastWord removes the last word (and trailing spaces or dashes) from s.
func DeleteLastWord(s string) string {
	s = strings.TrimRight(s, " -")
	if i := strings.LastIndexAny(s, " -"); i >= 0 {
		return s[:i+1]
	}
	return ""
}
