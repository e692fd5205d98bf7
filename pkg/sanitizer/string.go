package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// MaxLength cuts s to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// Truncate returns MaxLength bound to maxLen, for use in a pipeline.
func Truncate(maxLen int) func(string) string {
	return func(s string) string { return MaxLength(s, maxLen) }
}

// RemoveExtraWhitespace collapses every whitespace run into a single space
// and trims the ends.
func RemoveExtraWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RemoveControlChars drops control characters other than tab, CR and LF.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SingleLine joins the lines of s with single spaces.
func SingleLine(s string) string {
	return RemoveExtraWhitespace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}
