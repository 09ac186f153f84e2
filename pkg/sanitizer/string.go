package sanitizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts a string to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// ToUpper converts a string to uppercase.
func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// NormalizeUnicode converts s to Unicode NFC so that visually identical names
// ("é" as one code point or as "e" + combining accent) encode to the same bytes.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// NormalizeWhitespace collapses runs of spaces, tabs and newlines into one space.
func NormalizeWhitespace(s string) string {
	normalized := whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(normalized)
}
