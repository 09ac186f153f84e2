package sanitizer

import "strings"

// tagSeparator is how store platforms join customer tags in tag_string.
const tagSeparator = ", "

// SplitTags parses a comma-separated tag string into clean, unique tags.
// Duplicates are compared case-insensitively; the first spelling wins.
func SplitTags(tagString string) []string {
	if strings.TrimSpace(tagString) == "" {
		return nil
	}
	return Apply(strings.Split(tagString, ","),
		TrimStringSlice,
		FilterEmpty,
		DeduplicateStringsIgnoreCase,
	)
}

// JoinTags is the inverse of SplitTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}
