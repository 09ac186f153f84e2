package sanitizer

import "strings"

// FilterEmpty removes whitespace-only entries.
func FilterEmpty(slice []string) []string {
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if strings.TrimSpace(item) != "" {
			result = append(result, item)
		}
	}
	return result
}

// DeduplicateStringsIgnoreCase preserves original casing of first occurrence.
func DeduplicateStringsIgnoreCase(slice []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(slice))

	for _, item := range slice {
		lower := strings.ToLower(item)
		if !seen[lower] {
			seen[lower] = true
			result = append(result, item)
		}
	}

	return result
}

func TrimStringSlice(slice []string) []string {
	result := make([]string, len(slice))
	for i, item := range slice {
		result[i] = strings.TrimSpace(item)
	}
	return result
}
