package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/multipass/pkg/sanitizer"
)

func TestNormalizeUnicode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"combining accent is composed", "Jose\u0301", "Jos\u00e9"},
		{"already composed is unchanged", "Jos\u00e9", "Jos\u00e9"},
		{"ascii is unchanged", "Jane", "Jane"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.NormalizeUnicode(tt.input))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Jane Marie Doe", sanitizer.NormalizeWhitespace("  Jane\t\tMarie \n Doe "))
	assert.Equal(t, "", sanitizer.NormalizeWhitespace(" \t "))
}

func TestCaseHelpers(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ca", sanitizer.ToLower("CA"))
	assert.Equal(t, "ON", sanitizer.ToUpper("on"))
	assert.Equal(t, "x", sanitizer.Trim("  x \n"))
}
