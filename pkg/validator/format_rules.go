package validator

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"slices"
	"strings"
)

// ValidEmail validates that a string is a bare RFC 5322 address with a dotted domain.
// Display-name forms such as "Jane <jane@example.com>" are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}

			// Domain must contain at least one dot and no empty labels
			if !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidURLWithScheme validates an absolute URL with a host and one of the given schemes.
func ValidURLWithScheme(field, value string, schemes []string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			u, err := url.Parse(value)
			if err != nil {
				return false
			}
			return u.IsAbs() && u.Host != "" && slices.Contains(schemes, u.Scheme)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a valid URL with scheme: %s", strings.Join(schemes, ", ")),
			TranslationKey: "validation.url_scheme",
			TranslationValues: map[string]any{
				"field":   field,
				"schemes": schemes,
			},
		},
	}
}

// ValidReturnTo accepts a root-relative path ("/cart") or an absolute http(s) URL.
// Scheme-relative values like "//evil.example" are rejected.
func ValidReturnTo(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) != value || value == "" {
				return false
			}
			u, err := url.Parse(value)
			if err != nil {
				return false
			}
			if u.IsAbs() {
				return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
			}
			return strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") && u.Host == ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a root-relative path or an absolute http(s) URL",
			TranslationKey: "validation.return_to",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidIP validates that a string is a valid IP address (IPv4 or IPv6).
func ValidIP(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return net.ParseIP(value) != nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid IP address",
			TranslationKey: "validation.ip",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
