package sanitizer

import "strings"

// NormalizeEmail trims the address and lower-cases its domain. The local part
// is kept as is: some providers treat it as case- and dot-sensitive, and
// changing it would log the customer into a different account.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// MaskEmail preserves full domain for user recognition while hiding personal info.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	if len(local) == 0 {
		return email
	}

	if len(local) == 1 {
		return "*@" + domain
	}

	masked := string(local[0]) + strings.Repeat("*", len(local)-1)
	return masked + "@" + domain
}
