// Package sanitizer provides small string clean-up helpers applied to customer
// attributes before they are sealed into a token, plus masking for logs.
//
//   - Strings: trimming, case conversion, Unicode NFC and whitespace
//     normalisation.
//   - Format: e-mail normalisation and masking.
//   - Collections and tags: splitting, de-duplicating and joining the
//     comma-separated tag_string attribute.
//
// All helpers are pure functions. Apply and Compose build pipelines:
//
//	name := sanitizer.Compose(
//	    sanitizer.NormalizeUnicode,
//	    sanitizer.NormalizeWhitespace,
//	)
//	first := name("  Jane \t Marie ") // "Jane Marie"
package sanitizer
