// Package multipass issues encrypted, signed single-sign-on tokens that let a
// store log a customer into a downstream platform without a password.
//
// A token carries the customer's identity attributes as JSON, encrypted with
// AES-128-CBC and authenticated with HMAC-SHA256. Both keys come from one
// shared secret: SHA-256(secret) is split into a 16-byte encryption key and a
// 16-byte signature key.
//
// Token format: base64url(IV[16] || ciphertext[16k] || HMAC-SHA256[32]), no padding.
//
// # Usage
//
//	import "github.com/dmitrymomot/multipass"
//
//	codec, err := multipass.New("multipass-secret", "https://your-store.myshopify.com/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	customer := multipass.NewCustomer("example@example.com").
//	    Set(multipass.KeyFirstName, "Jane").
//	    Set(multipass.KeyReturnTo, "/cart")
//
//	loginURL, err := codec.LoginURL(customer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// https://your-store.myshopify.com/account/login/multipass/<token>
//
// Customer is an open, ordered mapping. Keys are serialized in the order they
// were added and values pass through untouched, so numeric identifiers,
// date-only created_at values or platform-specific keys all reach the store
// as given. Callers holding a raw JSON document can use TokenFromJSON and
// LoginURLFromJSON; the document's key order and value bytes are kept.
//
// When created_at is absent it is appended with the current UTC time. The IV
// is random, so two tokens for identical attributes never match byte for
// byte, yet both decode to the same attributes.
//
// The codec accepts any mapping. WithValidation additionally requires a
// well-formed email and checks remote_ip and return_to; WithNormalization
// cleans up string values of the known attributes first.
//
// # Verification
//
// Decode and Open implement the receiving side: the signature is checked in
// constant time before anything is decrypted. WithMaxAge rejects tokens whose
// created_at is older than the given duration.
//
// # Error Handling
//
// All failures wrap a package sentinel (ErrInvalidSecret, ErrInvalidStoreURL,
// ErrInvalidCustomer, ErrTokenGenerationFailed, ErrURLConstructionFailed,
// ErrSignatureInvalid, ErrTokenExpired, ...). Use errors.Is to match them.
// No partial token or URL is ever returned alongside an error.
//
// # Interoperability
//
// The receiver decrypts and parses the JSON; it never re-serializes it, so key
// order only matters for byte-level comparisons. Keys keep insertion order,
// HTML characters are not escaped and an injected created_at uses RFC 3339.
package multipass
