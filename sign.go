package multipass

import (
	"crypto/hmac"
	"crypto/sha256"
)

// SignatureSize is the length of the HMAC-SHA256 tag appended to every token.
const SignatureSize = sha256.Size

// sign computes HMAC-SHA256 over data with the signature key.
func sign(key []byte, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// verify compares sig against a freshly computed tag in constant time.
func verify(key []byte, data, sig []byte) bool {
	return hmac.Equal(sig, sign(key, data))
}
