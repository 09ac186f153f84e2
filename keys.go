package multipass

import (
	"crypto/sha256"
	"fmt"
)

// KeySize is the length of each derived key: AES-128 for encryption and the HMAC key.
const KeySize = 16

// deriveKeys splits SHA-256(secret) into the encryption key (first half)
// and the signature key (second half).
func deriveKeys(secret string) (encKey, sigKey [KeySize]byte, err error) {
	h := sha256.New()
	h.Write([]byte(secret))
	sum := h.Sum(nil)
	if len(sum) != 2*KeySize {
		return encKey, sigKey, fmt.Errorf("%w: hash returned %d bytes, want %d",
			ErrKeyDerivationFailed, len(sum), 2*KeySize)
	}

	copy(encKey[:], sum[:KeySize])
	copy(sigKey[:], sum[KeySize:])
	return encKey, sigKey, nil
}
