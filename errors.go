package multipass

import "errors"

var (
	// Configuration errors
	ErrInvalidSecret       = errors.New("invalid multipass secret: must be a non-empty string")
	ErrInvalidStoreURL     = errors.New("invalid store URL: must be an absolute http(s) URL")
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// Validation errors
	ErrInvalidCustomer = errors.New("invalid customer attributes")

	// Cryptographic errors
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrSignatureInvalid = errors.New("signature mismatch")

	// Token and URL errors
	ErrTokenGenerationFailed = errors.New("failed to generate multipass token")
	ErrURLConstructionFailed = errors.New("failed to construct login URL")
	ErrInvalidToken          = errors.New("invalid multipass token")
	ErrTokenExpired          = errors.New("multipass token expired")
)
