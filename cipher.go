package multipass

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"io"
)

// encrypt returns IV||ciphertext for data under AES-128-CBC with PKCS#7 padding.
// A fresh IV is read from entropy on every call.
func encrypt(key []byte, data []byte, entropy io.Reader) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	padded := pkcs7Pad(data, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))

	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(entropy, iv); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return out, nil
}

// decrypt reverses encrypt. Expects IV||ciphertext.
func decrypt(key []byte, data []byte) ([]byte, error) {
	if len(data) < 2*aes.BlockSize || len(data)%aes.BlockSize != 0 {
		return nil, errors.Join(ErrDecryptionFailed, errCiphertextSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	iv, ciphertext := data[:aes.BlockSize], data[aes.BlockSize:]
	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plain, nil
}

var (
	errCiphertextSize = errors.New("ciphertext is not a whole number of blocks")
	errPadding        = errors.New("invalid PKCS#7 padding")
)

// pkcs7Pad always appends 1..blockSize bytes, so aligned input gains a full block.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errPadding
		}
	}
	return data[:len(data)-n], nil
}
