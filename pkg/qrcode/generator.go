package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrContentTooLarge is returned when content exceeds QR capacity at the chosen recovery level.
	ErrContentTooLarge = errors.New("content too large for a QR code")
	// ErrGenerationFailed is returned when the QR code cannot be rendered or written.
	ErrGenerationFailed = errors.New("failed to generate QR code")
)

// DefaultSize is the image edge length in pixels used when size <= 0.
const DefaultSize = 256

// RecoveryLevel is the amount of error correction embedded in the image.
type RecoveryLevel = skipqrcode.RecoveryLevel

// Recovery levels, from most capacity to most redundancy.
const (
	Low     = skipqrcode.Low
	Medium  = skipqrcode.Medium
	High    = skipqrcode.High
	Highest = skipqrcode.Highest
)

type settings struct {
	level RecoveryLevel
}

// Option adjusts image generation.
type Option func(*settings)

// WithRecoveryLevel sets the error correction level. Default is Low, which
// leaves the most room for long login URLs.
func WithRecoveryLevel(level RecoveryLevel) Option {
	return func(s *settings) { s.level = level }
}

// Generate renders content as a PNG image with the given edge length.
func Generate(content string, size int, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	s := settings{level: Low}
	for _, opt := range opts {
		opt(&s)
	}

	png, err := skipqrcode.Encode(content, s.level, size)
	if err != nil {
		if strings.Contains(err.Error(), "too long") {
			return nil, fmt.Errorf("%w: %d bytes", ErrContentTooLarge, len(content))
		}
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	return png, nil
}

// DataURI renders content and returns it as a data:image/png;base64 URI.
func DataURI(content string, size int, opts ...Option) (string, error) {
	png, err := Generate(content, size, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// WriteFile renders content and writes the PNG to path with mode 0644.
func WriteFile(path, content string, size int, opts ...Option) error {
	png, err := Generate(content, size, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.Join(ErrGenerationFailed, err)
	}
	return nil
}
