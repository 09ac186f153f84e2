package logger

import (
	"log/slog"

	"github.com/dmitrymomot/multipass/pkg/sanitizer"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Email records a masked customer email under the key "email".
// The local part never reaches the log.
func Email(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("email", sanitizer.MaskEmail(email))
}

// StoreHost records the store host under the key "store".
func StoreHost(host string) slog.Attr {
	return slog.String("store", host)
}

// TokenSize records the encoded token length under the key "token_size".
func TokenSize(n int) slog.Attr {
	return slog.Int("token_size", n)
}
