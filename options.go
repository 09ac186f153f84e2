package multipass

import (
	"io"
	"log/slog"
	"time"
)

const component = "multipass"

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for issuance events. Nil is ignored.
// Emails are masked before they are logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source for created_at and max-age checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRandom overrides the IV source. The reader must be cryptographically
// secure and safe for concurrent use if the codec is shared.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) {
		if r != nil {
			c.entropy = r
		}
	}
}

// WithMaxAge makes Decode reject tokens older than d. Zero disables the check.
func WithMaxAge(d time.Duration) Option {
	return func(c *Codec) {
		if d >= 0 {
			c.maxAge = d
		}
	}
}

// WithNormalization runs Customer.Normalize before every token is issued.
func WithNormalization() Option {
	return func(c *Codec) { c.normalize = true }
}

// WithValidation runs Customer.Validate before every token is issued, so
// mappings without a well-formed email are rejected with ErrInvalidCustomer.
func WithValidation() Option {
	return func(c *Codec) { c.validate = true }
}
