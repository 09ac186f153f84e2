package multipass

import (
	"crypto/aes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/multipass/pkg/logger"
	"github.com/dmitrymomot/multipass/pkg/validator"
)

// LoginPath is the path on the store that accepts multipass tokens.
const LoginPath = "/account/login/multipass/"

// minTokenSize is IV + one cipher block + signature.
const minTokenSize = 2*aes.BlockSize + SignatureSize

var errEmptyToken = errors.New("empty token")

// Codec issues and verifies multipass tokens for a single store.
// It is immutable after New and safe for concurrent use.
type Codec struct {
	encryptionKey [KeySize]byte
	signatureKey  [KeySize]byte
	storeURL      *url.URL

	now       func() time.Time
	entropy   io.Reader
	logger    *slog.Logger
	maxAge    time.Duration
	normalize bool
	validate  bool
}

// New derives the token keys from secret and binds the codec to storeURL,
// which must be an absolute http(s) URL.
func New(secret, storeURL string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrInvalidSecret
	}

	if err := validator.Apply(validator.ValidURLWithScheme("store_url", storeURL, []string{"http", "https"})); err != nil {
		return nil, errors.Join(ErrInvalidStoreURL, err)
	}
	base, err := url.Parse(storeURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidStoreURL, err)
	}

	encKey, sigKey, err := deriveKeys(secret)
	if err != nil {
		return nil, err
	}

	c := &Codec{
		encryptionKey: encKey,
		signatureKey:  sigKey,
		storeURL:      base,
		now:           time.Now,
		entropy:       rand.Reader,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// StoreURL returns the store base URL login links are resolved against.
func (c *Codec) StoreURL() string {
	return c.storeURL.String()
}

// Token encrypts and signs the customer attributes. Any mapping is accepted
// unless WithValidation is set. When created_at is absent it is appended
// with the current UTC time; the caller's value is never modified.
// Every call yields a different token because the IV is random.
func (c *Codec) Token(customer Customer) (string, error) {
	token, err := c.token(customer)
	if err != nil {
		c.logger.Warn("multipass token generation failed",
			logger.Component(component),
			logger.StoreHost(c.storeURL.Host),
			logger.Error(err),
		)
		return "", errors.Join(ErrTokenGenerationFailed, err)
	}

	c.logger.Debug("multipass token issued",
		logger.Component(component),
		logger.Email(customer.Email()),
		logger.StoreHost(c.storeURL.Host),
		logger.TokenSize(len(token)),
	)
	return token, nil
}

// TokenFromJSON is Token for a raw attribute document. The document must be
// a JSON object; null or any other JSON value fails with ErrInvalidCustomer.
func (c *Codec) TokenFromJSON(data []byte) (string, error) {
	customer, err := ParseCustomer(data)
	if err != nil {
		return "", err
	}
	return c.Token(customer)
}

// LoginURL returns the absolute store URL that logs the customer in:
// <store>/account/login/multipass/<token>.
func (c *Codec) LoginURL(customer Customer) (string, error) {
	token, err := c.Token(customer)
	if err != nil {
		return "", err
	}
	return c.loginURL(token)
}

// LoginURLFromJSON is LoginURL for a raw attribute document.
func (c *Codec) LoginURLFromJSON(data []byte) (string, error) {
	token, err := c.TokenFromJSON(data)
	if err != nil {
		return "", err
	}
	return c.loginURL(token)
}

// Open verifies the token signature and returns the decrypted attribute document.
func (c *Codec) Open(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if len(raw) < minTokenSize {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", ErrInvalidToken, len(raw), minTokenSize)
	}

	body, sig := raw[:len(raw)-SignatureSize], raw[len(raw)-SignatureSize:]
	if !verify(c.signatureKey[:], body, sig) {
		return nil, ErrSignatureInvalid
	}
	return decrypt(c.encryptionKey[:], body)
}

// Decode verifies and decrypts a token issued with the same secret.
// With WithMaxAge set, tokens whose created_at is missing, unreadable or too
// old fail with ErrTokenExpired.
func (c *Codec) Decode(token string) (Customer, error) {
	plain, err := c.Open(token)
	if err != nil {
		return Customer{}, err
	}

	customer, err := ParseCustomer(plain)
	if err != nil {
		return Customer{}, errors.Join(ErrInvalidToken, err)
	}

	if c.maxAge > 0 {
		issued, ok := customer.CreatedAt()
		if !ok {
			return Customer{}, fmt.Errorf("%w: missing or unreadable created_at", ErrTokenExpired)
		}
		if age := c.now().Sub(issued); age > c.maxAge {
			return Customer{}, fmt.Errorf("%w: issued %s ago", ErrTokenExpired, age.Truncate(time.Second))
		}
	}
	return customer, nil
}

func (c *Codec) token(customer Customer) (string, error) {
	if !customer.Has(KeyCreatedAt) {
		customer = customer.SetCreatedAt(c.now().UTC().Truncate(time.Second))
	}
	if c.normalize {
		customer = customer.Normalize()
	}
	if c.validate {
		if err := customer.Validate(); err != nil {
			return "", errors.Join(ErrInvalidCustomer, err)
		}
	}

	plain, err := customer.MarshalJSON()
	if err != nil {
		return "", err
	}
	return c.seal(plain)
}

// seal produces base64url(IV || ciphertext || HMAC(IV || ciphertext)).
func (c *Codec) seal(plain []byte) (string, error) {
	body, err := encrypt(c.encryptionKey[:], plain, c.entropy)
	if err != nil {
		return "", err
	}

	raw := make([]byte, 0, len(body)+SignatureSize)
	raw = append(raw, body...)
	raw = append(raw, sign(c.signatureKey[:], body)...)
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (c *Codec) loginURL(token string) (string, error) {
	if token == "" {
		return "", errors.Join(ErrURLConstructionFailed, errEmptyToken)
	}

	ref, err := url.Parse(LoginPath + url.PathEscape(token))
	if err != nil {
		return "", errors.Join(ErrURLConstructionFailed, err)
	}

	u := c.storeURL.ResolveReference(ref)
	if !u.IsAbs() {
		return "", fmt.Errorf("%w: %q is not absolute", ErrURLConstructionFailed, u)
	}
	return u.String(), nil
}
