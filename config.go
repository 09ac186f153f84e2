package multipass

import "time"

// Config holds codec settings loaded from the environment.
type Config struct {
	Secret    string        `env:"MULTIPASS_SECRET,required,notEmpty"`     // Shared secret issued by the store platform
	StoreURL  string        `env:"MULTIPASS_STORE_URL,required,notEmpty"`  // Store base URL, e.g. https://your-store.myshopify.com/
	MaxAge    time.Duration `env:"MULTIPASS_MAX_AGE" envDefault:"0s"`      // Max token age accepted by Decode; 0 disables the check
	Normalize bool          `env:"MULTIPASS_NORMALIZE" envDefault:"false"` // Normalize customer attributes before issuing
	Validate  bool          `env:"MULTIPASS_VALIDATE" envDefault:"false"`  // Reject attributes without a well-formed email
}

// NewFromConfig builds a Codec from cfg. Options passed explicitly are
// applied after the ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Codec, error) {
	base := []Option{WithMaxAge(cfg.MaxAge)}
	if cfg.Normalize {
		base = append(base, WithNormalization())
	}
	if cfg.Validate {
		base = append(base, WithValidation())
	}
	return New(cfg.Secret, cfg.StoreURL, append(base, opts...)...)
}
