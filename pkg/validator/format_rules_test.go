package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/multipass/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Run("valid emails", func(t *testing.T) {
		validEmails := []string{
			"example@example.com",
			"user.name@domain.co.uk",
			"user+tag@example.org",
			"firstname.lastname@company.com",
			"1234567890@example.com",
			"email@example-one.com",
			"_______@example.com",
		}

		for _, email := range validEmails {
			err := validator.Apply(validator.ValidEmail("email", email))
			assert.NoError(t, err, "Email should be valid: %s", email)
		}
	})

	t.Run("invalid emails", func(t *testing.T) {
		invalidEmails := []string{
			"",
			"   ",
			"plainaddress",
			"@missingdomain.com",
			"missing@.com",
			"missing@domain",
			"spaces @domain.com",
			"email..double.dot@domain.com",
			"email@domain..com",
			"Jane Doe <jane@example.com>",
			" jane@example.com",
		}

		for _, email := range invalidEmails {
			err := validator.Apply(validator.ValidEmail("email", email))
			assert.Error(t, err, "Email should be invalid: %s", email)

			validationErr := validator.ExtractValidationErrors(err)
			require.NotNil(t, validationErr)
			assert.Equal(t, "validation.email", validationErr[0].TranslationKey)
		}
	})
}

func TestValidURLWithScheme(t *testing.T) {
	schemes := []string{"http", "https"}

	t.Run("valid URLs", func(t *testing.T) {
		for _, u := range []string{
			"https://your-store.myshopify.com/",
			"https://your-store.myshopify.com",
			"http://localhost:3000",
			"https://shop.example.com/en/",
		} {
			assert.NoError(t, validator.Apply(validator.ValidURLWithScheme("store_url", u, schemes)), u)
		}
	})

	t.Run("invalid URLs", func(t *testing.T) {
		for _, u := range []string{
			"",
			"not a url",
			"your-store.myshopify.com",
			"/account/login",
			"https://",
			"ftp://files.example.com",
			"mailto:someone@example.com",
		} {
			err := validator.Apply(validator.ValidURLWithScheme("store_url", u, schemes))
			require.Error(t, err, u)
			assert.Equal(t, "validation.url_scheme", validator.ExtractValidationErrors(err)[0].TranslationKey)
		}
	})
}

func TestValidReturnTo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value string
		valid bool
	}{
		{"/cart", true},
		{"/collections/all?page=2", true},
		{"https://your-store.myshopify.com/cart", true},
		{"http://localhost/checkout", true},
		{"", false},
		{"cart", false},
		{"//evil.example/phish", false},
		{"javascript:alert(1)", false},
		{" /cart", false},
		{"https:///cart", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidReturnTo("return_to", tt.value))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestValidIP(t *testing.T) {
	t.Parallel()
	for _, ip := range []string{"127.0.0.1", "203.0.113.7", "::1", "2001:db8::1"} {
		assert.NoError(t, validator.Apply(validator.ValidIP("remote_ip", ip)), ip)
	}
	for _, ip := range []string{"", "localhost", "256.0.0.1", "1.2.3"} {
		assert.Error(t, validator.Apply(validator.ValidIP("remote_ip", ip)), ip)
	}
}
