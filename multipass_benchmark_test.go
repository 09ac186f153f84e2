package multipass_test

import (
	"testing"

	"github.com/dmitrymomot/multipass"
)

func BenchmarkCodec_LoginURL(b *testing.B) {
	codec, err := multipass.New(testSecret, testStoreURL)
	if err != nil {
		b.Fatal(err)
	}
	customer := multipass.NewCustomer("example@example.com").
		SetCreatedAt(issuedAt).
		Set(multipass.KeyFirstName, "Jane").
		Set(multipass.KeyReturnTo, "/cart")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := codec.LoginURL(customer); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodec_Decode(b *testing.B) {
	codec, err := multipass.New(testSecret, testStoreURL)
	if err != nil {
		b.Fatal(err)
	}
	token, err := codec.Token(multipass.NewCustomer("example@example.com").SetCreatedAt(issuedAt))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := codec.Decode(token); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodec_TokenFromJSON(b *testing.B) {
	codec, err := multipass.New(testSecret, testStoreURL)
	if err != nil {
		b.Fatal(err)
	}
	doc := []byte(`{"first_name":"Jane","email":"example@example.com","identifier":12345,` +
		`"addresses":[{"id":7,"city":"Ottawa","default":true}],"created_at":"2013-04-11T15:16:23Z"}`)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := codec.TokenFromJSON(doc); err != nil {
			b.Fatal(err)
		}
	}
}
