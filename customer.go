package multipass

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/multipass/pkg/sanitizer"
	"github.com/dmitrymomot/multipass/pkg/validator"
)

// Attribute keys the receiving platform understands.
const (
	KeyEmail      = "email"
	KeyCreatedAt  = "created_at"
	KeyFirstName  = "first_name"
	KeyLastName   = "last_name"
	KeyTagString  = "tag_string"
	KeyIdentifier = "identifier"
	KeyRemoteIP   = "remote_ip"
	KeyReturnTo   = "return_to"
	KeyAddresses  = "addresses"
)

// Customer is the attribute mapping embedded in a multipass token: string
// keys to arbitrary JSON values, kept in the order keys were first added.
// That order is the serialization order. The zero value is an empty mapping.
//
// Customer is a value type. Set, Delete and Normalize return copies and
// never modify the receiver.
type Customer struct {
	fields []Field
}

// Field is a single attribute. Value is any JSON-encodable value; attributes
// parsed from a document hold the original bytes as json.RawMessage.
type Field struct {
	Key   string
	Value any
}

// Address is a postal/contact record for building the addresses attribute.
// Parsed documents keep their address records as given, unknown keys included.
type Address struct {
	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
	City         string `json:"city,omitempty"`
	Company      string `json:"company,omitempty"`
	Country      string `json:"country,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Province     string `json:"province,omitempty"`
	ProvinceCode string `json:"province_code,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Default      bool   `json:"default"`
}

// NewCustomer returns a mapping with email first, followed by fields in order.
// A repeated key replaces the earlier value in place.
func NewCustomer(email string, fields ...Field) Customer {
	c := Customer{fields: make([]Field, 0, 1+len(fields))}
	c.put(KeyEmail, email)
	for _, f := range fields {
		c.put(f.Key, f.Value)
	}
	return c
}

// Email returns the email attribute, or "" when it is absent or not a string.
func (c Customer) Email() string {
	s, _ := c.String(KeyEmail)
	return s
}

// CreatedAt parses the created_at attribute. RFC 3339 timestamps with or
// without fractional seconds, zone-less date-times (UTC) and plain dates are
// understood; anything else reports false.
func (c Customer) CreatedAt() (time.Time, bool) {
	v, ok := c.Get(KeyCreatedAt)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		return parseTimestamp(t)
	}
	return time.Time{}, false
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Get returns the value stored under key. Parsed values are decoded into
// string, bool, json.Number, []any, map[string]any or nil.
func (c Customer) Get(key string) (any, bool) {
	i := c.index(key)
	if i < 0 {
		return nil, false
	}
	if raw, ok := c.fields[i].Value.(json.RawMessage); ok {
		return decodeRaw(raw), true
	}
	return c.fields[i].Value, true
}

// String returns the value under key when it is a JSON string.
func (c Customer) String(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports whether key is present, whatever its value.
func (c Customer) Has(key string) bool {
	return c.index(key) >= 0
}

// Set returns a copy of c with key set to value. An existing key keeps its
// position; a new one is appended.
func (c Customer) Set(key string, value any) Customer {
	out := Customer{fields: slices.Clone(c.fields)}
	out.put(key, value)
	return out
}

// SetCreatedAt is Set for created_at, formatted as RFC 3339.
func (c Customer) SetCreatedAt(t time.Time) Customer {
	return c.Set(KeyCreatedAt, t.Format(time.RFC3339))
}

// Delete returns a copy of c without key.
func (c Customer) Delete(key string) Customer {
	return Customer{fields: slices.DeleteFunc(slices.Clone(c.fields), func(f Field) bool {
		return f.Key == key
	})}
}

// Keys returns the attribute keys in serialization order.
func (c Customer) Keys() []string {
	keys := make([]string, len(c.fields))
	for i, f := range c.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the attributes in serialization order.
func (c Customer) Fields() []Field {
	return slices.Clone(c.fields)
}

// Len returns the number of attributes.
func (c Customer) Len() int {
	return len(c.fields)
}

func (c Customer) index(key string) int {
	return slices.IndexFunc(c.fields, func(f Field) bool { return f.Key == key })
}

func (c *Customer) put(key string, value any) {
	if i := c.index(key); i >= 0 {
		c.fields[i].Value = value
		return
	}
	c.fields = append(c.fields, Field{Key: key, Value: value})
}

// Validate checks the attributes the receiving platform relies on: email is
// required and must be a bare address, remote_ip and return_to are checked
// when non-empty. Other attributes are not inspected.
// Returns validator.ValidationErrors on failure.
func (c Customer) Validate() error {
	rules := c.stringRules(KeyEmail, true, validator.ValidEmail)
	rules = append(rules, c.stringRules(KeyRemoteIP, false, validator.ValidIP)...)
	rules = append(rules, c.stringRules(KeyReturnTo, false, validator.ValidReturnTo)...)
	return validator.Apply(rules...)
}

func (c Customer) stringRules(key string, required bool, rule func(field, value string) validator.Rule) []validator.Rule {
	v, ok := c.Get(key)
	if !ok {
		if required {
			return []validator.Rule{validator.RequiredString(key, "")}
		}
		return nil
	}

	s, isString := v.(string)
	switch {
	case !isString:
		return []validator.Rule{validator.IsString(key, v)}
	case strings.TrimSpace(s) == "" && required:
		return []validator.Rule{validator.RequiredString(key, s)}
	case s == "":
		return nil
	}
	return []validator.Rule{rule(key, s)}
}

var (
	normalizeText = sanitizer.Compose(sanitizer.NormalizeUnicode, sanitizer.Trim)
	normalizeName = sanitizer.Compose(normalizeText, sanitizer.NormalizeWhitespace)
	normalizeCode = sanitizer.Compose(normalizeText, sanitizer.ToUpper)
	normalizeTags = func(s string) string { return sanitizer.JoinTags(sanitizer.SplitTags(normalizeText(s))) }
)

var customerNormalizers = map[string]func(string) string{
	KeyEmail:      sanitizer.NormalizeEmail,
	KeyFirstName:  normalizeName,
	KeyLastName:   normalizeName,
	KeyTagString:  normalizeTags,
	KeyIdentifier: normalizeText,
	KeyRemoteIP:   sanitizer.Trim,
	KeyReturnTo:   sanitizer.Trim,
}

var addressNormalizers = map[string]func(string) string{
	"address1":      normalizeText,
	"address2":      normalizeText,
	"city":          normalizeText,
	"company":       normalizeText,
	"country":       normalizeText,
	"country_code":  normalizeCode,
	"first_name":    normalizeName,
	"last_name":     normalizeName,
	"phone":         normalizeText,
	"province":      normalizeText,
	"province_code": normalizeCode,
	"zip":           normalizeText,
}

// Normalize returns a cleaned-up copy of c: string values of the known
// attributes and of address records are trimmed and NFC-normalized, the
// email domain is lower-cased, names get single spaces, tags are
// de-duplicated and country/province codes upper-cased. Values of any other
// type, and unknown keys, are left as they are. The receiver is untouched.
func (c Customer) Normalize() Customer {
	out := c.transform(customerNormalizers)
	if i := out.index(KeyAddresses); i >= 0 {
		out.fields[i].Value = normalizeAddresses(out.fields[i].Value)
	}
	return out
}

func (c Customer) transform(fns map[string]func(string) string) Customer {
	out := Customer{fields: slices.Clone(c.fields)}
	for i, f := range out.fields {
		fn, ok := fns[f.Key]
		if !ok {
			continue
		}
		if s, ok := stringValue(f.Value); ok {
			out.fields[i].Value = fn(s)
		}
	}
	return out
}

func normalizeAddresses(v any) any {
	if list, ok := v.([]Address); ok {
		out := make([]Address, len(list))
		for i, a := range list {
			out[i] = Address{
				Address1:     normalizeText(a.Address1),
				Address2:     normalizeText(a.Address2),
				City:         normalizeText(a.City),
				Company:      normalizeText(a.Company),
				Country:      normalizeText(a.Country),
				CountryCode:  normalizeCode(a.CountryCode),
				FirstName:    normalizeName(a.FirstName),
				LastName:     normalizeName(a.LastName),
				Phone:        normalizeText(a.Phone),
				Province:     normalizeText(a.Province),
				ProvinceCode: normalizeCode(a.ProvinceCode),
				Zip:          normalizeText(a.Zip),
				Default:      a.Default,
			}
		}
		return out
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return v
	}

	out := make([]any, len(items))
	for i, item := range items {
		record, err := ParseCustomer(item)
		if err != nil {
			out[i] = item
			continue
		}
		out[i] = record.transform(addressNormalizers)
	}
	return out
}

func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.RawMessage:
		var out string
		if err := json.Unmarshal(s, &out); err != nil {
			return "", false
		}
		return out, true
	}
	return "", false
}

func decodeRaw(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	return v
}

// MarshalJSON writes the attribute document with keys in mapping order.
// Parsed values are written back byte for byte, minus insignificant
// whitespace. HTML characters are not escaped.
func (c Customer) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range c.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(enc, &buf, f.Key); err != nil {
			return nil, errors.Join(ErrInvalidCustomer, err)
		}
		buf.WriteByte(':')
		if err := encodeCompact(enc, &buf, f.Value); err != nil {
			return nil, errors.Join(ErrInvalidCustomer, fmt.Errorf("%s: %w", f.Key, err))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeCompact writes v without the trailing newline json.Encoder appends.
func encodeCompact(enc *json.Encoder, buf *bytes.Buffer, v any) error {
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON parses an attribute document. See ParseCustomer.
// A JSON null is a no-op, as with the standard decoder.
func (c *Customer) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	parsed, err := ParseCustomer(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCustomer decodes a JSON object into a Customer, keeping every key in
// document order and every value as given. A repeated key keeps its first
// position and its last value. Anything other than a single JSON object,
// including null, fails with ErrInvalidCustomer.
func ParseCustomer(data []byte) (Customer, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return Customer{}, errors.Join(ErrInvalidCustomer, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Customer{}, fmt.Errorf("%w: attributes must be a JSON object, got %s", ErrInvalidCustomer, describeToken(tok))
	}

	var c Customer
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Customer{}, errors.Join(ErrInvalidCustomer, err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Customer{}, errors.Join(ErrInvalidCustomer, fmt.Errorf("%s: %w", key, err))
		}
		c.put(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return Customer{}, errors.Join(ErrInvalidCustomer, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Customer{}, fmt.Errorf("%w: unexpected data after attributes object", ErrInvalidCustomer)
	}
	return c, nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
