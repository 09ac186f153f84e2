package clientip

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Resolver extracts client addresses using a fixed list of trusted headers.
type Resolver struct {
	headers []string
}

// NewResolver returns a Resolver that trusts headers in the given order
// before falling back to RemoteAddr. Blank names are ignored.
func NewResolver(headers ...string) *Resolver {
	trusted := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			trusted = append(trusted, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: trusted}
}

// Headers returns the trusted header names in priority order.
func (res *Resolver) Headers() []string {
	return append([]string(nil), res.headers...)
}

// FromRequest returns the normalized client IP of r.
func (res *Resolver) FromRequest(r *http.Request) string {
	for _, h := range res.headers {
		for _, v := range r.Header.Values(h) {
			for candidate := range strings.SplitSeq(v, ",") {
				if ip := parseIP(candidate); ip != "" {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithContext(r.Context(), res.FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseIP returns the canonical form of s, or "" if s is not an IP address.
// IPv4-mapped IPv6 addresses are unmapped and zones are dropped.
func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying ip.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the address stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}
