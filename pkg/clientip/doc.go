// Package clientip resolves the originating client address of an HTTP request,
// used to fill a customer's remote_ip before a multipass token is issued.
//
// Proxy headers are only consulted when explicitly trusted: a Resolver built
// without headers always uses the TCP peer address, so a client cannot spoof
// the IP the token is bound to. List headers in priority order, for example
// "CF-Connecting-IP" then "X-Forwarded-For" behind Cloudflare.
//
//	ips := clientip.NewResolver("CF-Connecting-IP", "X-Forwarded-For")
//	r.Use(ips.Middleware)
//
//	// in a handler
//	ip := clientip.FromContext(r.Context())
//
// For X-Forwarded-For the first valid address in the list is used. Invalid
// header values are skipped. An empty string means no valid address was found.
package clientip
