// Package loginhandler serves the redirect that signs a customer into the
// store: it resolves the current customer, issues a multipass login URL and
// answers 302 Found with that URL as Location.
//
//	h := loginhandler.New(codec, currentCustomer, loginhandler.WithLogger(log))
//	r.Mount("/multipass", loginhandler.Router(h, clientip.NewResolver("X-Forwarded-For")))
//
// The customer's remote_ip is filled from the client address when blank and
// return_to from the "return_to" query parameter when blank. The query value
// must be a root-relative path or an absolute http(s) URL, so the endpoint
// cannot be turned into an open redirect. Lookup failures map to 401
// (ErrUnauthenticated), rejected attributes or return_to to 400 and anything
// else to 500. Responses are never cached.
//
// QueryCustomer builds the customer from query parameters. It lets anyone log
// in as anyone and exists for local development against a test store.
package loginhandler
