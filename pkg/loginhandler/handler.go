package loginhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/multipass"
	"github.com/dmitrymomot/multipass/pkg/clientip"
	"github.com/dmitrymomot/multipass/pkg/httpserver"
	"github.com/dmitrymomot/multipass/pkg/logger"
	"github.com/dmitrymomot/multipass/pkg/requestid"
	"github.com/dmitrymomot/multipass/pkg/validator"
)

const component = "loginhandler"

var (
	// ErrUnauthenticated is returned by a CustomerFunc when nobody is signed in.
	ErrUnauthenticated = errors.New("customer is not signed in")
	// ErrInvalidReturnTo rejects a return_to query value that is neither a
	// root-relative path nor an absolute http(s) URL.
	ErrInvalidReturnTo = errors.New("invalid return_to parameter")
)

// Issuer turns customer attributes into a store login URL. *multipass.Codec implements it.
type Issuer interface {
	LoginURL(customer multipass.Customer) (string, error)
}

// CustomerFunc resolves the customer to sign in for r.
type CustomerFunc func(r *http.Request) (multipass.Customer, error)

// Handler redirects the current customer to the store login URL.
type Handler struct {
	issuer        Issuer
	customer      CustomerFunc
	log           *slog.Logger
	returnToParam string
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithReturnToParam changes the query parameter read into return_to.
// An empty name disables it.
func WithReturnToParam(name string) Option {
	return func(h *Handler) { h.returnToParam = name }
}

// New returns a Handler. It panics if issuer or customer is nil.
func New(issuer Issuer, customer CustomerFunc, opts ...Option) *Handler {
	if issuer == nil || customer == nil {
		panic("loginhandler: nil issuer or customer func")
	}
	h := &Handler{
		issuer:        issuer,
		customer:      customer,
		log:           slog.New(slog.DiscardHandler),
		returnToParam: "return_to",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Cache-Control", "no-store")

	customer, err := h.customer(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if ip := clientip.FromContext(ctx); ip != "" && isBlank(customer, multipass.KeyRemoteIP) {
		customer = customer.Set(multipass.KeyRemoteIP, ip)
	}
	if h.returnToParam != "" && isBlank(customer, multipass.KeyReturnTo) {
		if returnTo := r.URL.Query().Get(h.returnToParam); returnTo != "" {
			if err := validator.Apply(validator.ValidReturnTo(multipass.KeyReturnTo, returnTo)); err != nil {
				h.fail(w, r, errors.Join(ErrInvalidReturnTo, err))
				return
			}
			customer = customer.Set(multipass.KeyReturnTo, returnTo)
		}
	}

	loginURL, err := h.issuer.LoginURL(customer)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.InfoContext(ctx, "multipass redirect",
		logger.Component(component),
		logger.Email(customer.Email()),
	)
	http.Redirect(w, r, loginURL, http.StatusFound)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	level := slog.LevelError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		status, level = http.StatusUnauthorized, slog.LevelInfo
	case errors.Is(err, multipass.ErrInvalidCustomer), errors.Is(err, ErrInvalidReturnTo):
		status, level = http.StatusBadRequest, slog.LevelWarn
	}

	h.log.Log(r.Context(), level, "multipass redirect failed",
		logger.Component(component),
		slog.Int("status", status),
		logger.Error(err),
	)
	http.Error(w, http.StatusText(status), status)
}

// Router serves h at GET /login and a liveness check at GET /healthz.
// Requests get a request ID and the client address resolved by ips.
func Router(h *Handler, ips *clientip.Resolver) chi.Router {
	if ips == nil {
		ips = clientip.NewResolver()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, ips.Middleware)
	r.Get("/healthz", httpserver.Liveness)
	r.Method(http.MethodGet, "/login", h)
	return r
}

// isBlank reports whether key is absent, null or an empty string.
func isBlank(c multipass.Customer, key string) bool {
	v, ok := c.Get(key)
	return !ok || v == nil || v == ""
}

var queryKeys = []string{
	multipass.KeyFirstName,
	multipass.KeyLastName,
	multipass.KeyTagString,
	multipass.KeyIdentifier,
}

// QueryCustomer reads email, first_name, last_name, tag_string and identifier
// from the query string, in that order, skipping empty ones. return_to is
// left to the handler, which checks it. A missing email is ErrUnauthenticated.
func QueryCustomer(r *http.Request) (multipass.Customer, error) {
	q := r.URL.Query()
	email := q.Get(multipass.KeyEmail)
	if email == "" {
		return multipass.Customer{}, ErrUnauthenticated
	}

	customer := multipass.NewCustomer(email)
	for _, key := range queryKeys {
		if v := q.Get(key); v != "" {
			customer = customer.Set(key, v)
		}
	}
	return customer, nil
}
