package loginhandler_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/multipass"
	"github.com/dmitrymomot/multipass/pkg/clientip"
	"github.com/dmitrymomot/multipass/pkg/loginhandler"
	"github.com/dmitrymomot/multipass/pkg/logger"
	"github.com/dmitrymomot/multipass/pkg/requestid"
)

const storeURL = "https://your-store.myshopify.com/"

func newCodec(t *testing.T, opts ...multipass.Option) *multipass.Codec {
	t.Helper()
	codec, err := multipass.New("multipass-secret", storeURL, opts...)
	require.NoError(t, err)
	return codec
}

func signedIn(c multipass.Customer) loginhandler.CustomerFunc {
	return func(*http.Request) (multipass.Customer, error) { return c, nil }
}

func decodeLocation(t *testing.T, codec *multipass.Codec, rec *httptest.ResponseRecorder) multipass.Customer {
	t.Helper()
	loc := rec.Header().Get("Location")
	_, token, ok := strings.Cut(loc, multipass.LoginPath)
	require.True(t, ok, "unexpected location %q", loc)

	customer, err := codec.Decode(token)
	require.NoError(t, err)
	return customer
}

func TestRouter_Login(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	router := loginhandler.Router(
		loginhandler.New(codec, signedIn(multipass.NewCustomer("jane@example.com"))),
		clientip.NewResolver("X-Forwarded-For"),
	)

	req := httptest.NewRequest(http.MethodGet, "/login?return_to=/collections/all", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), storeURL+"account/login/multipass/"))

	customer := decodeLocation(t, codec, rec)
	assert.Equal(t, "jane@example.com", customer.Email())
	assert.Equal(t, []string{"email", "remote_ip", "return_to", "created_at"}, customer.Keys())
	ip, _ := customer.String(multipass.KeyRemoteIP)
	assert.Equal(t, "203.0.113.7", ip)
	returnTo, _ := customer.String(multipass.KeyReturnTo)
	assert.Equal(t, "/collections/all", returnTo)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := loginhandler.Router(loginhandler.New(newCodec(t), loginhandler.QueryCustomer), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestHandler_KeepsCustomerValues(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	h := loginhandler.New(codec, signedIn(multipass.NewCustomer("jane@example.com").
		Set(multipass.KeyRemoteIP, "198.51.100.1").
		Set(multipass.KeyReturnTo, "/account").
		Set(multipass.KeyIdentifier, 12345)))

	req := httptest.NewRequest(http.MethodGet, "/login?return_to=/elsewhere", nil)
	rec := httptest.NewRecorder()
	loginhandler.Router(h, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	customer := decodeLocation(t, codec, rec)
	got, err := customer.MarshalJSON()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got),
		`{"email":"jane@example.com","remote_ip":"198.51.100.1","return_to":"/account","identifier":12345,"created_at":"`), string(got))
}

func TestHandler_ReturnToParam(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	h := loginhandler.New(codec, signedIn(multipass.NewCustomer("jane@example.com")),
		loginhandler.WithReturnToParam("next"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?next=/cart&return_to=/ignored", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	customer := decodeLocation(t, codec, rec)
	returnTo, _ := customer.String(multipass.KeyReturnTo)
	assert.Equal(t, "/cart", returnTo)
	assert.False(t, customer.Has(multipass.KeyRemoteIP), "no client ip without the router middleware")
}

func TestHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		customer loginhandler.CustomerFunc
		target   string
		status   int
	}{
		{
			name:     "not signed in",
			customer: loginhandler.QueryCustomer,
			target:   "/login",
			status:   http.StatusUnauthorized,
		},
		{
			name:     "invalid attributes",
			customer: signedIn(multipass.NewCustomer("not-an-email")),
			target:   "/login",
			status:   http.StatusBadRequest,
		},
		{
			name:     "unsafe return_to",
			customer: signedIn(multipass.NewCustomer("jane@example.com")),
			target:   "/login?return_to=//evil.example",
			status:   http.StatusBadRequest,
		},
		{
			name:     "javascript return_to",
			customer: signedIn(multipass.NewCustomer("jane@example.com")),
			target:   "/login?return_to=javascript:alert(1)",
			status:   http.StatusBadRequest,
		},
		{
			name: "lookup failure",
			customer: func(*http.Request) (multipass.Customer, error) {
				return multipass.Customer{}, errors.New("session store down")
			},
			target: "/login",
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			log := logger.New(
				logger.WithOutput(&logs),
				logger.WithJSONFormatter(),
				logger.WithLevel(slog.LevelDebug),
				logger.WithContextExtractors(requestid.LoggerExtractor()),
			)
			h := loginhandler.New(newCodec(t, multipass.WithValidation()), tt.customer, loginhandler.WithLogger(log))

			rec := httptest.NewRecorder()
			loginhandler.Router(h, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Header().Get("Location"))
			assert.Contains(t, logs.String(), "multipass redirect failed")
			assert.Contains(t, logs.String(), `"request_id":"`)
		})
	}
}

func TestQueryCustomer(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/login?identifier=c1&email=jane%40example.com&first_name=Jane&last_name=&tag_string=vip&return_to=%2Fcart", nil)
	c, err := loginhandler.QueryCustomer(req)
	require.NoError(t, err)

	got, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"email":"jane@example.com","first_name":"Jane","tag_string":"vip","identifier":"c1"}`, string(got))
}

func TestNew_PanicsOnNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { loginhandler.New(nil, loginhandler.QueryCustomer) })
	assert.Panics(t, func() { loginhandler.New(newCodec(t), nil) })
}
