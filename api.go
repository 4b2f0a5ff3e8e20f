package pvclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

// API is the client for the REST endpoints under [API_BASE_PATH].
//
// Every request carries the JSON content type and the cookies stored in the client's jar,
// which is seeded with the session cookie obtained from the external login.
type API struct {
	BaseURL string         // BaseURL is the origin of the backend, e.g. "https://pv.example.org".
	base    *url.URL       // base is the parsed BaseURL.
	client  *http.Client   // client is a client shared among requests.
	jar     http.CookieJar // jar holds the session cookie.
}

// Transport is a custom RoundTripper implementation.
type Transport struct {
	Transport http.RoundTripper // Transport is the underlying RoundTripper.
	Headers   map[string]string // Headers contains custom headers to be added to the requests.
}

// RoundTrip executes a single HTTP request and returns its response.
// It adds custom headers to the request before performing the request using the underlying Transport.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	for key, value := range t.Headers {
		req.Header.Set(key, value)
	}

	return t.Transport.RoundTrip(req)
}

// NewAPI creates an API for the backend at baseURL.
//
// When client is nil a new [http.Client] is created. A provided client is copied, its transport is wrapped to add
// the JSON content type and a cookie jar is attached if it has none. No timeout is set on new clients.
//
// Args:
//   - baseURL: The origin of the backend.
//   - session: The session cookie value, empty for an anonymous session.
//   - client: An optional HTTP client.
//
// Returns:
//   - *API: The API.
//   - error: An error if baseURL is not an absolute URL or the cookie jar cannot be created.
func NewAPI(baseURL, session string, client *http.Client) (api *API, err error) {
	api = &API{BaseURL: strings.TrimRight(baseURL, "/")}

	if api.base, err = url.Parse(api.BaseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !api.base.IsAbs() || api.base.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}

	var c http.Client
	if client != nil {
		c = *client
	}

	underlying := c.Transport
	if underlying == nil {
		underlying = http.DefaultTransport
	}
	c.Transport = &Transport{
		Transport: underlying,
		Headers: map[string]string{
			"Content-Type": CONTENT_TYPE_JSON,
		},
	}

	if c.Jar == nil {
		if c.Jar, err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}); err != nil {
			return nil, err
		}
	}

	api.client = &c
	api.jar = c.Jar
	api.SetSession(session)

	return api, nil
}

// SetSession stores the session cookie for the backend. An empty value is ignored.
func (api *API) SetSession(session string) {
	if session == "" {
		return
	}

	api.jar.SetCookies(api.base, []*http.Cookie{{
		Name:  SESSION_COOKIE,
		Value: session,
		Path:  "/",
	}})
}

// GetCookie retrieves the value of a cookie the jar would send to the backend.
func (api *API) GetCookie(name string) (value string, ok bool) {
	if api == nil || api.jar == nil {
		return
	}

	for _, cookie := range api.jar.Cookies(api.base) {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}
	return
}

// URL returns the absolute URL for an endpoint and an optional query.
func (api *API) URL(endpoint string, query Query) string {
	target := api.BaseURL + API_BASE_PATH + strings.TrimLeft(endpoint, "/")
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

// Response is an HTTP response whose body decodes into T.
//
// The caller checks [Response.OK] or [Response.Code] before trusting the body; non-2xx responses are returned
// as they are, without an error.
type Response[T any] struct {
	*http.Response

	once    sync.Once
	raw     []byte
	readErr error
}

// Code returns the status of the response.
func (r *Response[T]) Code() HTTPStatus {
	return HTTPStatus(r.StatusCode)
}

// OK reports whether the status is in the 2xx range.
func (r *Response[T]) OK() bool {
	return r.Code().IsSuccess()
}

// Bytes reads and closes the body. The body is read only once; later calls return the same bytes.
func (r *Response[T]) Bytes() ([]byte, error) {
	r.once.Do(func() {
		defer r.Body.Close()
		r.raw, r.readErr = io.ReadAll(r.Body)
	})
	return r.raw, r.readErr
}

// Text returns the body as a string with surrounding whitespace removed.
func (r *Response[T]) Text() (string, error) {
	raw, err := r.Bytes()
	return strings.TrimSpace(string(raw)), err
}

// JSON decodes the body into T.
// An empty body yields [ErrNoContent]; a malformed body yields the decoder's error.
func (r *Response[T]) JSON() (value T, err error) {
	var raw []byte
	if raw, err = r.Bytes(); err != nil {
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		err = ErrNoContent
		return
	}
	err = json.Unmarshal(raw, &value)
	return
}

// Close discards the body. Calling it after [Response.Bytes] is harmless.
func (r *Response[T]) Close() {
	_, _ = r.Bytes()
}

// Get performs a GET request. No body is sent.
func Get[T any](ctx context.Context, api *API, endpoint string, query Query) (*Response[T], error) {
	return do[T](ctx, api, http.MethodGet, endpoint, query, nil)
}

// Post performs a POST request with an optional JSON body (nil sends none).
func Post[T any](ctx context.Context, api *API, endpoint string, query Query, body any) (*Response[T], error) {
	return do[T](ctx, api, http.MethodPost, endpoint, query, body)
}

// Patch performs a PATCH request with an optional JSON body (nil sends none).
func Patch[T any](ctx context.Context, api *API, endpoint string, query Query, body any) (*Response[T], error) {
	return do[T](ctx, api, http.MethodPatch, endpoint, query, body)
}

// Delete performs a DELETE request with an optional JSON body (nil sends none).
func Delete[T any](ctx context.Context, api *API, endpoint string, query Query, body any) (*Response[T], error) {
	return do[T](ctx, api, http.MethodDelete, endpoint, query, body)
}

// do builds and sends a request. Transport errors are returned unchanged.
func do[T any](ctx context.Context, api *API, method, endpoint string, query Query, body any) (*Response[T], error) {
	if api == nil || api.client == nil {
		return nil, ErrNotInitialized
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	target := api.URL(endpoint, query)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("Name", "API").Str("Method", method).Str("URL", target).Msg("Request")

	res, err := api.client.Do(req)
	if err != nil {
		log.Debug().Str("Name", "API").Str("Method", method).Str("URL", target).Err(err).Msg("Request failed")
		return nil, err
	}

	log.Debug().Str("Name", "API").Str("Method", method).Str("URL", target).Int("Status", res.StatusCode).Msg("Response")

	return &Response[T]{Response: res}, nil
}

// StatusError is returned by the endpoint wrappers and loaders when the API answers with a non-2xx status.
type StatusError struct {
	Method   string     // Method is the HTTP method of the request.
	Endpoint string     // Endpoint is the endpoint relative to [API_BASE_PATH].
	Status   HTTPStatus // Status is the status of the response.
	Message  string     // Message is the text body of the response, if any.
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Endpoint, int(e.Status), e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, int(e.Status), e.Status)
}

// Unwrap returns [ErrRequestFailed].
func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// newStatusError builds a [StatusError] from a response, consuming its body.
func newStatusError[T any](res *Response[T], method, endpoint string) *StatusError {
	message, _ := res.Text()
	return &StatusError{
		Method:   method,
		Endpoint: endpoint,
		Status:   res.Code(),
		Message:  message,
	}
}
