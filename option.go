package pvclient

import "net/http"

// Option represents a configurable parameter for the Application.
type Option func(*Application)

// WithDebug enables debug mode for the application.
//
// When debug mode is enabled, the global log level is lowered to debug and
// every request and cache replacement is logged.
//
// Returns:
//   - Option: A function that enables debug mode for the Application.
func WithDebug() Option {
	return func(a *Application) {
		a.isDebug = true
	}
}

// WithHTTPClient sets the HTTP client used by the API.
//
// The client is copied; its transport is wrapped and a cookie jar is attached when it has none.
//
// Args:
//   - client: The HTTP client to use.
//
// Returns:
//   - Option: A function that sets the HTTP client for the Application.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Application) {
		a.httpClient = client
	}
}

// WithHandler registers a store event handler before the loaders start,
// so no replacement can be missed.
//
// Args:
//   - handler: The handler to register.
//
// Returns:
//   - Option: A function that registers the handler for the Application.
func WithHandler(handler Handler) Option {
	return func(a *Application) {
		a.handlers = append(a.handlers, handler)
	}
}
