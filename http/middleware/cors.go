package middleware

import (
	"net/http"
	"net/url"

	"github.com/gorilla/handlers"
)

// CORS admits cross-origin requests from the origin of base,
// which may be a full URL such as the app's base URL.
// Preflights are answered by gorilla/handlers without reaching the route.
//
// An empty or unparsable base makes CORS a NoopAdapter.
func CORS(base string) Adapter {
	u, err := url.Parse(base)
	if base == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedOrigins([]string{u.Scheme + "://" + u.Host}),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", IdempotencyHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
		handlers.AllowCredentials(),
		handlers.MaxAge(600),
	)
}
