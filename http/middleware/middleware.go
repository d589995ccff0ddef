package middleware

import (
	"net/http"
	"strings"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	// NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		if adapters[i] == nil {
			continue
		}

		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter is a pass-through Adapter.
// Constructors return it when missing the values needed to do their job.
func NoopAdapter(h http.Handler) http.Handler { return h }

// acceptsTextHtml asserts whether the request accepts rendered HTML or not.
func acceptsTextHtml(header http.Header) bool {
	for _, v := range header.Values("Accept") {
		if strings.Contains(v, "text/html") {
			return true
		}
	}

	return false
}

// acceptsJson asserts whether the request explicitly accepts JSON.
func acceptsJson(header http.Header) bool {
	for _, v := range header.Values("Accept") {
		if strings.Contains(v, "application/json") {
			return true
		}
	}

	return false
}
