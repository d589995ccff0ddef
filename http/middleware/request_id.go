package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
)

// RequestIDHeader echoes the request ID back to clients.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under switchback.RequestIDKey.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), switchback.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
