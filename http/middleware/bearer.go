package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
)

// A TokenAuthenticator verifies the token a request carries.
type TokenAuthenticator interface {
	Authenticate(r *http.Request) (*auth.Claims, error)
}

// RequireBearer returns an Adapter requiring a valid token on the request.
// Verified claims are stored under switchback.TokenClaimsKey.
// Requests without a valid token get 401 and never reach the next handler.
//
// If ta is nil, RequireBearer rejects every request.
func RequireBearer(ta TokenAuthenticator) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ta == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			c, err := ta.Authenticate(r)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="switchback"`)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), switchback.TokenClaimsKey, c)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
