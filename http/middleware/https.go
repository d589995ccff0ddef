package middleware

import (
	"net/http"

	"github.com/xy-planning-network/switchback"
)

// ForceHTTPS sends plain HTTP requests to the same URL over HTTPS
// in environments using secure cookies.
// TLS is assumed to end at a proxy, which reports the original scheme in X-Forwarded-Proto.
func ForceHTTPS(env switchback.Environment) Adapter {
	if !env.SecureCookies() {
		return NoopAdapter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" {
				next.ServeHTTP(w, r)
				return
			}

			target := *r.URL
			target.Scheme, target.Host = "https", r.Host
			http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
		})
	}
}
