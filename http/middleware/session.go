package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
)

// InjectSession loads the request's session from store and places it under switchback.SessionKey.
// A session that fails to decode is replaced by a fresh one.
//
// A nil store makes InjectSession a NoopAdapter.
func InjectSession(store session.Store) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := store.Load(r)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), switchback.SessionKey, sess)))
		})
	}
}
