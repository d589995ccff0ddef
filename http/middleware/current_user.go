package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
)

// A User is whatever an app keeps for a logged in visitor.
type User interface {
	HasAccess() bool
	HomePath() string
}

// UserStorer looks up the User a session points at.
type UserStorer func(id uint) (User, error)

// CurrentUser resolves the session's user ID through storer and places the User
// under switchback.CurrentUserKey.
//
// Anonymous sessions pass through; RequireAuthed decides whether they may continue.
// A missing session, an unknown ID or a User without access is rejected:
// JSON clients get a status code and everyone else is sent to loginURL.
// Rejected sessions are expired, or for a User without access, logged out.
//
// A nil storer makes CurrentUser a NoopAdapter.
func CurrentUser(storer UserStorer, loginURL string) Adapter {
	if storer == nil {
		return NoopAdapter
	}

	reject := func(w http.ResponseWriter, r *http.Request, code int) {
		if loginURL == "" || acceptsJson(r.Header) {
			w.WriteHeader(code)
			return
		}

		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := session.FromContext(r.Context())
			if err != nil {
				reject(w, r, http.StatusUnauthorized)
				return
			}

			id, err := sess.UserID()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			u, err := storer(id)
			switch {
			case err != nil:
				err = sess.Expire(w, r)
			case !u.HasAccess():
				sess.PopFlashes(w, r)
				err = sess.Logout(w, r)
			default:
				if err = sess.Touch(w, r); err == nil {
					w.Header().Add("Cache-control", "no-store")
					w.Header().Add("Pragma", "no-cache")
					next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), switchback.CurrentUserKey, u)))
					return
				}

				_ = sess.Expire(w, r)
				reject(w, r, http.StatusInternalServerError)
				return
			}

			if err != nil {
				reject(w, r, http.StatusInternalServerError)
				return
			}

			reject(w, r, http.StatusUnauthorized)
		})
	}
}

// RequireUnauthed keeps logged in visitors off pages like sign in.
// JSON clients get 400; everyone else is redirected to their HomePath.
func RequireUnauthed() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := r.Context().Value(switchback.CurrentUserKey).(User)
			switch {
			case !ok:
				next.ServeHTTP(w, r)
			case acceptsJson(r.Header):
				w.WriteHeader(http.StatusBadRequest)
			default:
				http.Redirect(w, r, u.HomePath(), http.StatusTemporaryRedirect)
			}
		})
	}
}

// RequireAuthed lets a request through only when something sits under switchback.CurrentUserKey.
//
// HTML clients are redirected to loginURL, with a "next" param carrying the
// requested URL on GETs. Everyone else, or everyone when loginURL is empty, gets 401.
func RequireAuthed(loginURL string) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Value(switchback.CurrentUserKey) != nil {
				next.ServeHTTP(w, r)
				return
			}

			if loginURL == "" || !acceptsTextHtml(r.Header) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			dest := loginURL
			if r.Method == http.MethodGet && r.URL.Path != loginURL {
				dest += "?" + url.Values{"next": {r.URL.String()}}.Encode()
			}

			http.Redirect(w, r, dest, http.StatusTemporaryRedirect)
		})
	}
}
