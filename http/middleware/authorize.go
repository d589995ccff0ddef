package middleware

import (
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
)

// An AuthorizeApplicator builds Adapters checking the current user, of type T,
// against rules the app defines.
type AuthorizeApplicator[T any] struct {
	fallbackURL string
}

// NewAuthorizeApplicator returns an AuthorizeApplicator denying to fallbackURL
// when a rule gives no URL of its own.
func NewAuthorizeApplicator[T any](fallbackURL string) AuthorizeApplicator[T] {
	return AuthorizeApplicator[T]{fallbackURL}
}

// Apply lets a request through when rule accepts the user stored under switchback.CurrentUserKey.
// It must run after authentication has put the user there.
//
// rule returns true when the user may continue, or false and where to send them.
// A denied request accepting HTML gets a warning flash and a redirect.
// Any other denied request gets 401.
// A nil rule allows everyone.
func (aa AuthorizeApplicator[T]) Apply(rule func(user T) (string, bool)) Adapter {
	if rule == nil {
		return NoopAdapter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, found := r.Context().Value(switchback.CurrentUserKey).(T)
			if !found {
				aa.deny(w, r, "")
				return
			}

			if elsewhere, allowed := rule(user); !allowed {
				aa.deny(w, r, elsewhere)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (aa AuthorizeApplicator[T]) deny(w http.ResponseWriter, r *http.Request, to string) {
	if to == "" {
		to = aa.fallbackURL
	}

	if to == "" || !acceptsTextHtml(r.Header) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if s, err := session.FromContext(r.Context()); err == nil {
		f := session.Flash{Class: session.FlashWarning, Msg: session.MsgDenied}
		_ = s.AddFlash(w, r, f)
	}

	http.Redirect(w, r, to, http.StatusSeeOther)
}
