package template

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
)

// The helpers below return a template function and the name templates call it by,
// ready for Parser.AddFn.

// CurrentUser makes u available as "currentUser".
func CurrentUser(u any) (string, func() any) { return constant("currentUser", u) }

// Env makes e available as "env".
func Env(e switchback.Environment) (string, func() string) { return constant("env", e.String()) }

// Nonce makes a fresh UUID available as "nonce" on every call.
func Nonce() (string, func() string) { return "nonce", uuid.NewString }

// RootUrl makes u available as "rootUrl". A nil u renders as "".
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return constant("rootUrl", "")
	}

	return constant("rootUrl", u.String())
}

func constant[T any](name string, v T) (string, func() T) {
	return name, func() T { return v }
}
