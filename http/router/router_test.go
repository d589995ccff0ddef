package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/router"
)

func writeBody(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestRouterWithAssets(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{"app.css": {Data: []byte("body{}")}}
	rt := router.New(switchback.Testing, nil, router.WithAssets("/assets/", fsys))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/assets/app.css", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "body{}", w.Body.String())
	require.Equal(t, "max-age=2592000", w.Header().Get("Cache-Control"))
}

func TestRouterOnEveryRequest(t *testing.T) {
	// Arrange
	rt := router.New(switchback.Testing, nil)
	rt.OnEveryRequest(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Every", "yes")
			h.ServeHTTP(w, r)
		})
	})

	rt.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: writeBody("home")})

	sub := rt.Subrouter("/api")
	sub.Handle(router.Route{Path: "/users", Method: http.MethodGet, Handler: writeBody("users")})

	for _, tc := range []struct {
		target   string
		expected string
	}{
		{"/", "home"},
		{"/api/users", "users"},
	} {
		t.Run(tc.target, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com"+tc.target, nil)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Body.String())
			require.Equal(t, "yes", w.Header().Get("X-Every"))
		})
	}
}

func TestRouterAuthedRoutes(t *testing.T) {
	// Arrange
	rt := router.New(switchback.Testing, nil)
	rt.AuthedRoutes("/login", []router.Route{{Path: "/private", Method: http.MethodGet, Handler: writeBody("private")}})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.Header.Set("Accept", "text/html")

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Equal(t, "/login?next=%2Fprivate", w.Header().Get("Location"))

	// Arrange
	w = httptest.NewRecorder()
	r = r.WithContext(context.WithValue(r.Context(), switchback.CurrentUserKey, "user"))

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "private", w.Body.String())
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	rt := router.New(switchback.Testing, nil)
	rt.HandleNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/nowhere", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestRouterCatchAll(t *testing.T) {
	// Arrange
	rt := router.New(switchback.Testing, nil)
	rt.CatchAll(writeBody("maintenance"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "https://example.com/anything/at/all", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, "maintenance", w.Body.String())
}
