package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/middleware"
)

func TestCORSNoop(t *testing.T) {
	for _, base := range []string{"", "/relative", "::"} {
		t.Run(base, func(t *testing.T) {
			// Act
			actual := middleware.CORS(base)

			// Assert
			require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
		})
	}
}

func TestCORS(t *testing.T) {
	tcs := []struct {
		name     string
		method   string
		origin   string
		code     int
		expected string
	}{
		{"Same-Origin", http.MethodGet, "https://example.com", http.StatusTeapot, "https://example.com"},
		{"Foreign-Origin", http.MethodGet, "https://elsewhere.com", http.StatusTeapot, ""},
		{"Preflight", http.MethodOptions, "https://example.com", http.StatusOK, "https://example.com"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "https://example.com/hikes", nil)
			r.Header.Set("Origin", tc.origin)
			if tc.method == http.MethodOptions {
				r.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}

			// Act
			middleware.CORS("https://example.com/")(teapotHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.expected, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
