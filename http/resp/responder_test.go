package resp_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/session"
	tt "github.com/xy-planning-network/switchback/http/template/templatetest"
	"github.com/xy-planning-network/switchback/logger"
)

const jsonMediaType = "application/json; charset=UTF-8"

func quietLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(new(bytes.Buffer), "", 0)))
}

func newTestResponder(files ...tt.FileMocker) *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(quietLogger()),
		resp.WithParser(tt.NewParser(files...)),
		resp.WithRootUrl("https://example.com/root"),
	)
}

func withSession(t *testing.T, r *http.Request) *http.Request {
	t.Helper()

	s, err := session.NewStub(false).Load(r)
	require.Nil(t, err)

	return r.Clone(context.WithValue(r.Context(), switchback.SessionKey, s))
}

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		r = r.Clone(ctx)

		w := httptest.NewRecorder()
		w.WriteHeader(http.StatusPaymentRequired)

		cancel()

		d := resp.NewResponder(resp.WithLogger(quietLogger()))

		// Act
		err := d.Json(w, r, resp.Code(http.StatusTeapot))

		// Assert
		require.ErrorIs(t, err, resp.ErrDone)
		require.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("Param", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		w := httptest.NewRecorder()
		d := resp.NewResponder(resp.WithLogger(quietLogger()))

		// Act
		err := d.Redirect(w, r, resp.Url("/login"), resp.Param("next", "/home"))

		// Assert
		require.Nil(t, err)
		require.Equal(t, "/login?next=%2Fhome", w.Header().Get("Location"))
	})
}

func TestResponderCurrentUser(t *testing.T) {
	tcs := []struct {
		name        string
		ctx         context.Context
		expectedVal any
		expectedErr error
	}{
		{"Not-Set", context.Background(), nil, resp.ErrNotFound},
		{"Set-With-Nil", context.WithValue(context.Background(), switchback.CurrentUserKey, nil), nil, resp.ErrNotFound},
		{"Set-With-Val", context.WithValue(context.Background(), switchback.CurrentUserKey, struct{}{}), struct{}{}, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := resp.NewResponder(resp.WithLogger(quietLogger()))
			actual, err := d.CurrentUser(tc.ctx)
			require.ErrorIs(t, err, tc.expectedErr)
			require.Equal(t, tc.expectedVal, actual)
		})
	}
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		opts     []resp.Fn
		code     int
		contains string
	}{
		{"Nil", nil, nil, http.StatusInternalServerError, "Internal Server Error"},
		{"Plain", errors.New("secret detail"), nil, http.StatusInternalServerError, "Internal Server Error"},
		{"Status", resp.NewStatusError(http.StatusNotFound, errors.New("no widget")), nil, http.StatusNotFound, "no widget"},
		{"Code-Fn", errors.New("bad"), []resp.Fn{resp.Code(http.StatusConflict)}, http.StatusConflict, "bad"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			newTestResponder().Err(w, r, tc.err, tc.opts...)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Body.String(), tc.contains)
			require.NotContains(t, w.Body.String(), "secret detail")
		})
	}
}

func TestResponderHtml(t *testing.T) {
	files := []tt.FileMocker{
		tt.NewMockFile("about.tmpl", []byte(`<p>{{ .Data.name }}</p>`)),
		tt.NewMockFile("flashes.tmpl", []byte(`{{ range .Flashes }}<p>{{ .Msg }}</p>{{ end }}`)),
		tt.NewMockFile("user.tmpl", []byte(`<p>{{ .CurrentUser }}</p>`)),
		tt.NewMockFile("broken.tmpl", []byte(`{{ .Data.nope.deeper }}`)),
	}

	t.Run("View", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		err := newTestResponder(files...).Html(w, r, resp.View("about"), resp.Data(map[string]any{"name": "switchback"}))

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "<p>switchback</p>", w.Body.String())
		require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	})

	t.Run("Tmpls", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		err := newTestResponder(files...).Html(w, r, resp.Tmpls("about.tmpl"), resp.Data(map[string]any{"name": "tracks"}), resp.Code(http.StatusAccepted))

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Equal(t, "<p>tracks</p>", w.Body.String())
	})

	t.Run("Flashes", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := withSession(t, httptest.NewRequest(http.MethodGet, "https://example.com", nil))

		// Act
		err := newTestResponder(files...).Html(w, r, resp.View("flashes"), resp.Success("saved"))

		// Assert
		require.Nil(t, err)
		require.Equal(t, "<p>saved</p>", w.Body.String())
	})

	t.Run("Current-User", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r = r.Clone(context.WithValue(r.Context(), switchback.CurrentUserKey, "casey"))

		// Act
		err := newTestResponder(files...).Html(w, r, resp.View("user"))

		// Assert
		require.Nil(t, err)
		require.Equal(t, "<p>casey</p>", w.Body.String())
	})

	for _, tc := range []struct {
		name string
		d    *resp.Responder
		opts []resp.Fn
	}{
		{"No-Templates", newTestResponder(files...), nil},
		{"Missing-View", newTestResponder(files...), []resp.Fn{resp.View("nope")}},
		{"Execute-Fails", newTestResponder(files...), []resp.Fn{resp.View("broken"), resp.Data(map[string]any{"nope": 1})}},
		{"No-Parser", resp.NewResponder(resp.WithLogger(quietLogger())), []resp.Fn{resp.View("about")}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			err := tc.d.Html(w, r, tc.opts...)

			// Assert
			require.NotNil(t, err)
			require.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []resp.Fn
		code     int
		expected string
	}{
		{"Nil", nil, http.StatusOK, "null\n"},
		{"String", []resp.Fn{resp.Data("about")}, http.StatusOK, "\"about\"\n"},
		{"Map", []resp.Fn{resp.Data(map[string]int{"a": 1})}, http.StatusOK, "{\"a\":1}\n"},
		{"Code", []resp.Fn{resp.Data(true), resp.Code(http.StatusCreated)}, http.StatusCreated, "true\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			err := newTestResponder().Json(w, r, tc.opts...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))
			require.Equal(t, tc.expected, w.Body.String())
		})
	}

	t.Run("Unencodable", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		err := newTestResponder().Json(w, r, resp.Data(make(chan int)))

		// Assert
		require.ErrorIs(t, err, resp.ErrInvalid)
		require.Zero(t, w.Body.Len())
	})
}

func TestResponderRaw(t *testing.T) {
	tcs := []struct {
		name        string
		opts        []resp.Fn
		contentType string
		expected    string
	}{
		{"Nil", nil, "", ""},
		{"Bytes", []resp.Fn{resp.Data([]byte("raw"))}, "application/octet-stream", "raw"},
		{"Reader", []resp.Fn{resp.Data(strings.NewReader("streamed")), resp.ContentType("text/plain")}, "text/plain", "streamed"},
		{"Other", []resp.Fn{resp.Data(map[string]int{"n": 1})}, jsonMediaType, "{\"n\":1}\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			err := newTestResponder().Raw(w, r, tc.opts...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			require.Equal(t, tc.expected, w.Body.String())
		})
	}
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []resp.Fn
		code     int
		location string
	}{
		{"To-Root", nil, http.StatusFound, "https://example.com/root"},
		{"Url", []resp.Fn{resp.Url("/login")}, http.StatusFound, "/login"},
		{"Relative-Url", []resp.Fn{resp.Url("login")}, http.StatusFound, "/login"},
		{"Param-After-Url", []resp.Fn{resp.Url("/login"), resp.Param("next", "/home")}, http.StatusFound, "/login?next=%2Fhome"},
		{"Keep-3xx", []resp.Fn{resp.Url("/login"), resp.Code(http.StatusMovedPermanently)}, http.StatusMovedPermanently, "/login"},
		{"4xx-To-303", []resp.Fn{resp.Code(http.StatusBadRequest)}, http.StatusSeeOther, "https://example.com/root"},
		{"5xx-To-307", []resp.Fn{resp.Code(http.StatusBadGateway)}, http.StatusTemporaryRedirect, "https://example.com/root"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			err := newTestResponder().Redirect(w, r, tc.opts...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}

	t.Run("Bad-Url", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		err := newTestResponder().Redirect(w, r, resp.Url("%zz"))

		// Assert
		require.ErrorIs(t, err, resp.ErrInvalid)
	})
}
