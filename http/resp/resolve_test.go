package resp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/resp"
	tt "github.com/xy-planning-network/switchback/http/template/templatetest"
	"github.com/xy-planning-network/switchback/registry"
)

func TestResponderResolve(t *testing.T) {
	files := []tt.FileMocker{
		tt.NewMockFile("about.tmpl", []byte(`<p>about{{ range $k, $v := .Data }} {{ $k }}={{ $v }}{{ end }}</p>`)),
		tt.NewMockFile("team.tmpl", []byte(`<p>{{ .Data.name }}</p>`)),
	}

	tcs := []struct {
		name        string
		result      any
		kind        registry.ResponseKind
		code        int
		contentType string
		body        string
		location    string
	}{
		{"json-string-is-not-a-view", "about", registry.JSON, http.StatusOK, jsonMediaType, "\"about\"\n", ""},
		{"json-redirect-is-not-a-redirect", ":/login", registry.JSON, http.StatusOK, jsonMediaType, "\":/login\"\n", ""},
		{"json-struct", struct{ ID int }{7}, registry.JSON, http.StatusOK, jsonMediaType, "{\"ID\":7}\n", ""},
		{"json-nil-falls-through-to-raw", nil, registry.JSON, http.StatusOK, "", "", ""},
		{"redirect", ":/login", registry.Infer, http.StatusFound, "", "", "/login"},
		{"redirect-relative", ":login", registry.Infer, http.StatusFound, "", "", "/trails/login"},
		{"redirect-parent", ":../about", registry.Infer, http.StatusFound, "", "", "/about"},
		{"redirect-empty", ":", registry.Infer, http.StatusFound, "", "", "/trails/"},
		{"view-name", "about", registry.Infer, http.StatusOK, "text/html; charset=utf-8", "<p>about</p>", ""},
		{
			"model-and-view",
			resp.NewModelAndView("team").AddAttribute("name", "switchback"),
			registry.Infer,
			http.StatusOK,
			"text/html; charset=utf-8",
			"<p>switchback</p>",
			"",
		},
		{
			"json-wins-over-model-and-view",
			resp.NewModelAndView("team").AddAttribute("name", "json"),
			registry.JSON,
			http.StatusOK,
			jsonMediaType,
			"{}\n",
			"",
		},
		{
			"model-and-view-value",
			*resp.NewModelAndView("team").AddAttribute("name", "by value"),
			registry.Infer,
			http.StatusOK,
			"text/html; charset=utf-8",
			"<p>by value</p>",
			"",
		},
		{"nil-model-and-view", (*resp.ModelAndView)(nil), registry.Infer, http.StatusOK, "", "", ""},
		{"nil-model-and-view-json", (*resp.ModelAndView)(nil), registry.JSON, http.StatusOK, "", "", ""},
		{"nil-result", (*resp.Result)(nil), registry.Infer, http.StatusOK, "", "", ""},
		{"void", nil, registry.Infer, http.StatusOK, "", "", ""},
		{"bytes", []byte("payload"), registry.Infer, http.StatusOK, "application/octet-stream", "payload", ""},
		{"other", 42, registry.Infer, http.StatusOK, jsonMediaType, "42\n", ""},
		{"result-json", resp.AsJSON("about").WithCode(http.StatusCreated), registry.Infer, http.StatusCreated, jsonMediaType, "\"about\"\n", ""},
		{"result-view", resp.AsView("team", map[string]any{"name": "explicit"}), registry.JSON, http.StatusOK, "text/html; charset=utf-8", "<p>explicit</p>", ""},
		{"result-view-nil-model", resp.AsView("about", nil), registry.Infer, http.StatusOK, "text/html; charset=utf-8", "<p>about</p>", ""},
		{"result-redirect", resp.AsRedirect("/elsewhere"), registry.JSON, http.StatusFound, "", "", "/elsewhere"},
		{"result-raw", resp.AsRaw([]byte("csv,data"), "text/csv"), registry.JSON, http.StatusOK, "text/csv", "csv,data", ""},
		{"result-pointer", &resp.Result{Kind: resp.JSONResult, Payload: 1}, registry.Infer, http.StatusOK, jsonMediaType, "1\n", ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com/trails/7", nil)

			// Act
			err := newTestResponder(files...).Resolve(w, r, tc.result, tc.kind)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))

			if tc.location == "" {
				require.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
				require.Equal(t, tc.body, w.Body.String())
			}
		})
	}

	t.Run("bad-result-kind", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		err := newTestResponder().Resolve(w, r, resp.Result{Kind: resp.ResultKind(99)}, registry.Infer)

		// Assert
		require.ErrorIs(t, err, resp.ErrInvalid)
	})
}

func TestModelAndView(t *testing.T) {
	// Arrange
	mv := resp.NewModelAndView("about")

	// Act
	attrs := mv.AddAttribute("a", 1).AddAttribute("b", "two").Attributes()
	attrs["c"] = "mutated"

	// Assert
	require.Equal(t, "about", mv.TemplateName())
	require.Equal(t, map[string]any{"a": 1, "b": "two"}, mv.Attributes())

	// Arrange
	var zero resp.ModelAndView

	// Act
	zero.AddAttribute("x", true)

	// Assert
	require.Equal(t, map[string]any{"x": true}, zero.Attributes())
}
