package template_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/template"
	tt "github.com/xy-planning-network/switchback/http/template/templatetest"
)

func TestAssetURI(t *testing.T) {
	// Arrange
	assets := tt.NewMockFS(tt.NewMockFile("css/site.css", []byte("body{}")))

	tcs := []struct {
		name     string
		env      switchback.Environment
		prefix   string
		asset    string
		expected string
	}{
		{"Versioned", switchback.Production, "/assets/", "css/site.css", "/assets/css/site.css?v=7c98040a"},
		{"Prefix-Without-Slashes", switchback.Production, "assets", "css/site.css", "/assets/css/site.css?v=7c98040a"},
		{"Leading-Slash", switchback.Testing, "/assets/", "/css/site.css", "/assets/css/site.css?v=7c98040a"},
		{"Development", switchback.Development, "/assets/", "css/site.css", "/assets/css/site.css"},
		{"Missing", switchback.Production, "/assets/", "js/app.js", "/assets/js/app.js"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			name, fn := template.AssetURI(tc.env, tc.prefix, assets)

			// Act
			actual := fn(tc.asset)

			// Assert
			require.Equal(t, "assetURI", name)
			require.Equal(t, tc.expected, actual)
		})
	}
}
