package req_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"Empty", nil, ""},
		{
			"Many",
			req.ValidationErrors{
				{Field: "trail", Rule: "required", Type: "string", Got: ""},
				{Field: "miles", Rule: "gt=0", Got: -1},
			},
			`trail: "" fails required (string); miles: -1 fails gt=0`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := tc.errs.Error()

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"Empty", nil, `{"errors":[]}`},
		{
			"One",
			req.ValidationErrors{{Field: "trail", Rule: "required", Type: "string", Got: ""}},
			`{"errors":[{"field":"trail","rule":"required","type":"string","got":""}]}`,
		},
		{
			"No-Type",
			req.ValidationErrors{{Field: "sort", Rule: "unknown"}},
			`{"errors":[{"field":"sort","rule":"unknown","got":null}]}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := json.Marshal(tc.errs)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, string(actual))
		})
	}
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, req.ValidationErrors{}, switchback.ErrNotValid)
}
