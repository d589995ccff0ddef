package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// A ValidationError reports one field that broke one rule.
type ValidationError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Type  string `json:"type,omitempty"`
	Got   any    `json:"got"`
}

func (ve ValidationError) String() string {
	s := fmt.Sprintf("%s: %#v fails %s", ve.Field, ve.Got, ve.Rule)
	if ve.Type != "" {
		s += " (" + ve.Type + ")"
	}

	return s
}

// ValidationErrors collects every broken rule on a model.
// It unwraps to switchback.ErrNotValid.
type ValidationErrors []ValidationError

func (ves ValidationErrors) Error() string {
	lines := make([]string, len(ves))
	for i, ve := range ves {
		lines[i] = ve.String()
	}

	return strings.Join(lines, "; ")
}

func (ValidationErrors) Unwrap() error { return switchback.ErrNotValid }

// MarshalJSON nests the list under "errors" so clients can tell it from a model.
func (ves ValidationErrors) MarshalJSON() ([]byte, error) {
	list := []ValidationError(ves)
	if list == nil {
		list = []ValidationError{}
	}

	return json.Marshal(map[string][]ValidationError{"errors": list})
}
