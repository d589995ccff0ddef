package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/xy-planning-network/switchback"
)

// A Parser fills structs from request payloads and checks them against their "validate" tags.
//
// Errors wrap switchback.ErrBadAny when the target is not a pointer to a struct,
// switchback.ErrBadFormat when the payload cannot be decoded,
// and switchback.ErrNotValid, through ValidationErrors, when a rule fails.
type Parser struct {
	form  formDecoder
	rules validator
}

func NewParser() *Parser {
	return &Parser{form: newFormDecoder(), rules: newValidator()}
}

// ParseBody decodes the JSON in body into structPtr and validates it.
// body is consumed.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var misuse *json.InvalidUnmarshalError
	switch err := json.NewDecoder(body).Decode(structPtr); {
	case errors.As(err, &misuse):
		return fmt.Errorf("%w: %s", switchback.ErrBadAny, err)
	case err != nil:
		return fmt.Errorf("%w: request body: %s", switchback.ErrBadFormat, err)
	}

	return p.Validate(structPtr)
}

// ParseQueryParams decodes params, from a query string or form body, into structPtr and validates it.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.form.decode(structPtr, params); err != nil {
		return fmt.Errorf("request params: %w", err)
	}

	return p.Validate(structPtr)
}

// Validate checks structPtr against its "validate" tags.
func (p *Parser) Validate(structPtr any) error {
	if err := p.rules.validate(structPtr); err != nil {
		return fmt.Errorf("%T: %w", structPtr, err)
	}

	return nil
}
