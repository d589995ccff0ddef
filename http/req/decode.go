package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/switchback"
)

// formDecoder fills structs from url.Values, as found in query strings and form bodies.
type formDecoder struct {
	dec *schema.Decoder
}

func newFormDecoder() formDecoder {
	d := formDecoder{schema.NewDecoder()}
	d.dec.IgnoreUnknownKeys(true)
	return d
}

// decode copies src into structPtr, translating the schema package's errors.
func (d formDecoder) decode(structPtr any, src url.Values) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: decode called with %T, not a pointer to a struct", switchback.ErrBadAny, structPtr)
	}

	if err := d.dec.Decode(structPtr, src); err != nil {
		return fromSchema(err)
	}

	return nil
}

// fromSchema sorts the schema package's errors into ErrBadFormat for input that is not a form,
// ValidationErrors for values that do not fit their field,
// and ErrNotImplemented for struct fields schema cannot fill.
func fromSchema(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", switchback.ErrBadFormat, err)
	}

	var invalid ValidationErrors
	for _, fieldErr := range multi {
		switch e := fieldErr.(type) {
		case schema.ConversionError:
			ve := ValidationError{Field: e.Key, Rule: "convert", Type: e.Type.String()}
			if e.Index >= 0 {
				ve.Got = fmt.Sprintf("item %d", e.Index)
			}
			invalid = append(invalid, ve)

		case schema.UnknownKeyError:
			invalid = append(invalid, ValidationError{Field: e.Key, Rule: "unknown"})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: mark fields "required" with validate tags, not schema`, switchback.ErrNotImplemented)

		default:
			// schema reports a missing converter only once a value arrives for the field.
			if strings.Contains(e.Error(), "converter not found") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", switchback.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", switchback.ErrUnexpected, e)
		}
	}

	return invalid
}
