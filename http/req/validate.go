package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/switchback"
)

// validator applies "validate" struct tags, naming fields the way clients sent them.
type validator struct {
	v *v10.Validate
}

func newValidator() validator {
	v := v10.New()
	v.RegisterTagNameFunc(wireName)
	v.RegisterValidation("enum", func(fl v10.FieldLevel) bool { return validEnums(fl.Field()) })

	return validator{v}
}

// wireName is the field's json name, else its schema name, else empty.
func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

func (vd validator) validate(structPtr any) error {
	err := vd.v.Struct(structPtr)

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for i, fe := range fieldErrs {
		// Drop the struct's own name from the namespace.
		_, field, ok := strings.Cut(fe.Namespace(), ".")
		if !ok {
			field = fe.Field()
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		out[i] = ValidationError{Field: field, Rule: rule, Type: fe.Type().String(), Got: fe.Value()}
	}

	return out
}

// validEnums holds when v is a valid switchback.Enumerable
// or a non-empty slice of them.
func validEnums(v reflect.Value) bool {
	items := []reflect.Value{v}
	if v.Kind() == reflect.Slice {
		if v.Len() == 0 {
			return false
		}

		items = items[:0]
		for i := range v.Len() {
			items = append(items, v.Index(i))
		}
	}

	for _, item := range items {
		e, ok := item.Interface().(switchback.Enumerable)
		if !ok || e.Valid() != nil {
			return false
		}
	}

	return true
}
