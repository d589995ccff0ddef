package registry

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
)

var (
	_ switchback.Enumerable = Verb("")
	_ switchback.Enumerable = Source(0)
	_ switchback.Enumerable = ResponseKind(0)
)

// A Verb is the HTTP method a controller method answers to.
// The zero value means no verb was declared.
type Verb string

const (
	VerbUnset Verb = ""
	GET       Verb = http.MethodGet
	POST      Verb = http.MethodPost
	PUT       Verb = http.MethodPut
)

func (v Verb) String() string { return string(v) }

func (v Verb) Valid() error {
	switch v {
	case GET, POST, PUT:
		return nil
	default:
		return fmt.Errorf("%w: verb %q", switchback.ErrNotValid, string(v))
	}
}

// A Source is where a ParameterDescriptor's value comes from in a request.
type Source int

const (
	SourceUnk Source = iota
	Query
	Path
	Model
)

func (s Source) String() string {
	switch s {
	case Query:
		return "query"
	case Path:
		return "path"
	case Model:
		return "model"
	default:
		return "unknown"
	}
}

func (s Source) Valid() error {
	switch s {
	case Query, Path, Model:
		return nil
	default:
		return fmt.Errorf("%w: source %d", switchback.ErrNotValid, int(s))
	}
}

// A ResponseKind tells a responder how to read a handler's return value.
//
// Infer, the zero value, lets the return value's shape decide:
// views, redirects, or raw payloads.
// JSON encodes any non-nil return value as JSON.
type ResponseKind int

const (
	Infer ResponseKind = iota
	JSON
)

func (k ResponseKind) String() string {
	switch k {
	case Infer:
		return "infer"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

func (k ResponseKind) Valid() error {
	switch k {
	case Infer, JSON:
		return nil
	default:
		return fmt.Errorf("%w: response kind %d", switchback.ErrNotValid, int(k))
	}
}
