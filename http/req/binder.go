package req

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"slices"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/registry"
)

const (
	DefaultMaxBodyBytes   int64 = 10 << 20
	defaultMultipartBytes int64 = 32 << 20
)

// A Binder builds the arguments for a controller method out of a request.
type Binder struct {
	parser  *Parser
	maxBody int64
}

// A BinderOpt configures a *Binder.
type BinderOpt func(*Binder)

// WithMaxBodyBytes caps how much of a request body a *Binder reads.
// Values less than 1 are ignored.
func WithMaxBodyBytes(n int64) BinderOpt {
	return func(b *Binder) {
		if n > 0 {
			b.maxBody = n
		}
	}
}

// WithParser sets the *Parser models are decoded and validated with.
func WithParser(p *Parser) BinderOpt {
	return func(b *Binder) {
		if p != nil {
			b.parser = p
		}
	}
}

func NewBinder(opts ...BinderOpt) *Binder {
	b := &Binder{parser: NewParser(), maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Bind resolves one value per ParameterDescriptor in params,
// returning them ordered by ParameterDescriptor.Index.
// Descriptors sharing an Index keep their relative order.
//
// Query parameters absent from r bind as "".
// Path variables bind from the route's variables and must be present.
// Model parameters bind a fresh value from ParameterDescriptor.Model,
// filled from r's body and then validated.
//
// Errors from a request not matching a model wrap switchback.ErrBadFormat or switchback.ErrNotValid.
func (b *Binder) Bind(r *http.Request, params []registry.ParameterDescriptor) ([]any, error) {
	if len(params) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(params)
	slices.SortStableFunc(sorted, func(a, b registry.ParameterDescriptor) int { return a.Index - b.Index })

	var (
		query url.Values
		pl    *payload
		args  = make([]any, len(sorted))
	)
	for i, p := range sorted {
		switch p.Source {
		case registry.Query:
			if query == nil {
				query = r.URL.Query()
			}

			args[i] = query.Get(p.Name)

		case registry.Path:
			v, ok := mux.Vars(r)[p.Name]
			if !ok {
				return nil, fmt.Errorf("%w: path variable %q", switchback.ErrMissingData, p.Name)
			}

			args[i] = v

		case registry.Model:
			if pl == nil {
				var err error
				if pl, err = b.readPayload(r); err != nil {
					return nil, err
				}
			}

			m, err := b.bindModel(p, pl)
			if err != nil {
				return nil, err
			}

			args[i] = m

		default:
			return nil, fmt.Errorf("%w: parameter %q has source %s", switchback.ErrNotValid, p.Name, p.Source)
		}
	}

	return args, nil
}

// bindModel fills a fresh model from pl.
func (b *Binder) bindModel(p registry.ParameterDescriptor, pl *payload) (any, error) {
	if p.Model == nil {
		return nil, fmt.Errorf("%w: model parameter %q has no prototype", switchback.ErrBadAny, p.Name)
	}

	m := p.Model()
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: model parameter %q built %T, not a pointer to a struct", switchback.ErrBadAny, p.Name, m)
	}

	var err error
	switch {
	case pl.form != nil:
		err = b.parser.ParseQueryParams(pl.form, m)
	case len(bytes.TrimSpace(pl.json)) > 0:
		err = b.parser.ParseBody(bytes.NewReader(pl.json), m)
	default:
		err = b.parser.Validate(m)
	}

	if err != nil {
		return nil, fmt.Errorf("binding %q: %w", p.Name, err)
	}

	return m, nil
}

// A payload is a request body read once and shared by every model bound from it.
type payload struct {
	json []byte
	form url.Values
}

// readPayload reads r's body according to its Content-Type.
// Bodies without a Content-Type are read as JSON.
func (b *Binder) readPayload(r *http.Request) (*payload, error) {
	pl := new(payload)
	if r.Body == nil || r.Body == http.NoBody {
		return pl, nil
	}

	ct := r.Header.Get("Content-Type")
	mediaType := ""
	if ct != "" {
		var err error
		if mediaType, _, err = mime.ParseMediaType(ct); err != nil {
			return nil, fmt.Errorf("%w: Content-Type %q: %s", switchback.ErrBadFormat, ct, err)
		}
	}

	switch mediaType {
	case "", "application/json":
		body, err := io.ReadAll(io.LimitReader(r.Body, b.maxBody+1))
		if err != nil {
			return nil, fmt.Errorf("%w: reading body: %s", switchback.ErrBadFormat, err)
		}

		if int64(len(body)) > b.maxBody {
			return nil, fmt.Errorf("%w: body exceeds %d bytes", switchback.ErrNotValid, b.maxBody)
		}

		pl.json = body

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, b.maxBody)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: parsing form: %s", switchback.ErrBadFormat, err)
		}

		pl.form = r.PostForm

	case "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, b.maxBody)
		if err := r.ParseMultipartForm(min(b.maxBody, defaultMultipartBytes)); err != nil {
			return nil, fmt.Errorf("%w: parsing multipart form: %s", switchback.ErrBadFormat, err)
		}

		pl.form = url.Values(r.MultipartForm.Value)

	default:
		return nil, fmt.Errorf("%w: unsupported Content-Type %q", switchback.ErrBadFormat, mediaType)
	}

	return pl, nil
}
