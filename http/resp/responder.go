package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	responderFrames = 1

	htmlMediaType  = "text/html; charset=utf-8"
	jsonMediaType  = "application/json; charset=UTF-8"
	bytesMediaType = "application/octet-stream"
)

// A Responder writes HTTP responses the same way across an application.
//
// Each method writes one form of response:
//
//	Html
//	Json
//	Raw
//	Redirect
//
// Resolve picks among them for whatever a handler returned.
// Fns passed to a method fill in the per-request details.
//
// One Responder per application is usually enough.
type Responder struct {
	logger  logger.Logger
	parser  template.Parser
	views   template.ViewResolver
	root    *url.URL
	errTmpl string

	// flashed by GenericErr
	contactErrMsg string

	bufs sync.Pool
}

// NewResponder constructs a *Responder.
//
// A parser passed with WithParser gains the nonce and rootUrl template functions.
func NewResponder(opts ...ResponderOptFn) *Responder {
	rd := &Responder{root: &url.URL{Path: "/"}, errTmpl: template.ErrTemplate}
	rd.bufs.New = func() any { return new(bytes.Buffer) }

	for _, opt := range opts {
		opt(rd)
	}

	if rd.logger == nil {
		rd.logger = logger.New()
	}

	if sl, ok := rd.logger.(logger.SkipLogger); ok {
		rd.logger = sl.AddSkip(sl.Skip() + responderFrames)
	}

	if rd.parser != nil {
		rd.parser.AddFn(template.Nonce())
		rd.parser.AddFn(template.RootUrl(rd.root))
		if rd.views == nil {
			rd.views = template.NewViews(rd.parser)
		}
	}

	return rd
}

// CurrentUser returns the value under switchback.CurrentUserKey,
// or ErrNotFound when there is none.
func (rd *Responder) CurrentUser(ctx context.Context) (any, error) {
	if u := ctx.Value(switchback.CurrentUserKey); u != nil {
		return u, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, switchback.CurrentUserKey)
}

// Session returns the request's session.
func (rd *Responder) Session(ctx context.Context) (session.Session, error) {
	return session.FromContext(ctx)
}

// Err answers with http.Error after logging err.
//
// The status is 500 unless a StatusError in err's chain or a Code says otherwise.
// Below 500 the client sees err's message; from 500 up only the status text.
func (rd *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	status := http.StatusInternalServerError
	if se := (StatusError{}); errors.As(err, &se) && se.Code != 0 {
		status = se.Code
	}

	rr, failed := rd.apply(w, r, append([]Fn{Err(err), Code(status)}, opts...))
	if rr != nil && rr.status != 0 {
		status = rr.status
	}

	if failed != nil {
		err = errors.Join(err, failed)
	}

	msg := http.StatusText(status)
	if status < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}

	http.Error(w, msg, status)
}

// Html renders the view set by View, or else the templates set by Tmpls, with:
//
//	{
//		Data:        what Data set
//		Flashes:     []session.Flash popped from the session
//		CurrentUser: what User set or the request context holds
//	}
//
// Any failure renders the error template with 500 and is returned.
func (rd *Responder) Html(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := rd.apply(w, r, opts)
	if err != nil {
		return rd.htmlFailed(w, r, err)
	}

	view, err := rd.viewFor(rr)
	if err != nil {
		return rd.htmlFailed(w, r, err)
	}

	page := struct {
		Data        any
		Flashes     []session.Flash
		CurrentUser any
	}{Data: rr.data, CurrentUser: rr.currentUser()}

	if s, err := session.FromContext(r.Context()); err == nil {
		page.Flashes = s.PopFlashes(w, r)
	}

	b := rd.buffer()
	defer rd.bufs.Put(b)

	if err := view.Execute(b, page); err != nil {
		return rd.htmlFailed(w, r, err)
	}

	w.Header().Set("Content-Type", htmlMediaType)
	w.WriteHeader(statusOr(rr.status, http.StatusOK))
	_, err = b.WriteTo(w)
	return err
}

// Json writes what Data set as JSON, with 200 unless Code says otherwise.
func (rd *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := rd.apply(w, r, opts)
	if err != nil {
		return err
	}

	return rd.writeJson(w, rr)
}

// Raw writes what Data set as the body, with 200 unless Code says otherwise.
//
//   - nil writes no body
//   - []byte is written as is
//   - an io.Reader is copied, then closed if it is an io.Closer
//   - anything else is written as JSON
//
// ContentType replaces the Content-Type Raw picks.
func (rd *Responder) Raw(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := rd.apply(w, r, opts)
	if err != nil {
		return err
	}

	status := statusOr(rr.status, http.StatusOK)
	switch body := rr.data.(type) {
	case nil:
		w.WriteHeader(status)
		return nil

	case []byte:
		rr.setContentType(w, bytesMediaType)
		w.WriteHeader(status)
		_, err = w.Write(body)
		return err

	case io.Reader:
		if c, ok := body.(io.Closer); ok {
			defer c.Close()
		}

		rr.setContentType(w, bytesMediaType)
		w.WriteHeader(status)
		_, err = io.Copy(w, body)
		return err
	}

	return rd.writeJson(w, rr)
}

// Redirect sends the client to the destination set by Url,
// or to the root URL when Url is not passed.
//
// The status is 302 unless Code sets a 3xx.
// A 4xx Code becomes 303 and a 5xx becomes 307.
func (rd *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := rd.apply(w, r, append([]Fn{ToRoot()}, opts...))
	if err != nil {
		return err
	}

	http.Redirect(w, r, rr.dest.String(), redirectStatus(rr.status))
	return nil
}

// apply runs opts against a fresh Response.
//
// Fns that fail are retried, in order, for as long as a pass gets at least one more through.
// The errors of those that never succeed are joined.
// A done request context stops apply with ErrDone.
func (rd *Responder) apply(w http.ResponseWriter, r *http.Request, opts []Fn) (*Response, error) {
	rr := &Response{rd: rd, w: w, r: r}

	pending := opts
	var errs []error
	for len(pending) > 0 {
		var failed []Fn
		errs = errs[:0]
		for _, fn := range pending {
			if r.Context().Err() != nil {
				return nil, ErrDone
			}

			if err := fn(rr); err != nil {
				failed = append(failed, fn)
				errs = append(errs, err)
			}
		}

		if len(failed) == len(pending) {
			break
		}

		pending = failed
	}

	return rr, errors.Join(errs...)
}

// viewFor finds what Html executes.
func (rd *Responder) viewFor(rr *Response) (template.View, error) {
	switch {
	case rr.view != "":
		if rd.views == nil {
			return nil, fmt.Errorf("%w: no views configured", ErrBadConfig)
		}

		return rd.views.FindView(rr.view)

	case len(rr.tmpls) > 0:
		if rd.parser == nil {
			return nil, fmt.Errorf("%w: no parser configured", ErrBadConfig)
		}

		tmpl, err := rd.parser.Parse(rr.tmpls...)
		if err != nil {
			return nil, fmt.Errorf("cannot parse: %w", err)
		}

		return tmpl, nil
	}

	return nil, fmt.Errorf("%w: no view or templates", ErrMissingData)
}

// htmlFailed logs err and answers 500, with the error template when one can be rendered.
// It returns err, joined with anything else that went wrong.
func (rd *Responder) htmlFailed(w http.ResponseWriter, r *http.Request, err error) error {
	rd.logger.Error(err.Error(), &logger.LogContext{Request: r, Error: err})

	if rd.parser == nil || rd.errTmpl == "" {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("%w: no error template: %w", ErrBadConfig, err)
	}

	b := rd.buffer()
	defer rd.bufs.Put(b)

	tmpl, nested := rd.parser.Parse(rd.errTmpl)
	if nested == nil {
		nested = tmpl.Execute(b, map[string]any{"Contact": rd.contactErrMsg})
	}

	if nested != nil {
		rd.logger.Error(nested.Error(), &logger.LogContext{Request: r, Error: nested})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return errors.Join(err, nested)
	}

	w.Header().Set("Content-Type", htmlMediaType)
	w.WriteHeader(http.StatusInternalServerError)
	if _, nested = b.WriteTo(w); nested != nil {
		return errors.Join(err, nested)
	}

	return err
}

// writeJson encodes before writing so a value JSON cannot represent leaves w untouched.
func (rd *Responder) writeJson(w http.ResponseWriter, rr *Response) error {
	b := rd.buffer()
	defer rd.bufs.Put(b)

	if err := json.NewEncoder(b).Encode(rr.data); err != nil {
		return fmt.Errorf("%w: cannot encode %T: %s", ErrInvalid, rr.data, err)
	}

	rr.setContentType(w, jsonMediaType)
	w.WriteHeader(statusOr(rr.status, http.StatusOK))
	_, err := b.WriteTo(w)
	return err
}

func (rd *Responder) buffer() *bytes.Buffer {
	b := rd.bufs.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func (rr *Response) setContentType(w http.ResponseWriter, def string) {
	if rr.ctype != "" {
		def = rr.ctype
	}

	w.Header().Set("Content-Type", def)
}

func statusOr(status, def int) int {
	if status == 0 {
		return def
	}

	return status
}

// redirectStatus maps any status onto one http.Redirect can send.
func redirectStatus(status int) int {
	switch {
	case status >= http.StatusMultipleChoices && status <= http.StatusPermanentRedirect:
		return status
	case status >= http.StatusInternalServerError:
		return http.StatusTemporaryRedirect
	case status >= http.StatusBadRequest:
		return http.StatusSeeOther
	}

	return http.StatusFound
}
