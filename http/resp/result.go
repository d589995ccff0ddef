package resp

import (
	"fmt"
	"maps"
)

// A ResultKind says how a Result is written to the client.
type ResultKind int

const (
	RawResult ResultKind = iota
	JSONResult
	ViewResult
	RedirectResult
)

func (k ResultKind) String() string {
	switch k {
	case RawResult:
		return "raw"
	case JSONResult:
		return "json"
	case ViewResult:
		return "view"
	case RedirectResult:
		return "redirect"
	default:
		return "unknown"
	}
}

func (k ResultKind) Valid() error {
	switch k {
	case RawResult, JSONResult, ViewResult, RedirectResult:
		return nil
	default:
		return fmt.Errorf("%w: result kind %d", ErrInvalid, int(k))
	}
}

// A Result is a handler return value that names how it should be written,
// so Responder.Resolve never has to guess from its shape.
//
// Construct one with AsJSON, AsView, AsRedirect or AsRaw.
type Result struct {
	Kind ResultKind

	// Code overrides the status code the Kind writes by default.
	Code int

	// ContentType overrides the Content-Type header for JSONResult and RawResult.
	ContentType string

	// Payload is encoded for JSONResult and written for RawResult.
	Payload any

	// URL is the destination of a RedirectResult.
	URL string

	// View and Model are rendered for a ViewResult.
	View  string
	Model map[string]any
}

// AsJSON writes v as a JSON body.
func AsJSON(v any) Result { return Result{Kind: JSONResult, Payload: v} }

// AsView renders the named view with model.
func AsView(name string, model map[string]any) Result {
	return Result{Kind: ViewResult, View: name, Model: model}
}

// AsRedirect redirects to url with 302.
func AsRedirect(url string) Result { return Result{Kind: RedirectResult, URL: url} }

// AsRaw writes payload as the response body.
func AsRaw(payload any, contentType string) Result {
	return Result{Kind: RawResult, Payload: payload, ContentType: contentType}
}

// WithCode returns a copy of res writing code instead of the Kind's default.
func (res Result) WithCode(code int) Result {
	res.Code = code
	return res
}

// The ViewModel wraps the methods describing a view to render and the attributes to render it with.
type ViewModel interface {
	TemplateName() string
	Attributes() map[string]any
}

// A ModelAndView pairs a view name with the attributes it is rendered with.
//
// ModelAndView and *ModelAndView implement ViewModel.
type ModelAndView struct {
	name  string
	attrs map[string]any
}

// NewModelAndView constructs a *ModelAndView for the named view with no attributes.
func NewModelAndView(name string) *ModelAndView {
	return &ModelAndView{name: name, attrs: make(map[string]any)}
}

// AddAttribute sets the attribute, returning mv for chaining.
func (mv *ModelAndView) AddAttribute(key string, val any) *ModelAndView {
	if mv.attrs == nil {
		mv.attrs = make(map[string]any)
	}

	mv.attrs[key] = val
	return mv
}

// Attributes returns a copy of the attributes set so far.
func (mv ModelAndView) Attributes() map[string]any {
	attrs := make(map[string]any, len(mv.attrs))
	maps.Copy(attrs, mv.attrs)
	return attrs
}

// TemplateName returns the name of the view.
func (mv ModelAndView) TemplateName() string { return mv.name }

// codeOr returns res.Code, or def when none was set.
func (res Result) codeOr(def int) int {
	if res.Code == 0 {
		return def
	}

	return res.Code
}

var (
	_ ViewModel = ModelAndView{}
	_ ViewModel = new(ModelAndView)
)
