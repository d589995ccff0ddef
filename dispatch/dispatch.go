package dispatch

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/registry"
)

// A Binder builds the arguments for a controller method out of a request.
type Binder interface {
	Bind(r *http.Request, params []registry.ParameterDescriptor) ([]any, error)
}

// A Responder writes responses for the values and errors controller methods return.
type Responder interface {
	Err(w http.ResponseWriter, r *http.Request, err error, opts ...resp.Fn)
	Json(w http.ResponseWriter, r *http.Request, opts ...resp.Fn) error
	Resolve(w http.ResponseWriter, r *http.Request, result any, kind registry.ResponseKind) error
}

// A Dispatcher constructs the handlers serving controller methods.
type Dispatcher struct {
	binder    Binder
	logger    logger.Logger
	responder Responder
}

// New constructs a *Dispatcher.
// A nil binder defaults to req.NewBinder and a nil logger to logger.New.
func New(responder Responder, binder Binder, l logger.Logger) *Dispatcher {
	if binder == nil {
		binder = req.NewBinder()
	}

	if l == nil {
		l = logger.New()
	}

	return &Dispatcher{binder: binder, logger: l, responder: responder}
}

// Handler constructs the http.Handler serving method m of controller c.
//
// Handler implements router.HandlerFactory.
func (d *Dispatcher) Handler(c registry.ControllerDescriptor, m registry.MethodDescriptor) http.Handler {
	return &handler{
		d:          d,
		controller: c.Name,
		factory:    c.Factory,
		method:     m,
		params:     m.SortedParams(),
	}
}

type handler struct {
	d          *Dispatcher
	controller string
	factory    registry.Factory
	method     registry.MethodDescriptor
	params     []registry.ParameterDescriptor
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tw := &trackingWriter{ResponseWriter: w}

	if h.factory == nil || h.method.Action == nil {
		h.fail(tw, r, fmt.Errorf("%w: %s.%s cannot be called", switchback.ErrBadConfig, h.controller, h.method.Name))
		return
	}

	ctrl := h.factory()
	if ctrl == nil {
		h.fail(tw, r, fmt.Errorf("%w: %s factory built nil", switchback.ErrUnexpected, h.controller))
		return
	}

	ctrl.SetRequest(r)
	if ws, ok := ctrl.(registry.ResponseWriterSetter); ok {
		ws.SetResponseWriter(tw)
	}

	var args []any
	if len(h.params) > 0 {
		var err error
		if args, err = h.d.binder.Bind(r, h.params); err != nil {
			h.badRequest(tw, r, err)
			return
		}
	}

	result, err := h.method.Action(ctrl, args)
	if err != nil {
		h.fail(tw, r, err)
		return
	}

	if err := h.d.responder.Resolve(tw, r, result, h.method.Response); err != nil {
		h.fail(tw, r, err)
	}
}

// badRequest responds to a request that could not be bound to the method's parameters.
// Requests not matching a model are 400s; anything else is a misconfigured method.
func (h *handler) badRequest(w *trackingWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, switchback.ErrNotValid) ||
		errors.Is(err, switchback.ErrBadFormat) ||
		errors.Is(err, switchback.ErrMissingData) {
		code = http.StatusBadRequest
	}

	h.d.logger.Debug("binding request failed", h.logContext(r, err))

	var ve req.ValidationErrors
	if code == http.StatusBadRequest && h.method.Response == registry.JSON && errors.As(err, &ve) {
		if nested := h.d.responder.Json(w, r, resp.Code(code), resp.Data(ve)); nested == nil {
			return
		}
	}

	h.fail(w, r, resp.NewStatusError(code, err))
}

// fail responds with err unless a response is already underway, in which case err is only logged.
func (h *handler) fail(w *trackingWriter, r *http.Request, err error) {
	if w.written {
		h.d.logger.Error("controller method failed after responding", h.logContext(r, err))
		return
	}

	h.d.responder.Err(w, r, err)
}

func (h *handler) logContext(r *http.Request, err error) *logger.LogContext {
	return &logger.LogContext{Data: h.logData(), Error: err, Request: r}
}

func (h *handler) logData() map[string]any {
	return map[string]any{"controller": h.controller, "method": h.method.Name}
}

// trackingWriter records whether a response has started.
type trackingWriter struct {
	http.ResponseWriter
	written bool
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.written = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	tw.written = true
	return tw.ResponseWriter.Write(b)
}

// Unwrap supports http.ResponseController.
func (tw *trackingWriter) Unwrap() http.ResponseWriter { return tw.ResponseWriter }
