package router

import (
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
)

const assetMaxAge = 30 * 24 * time.Hour

// A Route serves Handler for requests to Path with Method.
// Its Middlewares run after those of the Router it is registered on.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// A Router registers Routes on a [mux.Router].
type Router struct {
	env    switchback.Environment
	mux    *mux.Router
	logReq middleware.Adapter

	// run ahead of every Route
	common []middleware.Adapter
}

// A RouterOpt configures a *Router.
type RouterOpt func(*Router)

// WithAssets serves fsys under prefix with a month-long Cache-Control.
func WithAssets(prefix string, fsys fs.FS) RouterOpt {
	return func(rt *Router) {
		if prefix == "" || fsys == nil {
			return
		}

		files := http.StripPrefix(prefix, http.FileServerFS(fsys))
		rt.mux.PathPrefix(prefix).Handler(middleware.Chain(files, cacheFor(assetMaxAge), rt.logReq))
	}
}

// New constructs a *Router.
// logReq wraps asset and unmatched requests; nil logs nothing.
func New(env switchback.Environment, logReq middleware.Adapter, opts ...RouterOpt) *Router {
	rt := &Router{env: env, mux: mux.NewRouter(), logReq: logReq}
	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

// AuthedRoutes registers routes behind middlewares and then middleware.RequireAuthed,
// which sends HTML clients without a user to loginUrl.
func (rt *Router) AuthedRoutes(loginUrl string, routes []Route, middlewares ...middleware.Adapter) {
	rt.HandleRoutes(routes, append(middlewares, middleware.RequireAuthed(loginUrl))...)
}

// CatchAll sends every request to handler, as maintenance mode does.
func (rt *Router) CatchAll(handler http.Handler) {
	rt.mux.PathPrefix("/").Handler(rt.wrap(handler, rt.common))
}

// Handle registers route.
func (rt *Router) Handle(route Route) { rt.HandleRoutes([]Route{route}) }

// HandleNotFound serves handler when no Route matches.
func (rt *Router) HandleNotFound(handler http.Handler) {
	rt.mux.NotFoundHandler = rt.wrap(handler, []middleware.Adapter{rt.logReq})
}

// HandleRoutes registers routes.
// Each runs the Router's common middlewares, then middlewares, then its own.
func (rt *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		stack := make([]middleware.Adapter, 0, len(rt.common)+len(middlewares)+len(route.Middlewares))
		stack = append(append(append(stack, rt.common...), middlewares...), route.Middlewares...)

		rt.mux.Handle(route.Path, rt.wrap(route.Handler, stack)).Methods(route.Method)
	}
}

// OnEveryRequest adds middlewares to those run ahead of every Route registered afterwards.
func (rt *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	rt.common = append(rt.common, middlewares...)
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) { rt.mux.ServeHTTP(w, r) }

// Subrouter returns a *Router for paths under prefix, sharing the common middlewares registered so far.
func (rt *Router) Subrouter(prefix string) *Router {
	return &Router{
		env:    rt.env,
		mux:    rt.mux.PathPrefix(prefix).Subrouter(),
		logReq: rt.logReq,
		common: append([]middleware.Adapter(nil), rt.common...),
	}
}

// UnauthedRoutes registers routes behind middlewares and then middleware.RequireUnauthed.
func (rt *Router) UnauthedRoutes(routes []Route, middlewares ...middleware.Adapter) {
	rt.HandleRoutes(routes, append(middlewares, middleware.RequireUnauthed())...)
}

// wrap puts h behind panic reporting and stack.
func (rt *Router) wrap(h http.Handler, stack []middleware.Adapter) http.Handler {
	return middleware.Chain(middleware.ReportPanic(rt.env)(h), stack...)
}

func cacheFor(d time.Duration) middleware.Adapter {
	maxAge := "max-age=" + strconv.Itoa(int(d.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", maxAge)
			next.ServeHTTP(w, r)
		})
	}
}
