package router

import (
	"cmp"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/registry"
)

// A HandlerFactory constructs the [http.Handler] serving a single controller method.
type HandlerFactory interface {
	Handler(c registry.ControllerDescriptor, m registry.MethodDescriptor) http.Handler
}

// A Binding is the route built for one controller method.
type Binding struct {
	// Path is where the method is served, always rooted at "/".
	Path       string
	Verb       registry.Verb
	Controller string
	Method     string

	// Middlewares run in order before Handler: the auth gate, then the method's own middlewares.
	Middlewares []middleware.Adapter
	Handler     http.Handler
}

// Route converts b into the Route a *Router registers.
func (b Binding) Route() Route {
	return Route{
		Path:        b.Path,
		Method:      b.Verb.String(),
		Handler:     b.Handler,
		Middlewares: b.Middlewares,
	}
}

type buildConfig struct {
	authenticator middleware.Adapter
	logger        logger.Logger
	strictVerbs   bool
}

// A BuildOpt configures Build.
type BuildOpt func(*buildConfig)

// WithAuthenticator sets the Adapter deciding whether requests to authenticated methods continue.
// The default is middleware.RequireAuthed with no login URL.
func WithAuthenticator(a middleware.Adapter) BuildOpt {
	return func(c *buildConfig) { c.authenticator = a }
}

// WithLogger sets the logger Build reports skipped methods to.
func WithLogger(l logger.Logger) BuildOpt {
	return func(c *buildConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrictVerbs fails Build when a method declares no verb or one other than GET, POST or PUT.
func WithStrictVerbs() BuildOpt {
	return func(c *buildConfig) { c.strictVerbs = true }
}

// Build walks reg once, producing one Binding per controller method.
//
// A method's path is its URL when its controller has no base URL
// and the base URL, a "/", and its URL otherwise.
// One trailing "/" is stripped from the result.
//
// Methods without a verb Build recognizes are skipped and logged,
// unless WithStrictVerbs is set.
// Methods of controllers without a Factory, or without an Action, fail Build with ErrIncomplete.
// Bindings are ordered by path and then verb.
//
// Build freezes reg. Building a frozen Registry returns ErrAlreadyBuilt.
func Build(reg *registry.Registry, hf HandlerFactory, opts ...BuildOpt) ([]Binding, error) {
	if reg.Frozen() {
		return nil, ErrAlreadyBuilt
	}

	if hf == nil {
		return nil, ErrNoHandler
	}

	if err := reg.Err(); err != nil {
		return nil, fmt.Errorf("switchback/http/router: registry declarations failed: %w", err)
	}

	cfg := buildConfig{logger: logger.New()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		bindings []Binding
		errs     []error
	)
	for _, cd := range reg.Controllers() {
		for _, name := range cd.MethodNames() {
			md := *cd.Methods[name]
			if err := md.Verb.Valid(); err != nil {
				if cfg.strictVerbs {
					errs = append(errs, fmt.Errorf("%w: %s.%s: %s", ErrUnknownVerb, cd.Name, md.Name, err))
					continue
				}

				cfg.logger.Warn("skipping method with unknown verb", &logger.LogContext{
					Data: map[string]any{"controller": cd.Name, "method": md.Name, "verb": md.Verb.String()},
				})
				continue
			}

			if cd.Factory == nil || md.Action == nil {
				errs = append(errs, fmt.Errorf("%w: %s.%s", ErrIncomplete, cd.Name, md.Name))
				continue
			}

			mws := make([]middleware.Adapter, 0, len(md.Middlewares)+1)
			mws = append(mws, middleware.AuthGate(md.Authenticated, cfg.authenticator))
			mws = append(mws, md.Middlewares...)

			bindings = append(bindings, Binding{
				Path:        ResolvePath(cd.BaseURL, md.URL),
				Verb:        md.Verb,
				Controller:  cd.Name,
				Method:      md.Name,
				Middlewares: mws,
				Handler:     hf.Handler(cd, md),
			})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortStableFunc(bindings, func(a, b Binding) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}

		return cmp.Compare(a.Verb, b.Verb)
	})

	reg.Freeze()

	return bindings, nil
}

// ResolvePath joins baseURL and url as "baseURL/url",
// or uses url alone when baseURL is empty.
// One trailing "/" is stripped and the result is rooted at "/".
func ResolvePath(baseURL, url string) string {
	path := url
	if baseURL != "" {
		path = baseURL + "/" + url
	}

	path = strings.TrimSuffix(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return path
}

// Mount registers every Binding on rt.
func (rt *Router) Mount(bindings []Binding) {
	routes := make([]Route, 0, len(bindings))
	for _, b := range bindings {
		routes = append(routes, b.Route())
	}

	rt.HandleRoutes(routes)
}
