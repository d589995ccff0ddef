package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xy-planning-network/switchback/http/middleware"
)

// A Registry accumulates ControllerDescriptors while an application declares its controllers.
//
// A Registry is not safe for concurrent use while declaring:
// declarations happen sequentially, before any request is served.
// Once Freeze is called, a Registry only reads and is safe for concurrent use.
type Registry struct {
	controllers map[string]*ControllerDescriptor
	conflicts   []Conflict
	errs        []error
	frozen      bool
	strict      bool
}

// An Option configures a *Registry when constructing it.
type Option func(*Registry)

// WithStrict makes Err report every Conflict as an ErrConflict.
func WithStrict() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

// New constructs an empty *Registry.
func New(opts ...Option) *Registry {
	r := &Registry{controllers: make(map[string]*ControllerDescriptor)}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// EnsureController creates a ControllerDescriptor named name if none exists yet.
func (r *Registry) EnsureController(name string) error {
	_, err := r.controller(name)
	return err
}

// EnsureMethod creates a MethodDescriptor named method under the controller if none exists yet,
// creating the controller as well.
//
// If method is "", only the controller is ensured.
func (r *Registry) EnsureMethod(controller, method string) error {
	if method == "" {
		return r.EnsureController(controller)
	}

	_, err := r.method(controller, method)
	return err
}

// AttachParameter appends p to the parameters of the method.
func (r *Registry) AttachParameter(controller, method string, p ParameterDescriptor) error {
	md, err := r.method(controller, method)
	if err != nil {
		return err
	}

	if err := p.Source.Valid(); err != nil {
		return fmt.Errorf("%s.%s: parameter %q: %w", controller, method, p.Name, err)
	}

	if p.Source == Model && p.Model == nil {
		return fmt.Errorf("%s.%s: parameter %q: %w: model parameters need a model", controller, method, p.Name, ErrNoName)
	}

	for _, existing := range md.Params {
		if existing.Index == p.Index {
			r.conflict(controller, method, fmt.Sprintf("parameter index %d", p.Index))
		}
	}

	md.Params = append(md.Params, p)
	return nil
}

// SetAction sets the Action called when the method handles a request.
func (r *Registry) SetAction(controller, method string, a Action) error {
	return r.setMethod(controller, method, "action", func(md *MethodDescriptor) { md.Action = a })
}

// SetAuth sets whether the method requires an authenticated request.
func (r *Registry) SetAuth(controller, method string, required bool) error {
	return r.setMethod(controller, method, "auth", func(md *MethodDescriptor) { md.Authenticated = required })
}

// SetBaseURL sets the URL prefix shared by all methods of the controller.
func (r *Registry) SetBaseURL(controller, baseURL string) error {
	return r.setController(controller, "base url", func(cd *ControllerDescriptor) { cd.BaseURL = baseURL })
}

// SetFactory sets how the controller is constructed for each request.
func (r *Registry) SetFactory(controller string, f Factory) error {
	return r.setController(controller, "factory", func(cd *ControllerDescriptor) { cd.Factory = f })
}

// SetMiddleware sets the middlewares run before the method's Action.
func (r *Registry) SetMiddleware(controller, method string, mws ...middleware.Adapter) error {
	return r.setMethod(controller, method, "middleware", func(md *MethodDescriptor) {
		md.Middlewares = append([]middleware.Adapter(nil), mws...)
	})
}

// SetResponseKind sets how the method's return value is turned into a response.
func (r *Registry) SetResponseKind(controller, method string, kind ResponseKind) error {
	if err := kind.Valid(); err != nil {
		return fmt.Errorf("%s.%s: %w", controller, method, err)
	}

	return r.setMethod(controller, method, "response kind", func(md *MethodDescriptor) { md.Response = kind })
}

// SetRoute sets both the URL and Verb of the method.
func (r *Registry) SetRoute(controller, method, url string, verb Verb) error {
	if err := r.SetURL(controller, method, url); err != nil {
		return err
	}

	return r.SetVerb(controller, method, verb)
}

// SetURL sets the URL of the method, relative to the controller's base URL.
func (r *Registry) SetURL(controller, method, url string) error {
	return r.setMethod(controller, method, "url", func(md *MethodDescriptor) { md.URL = url })
}

// SetVerb sets the HTTP method the method answers to.
//
// Verbs are not validated here; building routes decides what to do with unknown verbs.
func (r *Registry) SetVerb(controller, method string, verb Verb) error {
	return r.setMethod(controller, method, "verb", func(md *MethodDescriptor) { md.Verb = verb })
}

// Conflicts lists every declaration that overwrote an already declared field.
func (r *Registry) Conflicts() []Conflict {
	return append([]Conflict(nil), r.conflicts...)
}

// Controllers returns a copy of every ControllerDescriptor, ordered by name.
func (r *Registry) Controllers() []ControllerDescriptor {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)

	cds := make([]ControllerDescriptor, 0, len(names))
	for _, name := range names {
		cds = append(cds, r.controllers[name].clone())
	}

	return cds
}

// Err joins every error a declaration made through Controller or Method ran into.
// For a Registry constructed WithStrict, each Conflict is included as an ErrConflict.
func (r *Registry) Err() error {
	errs := append([]error(nil), r.errs...)
	if r.strict {
		for _, c := range r.conflicts {
			errs = append(errs, fmt.Errorf("%w: %s", ErrConflict, c))
		}
	}

	return errors.Join(errs...)
}

// Freeze stops all further declarations.
// Calls changing the Registry afterwards return ErrFrozen.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool { return r.frozen }

// Lookup returns a copy of the MethodDescriptor declared for the controller and method.
func (r *Registry) Lookup(controller, method string) (MethodDescriptor, bool) {
	cd, ok := r.controllers[controller]
	if !ok {
		return MethodDescriptor{}, false
	}

	md, ok := cd.Methods[method]
	if !ok {
		return MethodDescriptor{}, false
	}

	return *md.clone(), true
}

func (r *Registry) conflict(controller, method, field string) {
	r.conflicts = append(r.conflicts, Conflict{Controller: controller, Method: method, Field: field})
}

// controller retrieves the ControllerDescriptor named name, creating it if necessary.
func (r *Registry) controller(name string) (*ControllerDescriptor, error) {
	if r.frozen {
		return nil, fmt.Errorf("%w: cannot declare controller %q", ErrFrozen, name)
	}

	if name == "" {
		return nil, fmt.Errorf("%w: controller", ErrNoName)
	}

	cd, ok := r.controllers[name]
	if !ok {
		cd = &ControllerDescriptor{Name: name, Methods: make(map[string]*MethodDescriptor)}
		r.controllers[name] = cd
	}

	return cd, nil
}

// method retrieves the MethodDescriptor named method, creating it and its controller if necessary.
func (r *Registry) method(controller, method string) (*MethodDescriptor, error) {
	cd, err := r.controller(controller)
	if err != nil {
		return nil, err
	}

	if method == "" {
		return nil, fmt.Errorf("%w: method of controller %q", ErrNoName, controller)
	}

	md, ok := cd.Methods[method]
	if !ok {
		md = &MethodDescriptor{Name: method}
		cd.Methods[method] = md
	}

	return md, nil
}

func (r *Registry) setController(controller, field string, fn func(*ControllerDescriptor)) error {
	cd, err := r.controller(controller)
	if err != nil {
		return err
	}

	if cd.mark(field) {
		r.conflict(controller, "", field)
	}

	fn(cd)
	return nil
}

func (r *Registry) setMethod(controller, method, field string, fn func(*MethodDescriptor)) error {
	md, err := r.method(controller, method)
	if err != nil {
		return err
	}

	if md.mark(field) {
		r.conflict(controller, method, field)
	}

	fn(md)
	return nil
}
