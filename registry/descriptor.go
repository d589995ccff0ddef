package registry

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
)

// A Controller is a fresh value built for every request a controller method handles.
// The request being handled is bound onto it before the method's Action is called.
type Controller interface {
	SetRequest(r *http.Request)
}

// A ResponseWriterSetter is a Controller that also wants the writer its response goes to.
// BaseController implements it.
type ResponseWriterSetter interface {
	SetResponseWriter(w http.ResponseWriter)
}

// A Factory constructs a new Controller.
type Factory func() Controller

// An Action is a controller method.
//
// args holds one value per ParameterDescriptor, ordered by ParameterDescriptor.Index.
// args is nil when the method declares no parameters.
type Action func(c Controller, args []any) (any, error)

// Handle adapts a method on a concrete Controller type into an Action.
func Handle[C Controller](fn func(c C, args []any) (any, error)) Action {
	return func(c Controller, args []any) (any, error) {
		cc, ok := c.(C)
		if !ok {
			return nil, fmt.Errorf("%w: controller is %T", switchback.ErrNotValid, c)
		}

		return fn(cc, args)
	}
}

// Arg retrieves the argument at i as a T.
// If i is out of range or the argument is not a T, the zero value of T returns.
func Arg[T any](args []any, i int) T {
	var zero T
	if i < 0 || i >= len(args) {
		return zero
	}

	v, ok := args[i].(T)
	if !ok {
		return zero
	}

	return v
}

// A ParameterDescriptor describes one argument of an Action.
type ParameterDescriptor struct {
	// Name is the query param, path variable, or, for Model, a label used in errors.
	Name string

	// Index is the position of the argument.
	Index int

	Source Source

	// Model constructs a pointer to a fresh struct for Model parameters.
	// The struct's fields define which keys are copied out of the request body.
	Model func() any
}

// A MethodDescriptor collects what was declared about a single controller method.
type MethodDescriptor struct {
	Name          string
	URL           string
	Verb          Verb
	Authenticated bool
	Response      ResponseKind
	Params        []ParameterDescriptor
	Middlewares   []middleware.Adapter
	Action        Action

	// set tracks which fields a declaration has written.
	set map[string]bool
}

// SortedParams returns a copy of Params ordered by Index.
// Parameters sharing an Index keep the order they were declared in.
func (md MethodDescriptor) SortedParams() []ParameterDescriptor {
	params := make([]ParameterDescriptor, len(md.Params))
	copy(params, md.Params)
	sort.SliceStable(params, func(i, j int) bool { return params[i].Index < params[j].Index })
	return params
}

// clone copies md so later changes to md do not leak into the copy.
func (md *MethodDescriptor) clone() *MethodDescriptor {
	c := *md
	c.Params = append([]ParameterDescriptor(nil), md.Params...)
	c.Middlewares = append([]middleware.Adapter(nil), md.Middlewares...)
	c.set = nil
	return &c
}

// mark records field as written and reports whether it was written before.
func (md *MethodDescriptor) mark(field string) bool {
	if md.set == nil {
		md.set = make(map[string]bool)
	}

	seen := md.set[field]
	md.set[field] = true
	return seen
}

// A ControllerDescriptor groups the methods declared on a single controller.
type ControllerDescriptor struct {
	Name    string
	BaseURL string
	Factory Factory
	Methods map[string]*MethodDescriptor

	set map[string]bool
}

// MethodNames lists the names of the methods on cd in lexical order.
func (cd ControllerDescriptor) MethodNames() []string {
	names := make([]string, 0, len(cd.Methods))
	for name := range cd.Methods {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (cd *ControllerDescriptor) clone() ControllerDescriptor {
	c := ControllerDescriptor{
		Name:    cd.Name,
		BaseURL: cd.BaseURL,
		Factory: cd.Factory,
		Methods: make(map[string]*MethodDescriptor, len(cd.Methods)),
	}

	for name, md := range cd.Methods {
		c.Methods[name] = md.clone()
	}

	return c
}

func (cd *ControllerDescriptor) mark(field string) bool {
	if cd.set == nil {
		cd.set = make(map[string]bool)
	}

	seen := cd.set[field]
	cd.set[field] = true
	return seen
}

// A Conflict records a declaration that overwrote a field already declared.
type Conflict struct {
	Controller string
	Method     string
	Field      string
}

func (c Conflict) String() string {
	if c.Method == "" {
		return fmt.Sprintf("%s: %s declared more than once", c.Controller, c.Field)
	}

	return fmt.Sprintf("%s.%s: %s declared more than once", c.Controller, c.Method, c.Field)
}
