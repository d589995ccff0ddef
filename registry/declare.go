package registry

import "github.com/xy-planning-network/switchback/http/middleware"

// A ControllerDecl declares facts about one controller on a *Registry.
//
// Errors are collected on the Registry and reported by [*Registry.Err],
// so declarations can be chained without checking each call.
type ControllerDecl struct {
	name string
	reg  *Registry
}

// Controller begins declaring the controller named name, constructed for each request by f.
func (r *Registry) Controller(name string, f Factory) *ControllerDecl {
	c := &ControllerDecl{name: name, reg: r}
	c.record(r.SetFactory(name, f))
	return c
}

// BaseURL sets the URL prefix shared by every method of the controller.
func (c *ControllerDecl) BaseURL(u string) *ControllerDecl {
	c.record(c.reg.SetBaseURL(c.name, u))
	return c
}

// Method begins declaring the method named name.
func (c *ControllerDecl) Method(name string) *MethodDecl {
	c.record(c.reg.EnsureMethod(c.name, name))
	return &MethodDecl{c: c, name: name}
}

// Handle declares the method named name answering requests for url with verb by calling a.
func (c *ControllerDecl) Handle(verb Verb, name, url string, a Action) *MethodDecl {
	return c.Method(name).Route(url, verb).Action(a)
}

// Get declares a method answering GET requests.
func (c *ControllerDecl) Get(name, url string, a Action) *MethodDecl { return c.Handle(GET, name, url, a) }

// Post declares a method answering POST requests.
func (c *ControllerDecl) Post(name, url string, a Action) *MethodDecl {
	return c.Handle(POST, name, url, a)
}

// Put declares a method answering PUT requests.
func (c *ControllerDecl) Put(name, url string, a Action) *MethodDecl { return c.Handle(PUT, name, url, a) }

func (c *ControllerDecl) record(err error) {
	if err != nil {
		c.reg.errs = append(c.reg.errs, err)
	}
}

// A MethodDecl declares facts about one method of a controller.
type MethodDecl struct {
	c    *ControllerDecl
	name string
}

// Action sets the function handling requests.
func (m *MethodDecl) Action(a Action) *MethodDecl {
	m.c.record(m.c.reg.SetAction(m.c.name, m.name, a))
	return m
}

// Authenticated requires requests to pass authentication before reaching the method.
func (m *MethodDecl) Authenticated() *MethodDecl {
	m.c.record(m.c.reg.SetAuth(m.c.name, m.name, true))
	return m
}

// JSON encodes every non-nil value the method returns as JSON.
func (m *MethodDecl) JSON() *MethodDecl {
	m.c.record(m.c.reg.SetResponseKind(m.c.name, m.name, JSON))
	return m
}

// Model declares the argument at idx is a fresh value from newModel filled from the request body.
func (m *MethodDecl) Model(idx int, name string, newModel func() any) *MethodDecl {
	p := ParameterDescriptor{Name: name, Index: idx, Source: Model, Model: newModel}
	m.c.record(m.c.reg.AttachParameter(m.c.name, m.name, p))
	return m
}

// Path declares the argument at idx is the path variable name.
func (m *MethodDecl) Path(idx int, name string) *MethodDecl {
	p := ParameterDescriptor{Name: name, Index: idx, Source: Path}
	m.c.record(m.c.reg.AttachParameter(m.c.name, m.name, p))
	return m
}

// Query declares the argument at idx is the query param name.
func (m *MethodDecl) Query(idx int, name string) *MethodDecl {
	p := ParameterDescriptor{Name: name, Index: idx, Source: Query}
	m.c.record(m.c.reg.AttachParameter(m.c.name, m.name, p))
	return m
}

// Route sets the URL and verb of the method.
func (m *MethodDecl) Route(url string, verb Verb) *MethodDecl {
	m.c.record(m.c.reg.SetRoute(m.c.name, m.name, url, verb))
	return m
}

// Use sets the middlewares run before the method.
func (m *MethodDecl) Use(mws ...middleware.Adapter) *MethodDecl {
	m.c.record(m.c.reg.SetMiddleware(m.c.name, m.name, mws...))
	return m
}
