package registry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
)

// BaseController gives embedding types the request they are handling
// and the writer their response goes to.
//
//	type HomeController struct {
//		registry.BaseController
//	}
type BaseController struct {
	r *http.Request
	w http.ResponseWriter
}

// SetRequest implements Controller.
func (c *BaseController) SetRequest(r *http.Request) { c.r = r }

// SetResponseWriter implements ResponseWriterSetter.
func (c *BaseController) SetResponseWriter(w http.ResponseWriter) { c.w = w }

// ResponseWriter returns the writer the response goes to, or nil before one is bound.
//
// Set headers and cookies through it; leave writing the body to the returned result.
func (c *BaseController) ResponseWriter() http.ResponseWriter { return c.w }

// Request returns the request being handled, or nil before one is bound.
func (c *BaseController) Request() *http.Request { return c.r }

// Context returns the context of the request being handled.
func (c *BaseController) Context() context.Context {
	if c.r == nil {
		return context.Background()
	}

	return c.r.Context()
}

// CurrentUser returns the value stored under switchback.CurrentUserKey, if any.
func (c *BaseController) CurrentUser() any {
	return c.Context().Value(switchback.CurrentUserKey)
}

// Session returns the session stored on the request being handled.
func (c *BaseController) Session() (session.Session, error) {
	return session.FromContext(c.Context())
}

// Login registers the user identified by id in the request's session.
func (c *BaseController) Login(id uint) error {
	s, err := c.Session()
	if err != nil {
		return err
	}

	if c.w == nil {
		return fmt.Errorf("%w: no response writer bound", switchback.ErrMissingData)
	}

	return s.Login(c.w, c.r, id)
}

// Logout removes the user from the request's session.
func (c *BaseController) Logout() error {
	s, err := c.Session()
	if err != nil {
		return err
	}

	if c.w == nil {
		return fmt.Errorf("%w: no response writer bound", switchback.ErrMissingData)
	}

	return s.Logout(c.w, c.r)
}
