/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides four main ways of responding to an HTTP request:
- rendering HTML templates
- rendering JSON data
- redirecting
- writing a raw payload

Responder.Resolve chooses among them for whatever a handler returns.
Handlers that would rather not rely on that choice return a Result instead:

	return resp.AsView("about", map[string]any{"team": team}), nil
	return resp.AsRedirect("/login"), nil
*/
package resp
