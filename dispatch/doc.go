/*
Package dispatch serves requests for the controller methods declared on a [registry.Registry].

A [*Dispatcher] builds one [http.Handler] per controller method, for package router to mount.
For every request, that handler:

 1. constructs a fresh controller with the controller's [registry.Factory]
 2. binds the request onto it
 3. binds the method's parameters out of the request, when it declares any
 4. calls the method's [registry.Action]
 5. resolves the value the Action returned into a response

No controller or model value is shared between requests.
Authentication and a method's own middlewares run before the handler, as route middlewares.
*/
package dispatch
