/*
Package router turns what a [registry.Registry] declares into routes on a web server.

[Build] walks the Registry once, at startup, producing a [Binding] per controller method:
the resolved path, the HTTP verb, and the pipeline serving it.
That pipeline starts with [middleware.AuthGate], then runs the method's own middlewares,
then hands the request to the [http.Handler] a [HandlerFactory] built for the method.
Building freezes the Registry, so the descriptors every request reads never change.

A [*Router] is a thin wrapper around [mux.Router].
It leverages a standardized data model - a [Route] -
when registering how requests should be routed.
[*Router.Mount] registers Bindings as Routes,
alongside any Routes an application registers by hand.
Before a request gets to a handler, any middlewares on the Router and then on the Route
are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks.
[*Router.OnEveryRequest], [*Router.AuthedRoutes] and [*Router.UnauthedRoutes]
provide conveniences for registering many logically associated Routes at once.
*/
package router
