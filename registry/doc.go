/*
Package registry collects what an application declares about its controllers.

A [Registry] holds one [ControllerDescriptor] per controller
and, under it, one [MethodDescriptor] per method:
the URL and HTTP verb a method answers to,
whether it requires authentication,
how its return value becomes a response,
which middlewares run before it,
and the [ParameterDescriptor] for each of its arguments.

Descriptors are merged one fact at a time, so separate declarations
about the same method land on the same descriptor.
When a field is declared twice the last declaration wins
and the overwrite is recorded as a [Conflict].

	reg := registry.New()
	home := reg.Controller("Home", func() registry.Controller { return new(HomeController) })
	home.Get("Main", "main", registry.Handle((*HomeController).Main)).
		Query(0, "param").
		Query(1, "param2")

	mounted := reg.Controller("Mounted", newMounted).BaseURL("mounted")
	mounted.Get("SelfAuth", "self-auth", registry.Handle((*Mounted).SelfAuth)).Authenticated()

A Registry is written to during a single, sequential declaration phase.
Building routes freezes it; from then on it is only read.
*/
package registry
