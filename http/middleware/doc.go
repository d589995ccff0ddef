/*
Package middleware holds the Adapters switchback wraps handlers in.

Global, run on every request:
  - CORS
  - CurrentUser
  - ForceHTTPS
  - InjectIPAddress
  - InjectSession
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Per route:
  - AuthGate
  - Idempotent
  - RequireAuthed
  - RequireBearer
  - RequireUnauthed

Routers use AuthGate to run a route's authentication check ahead of its other middlewares.

Without ranger, an app gets ranger's global chain with:

	chain := []middleware.Adapter{
		middleware.RequestID(),
		middleware.LogRequest(l),
		middleware.InjectIPAddress(),
		middleware.ForceHTTPS(env),
		middleware.CORS(baseURL),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.InjectSession(sessions),
		middleware.CurrentUser(users, loginURL),
	}
*/
package middleware
