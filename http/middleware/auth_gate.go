package middleware

// AuthGate returns the authenticator when a route requires authentication
// and NoopAdapter when it does not.
//
// Routers place AuthGate in front of every other route middleware,
// so an unauthenticated request never reaches them.
// If authenticator is nil, RequireAuthed("") stands in for it.
func AuthGate(required bool, authenticator Adapter) Adapter {
	if !required {
		return NoopAdapter
	}

	if authenticator == nil {
		return RequireAuthed("")
	}

	return authenticator
}
