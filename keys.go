package switchback

// A Key names a value switchback stores in a request's context.
type Key string

const (
	// CurrentUserKey holds the user the request's session belongs to.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey holds the client IP address.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey holds a UUID identifying the request in logs.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey holds the request's session.
	SessionKey Key = "SessionKey"

	// TokenClaimsKey holds the claims of a verified bearer token.
	TokenClaimsKey Key = "TokenClaimsKey"
)

// Key is k as a plain string, for maps keyed by string.
func (k Key) Key() string { return string(k) }

func (k Key) String() string { return "switchback context key: " + string(k) }
