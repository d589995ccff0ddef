package switchback

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// HTTP verbs, parameter sources and response kinds declared on a controller method are all Enumerable.
type Enumerable interface {
	String() string
	Valid() error
}
