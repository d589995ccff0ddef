package router

import "errors"

var (
	ErrAlreadyBuilt = errors.New("registry already built")
	ErrIncomplete   = errors.New("controller method missing factory or action")
	ErrNoHandler    = errors.New("no handler factory")
	ErrUnknownVerb  = errors.New("unknown verb")
)
