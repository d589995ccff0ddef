package registry

import "errors"

var (
	ErrConflict = errors.New("conflicting declaration")
	ErrFrozen   = errors.New("registry is frozen")
	ErrNoName   = errors.New("no name")
)
