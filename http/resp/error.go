package resp

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/switchback"
)

var (
	ErrBadConfig   = switchback.ErrBadConfig
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = switchback.ErrNotValid
	ErrMissingData = switchback.ErrMissingData
	ErrNotFound    = switchback.ErrNotExist
	ErrNoUser      = errors.New("no user")
)

// A StatusError pairs an error with the HTTP status code it should be reported with.
type StatusError struct {
	Code int
	Err  error
}

// NewStatusError wraps err so Responder.Err reports it with code.
func NewStatusError(code int, err error) StatusError {
	return StatusError{Code: code, Err: err}
}

func (se StatusError) Error() string {
	if se.Err == nil {
		return fmt.Sprintf("status %d", se.Code)
	}

	return se.Err.Error()
}

func (se StatusError) Unwrap() error { return se.Err }
