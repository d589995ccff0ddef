package session

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/switchback"
)

var (
	ErrNotValid = fmt.Errorf("%w: session value", switchback.ErrNotValid)
	ErrNoUser   = errors.New("no user")
)
