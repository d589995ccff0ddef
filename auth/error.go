package auth

import (
	"fmt"

	"github.com/xy-planning-network/switchback"
)

var (
	ErrNotValid   = fmt.Errorf("%w: token", switchback.ErrNotValid)
	ErrNoToken    = fmt.Errorf("%w: token", switchback.ErrMissingData)
	ErrUnexpected = switchback.ErrUnexpected
)
