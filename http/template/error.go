package template

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/switchback"
)

var (
	ErrNoFiles  = errors.New("no files provided")
	ErrNotValid = fmt.Errorf("%w: view name", switchback.ErrNotValid)
)
