package ranger

import (
	"errors"

	"github.com/xy-planning-network/switchback"
)

var (
	ErrBadConfig = switchback.ErrBadConfig
	ErrNotBuilt  = errors.New("routes not built")
)
