package resp

import (
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// logContext describes rr for a log line.
func (rr *Response) logContext(err error) *logger.LogContext {
	lc := &logger.LogContext{Request: rr.r, Error: err}
	if m, ok := rr.data.(map[string]any); ok {
		lc.Data = m
	}

	if u, ok := rr.currentUser().(logger.LogUser); ok {
		lc.User = u
	}

	return lc
}

// currentUser prefers the user set by User over the one in the request context.
func (rr *Response) currentUser() any {
	if rr.user != nil {
		return rr.user
	}

	if rr.r == nil {
		return nil
	}

	return rr.r.Context().Value(switchback.CurrentUserKey)
}
