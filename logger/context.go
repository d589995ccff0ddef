package logger

import (
	"encoding"
	"encoding/json"
	"net/http"
	"net/url"
)

// redactedHeaders never reach a log line.
var redactedHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

// A LogUser is a user that can describe itself in a log line.
type LogUser interface {
	GetID() uint
	GetEmail() string
}

// A LogContext carries what a log message cannot say tersely.
// Every field is optional.
type LogContext struct {
	// Caller replaces the file:line a Logger would otherwise resolve.
	// It is printed beside the message, not in the context.
	Caller string

	Data    map[string]any
	Error   error
	Request *http.Request
	User    LogUser
}

type requestRecord struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header,omitempty"`
	Form   url.Values  `json:"form,omitempty"`
}

type userRecord struct {
	Email string `json:"email,omitempty"`
	ID    uint   `json:"id,omitempty"`
}

type contextRecord struct {
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Request *requestRecord `json:"request,omitempty"`
	User    *userRecord    `json:"user,omitempty"`
}

// MarshalText renders the LogContext as compact JSON, leaving out empty parts.
// Credentials in request headers are redacted and the request body is never read.
// Data values that JSON cannot represent make MarshalText fail.
func (lc LogContext) MarshalText() ([]byte, error) {
	rec := contextRecord{Data: lc.Data}
	if lc.Error != nil {
		rec.Error = lc.Error.Error()
	}

	if r := lc.Request; r != nil {
		rec.Request = &requestRecord{Method: r.Method, URL: r.URL.String(), Form: r.Form}
		if len(r.Header) > 0 {
			rec.Request.Header = r.Header.Clone()
			for _, h := range redactedHeaders {
				if rec.Request.Header.Get(h) != "" {
					rec.Request.Header.Set(h, "[redacted]")
				}
			}
		}
	}

	if lc.User != nil {
		if u := (userRecord{Email: lc.User.GetEmail(), ID: lc.User.GetID()}); u != (userRecord{}) {
			rec.User = &u
		}
	}

	return json.Marshal(rec)
}

// String is MarshalText, or empty when that fails.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return ""
	}

	return string(b)
}

var _ encoding.TextMarshaler = LogContext{}
