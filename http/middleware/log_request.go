package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// LogMaskVal replaces the values of sensitive query params in logs.
const LogMaskVal = "xxxxxxx"

// LogRequest writes one info line per request once it has been served:
// client IP, method and URL, with status, duration and request ID as data.
// A password query param is logged as LogMaskVal.
// A nil l turns the middleware off.
func LogRequest(l logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()
			rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			ctx := r.Context()
			fields := map[string]any{
				"duration": time.Since(began).String(),
				"status":   rec.status,
			}
			if id, ok := ctx.Value(switchback.RequestIDKey).(string); ok {
				fields["request_id"] = id
			}

			line := r.Method + " " + maskedURI(r.URL)
			if ip, ok := ctx.Value(switchback.IpAddrKey).(string); ok {
				line = ip + " " + line
			}

			l.Info(line, &logger.LogContext{Data: fields})
		})
	}
}

func maskedURI(u *url.URL) string {
	params := u.Query()
	if params.Has("password") {
		params.Set("password", LogMaskVal)
	}

	if len(params) == 0 {
		return u.Path
	}

	return u.Path + "?" + params.Encode()
}

// A statusWriter records the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
