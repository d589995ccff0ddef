package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/switchback"
)

// ReportPanic turns a panicking handler into a 500 and sends the panic to Sentry.
// Development keeps panics as they are.
func ReportPanic(env switchback.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	reporter := sentryhttp.New(sentryhttp.Options{WaitForDelivery: true})
	return func(next http.Handler) http.Handler {
		return reporter.Handle(status500OnPanic(next))
	}
}

// status500OnPanic writes the status, then panics again for sentryhttp to report.
func status500OnPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				w.WriteHeader(http.StatusInternalServerError)
				panic(v)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
