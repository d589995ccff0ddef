package ranger

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

// maintRetryAfter is how many seconds clients are asked to wait during maintenance.
const maintRetryAfter = 600

// MaintModeHandler responds to every request with 503,
// rendering the maintenance template to requests accepting HTML.
// contact is shown as a way to reach the app's maintainers.
func MaintModeHandler(p template.Parser, l logger.Logger, contact string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", strconv.Itoa(maintRetryAfter))

		tmpl, err := p.Parse(template.MaintenanceTemplate)
		if err != nil {
			l.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		b := new(bytes.Buffer)
		if err := tmpl.Execute(b, map[string]any{"Contact": contact}); err != nil {
			l.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		b.WriteTo(w)
	})
}
