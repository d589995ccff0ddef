package resp

import (
	"net/url"

	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

// A ResponderOptFn configures a Responder built by NewResponder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the message GenericErr flashes.
// session.MsgContactUs makes a good template for it.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(rd *Responder) { rd.contactErrMsg = msg }
}

// WithErrTemplate sets the template rendered when Html fails.
// template.ErrTemplate is the default.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(rd *Responder) { rd.errTmpl = fp }
}

// WithLogger sets the Logger. A logger.AppLogger is the default.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(rd *Responder) { rd.logger = log }
}

// WithParser sets the template.Parser used by Tmpls and, unless WithViews is passed, by View.
func WithParser(p template.Parser) ResponderOptFn {
	return func(rd *Responder) { rd.parser = p }
}

// WithRootUrl sets where ToRoot and failed redirects point.
// A u that is not an absolute URL or path leaves the root at "/".
func WithRootUrl(u string) ResponderOptFn {
	return func(rd *Responder) {
		if parsed, err := url.ParseRequestURI(u); err == nil {
			rd.root = parsed
		}
	}
}

// WithViews sets the template.ViewResolver View names are looked up in.
func WithViews(v template.ViewResolver) ResponderOptFn {
	return func(rd *Responder) { rd.views = v }
}
