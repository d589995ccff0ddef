package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback/http/session"
)

// A Fn shapes the Response a Responder method is about to write.
//
// A Fn returning an error is retried after the others have run,
// so a Fn may depend on state a later Fn sets.
type Fn func(*Response) error

// A Response collects what the Fns passed to a Responder method set.
type Response struct {
	rd *Responder
	w  http.ResponseWriter
	r  *http.Request

	status int
	ctype  string
	data   any
	tmpls  []string
	dest   *url.URL
	user   any
	view   string
}

// Code sets the status code.
func Code(c int) Fn {
	return func(rr *Response) error {
		rr.status = c
		return nil
	}
}

// ContentType overrides the Content-Type header for Responder.Json and Responder.Raw.
func ContentType(ct string) Fn {
	return func(rr *Response) error {
		rr.ctype = ct
		return nil
	}
}

// Data sets the value written to the client.
func Data(d any) Fn {
	return func(rr *Response) error {
		rr.data = d
		return nil
	}
}

// Err logs e, if any, and sets the status code to 500.
func Err(e error) Fn {
	return func(rr *Response) error {
		if e != nil {
			rr.rd.logger.Error(e.Error(), rr.logContext(e))
		}

		rr.status = http.StatusInternalServerError
		return nil
	}
}

// Flash adds f to the request's session.
func Flash(f session.Flash) Fn {
	return func(rr *Response) error {
		s, err := session.FromContext(rr.r.Context())
		if err != nil {
			return err
		}

		return s.AddFlash(rr.w, rr.r, f)
	}
}

// GenericErr logs e like Err and flashes the message set by WithContactErrMsg,
// falling back to session.MsgGeneric.
func GenericErr(e error) Fn {
	return func(rr *Response) error {
		_ = Err(e)(rr)

		msg := rr.rd.contactErrMsg
		if msg == "" {
			msg = session.MsgGeneric
		}

		return Flash(session.Flash{Class: session.FlashError, Msg: msg})(rr)
	}
}

// Param adds a query parameter to the redirect destination.
// Url or ToRoot must also be passed.
func Param(key, val string) Fn {
	return func(rr *Response) error {
		if rr.dest == nil {
			return fmt.Errorf("%w: no destination for param %q", ErrMissingData, key)
		}

		q := rr.dest.Query()
		q.Add(key, val)
		rr.dest.RawQuery = q.Encode()
		return nil
	}
}

// Success sets the status code to 200 and flashes msg.
func Success(msg string) Fn {
	return func(rr *Response) error {
		rr.status = http.StatusOK
		return Flash(session.Flash{Class: session.FlashSuccess, Msg: msg})(rr)
	}
}

// Tmpls appends templates for Responder.Html to compose.
// The first one is executed.
func Tmpls(fps ...string) Fn {
	return func(rr *Response) error {
		rr.tmpls = append(rr.tmpls, fps...)
		return nil
	}
}

// ToRoot sets the redirect destination to the Responder's root URL.
func ToRoot() Fn {
	return func(rr *Response) error {
		root := *rr.rd.root
		rr.dest = &root
		return nil
	}
}

// User sets the user templates see as CurrentUser.
func User(u any) Fn {
	return func(rr *Response) error {
		rr.user = u
		return nil
	}
}

// Url sets the redirect destination.
// Relative references are resolved against the request path by http.Redirect,
// so "login" and "../about" are as valid as "/login".
func Url(u string) Fn {
	return func(rr *Response) error {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("%w: redirect destination: %s", ErrInvalid, err)
		}

		rr.dest = parsed
		return nil
	}
}

// View names the view Responder.Html renders. It wins over Tmpls.
func View(name string) Fn {
	return func(rr *Response) error {
		rr.view = name
		return nil
	}
}

// Warn logs msg as a warning and flashes it.
func Warn(msg string) Fn {
	return func(rr *Response) error {
		rr.rd.logger.Warn(msg, rr.logContext(nil))
		return Flash(session.Flash{Class: session.FlashWarning, Msg: msg})(rr)
	}
}
