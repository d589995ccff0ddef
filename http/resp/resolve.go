package resp

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback/registry"
)

// RedirectPrefix marks a string handler result as a redirect location.
const RedirectPrefix = ":"

// Resolve writes the value a handler returned, deciding how from kind and the value itself.
//
// A Result is written the way its Kind says.
// Anything else is matched against these rules, in order:
//  1. kind is registry.JSON and result is not nil: JSON with 200
//  2. result is a ViewModel, such as a ModelAndView or *ModelAndView: its view is rendered with its attributes
//  3. result is a string starting with RedirectPrefix: a 302 redirect to the rest of the string,
//     which may be relative to the request path
//  4. result is any other string: the view it names is rendered with no attributes
//  5. otherwise: result is written raw, see Responder.Raw
//
// JSON comes first so a JSON method returning a string is never read as a view name.
// A nil *ModelAndView or *Result counts as nil.
func (rd *Responder) Resolve(w http.ResponseWriter, r *http.Request, result any, kind registry.ResponseKind) error {
	switch t := result.(type) {
	case Result:
		return rd.writeResult(w, r, t)
	case *Result:
		if t == nil {
			result = nil
			break
		}

		return rd.writeResult(w, r, *t)
	case *ModelAndView:
		if t == nil {
			result = nil
		}
	}

	if kind == registry.JSON && result != nil {
		return rd.Json(w, r, Data(result))
	}

	switch t := result.(type) {
	case ViewModel:
		return rd.Html(w, r, View(t.TemplateName()), Data(t.Attributes()))

	case string:
		if loc, ok := strings.CutPrefix(t, RedirectPrefix); ok {
			return rd.Redirect(w, r, Url(loc))
		}

		return rd.Html(w, r, View(t), Data(map[string]any{}))
	}

	return rd.Raw(w, r, Data(result))
}

func (rd *Responder) writeResult(w http.ResponseWriter, r *http.Request, res Result) error {
	switch res.Kind {
	case JSONResult:
		return rd.Json(w, r, Data(res.Payload), Code(res.codeOr(http.StatusOK)), ContentType(res.ContentType))

	case ViewResult:
		model := res.Model
		if model == nil {
			model = map[string]any{}
		}

		return rd.Html(w, r, View(res.View), Data(model), Code(res.codeOr(http.StatusOK)))

	case RedirectResult:
		return rd.Redirect(w, r, Url(res.URL), Code(res.codeOr(http.StatusFound)))

	case RawResult:
		return rd.Raw(w, r, Data(res.Payload), Code(res.codeOr(http.StatusOK)), ContentType(res.ContentType))

	default:
		return res.Kind.Valid()
	}
}
